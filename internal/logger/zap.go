package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger and keeps a handle on its level.
type Logger struct {
	*zap.SugaredLogger
	level zap.AtomicLevel
}

const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

func newConsoleCore(w io.Writer, level zap.AtomicLevel) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	return zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
}

// New builds a console logger on stdout. Unknown levels fall back to info.
func New(level string) *Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter is New with an explicit destination; the render CLI logs to stderr
// so that stdout carries only JSON.
func NewWithWriter(w io.Writer, level string) *Logger {
	lvl := zap.NewAtomicLevelAt(toZapLevel(level))
	return &Logger{
		SugaredLogger: zap.New(newConsoleCore(w, lvl)).Sugar(),
		level:         lvl,
	}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{
		SugaredLogger: zap.NewNop().Sugar(),
		level:         zap.NewAtomicLevelAt(zapcore.FatalLevel),
	}
}

// Level reports the current level as a string.
func (l *Logger) Level() string {
	return l.level.Level().String()
}
