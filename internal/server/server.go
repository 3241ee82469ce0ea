package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	maxHeaderBytes     = 1 << 20 // 1 MB
	readHeaderTimeout  = 10 * time.Second
	writeTimeout       = 10 * time.Second
	idleTimeout        = 60 * time.Second
	defaultDrainWindow = 10 * time.Second
)

// Server serves the API until its context ends, then drains in-flight requests.
// Every request context derives from a base context that is cancelled when
// draining starts, so long-lived log sheet streams stop instead of holding
// the shutdown open.
type Server struct {
	httpServer  *http.Server
	drainWindow time.Duration
	onListen    func(net.Addr)
}

type Option func(*Server)

// WithDrainWindow bounds how long shutdown waits for in-flight requests.
func WithDrainWindow(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.drainWindow = d
		}
	}
}

// WithListenHook is called with the bound address once the listener is open.
func WithListenHook(fn func(net.Addr)) Option {
	return func(s *Server) { s.onListen = fn }
}

// New builds a server for port ("8080" or ":8080"). WebSocket connections are
// hijacked, so the write timeout only bounds plain responses.
func New(port string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		httpServer: &http.Server{
			Addr:              normalizeAddr(port),
			Handler:           handler,
			MaxHeaderBytes:    maxHeaderBytes,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
		drainWindow: defaultDrainWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeAddr(port string) string {
	if port == "" || strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// ListenAndServe opens the configured address and hands it to Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %q: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve blocks until ctx is done or the listener fails. A shutdown that
// drains within the window returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	base, cancelBase := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelBase()
	s.httpServer.BaseContext = func(net.Listener) context.Context { return base }

	if s.onListen != nil {
		s.onListen(ln.Addr())
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.httpServer.Serve(ln) }()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	cancelBase()
	drainCtx, cancel := context.WithTimeout(context.Background(), s.drainWindow)
	defer cancel()
	if err := s.httpServer.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("drain: %w", err)
	}
	<-serveErr
	return nil
}
