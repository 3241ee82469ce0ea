package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"driver_logsheet/internal/logsheet"
)

func executeRender(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRenderCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRenderCmd_Demo(t *testing.T) {
	stdout, _, err := executeRender(t, "--demo", "short", "--day", "1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var out logsheet.Output
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if out.Meta.Day != 1 || len(out.DutyBars) == 0 || !out.Totals.IsValid {
		t.Fatalf("unexpected output meta=%+v bars=%d totals=%+v", out.Meta, len(out.DutyBars), out.Totals)
	}
}

func TestRenderCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.yaml")
	doc := `
name: Night run
days:
  - day: 1
    date: "2025-09-01"
    stops:
      - {type: start, location: "Gary, IN", time: "00:00", mileage: 0}
    log:
      offDuty:
        - {start: 0, end: 10}
      driving:
        - {start: 10, end: 12}
        - {start: 13, end: 12}
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	stdout, stderr, err := executeRender(t, "--file", path, "--compact")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(strings.TrimSpace(stdout), "\n") != 0 {
		t.Fatalf("--compact should print one line")
	}
	var out logsheet.Output
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out.Totals.IsValid || len(out.Diagnostics) != 1 {
		t.Fatalf("totals=%+v diagnostics=%+v", out.Totals, out.Diagnostics)
	}
	if !strings.Contains(stderr, "segment skipped") || !strings.Contains(stderr, "totals do not add up") {
		t.Fatalf("expected warnings on stderr, got %q", stderr)
	}
}

func TestRenderCmd_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no source", nil},
		{"both sources", []string{"--demo", "short", "--file", "x.yaml"}},
		{"unknown demo", []string{"--demo", "medium"}},
		{"missing day", []string{"--demo", "short", "--day", "9"}},
		{"missing file", []string{"--file", "does-not-exist.yaml"}},
	}
	nanFile := filepath.Join(t.TempDir(), "nan.yaml")
	if err := os.WriteFile(nanFile, []byte("days:\n  - day: 1\n    log:\n      driving:\n        - {start: .nan, end: 5}\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cases = append(cases, struct {
		name string
		args []string
	}{"NaN bound in file", []string{"--file", nanFile}})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := executeRender(t, tc.args...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
