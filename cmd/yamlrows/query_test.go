package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/teaguesterling/yamlrows/internal/app"
)

// The query command is exercised through Execute so the not-found exit path
// stays an error value rather than a hard process exit.
func TestQueryCommandExecute(t *testing.T) {
	input := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(input, []byte("items:\n  - 10\n  - 20\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	run := func(args ...string) (string, error) {
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetErr(&buf)
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		return buf.String(), err
	}

	out, err := run("query", "--op", "extract", "$.items[1]", input)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out != "20\n" {
		t.Fatalf("extract output = %q, want %q", out, "20\n")
	}

	out, err = run("query", "--op", "extract", "$.missing", input)
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Execute, got %v", err)
	}
	if out != "" {
		t.Fatalf("not-found produced output %q, want none", out)
	}
}
