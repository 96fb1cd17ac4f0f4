package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	mdpreview "github.com/alnah/go-mdpreview"
)

// mockConverter records inputs and returns a fixed result.
type mockConverter struct {
	mu     sync.Mutex
	inputs []mdpreview.Input
	result *mdpreview.Result
	err    error
}

func (m *mockConverter) Convert(_ context.Context, input mdpreview.Input) (*mdpreview.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &mdpreview.Result{
		HTML:     []byte("<html>" + input.Markdown + "</html>"),
		PDF:      []byte("%PDF-1.4"),
		Markdown: input.Markdown,
	}, nil
}

func (m *mockConverter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

// mockPool hands out a single shared converter.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error
	closed     bool
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.closed = true
	return nil
}

// testEnv returns an environment with captured output and real converters.
// Tests never request PDF output, so no browser is started.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:      func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout:   stdout,
		Stderr:   stderr,
		NewPool:  newConverterPool,
		TermSize: func() int { return 0 },
	}, stdout, stderr
}

// writeFile creates path (and its parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

var errMock = errors.New("mock failure")
