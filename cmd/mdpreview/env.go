package main

import (
	"io"
	"os"
	"time"

	mdpreview "github.com/alnah/go-mdpreview"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	NewPool  func(size int, opts ...mdpreview.Option) Pool
	TermSize func() int // Terminal width in columns, 0 when unknown
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		NewPool:  newConverterPool,
		TermSize: terminalWidth,
	}
}
