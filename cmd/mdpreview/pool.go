package main

import (
	"context"

	mdpreview "github.com/alnah/go-mdpreview"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input mdpreview.Input) (*mdpreview.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdpreview.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// converterPool adapts mdpreview.ConverterPool to Pool.
type converterPool struct {
	pool *mdpreview.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// newConverterPool creates a pool of n lazily started converters.
func newConverterPool(n int, opts ...mdpreview.Option) Pool {
	return &converterPool{pool: mdpreview.NewConverterPool(n, opts...)}
}

func (p *converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(conv CLIConverter) {
	if c, ok := conv.(*mdpreview.Converter); ok {
		p.pool.Release(c)
	}
}

func (p *converterPool) Size() int {
	return p.pool.Size()
}

func (p *converterPool) Close() error {
	return p.pool.Close()
}
