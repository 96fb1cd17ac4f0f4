// Package yamlutil decodes YAML config documents with goccy/go-yaml.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// DefaultMaxSize bounds a config document (1MB).
const DefaultMaxSize = 1 << 20

var (
	ErrEmpty          = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrTooLarge       = errors.New("yamlutil: document exceeds maximum size")
)

// DecodeError is a parse or schema failure. Its message carries the position
// and the offending source lines.
type DecodeError struct {
	detail string
	err    error
}

func (e *DecodeError) Error() string { return "yamlutil: " + e.detail }

func (e *DecodeError) Unwrap() error { return e.err }

type decodeOptions struct {
	maxSize int
	strict  bool
}

// Option configures Decode.
type Option func(*decodeOptions)

// WithMaxSize overrides DefaultMaxSize. Non-positive values are ignored.
func WithMaxSize(n int) Option {
	return func(o *decodeOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// AllowUnknownFields accepts keys that have no matching struct field.
func AllowUnknownFields() Option {
	return func(o *decodeOptions) {
		o.strict = false
	}
}

// Decode fills v from data. Unknown keys are rejected by default. Fields
// absent from data keep the values already in v, so callers can decode over
// a struct holding defaults.
func Decode(data []byte, v any, opts ...Option) error {
	o := decodeOptions{maxSize: DefaultMaxSize, strict: true}
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) == 0 {
		return ErrEmpty
	}
	if len(data) > o.maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), o.maxSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	var yopts []yaml.DecodeOption
	if o.strict {
		yopts = append(yopts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, yopts...); err != nil {
		return &DecodeError{detail: yaml.FormatError(err, false, true), err: err}
	}
	return nil
}
