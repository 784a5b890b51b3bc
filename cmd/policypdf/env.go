package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rapidophilia/policypdf"
)

// Converter is the part of policypdf.Converter the CLI uses.
type Converter interface {
	Convert(ctx context.Context, input policypdf.Input) (*policypdf.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*policypdf.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Environ      func() []string
	NewConverter func(opts ...policypdf.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
		NewConverter: func(opts ...policypdf.Option) (Converter, error) {
			c, err := policypdf.NewConverter(opts...)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}
