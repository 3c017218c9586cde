package domain

import (
	"errors"
	"fmt"
)

var (
	errEmpty       = errors.New("must not be empty")
	errNotPositive = errors.New("must be greater than zero")
)

// ConfigError describes a target that could not be turned into an Endpoint.
type ConfigError struct {
	Target string
	Field  string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("target %q: %s: %v", e.Target, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
