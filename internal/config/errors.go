package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks a setting that failed Validate.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a failure reading the file or environment layers.
	ErrLoadConfig = errors.New("load config failed")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
