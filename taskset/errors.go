package taskset

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the kind of every synthesis parameter error.
var ErrConfiguration = errors.New("invalid configuration")

// ConfigurationError reports a rejected synthesis parameter. It is returned
// before any generation work starts.
type ConfigurationError struct {
	Field string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration.Error(), e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration.Error(), e.Field, e.Msg)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
