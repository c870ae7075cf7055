package cutting

import "fmt"

// ConfigError reports invalid Options. It is the only
// fatal error of a run, detected before any traversal.
type ConfigError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid option %s (%v): %s", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
