package migration

import "fmt"

// InvalidInputError means an importer entry point was handed an argument it
// cannot work with.  Fatal to that call, never swallowed.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("migration: invalid input: %s", e.Reason)
}

// ConfigError is raised during startup validation and aborts the whole run
// before any work starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("migration: bad configuration for %s: %s", e.Field, e.Reason)
}
