package types

import "fmt"

// ConfigError reports an invalid parameter detected before a run starts.
// It is fatal to that run and never silently corrected.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s=%v: %s", e.Field, e.Value, e.Reason)
}

// InsufficientDataError reports that a series is too short for the requested
// computation.
type InsufficientDataError struct {
	What string
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need %d points, have %d", e.What, e.Need, e.Have)
}
