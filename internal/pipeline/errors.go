package pipeline

import (
	"fmt"
	"strings"
)

// PreconditionError indicates a required input (query, database, working
// directory) was missing or invalid before any external process was spawned.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// ConfigurationError indicates an invalid option combination, such as GPU
// mode requested against a database that has not been padded.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// StepError indicates a pipeline step failed. It carries the 1-based step
// index in the fixed step order, the captured stderr, and the exit code of
// the external process. Step failures are not retried: they are almost always
// caused by bad paths, missing databases, or invalid parameters rather than
// transient conditions.
type StepError struct {
	Step     int
	Name     string
	Command  []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("step %d (%s) failed", e.Step, e.Name)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StepError) Unwrap() error {
	return e.Err
}
