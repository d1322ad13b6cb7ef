package scaffold

import (
	"errors"
	"fmt"
)

var (
	// ErrNotDirectory is returned when a directory target exists as a file.
	ErrNotDirectory = errors.New("exists but is not a directory")
	// ErrNoInstaller is returned when a step needs the package manager and
	// none was configured.
	ErrNoInstaller = errors.New("no package manager configured")
)

// StepError reports which step failed. The run stops at the first one.
type StepError struct {
	Step string
	Path string
	Err  error
}

func (e *StepError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Step, e.Path, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
