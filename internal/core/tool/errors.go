package tool

import (
	"errors"
	"fmt"
)

var (
	ErrToolNotFound = errors.New("executable not found in PATH")
	ErrEmptyCommand = errors.New("empty command")
)

// ExitError reports a tool that ran but exited with a non-zero status.
type ExitError struct {
	Tool   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Tool, e.Code, e.Stderr)
}
