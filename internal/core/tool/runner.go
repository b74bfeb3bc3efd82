package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Result is the captured outcome of a single tool invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes a tool and captures its output. Implementations must not
// route arguments through a shell.
type Runner interface {
	Run(ctx context.Context, t Tool, args ...string) (Result, error)
}

type ExecRunner struct {
	log logrus.FieldLogger
}

func NewExecRunner(log logrus.FieldLogger) *ExecRunner {
	if log == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		log = discard
	}
	return &ExecRunner{log: log}
}

// Run blocks until the process exits or ctx is cancelled. A non-zero exit is
// returned as *ExitError together with the captured Result.
func (r *ExecRunner) Run(ctx context.Context, t Tool, args ...string) (Result, error) {
	if t.Command == "" {
		return Result{}, ErrEmptyCommand
	}

	log := r.log.WithField("tool", t.Command)
	log.Debugf("+ %s", t.CommandLine(args...))

	cmd := exec.CommandContext(ctx, t.Command, t.Argv(args...)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
			log.WithField("exit_code", result.ExitCode).Debug("command failed")
			return result, &ExitError{
				Tool:   t.Command,
				Code:   result.ExitCode,
				Stderr: strings.TrimSpace(result.Stderr),
			}
		case errors.Is(err, exec.ErrNotFound):
			result.ExitCode = -1
			log.Debug("command not found")
			return result, fmt.Errorf("%s: %w", t.Command, ErrToolNotFound)
		default:
			result.ExitCode = -1
			log.WithError(err).Debug("command could not be started")
			return result, fmt.Errorf("failed to run %s: %w", t.Command, err)
		}
	}

	log.WithField("exit_code", 0).Debug("command finished")
	return result, nil
}
