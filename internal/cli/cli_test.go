package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/LoriKarikari/devops/internal/config"
	"github.com/LoriKarikari/devops/internal/core/tool"
)

type runCall struct {
	tool tool.Tool
	args []string
}

type fakeRunner struct {
	calls  []runCall
	result tool.Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, t tool.Tool, args ...string) (tool.Result, error) {
	f.calls = append(f.calls, runCall{tool: t, args: args})
	return f.result, f.err
}

type execResult struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, opts []Option, args ...string) execResult {
	t.Helper()

	cmd := NewRootCmd(opts...)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// executeWith runs args against the default config and the given runner.
func executeWith(t *testing.T, runner tool.Runner, args ...string) execResult {
	t.Helper()
	return execute(t, []Option{WithRunner(runner), WithConfig(config.Default())}, args...)
}
