package tool

import (
	"os/exec"
	"strings"

	"github.com/samber/lo"
)

// Tool is an external executable plus any leading arguments that are always
// passed to it, e.g. {Command: "sudo", Args: ["docker"]}.
type Tool struct {
	Command string
	Args    []string
}

// Parse splits a command line such as "docker" or "sudo docker" into a Tool.
func Parse(commandLine string) (Tool, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return Tool{}, ErrEmptyCommand
	}
	return Tool{Command: fields[0], Args: fields[1:]}, nil
}

// Argv returns the full argument vector passed to Command.
func (t Tool) Argv(args ...string) []string {
	allArgs := make([]string, len(t.Args)+len(args))
	copy(allArgs, t.Args)
	copy(allArgs[len(t.Args):], args)
	return allArgs
}

// CommandLine renders the invocation for logs. It is never handed to a shell.
func (t Tool) CommandLine(args ...string) string {
	parts := lo.Map(append([]string{t.Command}, t.Argv(args...)...), func(s string, _ int) string {
		return lo.Ternary(s == "" || strings.ContainsAny(s, " \t\n\"'"), quote(s), s)
	})
	return strings.Join(parts, " ")
}

// Exists reports whether Command can be found on PATH.
func (t Tool) Exists() bool {
	return commandExists(t.Command)
}

func (t Tool) String() string {
	if len(t.Args) > 0 {
		return t.Command + " " + strings.Join(t.Args, " ")
	}
	return t.Command
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
