package cli

import (
	"fmt"
	"io"
	"strings"
)

const (
	successMark = "✓"
	failureMark = "✗"
)

func printSuccess(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, "%s %s\n", successMark, fmt.Sprintf(format, a...))
}

// printFailure reports an external failure as one line. The command still
// exits 0.
func printFailure(w io.Writer, err error) {
	msg := strings.Join(strings.Fields(err.Error()), " ")
	fmt.Fprintf(w, "%s Error: %s\n", failureMark, msg)
}

// printCaptured echoes a tool's stdout, terminated by exactly one newline.
func printCaptured(w io.Writer, stdout string) {
	if strings.TrimSpace(stdout) == "" {
		return
	}
	fmt.Fprintln(w, strings.TrimRight(stdout, "\n"))
}
