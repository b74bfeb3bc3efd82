package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// healthChecks is reported in this order. The report is static.
var healthChecks = []string{"Docker", "Kubernetes", "Database"}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check system health",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "System Status:")
			for _, name := range healthChecks {
				fmt.Fprintf(out, "  %s: %s\n", name, successMark)
			}
		},
	}
}
