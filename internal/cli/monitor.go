package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LoriKarikari/devops/internal/config"
)

func newMonitorCmd(a *app) *cobra.Command {
	monitorCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Monitoring operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	monitorCmd.AddCommand(newLogsCmd(a))
	return monitorCmd
}

func newLogsCmd(a *app) *cobra.Command {
	var (
		filter string
		tail   int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View logs",
		Example: `  devops monitor logs -t 50
  devops monitor logs --filter error --tail 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(cmd); err != nil {
				return err
			}

			if !cmd.Flags().Changed("tail") {
				tail = a.cfg.Tail
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Fetching last %d log entries", tail)
			if filter != "" {
				fmt.Fprintf(out, "  Filter: %s\n", filter)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Log filter")
	cmd.Flags().IntVarP(&tail, "tail", "t", config.DefaultTail, "Number of lines")
	return cmd
}
