package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/LoriKarikari/devops/internal/config"
)

// instanceIDLength matches the 17 hex digits of an EC2 instance ID.
const instanceIDLength = 17

func newInfraCmd(a *app) *cobra.Command {
	infraCmd := &cobra.Command{
		Use:   "infra",
		Short: "Infrastructure provisioning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	infraCmd.AddCommand(newProvisionServerCmd(a))
	return infraCmd
}

func newProvisionServerCmd(a *app) *cobra.Command {
	var region, instanceType string

	cmd := &cobra.Command{
		Use:   "provision-server",
		Short: "Provision cloud server",
		Long: `Acknowledge a server provisioning request.

No cloud API is called. The printed instance ID is synthetic: it is derived
from the current time and does not refer to a real resource.`,
		Example: `  devops infra provision-server -r us-west-2 -t t2.medium`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(cmd); err != nil {
				return err
			}

			if !cmd.Flags().Changed("region") {
				region = a.cfg.Region
			}
			if !cmd.Flags().Changed("type") {
				instanceType = a.cfg.InstanceType
			}

			id, err := newInstanceID()
			if err != nil {
				return fmt.Errorf("failed to generate instance id: %w", err)
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Provisioning %s server in %s", instanceType, region)
			fmt.Fprintf(out, "Instance ID: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", config.DefaultRegion, "AWS region")
	cmd.Flags().StringVarP(&instanceType, "type", "t", config.DefaultInstanceType, "Instance type")
	return cmd
}

// newInstanceID returns "i-" followed by 17 hex digits. A UUIDv7 starts with
// a 48-bit millisecond timestamp, so ids sort by creation time.
func newInstanceID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return "i-" + hex.EncodeToString(id[:])[:instanceIDLength], nil
}
