package cli

import (
	"github.com/spf13/cobra"
)

func newK8sCmd(a *app) *cobra.Command {
	k8sCmd := &cobra.Command{
		Use:   "k8s",
		Short: "Kubernetes operations",
		Long:  "Create clusters and apply application manifests with kubectl.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	k8sCmd.AddCommand(
		newCreateClusterCmd(),
		newDeployAppCmd(a),
	)
	return k8sCmd
}

func newCreateClusterCmd() *cobra.Command {
	var (
		cluster string
		nodes   int
	)

	cmd := &cobra.Command{
		Use:   "create-cluster",
		Short: "Create Kubernetes cluster",
		Long: `Acknowledge a cluster creation request.

No cluster is provisioned; the command only reports the requested name and
node count.`,
		Example: `  devops k8s create-cluster -c prod -n 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateNotEmpty("cluster", cluster); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Creating cluster: %s with %d nodes", cluster, nodes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cluster, "cluster", "c", "", "Cluster name")
	cmd.Flags().IntVarP(&nodes, "nodes", "n", 3, "Number of nodes")
	markFlagsRequired(cmd, "cluster")
	return cmd
}

func newDeployAppCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "deploy-app",
		Short: "Deploy application to Kubernetes",
		Long: `Apply a manifest to the current kubectl context.

Runs "kubectl apply -f FILE" and prints the captured output.`,
		Example: `  devops k8s deploy-app -f deployment.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateNotEmpty("file", file); err != nil {
				return err
			}
			if err := a.prepare(cmd); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result, err := a.runner.Run(cmd.Context(), a.kubectl, "apply", "-f", file)
			if err != nil {
				printFailure(out, err)
				return nil
			}

			printSuccess(out, "Deployment applied from %s", file)
			printCaptured(out, result.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Deployment file")
	markFlagsRequired(cmd, "file")
	return cmd
}
