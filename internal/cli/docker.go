package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LoriKarikari/devops/internal/core/registry"
)

func newDockerCmd(a *app) *cobra.Command {
	dockerCmd := &cobra.Command{
		Use:   "docker",
		Short: "Docker operations",
		Long:  "Build, run and inspect container images with the docker CLI.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	dockerCmd.AddCommand(
		newDockerBuildCmd(a),
		newDockerDeployCmd(a),
		newDockerInspectCmd(a),
	)
	return dockerCmd
}

func newDockerBuildCmd(a *app) *cobra.Command {
	var name, path string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build Docker image",
		Long: `Build a Docker image from a build context and tag it.

Runs "docker build -t NAME PATH" and prints the captured output.`,
		Example: `  # Build the current directory
  devops docker build -n myapp

  # Build another context with a tag
  devops docker build --name myapp:1.2.0 --path ./services/api`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateImageName(name); err != nil {
				return err
			}
			if err := a.prepare(cmd); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result, err := a.runner.Run(cmd.Context(), a.docker, "build", "-t", name, path)
			if err != nil {
				printFailure(out, err)
				return nil
			}

			printSuccess(out, "Built image: %s", name)
			printCaptured(out, result.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Image name")
	cmd.Flags().StringVarP(&path, "path", "p", ".", "Dockerfile path")
	markFlagsRequired(cmd, "name")
	return cmd
}

func newDockerDeployCmd(a *app) *cobra.Command {
	var image string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy Docker image",
		Long: `Start a detached container from an image.

Runs "docker run -d IMAGE" and prints the new container ID.`,
		Example: `  devops docker deploy -i nginx:alpine`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateImageRef(image); err != nil {
				return err
			}
			if err := a.prepare(cmd); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result, err := a.runner.Run(cmd.Context(), a.docker, "run", "-d", image)
			if err != nil {
				printFailure(out, err)
				return nil
			}

			printSuccess(out, "Deployed container: %s", strings.TrimSpace(result.Stdout))
			return nil
		},
	}

	cmd.Flags().StringVarP(&image, "image", "i", "", "Image to deploy")
	markFlagsRequired(cmd, "image")
	return cmd
}

func newDockerInspectCmd(a *app) *cobra.Command {
	var (
		image     string
		plainHTTP bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Resolve an image in its registry",
		Long: `Resolve an image reference against its OCI registry and print the
manifest digest, media type and size without pulling any layers.

Registries are queried anonymously; private images report an error.`,
		Example: `  devops docker inspect -i nginx:alpine
  devops docker inspect -i localhost:5000/myapp:dev --plain-http`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateImageName(image); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			client := registry.NewClient(registry.WithPlainHTTP(plainHTTP))

			a.log.WithField("image", image).Debug("resolving image")
			resolved, err := client.Resolve(cmd.Context(), image)
			if err != nil {
				printFailure(out, err)
				return nil
			}

			printSuccess(out, "Resolved %s", resolved.Reference)
			fmt.Fprintf(out, "  Digest:     %s\n", resolved.Descriptor.Digest)
			fmt.Fprintf(out, "  Media type: %s (%s)\n", resolved.Descriptor.MediaType, resolved.Kind())
			fmt.Fprintf(out, "  Size:       %d bytes\n", resolved.Descriptor.Size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&image, "image", "i", "", "Image reference to resolve")
	cmd.Flags().BoolVar(&plainHTTP, "plain-http", false, "use HTTP instead of HTTPS to reach the registry")
	markFlagsRequired(cmd, "image")
	return cmd
}
