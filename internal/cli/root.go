package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LoriKarikari/devops/internal/config"
	"github.com/LoriKarikari/devops/internal/core/tool"
	"github.com/LoriKarikari/devops/internal/logging"
)

// app holds everything a single command execution needs. A fresh app is
// built for every root command so nothing is shared between runs.
type app struct {
	configPath string
	logLevel   string
	debug      bool

	logLevelSet bool

	cfg     *config.Config
	log     *logrus.Logger
	runner  tool.Runner
	docker  tool.Tool
	kubectl tool.Tool
}

type Option func(*app)

// WithRunner replaces the process runner used for docker and kubectl.
func WithRunner(r tool.Runner) Option {
	return func(a *app) {
		a.runner = r
	}
}

// WithConfig skips config file discovery and uses cfg instead.
func WithConfig(cfg config.Config) Option {
	return func(a *app) {
		a.cfg = &cfg
	}
}

func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:   "devops",
		Short: "DevOps CLI Toolkit - Automation for Docker, Kubernetes & Infrastructure",
		Long: `DevOps CLI Toolkit - Automation for Docker, Kubernetes & Infrastructure.

devops wraps the docker and kubectl command-line tools behind a small set of
grouped commands. Failures of the wrapped tools are reported on stdout with a
leading ✗ marker; successful results are prefixed with ✓.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logging.New(cmd.ErrOrStderr(), a.level(""))
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: false,
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $HOME/.devops/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", logging.DefaultLevel, "diagnostic log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "log every external command to stderr")

	for _, cmd := range []*cobra.Command{
		newDockerCmd(a),
		newK8sCmd(a),
		newInfraCmd(a),
		newMonitorCmd(a),
		newHealthCmd(),
		newVersionCmd(),
	} {
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// level picks the log level: --debug, then an explicit --log-level, then the
// configured level.
func (a *app) level(configured string) string {
	switch {
	case a.debug:
		return logrus.DebugLevel.String()
	case configured != "" && !a.logLevelSet:
		return configured
	default:
		return a.logLevel
	}
}

// prepare loads the config and resolves the wrapped tools. Only commands that
// read the config or launch a process call it; health and version never do.
func (a *app) prepare(cmd *cobra.Command) error {
	// Arguments are valid by now; config and tool errors are not usage errors.
	cmd.SilenceUsage = true

	if a.cfg == nil {
		cfg, err := loadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = &cfg
	}

	a.logLevelSet = cmd.Flags().Changed("log-level")
	a.log = logging.New(cmd.ErrOrStderr(), a.level(a.cfg.LogLevel))

	var err error
	if a.docker, err = tool.Parse(a.cfg.DockerBin); err != nil {
		return fmt.Errorf("invalid docker_bin: %w", err)
	}
	if a.kubectl, err = tool.Parse(a.cfg.KubectlBin); err != nil {
		return fmt.Errorf("invalid kubectl_bin: %w", err)
	}

	if a.runner == nil {
		a.runner = tool.NewExecRunner(a.log)
	}

	for _, t := range []tool.Tool{a.docker, a.kubectl} {
		if !t.Exists() {
			a.log.WithField("tool", t.Command).Debug("not found on PATH")
		}
	}

	a.log.WithFields(logrus.Fields{
		"command": cmd.CommandPath(),
		"docker":  a.docker.String(),
		"kubectl": a.kubectl.String(),
	}).Debug("dispatching")

	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return cfg, nil
	}

	defaultPath, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}

	cfg, err := config.Load(defaultPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config %s: %w", defaultPath, err)
	}
	return cfg, nil
}
