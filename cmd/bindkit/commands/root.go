package commands

import (
	"github.com/spf13/cobra"

	"github.com/dshills/bindkit/internal/config"
	"github.com/dshills/bindkit/internal/logging"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *logging.Logger
)

// Execute runs the CLI with the process arguments.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	configPath, logLevel = config.DefaultFile, ""
	cfg, logger = nil, nil

	root := &cobra.Command{
		Use:          "bindkit",
		Short:        "Declarative property bindings",
		Version:      version + " (" + commit + ")",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				c.Log.Level = logLevel
				if err := c.Validate(); err != nil {
					return err
				}
			}
			cfg = c
			logger = c.Logger(cmd.ErrOrStderr())
			if c.Path != "" {
				logger.Debug("configuration loaded from %s", c.Path)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(validateCmd(), watchCmd(), demoCmd(), configCmd())
	return root
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
}
