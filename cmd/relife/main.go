package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"relife/internal/config"
	"relife/internal/content"
	"relife/internal/logging"
)

// cli holds what every command shares once the root has loaded the configuration.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.GameConfig
	log     *logging.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "relife",
		Short:         "ReLife life-sim engine tools",
		Long:          `Runs bot-only ReLife games, inspects saved snapshots and validates content tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().String("content", "", "content directory (defaults to the built-in tables)")
	_ = c.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = c.v.BindPFlag("content_dir", root.PersistentFlags().Lookup("content"))

	root.AddCommand(
		newSimulateCmd(c),
		newInspectCmd(c),
		newContentCmd(c),
		newVersionCmd(),
	)
	return root
}

// initConfig layers defaults, the config file, RELIFE_* variables and flags.
func (c *cli) initConfig() error {
	cfg, err := config.LoadWith(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger
	return nil
}

func (c *cli) catalog() (*content.Catalog, error) {
	cat, err := content.Open(c.cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return cat, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
