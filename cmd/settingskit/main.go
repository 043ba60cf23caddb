package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"settingskit/internal/app"
	"settingskit/internal/config"
	"settingskit/internal/errors"
	"settingskit/internal/ui"
)

// version is set at build time via ldflags
var version = "dev"

// cli holds what every subcommand shares once the root command ran.
type cli struct {
	configPath string
	cfg        *config.Config
	console    *ui.Console
}

func newRootCommand(console *ui.Console) *cobra.Command {
	c := &cli{console: console}

	rootCmd := &cobra.Command{
		Use:     "settingskit",
		Short:   "SettingsKit - typed CI server settings from a blueprint",
		Version: version,
		Long: `SettingsKit builds CI server project settings from a blueprint file. It
validates every build step, trigger, feature and VCS root against its mandatory
properties, renders the settings tree in the layout the server reads, publishes
it to GitLab and loads it into a throwaway server to check it.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return errors.NewConfigError(
					"Failed to load the SettingsKit configuration",
					err.Error(),
					"Fix .settingskit.yaml or the SETTINGSKIT_* environment variables",
					err,
				)
			}
			c.cfg = cfg
			setDefaultLogger(cfg)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to the SettingsKit config file (default .settingskit.yaml)")

	rootCmd.AddCommand(
		c.validateCommand(),
		c.renderCommand(),
		c.publishCommand(),
		c.previewCommand(),
		c.applyCommand(),
		c.watchCommand(),
		c.kindsCommand(),
	)
	return rootCmd
}

// options returns the workflow options shared by all commands. Per-command
// flags are applied by the caller.
func (c *cli) options() app.Options {
	return app.Options{
		DefaultFormat: c.cfg.OutputFormat,
		StateFile:     c.cfg.StateFile,
		Console:       c.console,
		Factory:       app.NewProviderFactory(c.cfg.Secrets.GitLabToken, c.cfg.PreviewImage),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand(ui.NewConsole()).ExecuteContext(ctx)
	stop()
	if err != nil {
		errors.HandleError(err)
		os.Exit(1)
	}
}
