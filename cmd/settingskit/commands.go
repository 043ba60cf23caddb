package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"settingskit/internal/app"
	"settingskit/internal/errors"
	"settingskit/internal/watch"
)

// workflowFlags are the flags shared by the commands that run stages.
type workflowFlags struct {
	file   string
	dryRun bool
	format string
}

func (f *workflowFlags) register(cmd *cobra.Command, dryRunUsage string) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Path to the blueprint file (required)")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		slog.Error("Failed to mark file flag as required", "command", cmd.Name(), "error", err)
	}
	if dryRunUsage != "" {
		cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, dryRunUsage)
	}
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: xml, yaml or json (overrides spec.output.format)")
}

func (c *cli) run(cmd *cobra.Command, flags *workflowFlags, target app.ExecutionStage, hold bool) error {
	opts := c.options()
	opts.DryRun = flags.dryRun
	opts.Format = flags.format
	opts.Hold = hold
	return app.Run(cmd.Context(), flags.file, target, opts)
}

func (c *cli) validateCommand() *cobra.Command {
	flags := &workflowFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a blueprint for unset mandatory properties",
		Long: `Validate parses a blueprint, builds every entity it declares and reports
all unset mandatory properties, duplicate IDs and unknown VCS root references.
The tree is also encoded in the output format, without writing any file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, flags, app.StageValidate, false)
		},
	}
	flags.register(cmd, "")
	return cmd
}

func (c *cli) renderCommand() *cobra.Command {
	flags := &workflowFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the settings tree to the output destination",
		Long: `Render validates a blueprint and writes one directory per project with its
project configuration, build types and VCS roots under spec.output.destination.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, flags, app.StageRender, false)
		},
	}
	flags.register(cmd, "Print files that would be created without actually writing them")
	return cmd
}

func (c *cli) publishCommand() *cobra.Command {
	flags := &workflowFlags{}
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render the settings and push them to GitLab",
		Long: `Publish renders the settings and pushes them to the repository named in
spec.scm, creating the repository when it does not exist yet. The token is read
from GITLAB_PRIVATE_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, flags, app.StagePublish, false)
		},
	}
	flags.register(cmd, "Show what would be pushed without touching GitLab")
	return cmd
}

func (c *cli) previewCommand() *cobra.Command {
	flags := &workflowFlags{}
	var hold bool
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Load the rendered settings into a throwaway CI server",
		Long: `Preview renders the settings and starts the CI server in a container with
the settings mounted, waiting until the server accepts or rejects them. The
container is removed afterwards unless --hold keeps it running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, flags, app.StagePreview, hold)
		},
	}
	flags.register(cmd, "Show what would be started without running a container")
	cmd.Flags().BoolVar(&hold, "hold", false, "Keep the server running until interrupted")
	return cmd
}

func (c *cli) applyCommand() *cobra.Command {
	flags := &workflowFlags{}
	var retainState, hold bool
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Run every stage the blueprint configures",
		Long: `Apply validates and renders the settings, then publishes and previews them
when spec.scm and spec.preview are present. Progress is recorded in a state
file so a failed run resumes after its last successful stage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options()
			opts.DryRun = flags.dryRun
			opts.Format = flags.format
			opts.RetainState = retainState
			opts.Hold = hold
			return app.Apply(cmd.Context(), flags.file, opts)
		},
	}
	flags.register(cmd, "Simulate the workflow without making any changes")
	cmd.Flags().BoolVar(&retainState, "retain-state", false, "Keep the state file after successful completion for auditing purposes")
	cmd.Flags().BoolVar(&hold, "hold", false, "Keep the preview server running until interrupted")
	return cmd
}

func (c *cli) watchCommand() *cobra.Command {
	flags := &workflowFlags{}
	var render bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Revalidate a blueprint every time it changes",
		Long: `Watch validates the blueprint, then validates it again after every change
to the file until interrupted. With --render the settings are rendered as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := errors.NewErrorHandlerWithConsole(c.console)
			if err != nil {
				return fmt.Errorf("failed to create error handler: %w", err)
			}

			target := app.StageValidate
			if render {
				target = app.StageRender
			}
			check := func() {
				if err := c.run(cmd, flags, target, false); err != nil {
					handler.Handle(err)
					return
				}
				c.console.PrintMuted(fmt.Sprintf("Watching %s for changes", flags.file))
			}

			w, err := watch.New(flags.file, check,
				watch.WithDebounce(c.cfg.WatchDebounce),
				watch.WithLogger(slog.Default()),
			)
			if err != nil {
				return err
			}
			check()
			return w.Run(cmd.Context())
		},
	}
	flags.register(cmd, "")
	cmd.Flags().BoolVar(&render, "render", false, "Render the settings after each successful validation")
	return cmd
}
