package app

import (
	"context"
	"fmt"
	"log/slog"

	"settingskit/internal/errors"
	"settingskit/internal/renderer"
	"settingskit/internal/ui"
	"settingskit/pkg/blueprint"
)

// RenderStage writes the settings tree to the output destination.
type RenderStage struct {
	settings *Settings
	output   blueprint.Output
	isDryRun bool
	console  *ui.Console
}

// NewRenderStage creates a new render stage instance
func NewRenderStage(settings *Settings, output blueprint.Output, isDryRun bool, console *ui.Console) *RenderStage {
	return &RenderStage{
		settings: settings,
		output:   output,
		isDryRun: isDryRun,
		console:  console,
	}
}

// Name returns the name of the stage
func (s *RenderStage) Name() ExecutionStage {
	return StageRender
}

// Execute performs the rendering stage logic
func (s *RenderStage) Execute(ctx context.Context, state *ExecutionState) error {
	result, err := renderer.Render(s.settings.Project, s.output, s.isDryRun)
	if err != nil {
		return errors.NewRenderError(
			fmt.Sprintf("Failed to render settings to %s", s.output.Destination),
			err.Error(),
			"Check the output destination and format in spec.output",
			err,
		)
	}
	if state != nil && !s.isDryRun {
		state.RenderedFiles = result.Written
	}

	if s.isDryRun {
		for _, path := range result.Written {
			s.console.PrintMuted(fmt.Sprintf("DRY RUN: Would create file: %s", path))
		}
		for _, path := range result.Removed {
			s.console.PrintMuted(fmt.Sprintf("DRY RUN: Would remove stale file: %s", path))
		}
		s.console.PrintSuccess(fmt.Sprintf("✅ Rendering simulation completed: %d files", len(result.Written)))
	} else {
		for _, path := range result.Removed {
			s.console.PrintMuted(fmt.Sprintf("Removed stale file: %s", path))
		}
		s.console.PrintSuccess(fmt.Sprintf("✅ %d settings files rendered to: %s", len(result.Written), s.output.Destination))
	}
	slog.Info("Rendering completed successfully", "destination", s.output.Destination,
		"format", s.output.Format, "files", len(result.Written), "removed", len(result.Removed), "dryRun", s.isDryRun)
	return nil
}
