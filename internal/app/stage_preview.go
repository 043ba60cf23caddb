package app

import (
	"context"
	"fmt"
	"log/slog"

	"settingskit/internal/errors"
	"settingskit/internal/preview"
	"settingskit/internal/renderer"
	"settingskit/internal/ui"
	"settingskit/pkg/blueprint"
)

// PreviewStage loads the rendered settings into a throwaway CI server and
// waits until the server accepts or rejects them.
type PreviewStage struct {
	settings        *Settings
	output          blueprint.Output
	providerFactory *ProviderFactory
	isDryRun        bool
	hold            bool
	console         *ui.Console
}

// NewPreviewStage creates a new preview stage instance
func NewPreviewStage(settings *Settings, output blueprint.Output, providerFactory *ProviderFactory, isDryRun, hold bool, console *ui.Console) *PreviewStage {
	return &PreviewStage{
		settings:        settings,
		output:          output,
		providerFactory: providerFactory,
		isDryRun:        isDryRun,
		hold:            hold,
		console:         console,
	}
}

// Name returns the name of the stage
func (s *PreviewStage) Name() ExecutionStage {
	return StagePreview
}

// Execute performs the preview stage logic
func (s *PreviewStage) Execute(ctx context.Context, state *ExecutionState) error {
	cfg := s.settings.Blueprint.Spec.Preview
	if s.output.Format != renderer.FormatXML {
		err := fmt.Errorf("preview requires xml output, got %q", s.output.Format)
		return errors.NewPreviewError(
			"The preview server only reads XML settings",
			err.Error(),
			"Render with --format xml to preview",
			err,
		)
	}

	if s.isDryRun {
		image := cfg.Image
		if image == "" {
			image = "the default server image"
		}
		s.console.PrintMuted(fmt.Sprintf("DRY RUN: Would start %s with %s mounted at %s",
			image, s.output.Destination, preview.ProjectsDirectory))
		s.console.PrintSuccess("✅ Preview simulation completed successfully")
		return nil
	}

	previewer, err := s.providerFactory.GetPreviewer(cfg.Runtime)
	if err != nil {
		return errors.NewRuntimeError(
			"Container runtime is not available",
			err.Error(),
			"Make sure Docker is installed and running",
			err,
		)
	}

	if s.hold {
		s.console.PrintMuted("The server keeps running after it is ready; interrupt to stop it")
	}
	result, err := previewer.Preview(ctx, cfg, s.output.Destination, s.hold)
	if err != nil {
		return errors.NewPreviewError(
			"The preview server did not accept the settings",
			err.Error(),
			"Inspect the server output in the log and fix the reported settings",
			err,
		)
	}

	s.console.PrintSuccess(fmt.Sprintf("✅ Preview server accepted the settings: %s", result.URL))
	slog.Info("Preview stage completed successfully", "url", result.URL, "lines", result.Lines)
	return nil
}
