package app

import (
	"context"
	"fmt"
	"log/slog"

	"settingskit/internal/errors"
	"settingskit/internal/ui"
	"settingskit/pkg/blueprint"
)

// PublishStage pushes the rendered settings to the repository named in
// spec.scm, creating it when needed.
type PublishStage struct {
	settings        *Settings
	output          blueprint.Output
	providerFactory *ProviderFactory
	isDryRun        bool
	console         *ui.Console
}

// NewPublishStage creates a new publish stage instance
func NewPublishStage(settings *Settings, output blueprint.Output, providerFactory *ProviderFactory, isDryRun bool, console *ui.Console) *PublishStage {
	return &PublishStage{
		settings:        settings,
		output:          output,
		providerFactory: providerFactory,
		isDryRun:        isDryRun,
		console:         console,
	}
}

// Name returns the name of the stage
func (s *PublishStage) Name() ExecutionStage {
	return StagePublish
}

// Execute performs the publish stage logic
func (s *PublishStage) Execute(ctx context.Context, state *ExecutionState) error {
	cfg := s.settings.Blueprint.Spec.SCM
	if s.isDryRun {
		s.console.PrintMuted(fmt.Sprintf("DRY RUN: Would ensure %s repository '%s' in namespace '%s'",
			cfg.Provider, cfg.Project.Name, cfg.Project.Namespace))
		s.console.PrintMuted(fmt.Sprintf("DRY RUN: Would commit and push %s", s.output.Destination))
		s.console.PrintSuccess("✅ Publish simulation completed successfully")
		return nil
	}

	provider, err := s.providerFactory.GetScmProvider(cfg.Provider, cfg.URL)
	if err != nil {
		return errors.NewSCMError(
			"SCM provider initialization failed",
			err.Error(),
			"Export GITLAB_PRIVATE_TOKEN with a token that has the api scope",
			err,
		)
	}

	result, err := provider.Publish(ctx, cfg, s.output.Destination)
	if err != nil {
		return errors.NewSCMError(
			fmt.Sprintf("Failed to publish settings to %s/%s", cfg.Project.Namespace, cfg.Project.Name),
			err.Error(),
			"Check that the namespace exists and the token may push to it",
			err,
		)
	}

	switch {
	case result.UpToDate:
		s.console.PrintSuccess(fmt.Sprintf("✅ Repository already up to date: %s", result.RepoURL))
	case result.Created:
		s.console.PrintSuccess(fmt.Sprintf("✅ Repository created and settings pushed: %s", result.RepoURL))
	default:
		s.console.PrintSuccess(fmt.Sprintf("✅ Settings pushed to: %s", result.RepoURL))
	}
	slog.Info("Publish stage completed successfully", "provider", cfg.Provider, "repoURL", result.RepoURL,
		"created", result.Created, "commit", result.Commit, "upToDate", result.UpToDate)
	return nil
}
