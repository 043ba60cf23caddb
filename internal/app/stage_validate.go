package app

import (
	"context"
	"fmt"
	"log/slog"

	"settingskit/internal/errors"
	"settingskit/internal/renderer"
	"settingskit/internal/ui"
	"settingskit/pkg/blueprint"
	"settingskit/pkg/dsl"
)

// ValidateStage checks every entity of the settings tree for unset mandatory
// properties, duplicate IDs and unknown VCS root references, then encodes it
// in the output format without writing anything.
type ValidateStage struct {
	settings *Settings
	output   blueprint.Output
	console  *ui.Console
}

// NewValidateStage creates a new validate stage instance
func NewValidateStage(settings *Settings, output blueprint.Output, console *ui.Console) *ValidateStage {
	return &ValidateStage{
		settings: settings,
		output:   output,
		console:  console,
	}
}

// Name returns the name of the stage
func (s *ValidateStage) Name() ExecutionStage {
	return StageValidate
}

// Execute performs the validation stage logic
func (s *ValidateStage) Execute(ctx context.Context, state *ExecutionState) error {
	if err := validateProject(s.settings); err != nil {
		return err
	}
	if _, err := renderer.Documents(s.settings.Project, s.output); err != nil {
		return errors.NewSettingsError(
			fmt.Sprintf("Settings of project %s cannot be encoded as %s", s.settings.Project.ID, s.output.Format),
			err.Error(),
			"Pass --format xml, yaml or json, or set spec.output.format",
			err,
		)
	}

	stats := countTree(s.settings.Project)
	s.console.PrintSuccess(fmt.Sprintf("✅ Settings are valid: %d projects, %d build types, %d VCS roots",
		stats.projects, stats.buildTypes, stats.vcsRoots))
	slog.Info("Validation completed successfully", "project", s.settings.Project.ID, "format", s.output.Format,
		"projects", stats.projects, "buildTypes", stats.buildTypes, "vcsRoots", stats.vcsRoots)
	return nil
}

type treeStats struct {
	projects   int
	buildTypes int
	vcsRoots   int
}

func countTree(p *dsl.Project) treeStats {
	stats := treeStats{projects: 1, buildTypes: len(p.BuildTypes), vcsRoots: p.VcsRoots.Len()}
	for _, sub := range p.SubProjects {
		s := countTree(sub)
		stats.projects += s.projects
		stats.buildTypes += s.buildTypes
		stats.vcsRoots += s.vcsRoots
	}
	return stats
}
