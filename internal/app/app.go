package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"settingskit/internal/catalog"
	"settingskit/internal/errors"
	"settingskit/internal/parser"
	"settingskit/internal/renderer"
	"settingskit/internal/ui"
	"settingskit/pkg/blueprint"
	"settingskit/pkg/dsl"
)

// Options control a workflow run.
type Options struct {
	DryRun      bool
	RetainState bool
	// Format overrides spec.output.format. DefaultFormat applies when neither
	// is set.
	Format        string
	DefaultFormat string
	// StateFile is where Apply records its progress.
	StateFile string
	// Hold keeps the preview server running until the context is cancelled.
	Hold    bool
	Console *ui.Console
	Factory *ProviderFactory
}

func (o Options) withDefaults() Options {
	if o.StateFile == "" {
		o.StateFile = DefaultStateFile
	}
	if o.DefaultFormat == "" {
		o.DefaultFormat = renderer.FormatXML
	}
	if o.Console == nil {
		o.Console = ui.NewConsole()
	}
	if o.Factory == nil {
		o.Factory = NewProviderFactory("", "")
	}
	return o
}

// output returns spec.output with the effective format filled in.
func (o Options) output(spec blueprint.Output) blueprint.Output {
	switch {
	case o.Format != "":
		spec.Format = o.Format
	case spec.Format == "":
		spec.Format = o.DefaultFormat
	}
	return spec
}

// Settings is a parsed blueprint together with the project tree built from it.
type Settings struct {
	Path      string
	Blueprint *blueprint.Blueprint
	Project   *dsl.Project
}

// Load parses the blueprint at path and builds its settings tree. It does not
// run the mandatory-field validation; see Check.
func Load(path string) (*Settings, error) {
	bp, err := parser.Parse(path)
	if err != nil {
		if stderrors.Is(err, parser.ErrNotFound) {
			return nil, errors.NewBlueprintError(
				"Blueprint file not found",
				path,
				"Check the path passed with --file",
				err,
			)
		}
		return nil, errors.NewParseError(
			fmt.Sprintf("Failed to parse blueprint %s", path),
			err.Error(),
			"Check the blueprint syntax and its required fields",
			err,
		)
	}
	slog.Info("Blueprint parsed successfully", "name", bp.Metadata.Name, "kind", bp.Kind)

	project, err := catalog.Build(bp)
	if err != nil {
		return nil, errors.NewSettingsError(
			fmt.Sprintf("Blueprint %s declares entities that cannot be built", path),
			err.Error(),
			"Run 'settingskit kinds' to list the supported kinds",
			err,
		)
	}

	return &Settings{Path: path, Blueprint: bp, Project: project}, nil
}

// Check loads the blueprint at path and validates every entity of its tree.
func Check(path string) (*Settings, error) {
	settings, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := validateProject(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func validateProject(settings *Settings) error {
	var collector dsl.ErrorCollector
	settings.Project.Validate(&collector)
	if collector.Len() == 0 {
		return nil
	}

	slog.Warn("Settings validation failed", "project", settings.Project.ID, "errors", collector.Len())
	err := collector.Err()
	return errors.NewSettingsError(
		fmt.Sprintf("Settings of project %s are invalid", settings.Project.ID),
		err.Error(),
		fmt.Sprintf("Set the reported properties in %s", settings.Path),
		err,
	)
}

// Apply runs every stage the blueprint configures: validate, render, and
// publish and preview when their sections are present. Progress is recorded
// in the state file so a failed run resumes after its last successful stage.
func Apply(ctx context.Context, blueprintPath string, opts Options) error {
	opts = opts.withDefaults()
	console := opts.Console
	slog.Info("Starting apply workflow", "blueprintPath", blueprintPath, "dryRun", opts.DryRun)

	state, err := loadState(opts.StateFile)
	if err != nil {
		return errors.NewFileSystemError(
			"Failed to load execution state",
			err.Error(),
			fmt.Sprintf("Remove %s to start a fresh run", opts.StateFile),
			err,
		)
	}

	if state != nil && state.BlueprintPath != blueprintPath {
		slog.Warn("State file belongs to another blueprint, starting fresh",
			"stateBlueprint", state.BlueprintPath, "blueprintPath", blueprintPath)
		state = nil
	}

	isResume := state != nil
	if isResume {
		nextStage := state.getNextStage()
		console.PrintWarning(fmt.Sprintf("State file found. Resuming from stage: %s", nextStage))
		slog.Info("Resuming apply workflow", "runId", state.RunID, "nextStage", nextStage, "lastStage", state.LastSuccessfulStage)
	} else {
		runID := uuid.New().String()
		state = newState(blueprintPath, runID)
		slog.Info("Starting new apply workflow", "runId", runID, "blueprintPath", blueprintPath)
	}

	if opts.DryRun {
		console.PrintWarning("DRY RUN MODE - No actual changes will be made")
		if isResume {
			console.PrintWarning(fmt.Sprintf("DRY RUN: Simulating resume from stage: %s", state.getNextStage()))
		}
	}

	settings, err := Load(blueprintPath)
	if err != nil {
		return err
	}

	stages := buildStages(settings, opts, StageCompleted)
	if err := execute(ctx, stages, state, opts); err != nil {
		return err
	}

	state.LastSuccessfulStage = StageCompleted
	if !opts.DryRun {
		if opts.RetainState {
			if err := saveState(opts.StateFile, state); err != nil {
				slog.Warn("Failed to save final state", "error", err)
			} else {
				slog.Info("State file retained for auditing", "file", opts.StateFile)
			}
		} else if err := removeStateFile(opts.StateFile); err != nil {
			slog.Warn("Failed to clean up state file", "error", err)
		}
	}

	if opts.DryRun {
		console.PrintSuccess("DRY RUN COMPLETED - All stages simulated successfully!")
	} else {
		console.PrintSuccess(fmt.Sprintf("Settings of '%s' applied successfully!", settings.Blueprint.Metadata.Name))
	}

	slog.Info("Apply workflow completed successfully", "blueprintName", settings.Blueprint.Metadata.Name, "dryRun", opts.DryRun)
	return nil
}

// Run executes the stages needed to reach target without recording state:
// validate alone, validate and render, or validate, render and then publish
// or preview.
func Run(ctx context.Context, blueprintPath string, target ExecutionStage, opts Options) error {
	opts = opts.withDefaults()

	settings, err := Load(blueprintPath)
	if err != nil {
		return err
	}

	spec := settings.Blueprint.Spec
	switch {
	case target == StagePublish && spec.SCM == nil:
		return errors.NewConfigError(
			"Nothing to publish",
			fmt.Sprintf("blueprint %s has no spec.scm section", blueprintPath),
			"Add an scm section naming the repository to publish to",
			fmt.Errorf("spec.scm is not configured"),
		)
	case target == StagePreview && spec.Preview == nil:
		// Preview works with defaults only.
		settings.Blueprint.Spec.Preview = &blueprint.Preview{}
	}

	return execute(ctx, buildStages(settings, opts, target), nil, opts)
}

// buildStages returns the stages leading up to and including target, in
// order. StageCompleted selects every stage the blueprint configures.
func buildStages(settings *Settings, opts Options, target ExecutionStage) []Stage {
	spec := settings.Blueprint.Spec
	output := opts.output(spec.Output)

	stages := []Stage{NewValidateStage(settings, output, opts.Console)}
	if target == StageValidate {
		return stages
	}
	stages = append(stages, NewRenderStage(settings, output, opts.DryRun, opts.Console))

	if spec.SCM != nil && (target == StagePublish || target == StageCompleted) {
		stages = append(stages, NewPublishStage(settings, output, opts.Factory, opts.DryRun, opts.Console))
	}
	if spec.Preview != nil && (target == StagePreview || target == StageCompleted) {
		stages = append(stages, NewPreviewStage(settings, output, opts.Factory, opts.DryRun, opts.Hold, opts.Console))
	}
	return stages
}

var stageTitles = map[ExecutionStage]string{
	StageValidate: "Validating settings",
	StageRender:   "Rendering settings files",
	StagePublish:  "Publishing settings",
	StagePreview:  "Loading settings into a preview server",
}

// execute runs stages in order. With a state, completed stages are skipped
// and progress is saved after each stage unless this is a dry run.
func execute(ctx context.Context, stages []Stage, state *ExecutionState, opts Options) error {
	console := opts.Console
	for i, stage := range stages {
		name := stage.Name()
		if state.shouldSkipStage(name) {
			console.PrintMuted(fmt.Sprintf("Stage %d: %s (skipped - already completed)", i+1, name))
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("workflow cancelled before stage %s: %w", name, err)
		}

		console.PrintInfo(fmt.Sprintf("Stage %d: %s", i+1, stageTitles[name]))
		if err := stage.Execute(ctx, state); err != nil {
			return err
		}

		if state == nil {
			continue
		}
		state.LastSuccessfulStage = name
		if !opts.DryRun {
			if err := saveState(opts.StateFile, state); err != nil {
				return errors.NewFileSystemError(
					fmt.Sprintf("Failed to save state after stage %s", name),
					err.Error(),
					"Check that the working directory is writable",
					err,
				)
			}
		}
	}
	return nil
}
