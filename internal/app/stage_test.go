package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skerrors "settingskit/internal/errors"
	"settingskit/pkg/blueprint"
)

func stageNames(stages []Stage) []ExecutionStage {
	names := make([]ExecutionStage, len(stages))
	for i, s := range stages {
		names[i] = s.Name()
	}
	return names
}

func TestBuildStages(t *testing.T) {
	tests := []struct {
		name     string
		sections []string
		target   ExecutionStage
		want     []ExecutionStage
	}{
		{"Apply without optional sections", nil, StageCompleted, []ExecutionStage{StageValidate, StageRender}},
		{"Apply with scm", []string{scmSection}, StageCompleted, []ExecutionStage{StageValidate, StageRender, StagePublish}},
		{"Apply with everything", []string{scmSection, previewSection}, StageCompleted, []ExecutionStage{StageValidate, StageRender, StagePublish, StagePreview}},
		{"Validate", []string{scmSection, previewSection}, StageValidate, []ExecutionStage{StageValidate}},
		{"Render", []string{scmSection, previewSection}, StageRender, []ExecutionStage{StageValidate, StageRender}},
		{"Preview skips publish", []string{scmSection, previewSection}, StagePreview, []ExecutionStage{StageValidate, StageRender, StagePreview}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.sections...)
			settings, err := Load(f.path)
			require.NoError(t, err)

			stages := buildStages(settings, f.options(testFactory(nil, nil)).withDefaults(), tt.target)
			assert.Equal(t, tt.want, stageNames(stages))
		})
	}
}

func TestPreviewStage_RequiresXML(t *testing.T) {
	f := newFixture(t, previewSection)
	settings, err := Load(f.path)
	require.NoError(t, err)

	runtime := &fakeRuntime{}
	opts := f.options(testFactory(nil, runtime)).withDefaults()
	stage := NewPreviewStage(settings, blueprint.Output{Destination: f.dest, Format: "yaml"}, opts.Factory, false, false, opts.Console)

	err = stage.Execute(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, skerrors.ErrPreviewFailed))
	assert.Contains(t, err.Error(), `preview requires xml output, got "yaml"`)
	assert.Empty(t, runtime.pulled)
}

func TestPreviewStage_ServerRejectsSettings(t *testing.T) {
	f := newFixture(t, previewSection)
	settings, err := Load(f.path)
	require.NoError(t, err)

	runtime := &fakeRuntime{output: "Failed to load project Acme\n"}
	opts := f.options(testFactory(nil, runtime)).withDefaults()
	stage := NewPreviewStage(settings, blueprint.Output{Destination: t.TempDir(), Format: "xml"}, opts.Factory, false, false, opts.Console)

	err = stage.Execute(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, skerrors.ErrPreviewFailed))
	assert.Contains(t, err.Error(), "server rejected the settings: Failed to load project Acme")
}

func TestPublishStage_ProviderUnavailable(t *testing.T) {
	f := newFixture(t, scmSection)
	settings, err := Load(f.path)
	require.NoError(t, err)

	opts := f.options(testFactory(nil, nil)).withDefaults()
	stage := NewPublishStage(settings, blueprint.Output{Destination: f.dest}, opts.Factory, false, opts.Console)

	err = stage.Execute(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, skerrors.ErrSCMFailed))

	var settingsErr *skerrors.SettingsKitError
	require.True(t, errors.As(err, &settingsErr))
	assert.Equal(t, "SCM provider initialization failed", settingsErr.Context)
}

func TestRenderStage_RecordsFiles(t *testing.T) {
	f := newFixture(t)
	settings, err := Load(f.path)
	require.NoError(t, err)

	opts := f.options(nil).withDefaults()
	state := newState(f.path, "run")
	stage := NewRenderStage(settings, blueprint.Output{Destination: f.dest, Format: "xml"}, false, opts.Console)

	require.NoError(t, stage.Execute(context.Background(), state))
	assert.Len(t, state.RenderedFiles, 3)
	assert.Contains(t, f.out.String(), "3 settings files rendered to: "+f.dest)
}

func TestRenderStage_InvalidDestination(t *testing.T) {
	f := newFixture(t)
	settings, err := Load(f.path)
	require.NoError(t, err)

	opts := f.options(nil).withDefaults()
	stage := NewRenderStage(settings, blueprint.Output{Destination: f.dest, Format: "toml"}, false, opts.Console)

	err = stage.Execute(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, skerrors.ErrRenderFailed))
}
