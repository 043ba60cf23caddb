package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skerrors "settingskit/internal/errors"
	"settingskit/internal/scm"
)

func TestLoad(t *testing.T) {
	f := newFixture(t)

	settings, err := Load(f.path)
	require.NoError(t, err)

	assert.Equal(t, f.path, settings.Path)
	assert.Equal(t, "acme", settings.Blueprint.Metadata.Name)
	assert.Equal(t, "Acme", settings.Project.ID)
	require.Len(t, settings.Project.BuildTypes, 1)
	assert.Equal(t, 1, settings.Project.BuildTypes[0].Steps.Len())
	require.Len(t, settings.Project.SubProjects, 1)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, skerrors.ErrBlueprintNotFound))
	})

	t.Run("Malformed blueprint", func(t *testing.T) {
		f := newFixture(t)
		f.write(t, "apiVersion: [settingskit\n")

		_, err := Load(f.path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, skerrors.ErrBlueprintParseFailed))
	})

	t.Run("Unknown kind", func(t *testing.T) {
		f := newFixture(t)
		content, err := os.ReadFile(f.path)
		require.NoError(t, err)
		f.write(t, strings.Replace(string(content), "kind: script", "kind: teleport", 1))

		_, err = Load(f.path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, skerrors.ErrSettingsInvalid))
		assert.Contains(t, err.Error(), "teleport")
	})
}

func TestCheck_ReportsMissingProperties(t *testing.T) {
	f := newFixture(t)
	content, err := os.ReadFile(f.path)
	require.NoError(t, err)
	f.write(t, strings.Replace(string(content), `          - kind: script
            name: Hello
            properties:
              scriptContent: echo hello
`, `          - kind: csharpScriptFile
            name: Run script
`, 1))

	_, err = Check(f.path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, skerrors.ErrSettingsInvalid))

	var settingsErr *skerrors.SettingsKitError
	require.True(t, errors.As(err, &settingsErr))
	assert.Equal(t, "Settings of project Acme are invalid", settingsErr.Context)
	assert.Contains(t, settingsErr.Cause, "mandatory 'path' property is not specified")
}

func TestApply_RendersAndRemovesState(t *testing.T) {
	f := newFixture(t)

	err := Apply(context.Background(), f.path, f.options(testFactory(nil, nil)))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(f.dest, "Acme", "project-config.xml"))
	assert.FileExists(t, filepath.Join(f.dest, "Acme", "buildTypes", "Acme_Build.xml"))
	assert.FileExists(t, filepath.Join(f.dest, "Acme_Tools", "project-config.xml"))
	assert.NoFileExists(t, f.stateFile, "state file is removed after a successful run")

	output := f.out.String()
	assert.Contains(t, output, "Stage 1: Validating settings")
	assert.Contains(t, output, "Settings are valid: 2 projects, 1 build types, 0 VCS roots")
	assert.Contains(t, output, "Stage 2: Rendering settings files")
	assert.NotContains(t, output, "Stage 3", "publish and preview are not configured")
	assert.Contains(t, output, "Settings of 'acme' applied successfully!")
}

func TestApply_RetainState(t *testing.T) {
	f := newFixture(t)
	opts := f.options(testFactory(nil, nil))
	opts.RetainState = true

	require.NoError(t, Apply(context.Background(), f.path, opts))

	state, err := loadState(f.stateFile)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, StageCompleted, state.LastSuccessfulStage)
	assert.Equal(t, f.path, state.BlueprintPath)
	assert.NotEmpty(t, state.RunID)
	assert.Len(t, state.RenderedFiles, 3)
}

func TestApply_DryRun(t *testing.T) {
	f := newFixture(t, scmSection, previewSection)
	provider := &fakeScm{}
	runtime := &fakeRuntime{}
	opts := f.options(testFactory(provider, runtime))
	opts.DryRun = true

	require.NoError(t, Apply(context.Background(), f.path, opts))

	assert.NoDirExists(t, f.dest)
	assert.NoFileExists(t, f.stateFile)
	assert.Zero(t, provider.calls)
	assert.Empty(t, runtime.pulled)
	assert.Contains(t, f.errOut.String(), "DRY RUN MODE - No actual changes will be made")
	assert.Contains(t, f.out.String(), "DRY RUN: Would create file: "+filepath.Join(f.dest, "Acme", "project-config.xml"))
	assert.Contains(t, f.out.String(), "DRY RUN: Would ensure gitlab repository 'acme-settings' in namespace 'platform'")
	assert.Contains(t, f.out.String(), "DRY RUN COMPLETED")
}

func TestApply_AllStages(t *testing.T) {
	f := newFixture(t, scmSection, previewSection)
	provider := &fakeScm{result: &scm.PublishResult{RepoURL: "https://gitlab.example.com/platform/acme-settings.git", Created: true, Commit: "abc123"}}
	runtime := &fakeRuntime{output: "Starting\nTeamCity initialized\n"}

	require.NoError(t, Apply(context.Background(), f.path, f.options(testFactory(provider, runtime))))

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, f.dest, provider.dir)
	assert.Equal(t, []string{"jetbrains/teamcity-server:latest"}, runtime.pulled)
	assert.Equal(t, map[int]int{8111: 8112}, runtime.opts.Ports)

	output := f.out.String()
	assert.Contains(t, output, "Repository created and settings pushed: https://gitlab.example.com/platform/acme-settings.git")
	assert.Contains(t, output, "Preview server accepted the settings: http://localhost:8112")
}

func TestApply_PublishesWithoutDroppedBuildType(t *testing.T) {
	f := newFixture(t, scmSection)
	withDeploy := strings.Replace(readFile(t, f.path), "    subProjects:\n",
		"      - id: Acme_Deploy\n        name: Deploy\n    subProjects:\n", 1)
	f.write(t, withDeploy)

	provider := &fakeScm{result: &scm.PublishResult{RepoURL: "https://gitlab.example.com/platform/acme-settings.git", Commit: "abc123"}}
	opts := f.options(testFactory(provider, &fakeRuntime{}))

	require.NoError(t, Apply(context.Background(), f.path, opts))
	deploy := filepath.Join(f.dest, "Acme", "buildTypes", "Acme_Deploy.xml")
	require.FileExists(t, deploy)

	f.write(t, strings.Replace(withDeploy, "      - id: Acme_Deploy\n        name: Deploy\n", "", 1))
	require.NoError(t, Apply(context.Background(), f.path, opts))

	assert.NoFileExists(t, deploy)
	assert.FileExists(t, filepath.Join(f.dest, "Acme", "buildTypes", "Acme_Build.xml"))
	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, f.dest, provider.dir)
	assert.Contains(t, f.out.String(), "Removed stale file: "+deploy)
}

func TestApply_ResumesAfterFailure(t *testing.T) {
	f := newFixture(t, scmSection)
	provider := &fakeScm{err: errors.New("push rejected")}
	factory := testFactory(provider, nil)

	err := Apply(context.Background(), f.path, f.options(factory))
	require.Error(t, err)
	assert.True(t, errors.Is(err, skerrors.ErrSCMFailed))

	state, err := loadState(f.stateFile)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, StageRender, state.LastSuccessfulStage)

	// Rendered files from the first run must not be rewritten on resume.
	marker := filepath.Join(f.dest, "Acme", "project-config.xml")
	require.NoError(t, os.WriteFile(marker, []byte("kept"), 0644))

	provider.err = nil
	provider.result = &scm.PublishResult{RepoURL: "https://gitlab.example.com/platform/acme-settings.git", Commit: "def456"}
	f.out.Reset()

	require.NoError(t, Apply(context.Background(), f.path, f.options(factory)))

	content, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "kept", string(content))
	assert.Equal(t, 2, provider.calls)
	assert.Contains(t, f.errOut.String(), "State file found. Resuming from stage: publish")
	assert.Contains(t, f.out.String(), "Stage 1: validate (skipped - already completed)")
	assert.Contains(t, f.out.String(), "Stage 2: render (skipped - already completed)")
	assert.NoFileExists(t, f.stateFile)
}

func TestApply_StateOfAnotherBlueprintIsIgnored(t *testing.T) {
	f := newFixture(t)
	other := newState("/elsewhere/settings.yaml", "old-run")
	other.LastSuccessfulStage = StageRender
	require.NoError(t, saveState(f.stateFile, other))

	require.NoError(t, Apply(context.Background(), f.path, f.options(testFactory(nil, nil))))

	assert.FileExists(t, filepath.Join(f.dest, "Acme", "project-config.xml"))
	assert.NotContains(t, f.errOut.String(), "Resuming")
}

func TestApply_CorruptStateFile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.stateFile, []byte("{not json"), 0644))

	err := Apply(context.Background(), f.path, f.options(testFactory(nil, nil)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, skerrors.ErrFileSystemFailed))
}

func TestRun_Targets(t *testing.T) {
	tests := []struct {
		name        string
		target      ExecutionStage
		sections    []string
		wantStages  []string
		wantRender  bool
		wantPublish int
	}{
		{
			name:       "Validate only",
			target:     StageValidate,
			wantStages: []string{"Validating settings"},
		},
		{
			name:       "Render",
			target:     StageRender,
			sections:   []string{scmSection, previewSection},
			wantStages: []string{"Validating settings", "Rendering settings files"},
			wantRender: true,
		},
		{
			name:        "Publish",
			target:      StagePublish,
			sections:    []string{scmSection, previewSection},
			wantStages:  []string{"Validating settings", "Rendering settings files", "Publishing settings"},
			wantRender:  true,
			wantPublish: 1,
		},
		{
			name:       "Preview without a preview section uses defaults",
			target:     StagePreview,
			wantStages: []string{"Validating settings", "Rendering settings files", "Loading settings into a preview server"},
			wantRender: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.sections...)
			provider := &fakeScm{result: &scm.PublishResult{UpToDate: true}}
			runtime := &fakeRuntime{output: "TeamCity initialized\n"}

			require.NoError(t, Run(context.Background(), f.path, tt.target, f.options(testFactory(provider, runtime))))

			for i, title := range tt.wantStages {
				assert.Contains(t, f.out.String(), fmt.Sprintf("Stage %d: %s", i+1, title))
			}
			assert.NotContains(t, f.out.String(), fmt.Sprintf("Stage %d:", len(tt.wantStages)+1))
			if tt.wantRender {
				assert.DirExists(t, f.dest)
			} else {
				assert.NoDirExists(t, f.dest)
			}
			assert.Equal(t, tt.wantPublish, provider.calls)
			assert.NoFileExists(t, f.stateFile, "Run does not record state")
		})
	}
}

func TestRun_PublishWithoutSCM(t *testing.T) {
	f := newFixture(t)

	err := Run(context.Background(), f.path, StagePublish, f.options(testFactory(nil, nil)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, skerrors.ErrConfigInvalid))
	assert.NoDirExists(t, f.dest)
}

func TestRun_FormatOverride(t *testing.T) {
	f := newFixture(t)
	opts := f.options(testFactory(nil, nil))
	opts.Format = "json"
	opts.DefaultFormat = "yaml"

	require.NoError(t, Run(context.Background(), f.path, StageRender, opts))
	assert.FileExists(t, filepath.Join(f.dest, "Acme", "project-config.json"))

	f = newFixture(t)
	opts = f.options(testFactory(nil, nil))
	opts.DefaultFormat = "yaml"

	require.NoError(t, Run(context.Background(), f.path, StageRender, opts))
	assert.FileExists(t, filepath.Join(f.dest, "Acme", "project-config.yaml"))
}

func TestRun_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, f.path, StageRender, f.options(testFactory(nil, nil)))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
