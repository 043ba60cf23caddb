package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settingskit/pkg/blueprint"
	"settingskit/pkg/dsl"
	"settingskit/pkg/dsl/buildsteps"
	"settingskit/pkg/dsl/projectfeatures"
)

func TestKinds_FitTheirCollection(t *testing.T) {
	seen := make(map[Collection]map[string]bool)
	for _, k := range Kinds() {
		if seen[k.Collection] == nil {
			seen[k.Collection] = make(map[string]bool)
		}
		assert.False(t, seen[k.Collection][k.Name], "duplicate kind %s/%s", k.Collection, k.Name)
		seen[k.Collection][k.Name] = true

		d := k.New()
		assert.NotEmpty(t, d.Type(), k.Name)
		var ok bool
		switch k.Collection {
		case Steps:
			_, ok = d.(dsl.Step)
		case Triggers:
			_, ok = d.(dsl.BuildTrigger)
		case BuildFeatures:
			_, ok = d.(dsl.Feature)
		case ProjectFeatures:
			_, ok = d.(dsl.ProjectFeatureDefinition)
		case VcsRoots:
			_, ok = d.(dsl.VcsRootDefinition)
		case RemoteParams:
			_, ok = d.(dsl.RemoteParameterDefinition)
		}
		assert.True(t, ok, "kind %s does not fit collection %s", k.Name, k.Collection)
	}
}

func TestLookup(t *testing.T) {
	k, ok := Lookup(Steps, "script")
	require.True(t, ok)
	assert.Equal(t, "simpleRunner", k.Type())

	_, ok = Lookup(Triggers, "script")
	assert.False(t, ok)
}

func settings(project blueprint.Project) *blueprint.Blueprint {
	return &blueprint.Blueprint{
		APIVersion: "settingskit/v1",
		Kind:       "Settings",
		Metadata:   blueprint.Metadata{Name: "test"},
		Spec: blueprint.Spec{
			Project: project,
			Output:  blueprint.Output{Destination: "out"},
		},
	}
}

func TestBuild_Tree(t *testing.T) {
	disabled := false
	bp := settings(blueprint.Project{
		ID:     "Acme",
		Name:   "Acme",
		Params: blueprint.Params{{Name: "env.B", Value: "2"}, {Name: "env.A", Value: "1"}},
		Features: []blueprint.Entity{{
			Kind: "githubIssues",
			ID:   "PROJECT_EXT_1",
			Properties: blueprint.Values{
				{Name: "displayName", Value: "Acme"},
				{Name: "repositoryURL", Value: "https://github.com/acme/app"},
				{Name: "authType", Value: map[string]any{"variant": "accessToken", "accessToken": "credentialsJSON:abc"}},
			},
		}},
		VcsRoots: []blueprint.Entity{{
			Kind:       "tfs",
			ID:         "Acme_Tfs",
			Name:       "TFS",
			Properties: blueprint.Values{{Name: "url", Value: "https://tfs"}, {Name: "root", Value: "$/App"}},
		}},
		BuildTypes: []blueprint.BuildType{{
			ID:       "Acme_Build",
			Name:     "Build",
			VcsRoots: []string{"Acme_Tfs"},
			Steps: []blueprint.Entity{{
				Kind:    "script",
				Name:    "Hello",
				Enabled: &disabled,
				Properties: blueprint.Values{
					{Name: "scriptContent", Value: "echo hello"},
					{Name: "executionMode", Value: "RUN_ON_FAILURE"},
				},
				Params: blueprint.Params{{Name: "custom.param", Value: "x"}},
			}},
			Triggers: []blueprint.Entity{{Kind: "vcs", Properties: blueprint.Values{{Name: "quietPeriod", Value: 60}}}},
		}},
		SubProjects: []blueprint.Project{{ID: "Acme_Sub", Name: "Sub"}},
	})

	project, err := Build(bp)
	require.NoError(t, err)

	assert.Equal(t, []string{"env.B", "env.A"}, project.Params.Keys())
	require.Equal(t, 1, project.Features.Len())
	tracker, ok := project.Features.Items()[0].(*projectfeatures.GitHubIssueTracker)
	require.True(t, ok)
	assert.Equal(t, "PROJECT_EXT_1", tracker.Identifier())
	token, _ := tracker.Params().Get("secure:accessToken")
	assert.Equal(t, "credentialsJSON:abc", token)

	require.Equal(t, 1, project.VcsRoots.Len())
	assert.Equal(t, "TFS", dsl.VcsRootBase(project.VcsRoots.Items()[0]).Name)

	require.Len(t, project.BuildTypes, 1)
	bt := project.BuildTypes[0]
	assert.Equal(t, []string{"Acme_Tfs"}, bt.VcsRootIDs)
	step, ok := bt.Steps.Items()[0].(*buildsteps.Script)
	require.True(t, ok)
	assert.Equal(t, "Hello", step.Name)
	assert.False(t, step.Enabled)
	assert.Equal(t, "echo hello", step.ScriptContent.Value())
	mode, _ := step.Params().Get("teamcity.step.mode")
	assert.Equal(t, "execute_if_failed", mode)
	custom, _ := step.Params().Get("custom.param")
	assert.Equal(t, "x", custom)
	assert.True(t, dsl.TriggerBase(bt.Triggers.Items()[0]).Enabled)

	require.Len(t, project.SubProjects, 1)
	assert.Equal(t, "Acme_Sub", project.SubProjects[0].ID)

	var c dsl.ErrorCollector
	project.Validate(&c)
	assert.NoError(t, c.Err())
}

func TestBuild_Base(t *testing.T) {
	bp := settings(blueprint.Project{
		ID:   "Acme",
		Name: "Acme",
		BuildTypes: []blueprint.BuildType{{
			ID:   "Acme_Build",
			Name: "Build",
			Steps: []blueprint.Entity{
				{Kind: "script", ID: "template", Properties: blueprint.Values{
					{Name: "scriptContent", Value: "make"},
					{Name: "workingDir", Value: "src"},
				}},
				{Kind: "script", Base: "template", Properties: blueprint.Values{{Name: "scriptContent", Value: "make test"}}},
			},
		}},
	})

	project, err := Build(bp)
	require.NoError(t, err)

	derived := project.BuildTypes[0].Steps.Items()[1].(*buildsteps.Script)
	assert.Equal(t, "make test", derived.ScriptContent.Value())
	assert.Equal(t, "src", derived.WorkingDir.Value())
}

func TestBuild_Errors(t *testing.T) {
	bp := settings(blueprint.Project{
		ID:   "Acme",
		Name: "Acme",
		BuildTypes: []blueprint.BuildType{{
			ID:   "Acme_Build",
			Name: "Build",
			Steps: []blueprint.Entity{
				{Kind: "make"},
				{Kind: "script", Properties: blueprint.Values{{Name: "noSuchProp", Value: "x"}}},
				{Kind: "maven", Properties: blueprint.Values{{Name: "mavenVersion", Value: "bundled_1"}}},
				{Kind: "script", Base: "missing"},
				{Kind: "gradle", ID: "g"},
				{Kind: "script", Base: "g"},
			},
			Triggers: []blueprint.Entity{{Kind: "vcs", Properties: blueprint.Values{{Name: "quietPeriod", Value: "soon"}}}},
		}},
	})

	_, err := Build(bp)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"project Acme/buildTypes/Acme_Build/steps[0]: unknown kind 'make'",
		"steps[1]: kind 'script' has no property 'noSuchProp'",
		"steps[2]: property 'mavenVersion' has no variant 'bundled_1'",
		"steps[3]: base 'missing' is not declared earlier in the same list",
		"steps[5]: base 'g' is of type 'gradle-runner', not 'simpleRunner'",
		"triggers[0]: property 'quietPeriod' expects an integer",
	} {
		assert.Contains(t, msg, want)
	}
}
