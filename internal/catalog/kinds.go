// Package catalog maps blueprint kind names to settings entities and builds
// the project tree a blueprint describes.
package catalog

import (
	"sort"

	"settingskit/pkg/dsl"
	"settingskit/pkg/dsl/buildfeatures"
	"settingskit/pkg/dsl/buildsteps"
	"settingskit/pkg/dsl/projectfeatures"
	"settingskit/pkg/dsl/remoteparameters"
	"settingskit/pkg/dsl/triggers"
	"settingskit/pkg/dsl/vcs"
)

// Collection names the list an entity kind can be registered in.
type Collection string

const (
	Steps           Collection = "steps"
	Triggers        Collection = "triggers"
	BuildFeatures   Collection = "buildFeatures"
	ProjectFeatures Collection = "projectFeatures"
	VcsRoots        Collection = "vcsRoots"
	RemoteParams    Collection = "remoteParams"
)

// Kind is a registered entity kind.
type Kind struct {
	Name       string
	Collection Collection
	New        func() dsl.Definition
}

// Type returns the discriminator the server reads for the kind.
func (k Kind) Type() string {
	return k.New().Type()
}

func kind[T dsl.Definition](c Collection, name string, newEntity func(func(T)) T) Kind {
	return Kind{Name: name, Collection: c, New: func() dsl.Definition { return newEntity(nil) }}
}

var kinds = []Kind{
	kind(Steps, "script", buildsteps.NewScript),
	kind(Steps, "exec", buildsteps.NewExec),
	kind(Steps, "csharpScriptFile", buildsteps.NewCSharpScriptFile),
	kind(Steps, "kotlinScriptCustom", buildsteps.NewKotlinScriptCustom),
	kind(Steps, "kotlinScriptFile", buildsteps.NewKotlinScriptFile),
	kind(Steps, "dockerCommand", buildsteps.NewDockerCommand),
	kind(Steps, "dockerCompose", buildsteps.NewDockerCompose),
	kind(Steps, "dotCover", buildsteps.NewDotCover),
	kind(Steps, "dotnetNugetDelete", buildsteps.NewDotnetNugetDelete),
	kind(Steps, "dotnetRun", buildsteps.NewDotnetRun),
	kind(Steps, "dotnetTest", buildsteps.NewDotnetTest),
	kind(Steps, "nuGetInstaller", buildsteps.NewNuGetInstaller),
	kind(Steps, "nuGetPublish", buildsteps.NewNuGetPublish),
	kind(Steps, "gradle", buildsteps.NewGradle),
	kind(Steps, "maven", buildsteps.NewMaven),
	kind(Steps, "qodana", buildsteps.NewQodana),
	kind(Steps, "sshExec", buildsteps.NewSSHExec),
	kind(Steps, "sshUpload", buildsteps.NewSSHUpload),

	kind(Triggers, "vcs", triggers.NewVcsTrigger),
	kind(Triggers, "finishBuildTrigger", triggers.NewFinishBuildTrigger),
	kind(Triggers, "mavenArtifact", triggers.NewMavenArtifactDependencyTrigger),
	kind(Triggers, "mavenSnapshot", triggers.NewMavenSnapshotDependencyTrigger),
	kind(Triggers, "nuGetDependency", triggers.NewNuGetDependency),
	kind(Triggers, "perforceShelveTrigger", triggers.NewPerforceShelveTrigger),
	kind(Triggers, "retryBuild", triggers.NewRetryBuildTrigger),

	kind(BuildFeatures, "applitools", buildfeatures.NewApplitools),
	kind(BuildFeatures, "approval", buildfeatures.NewApproval),
	kind(BuildFeatures, "buildCache", buildfeatures.NewBuildCacheFeature),
	kind(BuildFeatures, "dockerSupport", buildfeatures.NewDockerSupportFeature),
	kind(BuildFeatures, "golang", buildfeatures.NewGolangFeature),
	kind(BuildFeatures, "investigationsAutoAssigner", buildfeatures.NewInvestigationsAutoAssigner),
	kind(BuildFeatures, "npmConnection", buildfeatures.NewNpmConnectionBuildFeature),
	kind(BuildFeatures, "nuGetFeedCredentials", buildfeatures.NewNuGetFeedCredentials),
	kind(BuildFeatures, "nuGetPackagesIndexer", buildfeatures.NewNuGetPackagesIndexer),
	kind(BuildFeatures, "perfmon", buildfeatures.NewPerfmon),
	kind(BuildFeatures, "provideAwsCredentials", buildfeatures.NewProvideAwsCredentials),
	kind(BuildFeatures, "sshAgent", buildfeatures.NewSshAgent),
	kind(BuildFeatures, "vcsLabeling", buildfeatures.NewVcsLabeling),
	kind(BuildFeatures, "pullRequests", buildfeatures.NewPullRequests),

	kind(ProjectFeatures, "awsConnection", projectfeatures.NewAwsConnection),
	kind(ProjectFeatures, "hashiCorpVaultConnection", projectfeatures.NewHashiCorpVaultConnection),
	kind(ProjectFeatures, "githubConnection", projectfeatures.NewGitHubConnection),
	kind(ProjectFeatures, "gheConnection", projectfeatures.NewGHEConnection),
	kind(ProjectFeatures, "githubAppConnection", projectfeatures.NewGitHubAppConnection),
	kind(ProjectFeatures, "gitlabConnection", projectfeatures.NewGitLabConnection),
	kind(ProjectFeatures, "gitlabEEConnection", projectfeatures.NewGitLabEEConnection),
	kind(ProjectFeatures, "bitbucketCloudConnection", projectfeatures.NewBitbucketCloudConnection),
	kind(ProjectFeatures, "bitbucketServerConnection", projectfeatures.NewBitbucketServerConnection),
	kind(ProjectFeatures, "azureDevOpsOAuthConnection", projectfeatures.NewAzureDevOpsOAuthConnection),
	kind(ProjectFeatures, "azureDevOpsConnection", projectfeatures.NewAzureDevopsConnection),
	kind(ProjectFeatures, "spaceConnection", projectfeatures.NewJetBrainsSpaceConnection),
	kind(ProjectFeatures, "googleConnection", projectfeatures.NewGoogleConnection),
	kind(ProjectFeatures, "slackConnection", projectfeatures.NewSlackConnection),
	kind(ProjectFeatures, "perforceAdminAccess", projectfeatures.NewPerforceAdminConnection),
	kind(ProjectFeatures, "githubIssues", projectfeatures.NewGitHubIssueTracker),
	kind(ProjectFeatures, "bitbucketIssues", projectfeatures.NewBitbucketIssueTracker),
	kind(ProjectFeatures, "gitlabIssues", projectfeatures.NewGitLabIssueTracker),
	kind(ProjectFeatures, "jira", projectfeatures.NewJiraIssueTracker),
	kind(ProjectFeatures, "tfsIssues", projectfeatures.NewTfsIssueTracker),
	kind(ProjectFeatures, "youtrack", projectfeatures.NewYouTrackIssueTracker),
	kind(ProjectFeatures, "dockerRegistry", projectfeatures.NewDockerRegistryConnection),
	kind(ProjectFeatures, "dockerECRRegistry", projectfeatures.NewDockerECRConnection),
	kind(ProjectFeatures, "npmRegistry", projectfeatures.NewNpmRegistryConnection),
	kind(ProjectFeatures, "nuGetFeed", projectfeatures.NewNuGetFeed),
	kind(ProjectFeatures, "buildReportTab", projectfeatures.NewBuildReportTab),
	kind(ProjectFeatures, "cloudIntegration", projectfeatures.NewCloudIntegration),
	kind(ProjectFeatures, "untrustedBuilds", projectfeatures.NewUntrustedBuildsSettings),
	kind(ProjectFeatures, "activeStorage", projectfeatures.NewActiveStorage),
	kind(ProjectFeatures, "s3Storage", projectfeatures.NewS3Storage),
	kind(ProjectFeatures, "s3CompatibleStorage", projectfeatures.NewS3CompatibleStorage),

	kind(VcsRoots, "perforce", vcs.NewPerforce),
	kind(VcsRoots, "tfs", vcs.NewTfs),

	kind(RemoteParams, "hashiCorpVault", remoteparameters.NewHashiCorpVaultParameter),
}

var registry = func() map[Collection]map[string]Kind {
	r := make(map[Collection]map[string]Kind)
	for _, k := range kinds {
		if r[k.Collection] == nil {
			r[k.Collection] = make(map[string]Kind)
		}
		r[k.Collection][k.Name] = k
	}
	return r
}()

// Lookup finds the kind registered under name in c.
func Lookup(c Collection, name string) (Kind, bool) {
	k, ok := registry[c][name]
	return k, ok
}

// Kinds returns every registered kind ordered by collection, then name.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Collection != out[j].Collection {
			return out[i].Collection < out[j].Collection
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the kind names registered in c, sorted.
func Names(c Collection) []string {
	var names []string
	for name := range registry[c] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
