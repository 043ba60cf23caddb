// Package buildfeatures holds the build features that can be attached to a
// build type.
package buildfeatures

import "settingskit/pkg/dsl"

// Approval holds queued builds until the listed users or groups approve them.
type Approval struct {
	dsl.BuildFeature
	ApprovalRules      *dsl.StringProp
	Timeout            *dsl.IntProp
	ManualRunsApproved *dsl.BoolProp
}

func NewApproval(init func(*Approval)) *Approval {
	f := &Approval{}
	f.Init("approval-feature")
	f.ApprovalRules = f.String("approvalRules", "rules").Required()
	f.Timeout = f.Int("timeout", "timeout")
	f.ManualRunsApproved = f.Bool("manualRunsApproved", "manualStartIsApproval").Encoded("true", "")
	if init != nil {
		init(f)
	}
	return f
}

func AddApproval(features *dsl.BuildFeatures, init func(*Approval)) *Approval {
	f := NewApproval(init)
	features.Add(f)
	return f
}

// BuildCacheFeature publishes and restores a named build cache.
type BuildCacheFeature struct {
	dsl.BuildFeature
	CacheName          *dsl.StringProp
	Use                *dsl.BoolProp
	Publish            *dsl.BoolProp
	PublishOnlyChanged *dsl.BoolProp
	Rules              *dsl.StringProp
}

func NewBuildCacheFeature(init func(*BuildCacheFeature)) *BuildCacheFeature {
	f := &BuildCacheFeature{}
	f.Init("jetbrains.buildserver.feature.build.cache")
	f.CacheName = f.String("name", "cache-name").Required()
	f.Use = f.Bool("use", "use-cache").Encoded("true", "")
	f.Publish = f.Bool("publish", "publish-cache").Encoded("true", "")
	f.PublishOnlyChanged = f.Bool("publishOnlyChanged", "publish-only-changed").Encoded("true", "")
	f.Rules = f.String("rules", "publish-cache-rules")
	if init != nil {
		init(f)
	}
	return f
}

func AddBuildCacheFeature(features *dsl.BuildFeatures, init func(*BuildCacheFeature)) *BuildCacheFeature {
	f := NewBuildCacheFeature(init)
	features.Add(f)
	return f
}

// DockerRegistryLogin selects whether the build logs in to registries.
type DockerRegistryLogin interface {
	dsl.Variant
	dockerRegistryLogin()
}

// DockerRegistryLoginOn logs in to the registry connections listed in
// DockerRegistryID before the build starts.
type DockerRegistryLoginOn struct {
	dsl.VariantBase
	DockerRegistryID *dsl.StringProp
}

func NewDockerRegistryLoginOn() *DockerRegistryLoginOn {
	v := &DockerRegistryLoginOn{VariantBase: dsl.NewVariant("on")}
	v.DockerRegistryID = v.String("dockerRegistryId", "login2registry").Required()
	return v
}

func (*DockerRegistryLoginOn) dockerRegistryLogin() {}

type DockerSupportFeature struct {
	dsl.BuildFeature
	CleanupPushedImages *dsl.BoolProp
	LoginToRegistry     *dsl.CompoundProp[DockerRegistryLogin]
}

func NewDockerSupportFeature(init func(*DockerSupportFeature)) *DockerSupportFeature {
	f := &DockerSupportFeature{}
	f.Init("DockerSupport")
	f.CleanupPushedImages = f.Bool("cleanupPushedImages", "cleanupPushed").Encoded("true", "")
	f.LoginToRegistry = dsl.Compound(&f.PropertySet, "loginToRegistry", "loginCheckbox",
		dsl.VariantDef[DockerRegistryLogin]{Name: "on", New: func() DockerRegistryLogin { return NewDockerRegistryLoginOn() }},
	)
	if init != nil {
		init(f)
	}
	return f
}

func AddDockerSupportFeature(features *dsl.BuildFeatures, init func(*DockerSupportFeature)) *DockerSupportFeature {
	f := NewDockerSupportFeature(init)
	features.Add(f)
	return f
}

// GolangFeature reports go test output as build tests.
type GolangFeature struct {
	dsl.BuildFeature
	TestFormat *dsl.StringProp
}

func NewGolangFeature(init func(*GolangFeature)) *GolangFeature {
	f := &GolangFeature{}
	f.Init("golang")
	f.TestFormat = f.String("testFormat", "test.format").Required()
	if init != nil {
		init(f)
	}
	return f
}

func AddGolangFeature(features *dsl.BuildFeatures, init func(*GolangFeature)) *GolangFeature {
	f := NewGolangFeature(init)
	features.Add(f)
	return f
}

type InvestigationsAutoAssigner struct {
	dsl.BuildFeature
	DefaultAssignee           *dsl.StringProp
	ExcludeUsers              *dsl.StringProp
	IgnoreCompilationProblems *dsl.BoolProp
	IgnoreExitCodeProblems    *dsl.BoolProp
	AssignOnSecondFailure     *dsl.BoolProp
}

func NewInvestigationsAutoAssigner(init func(*InvestigationsAutoAssigner)) *InvestigationsAutoAssigner {
	f := &InvestigationsAutoAssigner{}
	f.Init("InvestigationsAutoAssigner")
	f.DefaultAssignee = f.String("defaultAssignee", "defaultAssignee.username")
	f.ExcludeUsers = f.String("excludeUsers", "excludeAssignees.usernames")
	f.IgnoreCompilationProblems = f.Bool("ignoreCompilationProblems", "ignoreBuildProblems.compilation")
	f.IgnoreExitCodeProblems = f.Bool("ignoreExitCodeProblems", "ignoreBuildProblems.exitCode")
	f.AssignOnSecondFailure = f.Bool("assignOnSecondFailure", "assignOnSecondFailure").Encoded("true", "")
	if init != nil {
		init(f)
	}
	return f
}

func AddInvestigationsAutoAssigner(features *dsl.BuildFeatures, init func(*InvestigationsAutoAssigner)) *InvestigationsAutoAssigner {
	f := NewInvestigationsAutoAssigner(init)
	features.Add(f)
	return f
}

// NpmConnectionBuildFeature exposes an npm registry connection to the build.
type NpmConnectionBuildFeature struct {
	dsl.BuildFeature
	ConnectionID *dsl.StringProp
}

func NewNpmConnectionBuildFeature(init func(*NpmConnectionBuildFeature)) *NpmConnectionBuildFeature {
	f := &NpmConnectionBuildFeature{}
	f.Init("NpmRegistryConnection")
	f.ConnectionID = f.String("connectionId", "connectionId").Required()
	if init != nil {
		init(f)
	}
	return f
}

func AddNpmConnectionBuildFeature(features *dsl.BuildFeatures, init func(*NpmConnectionBuildFeature)) *NpmConnectionBuildFeature {
	f := NewNpmConnectionBuildFeature(init)
	features.Add(f)
	return f
}

// NuGetFeedCredentials provides credentials for an external NuGet feed.
type NuGetFeedCredentials struct {
	dsl.BuildFeature
	FeedURL  *dsl.StringProp
	Username *dsl.StringProp
	Password *dsl.StringProp
}

func NewNuGetFeedCredentials(init func(*NuGetFeedCredentials)) *NuGetFeedCredentials {
	f := &NuGetFeedCredentials{}
	f.Init("jb.nuget.auth")
	f.FeedURL = f.String("feedUrl", "nuget.auth.feed")
	f.Username = f.String("username", "nuget.auth.username")
	f.Password = f.String("password", "secure:nuget.auth.password")
	if init != nil {
		init(f)
	}
	return f
}

func AddNuGetFeedCredentials(features *dsl.BuildFeatures, init func(*NuGetFeedCredentials)) *NuGetFeedCredentials {
	f := NewNuGetFeedCredentials(init)
	features.Add(f)
	return f
}

// NuGetPackagesIndexer indexes packages published by the build into a project feed.
type NuGetPackagesIndexer struct {
	dsl.BuildFeature
	Feed *dsl.StringProp
}

func NewNuGetPackagesIndexer(init func(*NuGetPackagesIndexer)) *NuGetPackagesIndexer {
	f := &NuGetPackagesIndexer{}
	f.Init("NuGetPackagesIndexer")
	f.Feed = f.String("feed", "feed")
	if init != nil {
		init(f)
	}
	return f
}

func AddNuGetPackagesIndexer(features *dsl.BuildFeatures, init func(*NuGetPackagesIndexer)) *NuGetPackagesIndexer {
	f := NewNuGetPackagesIndexer(init)
	features.Add(f)
	return f
}

// Perfmon collects agent CPU, memory and disk usage during the build.
type Perfmon struct {
	dsl.BuildFeature
}

func NewPerfmon(init func(*Perfmon)) *Perfmon {
	f := &Perfmon{}
	f.Init("perfmon")
	if init != nil {
		init(f)
	}
	return f
}

func AddPerfmon(features *dsl.BuildFeatures, init func(*Perfmon)) *Perfmon {
	f := NewPerfmon(init)
	features.Add(f)
	return f
}

type ProvideAwsCredentials struct {
	dsl.BuildFeature
	AwsConnectionID *dsl.StringProp
	SessionDuration *dsl.StringProp
}

func NewProvideAwsCredentials(init func(*ProvideAwsCredentials)) *ProvideAwsCredentials {
	f := &ProvideAwsCredentials{}
	f.Init("PROVIDE_AWS_CREDS")
	f.AwsConnectionID = f.String("awsConnectionId", "awsConnectionId").Required()
	f.SessionDuration = f.String("sessionDuration", "awsSessionDuration")
	if init != nil {
		init(f)
	}
	return f
}

func AddProvideAwsCredentials(features *dsl.BuildFeatures, init func(*ProvideAwsCredentials)) *ProvideAwsCredentials {
	f := NewProvideAwsCredentials(init)
	features.Add(f)
	return f
}

// SshAgent loads an uploaded SSH key into an agent for the build's duration.
type SshAgent struct {
	dsl.BuildFeature
	TeamcitySshKey *dsl.StringProp
	Passphrase     *dsl.StringProp
}

func NewSshAgent(init func(*SshAgent)) *SshAgent {
	f := &SshAgent{}
	f.Init("ssh-agent-build-feature")
	f.TeamcitySshKey = f.String("teamcitySshKey", "teamcitySshKey")
	f.Passphrase = f.String("passphrase", "secure:passphrase")
	if init != nil {
		init(f)
	}
	return f
}

func AddSshAgent(features *dsl.BuildFeatures, init func(*SshAgent)) *SshAgent {
	f := NewSshAgent(init)
	features.Add(f)
	return f
}

type VcsLabeling struct {
	dsl.BuildFeature
	VcsRootExtID *dsl.StringProp
	// Deprecated: use VcsRootExtID. Both write the same parameter.
	VcsRootID       *dsl.StringProp
	LabelingPattern *dsl.StringProp
	SuccessfulOnly  *dsl.BoolProp
	BranchFilter    *dsl.StringProp
}

func NewVcsLabeling(init func(*VcsLabeling)) *VcsLabeling {
	f := &VcsLabeling{}
	f.Init("VcsLabeling")
	f.VcsRootExtID = f.String("vcsRootExtId", "vcsRootId")
	f.VcsRootID = f.String("vcsRootId", "vcsRootId")
	f.LabelingPattern = f.String("labelingPattern", "labelingPattern")
	f.SuccessfulOnly = f.Bool("successfulOnly", "successfulOnly").Encoded("true", "")
	f.BranchFilter = f.String("branchFilter", "branchFilter")
	if init != nil {
		init(f)
	}
	return f
}

func AddVcsLabeling(features *dsl.BuildFeatures, init func(*VcsLabeling)) *VcsLabeling {
	f := NewVcsLabeling(init)
	features.Add(f)
	return f
}
