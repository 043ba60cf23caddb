// Package triggers holds the build triggers that start builds of a build type.
package triggers

import "settingskit/pkg/dsl"

// QuietPeriodMode controls how long a VCS trigger waits after the last change.
type QuietPeriodMode string

const (
	QuietPeriodDoNotUse   QuietPeriodMode = "DO_NOT_USE"
	QuietPeriodUseDefault QuietPeriodMode = "USE_DEFAULT"
	QuietPeriodUseCustom  QuietPeriodMode = "USE_CUSTOM"
)

// VcsTrigger starts a build when changes are detected in the attached VCS
// roots.
type VcsTrigger struct {
	dsl.Trigger
	QuietPeriodMode            *dsl.EnumProp[QuietPeriodMode]
	QuietPeriod                *dsl.IntProp
	TriggerRules               *dsl.StringProp
	BranchFilter               *dsl.StringProp
	WatchChangesInDependencies *dsl.BoolProp
	PerCheckinTriggering       *dsl.BoolProp
	GroupCheckinsByCommitter   *dsl.BoolProp
	EnableQueueOptimization    *dsl.BoolProp
}

func NewVcsTrigger(init func(*VcsTrigger)) *VcsTrigger {
	t := &VcsTrigger{}
	t.Init("vcsTrigger")
	t.QuietPeriodMode = dsl.Enum(&t.PropertySet, "quietPeriodMode", "quietPeriodMode",
		QuietPeriodDoNotUse, QuietPeriodUseDefault, QuietPeriodUseCustom)
	t.QuietPeriod = t.Int("quietPeriod", "quietPeriod")
	t.TriggerRules = t.String("triggerRules", "triggerRules")
	t.BranchFilter = t.String("branchFilter", "branchFilter")
	t.WatchChangesInDependencies = t.Bool("watchChangesInDependencies", "watchChangesInDependencies").Encoded("true", "")
	t.PerCheckinTriggering = t.Bool("perCheckinTriggering", "perCheckinTriggering").Encoded("true", "")
	t.GroupCheckinsByCommitter = t.Bool("groupCheckinsByCommitter", "groupCheckinsByCommitter").Encoded("true", "")
	t.EnableQueueOptimization = t.Bool("enableQueueOptimization", "enableQueueOptimization").Encoded("true", "")
	if init != nil {
		init(t)
	}
	return t
}

func AddVcsTrigger(triggers *dsl.Triggers, init func(*VcsTrigger)) *VcsTrigger {
	t := NewVcsTrigger(init)
	triggers.Add(t)
	return t
}

// FinishBuildTrigger starts a build when another build type finishes.
type FinishBuildTrigger struct {
	dsl.Trigger
	BuildTypeExtID *dsl.StringProp
	// Deprecated: use BuildTypeExtID. Both write the same parameter.
	BuildType      *dsl.StringProp
	SuccessfulOnly *dsl.BoolProp
	BranchFilter   *dsl.StringProp
}

func NewFinishBuildTrigger(init func(*FinishBuildTrigger)) *FinishBuildTrigger {
	t := &FinishBuildTrigger{}
	t.Init("buildDependencyTrigger")
	t.BuildTypeExtID = t.String("buildTypeExtId", "dependsOn")
	t.BuildType = t.String("buildType", "dependsOn")
	t.SuccessfulOnly = t.Bool("successfulOnly", "afterSuccessfulBuildOnly").Encoded("true", "")
	t.BranchFilter = t.String("branchFilter", "branchFilter")
	if init != nil {
		init(t)
	}
	return t
}

func AddFinishBuildTrigger(triggers *dsl.Triggers, init func(*FinishBuildTrigger)) *FinishBuildTrigger {
	t := NewFinishBuildTrigger(init)
	triggers.Add(t)
	return t
}

// MavenArtifactDependencyTrigger starts a build when a Maven artifact changes
// in a repository.
type MavenArtifactDependencyTrigger struct {
	dsl.Trigger
	GroupID               *dsl.StringProp
	ArtifactID            *dsl.StringProp
	Version               *dsl.StringProp
	ArtifactType          *dsl.StringProp
	Classifier            *dsl.StringProp
	RepoURL               *dsl.StringProp
	RepoID                *dsl.StringProp
	SkipIfRunning         *dsl.BoolProp
	UserSettingsSelection *dsl.StringProp
	UserSettingsPath      *dsl.StringProp
}

func NewMavenArtifactDependencyTrigger(init func(*MavenArtifactDependencyTrigger)) *MavenArtifactDependencyTrigger {
	t := &MavenArtifactDependencyTrigger{}
	t.Init("mavenArtifactDependencyTrigger")
	t.GroupID = t.String("groupId", "groupId").Required()
	t.ArtifactID = t.String("artifactId", "artifactId").Required()
	t.Version = t.String("version", "version").Required()
	t.ArtifactType = t.String("artifactType", "type")
	t.Classifier = t.String("classifier", "classifier")
	t.RepoURL = t.String("repoUrl", "repoUrl")
	t.RepoID = t.String("repoId", "repoId")
	t.SkipIfRunning = t.Bool("skipIfRunning", "skipIfRunning")
	t.UserSettingsSelection = t.String("userSettingsSelection", "userSettingsSelection")
	t.UserSettingsPath = t.String("userSettingsPath", "userSettingsPath")
	if init != nil {
		init(t)
	}
	return t
}

func AddMavenArtifactDependencyTrigger(triggers *dsl.Triggers, init func(*MavenArtifactDependencyTrigger)) *MavenArtifactDependencyTrigger {
	t := NewMavenArtifactDependencyTrigger(init)
	triggers.Add(t)
	return t
}

// MavenSnapshotDependencyTrigger starts a build when a snapshot dependency of
// the build's Maven project is updated.
type MavenSnapshotDependencyTrigger struct {
	dsl.Trigger
	SkipIfRunning *dsl.BoolProp
}

func NewMavenSnapshotDependencyTrigger(init func(*MavenSnapshotDependencyTrigger)) *MavenSnapshotDependencyTrigger {
	t := &MavenSnapshotDependencyTrigger{}
	t.Init("mavenSnapshotDependencyTrigger")
	t.SkipIfRunning = t.Bool("skipIfRunning", "skipIfRunning")
	if init != nil {
		init(t)
	}
	return t
}

func AddMavenSnapshotDependencyTrigger(triggers *dsl.Triggers, init func(*MavenSnapshotDependencyTrigger)) *MavenSnapshotDependencyTrigger {
	t := NewMavenSnapshotDependencyTrigger(init)
	triggers.Add(t)
	return t
}

// NuGetDependency starts a build when a new version of a NuGet package is
// published to a feed.
type NuGetDependency struct {
	dsl.Trigger
	NugetPath         *dsl.StringProp
	FeedURL           *dsl.StringProp
	Username          *dsl.StringProp
	Password          *dsl.StringProp
	PackageID         *dsl.StringProp
	PackageVersion    *dsl.StringProp
	IncludePrerelease *dsl.BoolProp
}

func NewNuGetDependency(init func(*NuGetDependency)) *NuGetDependency {
	t := &NuGetDependency{}
	t.Init("nuget.simple")
	t.NugetPath = t.String("nugetPath", "nuget.exe").Required()
	t.FeedURL = t.String("feedURL", "nuget.source")
	t.Username = t.String("username", "nuget.username")
	t.Password = t.String("password", "secure:nuget.password")
	t.PackageID = t.String("packageId", "nuget.package").Required()
	t.PackageVersion = t.String("packageVersion", "nuget.version")
	t.IncludePrerelease = t.Bool("includePrerelease", "nuget.include.prerelease").Encoded("true", "")
	if init != nil {
		init(t)
	}
	return t
}

func AddNuGetDependency(triggers *dsl.Triggers, init func(*NuGetDependency)) *NuGetDependency {
	t := NewNuGetDependency(init)
	triggers.Add(t)
	return t
}

// PerforceShelveTrigger starts a personal build for shelved Perforce
// changelists whose description contains Keyword.
type PerforceShelveTrigger struct {
	dsl.Trigger
	Keyword *dsl.StringProp
}

func NewPerforceShelveTrigger(init func(*PerforceShelveTrigger)) *PerforceShelveTrigger {
	t := &PerforceShelveTrigger{}
	t.Init("perforceShelveTrigger")
	t.Keyword = t.String("keyword", "clDescriptionKeyword")
	if init != nil {
		init(t)
	}
	return t
}

func AddPerforceShelveTrigger(triggers *dsl.Triggers, init func(*PerforceShelveTrigger)) *PerforceShelveTrigger {
	t := NewPerforceShelveTrigger(init)
	triggers.Add(t)
	return t
}

// RetryBuildTrigger re-queues a failed build.
type RetryBuildTrigger struct {
	dsl.Trigger
	DelaySeconds              *dsl.IntProp
	Attempts                  *dsl.IntProp
	MoveToTheQueueTop         *dsl.BoolProp
	RetryWithTheSameRevisions *dsl.BoolProp
	BranchFilter              *dsl.StringProp
}

func NewRetryBuildTrigger(init func(*RetryBuildTrigger)) *RetryBuildTrigger {
	t := &RetryBuildTrigger{}
	t.Init("retryBuildTrigger")
	t.DelaySeconds = t.Int("delaySeconds", "enqueueTimeout")
	t.Attempts = t.Int("attempts", "retryAttempts")
	t.MoveToTheQueueTop = t.Bool("moveToTheQueueTop", "moveToTheQueueTop")
	t.RetryWithTheSameRevisions = t.Bool("retryWithTheSameRevisions", "reRunBuildWithTheSameRevisions").Encoded("true", "")
	t.BranchFilter = t.String("branchFilter", "branchFilter")
	if init != nil {
		init(t)
	}
	return t
}

func AddRetryBuildTrigger(triggers *dsl.Triggers, init func(*RetryBuildTrigger)) *RetryBuildTrigger {
	t := NewRetryBuildTrigger(init)
	triggers.Add(t)
	return t
}
