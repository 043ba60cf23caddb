package buildsteps

import "settingskit/pkg/dsl"

// dotnetCommand is the runner type of every dotnet CLI step; the command
// parameter picks the subcommand.
const dotnetCommand = "dotnet"

func dotnet(command string) dsl.Param {
	return dsl.Param{Name: "command", Value: command}
}

// DotCover runs a process under the dotCover coverage tool.
type DotCover struct {
	dsl.BuildStep
	DockerWrapper
	ToolPath             *dsl.StringProp
	Executable           *dsl.StringProp
	CommandLineArguments *dsl.StringProp
	GenerateReport       *dsl.BoolProp
	SnapshotPaths        *dsl.StringProp
	AssemblyFilters      *dsl.StringProp
	AttributeFilters     *dsl.StringProp
	CoverArguments       *dsl.StringProp
}

func NewDotCover(init func(*DotCover)) *DotCover {
	s := &DotCover{}
	s.Init("dotcover", dsl.Param{Name: "dotNetCoverage.tool", Value: "dotcover"})
	s.ToolPath = s.String("toolPath", "dotNetCoverage.dotCover.home.path")
	s.Executable = s.String("executable", "dotNetCoverage.dotCover.coveredProcessExecutable")
	s.CommandLineArguments = s.String("commandLineArguments", "dotNetCoverage.dotCover.coveredProcessArguments")
	s.GenerateReport = s.Bool("generateReport", "dotNetCoverage.dotCover.generateReport")
	s.SnapshotPaths = s.String("snapshotPaths", "dotNetCoverage.dotCover.additionalShapshotPaths")
	s.AssemblyFilters = s.String("assemblyFilters", "dotNetCoverage.dotCover.filters")
	s.AttributeFilters = s.String("attributeFilters", "dotNetCoverage.dotCover.attributeFilters")
	s.CoverArguments = s.String("coverArguments", "dotNetCoverage.dotCover.customCmd")
	s.declareDocker(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddDotCover(steps *dsl.BuildSteps, init func(*DotCover)) *DotCover {
	s := NewDotCover(init)
	steps.Add(s)
	return s
}

type DotnetNugetDelete struct {
	dsl.BuildStep
	DockerWrapper
	ServerURL *dsl.StringProp
	PackageID *dsl.StringProp
	APIKey    *dsl.StringProp
	Args      *dsl.StringProp
	Logging   *dsl.EnumProp[Verbosity]
	Sdk       *dsl.StringProp
}

func NewDotnetNugetDelete(init func(*DotnetNugetDelete)) *DotnetNugetDelete {
	s := &DotnetNugetDelete{}
	s.Init(dotnetCommand, dotnet("nuget-delete"))
	s.ServerURL = s.String("serverUrl", "nuget.packageSource").Required()
	s.PackageID = s.String("packageId", "nuget.packageId").Required()
	s.APIKey = s.String("apiKey", "secure:nuget.apiKey").Required()
	s.Args = s.String("args", "args")
	s.Logging = verbosity(&s.PropertySet)
	s.Sdk = s.String("sdk", "required.sdk")
	s.declareDocker(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddDotnetNugetDelete(steps *dsl.BuildSteps, init func(*DotnetNugetDelete)) *DotnetNugetDelete {
	s := NewDotnetNugetDelete(init)
	steps.Add(s)
	return s
}

type DotnetRun struct {
	dsl.BuildStep
	DockerWrapper
	Projects      *dsl.StringProp
	WorkingDir    *dsl.StringProp
	Framework     *dsl.StringProp
	Configuration *dsl.StringProp
	Runtime       *dsl.StringProp
	SkipBuild     *dsl.BoolProp
	Args          *dsl.StringProp
	Logging       *dsl.EnumProp[Verbosity]
	Sdk           *dsl.StringProp
}

func NewDotnetRun(init func(*DotnetRun)) *DotnetRun {
	s := &DotnetRun{}
	s.Init(dotnetCommand, dotnet("run"))
	s.Projects = s.String("projects", "paths")
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.Framework = s.String("framework", "framework")
	s.Configuration = s.String("configuration", "configuration")
	s.Runtime = s.String("runtime", "runtime")
	s.SkipBuild = s.Bool("skipBuild", "skipBuild").Encoded("true", "")
	s.Args = s.String("args", "args")
	s.Logging = verbosity(&s.PropertySet)
	s.Sdk = s.String("sdk", "required.sdk")
	s.declareDocker(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddDotnetRun(steps *dsl.BuildSteps, init func(*DotnetRun)) *DotnetRun {
	s := NewDotnetRun(init)
	steps.Add(s)
	return s
}

// DotnetCoverage selects the coverage tool wrapping dotnet test.
type DotnetCoverage interface {
	dsl.Variant
	dotnetCoverage()
}

type DotnetDotCoverCoverage struct {
	dsl.VariantBase
	ToolPath         *dsl.StringProp
	AssemblyFilters  *dsl.StringProp
	AttributeFilters *dsl.StringProp
	Args             *dsl.StringProp
}

func NewDotnetDotCoverCoverage() *DotnetDotCoverCoverage {
	v := &DotnetDotCoverCoverage{VariantBase: dsl.NewVariant("dotcover")}
	v.ToolPath = v.String("toolPath", "dotNetCoverage.dotCover.home.path")
	v.AssemblyFilters = v.String("assemblyFilters", "dotNetCoverage.dotCover.filters")
	v.AttributeFilters = v.String("attributeFilters", "dotNetCoverage.dotCover.attributeFilters")
	v.Args = v.String("args", "dotNetCoverage.dotCover.customCmd")
	return v
}

func (*DotnetDotCoverCoverage) dotnetCoverage() {}

type DotnetTest struct {
	dsl.BuildStep
	DockerWrapper
	Projects         *dsl.StringProp
	ExcludedProjects *dsl.StringProp
	WorkingDir       *dsl.StringProp
	Filter           *dsl.StringProp
	Framework        *dsl.StringProp
	Configuration    *dsl.StringProp
	OutputDir        *dsl.StringProp
	SkipBuild        *dsl.BoolProp
	SingleSession    *dsl.BoolProp
	SettingsFile     *dsl.StringProp
	MaxRetries       *dsl.StringProp
	Args             *dsl.StringProp
	Logging          *dsl.EnumProp[Verbosity]
	Sdk              *dsl.StringProp
	Coverage         *dsl.CompoundProp[DotnetCoverage]
}

func NewDotnetTest(init func(*DotnetTest)) *DotnetTest {
	s := &DotnetTest{}
	s.Init(dotnetCommand, dotnet("test"))
	s.Projects = s.String("projects", "paths")
	s.ExcludedProjects = s.String("excludedProjects", "excludedPaths")
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.Filter = s.String("filter", "test.testCaseFilter")
	s.Framework = s.String("framework", "framework")
	s.Configuration = s.String("configuration", "configuration")
	s.OutputDir = s.String("outputDir", "outputDir")
	s.SkipBuild = s.Bool("skipBuild", "skipBuild").Encoded("true", "")
	s.SingleSession = s.Bool("singleSession", "singleSession").Encoded("true", "")
	s.SettingsFile = s.String("settingsFile", "test.settingsFile")
	s.MaxRetries = s.String("maxRetries", "test.retry.maxRetries")
	s.Args = s.String("args", "args")
	s.Logging = verbosity(&s.PropertySet)
	s.Sdk = s.String("sdk", "required.sdk")
	s.Coverage = dsl.Compound(&s.PropertySet, "coverage", "dotNetCoverage.tool",
		dsl.VariantDef[DotnetCoverage]{Name: "dotcover", New: func() DotnetCoverage { return NewDotnetDotCoverCoverage() }},
	)
	s.declareDocker(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddDotnetTest(steps *dsl.BuildSteps, init func(*DotnetTest)) *DotnetTest {
	s := NewDotnetTest(init)
	steps.Add(s)
	return s
}

// NuGetMode selects between restore and install of NuGet packages.
type NuGetMode interface {
	dsl.Variant
	nugetMode()
}

type NuGetInstall struct {
	dsl.VariantBase
	ExcludeVersion *dsl.BoolProp
}

func NewNuGetInstall() *NuGetInstall {
	v := &NuGetInstall{VariantBase: dsl.NewVariant("install")}
	v.ExcludeVersion = v.Bool("excludeVersion", "nuget.excludeVersion").Encoded("true", "")
	return v
}

func (*NuGetInstall) nugetMode() {}

// NuGetUpdateMode selects what drives a package update.
type NuGetUpdateMode string

const (
	NuGetUpdateSolutionFile   NuGetUpdateMode = "SolutionFile"
	NuGetUpdatePackagesConfig NuGetUpdateMode = "PackagesConfig"
)

// NuGetUpdatePackages selects whether packages are updated after install.
type NuGetUpdatePackages interface {
	dsl.Variant
	nugetUpdatePackages()
}

type NuGetUpdateParams struct {
	dsl.VariantBase
	ExcludeVersion    *dsl.BoolProp
	Mode              *dsl.EnumProp[NuGetUpdateMode]
	IncludePreRelease *dsl.BoolProp
	UseSafe           *dsl.BoolProp
	Args              *dsl.StringProp
}

func NewNuGetUpdateParams() *NuGetUpdateParams {
	v := &NuGetUpdateParams{VariantBase: dsl.NewVariant("")}
	v.ExcludeVersion = v.Bool("excludeVersion", "nuget.excludeVersion").Encoded("true", "")
	v.Mode = dsl.Enum(&v.PropertySet, "mode", "nuget.updatePackages.mode",
		NuGetUpdateSolutionFile, NuGetUpdatePackagesConfig,
	).Mapped(map[NuGetUpdateMode]string{
		NuGetUpdateSolutionFile:   "sln",
		NuGetUpdatePackagesConfig: "perConfig",
	})
	v.IncludePreRelease = v.Bool("includePreRelease", "nuget.updatePackages.include.prerelease").Encoded("true", "")
	v.UseSafe = v.Bool("useSafe", "nuget.updatePackages.safe").Encoded("true", "")
	v.Args = v.String("args", "nuget.update.commandline")
	return v
}

func (*NuGetUpdateParams) nugetUpdatePackages() {}

type NuGetInstaller struct {
	dsl.BuildStep
	ToolPath       *dsl.StringProp
	Projects       *dsl.StringProp
	Mode           *dsl.CompoundProp[NuGetMode]
	NoCache        *dsl.BoolProp
	Sources        *dsl.StringProp
	Args           *dsl.StringProp
	UpdatePackages *dsl.CompoundProp[NuGetUpdatePackages]
}

func NewNuGetInstaller(init func(*NuGetInstaller)) *NuGetInstaller {
	s := &NuGetInstaller{}
	s.Init("jb.nuget.installer")
	s.ToolPath = s.String("toolPath", "nuget.path")
	s.Projects = s.String("projects", "sln.path")
	s.Mode = dsl.Compound(&s.PropertySet, "mode", "nuget.use.restore",
		dsl.VariantDef[NuGetMode]{Name: "install", New: func() NuGetMode { return NewNuGetInstall() }},
	)
	s.NoCache = s.Bool("noCache", "nuget.noCache").Encoded("true", "")
	s.Sources = s.String("sources", "nuget.sources")
	s.Args = s.String("args", "nuget.restore.commandline")
	s.UpdatePackages = dsl.Compound(&s.PropertySet, "updatePackages", "nuget.updatePackages",
		dsl.VariantDef[NuGetUpdatePackages]{Name: "updateParams", New: func() NuGetUpdatePackages { return NewNuGetUpdateParams() }},
	)
	if init != nil {
		init(s)
	}
	return s
}

func AddNuGetInstaller(steps *dsl.BuildSteps, init func(*NuGetInstaller)) *NuGetInstaller {
	s := NewNuGetInstaller(init)
	steps.Add(s)
	return s
}

type NuGetPublish struct {
	dsl.BuildStep
	ToolPath  *dsl.StringProp
	Packages  *dsl.StringProp
	ServerURL *dsl.StringProp
	APIKey    *dsl.StringProp
	Args      *dsl.StringProp
}

func NewNuGetPublish(init func(*NuGetPublish)) *NuGetPublish {
	s := &NuGetPublish{}
	s.Init("jb.nuget.publish")
	s.ToolPath = s.String("toolPath", "nuget.path")
	s.Packages = s.String("packages", "nuget.publish.files")
	s.ServerURL = s.String("serverUrl", "nuget.publish.source").Required()
	s.APIKey = s.String("apiKey", "secure:nuget.api.key").Required()
	s.Args = s.String("args", "nuget.push.commandline")
	if init != nil {
		init(s)
	}
	return s
}

func AddNuGetPublish(steps *dsl.BuildSteps, init func(*NuGetPublish)) *NuGetPublish {
	s := NewNuGetPublish(init)
	steps.Add(s)
	return s
}
