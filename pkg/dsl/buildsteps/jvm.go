package buildsteps

import "settingskit/pkg/dsl"

type Gradle struct {
	dsl.BuildStep
	DockerWrapper
	Tasks             *dsl.StringProp
	BuildFile         *dsl.StringProp
	Incremental       *dsl.BoolProp
	WorkingDir        *dsl.StringProp
	GradleHome        *dsl.StringProp
	GradleParams      *dsl.StringProp
	UseGradleWrapper  *dsl.BoolProp
	GradleWrapperPath *dsl.StringProp
	EnableDebug       *dsl.BoolProp
	EnableStacktrace  *dsl.BoolProp
	JdkHome           *dsl.StringProp
	JvmArgs           *dsl.StringProp
	CoverageEngine    *dsl.CompoundProp[CoverageEngine]
}

func NewGradle(init func(*Gradle)) *Gradle {
	s := &Gradle{}
	s.Init("gradle-runner")
	s.Tasks = s.String("tasks", "ui.gradleRunner.gradle.tasks.names")
	// The server reads this key with the capital U.
	s.BuildFile = s.String("buildFile", "ui.gradleRUnner.gradle.build.file")
	s.Incremental = s.Bool("incremental", "ui.gradleRunner.gradle.incremental").Encoded("true", "")
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.GradleHome = s.String("gradleHome", "ui.gradleRunner.gradle.home")
	s.GradleParams = s.String("gradleParams", "ui.gradleRunner.additional.gradle.cmd.params")
	s.UseGradleWrapper = s.Bool("useGradleWrapper", "ui.gradleRunner.gradle.wrapper.useWrapper").Encoded("true", "")
	s.GradleWrapperPath = s.String("gradleWrapperPath", "ui.gradleRunner.gradle.wrapper.path")
	s.EnableDebug = s.Bool("enableDebug", "ui.gradleRunner.gradle.debug.enabled").Encoded("true", "")
	s.EnableStacktrace = s.Bool("enableStacktrace", "ui.gradleRunner.gradle.stacktrace.enabled").Encoded("true", "")
	s.JdkHome = s.String("jdkHome", "target.jdk.home")
	s.JvmArgs = s.String("jvmArgs", "jvmArgs")
	s.CoverageEngine = coverageEngine(&s.PropertySet)
	s.declareDocker(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddGradle(steps *dsl.BuildSteps, init func(*Gradle)) *Gradle {
	s := NewGradle(init)
	steps.Add(s)
	return s
}

// MavenVersion selects the Maven installation used by the runner.
type MavenVersion interface {
	dsl.Variant
	mavenVersion()
}

// MavenTool is a Maven installation referenced by a tool parameter.
type MavenTool struct{ dsl.VariantBase }

func NewMavenTool(reference string) *MavenTool {
	return &MavenTool{VariantBase: dsl.NewVariant(reference)}
}

// MavenCustom points at a Maven installation by path. Its path is stored
// under the compound key itself.
type MavenCustom struct {
	dsl.VariantBase
	Path *dsl.StringProp
}

func NewMavenCustom() *MavenCustom {
	v := &MavenCustom{VariantBase: dsl.NewOpenVariant()}
	v.Path = v.String("path", "maven.path")
	return v
}

func (*MavenTool) mavenVersion()   {}
func (*MavenCustom) mavenVersion() {}

// Tool references of the bundled Maven versions.
const (
	MavenAuto            = "%teamcity.tool.maven.AUTO%"
	MavenDefaultProvided = "%teamcity.tool.maven.DEFAULT%"
	MavenBundled2        = "%teamcity.tool.maven%"
	MavenBundled3_0      = "%teamcity.tool.maven3%"
	MavenBundled3_1      = "%teamcity.tool.maven3_1%"
	MavenBundled3_2      = "%teamcity.tool.maven3_2%"
	MavenBundled3_3      = "%teamcity.tool.maven3_3%"
	MavenBundled3_5      = "%teamcity.tool.maven3_5%"
	MavenBundled3_6      = "%teamcity.tool.maven3_6%"
	MavenBundled3_8      = "%teamcity.tool.maven3_8%"
	MavenBundled3_9      = "%teamcity.tool.maven3_9%"
)

func mavenTool(name, reference string) dsl.VariantDef[MavenVersion] {
	return dsl.VariantDef[MavenVersion]{Name: name, New: func() MavenVersion { return NewMavenTool(reference) }}
}

// MavenRepositoryScope selects where the local artifact repository lives.
type MavenRepositoryScope string

const (
	MavenRepositoryDefault            MavenRepositoryScope = "MAVEN_DEFAULT"
	MavenRepositoryAgent              MavenRepositoryScope = "AGENT"
	MavenRepositoryBuildConfiguration MavenRepositoryScope = "BUILD_CONFIGURATION"
)

type Maven struct {
	dsl.BuildStep
	DockerWrapper
	Goals                 *dsl.StringProp
	PomLocation           *dsl.StringProp
	RunnerArgs            *dsl.StringProp
	WorkingDir            *dsl.StringProp
	MavenVersion          *dsl.CompoundProp[MavenVersion]
	UserSettingsSelection *dsl.StringProp
	UserSettingsPath      *dsl.StringProp
	UseOwnLocalRepo       *dsl.BoolProp
	LocalRepoScope        *dsl.EnumProp[MavenRepositoryScope]
	IsIncremental         *dsl.BoolProp
	JdkHome               *dsl.StringProp
	JvmArgs               *dsl.StringProp
	CoverageEngine        *dsl.CompoundProp[CoverageEngine]
}

func NewMaven(init func(*Maven)) *Maven {
	s := &Maven{}
	s.Init("Maven2")
	s.Goals = s.String("goals", "goals")
	s.PomLocation = s.String("pomLocation", "pomLocation")
	s.RunnerArgs = s.String("runnerArgs", "runnerArgs")
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.MavenVersion = dsl.Compound(&s.PropertySet, "mavenVersion", "maven.path",
		mavenTool("default", MavenAuto),
		mavenTool("auto", MavenAuto),
		mavenTool("defaultProvidedVersion", MavenDefaultProvided),
		dsl.VariantDef[MavenVersion]{Name: "custom", New: func() MavenVersion { return NewMavenCustom() }},
		mavenTool("bundled_2", MavenBundled2),
		mavenTool("bundled_3_0", MavenBundled3_0),
		mavenTool("bundled_3_1", MavenBundled3_1),
		mavenTool("bundled_3_2", MavenBundled3_2),
		mavenTool("bundled_3_3", MavenBundled3_3),
		mavenTool("bundled_3_5", MavenBundled3_5),
		mavenTool("bundled_3_6", MavenBundled3_6),
		mavenTool("bundled_3_8", MavenBundled3_8),
		mavenTool("bundled_3_9", MavenBundled3_9),
	)
	s.UserSettingsSelection = s.String("userSettingsSelection", "userSettingsSelection")
	s.UserSettingsPath = s.String("userSettingsPath", "userSettingsPath")
	s.UseOwnLocalRepo = s.Bool("useOwnLocalRepo", "useOwnLocalRepo")
	s.LocalRepoScope = dsl.Enum(&s.PropertySet, "localRepoScope", "localRepoScope",
		MavenRepositoryDefault, MavenRepositoryAgent, MavenRepositoryBuildConfiguration,
	).Mapped(map[MavenRepositoryScope]string{
		MavenRepositoryDefault:            "mavenDefault",
		MavenRepositoryAgent:              "agent",
		MavenRepositoryBuildConfiguration: "buildConfiguration",
	})
	s.IsIncremental = s.Bool("isIncremental", "isIncremental")
	s.JdkHome = s.String("jdkHome", "target.jdk.home")
	s.JvmArgs = s.String("jvmArgs", "jvmArgs")
	s.CoverageEngine = coverageEngine(&s.PropertySet)
	s.declareDocker(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddMaven(steps *dsl.BuildSteps, init func(*Maven)) *Maven {
	s := NewMaven(init)
	steps.Add(s)
	return s
}
