// Package buildsteps holds the build runners that can be added to a build
// type. Every constructor stores the runner type and its default parameters;
// the typed fields read and write the runner's parameters in place.
package buildsteps

import "settingskit/pkg/dsl"

// ImagePlatform is the platform of the container a step runs in.
type ImagePlatform string

const (
	ImagePlatformAny     ImagePlatform = "Any"
	ImagePlatformLinux   ImagePlatform = "Linux"
	ImagePlatformWindows ImagePlatform = "Windows"
)

var imagePlatforms = map[ImagePlatform]string{
	ImagePlatformAny:     "",
	ImagePlatformLinux:   "linux",
	ImagePlatformWindows: "windows",
}

func imagePlatform(s *dsl.PropertySet, name, key string) *dsl.EnumProp[ImagePlatform] {
	return dsl.Enum(s, name, key, ImagePlatformAny, ImagePlatformLinux, ImagePlatformWindows).Mapped(imagePlatforms)
}

// DockerWrapper runs a step inside a container on the agent. Steps that
// support it embed DockerWrapper.
type DockerWrapper struct {
	DockerImage         *dsl.StringProp
	DockerImagePlatform *dsl.EnumProp[ImagePlatform]
	DockerPull          *dsl.BoolProp
	DockerRunParameters *dsl.StringProp
}

func (d *DockerWrapper) declareDocker(s *dsl.PropertySet) {
	d.DockerImage = s.String("dockerImage", "plugin.docker.imageId")
	d.DockerImagePlatform = imagePlatform(s, "dockerImagePlatform", "plugin.docker.imagePlatform")
	d.DockerPull = s.Bool("dockerPull", "plugin.docker.pull.enabled").Encoded("true", "")
	d.DockerRunParameters = s.String("dockerRunParameters", "plugin.docker.run.parameters")
}

// Verbosity is the logging level of dotnet commands.
type Verbosity string

const (
	VerbosityQuiet      Verbosity = "Quiet"
	VerbosityMinimal    Verbosity = "Minimal"
	VerbosityNormal     Verbosity = "Normal"
	VerbosityDetailed   Verbosity = "Detailed"
	VerbosityDiagnostic Verbosity = "Diagnostic"
)

func verbosity(s *dsl.PropertySet) *dsl.EnumProp[Verbosity] {
	return dsl.Enum(s, "logging", "verbosity",
		VerbosityQuiet, VerbosityMinimal, VerbosityNormal, VerbosityDetailed, VerbosityDiagnostic)
}

// CoverageEngine collects code coverage of JVM builds.
type CoverageEngine interface {
	dsl.Variant
	coverageEngine()
}

// IdeaCoverage uses the IntelliJ IDEA coverage engine.
type IdeaCoverage struct {
	dsl.VariantBase
	IncludeClasses *dsl.StringProp
	ExcludeClasses *dsl.StringProp
}

func NewIdeaCoverage() *IdeaCoverage {
	v := &IdeaCoverage{VariantBase: dsl.NewVariant("IDEA")}
	v.IncludeClasses = v.String("includeClasses", "teamcity.coverage.idea.includePatterns")
	v.ExcludeClasses = v.String("excludeClasses", "teamcity.coverage.idea.excludePatterns")
	return v
}

type JacocoCoverage struct {
	dsl.VariantBase
	ClassLocations *dsl.StringProp
	ExcludeClasses *dsl.StringProp
	JacocoVersion  *dsl.StringProp
}

func NewJacocoCoverage() *JacocoCoverage {
	v := &JacocoCoverage{VariantBase: dsl.NewVariant("JACOCO")}
	v.ClassLocations = v.String("classLocations", "teamcity.coverage.jacoco.classpath")
	v.ExcludeClasses = v.String("excludeClasses", "teamcity.coverage.jacoco.patterns")
	v.JacocoVersion = v.String("jacocoVersion", "teamcity.tool.jacoco")
	return v
}

func (*IdeaCoverage) coverageEngine()   {}
func (*JacocoCoverage) coverageEngine() {}

func coverageEngine(s *dsl.PropertySet) *dsl.CompoundProp[CoverageEngine] {
	return dsl.Compound(s, "coverageEngine", "teamcity.coverage.runner",
		dsl.VariantDef[CoverageEngine]{Name: "idea", New: func() CoverageEngine { return NewIdeaCoverage() }},
		dsl.VariantDef[CoverageEngine]{Name: "jacoco", New: func() CoverageEngine { return NewJacocoCoverage() }},
	)
}
