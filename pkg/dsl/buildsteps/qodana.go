package buildsteps

import "settingskit/pkg/dsl"

// QodanaLinter selects the Qodana image that analyses the checkout.
type QodanaLinter interface {
	dsl.Variant
	qodanaLinter()
}

// QodanaLinterVersion is the image tag of a public Qodana linter.
type QodanaLinterVersion string

const (
	QodanaV2021_2 QodanaLinterVersion = "v2021_2"
	QodanaV2021_3 QodanaLinterVersion = "v2021_3"
	QodanaV2022_1 QodanaLinterVersion = "v2022_1"
	QodanaV2022_2 QodanaLinterVersion = "v2022_2"
	QodanaLatest  QodanaLinterVersion = "LATEST"
)

var qodanaVersionTags = map[QodanaLinterVersion]string{
	QodanaV2021_2: "2021.2",
	QodanaV2021_3: "2021.3",
	QodanaV2022_1: "2022.1",
	QodanaV2022_2: "2022.2",
	QodanaLatest:  "latest",
}

// QodanaPublicLinter is one of the public linter images. Only the JVM
// community linter publishes versioned tags; the others accept LATEST.
type QodanaPublicLinter struct {
	dsl.VariantBase
	Version *dsl.EnumProp[QodanaLinterVersion]
}

func newQodanaPublicLinter(image string, versions ...QodanaLinterVersion) *QodanaPublicLinter {
	v := &QodanaPublicLinter{VariantBase: dsl.NewVariant(image)}
	mapping := make(map[QodanaLinterVersion]string, len(versions))
	for _, version := range versions {
		mapping[version] = qodanaVersionTags[version]
	}
	v.Version = dsl.Enum(&v.PropertySet, "version", "linterVersion", versions...).Mapped(mapping)
	return v
}

// Public Qodana linter images.
const (
	QodanaPHP          = "public-image-qodana-php"
	QodanaJVM          = "public-image-qodana-jvm"
	QodanaJVMCommunity = "public-image-qodana-jvm-community"
	QodanaAndroid      = "public-image-qodana-jvm-android"
	QodanaPython       = "public-image-qodana-python"
	QodanaJavaScript   = "public-image-qodana-js"
	QodanaGo           = "public-image-qodana-go"
	QodanaDotNet       = "public-image-qodana-dot-net"
)

// NewQodanaLinter returns the public linter stored as image.
func NewQodanaLinter(image string) *QodanaPublicLinter {
	if image == QodanaJVMCommunity {
		return newQodanaPublicLinter(image, QodanaV2021_2, QodanaV2021_3, QodanaV2022_1, QodanaV2022_2, QodanaLatest)
	}
	return newQodanaPublicLinter(image, QodanaLatest)
}

// QodanaCustomLinter runs a user supplied image.
type QodanaCustomLinter struct {
	dsl.VariantBase
	Image *dsl.StringProp
}

func NewQodanaCustomLinter() *QodanaCustomLinter {
	v := &QodanaCustomLinter{VariantBase: dsl.NewVariant("custom")}
	v.Image = v.String("image", "namesAndTagsCustom").Required()
	return v
}

func (*QodanaPublicLinter) qodanaLinter() {}
func (*QodanaCustomLinter) qodanaLinter() {}

func qodanaLinter(name, image string) dsl.VariantDef[QodanaLinter] {
	return dsl.VariantDef[QodanaLinter]{Name: name, New: func() QodanaLinter { return NewQodanaLinter(image) }}
}

// QodanaInspectionProfile selects the inspections Qodana runs.
type QodanaInspectionProfile interface {
	dsl.Variant
	qodanaInspectionProfile()
}

type QodanaDefaultProfile struct{ dsl.VariantBase }

func NewQodanaDefaultProfile() *QodanaDefaultProfile {
	return &QodanaDefaultProfile{VariantBase: dsl.NewVariant("Default")}
}

// QodanaEmbeddedProfile uses a profile shipped with the linter, by name.
type QodanaEmbeddedProfile struct {
	dsl.VariantBase
	Name *dsl.StringProp
}

func NewQodanaEmbeddedProfile() *QodanaEmbeddedProfile {
	v := &QodanaEmbeddedProfile{VariantBase: dsl.NewVariant("Name")}
	v.Name = v.String("name", "code-inspection-profile-name").Required()
	return v
}

// QodanaCustomProfile reads a profile file from the checkout.
type QodanaCustomProfile struct {
	dsl.VariantBase
	Path *dsl.StringProp
}

func NewQodanaCustomProfile() *QodanaCustomProfile {
	v := &QodanaCustomProfile{VariantBase: dsl.NewVariant("Custom")}
	v.Path = v.String("path", "code-inspection-custom-xml-config-path").Required()
	return v
}

func (*QodanaDefaultProfile) qodanaInspectionProfile()  {}
func (*QodanaEmbeddedProfile) qodanaInspectionProfile() {}
func (*QodanaCustomProfile) qodanaInspectionProfile()   {}

type Qodana struct {
	dsl.BuildStep
	WorkingDir        *dsl.StringProp
	ProjectKey        *dsl.StringProp
	ReportAsTests     *dsl.BoolProp
	Tools             *dsl.StringProp
	Linter            *dsl.CompoundProp[QodanaLinter]
	InspectionProfile *dsl.CompoundProp[QodanaInspectionProfile]

	// ArgumentsCommandDocker and AdditionalDockerArguments write the same
	// parameter, as do the two entry point fields below.
	ArgumentsCommandDocker     *dsl.StringProp
	AdditionalDockerArguments  *dsl.StringProp
	ArgumentsEntryPointDocker  *dsl.StringProp
	AdditionalQodanaArguments  *dsl.StringProp
	CloudToken                 *dsl.StringProp
	CollectAnonymousStatistics *dsl.BoolProp
}

func NewQodana(init func(*Qodana)) *Qodana {
	s := &Qodana{}
	s.Init("Qodana")
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.ProjectKey = s.String("projectKey", "project-key")
	s.ReportAsTests = s.Bool("reportAsTests", "report-as-test")
	s.Tools = s.String("tools", "tools")
	s.Linter = dsl.Compound(&s.PropertySet, "linter", "namesAndTags",
		qodanaLinter("php", QodanaPHP),
		qodanaLinter("jvm", QodanaJVM),
		qodanaLinter("jvmCommunity", QodanaJVMCommunity),
		qodanaLinter("android", QodanaAndroid),
		qodanaLinter("python", QodanaPython),
		qodanaLinter("javascript", QodanaJavaScript),
		qodanaLinter("go", QodanaGo),
		qodanaLinter("dotNet", QodanaDotNet),
		dsl.VariantDef[QodanaLinter]{Name: "customLinter", New: func() QodanaLinter { return NewQodanaCustomLinter() }},
	).Required()
	s.InspectionProfile = dsl.Compound(&s.PropertySet, "inspectionProfile", "code-inspection-xml-config",
		dsl.VariantDef[QodanaInspectionProfile]{Name: "default", New: func() QodanaInspectionProfile { return NewQodanaDefaultProfile() }},
		dsl.VariantDef[QodanaInspectionProfile]{Name: "embedded", New: func() QodanaInspectionProfile { return NewQodanaEmbeddedProfile() }},
		dsl.VariantDef[QodanaInspectionProfile]{Name: "customProfile", New: func() QodanaInspectionProfile { return NewQodanaCustomProfile() }},
	)
	s.ArgumentsCommandDocker = s.String("argumentsCommandDocker", "arguments-command-docker")
	s.AdditionalDockerArguments = s.String("additionalDockerArguments", "arguments-command-docker")
	s.ArgumentsEntryPointDocker = s.String("argumentsEntryPointDocker", "arguments-entry-point-docker")
	s.AdditionalQodanaArguments = s.String("additionalQodanaArguments", "arguments-entry-point-docker")
	s.CloudToken = s.String("cloudToken", "secure:cloud-token")
	s.CollectAnonymousStatistics = s.Bool("collectAnonymousStatistics", "collect-anonymous-statistics")
	if init != nil {
		init(s)
	}
	return s
}

func AddQodana(steps *dsl.BuildSteps, init func(*Qodana)) *Qodana {
	s := NewQodana(init)
	steps.Add(s)
	return s
}
