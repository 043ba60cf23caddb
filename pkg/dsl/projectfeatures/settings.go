package projectfeatures

import "settingskit/pkg/dsl"

// BuildReportTab shows an artifact page as a tab on build results.
type BuildReportTab struct {
	dsl.ProjectFeature
	Title     *dsl.StringProp
	StartPage *dsl.StringProp
}

func NewBuildReportTab(init func(*BuildReportTab)) *BuildReportTab {
	t := &BuildReportTab{}
	t.Init("ReportTab", dsl.Param{Name: "type", Value: "BuildReportTab"})
	t.Title = t.String("title", "title")
	t.StartPage = t.String("startPage", "startPage")
	if init != nil {
		init(t)
	}
	return t
}

func AddBuildReportTab(features *dsl.ProjectFeatures, init func(*BuildReportTab)) *BuildReportTab {
	t := NewBuildReportTab(init)
	features.Add(t)
	return t
}

type CloudIntegration struct {
	dsl.ProjectFeature
	IntegrationEnabled *dsl.BoolProp
	SubprojectsEnabled *dsl.BoolProp
	AllowOverride      *dsl.BoolProp
}

func NewCloudIntegration(init func(*CloudIntegration)) *CloudIntegration {
	c := &CloudIntegration{}
	c.Init("CloudIntegration")
	c.IntegrationEnabled = c.Bool("enabled", "enabled")
	c.SubprojectsEnabled = c.Bool("subprojectsEnabled", "SubprojectsEnabled")
	c.AllowOverride = c.Bool("allowOverride", "AllowOverride")
	if init != nil {
		init(c)
	}
	return c
}

func AddCloudIntegration(features *dsl.ProjectFeatures, init func(*CloudIntegration)) *CloudIntegration {
	c := NewCloudIntegration(init)
	features.Add(c)
	return c
}

// UntrustedBuildAction is applied to builds from untrusted sources.
type UntrustedBuildAction string

const (
	UntrustedBuildIgnore  UntrustedBuildAction = "IGNORE"
	UntrustedBuildCancel  UntrustedBuildAction = "CANCEL"
	UntrustedBuildApprove UntrustedBuildAction = "APPROVE"
)

type UntrustedBuildsSettings struct {
	dsl.ProjectFeature
	DefaultAction      *dsl.EnumProp[UntrustedBuildAction]
	EnableLog          *dsl.BoolProp
	ApprovalRules      *dsl.StringProp
	TimeoutMinutes     *dsl.IntProp
	ManualRunsApproved *dsl.BoolProp
}

func NewUntrustedBuildsSettings(init func(*UntrustedBuildsSettings)) *UntrustedBuildsSettings {
	s := &UntrustedBuildsSettings{}
	s.Init("UntrustedBuildsSettings")
	s.DefaultAction = dsl.Enum(&s.PropertySet, "defaultAction", "defaultAction",
		UntrustedBuildIgnore, UntrustedBuildCancel, UntrustedBuildApprove,
	).Mapped(map[UntrustedBuildAction]string{
		UntrustedBuildIgnore:  "ignore",
		UntrustedBuildCancel:  "cancel",
		UntrustedBuildApprove: "approve",
	}).Required()
	s.EnableLog = s.Bool("enableLog", "enableLog").Required()
	s.ApprovalRules = s.String("approvalRules", "rules")
	s.TimeoutMinutes = s.Int("timeoutMinutes", "timeout")
	s.ManualRunsApproved = s.Bool("manualRunsApproved", "manualStartIsApproval")
	if init != nil {
		init(s)
	}
	return s
}

func AddUntrustedBuildsSettings(features *dsl.ProjectFeatures, init func(*UntrustedBuildsSettings)) *UntrustedBuildsSettings {
	s := NewUntrustedBuildsSettings(init)
	features.Add(s)
	return s
}
