// Package vcs holds the VCS root kinds that are not configured through a
// connection.
package vcs

import "settingskit/pkg/dsl"

// PerforceMode selects how the agent maps the depot into a workspace.
type PerforceMode interface {
	dsl.Variant
	perforceMode()
}

// PerforceStream checks out a stream.
type PerforceStream struct {
	dsl.VariantBase
	StreamName            *dsl.StringProp
	EnableFeatureBranches *dsl.BoolProp
	BranchSpec            *dsl.StringProp
}

func NewPerforceStream() *PerforceStream {
	v := &PerforceStream{VariantBase: dsl.NewVariant("stream")}
	v.StreamName = v.String("streamName", "stream").Required()
	v.EnableFeatureBranches = v.Bool("enableFeatureBranches", "use-dag").Encoded("true", "")
	v.BranchSpec = v.String("branchSpec", "teamcity:branchSpec")
	return v
}

// PerforceClient uses the view of an existing client workspace.
type PerforceClient struct {
	dsl.VariantBase
	ClientName *dsl.StringProp
}

func NewPerforceClient() *PerforceClient {
	v := &PerforceClient{VariantBase: dsl.NewVariant("true")}
	v.ClientName = v.String("clientName", "client").Required()
	return v
}

// PerforceClientMapping maps the depot with an explicit client view.
type PerforceClientMapping struct {
	dsl.VariantBase
	Mapping *dsl.StringProp
}

func NewPerforceClientMapping() *PerforceClientMapping {
	v := &PerforceClientMapping{VariantBase: dsl.NewVariant("false")}
	v.Mapping = v.String("mapping", "client-mapping").Required()
	return v
}

func (*PerforceStream) perforceMode()        {}
func (*PerforceClient) perforceMode()        {}
func (*PerforceClientMapping) perforceMode() {}

// Perforce is a Perforce Helix Core root.
type Perforce struct {
	dsl.VcsRoot
	Port               *dsl.StringProp
	Mode               *dsl.CompoundProp[PerforceMode]
	UserName           *dsl.StringProp
	Password           *dsl.StringProp
	UseTicketBasedAuth *dsl.BoolProp
	WorkspaceOptions   *dsl.StringProp
	RunP4Clean         *dsl.BoolProp
	NonStreamWorkspace *dsl.BoolProp
	SkipHaveListUpdate *dsl.StringProp
	SyncOptions        *dsl.StringProp
	P4Path             *dsl.StringProp
	CheckoutRevision   *dsl.StringProp
	CharsetName        *dsl.StringProp
	SupportUtf16       *dsl.BoolProp
}

func NewPerforce(init func(*Perforce)) *Perforce {
	r := &Perforce{}
	r.Init("perforce")
	r.Port = r.String("port", "port")
	r.Mode = dsl.Compound(&r.PropertySet, "mode", "use-client",
		dsl.VariantDef[PerforceMode]{Name: "stream", New: func() PerforceMode { return NewPerforceStream() }},
		dsl.VariantDef[PerforceMode]{Name: "client", New: func() PerforceMode { return NewPerforceClient() }},
		dsl.VariantDef[PerforceMode]{Name: "clientMapping", New: func() PerforceMode { return NewPerforceClientMapping() }},
	)
	r.UserName = r.String("userName", "user")
	r.Password = r.String("password", "secure:passwd")
	r.UseTicketBasedAuth = r.Bool("useTicketBasedAuth", "use-login").Encoded("true", "")
	r.WorkspaceOptions = r.String("workspaceOptions", "workspace-options")
	r.RunP4Clean = r.Bool("runP4Clean", "use-p4-clean").Encoded("true", "")
	r.NonStreamWorkspace = r.Bool("nonStreamWorkspace", "no-stream-workspace").Encoded("true", "")
	r.SkipHaveListUpdate = r.String("skipHaveListUpdate", "use-sync-p")
	r.SyncOptions = r.String("syncOptions", "extra-sync-options")
	r.P4Path = r.String("p4Path", "p4-exe")
	r.CheckoutRevision = r.String("checkoutRevision", "label-revision")
	r.CharsetName = r.String("charsetName", "charset")
	r.SupportUtf16 = r.Bool("supportUtf16", "detect-utf-16").Encoded("true", "")
	if init != nil {
		init(r)
	}
	return r
}

// AddPerforce registers a Perforce root in roots.
func AddPerforce(roots *dsl.VcsRoots, init func(*Perforce)) *Perforce {
	r := NewPerforce(init)
	roots.Add(r)
	return r
}

// Tfs is a Team Foundation Version Control root.
type Tfs struct {
	dsl.VcsRoot
	URL            *dsl.StringProp
	Root           *dsl.StringProp
	UserName       *dsl.StringProp
	Password       *dsl.StringProp
	ForceOverwrite *dsl.BoolProp
}

func NewTfs(init func(*Tfs)) *Tfs {
	r := &Tfs{}
	r.Init("tfs")
	r.URL = r.String("url", "tfs-url").Required()
	r.Root = r.String("root", "tfs-root").Required()
	r.UserName = r.String("userName", "tfs-username")
	r.Password = r.String("password", "secure:tfs-password")
	r.ForceOverwrite = r.Bool("forceOverwrite", "tfs-force-get").Encoded("true", "")
	if init != nil {
		init(r)
	}
	return r
}

func AddTfs(roots *dsl.VcsRoots, init func(*Tfs)) *Tfs {
	r := NewTfs(init)
	roots.Add(r)
	return r
}
