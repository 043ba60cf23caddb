package renderer

import (
	"encoding/xml"
	"strconv"

	"github.com/google/uuid"

	"settingskit/pkg/dsl"
)

// settingsNamespace seeds the uuid of every rendered project and build type so
// that re-rendering an unchanged tree yields identical files.
var settingsNamespace = uuid.MustParse("6f1c3a52-7d44-4b8e-9a1e-2f9d5c3b7e10")

const rootProjectID = "_Root"

type projectDoc struct {
	XMLName      xml.Name       `xml:"project" json:"-" yaml:"-"`
	ID           string         `xml:"-" json:"id" yaml:"id"`
	ParentID     string         `xml:"parent-id,attr" json:"parentId" yaml:"parentId"`
	UUID         string         `xml:"uuid,attr" json:"uuid" yaml:"uuid"`
	Name         string         `xml:"name" json:"name" yaml:"name"`
	Description  string         `xml:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Params       []dsl.Param    `xml:"parameters>param" json:"params,omitempty" yaml:"params,omitempty"`
	RemoteParams []remoteDoc    `xml:"remote-parameters>remote-parameter" json:"remoteParams,omitempty" yaml:"remoteParams,omitempty"`
	Features     []extensionDoc `xml:"project-extensions>extension" json:"features,omitempty" yaml:"features,omitempty"`
}

type buildTypeDoc struct {
	XMLName     xml.Name    `xml:"build-type" json:"-" yaml:"-"`
	ID          string      `xml:"-" json:"id" yaml:"id"`
	UUID        string      `xml:"uuid,attr" json:"uuid" yaml:"uuid"`
	Name        string      `xml:"name" json:"name" yaml:"name"`
	Description string      `xml:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Settings    settingsDoc `xml:"settings" json:"settings" yaml:"settings"`
}

type settingsDoc struct {
	Params       []dsl.Param    `xml:"parameters>param" json:"params,omitempty" yaml:"params,omitempty"`
	RemoteParams []remoteDoc    `xml:"remote-parameters>remote-parameter" json:"remoteParams,omitempty" yaml:"remoteParams,omitempty"`
	Steps        []stepDoc      `xml:"build-runners>runner" json:"steps,omitempty" yaml:"steps,omitempty"`
	VcsRoots     []vcsRefDoc    `xml:"vcs-settings>vcs-entry-ref" json:"vcsRoots,omitempty" yaml:"vcsRoots,omitempty"`
	Triggers     []extensionDoc `xml:"build-triggers>build-trigger" json:"triggers,omitempty" yaml:"triggers,omitempty"`
	Features     []extensionDoc `xml:"build-extensions>extension" json:"features,omitempty" yaml:"features,omitempty"`
	Disabled     []settingRef   `xml:"disabled-settings>setting-ref" json:"-" yaml:"-"`
}

type settingRef struct {
	Ref string `xml:"ref,attr"`
}

type vcsRefDoc struct {
	RootID string `xml:"root-id,attr" json:"rootId" yaml:"rootId"`
}

type stepDoc struct {
	ID      string      `xml:"id,attr" json:"id" yaml:"id"`
	Name    string      `xml:"name,attr" json:"name,omitempty" yaml:"name,omitempty"`
	Type    string      `xml:"type,attr" json:"type" yaml:"type"`
	Enabled bool        `xml:"-" json:"enabled" yaml:"enabled"`
	Params  []dsl.Param `xml:"parameters>param" json:"params" yaml:"params"`
}

type extensionDoc struct {
	ID      string      `xml:"id,attr" json:"id" yaml:"id"`
	Type    string      `xml:"type,attr" json:"type" yaml:"type"`
	Enabled *bool       `xml:"-" json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Params  []dsl.Param `xml:"parameters>param" json:"params" yaml:"params"`
}

type remoteDoc struct {
	Name   string      `xml:"name,attr" json:"name" yaml:"name"`
	Type   string      `xml:"type,attr" json:"type" yaml:"type"`
	Params []dsl.Param `xml:"param" json:"params" yaml:"params"`
}

type vcsRootDoc struct {
	XMLName xml.Name    `xml:"vcs-root" json:"-" yaml:"-"`
	ID      string      `xml:"-" json:"id" yaml:"id"`
	Type    string      `xml:"type,attr" json:"type" yaml:"type"`
	Name    string      `xml:"name" json:"name" yaml:"name"`
	Params  []dsl.Param `xml:"param" json:"params" yaml:"params"`
}

func newProjectDoc(p *dsl.Project, parentID string) *projectDoc {
	doc := &projectDoc{
		ID:          p.ID,
		ParentID:    parentID,
		UUID:        uuid.NewSHA1(settingsNamespace, []byte("project:"+p.ID)).String(),
		Name:        p.Name,
		Description: p.Description,
		Params:      p.Params.All(),
	}
	doc.RemoteParams = remoteDocs(p.RemoteParams.Items())
	for i, f := range p.Features.Items() {
		doc.Features = append(doc.Features, extension(f, "PROJECT_EXT_", i, nil))
	}
	return doc
}

func newBuildTypeDoc(bt *dsl.BuildType) *buildTypeDoc {
	doc := &buildTypeDoc{
		ID:          bt.ID,
		UUID:        uuid.NewSHA1(settingsNamespace, []byte("buildType:"+bt.ID)).String(),
		Name:        bt.Name,
		Description: bt.Description,
	}
	doc.Settings.Params = bt.Params.All()
	doc.Settings.RemoteParams = remoteDocs(bt.RemoteParams.Items())

	for i, s := range bt.Steps.Items() {
		base := dsl.StepBase(s)
		step := stepDoc{
			ID:      entityID(s, "RUNNER_", i),
			Name:    base.Name,
			Type:    s.Type(),
			Enabled: base.Enabled,
			Params:  s.Params().All(),
		}
		doc.Settings.Steps = append(doc.Settings.Steps, step)
		if !base.Enabled {
			doc.Settings.Disabled = append(doc.Settings.Disabled, settingRef{Ref: step.ID})
		}
	}
	for _, id := range bt.VcsRootIDs {
		doc.Settings.VcsRoots = append(doc.Settings.VcsRoots, vcsRefDoc{RootID: id})
	}
	for i, t := range bt.Triggers.Items() {
		enabled := dsl.TriggerBase(t).Enabled
		ext := extension(t, "TRIGGER_", i, &enabled)
		doc.Settings.Triggers = append(doc.Settings.Triggers, ext)
		if !enabled {
			doc.Settings.Disabled = append(doc.Settings.Disabled, settingRef{Ref: ext.ID})
		}
	}
	for i, f := range bt.Features.Items() {
		enabled := dsl.FeatureBase(f).Enabled
		ext := extension(f, "BUILD_EXT_", i, &enabled)
		doc.Settings.Features = append(doc.Settings.Features, ext)
		if !enabled {
			doc.Settings.Disabled = append(doc.Settings.Disabled, settingRef{Ref: ext.ID})
		}
	}
	return doc
}

func newVcsRootDoc(r dsl.VcsRootDefinition) *vcsRootDoc {
	return &vcsRootDoc{
		ID:     r.Identifier(),
		Type:   r.Type(),
		Name:   dsl.VcsRootBase(r).Name,
		Params: r.Params().All(),
	}
}

func extension(d dsl.Definition, prefix string, index int, enabled *bool) extensionDoc {
	return extensionDoc{
		ID:      entityID(d, prefix, index),
		Type:    d.Type(),
		Enabled: enabled,
		Params:  d.Params().All(),
	}
}

func remoteDocs(params []dsl.RemoteParameterDefinition) []remoteDoc {
	var out []remoteDoc
	for _, p := range params {
		out = append(out, remoteDoc{
			Name:   dsl.RemoteParameterBase(p).Name,
			Type:   p.Type(),
			Params: p.Params().All(),
		})
	}
	return out
}

// entityID returns the declared ID, or a positional one such as RUNNER_1.
func entityID(d dsl.Definition, prefix string, index int) string {
	if id := d.Identifier(); id != "" {
		return id
	}
	return prefix + strconv.Itoa(index+1)
}
