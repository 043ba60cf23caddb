package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"settingskit/pkg/blueprint"
	"settingskit/pkg/dsl"
)

// Build turns the project tree of a blueprint into settings entities. Every
// unknown kind, unknown property, rejected value and broken base reference is
// reported, each prefixed with the path of the offending entry.
func Build(bp *blueprint.Blueprint) (*dsl.Project, error) {
	b := &builder{}
	project := b.project(&bp.Spec.Project, "project "+bp.Spec.Project.ID)
	if err := b.err(); err != nil {
		return nil, err
	}
	return project, nil
}

type builder struct {
	errs []error
}

func (b *builder) errorf(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

func (b *builder) err() error {
	return errors.Join(b.errs...)
}

func (b *builder) project(src *blueprint.Project, path string) *dsl.Project {
	p := dsl.NewProject(func(p *dsl.Project) {
		p.ID = src.ID
		p.Name = src.Name
		p.Description = src.Description
	})
	setParams(&p.Params, src.Params)

	for _, d := range b.entities(RemoteParams, src.RemoteParams, path+"/remoteParams") {
		p.RemoteParams.Add(d.(dsl.RemoteParameterDefinition))
	}
	for _, d := range b.entities(ProjectFeatures, src.Features, path+"/features") {
		p.Features.Add(d.(dsl.ProjectFeatureDefinition))
	}
	for _, d := range b.entities(VcsRoots, src.VcsRoots, path+"/vcsRoots") {
		p.VcsRoots.Add(d.(dsl.VcsRootDefinition))
	}
	for i := range src.BuildTypes {
		bt := &src.BuildTypes[i]
		p.BuildType(b.buildType(bt, path+"/buildTypes/"+label(bt.ID, i)))
	}
	for i := range src.SubProjects {
		sub := &src.SubProjects[i]
		p.SubProject(b.project(sub, path+"/subProjects/"+label(sub.ID, i)))
	}
	return p
}

func (b *builder) buildType(src *blueprint.BuildType, path string) *dsl.BuildType {
	bt := dsl.NewBuildType(func(bt *dsl.BuildType) {
		bt.ID = src.ID
		bt.Name = src.Name
		bt.Description = src.Description
		bt.VcsRootIDs = append(bt.VcsRootIDs, src.VcsRoots...)
	})
	setParams(&bt.Params, src.Params)

	for _, d := range b.entities(RemoteParams, src.RemoteParams, path+"/remoteParams") {
		bt.RemoteParams.Add(d.(dsl.RemoteParameterDefinition))
	}
	for _, d := range b.entities(Steps, src.Steps, path+"/steps") {
		bt.Steps.Add(d.(dsl.Step))
	}
	for _, d := range b.entities(Triggers, src.Triggers, path+"/triggers") {
		bt.Triggers.Add(d.(dsl.BuildTrigger))
	}
	for _, d := range b.entities(BuildFeatures, src.Features, path+"/features") {
		bt.Features.Add(d.(dsl.Feature))
	}
	return bt
}

// entities builds one collection. Entries that fail are reported and left
// out; the rest keep their order.
func (b *builder) entities(c Collection, src []blueprint.Entity, path string) []dsl.Definition {
	var (
		out  []dsl.Definition
		byID = make(map[string]dsl.Definition)
	)
	for i, e := range src {
		d, ok := b.entity(c, e, path+"["+strconv.Itoa(i)+"]", byID)
		if !ok {
			continue
		}
		if e.ID != "" {
			byID[e.ID] = d
		}
		out = append(out, d)
	}
	return out
}

func (b *builder) entity(c Collection, e blueprint.Entity, path string, earlier map[string]dsl.Definition) (dsl.Definition, bool) {
	k, ok := Lookup(c, e.Kind)
	if !ok {
		b.errorf("%s: unknown kind '%s', expected one of %s", path, e.Kind, strings.Join(Names(c), ", "))
		return nil, false
	}
	d := k.New()
	dsl.EntityBase(d).ID = e.ID
	applyCommon(d, e)

	ok = true
	for _, v := range e.Properties {
		prop, found := d.Lookup(v.Name)
		if !found {
			b.errorf("%s: kind '%s' has no property '%s'", path, e.Kind, v.Name)
			ok = false
			continue
		}
		if err := prop.Assign(v.Value); err != nil {
			b.errorf("%s: %w", path, err)
			ok = false
		}
	}
	for _, p := range e.Params {
		d.Params().Set(p.Name, p.Value)
	}

	if e.Base != "" {
		base, found := earlier[e.Base]
		switch {
		case !found:
			b.errorf("%s: base '%s' is not declared earlier in the same list", path, e.Base)
			ok = false
		case base.Type() != d.Type():
			b.errorf("%s: base '%s' is of type '%s', not '%s'", path, e.Base, base.Type(), d.Type())
			ok = false
		default:
			dsl.EntityBase(d).InheritFrom(base)
		}
	}
	return d, ok
}

// applyCommon copies the name and enabled flag onto the kinds that carry them.
func applyCommon(d dsl.Definition, e blueprint.Entity) {
	enabled := e.Enabled == nil || *e.Enabled
	switch v := d.(type) {
	case dsl.Step:
		s := dsl.StepBase(v)
		s.Name = e.Name
		s.Enabled = enabled
	case dsl.BuildTrigger:
		dsl.TriggerBase(v).Enabled = enabled
	case dsl.Feature:
		dsl.FeatureBase(v).Enabled = enabled
	case dsl.VcsRootDefinition:
		dsl.VcsRootBase(v).Name = e.Name
	case dsl.RemoteParameterDefinition:
		dsl.RemoteParameterBase(v).Name = e.Name
	}
}

func setParams(dst *dsl.Params, src blueprint.Params) {
	for _, p := range src {
		dst.Set(p.Name, p.Value)
	}
}

func label(id string, index int) string {
	if id != "" {
		return id
	}
	return "[" + strconv.Itoa(index) + "]"
}
