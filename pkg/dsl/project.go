package dsl

import (
	"fmt"
	"strconv"
)

// Project groups build types, VCS roots, features and sub-projects.
type Project struct {
	ID           string
	Name         string
	Description  string
	Params       Params
	RemoteParams RemoteParameters
	Features     ProjectFeatures
	VcsRoots     VcsRoots
	BuildTypes   []*BuildType
	SubProjects  []*Project
}

// NewProject returns a project configured by init.
func NewProject(init func(*Project)) *Project {
	p := &Project{}
	if init != nil {
		init(p)
	}
	return p
}

// BuildType registers bt on the project and returns it.
func (p *Project) BuildType(bt *BuildType) *BuildType {
	p.BuildTypes = append(p.BuildTypes, bt)
	return bt
}

// SubProject registers sub on the project and returns it.
func (p *Project) SubProject(sub *Project) *Project {
	p.SubProjects = append(p.SubProjects, sub)
	return sub
}

// VcsRoot registers root on the project and returns it.
func (p *Project) VcsRoot(root VcsRootDefinition) VcsRootDefinition {
	p.VcsRoots.Add(root)
	return root
}

// BuildType is a build configuration.
type BuildType struct {
	ID           string
	Name         string
	Description  string
	Params       Params
	RemoteParams RemoteParameters
	// VcsRootIDs references VCS roots declared on this project or an
	// ancestor.
	VcsRootIDs []string
	Steps      BuildSteps
	Triggers   Triggers
	Features   BuildFeatures
}

// NewBuildType returns a build type configured by init.
func NewBuildType(init func(*BuildType)) *BuildType {
	bt := &BuildType{}
	if init != nil {
		init(bt)
	}
	return bt
}

// Validate checks every entity in the project tree. Entity errors are scoped
// with their path in the tree, e.g. "Root/Build/steps[0]". Missing and
// duplicate IDs and references to unknown VCS roots are reported as well.
func (p *Project) Validate(c ErrorConsumer) {
	v := &treeValidator{seen: make(map[string]string)}
	v.project(c, p, "", nil)
}

type treeValidator struct {
	seen map[string]string
}

func (v *treeValidator) claim(c ErrorConsumer, id, what string) {
	if prev, ok := v.seen[id]; ok {
		c.ConsumeError(fmt.Sprintf("duplicate id '%s': already used by %s", id, prev))
		return
	}
	v.seen[id] = what
}

func (v *treeValidator) project(c ErrorConsumer, p *Project, parent string, roots map[string]bool) {
	label := label(p.ID, parent, "project")
	pc := Scope(c, label)
	if p.ID == "" {
		pc.ConsumeError("project id is not specified")
	} else {
		v.claim(pc, p.ID, "project")
	}

	visible := make(map[string]bool, len(roots))
	for id := range roots {
		visible[id] = true
	}
	for i, root := range p.VcsRoots.Items() {
		rc := Scope(pc, entityLabel("vcsRoots", i, root.Identifier()))
		if root.Identifier() == "" {
			rc.ConsumeError("vcs root id is not specified")
		} else {
			v.claim(rc, root.Identifier(), "vcs root")
			visible[root.Identifier()] = true
		}
		root.Validate(rc)
	}
	validateAll(pc, "features", p.Features.Items())
	validateAll(pc, "params", p.RemoteParams.Items())

	for i, bt := range p.BuildTypes {
		v.buildType(pc, bt, i, visible)
	}
	for i, sub := range p.SubProjects {
		v.project(pc, sub, "subProjects["+strconv.Itoa(i)+"]", visible)
	}
}

func (v *treeValidator) buildType(c ErrorConsumer, bt *BuildType, index int, roots map[string]bool) {
	bc := Scope(c, label(bt.ID, "buildTypes["+strconv.Itoa(index)+"]", ""))
	if bt.ID == "" {
		bc.ConsumeError("build type id is not specified")
	} else {
		v.claim(bc, bt.ID, "build type")
	}
	for _, id := range bt.VcsRootIDs {
		if !roots[id] {
			bc.ConsumeError(fmt.Sprintf("unknown vcs root '%s'", id))
		}
	}
	validateAll(bc, "steps", bt.Steps.Items())
	validateAll(bc, "triggers", bt.Triggers.Items())
	validateAll(bc, "features", bt.Features.Items())
	validateAll(bc, "params", bt.RemoteParams.Items())
}

func validateAll[T Definition](c ErrorConsumer, group string, items []T) {
	for i, item := range items {
		item.Validate(Scope(c, entityLabel(group, i, item.Identifier())))
	}
}

func label(id, fallback, root string) string {
	if id != "" {
		return id
	}
	if fallback != "" {
		return fallback
	}
	return root
}

func entityLabel(group string, index int, id string) string {
	if id != "" {
		return joinPath(group, id)
	}
	return group + "[" + strconv.Itoa(index) + "]"
}
