package dsl

// Step is a build runner registered on a build type.
type Step interface {
	Definition
	buildStep() *BuildStep
}

// BuildTrigger is a trigger registered on a build type.
type BuildTrigger interface {
	Definition
	trigger() *Trigger
}

// Feature is a build feature registered on a build type.
type Feature interface {
	Definition
	buildFeature() *BuildFeature
}

// ProjectFeatureDefinition is a feature registered on a project.
type ProjectFeatureDefinition interface {
	Definition
	projectFeature() *ProjectFeature
}

// VcsRootDefinition is a VCS root registered on a project.
type VcsRootDefinition interface {
	Definition
	vcsRoot() *VcsRoot
}

// RemoteParameterDefinition is a remote parameter registered on a project or
// build type.
type RemoteParameterDefinition interface {
	Definition
	remoteParameter() *RemoteParameter
}

// Collection keeps registered entities in registration order.
type Collection[T Definition] struct {
	items []T
}

func (c *Collection[T]) Add(item T) {
	c.items = append(c.items, item)
}

func (c *Collection[T]) Items() []T {
	return c.items
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

type (
	BuildSteps       = Collection[Step]
	Triggers         = Collection[BuildTrigger]
	BuildFeatures    = Collection[Feature]
	ProjectFeatures  = Collection[ProjectFeatureDefinition]
	VcsRoots         = Collection[VcsRootDefinition]
	RemoteParameters = Collection[RemoteParameterDefinition]
)

// EntityBase returns the state shared by every entity kind.
func EntityBase(d Definition) *Entity { return d.entity() }

// StepBase returns the common build step state of s.
func StepBase(s Step) *BuildStep { return s.buildStep() }

// TriggerBase returns the common trigger state of t.
func TriggerBase(t BuildTrigger) *Trigger { return t.trigger() }

// FeatureBase returns the common build feature state of f.
func FeatureBase(f Feature) *BuildFeature { return f.buildFeature() }

// VcsRootBase returns the common VCS root state of r.
func VcsRootBase(r VcsRootDefinition) *VcsRoot { return r.vcsRoot() }

// RemoteParameterBase returns the common remote parameter state of r.
func RemoteParameterBase(r RemoteParameterDefinition) *RemoteParameter {
	return r.remoteParameter()
}
