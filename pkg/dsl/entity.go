package dsl

// Definition is implemented by every settings entity.
type Definition interface {
	Type() string
	Identifier() string
	Params() *Params
	Properties() []Property
	Lookup(name string) (Property, bool)
	Validate(c ErrorConsumer)
	entity() *Entity
}

// Entity is the common state of all settings entities: an optional ID, the
// type discriminator read by the server, and the parameter bag.
type Entity struct {
	PropertySet
	ID   string
	kind string
}

// Init sets the type and default parameters. Constructors of concrete
// entities call it before declaring their properties.
func (e *Entity) Init(kind string, defaults ...Param) {
	e.kind = kind
	for _, d := range defaults {
		e.Param(d.Name, d.Value)
	}
}

func (e *Entity) Type() string {
	return e.kind
}

func (e *Entity) Identifier() string {
	return e.ID
}

func (e *Entity) entity() *Entity {
	return e
}

// Validate reports unset mandatory properties to c.
func (e *Entity) Validate(c ErrorConsumer) {
	ValidateProperties(c, e.Properties(), "")
}

// InheritFrom places the parameters of base underneath the entity's own: a
// parameter set on both keeps the entity's value.
func (e *Entity) InheritFrom(base Definition) {
	merged := base.Params().Clone()
	merged.Merge(e.Params())
	e.bind(merged)
}

// ExecutionMode controls when a build step runs.
type ExecutionMode string

const (
	ExecutionModeDefault      ExecutionMode = "DEFAULT"
	ExecutionModeRunOnSuccess ExecutionMode = "RUN_ON_SUCCESS"
	ExecutionModeRunOnFailure ExecutionMode = "RUN_ON_FAILURE"
	ExecutionModeAlways       ExecutionMode = "ALWAYS"
)

// BuildStep is embedded by every build runner.
type BuildStep struct {
	Entity
	Name          string
	Enabled       bool
	ExecutionMode *EnumProp[ExecutionMode]
}

func (s *BuildStep) Init(kind string, defaults ...Param) {
	s.Entity.Init(kind, defaults...)
	s.Enabled = true
	s.ExecutionMode = Enum(&s.PropertySet, "executionMode", "teamcity.step.mode",
		ExecutionModeDefault, ExecutionModeRunOnSuccess, ExecutionModeRunOnFailure, ExecutionModeAlways,
	).Mapped(map[ExecutionMode]string{
		ExecutionModeDefault:      "default",
		ExecutionModeRunOnSuccess: "execute_if_success",
		ExecutionModeRunOnFailure: "execute_if_failed",
		ExecutionModeAlways:       "execute_always",
	})
}

func (s *BuildStep) buildStep() *BuildStep { return s }

// Trigger is embedded by every build trigger.
type Trigger struct {
	Entity
	Enabled bool
}

func (t *Trigger) Init(kind string, defaults ...Param) {
	t.Entity.Init(kind, defaults...)
	t.Enabled = true
}

func (t *Trigger) trigger() *Trigger { return t }

// BuildFeature is embedded by every build feature.
type BuildFeature struct {
	Entity
	Enabled bool
}

func (f *BuildFeature) Init(kind string, defaults ...Param) {
	f.Entity.Init(kind, defaults...)
	f.Enabled = true
}

func (f *BuildFeature) buildFeature() *BuildFeature { return f }

// ProjectFeature is embedded by every project feature.
type ProjectFeature struct {
	Entity
}

func (f *ProjectFeature) projectFeature() *ProjectFeature { return f }

// VcsRoot is embedded by every VCS root kind. Build types attach roots by ID.
type VcsRoot struct {
	Entity
	Name string
}

func (r *VcsRoot) vcsRoot() *VcsRoot { return r }

// RemoteParameter is a build parameter whose value is resolved by the server
// from an external source. Name is the build parameter it defines.
type RemoteParameter struct {
	Entity
	Name string
}

func (r *RemoteParameter) remoteParameter() *RemoteParameter { return r }
