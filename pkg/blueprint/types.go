package blueprint

import "time"

// Blueprint is the root object of a settings blueprint. It's populated by
// parsing the user's settings.yaml (or .json/.jsonc) file.
type Blueprint struct {
	APIVersion string   `yaml:"apiVersion" validate:"required"`
	Kind       string   `yaml:"kind" validate:"required,eq=Settings"`
	Metadata   Metadata `yaml:"metadata" validate:"required"`
	Spec       Spec     `yaml:"spec" validate:"required"`
}

// Metadata contains blueprint-level metadata.
type Metadata struct {
	Name        string            `yaml:"name" validate:"required"`
	Description string            `yaml:"description"`
	Labels      map[string]string `yaml:"labels,omitempty"`
}

// Spec describes the settings tree and where it goes once rendered.
type Spec struct {
	Project Project      `yaml:"project" validate:"required"`
	Output  Output       `yaml:"output" validate:"required"`
	SCM     *SCMProvider `yaml:"scm,omitempty"`
	Preview *Preview     `yaml:"preview,omitempty"`
}

// Output configures the rendered settings tree.
type Output struct {
	Destination string `yaml:"destination" validate:"required"`
	// Format is one of xml, yaml or json. Empty uses the tool default.
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=xml yaml json"`
}

// SCMProvider configuration for the repository the rendered settings are
// pushed to.
type SCMProvider struct {
	Provider string        `yaml:"provider" validate:"required,oneof=gitlab"`
	URL      string        `yaml:"url" validate:"required,url"`
	Project  ProjectConfig `yaml:"project" validate:"required"`
}

// ProjectConfig defines the SCM project configuration.
type ProjectConfig struct {
	Name        string `yaml:"name" validate:"required"`
	Namespace   string `yaml:"namespace" validate:"required"`
	Description string `yaml:"description"`
	Visibility  string `yaml:"visibility" validate:"omitempty,oneof=private public internal"`
}

// Preview configures the throwaway CI server the rendered settings are loaded
// into.
type Preview struct {
	// Runtime selects the container runtime. Only docker is supported.
	Runtime       string        `yaml:"runtime,omitempty" validate:"omitempty,oneof=docker"`
	Image         string        `yaml:"image,omitempty"`
	Port          int           `yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	ReadyMarker   string        `yaml:"readyMarker,omitempty"`
	FailureMarker string        `yaml:"failureMarker,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
}

// Project is a node of the settings tree.
type Project struct {
	ID           string      `yaml:"id" validate:"required"`
	Name         string      `yaml:"name" validate:"required"`
	Description  string      `yaml:"description,omitempty"`
	Params       Params      `yaml:"params,omitempty"`
	RemoteParams []Entity    `yaml:"remoteParams,omitempty" validate:"dive"`
	Features     []Entity    `yaml:"features,omitempty" validate:"dive"`
	VcsRoots     []Entity    `yaml:"vcsRoots,omitempty" validate:"dive"`
	BuildTypes   []BuildType `yaml:"buildTypes,omitempty" validate:"dive"`
	SubProjects  []Project   `yaml:"subProjects,omitempty" validate:"dive"`
}

// BuildType is a build configuration of a project.
type BuildType struct {
	ID           string   `yaml:"id" validate:"required"`
	Name         string   `yaml:"name" validate:"required"`
	Description  string   `yaml:"description,omitempty"`
	Params       Params   `yaml:"params,omitempty"`
	RemoteParams []Entity `yaml:"remoteParams,omitempty" validate:"dive"`
	VcsRoots     []string `yaml:"vcsRoots,omitempty"`
	Steps        []Entity `yaml:"steps,omitempty" validate:"dive"`
	Triggers     []Entity `yaml:"triggers,omitempty" validate:"dive"`
	Features     []Entity `yaml:"features,omitempty" validate:"dive"`
}

// Entity declares one settings entity. Kind selects the entity type within
// its collection; Properties are set through the entity's typed properties and
// Params are stored verbatim.
type Entity struct {
	Kind       string `yaml:"kind" validate:"required"`
	ID         string `yaml:"id,omitempty"`
	Name       string `yaml:"name,omitempty"`
	Enabled    *bool  `yaml:"enabled,omitempty"`
	Base       string `yaml:"base,omitempty"`
	Properties Values `yaml:"properties,omitempty"`
	Params     Params `yaml:"params,omitempty"`
}
