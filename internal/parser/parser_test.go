package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `apiVersion: settingskit/v1
kind: Settings
metadata:
  name: acme-settings
  description: Settings of the Acme project
  labels:
    team: platform
spec:
  output:
    destination: ./out
    format: xml
  scm:
    provider: gitlab
    url: https://gitlab.example.com
    project:
      name: acme-settings
      namespace: platform
      visibility: private
  preview:
    port: 8112
    timeout: 3m
  project:
    id: Acme
    name: Acme
    params:
      env.JAVA_HOME: /opt/jdk
      teamcity.ui.settings.readOnly: true
    features:
      - kind: githubIssues
        id: PROJECT_EXT_1
        properties:
          displayName: Acme issues
          repositoryURL: https://github.com/acme/app
    buildTypes:
      - id: Acme_Build
        name: Build
        steps:
          - kind: maven
            name: Package
            enabled: false
            properties:
              goals: clean package
              mavenVersion:
                variant: bundled_3_9
`

func writeBlueprint(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse_ValidBlueprint(t *testing.T) {
	bp, err := Parse(writeBlueprint(t, "settings.yaml", validYAML))
	if err != nil {
		t.Fatalf("Expected successful parsing, got error: %v", err)
	}

	if bp.Kind != "Settings" {
		t.Errorf("Expected Kind 'Settings', got '%s'", bp.Kind)
	}
	if bp.Metadata.Name != "acme-settings" {
		t.Errorf("Expected Name 'acme-settings', got '%s'", bp.Metadata.Name)
	}
	if bp.Spec.SCM == nil || bp.Spec.SCM.Project.Namespace != "platform" {
		t.Errorf("Expected SCM namespace 'platform', got %+v", bp.Spec.SCM)
	}
	if bp.Spec.Preview == nil || bp.Spec.Preview.Timeout != 3*time.Minute {
		t.Errorf("Expected preview timeout 3m, got %+v", bp.Spec.Preview)
	}

	params := bp.Spec.Project.Params
	if len(params) != 2 {
		t.Fatalf("Expected 2 project params, got %d", len(params))
	}
	if params[0].Name != "env.JAVA_HOME" || params[1].Name != "teamcity.ui.settings.readOnly" {
		t.Errorf("Expected params in document order, got %+v", params)
	}
	if params[1].Value != "true" {
		t.Errorf("Expected scalar param value 'true', got '%s'", params[1].Value)
	}

	step := bp.Spec.Project.BuildTypes[0].Steps[0]
	if step.Enabled == nil || *step.Enabled {
		t.Errorf("Expected step to be disabled, got %v", step.Enabled)
	}
	if len(step.Properties) != 2 || step.Properties[0].Name != "goals" {
		t.Fatalf("Expected properties in document order, got %+v", step.Properties)
	}
	compound, ok := step.Properties[1].Value.(map[string]any)
	if !ok {
		t.Fatalf("Expected compound property to decode as a map, got %T", step.Properties[1].Value)
	}
	if compound["variant"] != "bundled_3_9" {
		t.Errorf("Expected variant 'bundled_3_9', got %v", compound["variant"])
	}
}

func TestParse_JSONC(t *testing.T) {
	content := `{
  // settings of a tiny project
  "apiVersion": "settingskit/v1",
  "kind": "Settings",
  "metadata": {"name": "tiny"},
  "spec": {
    "output": {"destination": "out", "format": "json"},
    "project": {
      "id": "Tiny",
      "name": "Tiny",
      "params": {"b": "2", "a": "1",},
    },
  },
}`

	bp, err := Parse(writeBlueprint(t, "settings.jsonc", content))
	if err != nil {
		t.Fatalf("Expected successful parsing, got error: %v", err)
	}
	if bp.Spec.Output.Format != "json" {
		t.Errorf("Expected format 'json', got '%s'", bp.Spec.Output.Format)
	}
	params := bp.Spec.Project.Params
	if len(params) != 2 || params[0].Name != "b" || params[1].Name != "a" {
		t.Errorf("Expected params b, a in document order, got %+v", params)
	}
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := Parse("nonexistent-file.yaml")
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !strings.Contains(err.Error(), "blueprint file not found") {
		t.Errorf("Expected 'file not found' error, got: %v", err)
	}
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse(writeBlueprint(t, "settings.toml", validYAML))
	if err == nil || !strings.Contains(err.Error(), "unsupported blueprint extension") {
		t.Errorf("Expected unsupported extension error, got: %v", err)
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	malformed := `apiVersion: v1
kind: Settings
metadata:
  name: test
  description: "unclosed quote
spec:
  invalid yaml structure
`

	_, err := Parse(writeBlueprint(t, "malformed.yaml", malformed))
	if err == nil {
		t.Fatal("Expected error for malformed YAML, got nil")
	}
	if !strings.Contains(err.Error(), "malformed document") {
		t.Errorf("Expected 'malformed document' error, got: %v", err)
	}
}

func TestParse_UnknownField(t *testing.T) {
	content := strings.Replace(validYAML, "  output:\n", "  outputs: {}\n  output:\n", 1)

	_, err := Parse(writeBlueprint(t, "unknown.yaml", content))
	if err == nil || !strings.Contains(err.Error(), "outputs") {
		t.Errorf("Expected unknown field error naming 'outputs', got: %v", err)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(string) string
		errorContains string
	}{
		{
			name:          "wrong kind",
			mutate:        func(s string) string { return strings.Replace(s, "kind: Settings", "kind: Blueprint", 1) },
			errorContains: "field 'kind' must be 'Settings'",
		},
		{
			name:   "missing metadata name",
			mutate: func(s string) string {
				return strings.Replace(s, "  name: acme-settings\n  description", "  description", 1)
			},
			errorContains: "field 'metadata.name' is required but missing",
		},
		{
			name:          "bad output format",
			mutate:        func(s string) string { return strings.Replace(s, "format: xml", "format: toml", 1) },
			errorContains: "field 'spec.output.format' must be one of: xml yaml json",
		},
		{
			name:   "bad scm url",
			mutate: func(s string) string {
				return strings.Replace(s, "url: https://gitlab.example.com", "url: not-a-url", 1)
			},
			errorContains: "field 'spec.scm.url' must be a valid URL",
		},
		{
			name:          "build type without id",
			mutate:        func(s string) string { return strings.Replace(s, "id: Acme_Build", "description: no id", 1) },
			errorContains: "field 'spec.project.buildTypes[0].id' is required but missing",
		},
		{
			name:          "entity without kind",
			mutate:        func(s string) string { return strings.Replace(s, "- kind: maven\n            name", "- name", 1) },
			errorContains: "field 'spec.project.buildTypes[0].steps[0].kind' is required but missing",
		},
		{
			name:          "preview port out of range",
			mutate:        func(s string) string { return strings.Replace(s, "port: 8112", "port: 70000", 1) },
			errorContains: "field 'spec.preview.port' must be at most 65535",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeBlueprint(t, "settings.yaml", tt.mutate(validYAML)))
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("Expected error containing %q, got: %v", tt.errorContains, err)
			}
		})
	}
}

func TestParse_MultipleValidationErrors(t *testing.T) {
	content := `apiVersion: v1
kind: Settings
metadata: {}
spec:
  output: {}
  project: {}
`

	_, err := Parse(writeBlueprint(t, "empty.yaml", content))
	if err == nil {
		t.Fatal("Expected validation errors, got nil")
	}
	for _, want := range []string{"validation errors:", "metadata.name", "spec.output.destination", "spec.project.id", "spec.project.name"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %q, got: %v", want, err)
		}
	}
}
