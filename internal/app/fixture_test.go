package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"settingskit/internal/scm"
	"settingskit/internal/ui"
	"settingskit/pkg/blueprint"
	rt "settingskit/pkg/runtime"
)

const baseBlueprint = `apiVersion: settingskit/v1
kind: Settings
metadata:
  name: acme
spec:
  output:
    destination: DEST
  project:
    id: Acme
    name: Acme
    params:
      env.JAVA_HOME: /opt/jdk
    buildTypes:
      - id: Acme_Build
        name: Build
        steps:
          - kind: script
            name: Hello
            properties:
              scriptContent: echo hello
        triggers:
          - kind: vcs
    subProjects:
      - id: Acme_Tools
        name: Tools
`

const scmSection = `  scm:
    provider: gitlab
    url: https://gitlab.example.com
    project:
      name: acme-settings
      namespace: platform
`

const previewSection = `  preview:
    port: 8112
`

// fixture is a blueprint on disk plus the directories a run writes to.
type fixture struct {
	dir       string
	path      string
	dest      string
	stateFile string
	out       *bytes.Buffer
	errOut    *bytes.Buffer
}

func newFixture(t *testing.T, sections ...string) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:       dir,
		path:      filepath.Join(dir, "settings.yaml"),
		dest:      filepath.Join(dir, "out"),
		stateFile: filepath.Join(dir, "state.json"),
		out:       &bytes.Buffer{},
		errOut:    &bytes.Buffer{},
	}
	content := strings.Replace(baseBlueprint, "DEST", f.dest, 1)
	content = strings.Replace(content, "spec:\n", "spec:\n"+strings.Join(sections, ""), 1)
	f.write(t, content)
	return f
}

func (f *fixture) write(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(f.path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write blueprint: %v", err)
	}
}

func (f *fixture) options(factory *ProviderFactory) Options {
	return Options{
		StateFile: f.stateFile,
		Console:   ui.NewConsoleWithWriters(f.out, f.errOut, false),
		Factory:   factory,
	}
}

// fakeScm records Publish calls.
type fakeScm struct {
	calls  int
	dir    string
	result *scm.PublishResult
	err    error
}

func (s *fakeScm) Publish(ctx context.Context, cfg *blueprint.SCMProvider, dir string) (*scm.PublishResult, error) {
	s.calls++
	s.dir = dir
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// fakeRuntime serves canned container output.
type fakeRuntime struct {
	output string
	opts   rt.RunOptions
	pulled []string
}

func (r *fakeRuntime) PullImage(ctx context.Context, image string) error {
	r.pulled = append(r.pulled, image)
	return nil
}

func (r *fakeRuntime) RunContainer(ctx context.Context, opts rt.RunOptions) (io.ReadCloser, error) {
	r.opts = opts
	return io.NopCloser(strings.NewReader(r.output)), nil
}

// testFactory returns a factory wired to fakes instead of GitLab and Docker.
func testFactory(provider *fakeScm, runtime *fakeRuntime) *ProviderFactory {
	f := NewProviderFactory("token", "")
	f.newGitLab = func(baseURL, token string) (scm.ScmProvider, error) {
		if provider == nil {
			return nil, errors.New("GITLAB_PRIVATE_TOKEN environment variable is required")
		}
		return provider, nil
	}
	f.newRuntime = func() (rt.ContainerRuntime, error) {
		if runtime == nil {
			return nil, errors.New("docker daemon is not reachable")
		}
		return runtime, nil
	}
	return f
}
