package app

import (
	"strings"
	"testing"

	"settingskit/internal/preview"
	"settingskit/internal/scm"
)

func TestProviderFactory_GetScmProvider(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		providerName string
		errorMsg     string
	}{
		{
			name:         "Valid GitLab provider",
			token:        "glpat-test",
			providerName: "gitlab",
		},
		{
			name:         "GitLab without token",
			providerName: "gitlab",
			errorMsg:     "failed to create GitLab provider: GITLAB_PRIVATE_TOKEN",
		},
		{
			name:         "Unsupported provider",
			token:        "glpat-test",
			providerName: "github",
			errorMsg:     "unsupported SCM provider: github",
		},
		{
			name:         "Empty provider name",
			token:        "glpat-test",
			providerName: "",
			errorMsg:     "unsupported SCM provider:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProviderFactory(tt.token, "").GetScmProvider(tt.providerName, "https://gitlab.example.com")

			if tt.errorMsg != "" {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain '%s', got: %s", tt.errorMsg, err.Error())
				}
				if provider != nil {
					t.Errorf("Expected provider to be nil on error, got: %T", provider)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			if _, ok := provider.(*scm.GitLabProvider); !ok {
				t.Errorf("Expected *scm.GitLabProvider, got: %T", provider)
			}
		})
	}
}

func TestProviderFactory_GetPreviewer(t *testing.T) {
	factory := testFactory(nil, &fakeRuntime{})

	for _, name := range []string{"", "docker"} {
		previewer, err := factory.GetPreviewer(name)
		if err != nil {
			t.Fatalf("GetPreviewer(%q) failed: %v", name, err)
		}
		if _, ok := previewer.(*preview.ServerPreviewer); !ok {
			t.Errorf("Expected *preview.ServerPreviewer, got: %T", previewer)
		}
	}

	if _, err := factory.GetPreviewer("podman"); err == nil || !strings.Contains(err.Error(), "unsupported container runtime: podman") {
		t.Errorf("Expected unsupported runtime error, got: %v", err)
	}
}

func TestProviderFactory_GetPreviewer_RuntimeUnavailable(t *testing.T) {
	previewer, err := testFactory(nil, nil).GetPreviewer("docker")
	if err == nil {
		t.Fatal("Expected error but got none")
	}
	if !strings.Contains(err.Error(), "failed to create Docker runtime: docker daemon is not reachable") {
		t.Errorf("Unexpected error: %s", err)
	}
	if previewer != nil {
		t.Errorf("Expected previewer to be nil on error, got: %T", previewer)
	}
}
