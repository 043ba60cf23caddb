package app

import (
	"fmt"

	"settingskit/internal/preview"
	"settingskit/internal/runtime"
	"settingskit/internal/scm"
	rt "settingskit/pkg/runtime"
)

// ProviderFactory creates the SCM providers and previewers named in a
// blueprint, keeping the stages independent of the concrete implementations.
type ProviderFactory struct {
	gitlabToken  string
	previewImage string

	newGitLab  func(baseURL, token string) (scm.ScmProvider, error)
	newRuntime func() (rt.ContainerRuntime, error)
}

// NewProviderFactory creates a factory. gitlabToken authenticates against
// GitLab; previewImage is the server image used when a blueprint names none.
func NewProviderFactory(gitlabToken, previewImage string) *ProviderFactory {
	return &ProviderFactory{
		gitlabToken:  gitlabToken,
		previewImage: previewImage,
		newGitLab: func(baseURL, token string) (scm.ScmProvider, error) {
			return scm.NewGitLabProvider(baseURL, token)
		},
		newRuntime: func() (rt.ContainerRuntime, error) {
			return runtime.NewDockerRuntime()
		},
	}
}

// GetScmProvider returns the SCM provider implementation for providerName.
func (f *ProviderFactory) GetScmProvider(providerName, baseURL string) (scm.ScmProvider, error) {
	switch providerName {
	case "gitlab":
		provider, err := f.newGitLab(baseURL, f.gitlabToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitLab provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported SCM provider: %s", providerName)
	}
}

// GetPreviewer returns a previewer backed by the named container runtime.
// An empty name selects docker.
func (f *ProviderFactory) GetPreviewer(runtimeName string) (preview.Previewer, error) {
	switch runtimeName {
	case "", "docker":
		containerRuntime, err := f.newRuntime()
		if err != nil {
			return nil, fmt.Errorf("failed to create Docker runtime: %w", err)
		}
		return preview.NewServerPreviewer(containerRuntime, f.previewImage), nil
	default:
		return nil, fmt.Errorf("unsupported container runtime: %s", runtimeName)
	}
}
