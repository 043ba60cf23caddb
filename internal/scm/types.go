package scm

import (
	"context"

	"settingskit/pkg/blueprint"
)

// ScmProvider defines the interface for source control management operations.
// This interface is provider-agnostic and can be implemented by any SCM provider
// such as GitLab, GitHub, Bitbucket, etc.
type ScmProvider interface {
	// Publish makes sure the repository described by cfg exists and pushes
	// the rendered settings in dir to it. Publishing an unchanged directory
	// again is a no-op.
	Publish(ctx context.Context, cfg *blueprint.SCMProvider, dir string) (*PublishResult, error)
}

// PublishResult describes what a publish run did.
type PublishResult struct {
	RepoURL  string
	Created  bool
	Commit   string
	UpToDate bool
}
