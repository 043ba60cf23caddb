package scm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitlab "github.com/xanzy/go-gitlab"

	"settingskit/pkg/blueprint"
)

const (
	remoteName    = "origin"
	commitMessage = "Update CI server settings"
)

// GitLabProvider implements the ScmProvider interface for GitLab.
type GitLabProvider struct {
	client *gitlab.Client
	token  string
}

// NewGitLabProvider creates a GitLabProvider talking to the instance at
// baseURL. An empty baseURL means gitlab.com.
func NewGitLabProvider(baseURL, token string) (*GitLabProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("GITLAB_PRIVATE_TOKEN environment variable is required")
	}
	if baseURL == "" {
		baseURL = "https://gitlab.com"
	}

	client, err := gitlab.NewClient(token, gitlab.WithBaseURL(apiURL(baseURL)))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &GitLabProvider{
		client: client,
		token:  token,
	}, nil
}

func apiURL(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if strings.HasSuffix(baseURL, "/api/v4") {
		return baseURL
	}
	return baseURL + "/api/v4"
}

// Publish creates the GitLab project if needed and pushes dir to it.
func (g *GitLabProvider) Publish(ctx context.Context, cfg *blueprint.SCMProvider, dir string) (*PublishResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("scm configuration cannot be nil")
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("settings directory does not exist: %s", dir)
	}

	repoURL, created, err := g.ensureProject(ctx, cfg.Project)
	if err != nil {
		return nil, err
	}

	result, err := g.commitAndPush(ctx, dir, repoURL)
	if err != nil {
		return nil, err
	}
	result.Created = created
	return result, nil
}

// ensureProject returns the clone URL of the project, creating it when the
// namespace does not have it yet.
func (g *GitLabProvider) ensureProject(ctx context.Context, cfg blueprint.ProjectConfig) (string, bool, error) {
	repoPath := fmt.Sprintf("%s/%s", cfg.Namespace, cfg.Name)

	existing, resp, err := g.client.Projects.GetProject(repoPath, nil, gitlab.WithContext(ctx))
	if err == nil && existing != nil {
		slog.Info("Using existing GitLab repository", "path", repoPath, "url", existing.HTTPURLToRepo)
		return existing.HTTPURLToRepo, false, nil
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return "", false, fmt.Errorf("failed to look up GitLab project %s: %w", repoPath, err)
	}

	namespace, _, err := g.client.Namespaces.GetNamespace(cfg.Namespace, gitlab.WithContext(ctx))
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve GitLab namespace %s: %w", cfg.Namespace, err)
	}

	slog.Info("Creating GitLab repository", "name", cfg.Name, "namespace", cfg.Namespace)

	visibility := visibilityLevel(cfg.Visibility)
	createOpts := &gitlab.CreateProjectOptions{
		Name:                 &cfg.Name,
		Path:                 &cfg.Name,
		NamespaceID:          &namespace.ID,
		Description:          &cfg.Description,
		Visibility:           &visibility,
		InitializeWithReadme: gitlab.Bool(false),
		IssuesEnabled:        gitlab.Bool(false),
		WikiEnabled:          gitlab.Bool(false),
		SnippetsEnabled:      gitlab.Bool(false),
		AutoDevopsEnabled:    gitlab.Bool(false),
	}

	project, _, err := g.client.Projects.CreateProject(createOpts, gitlab.WithContext(ctx))
	if err != nil {
		return "", false, fmt.Errorf("failed to create GitLab project: %w", err)
	}

	slog.Info("GitLab repository created successfully", "id", project.ID, "url", project.HTTPURLToRepo)
	return project.HTTPURLToRepo, true, nil
}

func visibilityLevel(visibility string) gitlab.VisibilityValue {
	switch visibility {
	case "public":
		return gitlab.PublicVisibility
	case "internal":
		return gitlab.InternalVisibility
	default:
		return gitlab.PrivateVisibility
	}
}

// commitAndPush commits every change under dir, including deletions, and
// pushes the branch to repoURL. A clean worktree is pushed without a new
// commit so an interrupted earlier push still completes.
func (g *GitLabProvider) commitAndPush(ctx context.Context, dir, repoURL string) (*PublishResult, error) {
	repo, err := openOrInit(dir)
	if err != nil {
		return nil, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return nil, fmt.Errorf("failed to add files to git: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	result := &PublishResult{RepoURL: repoURL}
	if status.IsClean() {
		slog.Info("No settings changes to commit", "directory", dir)
	} else {
		commit, err := worktree.Commit(commitMessage, &git.CommitOptions{
			Author: &object.Signature{
				Name:  "SettingsKit",
				Email: "noreply@settingskit.dev",
				When:  time.Now(),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create commit: %w", err)
		}
		slog.Info("Created settings commit", "hash", commit)
		result.Commit = commit.String()
	}

	if err := ensureRemote(repo, repoURL); err != nil {
		return nil, err
	}

	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		Auth: &githttp.BasicAuth{
			Username: "oauth2", // GitLab uses oauth2 as username for token auth
			Password: g.token,
		},
	})
	switch {
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		slog.Info("Remote repository already up to date", "url", repoURL)
		result.UpToDate = true
	case err != nil:
		return nil, fmt.Errorf("failed to push to remote repository: %w", err)
	default:
		slog.Info("Successfully pushed settings to GitLab", "url", repoURL)
	}
	return result, nil
}

func openOrInit(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpen(dir)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	slog.Info("Initializing git repository", "directory", dir)
	repo, err = git.PlainInit(dir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize git repository: %w", err)
	}
	return repo, nil
}

// ensureRemote points origin at repoURL.
func ensureRemote(repo *git.Repository, repoURL string) error {
	remote, err := repo.Remote(remoteName)
	switch {
	case errors.Is(err, git.ErrRemoteNotFound):
	case err != nil:
		return fmt.Errorf("failed to read remote %s: %w", remoteName, err)
	default:
		urls := remote.Config().URLs
		if len(urls) == 1 && urls[0] == repoURL {
			return nil
		}
		if err := repo.DeleteRemote(remoteName); err != nil {
			return fmt.Errorf("failed to replace remote %s: %w", remoteName, err)
		}
	}

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: remoteName,
		URLs: []string{repoURL},
	})
	if err != nil {
		return fmt.Errorf("failed to add remote origin: %w", err)
	}
	return nil
}
