// Package projectfeatures provides project level features: issue trackers,
// connections, registries, artifact storages and project settings.
package projectfeatures

import "settingskit/pkg/dsl"

// IssueTrackerAuth is the authentication of an issue tracker.
type IssueTrackerAuth interface {
	dsl.Variant
	issueTrackerAuth()
}

type IssueTrackerAnonymous struct{ dsl.VariantBase }

func NewIssueTrackerAnonymous() *IssueTrackerAnonymous {
	return &IssueTrackerAnonymous{VariantBase: dsl.NewVariant("anonymous")}
}

type IssueTrackerAccessToken struct {
	dsl.VariantBase
	AccessToken *dsl.StringProp
}

func NewIssueTrackerAccessToken() *IssueTrackerAccessToken {
	a := &IssueTrackerAccessToken{VariantBase: dsl.NewVariant("accesstoken")}
	a.AccessToken = a.String("accessToken", "secure:accessToken").Required()
	return a
}

type IssueTrackerUsernameAndPassword struct {
	dsl.VariantBase
	UserName *dsl.StringProp
	Password *dsl.StringProp
}

func NewIssueTrackerUsernameAndPassword() *IssueTrackerUsernameAndPassword {
	a := &IssueTrackerUsernameAndPassword{VariantBase: dsl.NewVariant("loginpassword")}
	a.UserName = a.String("userName", "username").Required()
	a.Password = a.String("password", "secure:password").Required()
	return a
}

// IssueTrackerStoredToken refers to a token stored on the server.
type IssueTrackerStoredToken struct {
	dsl.VariantBase
	TokenID *dsl.StringProp
}

func NewIssueTrackerStoredToken() *IssueTrackerStoredToken {
	a := &IssueTrackerStoredToken{VariantBase: dsl.NewVariant("storedToken")}
	a.TokenID = a.String("tokenId", "tokenId").Required()
	return a
}

func (*IssueTrackerAnonymous) issueTrackerAuth()           {}
func (*IssueTrackerAccessToken) issueTrackerAuth()         {}
func (*IssueTrackerUsernameAndPassword) issueTrackerAuth() {}
func (*IssueTrackerStoredToken) issueTrackerAuth()         {}

var (
	anonymousAuth = dsl.VariantDef[IssueTrackerAuth]{Name: "anonymous", New: func() IssueTrackerAuth {
		return NewIssueTrackerAnonymous()
	}}
	accessTokenAuth = dsl.VariantDef[IssueTrackerAuth]{Name: "accessToken", New: func() IssueTrackerAuth {
		return NewIssueTrackerAccessToken()
	}}
	usernameAndPasswordAuth = dsl.VariantDef[IssueTrackerAuth]{Name: "usernameAndPassword", New: func() IssueTrackerAuth {
		return NewIssueTrackerUsernameAndPassword()
	}}
	storedTokenAuth = dsl.VariantDef[IssueTrackerAuth]{Name: "storedToken", New: func() IssueTrackerAuth {
		return NewIssueTrackerStoredToken()
	}}
)

// GitHubIssueTracker links issue references in commits to GitHub issues.
type GitHubIssueTracker struct {
	dsl.ProjectFeature
	DisplayName   *dsl.StringProp
	RepositoryURL *dsl.StringProp
	AuthType      *dsl.CompoundProp[IssueTrackerAuth]
	IssuesPattern *dsl.StringProp
}

func NewGitHubIssueTracker(init func(*GitHubIssueTracker)) *GitHubIssueTracker {
	t := &GitHubIssueTracker{}
	t.Init("IssueTracker",
		dsl.Param{Name: "type", Value: "GithubIssues"},
		dsl.Param{Name: "secure:accessToken", Value: ""},
		dsl.Param{Name: "username", Value: ""},
		dsl.Param{Name: "secure:password", Value: ""},
	)
	t.DisplayName = t.String("displayName", "name").Required()
	t.RepositoryURL = t.String("repositoryURL", "repository").Required()
	t.AuthType = dsl.Compound(&t.PropertySet, "authType", "authType",
		anonymousAuth, accessTokenAuth, usernameAndPasswordAuth, storedTokenAuth)
	t.IssuesPattern = t.String("issuesPattern", "pattern")
	if init != nil {
		init(t)
	}
	return t
}

// AddGitHubIssueTracker registers a GitHub issue tracker.
func AddGitHubIssueTracker(features *dsl.ProjectFeatures, init func(*GitHubIssueTracker)) *GitHubIssueTracker {
	t := NewGitHubIssueTracker(init)
	features.Add(t)
	return t
}

type BitbucketIssueTracker struct {
	dsl.ProjectFeature
	DisplayName   *dsl.StringProp
	RepositoryURL *dsl.StringProp
	AuthType      *dsl.CompoundProp[IssueTrackerAuth]
	IssuesPattern *dsl.StringProp
}

func NewBitbucketIssueTracker(init func(*BitbucketIssueTracker)) *BitbucketIssueTracker {
	t := &BitbucketIssueTracker{}
	t.Init("IssueTracker",
		dsl.Param{Name: "type", Value: "BitBucketIssues"},
		dsl.Param{Name: "username", Value: ""},
		dsl.Param{Name: "secure:password", Value: ""},
	)
	t.DisplayName = t.String("displayName", "name").Required()
	t.RepositoryURL = t.String("repositoryURL", "repository").Required()
	t.AuthType = dsl.Compound(&t.PropertySet, "authType", "authType", anonymousAuth, usernameAndPasswordAuth)
	t.IssuesPattern = t.String("issuesPattern", "pattern")
	if init != nil {
		init(t)
	}
	return t
}

func AddBitbucketIssueTracker(features *dsl.ProjectFeatures, init func(*BitbucketIssueTracker)) *BitbucketIssueTracker {
	t := NewBitbucketIssueTracker(init)
	features.Add(t)
	return t
}

type GitLabIssueTracker struct {
	dsl.ProjectFeature
	DisplayName   *dsl.StringProp
	RepositoryURL *dsl.StringProp
	AuthType      *dsl.CompoundProp[IssueTrackerAuth]
	IssuesPattern *dsl.StringProp
}

func NewGitLabIssueTracker(init func(*GitLabIssueTracker)) *GitLabIssueTracker {
	t := &GitLabIssueTracker{}
	t.Init("IssueTracker",
		dsl.Param{Name: "type", Value: "GitLabIssues"},
		dsl.Param{Name: "secure:accessToken", Value: ""},
	)
	t.DisplayName = t.String("displayName", "name").Required()
	t.RepositoryURL = t.String("repositoryURL", "repository").Required()
	t.AuthType = dsl.Compound(&t.PropertySet, "authType", "authType", anonymousAuth, accessTokenAuth)
	t.IssuesPattern = t.String("issuesPattern", "pattern")
	if init != nil {
		init(t)
	}
	return t
}

func AddGitLabIssueTracker(features *dsl.ProjectFeatures, init func(*GitLabIssueTracker)) *GitLabIssueTracker {
	t := NewGitLabIssueTracker(init)
	features.Add(t)
	return t
}

type JiraIssueTracker struct {
	dsl.ProjectFeature
	DisplayName      *dsl.StringProp
	Host             *dsl.StringProp
	UserName         *dsl.StringProp
	Password         *dsl.StringProp
	ProjectKeys      *dsl.StringProp
	UseAutomaticKeys *dsl.BoolProp
	CloudClientID    *dsl.StringProp
	CloudSecret      *dsl.StringProp
}

func NewJiraIssueTracker(init func(*JiraIssueTracker)) *JiraIssueTracker {
	t := &JiraIssueTracker{}
	t.Init("IssueTracker", dsl.Param{Name: "type", Value: "jira"})
	t.DisplayName = t.String("displayName", "name").Required()
	t.Host = t.String("host", "host").Required()
	t.UserName = t.String("userName", "username")
	t.Password = t.String("password", "secure:password")
	t.ProjectKeys = t.String("projectKeys", "idPrefix").Required()
	t.UseAutomaticKeys = t.Bool("useAutomaticKeys", "autoSync").Encoded("true", "")
	t.CloudClientID = t.String("cloudClientID", "jiraCloudClientId")
	t.CloudSecret = t.String("cloudSecret", "secure:jiraCloudServerSecret")
	if init != nil {
		init(t)
	}
	return t
}

func AddJiraIssueTracker(features *dsl.ProjectFeatures, init func(*JiraIssueTracker)) *JiraIssueTracker {
	t := NewJiraIssueTracker(init)
	features.Add(t)
	return t
}

type TfsIssueTracker struct {
	dsl.ProjectFeature
	DisplayName *dsl.StringProp
	Host        *dsl.StringProp
	UserName    *dsl.StringProp
	Password    *dsl.StringProp
	Pattern     *dsl.StringProp
}

func NewTfsIssueTracker(init func(*TfsIssueTracker)) *TfsIssueTracker {
	t := &TfsIssueTracker{}
	t.Init("IssueTracker", dsl.Param{Name: "type", Value: "tfs"})
	t.DisplayName = t.String("displayName", "name")
	t.Host = t.String("host", "host")
	t.UserName = t.String("userName", "username")
	t.Password = t.String("password", "secure:password")
	t.Pattern = t.String("pattern", "pattern")
	if init != nil {
		init(t)
	}
	return t
}

func AddTfsIssueTracker(features *dsl.ProjectFeatures, init func(*TfsIssueTracker)) *TfsIssueTracker {
	t := NewTfsIssueTracker(init)
	features.Add(t)
	return t
}

// YouTrackAuthType selects how YouTrack requests are authenticated.
type YouTrackAuthType string

const (
	YouTrackAuthToken               YouTrackAuthType = "TOKEN"
	YouTrackAuthUsernameAndPassword YouTrackAuthType = "USERNAME_AND_PASSWORD"
)

type YouTrackIssueTracker struct {
	dsl.ProjectFeature
	DisplayName     *dsl.StringProp
	Host            *dsl.StringProp
	UserName        *dsl.StringProp
	Password        *dsl.StringProp
	ProjectExtIDs   *dsl.StringProp
	AccessToken     *dsl.StringProp
	UseAutomaticIDs *dsl.BoolProp
	AuthType        *dsl.EnumProp[YouTrackAuthType]
}

func NewYouTrackIssueTracker(init func(*YouTrackIssueTracker)) *YouTrackIssueTracker {
	t := &YouTrackIssueTracker{}
	t.Init("IssueTracker",
		dsl.Param{Name: "type", Value: "youtrack"},
		dsl.Param{Name: "username", Value: ""},
		dsl.Param{Name: "secure:password", Value: ""},
		dsl.Param{Name: "secure:accessToken", Value: ""},
	)
	t.DisplayName = t.String("displayName", "name").Required()
	t.Host = t.String("host", "host").Required()
	t.UserName = t.String("userName", "username")
	t.Password = t.String("password", "secure:password")
	t.ProjectExtIDs = t.String("projectExtIds", "idPrefix").Required()
	t.AccessToken = t.String("accessToken", "secure:accessToken")
	t.UseAutomaticIDs = t.Bool("useAutomaticIds", "autoSync").Encoded("true", "")
	t.AuthType = dsl.Enum(&t.PropertySet, "authType", "authType",
		YouTrackAuthToken, YouTrackAuthUsernameAndPassword,
	).Mapped(map[YouTrackAuthType]string{
		YouTrackAuthToken:               "accesstoken",
		YouTrackAuthUsernameAndPassword: "loginpassword",
	})
	if init != nil {
		init(t)
	}
	return t
}

func AddYouTrackIssueTracker(features *dsl.ProjectFeatures, init func(*YouTrackIssueTracker)) *YouTrackIssueTracker {
	t := NewYouTrackIssueTracker(init)
	features.Add(t)
	return t
}
