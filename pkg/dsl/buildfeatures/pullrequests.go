package buildfeatures

import "settingskit/pkg/dsl"

// PullRequestsAuth selects how the server authenticates against the hosting
// provider. Each provider accepts a subset of the variants.
type PullRequestsAuth interface {
	dsl.Variant
	pullRequestsAuth()
}

// PullRequestsVcsRootAuth reuses the credentials of the VCS root.
type PullRequestsVcsRootAuth struct{ dsl.VariantBase }

func NewPullRequestsVcsRootAuth() *PullRequestsVcsRootAuth {
	return &PullRequestsVcsRootAuth{VariantBase: dsl.NewVariant("vcsRoot")}
}

type PullRequestsTokenAuth struct {
	dsl.VariantBase
	Token *dsl.StringProp
}

func NewPullRequestsTokenAuth() *PullRequestsTokenAuth {
	v := &PullRequestsTokenAuth{VariantBase: dsl.NewVariant("token")}
	v.Token = v.String("token", "secure:accessToken").Required()
	return v
}

// PullRequestsStoredTokenAuth refers to a token obtained through a connection.
type PullRequestsStoredTokenAuth struct {
	dsl.VariantBase
	TokenID *dsl.StringProp
}

func NewPullRequestsStoredTokenAuth() *PullRequestsStoredTokenAuth {
	v := &PullRequestsStoredTokenAuth{VariantBase: dsl.NewVariant("storedToken")}
	v.TokenID = v.String("tokenId", "tokenId").Required()
	return v
}

type PullRequestsPasswordAuth struct {
	dsl.VariantBase
	Username *dsl.StringProp
	Password *dsl.StringProp
}

func NewPullRequestsPasswordAuth() *PullRequestsPasswordAuth {
	v := &PullRequestsPasswordAuth{VariantBase: dsl.NewVariant("password")}
	v.Username = v.String("username", "username").Required()
	v.Password = v.String("password", "secure:password").Required()
	return v
}

func (*PullRequestsVcsRootAuth) pullRequestsAuth()     {}
func (*PullRequestsTokenAuth) pullRequestsAuth()       {}
func (*PullRequestsStoredTokenAuth) pullRequestsAuth() {}
func (*PullRequestsPasswordAuth) pullRequestsAuth()    {}

var (
	vcsRootAuth     = dsl.VariantDef[PullRequestsAuth]{Name: "vcsRoot", New: func() PullRequestsAuth { return NewPullRequestsVcsRootAuth() }}
	tokenAuth       = dsl.VariantDef[PullRequestsAuth]{Name: "token", New: func() PullRequestsAuth { return NewPullRequestsTokenAuth() }}
	storedTokenAuth = dsl.VariantDef[PullRequestsAuth]{Name: "storedToken", New: func() PullRequestsAuth { return NewPullRequestsStoredTokenAuth() }}
	passwordAuth    = dsl.VariantDef[PullRequestsAuth]{Name: "password", New: func() PullRequestsAuth { return NewPullRequestsPasswordAuth() }}
)

func authType(s *dsl.PropertySet, variants ...dsl.VariantDef[PullRequestsAuth]) *dsl.CompoundProp[PullRequestsAuth] {
	return dsl.Compound(s, "authType", "authenticationType", variants...)
}

// GitHubRoleFilter limits which authors' pull requests are monitored.
type GitHubRoleFilter string

const (
	GitHubRoleMember               GitHubRoleFilter = "MEMBER"
	GitHubRoleMemberOrCollaborator GitHubRoleFilter = "MEMBER_OR_COLLABORATOR"
	GitHubRoleEverybody            GitHubRoleFilter = "EVERYBODY"
)

// PullRequestsProvider selects the hosting service of the monitored repository.
type PullRequestsProvider interface {
	dsl.Variant
	pullRequestsProvider()
}

type GitHubPullRequests struct {
	dsl.VariantBase
	ServerURL          *dsl.StringProp
	AuthType           *dsl.CompoundProp[PullRequestsAuth]
	FilterSourceBranch *dsl.StringProp
	FilterTargetBranch *dsl.StringProp
	FilterAuthorRole   *dsl.EnumProp[GitHubRoleFilter]
	IgnoreDrafts       *dsl.BoolProp
}

func NewGitHubPullRequests() *GitHubPullRequests {
	v := &GitHubPullRequests{VariantBase: dsl.NewVariant("github")}
	v.ServerURL = v.String("serverUrl", "serverUrl")
	v.AuthType = authType(&v.PropertySet, vcsRootAuth, tokenAuth, storedTokenAuth)
	v.FilterSourceBranch = v.String("filterSourceBranch", "filterSourceBranch")
	v.FilterTargetBranch = v.String("filterTargetBranch", "filterTargetBranch")
	v.FilterAuthorRole = dsl.Enum(&v.PropertySet, "filterAuthorRole", "filterAuthorRole",
		GitHubRoleMember, GitHubRoleMemberOrCollaborator, GitHubRoleEverybody)
	v.IgnoreDrafts = v.Bool("ignoreDrafts", "ignoreDrafts")
	return v
}

type GitLabPullRequests struct {
	dsl.VariantBase
	ServerURL          *dsl.StringProp
	AuthType           *dsl.CompoundProp[PullRequestsAuth]
	FilterSourceBranch *dsl.StringProp
	FilterTargetBranch *dsl.StringProp
	IgnoreDrafts       *dsl.BoolProp
}

func NewGitLabPullRequests() *GitLabPullRequests {
	v := &GitLabPullRequests{VariantBase: dsl.NewVariant("gitlab")}
	v.ServerURL = v.String("serverUrl", "serverUrl")
	v.AuthType = authType(&v.PropertySet, vcsRootAuth, tokenAuth, storedTokenAuth)
	v.FilterSourceBranch = v.String("filterSourceBranch", "filterSourceBranch")
	v.FilterTargetBranch = v.String("filterTargetBranch", "filterTargetBranch")
	v.IgnoreDrafts = v.Bool("ignoreDrafts", "ignoreDrafts")
	return v
}

type BitbucketServerPullRequests struct {
	dsl.VariantBase
	ServerURL              *dsl.StringProp
	AuthType               *dsl.CompoundProp[PullRequestsAuth]
	FilterSourceBranch     *dsl.StringProp
	FilterTargetBranch     *dsl.StringProp
	UsePullRequestBranches *dsl.BoolProp
}

func NewBitbucketServerPullRequests() *BitbucketServerPullRequests {
	v := &BitbucketServerPullRequests{VariantBase: dsl.NewVariant("bitbucketServer")}
	v.ServerURL = v.String("serverUrl", "serverUrl")
	v.AuthType = authType(&v.PropertySet, vcsRootAuth, passwordAuth, tokenAuth, storedTokenAuth)
	v.FilterSourceBranch = v.String("filterSourceBranch", "filterSourceBranch")
	v.FilterTargetBranch = v.String("filterTargetBranch", "filterTargetBranch")
	v.UsePullRequestBranches = v.Bool("usePullRequestBranches", "useRequestBranches")
	return v
}

type BitbucketCloudPullRequests struct {
	dsl.VariantBase
	AuthType           *dsl.CompoundProp[PullRequestsAuth]
	FilterTargetBranch *dsl.StringProp
}

func NewBitbucketCloudPullRequests() *BitbucketCloudPullRequests {
	v := &BitbucketCloudPullRequests{VariantBase: dsl.NewVariant("bitbucketCloud")}
	v.AuthType = authType(&v.PropertySet, vcsRootAuth, passwordAuth, storedTokenAuth, tokenAuth)
	v.FilterTargetBranch = v.String("filterTargetBranch", "filterTargetBranch")
	return v
}

type AzureDevOpsPullRequests struct {
	dsl.VariantBase
	ProjectURL         *dsl.StringProp
	AuthType           *dsl.CompoundProp[PullRequestsAuth]
	FilterSourceBranch *dsl.StringProp
	FilterTargetBranch *dsl.StringProp
}

func NewAzureDevOpsPullRequests() *AzureDevOpsPullRequests {
	v := &AzureDevOpsPullRequests{VariantBase: dsl.NewVariant("azureDevOps")}
	v.ProjectURL = v.String("projectUrl", "projectUrl")
	v.AuthType = authType(&v.PropertySet, tokenAuth, storedTokenAuth)
	v.FilterSourceBranch = v.String("filterSourceBranch", "filterSourceBranch")
	v.FilterTargetBranch = v.String("filterTargetBranch", "filterTargetBranch")
	return v
}

// SpaceCredentials selects how the server authenticates against JetBrains Space.
type SpaceCredentials interface {
	dsl.Variant
	spaceCredentials()
}

type SpaceConnectionCredentials struct {
	dsl.VariantBase
	ConnectionID *dsl.StringProp
}

func NewSpaceConnectionCredentials() *SpaceConnectionCredentials {
	v := &SpaceConnectionCredentials{VariantBase: dsl.NewVariant("spaceCredentialsConnection")}
	v.ConnectionID = v.String("connectionId", "spaceConnectionId").Required()
	return v
}

func (*SpaceConnectionCredentials) spaceCredentials() {}

type SpacePullRequests struct {
	dsl.VariantBase
	FilterTargetBranch *dsl.StringProp
	AuthType           *dsl.CompoundProp[SpaceCredentials]
}

func NewSpacePullRequests() *SpacePullRequests {
	v := &SpacePullRequests{VariantBase: dsl.NewVariant("jetbrainsSpace")}
	v.FilterTargetBranch = v.String("filterTargetBranch", "filterTargetBranch")
	v.AuthType = dsl.Compound(&v.PropertySet, "authType", "spaceCredentialsType",
		dsl.VariantDef[SpaceCredentials]{Name: "connection", New: func() SpaceCredentials { return NewSpaceConnectionCredentials() }},
	)
	return v
}

func (*GitHubPullRequests) pullRequestsProvider()          {}
func (*GitLabPullRequests) pullRequestsProvider()          {}
func (*BitbucketServerPullRequests) pullRequestsProvider() {}
func (*BitbucketCloudPullRequests) pullRequestsProvider()  {}
func (*AzureDevOpsPullRequests) pullRequestsProvider()     {}
func (*SpacePullRequests) pullRequestsProvider()           {}

// PullRequests makes the server monitor pull or merge requests of a VCS root
// and build them as branches.
type PullRequests struct {
	dsl.BuildFeature
	VcsRootExtID *dsl.StringProp
	Provider     *dsl.CompoundProp[PullRequestsProvider]
}

func NewPullRequests(init func(*PullRequests)) *PullRequests {
	f := &PullRequests{}
	f.Init("pullRequests")
	f.VcsRootExtID = f.String("vcsRootExtId", "vcsRootId")
	f.Provider = dsl.Compound(&f.PropertySet, "provider", "providerType",
		dsl.VariantDef[PullRequestsProvider]{Name: "github", New: func() PullRequestsProvider { return NewGitHubPullRequests() }},
		dsl.VariantDef[PullRequestsProvider]{Name: "gitlab", New: func() PullRequestsProvider { return NewGitLabPullRequests() }},
		dsl.VariantDef[PullRequestsProvider]{Name: "bitbucketServer", New: func() PullRequestsProvider { return NewBitbucketServerPullRequests() }},
		dsl.VariantDef[PullRequestsProvider]{Name: "bitbucketCloud", New: func() PullRequestsProvider { return NewBitbucketCloudPullRequests() }},
		dsl.VariantDef[PullRequestsProvider]{Name: "azureDevOps", New: func() PullRequestsProvider { return NewAzureDevOpsPullRequests() }},
		dsl.VariantDef[PullRequestsProvider]{Name: "jetbrainsSpace", New: func() PullRequestsProvider { return NewSpacePullRequests() }},
	).Required()
	if init != nil {
		init(f)
	}
	return f
}

func AddPullRequests(features *dsl.BuildFeatures, init func(*PullRequests)) *PullRequests {
	f := NewPullRequests(init)
	features.Add(f)
	return f
}
