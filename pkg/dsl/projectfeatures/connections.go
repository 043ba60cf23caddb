package projectfeatures

import "settingskit/pkg/dsl"

const (
	oauthProvider     = "OAuthProvider"
	githubTokenScope  = "public_repo,repo,repo:status,write:repo_hook"
	providerTypeParam = "providerType"
)

func oauth(providerType string, defaults ...dsl.Param) []dsl.Param {
	return append([]dsl.Param{{Name: providerTypeParam, Value: providerType}}, defaults...)
}

// GitHubConnection is an OAuth application registered on github.com.
type GitHubConnection struct {
	dsl.ProjectFeature
	DisplayName  *dsl.StringProp
	ClientID     *dsl.StringProp
	ClientSecret *dsl.StringProp
}

func NewGitHubConnection(init func(*GitHubConnection)) *GitHubConnection {
	c := &GitHubConnection{}
	c.Init(oauthProvider, oauth("GitHub",
		dsl.Param{Name: "defaultTokenScope", Value: githubTokenScope},
		dsl.Param{Name: "gitHubUrl", Value: "https://github.com/"},
	)...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.ClientID = c.String("clientId", "clientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:clientSecret").Required()
	if init != nil {
		init(c)
	}
	return c
}

func AddGitHubConnection(features *dsl.ProjectFeatures, init func(*GitHubConnection)) *GitHubConnection {
	c := NewGitHubConnection(init)
	features.Add(c)
	return c
}

// GHEConnection is an OAuth application on a GitHub Enterprise server.
type GHEConnection struct {
	dsl.ProjectFeature
	DisplayName  *dsl.StringProp
	ServerURL    *dsl.StringProp
	ClientID     *dsl.StringProp
	ClientSecret *dsl.StringProp
}

func NewGHEConnection(init func(*GHEConnection)) *GHEConnection {
	c := &GHEConnection{}
	c.Init(oauthProvider, oauth("GHE", dsl.Param{Name: "defaultTokenScope", Value: githubTokenScope})...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.ServerURL = c.String("serverUrl", "gitHubUrl")
	c.ClientID = c.String("clientId", "clientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:clientSecret").Required()
	if init != nil {
		init(c)
	}
	return c
}

func AddGHEConnection(features *dsl.ProjectFeatures, init func(*GHEConnection)) *GHEConnection {
	c := NewGHEConnection(init)
	features.Add(c)
	return c
}

type GitHubAppConnection struct {
	dsl.ProjectFeature
	DisplayName   *dsl.StringProp
	AppID         *dsl.StringProp
	ClientID      *dsl.StringProp
	ClientSecret  *dsl.StringProp
	PrivateKey    *dsl.StringProp
	WebhookSecret *dsl.StringProp
	OwnerURL      *dsl.StringProp
}

func NewGitHubAppConnection(init func(*GitHubAppConnection)) *GitHubAppConnection {
	c := &GitHubAppConnection{}
	c.Init(oauthProvider, oauth("GitHubApp", dsl.Param{Name: "connectionSubtype", Value: "gitHubApp"})...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.AppID = c.String("appId", "gitHubApp.appId").Required()
	c.ClientID = c.String("clientId", "gitHubApp.clientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:gitHubApp.clientSecret").Required()
	c.PrivateKey = c.String("privateKey", "secure:gitHubApp.privateKey").Required()
	c.WebhookSecret = c.String("webhookSecret", "secure:gitHubApp.webhookSecret")
	c.OwnerURL = c.String("ownerUrl", "gitHubApp.ownerUrl").Required()
	if init != nil {
		init(c)
	}
	return c
}

func AddGitHubAppConnection(features *dsl.ProjectFeatures, init func(*GitHubAppConnection)) *GitHubAppConnection {
	c := NewGitHubAppConnection(init)
	features.Add(c)
	return c
}

// GitLabConnection is an OAuth application on gitlab.com.
type GitLabConnection struct {
	dsl.ProjectFeature
	DisplayName   *dsl.StringProp
	ApplicationID *dsl.StringProp
	ClientSecret  *dsl.StringProp
}

func NewGitLabConnection(init func(*GitLabConnection)) *GitLabConnection {
	c := &GitLabConnection{}
	c.Init(oauthProvider, oauth("GitLabCom")...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.ApplicationID = c.String("applicationId", "clientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:clientSecret").Required()
	if init != nil {
		init(c)
	}
	return c
}

func AddGitLabConnection(features *dsl.ProjectFeatures, init func(*GitLabConnection)) *GitLabConnection {
	c := NewGitLabConnection(init)
	features.Add(c)
	return c
}

// GitLabEEConnection is an OAuth application on a self-hosted GitLab.
type GitLabEEConnection struct {
	dsl.ProjectFeature
	DisplayName   *dsl.StringProp
	ServerURL     *dsl.StringProp
	ApplicationID *dsl.StringProp
	ClientSecret  *dsl.StringProp
}

func NewGitLabEEConnection(init func(*GitLabEEConnection)) *GitLabEEConnection {
	c := &GitLabEEConnection{}
	c.Init(oauthProvider, oauth("GitLabCEorEE")...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.ServerURL = c.String("serverUrl", "gitLabUrl").Required()
	c.ApplicationID = c.String("applicationId", "clientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:clientSecret").Required()
	if init != nil {
		init(c)
	}
	return c
}

func AddGitLabEEConnection(features *dsl.ProjectFeatures, init func(*GitLabEEConnection)) *GitLabEEConnection {
	c := NewGitLabEEConnection(init)
	features.Add(c)
	return c
}

type BitbucketCloudConnection struct {
	dsl.ProjectFeature
	DisplayName  *dsl.StringProp
	Key          *dsl.StringProp
	ClientSecret *dsl.StringProp
}

func NewBitbucketCloudConnection(init func(*BitbucketCloudConnection)) *BitbucketCloudConnection {
	c := &BitbucketCloudConnection{}
	c.Init(oauthProvider, oauth("BitBucketCloud")...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.Key = c.String("key", "clientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:clientSecret").Required()
	if init != nil {
		init(c)
	}
	return c
}

func AddBitbucketCloudConnection(features *dsl.ProjectFeatures, init func(*BitbucketCloudConnection)) *BitbucketCloudConnection {
	c := NewBitbucketCloudConnection(init)
	features.Add(c)
	return c
}

type BitbucketServerConnection struct {
	dsl.ProjectFeature
	DisplayName  *dsl.StringProp
	ServerURL    *dsl.StringProp
	ClientID     *dsl.StringProp
	ClientSecret *dsl.StringProp
}

func NewBitbucketServerConnection(init func(*BitbucketServerConnection)) *BitbucketServerConnection {
	c := &BitbucketServerConnection{}
	c.Init(oauthProvider, oauth("BitbucketServer")...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.ServerURL = c.String("serverUrl", "bitbucketUrl").Required()
	c.ClientID = c.String("clientId", "clientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:clientSecret").Required()
	if init != nil {
		init(c)
	}
	return c
}

func AddBitbucketServerConnection(features *dsl.ProjectFeatures, init func(*BitbucketServerConnection)) *BitbucketServerConnection {
	c := NewBitbucketServerConnection(init)
	features.Add(c)
	return c
}

// AzureDevOpsOAuthConnection is an OAuth application registered in Azure.
type AzureDevOpsOAuthConnection struct {
	dsl.ProjectFeature
	DisplayName    *dsl.StringProp
	AzureDevOpsURL *dsl.StringProp
	ApplicationID  *dsl.StringProp
	ClientSecret   *dsl.StringProp
	Scope          *dsl.StringProp
}

func NewAzureDevOpsOAuthConnection(init func(*AzureDevOpsOAuthConnection)) *AzureDevOpsOAuthConnection {
	c := &AzureDevOpsOAuthConnection{}
	c.Init(oauthProvider, oauth("AzureDevOps")...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.AzureDevOpsURL = c.String("azureDevOpsUrl", "azureDevOpsUrl").Required()
	c.ApplicationID = c.String("applicationId", "applicationId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:clientSecret").Required()
	c.Scope = c.String("scope", "scope")
	if init != nil {
		init(c)
	}
	return c
}

func AddAzureDevOpsOAuthConnection(features *dsl.ProjectFeatures, init func(*AzureDevOpsOAuthConnection)) *AzureDevOpsOAuthConnection {
	c := NewAzureDevOpsOAuthConnection(init)
	features.Add(c)
	return c
}

// AzureDevopsConnection authenticates to Azure DevOps with a personal
// access token.
type AzureDevopsConnection struct {
	dsl.ProjectFeature
	DisplayName *dsl.StringProp
	ServerURL   *dsl.StringProp
	AccessToken *dsl.StringProp
}

func NewAzureDevopsConnection(init func(*AzureDevopsConnection)) *AzureDevopsConnection {
	c := &AzureDevopsConnection{}
	c.Init(oauthProvider, oauth("tfs", dsl.Param{Name: "type", Value: "token"})...)
	c.DisplayName = c.String("displayName", "displayName")
	c.ServerURL = c.String("serverUrl", "serverUrl")
	c.AccessToken = c.String("accessToken", "secure:accessToken")
	if init != nil {
		init(c)
	}
	return c
}

func AddAzureDevopsConnection(features *dsl.ProjectFeatures, init func(*AzureDevopsConnection)) *AzureDevopsConnection {
	c := NewAzureDevopsConnection(init)
	features.Add(c)
	return c
}

type JetBrainsSpaceConnection struct {
	dsl.ProjectFeature
	DisplayName  *dsl.StringProp
	ServerURL    *dsl.StringProp
	ClientID     *dsl.StringProp
	ClientSecret *dsl.StringProp
}

func NewJetBrainsSpaceConnection(init func(*JetBrainsSpaceConnection)) *JetBrainsSpaceConnection {
	c := &JetBrainsSpaceConnection{}
	c.Init(oauthProvider, oauth("JetBrains Space")...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.ServerURL = c.String("serverUrl", "spaceServerUrl").Required()
	c.ClientID = c.String("clientId", "spaceClientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:spaceClientSecret").Required()
	if init != nil {
		init(c)
	}
	return c
}

func AddJetBrainsSpaceConnection(features *dsl.ProjectFeatures, init func(*JetBrainsSpaceConnection)) *JetBrainsSpaceConnection {
	c := NewJetBrainsSpaceConnection(init)
	features.Add(c)
	return c
}

type GoogleConnection struct {
	dsl.ProjectFeature
	DisplayName  *dsl.StringProp
	ClientID     *dsl.StringProp
	ClientSecret *dsl.StringProp
}

func NewGoogleConnection(init func(*GoogleConnection)) *GoogleConnection {
	c := &GoogleConnection{}
	c.Init(oauthProvider, oauth("Google")...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.ClientID = c.String("clientId", "googleClientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:googleClientSecret").Required()
	if init != nil {
		init(c)
	}
	return c
}

func AddGoogleConnection(features *dsl.ProjectFeatures, init func(*GoogleConnection)) *GoogleConnection {
	c := NewGoogleConnection(init)
	features.Add(c)
	return c
}

// SlackConnection lets notifications and service messages post to Slack.
type SlackConnection struct {
	dsl.ProjectFeature
	DisplayName                            *dsl.StringProp
	BotToken                               *dsl.StringProp
	ClientID                               *dsl.StringProp
	ClientSecret                           *dsl.StringProp
	ServiceMessageMaxNotificationsPerBuild *dsl.StringProp
	ServiceMessageAllowedDomainNames       *dsl.StringProp
}

func NewSlackConnection(init func(*SlackConnection)) *SlackConnection {
	c := &SlackConnection{}
	c.Init(oauthProvider, oauth("slackConnection")...)
	c.DisplayName = c.String("displayName", "displayName").Required()
	c.BotToken = c.String("botToken", "secure:token").Required()
	c.ClientID = c.String("clientId", "clientId").Required()
	c.ClientSecret = c.String("clientSecret", "secure:clientSecret").Required()
	c.ServiceMessageMaxNotificationsPerBuild = c.String("serviceMessageMaxNotificationsPerBuild", "serviceMessageMaxNotificationsPerBuild")
	c.ServiceMessageAllowedDomainNames = c.String("serviceMessageAllowedDomainNames", "serviceMessageAllowedDomainNames")
	if init != nil {
		init(c)
	}
	return c
}

func AddSlackConnection(features *dsl.ProjectFeatures, init func(*SlackConnection)) *SlackConnection {
	c := NewSlackConnection(init)
	features.Add(c)
	return c
}

// PerforceAdminConnection grants the server administrative access to a
// Perforce server.
type PerforceAdminConnection struct {
	dsl.ProjectFeature
	DisplayName *dsl.StringProp
	Port        *dsl.StringProp
	UserName    *dsl.StringProp
	Password    *dsl.StringProp
}

func NewPerforceAdminConnection(init func(*PerforceAdminConnection)) *PerforceAdminConnection {
	c := &PerforceAdminConnection{}
	c.Init(oauthProvider, oauth("PerforceAdmin")...)
	c.DisplayName = c.String("name", "displayName")
	c.Port = c.String("port", "port")
	c.UserName = c.String("userName", "user")
	c.Password = c.String("password", "secure:passwd")
	if init != nil {
		init(c)
	}
	return c
}

func AddPerforceAdminConnection(features *dsl.ProjectFeatures, init func(*PerforceAdminConnection)) *PerforceAdminConnection {
	c := NewPerforceAdminConnection(init)
	features.Add(c)
	return c
}
