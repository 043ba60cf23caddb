package projectfeatures

import "settingskit/pkg/dsl"

// AwsCredentialsType selects how an AWS connection obtains credentials.
type AwsCredentialsType interface {
	dsl.Variant
	awsCredentialsType()
}

// AwsStaticCredentials uses a fixed access key pair.
type AwsStaticCredentials struct {
	dsl.VariantBase
	AccessKeyID           *dsl.StringProp
	SecretAccessKey       *dsl.StringProp
	UseSessionCredentials *dsl.BoolProp
	StsEndpoint           *dsl.StringProp
}

func NewAwsStaticCredentials() *AwsStaticCredentials {
	v := &AwsStaticCredentials{VariantBase: dsl.NewVariant("awsAccessKeys")}
	v.AccessKeyID = v.String("accessKeyId", "awsAccessKeyId").Required()
	v.SecretAccessKey = v.String("secretAccessKey", "secure:awsSecretAccessKey").Required()
	v.UseSessionCredentials = v.Bool("useSessionCredentials", "awsSessionCredentials")
	v.StsEndpoint = v.String("stsEndpoint", "awsStsEndpoint")
	return v
}

// AwsIamRole assumes a role through another AWS connection.
type AwsIamRole struct {
	dsl.VariantBase
	RoleArn         *dsl.StringProp
	SessionName     *dsl.StringProp
	AwsConnectionID *dsl.StringProp
	StsEndpoint     *dsl.StringProp
}

func NewAwsIamRole() *AwsIamRole {
	v := &AwsIamRole{VariantBase: dsl.NewVariant("awsAssumeIamRole")}
	v.RoleArn = v.String("roleArn", "awsIamRoleArn").Required()
	v.SessionName = v.String("sessionName", "awsIamRoleSessionName")
	v.AwsConnectionID = v.String("awsConnectionId", "awsConnectionId")
	v.StsEndpoint = v.String("stsEndpoint", "awsStsEndpoint")
	return v
}

// AwsDefaultCredentials uses the default provider chain of the server.
type AwsDefaultCredentials struct{ dsl.VariantBase }

func NewAwsDefaultCredentials() *AwsDefaultCredentials {
	return &AwsDefaultCredentials{VariantBase: dsl.NewVariant("defaultProvider")}
}

func (*AwsStaticCredentials) awsCredentialsType()  {}
func (*AwsIamRole) awsCredentialsType()            {}
func (*AwsDefaultCredentials) awsCredentialsType() {}

type AwsConnection struct {
	dsl.ProjectFeature
	DisplayName        *dsl.StringProp
	RegionName         *dsl.StringProp
	ProjectFeatureID   *dsl.StringProp
	CredentialsType    *dsl.CompoundProp[AwsCredentialsType]
	AllowInSubProjects *dsl.BoolProp
	AllowInBuilds      *dsl.BoolProp
}

func NewAwsConnection(init func(*AwsConnection)) *AwsConnection {
	c := &AwsConnection{}
	c.Init(oauthProvider, oauth("AWS")...)
	c.DisplayName = c.String("name", "displayName")
	c.RegionName = c.String("regionName", "awsRegionName")
	c.ProjectFeatureID = c.String("projectFeatureId", "projectFeatureId")
	c.CredentialsType = dsl.Compound(&c.PropertySet, "credentialsType", "awsCredentialsType",
		dsl.VariantDef[AwsCredentialsType]{Name: "static", New: func() AwsCredentialsType { return NewAwsStaticCredentials() }},
		dsl.VariantDef[AwsCredentialsType]{Name: "iamRole", New: func() AwsCredentialsType { return NewAwsIamRole() }},
		dsl.VariantDef[AwsCredentialsType]{Name: "default", New: func() AwsCredentialsType { return NewAwsDefaultCredentials() }},
	)
	c.AllowInSubProjects = c.Bool("allowInSubProjects", "awsAllowedInSubProjects")
	c.AllowInBuilds = c.Bool("allowInBuilds", "awsAllowedInBuilds")
	if init != nil {
		init(c)
	}
	return c
}

func AddAwsConnection(features *dsl.ProjectFeatures, init func(*AwsConnection)) *AwsConnection {
	c := NewAwsConnection(init)
	features.Add(c)
	return c
}

// VaultAuthMethod selects how the server logs in to HashiCorp Vault.
type VaultAuthMethod interface {
	dsl.Variant
	vaultAuthMethod()
}

type VaultAppRole struct {
	dsl.VariantBase
	EndpointPath *dsl.StringProp
	RoleID       *dsl.StringProp
	SecretID     *dsl.StringProp
}

func NewVaultAppRole() *VaultAppRole {
	v := &VaultAppRole{VariantBase: dsl.NewVariant("approle")}
	v.EndpointPath = v.String("endpointPath", "endpoint")
	v.RoleID = v.String("roleId", "role-id").Required()
	v.SecretID = v.String("secretId", "secure:secret-id").Required()
	return v
}

type VaultLdap struct {
	dsl.VariantBase
	Path     *dsl.StringProp
	Username *dsl.StringProp
	Password *dsl.StringProp
}

func NewVaultLdap() *VaultLdap {
	v := &VaultLdap{VariantBase: dsl.NewVariant("ldap")}
	v.Path = v.String("path", "path").Required()
	v.Username = v.String("username", "username").Required()
	v.Password = v.String("password", "secure:password").Required()
	return v
}

func (*VaultAppRole) vaultAuthMethod() {}
func (*VaultLdap) vaultAuthMethod()    {}

// HashiCorpVaultConnection lets remote parameters resolve secrets from Vault.
type HashiCorpVaultConnection struct {
	dsl.ProjectFeature
	DisplayName *dsl.StringProp
	// VaultID identifies the connection to vault remote parameters.
	VaultID *dsl.StringProp
	// Deprecated: use VaultID. Both write the same parameter.
	Namespace      *dsl.StringProp
	VaultNamespace *dsl.StringProp
	URL            *dsl.StringProp
	AuthMethod     *dsl.CompoundProp[VaultAuthMethod]
	FailOnError    *dsl.BoolProp
}

func NewHashiCorpVaultConnection(init func(*HashiCorpVaultConnection)) *HashiCorpVaultConnection {
	c := &HashiCorpVaultConnection{}
	c.Init(oauthProvider, oauth("teamcity-vault")...)
	c.DisplayName = c.String("name", "displayName")
	c.VaultID = c.String("vaultId", "namespace")
	c.Namespace = c.String("namespace", "namespace")
	c.VaultNamespace = c.String("vaultNamespace", "vault-namespace")
	c.URL = c.String("url", "url")
	c.AuthMethod = dsl.Compound(&c.PropertySet, "authMethod", "auth-method",
		dsl.VariantDef[VaultAuthMethod]{Name: "appRole", New: func() VaultAuthMethod { return NewVaultAppRole() }},
		dsl.VariantDef[VaultAuthMethod]{Name: "ldap", New: func() VaultAuthMethod { return NewVaultLdap() }},
	)
	c.FailOnError = c.Bool("failOnError", "fail-on-error")
	if init != nil {
		init(c)
	}
	return c
}

func AddHashiCorpVaultConnection(features *dsl.ProjectFeatures, init func(*HashiCorpVaultConnection)) *HashiCorpVaultConnection {
	c := NewHashiCorpVaultConnection(init)
	features.Add(c)
	return c
}
