package projectfeatures

import "settingskit/pkg/dsl"

type DockerRegistryConnection struct {
	dsl.ProjectFeature
	DisplayName *dsl.StringProp
	URL         *dsl.StringProp
	UserName    *dsl.StringProp
	Password    *dsl.StringProp
}

func NewDockerRegistryConnection(init func(*DockerRegistryConnection)) *DockerRegistryConnection {
	c := &DockerRegistryConnection{}
	c.Init(oauthProvider, oauth("Docker")...)
	c.DisplayName = c.String("name", "displayName")
	c.URL = c.String("url", "repositoryUrl")
	c.UserName = c.String("userName", "userName")
	c.Password = c.String("password", "secure:userPass")
	if init != nil {
		init(c)
	}
	return c
}

func AddDockerRegistryConnection(features *dsl.ProjectFeatures, init func(*DockerRegistryConnection)) *DockerRegistryConnection {
	c := NewDockerRegistryConnection(init)
	features.Add(c)
	return c
}

// ECRType selects a private or public Amazon ECR registry.
type ECRType interface {
	dsl.Variant
	ecrType()
}

type ECRPrivate struct{ dsl.VariantBase }

func NewECRPrivate() *ECRPrivate { return &ECRPrivate{VariantBase: dsl.NewVariant("ECRPrivate")} }

type ECRPublic struct{ dsl.VariantBase }

func NewECRPublic() *ECRPublic { return &ECRPublic{VariantBase: dsl.NewVariant("ECRPublic")} }

func (*ECRPrivate) ecrType() {}
func (*ECRPublic) ecrType()  {}

// ECRCredentialsProvider selects where ECR credentials come from.
type ECRCredentialsProvider interface {
	dsl.Variant
	ecrCredentialsProvider()
}

// ECRDefaultCredentialsProvider uses the AWS default provider chain of the
// agent.
type ECRDefaultCredentialsProvider struct{ dsl.VariantBase }

func NewECRDefaultCredentialsProvider() *ECRDefaultCredentialsProvider {
	return &ECRDefaultCredentialsProvider{VariantBase: dsl.NewVariant("true")}
}

type ECRAccessKey struct {
	dsl.VariantBase
	AccessKeyID     *dsl.StringProp
	SecretAccessKey *dsl.StringProp
}

func NewECRAccessKey() *ECRAccessKey {
	v := &ECRAccessKey{VariantBase: dsl.NewVariant("")}
	v.AccessKeyID = v.String("accessKeyId", "aws.access.key.id")
	v.SecretAccessKey = v.String("secretAccessKey", "secure:aws.secret.access.key")
	return v
}

func (*ECRDefaultCredentialsProvider) ecrCredentialsProvider() {}
func (*ECRAccessKey) ecrCredentialsProvider()                  {}

// ECRCredentialsType selects permanent or temporary credentials.
type ECRCredentialsType interface {
	dsl.Variant
	ecrCredentialsType()
}

type ECRAccessKeys struct{ dsl.VariantBase }

func NewECRAccessKeys() *ECRAccessKeys {
	return &ECRAccessKeys{VariantBase: dsl.NewVariant("aws.access.keys")}
}

type ECRTempCredentials struct {
	dsl.VariantBase
	IamRoleArn *dsl.StringProp
	ExternalID *dsl.StringProp
}

func NewECRTempCredentials() *ECRTempCredentials {
	v := &ECRTempCredentials{VariantBase: dsl.NewVariant("aws.temp.credentials")}
	v.IamRoleArn = v.String("iamRoleArn", "aws.iam.role.arn")
	v.ExternalID = v.String("externalId", "aws.external.id")
	return v
}

func (*ECRAccessKeys) ecrCredentialsType()      {}
func (*ECRTempCredentials) ecrCredentialsType() {}

// DockerECRConnection is an Amazon ECR registry connection.
type DockerECRConnection struct {
	dsl.ProjectFeature
	DisplayName         *dsl.StringProp
	ECRType             *dsl.CompoundProp[ECRType]
	RegistryID          *dsl.StringProp
	CredentialsProvider *dsl.CompoundProp[ECRCredentialsProvider]
	RegionCode          *dsl.StringProp
	CredentialsType     *dsl.CompoundProp[ECRCredentialsType]
}

func NewDockerECRConnection(init func(*DockerECRConnection)) *DockerECRConnection {
	c := &DockerECRConnection{}
	c.Init(oauthProvider, oauth("AmazonDocker")...)
	c.DisplayName = c.String("displayName", "displayName")
	c.ECRType = dsl.Compound(&c.PropertySet, "ecrType", "ecrType",
		dsl.VariantDef[ECRType]{Name: "ecrPrivate", New: func() ECRType { return NewECRPrivate() }},
		dsl.VariantDef[ECRType]{Name: "ecrPublic", New: func() ECRType { return NewECRPublic() }},
	)
	c.RegistryID = c.String("registryId", "registryId")
	c.CredentialsProvider = dsl.Compound(&c.PropertySet, "credentialsProvider", "aws.use.default.credential.provider.chain",
		dsl.VariantDef[ECRCredentialsProvider]{Name: "defaultCredentialsProvider", New: func() ECRCredentialsProvider {
			return NewECRDefaultCredentialsProvider()
		}},
		dsl.VariantDef[ECRCredentialsProvider]{Name: "accessKey", New: func() ECRCredentialsProvider {
			return NewECRAccessKey()
		}},
	)
	c.RegionCode = c.String("regionCode", "aws.region.name")
	c.CredentialsType = dsl.Compound(&c.PropertySet, "credentialsType", "aws.credentials.type",
		dsl.VariantDef[ECRCredentialsType]{Name: "accessKeys", New: func() ECRCredentialsType { return NewECRAccessKeys() }},
		dsl.VariantDef[ECRCredentialsType]{Name: "tempCredentials", New: func() ECRCredentialsType { return NewECRTempCredentials() }},
	)
	if init != nil {
		init(c)
	}
	return c
}

func AddDockerECRConnection(features *dsl.ProjectFeatures, init func(*DockerECRConnection)) *DockerECRConnection {
	c := NewDockerECRConnection(init)
	features.Add(c)
	return c
}

type NpmRegistryConnection struct {
	dsl.ProjectFeature
	DisplayName *dsl.StringProp
	URL         *dsl.StringProp
	Scope       *dsl.StringProp
	Token       *dsl.StringProp
}

func NewNpmRegistryConnection(init func(*NpmRegistryConnection)) *NpmRegistryConnection {
	c := &NpmRegistryConnection{}
	c.Init(oauthProvider, oauth("NpmRegistry")...)
	c.DisplayName = c.String("name", "displayName")
	c.URL = c.String("url", "npmRegistryHost")
	c.Scope = c.String("scope", "npmRegistryScope")
	c.Token = c.String("token", "secure:npmRegistryToken")
	if init != nil {
		init(c)
	}
	return c
}

func AddNpmRegistryConnection(features *dsl.ProjectFeatures, init func(*NpmRegistryConnection)) *NpmRegistryConnection {
	c := NewNpmRegistryConnection(init)
	features.Add(c)
	return c
}

// NuGetFeed is a NuGet feed hosted by the server.
type NuGetFeed struct {
	dsl.ProjectFeature
	FeedName      *dsl.StringProp
	Description   *dsl.StringProp
	IndexPackages *dsl.BoolProp
}

func NewNuGetFeed(init func(*NuGetFeed)) *NuGetFeed {
	f := &NuGetFeed{}
	f.Init("PackageRepository", dsl.Param{Name: "type", Value: "nuget"})
	f.FeedName = f.String("name", "name")
	f.Description = f.String("description", "description")
	f.IndexPackages = f.Bool("indexPackages", "indexPackages").Encoded("true", "")
	if init != nil {
		init(f)
	}
	return f
}

func AddNuGetFeed(features *dsl.ProjectFeatures, init func(*NuGetFeed)) *NuGetFeed {
	f := NewNuGetFeed(init)
	features.Add(f)
	return f
}
