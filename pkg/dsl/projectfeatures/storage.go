package projectfeatures

import "settingskit/pkg/dsl"

const storageSettings = "storage_settings"

// ActiveStorage selects which artifact storage of the project is used for new
// artifacts.
type ActiveStorage struct {
	dsl.ProjectFeature
	ActiveStorageID *dsl.StringProp
}

func NewActiveStorage(init func(*ActiveStorage)) *ActiveStorage {
	s := &ActiveStorage{}
	s.Init("active_storage")
	s.ActiveStorageID = s.String("activeStorageID", "active.storage.feature.id")
	if init != nil {
		init(s)
	}
	return s
}

func AddActiveStorage(features *dsl.ProjectFeatures, init func(*ActiveStorage)) *ActiveStorage {
	s := NewActiveStorage(init)
	features.Add(s)
	return s
}

// S3Environment selects the AWS endpoint of an S3 storage.
type S3Environment interface {
	dsl.Variant
	s3Environment()
}

type S3DefaultEnvironment struct {
	dsl.VariantBase
	AwsRegionName *dsl.StringProp
}

func NewS3DefaultEnvironment() *S3DefaultEnvironment {
	v := &S3DefaultEnvironment{VariantBase: dsl.NewVariant("")}
	v.AwsRegionName = v.String("awsRegionName", "aws.region.name")
	return v
}

type S3CustomEnvironment struct {
	dsl.VariantBase
	Endpoint      *dsl.StringProp
	AwsRegionName *dsl.StringProp
}

func NewS3CustomEnvironment() *S3CustomEnvironment {
	v := &S3CustomEnvironment{VariantBase: dsl.NewVariant("custom")}
	v.Endpoint = v.String("endpoint", "aws.service.endpoint").Required()
	v.AwsRegionName = v.String("awsRegionName", "aws.region.name")
	return v
}

func (*S3DefaultEnvironment) s3Environment() {}
func (*S3CustomEnvironment) s3Environment()  {}

// S3Credentials selects permanent or temporary credentials.
type S3Credentials interface {
	dsl.Variant
	s3Credentials()
}

type S3AccessKeys struct{ dsl.VariantBase }

func NewS3AccessKeys() *S3AccessKeys {
	return &S3AccessKeys{VariantBase: dsl.NewVariant("aws.access.keys")}
}

type S3TemporaryCredentials struct {
	dsl.VariantBase
	IamRoleARN *dsl.StringProp
	ExternalID *dsl.StringProp
}

func NewS3TemporaryCredentials() *S3TemporaryCredentials {
	v := &S3TemporaryCredentials{VariantBase: dsl.NewVariant("aws.temp.credentials")}
	v.IamRoleARN = v.String("iamRoleARN", "aws.iam.role.arn").Required()
	v.ExternalID = v.String("externalID", "aws.external.id")
	return v
}

func (*S3AccessKeys) s3Credentials()           {}
func (*S3TemporaryCredentials) s3Credentials() {}

// S3Storage stores build artifacts in an Amazon S3 bucket.
type S3Storage struct {
	dsl.ProjectFeature
	StorageName                       *dsl.StringProp
	BucketName                        *dsl.StringProp
	BucketPrefix                      *dsl.StringProp
	EnablePresignedURLUpload          *dsl.BoolProp
	ForceVirtualHostAddressing        *dsl.BoolProp
	EnableTransferAcceleration        *dsl.BoolProp
	MultipartThreshold                *dsl.StringProp
	MultipartChunksize                *dsl.StringProp
	CloudFrontEnabled                 *dsl.BoolProp
	CloudFrontUploadDistribution      *dsl.StringProp
	CloudFrontDownloadDistribution    *dsl.StringProp
	CloudFrontPublicKeyID             *dsl.StringProp
	CloudFrontPrivateKey              *dsl.StringProp
	VerifyIntegrityAfterUpload        *dsl.BoolProp
	AwsEnvironment                    *dsl.CompoundProp[S3Environment]
	Credentials                       *dsl.CompoundProp[S3Credentials]
	UseDefaultCredentialProviderChain *dsl.BoolProp
	AccessKeyID                       *dsl.StringProp
	AccessKey                         *dsl.StringProp
	ConnectionID                      *dsl.StringProp
}

func NewS3Storage(init func(*S3Storage)) *S3Storage {
	s := &S3Storage{}
	s.Init(storageSettings,
		dsl.Param{Name: "storage.type", Value: "S3_storage"},
		dsl.Param{Name: "storage.s3.bucket.name.wasProvidedAsString", Value: "true"},
	)
	s.StorageName = s.String("storageName", "storage.name")
	s.BucketName = s.String("bucketName", "storage.s3.bucket.name").Required()
	s.BucketPrefix = s.String("bucketPrefix", "storage.s3.bucket.prefix")
	s.EnablePresignedURLUpload = s.Bool("enablePresignedURLUpload", "storage.s3.upload.presignedUrl.enabled").Encoded("true", "")
	s.ForceVirtualHostAddressing = s.Bool("forceVirtualHostAddressing", "storage.s3.forceVirtualHostAddressing")
	s.EnableTransferAcceleration = s.Bool("enableTransferAcceleration", "storage.s3.accelerateModeEnabled")
	s.MultipartThreshold = s.String("multipartThreshold", "storage.s3.upload.multipart_threshold")
	s.MultipartChunksize = s.String("multipartChunksize", "storage.s3.upload.multipart_chunksize")
	s.CloudFrontEnabled = s.Bool("cloudFrontEnabled", "storage.s3.cloudfront.enabled").Encoded("true", "")
	s.CloudFrontUploadDistribution = s.String("cloudFrontUploadDistribution", "storage.s3.cloudfront.upload.distribution")
	s.CloudFrontDownloadDistribution = s.String("cloudFrontDownloadDistribution", "storage.s3.cloudfront.download.distribution")
	s.CloudFrontPublicKeyID = s.String("cloudFrontPublicKeyId", "storage.s3.cloudfront.publicKeyId")
	s.CloudFrontPrivateKey = s.String("cloudFrontPrivateKey", "secure:storage.s3.cloudfront.privateKey")
	s.VerifyIntegrityAfterUpload = s.Bool("verifyIntegrityAfterUpload", "storage.s3.verifyIntegrityAfterUpload")
	s.AwsEnvironment = dsl.Compound(&s.PropertySet, "awsEnvironment", "aws.environment",
		dsl.VariantDef[S3Environment]{Name: "default", New: func() S3Environment { return NewS3DefaultEnvironment() }},
		dsl.VariantDef[S3Environment]{Name: "custom", New: func() S3Environment { return NewS3CustomEnvironment() }},
	)
	s.Credentials = dsl.Compound(&s.PropertySet, "credentials", "aws.credentials.type",
		dsl.VariantDef[S3Credentials]{Name: "accessKeys", New: func() S3Credentials { return NewS3AccessKeys() }},
		dsl.VariantDef[S3Credentials]{Name: "temporary", New: func() S3Credentials { return NewS3TemporaryCredentials() }},
	)
	s.UseDefaultCredentialProviderChain = s.Bool("useDefaultCredentialProviderChain", "aws.use.default.credential.provider.chain")
	s.AccessKeyID = s.String("accessKeyID", "aws.access.key.id")
	s.AccessKey = s.String("accessKey", "secure:aws.secret.access.key")
	s.ConnectionID = s.String("connectionId", "awsConnectionId")
	if init != nil {
		init(s)
	}
	return s
}

func AddS3Storage(features *dsl.ProjectFeatures, init func(*S3Storage)) *S3Storage {
	s := NewS3Storage(init)
	features.Add(s)
	return s
}

// S3CompatibleStorage stores build artifacts in an S3 compatible service.
type S3CompatibleStorage struct {
	dsl.ProjectFeature
	AccessKeyID                *dsl.StringProp
	AccessKey                  *dsl.StringProp
	Endpoint                   *dsl.StringProp
	StorageName                *dsl.StringProp
	BucketName                 *dsl.StringProp
	BucketPrefix               *dsl.StringProp
	EnablePresignedURLUpload   *dsl.BoolProp
	ForceVirtualHostAddressing *dsl.BoolProp
	VerifyIntegrityAfterUpload *dsl.BoolProp
	MultipartThreshold         *dsl.StringProp
	MultipartChunksize         *dsl.StringProp
}

func NewS3CompatibleStorage(init func(*S3CompatibleStorage)) *S3CompatibleStorage {
	s := &S3CompatibleStorage{}
	s.Init(storageSettings,
		dsl.Param{Name: "storage.type", Value: "S3_storage_compatible"},
		dsl.Param{Name: "storage.s3.bucket.name.wasProvidedAsString", Value: "true"},
	)
	s.AccessKeyID = s.String("accessKeyID", "aws.access.key.id")
	s.AccessKey = s.String("accessKey", "secure:aws.secret.access.key")
	s.Endpoint = s.String("endpoint", "aws.service.endpoint").Required()
	s.StorageName = s.String("storageName", "storage.name")
	s.BucketName = s.String("bucketName", "storage.s3.bucket.name").Required()
	s.BucketPrefix = s.String("bucketPrefix", "storage.s3.bucket.prefix")
	s.EnablePresignedURLUpload = s.Bool("enablePresignedURLUpload", "storage.s3.upload.presignedUrl.enabled").Encoded("true", "")
	s.ForceVirtualHostAddressing = s.Bool("forceVirtualHostAddressing", "storage.s3.forceVirtualHostAddressing")
	s.VerifyIntegrityAfterUpload = s.Bool("verifyIntegrityAfterUpload", "storage.s3.verifyIntegrityAfterUpload")
	s.MultipartThreshold = s.String("multipartThreshold", "storage.s3.upload.multipart_threshold")
	s.MultipartChunksize = s.String("multipartChunksize", "storage.s3.upload.multipart_chunksize")
	if init != nil {
		init(s)
	}
	return s
}

func AddS3CompatibleStorage(features *dsl.ProjectFeatures, init func(*S3CompatibleStorage)) *S3CompatibleStorage {
	s := NewS3CompatibleStorage(init)
	features.Add(s)
	return s
}
