package buildsteps

import "settingskit/pkg/dsl"

const (
	sshUsernameKey = "jetbrains.buildServer.deployer.username"
	sshPasswordKey = "secure:jetbrains.buildServer.deployer.password"
	sshTargetKey   = "jetbrains.buildServer.deployer.targetUrl"
	sshPortKey     = "jetbrains.buildServer.sshexec.port"
	sshTimeoutKey  = "jetbrains.buildServer.sshexec.timeout.seconds"
	sshAuthKey     = "jetbrains.buildServer.sshexec.authMethod"
)

// SSHAuthMethod selects how a deployment step logs in to the target host.
// The SSH exec runner requires the login fields; the upload runner does not.
type SSHAuthMethod interface {
	dsl.Variant
	sshAuthMethod()
}

// SSHUploadedKey authenticates with a key uploaded to the project.
type SSHUploadedKey struct {
	dsl.VariantBase
	Username   *dsl.StringProp
	Passphrase *dsl.StringProp
	Key        *dsl.StringProp
}

func NewSSHUploadedKey() *SSHUploadedKey { return newSSHUploadedKey(false) }

func newSSHUploadedKey(strict bool) *SSHUploadedKey {
	v := &SSHUploadedKey{VariantBase: dsl.NewVariant("UPLOADED_KEY")}
	v.Username = v.String("username", sshUsernameKey)
	v.Passphrase = v.String("passphrase", sshPasswordKey)
	v.Key = v.String("key", "teamcitySshKey")
	if strict {
		v.Username.Required()
		v.Key.Required()
	}
	return v
}

// SSHDefaultPrivateKey uses the default key of the agent user.
type SSHDefaultPrivateKey struct {
	dsl.VariantBase
	Username   *dsl.StringProp
	Passphrase *dsl.StringProp
}

func NewSSHDefaultPrivateKey() *SSHDefaultPrivateKey {
	v := &SSHDefaultPrivateKey{VariantBase: dsl.NewVariant("DEFAULT_KEY")}
	v.Username = v.String("username", sshUsernameKey)
	v.Passphrase = v.String("passphrase", sshPasswordKey)
	return v
}

// SSHCustomPrivateKey reads the key from a file on the agent.
type SSHCustomPrivateKey struct {
	dsl.VariantBase
	KeyFile    *dsl.StringProp
	Username   *dsl.StringProp
	Passphrase *dsl.StringProp
}

func NewSSHCustomPrivateKey() *SSHCustomPrivateKey { return newSSHCustomPrivateKey(false) }

func newSSHCustomPrivateKey(strict bool) *SSHCustomPrivateKey {
	v := &SSHCustomPrivateKey{VariantBase: dsl.NewVariant("CUSTOM_KEY")}
	v.KeyFile = v.String("keyFile", "jetbrains.buildServer.sshexec.keyFile")
	v.Username = v.String("username", sshUsernameKey)
	v.Passphrase = v.String("passphrase", sshPasswordKey)
	if strict {
		v.Username.Required()
	}
	return v
}

type SSHPassword struct {
	dsl.VariantBase
	Username *dsl.StringProp
	Password *dsl.StringProp
}

func NewSSHPassword() *SSHPassword { return newSSHPassword(false) }

func newSSHPassword(strict bool) *SSHPassword {
	v := &SSHPassword{VariantBase: dsl.NewVariant("PWD")}
	v.Username = v.String("username", sshUsernameKey)
	v.Password = v.String("password", sshPasswordKey)
	if strict {
		v.Username.Required()
	}
	return v
}

// SSHAgent uses the keys loaded by the SSH agent build feature.
type SSHAgent struct {
	dsl.VariantBase
	Username *dsl.StringProp
}

func NewSSHAgent() *SSHAgent { return newSSHAgent(false) }

func newSSHAgent(strict bool) *SSHAgent {
	v := &SSHAgent{VariantBase: dsl.NewVariant("SSH_AGENT")}
	v.Username = v.String("username", sshUsernameKey)
	if strict {
		v.Username.Required()
	}
	return v
}

func (*SSHUploadedKey) sshAuthMethod()       {}
func (*SSHDefaultPrivateKey) sshAuthMethod() {}
func (*SSHCustomPrivateKey) sshAuthMethod()  {}
func (*SSHPassword) sshAuthMethod()          {}
func (*SSHAgent) sshAuthMethod()             {}

// sshAuthMethods returns the variants of the auth method compound. With
// strict set the variants require their login fields.
func sshAuthMethods(strict bool) []dsl.VariantDef[SSHAuthMethod] {
	return []dsl.VariantDef[SSHAuthMethod]{
		{Name: "uploadedKey", New: func() SSHAuthMethod { return newSSHUploadedKey(strict) }},
		{Name: "defaultPrivateKey", New: func() SSHAuthMethod { return NewSSHDefaultPrivateKey() }},
		{Name: "customPrivateKey", New: func() SSHAuthMethod { return newSSHCustomPrivateKey(strict) }},
		{Name: "password", New: func() SSHAuthMethod { return newSSHPassword(strict) }},
		{Name: "sshAgent", New: func() SSHAuthMethod { return newSSHAgent(strict) }},
	}
}

// SSHExec runs commands on a remote host over SSH.
type SSHExec struct {
	dsl.BuildStep
	Pty        *dsl.StringProp
	Commands   *dsl.StringProp
	TargetURL  *dsl.StringProp
	Port       *dsl.IntProp
	Timeout    *dsl.IntProp
	AuthMethod *dsl.CompoundProp[SSHAuthMethod]
}

func NewSSHExec(init func(*SSHExec)) *SSHExec {
	s := &SSHExec{}
	s.Init("ssh-exec-runner")
	s.Pty = s.String("pty", "jetbrains.buildServer.sshexec.pty")
	s.Commands = s.String("commands", "jetbrains.buildServer.sshexec.command").Required()
	s.TargetURL = s.String("targetUrl", sshTargetKey).Required()
	s.Port = s.Int("port", sshPortKey)
	s.Timeout = s.Int("timeout", sshTimeoutKey)
	s.AuthMethod = dsl.Compound(&s.PropertySet, "authMethod", sshAuthKey, sshAuthMethods(true)...).Required()
	if init != nil {
		init(s)
	}
	return s
}

func AddSSHExec(steps *dsl.BuildSteps, init func(*SSHExec)) *SSHExec {
	s := NewSSHExec(init)
	steps.Add(s)
	return s
}

// SSHTransportProtocol selects the file transfer protocol of an upload.
type SSHTransportProtocol string

const (
	SSHTransportSFTP SSHTransportProtocol = "SFTP"
	SSHTransportSCP  SSHTransportProtocol = "SCP"
)

// SSHUpload copies files from the agent to a remote host.
type SSHUpload struct {
	dsl.BuildStep
	TransportProtocol *dsl.EnumProp[SSHTransportProtocol]
	SourcePath        *dsl.StringProp
	TargetURL         *dsl.StringProp
	Port              *dsl.IntProp
	Timeout           *dsl.IntProp
	AuthMethod        *dsl.CompoundProp[SSHAuthMethod]
}

func NewSSHUpload(init func(*SSHUpload)) *SSHUpload {
	s := &SSHUpload{}
	s.Init("ssh-deploy-runner")
	s.TransportProtocol = dsl.Enum(&s.PropertySet, "transportProtocol", "jetbrains.buildServer.deployer.ssh.transport",
		SSHTransportSFTP, SSHTransportSCP,
	).Mapped(map[SSHTransportProtocol]string{
		SSHTransportSFTP: "jetbrains.buildServer.deployer.ssh.transport.sftp",
		SSHTransportSCP:  "jetbrains.buildServer.deployer.ssh.transport.scp",
	})
	s.SourcePath = s.String("sourcePath", "jetbrains.buildServer.deployer.sourcePath")
	s.TargetURL = s.String("targetUrl", sshTargetKey)
	s.Port = s.Int("port", sshPortKey)
	s.Timeout = s.Int("timeout", sshTimeoutKey)
	s.AuthMethod = dsl.Compound(&s.PropertySet, "authMethod", sshAuthKey, sshAuthMethods(false)...)
	if init != nil {
		init(s)
	}
	return s
}

func AddSSHUpload(steps *dsl.BuildSteps, init func(*SSHUpload)) *SSHUpload {
	s := NewSSHUpload(init)
	steps.Add(s)
	return s
}
