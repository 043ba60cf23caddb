package buildsteps

import "settingskit/pkg/dsl"

// DockerfileSource tells a docker build where the Dockerfile comes from.
type DockerfileSource interface {
	dsl.Variant
	dockerfileSource()
}

// DockerfilePath reads the Dockerfile from the checkout directory. File and
// path name the same source; both are kept for blueprints using either.
type DockerfilePath struct {
	dsl.VariantBase
	Path *dsl.StringProp
}

func NewDockerfilePath() *DockerfilePath {
	v := &DockerfilePath{VariantBase: dsl.NewVariant("PATH")}
	v.Path = v.String("path", "dockerfile.path")
	return v
}

type DockerfileURL struct {
	dsl.VariantBase
	URL *dsl.StringProp
}

func NewDockerfileURL() *DockerfileURL {
	v := &DockerfileURL{VariantBase: dsl.NewVariant("URL")}
	v.URL = v.String("url", "dockerfile.url")
	return v
}

type DockerfileContent struct {
	dsl.VariantBase
	Content *dsl.StringProp
}

func NewDockerfileContent() *DockerfileContent {
	v := &DockerfileContent{VariantBase: dsl.NewVariant("CONTENT")}
	v.Content = v.String("content", "dockerfile.content")
	return v
}

func (*DockerfilePath) dockerfileSource()    {}
func (*DockerfileURL) dockerfileSource()     {}
func (*DockerfileContent) dockerfileSource() {}

// DockerCommandType selects the docker subcommand.
type DockerCommandType interface {
	dsl.Variant
	dockerCommandType()
}

type DockerBuild struct {
	dsl.VariantBase
	Source       *dsl.CompoundProp[DockerfileSource]
	ContextDir   *dsl.StringProp
	Platform     *dsl.EnumProp[ImagePlatform]
	NamesAndTags *dsl.StringProp
	CommandArgs  *dsl.StringProp
}

func NewDockerBuild() *DockerBuild {
	v := &DockerBuild{VariantBase: dsl.NewVariant("build")}
	v.Source = dsl.Compound(&v.PropertySet, "source", "dockerfile.source",
		dsl.VariantDef[DockerfileSource]{Name: "file", New: func() DockerfileSource { return NewDockerfilePath() }},
		dsl.VariantDef[DockerfileSource]{Name: "path", New: func() DockerfileSource { return NewDockerfilePath() }},
		dsl.VariantDef[DockerfileSource]{Name: "url", New: func() DockerfileSource { return NewDockerfileURL() }},
		dsl.VariantDef[DockerfileSource]{Name: "content", New: func() DockerfileSource { return NewDockerfileContent() }},
	)
	v.ContextDir = v.String("contextDir", "dockerfile.contextDir")
	v.Platform = imagePlatform(&v.PropertySet, "platform", "dockerImage.platform")
	v.NamesAndTags = v.String("namesAndTags", "docker.image.namesAndTags")
	v.CommandArgs = v.String("commandArgs", "command.args")
	return v
}

type DockerPush struct {
	dsl.VariantBase
	NamesAndTags         *dsl.StringProp
	RemoveImageAfterPush *dsl.BoolProp
	CommandArgs          *dsl.StringProp
}

func NewDockerPush() *DockerPush {
	v := &DockerPush{VariantBase: dsl.NewVariant("push")}
	v.NamesAndTags = v.String("namesAndTags", "docker.image.namesAndTags")
	v.RemoveImageAfterPush = v.Bool("removeImageAfterPush", "docker.push.remove.image").Encoded("true", "")
	v.CommandArgs = v.String("commandArgs", "command.args")
	return v
}

// DockerOther runs any other docker subcommand.
type DockerOther struct {
	dsl.VariantBase
	SubCommand  *dsl.StringProp
	WorkingDir  *dsl.StringProp
	CommandArgs *dsl.StringProp
}

func NewDockerOther() *DockerOther {
	v := &DockerOther{VariantBase: dsl.NewVariant("other")}
	v.SubCommand = v.String("subCommand", "docker.sub.command")
	v.WorkingDir = v.String("workingDir", "teamcity.build.workingDir")
	v.CommandArgs = v.String("commandArgs", "command.args")
	return v
}

func (*DockerBuild) dockerCommandType() {}
func (*DockerPush) dockerCommandType()  {}
func (*DockerOther) dockerCommandType() {}

type DockerCommand struct {
	dsl.BuildStep
	CommandType *dsl.CompoundProp[DockerCommandType]
}

func NewDockerCommand(init func(*DockerCommand)) *DockerCommand {
	s := &DockerCommand{}
	s.Init("DockerCommand")
	s.CommandType = dsl.Compound(&s.PropertySet, "commandType", "docker.command.type",
		dsl.VariantDef[DockerCommandType]{Name: "build", New: func() DockerCommandType { return NewDockerBuild() }},
		dsl.VariantDef[DockerCommandType]{Name: "push", New: func() DockerCommandType { return NewDockerPush() }},
		dsl.VariantDef[DockerCommandType]{Name: "other", New: func() DockerCommandType { return NewDockerOther() }},
	)
	if init != nil {
		init(s)
	}
	return s
}

func AddDockerCommand(steps *dsl.BuildSteps, init func(*DockerCommand)) *DockerCommand {
	s := NewDockerCommand(init)
	steps.Add(s)
	return s
}

type DockerCompose struct {
	dsl.BuildStep
	File      *dsl.StringProp
	ForcePull *dsl.BoolProp
}

func NewDockerCompose(init func(*DockerCompose)) *DockerCompose {
	s := &DockerCompose{}
	s.Init("DockerCompose")
	s.File = s.String("file", "dockerCompose.file")
	s.ForcePull = s.Bool("forcePull", "dockerCompose.pull").Encoded("true", "")
	if init != nil {
		init(s)
	}
	return s
}

func AddDockerCompose(steps *dsl.BuildSteps, init func(*DockerCompose)) *DockerCompose {
	s := NewDockerCompose(init)
	steps.Add(s)
	return s
}
