package buildsteps

import "settingskit/pkg/dsl"

// Script runs a shell script on the agent.
type Script struct {
	dsl.BuildStep
	DockerWrapper
	WorkingDir          *dsl.StringProp
	ScriptContent       *dsl.StringProp
	FormatStderrAsError *dsl.BoolProp
}

func NewScript(init func(*Script)) *Script {
	s := &Script{}
	s.Init("simpleRunner", dsl.Param{Name: "use.custom.script", Value: "true"})
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.ScriptContent = s.String("scriptContent", "script.content")
	s.FormatStderrAsError = s.Bool("formatStderrAsError", "log.stderr.as.errors").Encoded("true", "")
	s.declareDocker(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddScript(steps *dsl.BuildSteps, init func(*Script)) *Script {
	s := NewScript(init)
	steps.Add(s)
	return s
}

// Exec runs an executable with arguments. It shares the runner type of Script
// and differs only in the use.custom.script flag.
type Exec struct {
	dsl.BuildStep
	DockerWrapper
	WorkingDir          *dsl.StringProp
	Path                *dsl.StringProp
	Arguments           *dsl.StringProp
	FormatStderrAsError *dsl.BoolProp
}

func NewExec(init func(*Exec)) *Exec {
	s := &Exec{}
	s.Init("simpleRunner", dsl.Param{Name: "use.custom.script", Value: ""})
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.Path = s.String("path", "command.executable")
	s.Arguments = s.String("arguments", "command.parameters")
	s.FormatStderrAsError = s.Bool("formatStderrAsError", "log.stderr.as.errors").Encoded("true", "")
	s.declareDocker(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddExec(steps *dsl.BuildSteps, init func(*Exec)) *Exec {
	s := NewExec(init)
	steps.Add(s)
	return s
}

type CSharpScriptFile struct {
	dsl.BuildStep
	DockerWrapper
	WorkingDir *dsl.StringProp
	Path       *dsl.StringProp
	Arguments  *dsl.StringProp
	Sources    *dsl.StringProp
	Tool       *dsl.StringProp
}

func NewCSharpScriptFile(init func(*CSharpScriptFile)) *CSharpScriptFile {
	s := &CSharpScriptFile{}
	s.Init("csharpScript",
		dsl.Param{Name: "scriptType", Value: "file"},
		dsl.Param{Name: "csharpToolPath", Value: "%teamcity.tool.TeamCity.csi.DEFAULT%"},
	)
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.Path = s.String("path", "scriptFile").Required()
	s.Arguments = s.String("arguments", "scriptArgs")
	s.Sources = s.String("sources", "nuget.packageSources")
	s.Tool = s.String("tool", "csharpToolPath")
	s.declareDocker(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddCSharpScriptFile(steps *dsl.BuildSteps, init func(*CSharpScriptFile)) *CSharpScriptFile {
	s := NewCSharpScriptFile(init)
	steps.Add(s)
	return s
}

// kotlinScript holds the settings shared by both Kotlin script runners.
type kotlinScript struct {
	WorkingDir *dsl.StringProp
	Compiler   *dsl.StringProp
	Arguments  *dsl.StringProp
	JdkHome    *dsl.StringProp
	JvmArgs    *dsl.StringProp
}

func (k *kotlinScript) declareKotlin(s *dsl.PropertySet) {
	k.Compiler = s.String("compiler", "kotlinPath")
	k.Arguments = s.String("arguments", "kotlinArgs")
	k.JdkHome = s.String("jdkHome", "target.jdk.home")
	k.JvmArgs = s.String("jvmArgs", "jvmArgs")
}

// KotlinScriptCustom runs an inline Kotlin script.
type KotlinScriptCustom struct {
	dsl.BuildStep
	kotlinScript
	Content *dsl.StringProp
}

func NewKotlinScriptCustom(init func(*KotlinScriptCustom)) *KotlinScriptCustom {
	s := &KotlinScriptCustom{}
	s.Init("kotlinScript", dsl.Param{Name: "scriptType", Value: "customScript"})
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.Content = s.String("content", "scriptContent").Required()
	s.declareKotlin(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddKotlinScriptCustom(steps *dsl.BuildSteps, init func(*KotlinScriptCustom)) *KotlinScriptCustom {
	s := NewKotlinScriptCustom(init)
	steps.Add(s)
	return s
}

// KotlinScriptFile runs a Kotlin script file from the checkout directory.
type KotlinScriptFile struct {
	dsl.BuildStep
	kotlinScript
	Path *dsl.StringProp
}

func NewKotlinScriptFile(init func(*KotlinScriptFile)) *KotlinScriptFile {
	s := &KotlinScriptFile{}
	s.Init("kotlinScript", dsl.Param{Name: "scriptType", Value: "file"})
	s.WorkingDir = s.String("workingDir", "teamcity.build.workingDir")
	s.Path = s.String("path", "scriptFile").Required()
	s.declareKotlin(&s.PropertySet)
	if init != nil {
		init(s)
	}
	return s
}

func AddKotlinScriptFile(steps *dsl.BuildSteps, init func(*KotlinScriptFile)) *KotlinScriptFile {
	s := NewKotlinScriptFile(init)
	steps.Add(s)
	return s
}
