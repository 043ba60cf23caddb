package dsl

type color string

const (
	colorAny   color = "Any"
	colorRed   color = "Red"
	colorGreen color = "Green"
)

type level string

const (
	levelLow  level = "LOW"
	levelHigh level = "HIGH"
)

// testStep exercises every property kind.
type testStep struct {
	BuildStep
	Title   *StringProp
	Path    *StringProp
	Retries *IntProp
	Verbose *BoolProp
	Strict  *BoolProp
	Color   *EnumProp[color]
	Level   *EnumProp[level]
	Auth    *CompoundProp[testAuth]
	Tool    *CompoundProp[testTool]
}

func newTestStep() *testStep {
	s := &testStep{}
	s.Init("testRunner", Param{Name: "mode", Value: "fast"})
	s.Title = s.String("title", "step.title").Required()
	s.Path = s.String("path", "")
	s.Retries = s.Int("retries", "step.retries")
	s.Verbose = s.Bool("verbose", "step.verbose").Encoded("true", "")
	s.Strict = s.Bool("strict", "step.strict")
	s.Color = Enum(&s.PropertySet, "color", "step.color", colorAny, colorRed, colorGreen).Mapped(map[color]string{
		colorAny:   "",
		colorRed:   "red",
		colorGreen: "green",
	})
	s.Level = Enum(&s.PropertySet, "level", "step.level", levelLow, levelHigh)
	s.Auth = Compound(&s.PropertySet, "auth", "step.auth",
		VariantDef[testAuth]{Name: "anonymous", New: func() testAuth { return newTestAnonymous() }},
		VariantDef[testAuth]{Name: "token", New: func() testAuth { return newTestToken() }},
		VariantDef[testAuth]{Name: "nested", New: func() testAuth { return newTestNested() }},
	).Required()
	s.Tool = Compound(&s.PropertySet, "tool", "step.tool",
		VariantDef[testTool]{Name: "bundled", New: func() testTool { return newTestBundled() }},
		VariantDef[testTool]{Name: "custom", New: func() testTool { return newTestCustomTool() }},
	)
	return s
}

type testAuth interface {
	Variant
	isTestAuth()
}

type testAnonymous struct{ VariantBase }

func newTestAnonymous() *testAnonymous {
	return &testAnonymous{VariantBase: NewVariant("anonymous")}
}

func (*testAnonymous) isTestAuth() {}

type testToken struct {
	VariantBase
	Token *StringProp
	Scope *StringProp
}

func newTestToken() *testToken {
	v := &testToken{VariantBase: NewVariant("token")}
	v.Token = v.String("token", "secure:token").Required()
	v.Scope = v.String("scope", "token.scope")
	return v
}

func (*testToken) isTestAuth() {}

type testNested struct {
	VariantBase
	Source *CompoundProp[testSource]
}

func newTestNested() *testNested {
	v := &testNested{VariantBase: NewVariant("nested")}
	v.Source = Compound(&v.PropertySet, "source", "nested.source",
		VariantDef[testSource]{Name: "url", New: func() testSource { return newTestURLSource() }},
	).Required()
	return v
}

func (*testNested) isTestAuth() {}

type testSource interface {
	Variant
	isTestSource()
}

type testURLSource struct {
	VariantBase
	URL *StringProp
}

func newTestURLSource() *testURLSource {
	v := &testURLSource{VariantBase: NewVariant("URL")}
	v.URL = v.String("url", "source.url").Required()
	return v
}

func (*testURLSource) isTestSource() {}

type testTool interface {
	Variant
	isTestTool()
}

type testBundled struct{ VariantBase }

func newTestBundled() *testBundled {
	return &testBundled{VariantBase: NewVariant("%bundled%")}
}

func (*testBundled) isTestTool() {}

type testCustomTool struct {
	VariantBase
	Path *StringProp
}

func newTestCustomTool() *testCustomTool {
	v := &testCustomTool{VariantBase: NewOpenVariant()}
	v.Path = v.String("path", "step.tool")
	return v
}

func (*testCustomTool) isTestTool() {}
