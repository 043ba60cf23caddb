package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompound_SetStoresDiscriminatorAndFields(t *testing.T) {
	s := newTestStep()
	token := newTestToken()
	token.Token.Set("secret")

	s.Auth.Set(token)

	raw, _ := s.Params().Get("step.auth")
	assert.Equal(t, "token", raw)
	raw, _ = s.Params().Get("secure:token")
	assert.Equal(t, "secret", raw)

	// The variant is bound to the owner after selection.
	token.Scope.Set("repo")
	raw, _ = s.Params().Get("token.scope")
	assert.Equal(t, "repo", raw)
}

func TestCompound_GetRebuildsVariant(t *testing.T) {
	s := newTestStep()
	s.Param("step.auth", "token")
	s.Param("secure:token", "abc")

	got, ok := s.Auth.Get()
	require.True(t, ok)
	token, ok := got.(*testToken)
	require.True(t, ok, "expected *testToken, got %T", got)
	assert.Equal(t, "abc", token.Token.Value())

	token.Token.Set("rotated")
	raw, _ := s.Params().Get("secure:token")
	assert.Equal(t, "rotated", raw)
}

func TestCompound_UnknownDiscriminator(t *testing.T) {
	s := newTestStep()
	s.Param("step.auth", "kerberos")

	_, ok := s.Auth.Get()
	assert.False(t, ok)
}

func TestCompound_OpenVariant(t *testing.T) {
	s := newTestStep()

	custom := newTestCustomTool()
	custom.Path.Set("/opt/tool")
	s.Tool.Set(custom)

	raw, _ := s.Params().Get("step.tool")
	assert.Equal(t, "/opt/tool", raw)

	got, ok := s.Tool.Get()
	require.True(t, ok)
	assert.IsType(t, &testCustomTool{}, got)

	s.Tool.Set(newTestBundled())
	got, ok = s.Tool.Get()
	require.True(t, ok)
	assert.IsType(t, &testBundled{}, got)
}

func TestCompound_Nested(t *testing.T) {
	s := newTestStep()
	source := newTestURLSource()
	source.URL.Set("https://example.com")
	nested := newTestNested()
	nested.Source.Set(source)
	s.Auth.Set(nested)

	assert.Equal(t, []Param{
		{Name: "mode", Value: "fast"},
		{Name: "step.auth", Value: "nested"},
		{Name: "nested.source", Value: "URL"},
		{Name: "source.url", Value: "https://example.com"},
	}, s.Params().All())
}

func TestCompound_Assign(t *testing.T) {
	s := newTestStep()
	prop, ok := s.Lookup("auth")
	require.True(t, ok)

	err := prop.Assign(map[string]any{
		"variant": "token",
		"token":   "t0k3n",
		"scope":   "read",
	})
	require.NoError(t, err)

	raw, _ := s.Params().Get("step.auth")
	assert.Equal(t, "token", raw)
	raw, _ = s.Params().Get("secure:token")
	assert.Equal(t, "t0k3n", raw)
}

func TestCompound_AssignNested(t *testing.T) {
	s := newTestStep()
	prop, _ := s.Lookup("auth")

	err := prop.Assign(map[string]any{
		"variant": "nested",
		"source":  map[string]any{"variant": "url", "url": "https://example.com"},
	})
	require.NoError(t, err)

	raw, _ := s.Params().Get("nested.source")
	assert.Equal(t, "URL", raw)
	raw, _ = s.Params().Get("source.url")
	assert.Equal(t, "https://example.com", raw)
}

func TestCompound_AssignErrors(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"unknown variant", "kerberos"},
		{"missing variant field", map[string]any{"token": "x"}},
		{"unknown field", map[string]any{"variant": "token", "user": "x"}},
		{"bad field value", map[string]any{"variant": "token", "token": []string{"x"}}},
		{"wrong type", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStep()
			prop, _ := s.Lookup("auth")
			assert.Error(t, prop.Assign(tt.value))
			assert.False(t, s.HasParam("step.auth"))
		})
	}
}

func TestCompound_Variants(t *testing.T) {
	s := newTestStep()
	assert.Equal(t, []string{"anonymous", "token", "nested"}, s.Auth.Variants())
}

func TestCompound_Choices(t *testing.T) {
	s := newTestStep()
	var prop ChoiceProperty = s.Auth

	assert.Equal(t, s.Auth.Variants(), prop.Choices())
	for _, choice := range prop.Choices() {
		require.NoError(t, prop.Assign(choice))
		encoded, ok := prop.Encoded(choice)
		require.True(t, ok)
		raw, _ := s.Params().Get("step.auth")
		assert.Equal(t, encoded, raw)

		got, ok := prop.Selected()
		assert.True(t, ok)
		assert.Equal(t, choice, got)
	}

	v, ok := s.Auth.SelectedVariant()
	require.True(t, ok)
	assert.IsType(t, &testNested{}, v)
}

func TestCompound_OpenVariantChoice(t *testing.T) {
	s := newTestStep()

	encoded, ok := s.Tool.Encoded("bundled")
	assert.True(t, ok)
	assert.Equal(t, "%bundled%", encoded)
	_, ok = s.Tool.Encoded("custom")
	assert.False(t, ok, "open variant has no discriminator")

	s.Param("step.tool", "/usr/local/bin/tool")
	got, ok := s.Tool.Selected()
	require.True(t, ok)
	assert.Equal(t, "custom", got)

	s.Param("step.tool", "%bundled%")
	got, _ = s.Tool.Selected()
	assert.Equal(t, "bundled", got)
}
