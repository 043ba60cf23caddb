// Package dsltest provides assertions shared by the tests of settings entity
// packages.
package dsltest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settingskit/pkg/dsl"
)

// Violations validates d and returns the reported property paths.
func Violations(d dsl.Definition) []string {
	var c dsl.ErrorCollector
	d.Validate(&c)
	var out []string
	for _, e := range c.Errors() {
		out = append(out, e.Property)
	}
	return out
}

// AssertMandatory checks that a fresh entity reports exactly the want
// properties as missing, that each is reported alone when the others are
// present as raw parameters, and that nothing is reported once all are.
func AssertMandatory(t *testing.T, newEntity func() dsl.Definition, want ...string) {
	t.Helper()

	assert.Equal(t, want, Violations(newEntity()), "fresh entity")

	keyOf := func(d dsl.Definition, name string) string {
		p, ok := d.Lookup(name)
		require.True(t, ok, "property %q is not declared", name)
		return p.Key()
	}

	for _, missing := range want {
		d := newEntity()
		for _, other := range want {
			if other != missing {
				d.Params().Set(keyOf(d, other), "x")
			}
		}
		assert.Equal(t, []string{missing}, Violations(d), "only %q unset", missing)
	}

	d := newEntity()
	for _, name := range want {
		d.Params().Set(keyOf(d, name), "")
	}
	assert.Empty(t, Violations(d), "all mandatory properties present")
}

// AssertRoundTrip sets every property of d and reads it back. Enum values and
// compound variants are each assigned by name, checked against the stored
// string and read back as the same choice. The fields of every variant are
// round-tripped while it is selected.
func AssertRoundTrip(t *testing.T, d dsl.Definition) {
	t.Helper()
	roundTrip(t, d.Params(), d.Properties(), "")
}

func roundTrip(t *testing.T, params *dsl.Params, props []dsl.Property, prefix string) {
	t.Helper()

	for _, p := range props {
		name := prefix + p.Name()
		switch prop := p.(type) {
		case *dsl.StringProp:
			prop.Set("value of " + name)
			got, ok := prop.Get()
			assert.True(t, ok, name)
			assert.Equal(t, "value of "+name, got, name)
		case *dsl.IntProp:
			prop.Set(42)
			got, ok := prop.Get()
			assert.True(t, ok, name)
			assert.Equal(t, 42, got, name)
		case *dsl.BoolProp:
			trueValue, falseValue := prop.Encoding()
			for v, raw := range map[bool]string{true: trueValue, false: falseValue} {
				prop.Set(v)
				stored, _ := params.Get(prop.Key())
				assert.Equal(t, raw, stored, name)
				got, ok := prop.Get()
				assert.True(t, ok, name)
				assert.Equal(t, v, got, name)
			}
		case dsl.ChoiceProperty:
			choices := prop.Choices()
			assert.NotEmpty(t, choices, "%s declares no choices", name)
			for _, choice := range choices {
				label := name + "=" + choice
				if !assert.NoError(t, prop.Assign(choice), label) {
					continue
				}
				encoded, closed := prop.Encoded(choice)
				if closed {
					stored, _ := params.Get(prop.Key())
					assert.Equal(t, encoded, stored, label)
				} else {
					// Open variants keep free-form data under the key.
					params.Set(prop.Key(), "custom value of "+name)
				}
				got, ok := prop.Selected()
				assert.True(t, ok, label)
				if got != choice && closed {
					// Aliases share a stored string and read back as the first one.
					alias, _ := prop.Encoded(got)
					assert.Equal(t, encoded, alias, "%s reads back as %s", label, got)
				} else {
					assert.Equal(t, choice, got, label)
				}

				if compound, ok := prop.(interface {
					SelectedVariant() (dsl.Variant, bool)
				}); ok {
					if v, ok := compound.SelectedVariant(); assert.True(t, ok, label) {
						roundTrip(t, params, v.Properties(), label+".")
					}
				}
			}
		}
	}
}

// AssertParams checks the raw parameter stored under each key.
func AssertParams(t *testing.T, d dsl.Definition, want map[string]string) {
	t.Helper()
	for key, value := range want {
		got, ok := d.Params().Get(key)
		if assert.True(t, ok, "parameter %q is missing", key) {
			assert.Equal(t, value, got, "parameter %q", key)
		}
	}
}
