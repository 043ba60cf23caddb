package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_ZeroValue(t *testing.T) {
	var p Params

	_, ok := p.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, p.Len())

	p.Set("a", "1")
	v, ok := p.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestParams_InsertionOrder(t *testing.T) {
	p := NewParams(
		Param{Name: "b", Value: "1"},
		Param{Name: "a", Value: "2"},
		Param{Name: "c", Value: "3"},
	)
	p.Set("a", "updated")

	assert.Equal(t, []string{"b", "a", "c"}, p.Keys())
	assert.Equal(t, Param{Name: "a", Value: "updated"}, p.All()[1])
}

func TestParams_EmptyValueIsPresent(t *testing.T) {
	p := NewParams(Param{Name: "secure:password", Value: ""})

	assert.True(t, p.Has("secure:password"))
	assert.False(t, p.Has("password"))
}

func TestParams_Remove(t *testing.T) {
	p := NewParams(
		Param{Name: "a", Value: "1"},
		Param{Name: "b", Value: "2"},
		Param{Name: "c", Value: "3"},
	)
	p.Remove("a")
	p.Remove("missing")

	assert.Equal(t, []string{"b", "c"}, p.Keys())
	v, ok := p.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	p.Set("a", "4")
	assert.Equal(t, []string{"b", "c", "a"}, p.Keys())
}

func TestParams_MergeAndClone(t *testing.T) {
	base := NewParams(Param{Name: "a", Value: "1"}, Param{Name: "b", Value: "2"})
	own := NewParams(Param{Name: "b", Value: "override"}, Param{Name: "c", Value: "3"})

	merged := base.Clone()
	merged.Merge(own)

	assert.Equal(t, []Param{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "override"},
		{Name: "c", Value: "3"},
	}, merged.All())

	// The clone is independent of its source.
	v, _ := base.Get("b")
	assert.Equal(t, "2", v)

	merged.Merge(merged)
	assert.Equal(t, 3, merged.Len())
}
