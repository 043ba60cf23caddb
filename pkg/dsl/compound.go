package dsl

import (
	"fmt"
	"sort"
	"strings"
)

// VariantKey is the blueprint field naming the selected variant of a compound
// property.
const VariantKey = "variant"

// Variant is one alternative of a compound property. Its fields live in the
// same flat bag as the owning entity once selected.
type Variant interface {
	// Discriminator is the string stored under the compound key. Open
	// variants have none: the compound key carries free-form data instead.
	Discriminator() (string, bool)
	Properties() []Property
	Lookup(name string) (Property, bool)
	propertySet() *PropertySet
}

// VariantBase is embedded by concrete variant types.
type VariantBase struct {
	PropertySet
	value string
	open  bool
}

// NewVariant returns a variant base stored as value.
func NewVariant(value string) VariantBase {
	return VariantBase{value: value}
}

// NewOpenVariant returns a variant base without a discriminator. It is
// selected when the stored value matches no other variant.
func NewOpenVariant() VariantBase {
	return VariantBase{open: true}
}

func (b *VariantBase) Discriminator() (string, bool) {
	return b.value, !b.open
}

func (b *VariantBase) propertySet() *PropertySet {
	return &b.PropertySet
}

// VariantDef registers one variant of a compound property.
type VariantDef[V Variant] struct {
	// Name identifies the variant in blueprints.
	Name string
	New  func() V
}

// CompoundProp is a tagged union flattened into the parameter bag: the
// selected variant's discriminator is stored under the key and its fields
// under their own keys.
type CompoundProp[V Variant] struct {
	propBase
	variants []VariantDef[V]
}

// Compound declares a compound property. An empty key defaults to name.
func Compound[V Variant](s *PropertySet, name, key string, variants ...VariantDef[V]) *CompoundProp[V] {
	p := &CompoundProp[V]{propBase: newPropBase(s, name, key), variants: variants}
	s.declare(p)
	return p
}

func (p *CompoundProp[V]) Required() *CompoundProp[V] {
	p.mandatory = true
	return p
}

// Variants returns the registered variant names.
func (p *CompoundProp[V]) Variants() []string {
	names := make([]string, len(p.variants))
	for i, def := range p.variants {
		names[i] = def.Name
	}
	return names
}

// Set selects v. Fields already set on v are copied into the owner's bag and
// v is rebound to it, so later writes through v land in the owner.
func (p *CompoundProp[V]) Set(v V) {
	params := p.set.Params()
	if value, ok := v.Discriminator(); ok {
		params.Set(p.key, value)
	}
	vs := v.propertySet()
	params.Merge(vs.params)
	vs.bind(params)
}

// Get rebuilds the selected variant from the stored discriminator and binds it
// to the owner's bag.
func (p *CompoundProp[V]) Get() (V, bool) {
	def, ok := p.selectedDef()
	if !ok {
		var zero V
		return zero, false
	}
	v := def.New()
	v.propertySet().bind(p.set.Params())
	return v, true
}

// selectedDef matches the stored discriminator against the closed variants.
// The first open variant catches any other value.
func (p *CompoundProp[V]) selectedDef() (VariantDef[V], bool) {
	raw, ok := p.raw()
	if !ok {
		return VariantDef[V]{}, false
	}
	open := -1
	for i, def := range p.variants {
		value, closed := def.New().Discriminator()
		if !closed {
			if open < 0 {
				open = i
			}
			continue
		}
		if value == raw {
			return def, true
		}
	}
	if open >= 0 {
		return p.variants[open], true
	}
	return VariantDef[V]{}, false
}

func (p *CompoundProp[V]) selected() (Variant, bool) {
	v, ok := p.Get()
	if !ok {
		return nil, false
	}
	return v, true
}

// SelectedVariant returns the selected variant without its concrete type.
func (p *CompoundProp[V]) SelectedVariant() (Variant, bool) {
	return p.selected()
}

func (p *CompoundProp[V]) Choices() []string {
	return p.Variants()
}

// Encoded returns the discriminator of the named variant. An open variant
// has none.
func (p *CompoundProp[V]) Encoded(choice string) (string, bool) {
	def, ok := p.lookup(choice)
	if !ok {
		return "", false
	}
	return def.New().Discriminator()
}

func (p *CompoundProp[V]) Selected() (string, bool) {
	def, ok := p.selectedDef()
	return def.Name, ok
}

// Assign accepts a variant name, or a map holding the variant name under
// "variant" plus the variant's fields.
func (p *CompoundProp[V]) Assign(v any) error {
	var (
		name   string
		fields map[string]any
	)
	switch val := v.(type) {
	case string:
		name = val
	case map[string]any:
		n, ok := val[VariantKey].(string)
		if !ok {
			return fmt.Errorf("property '%s' requires a '%s' field naming one of %s", p.name, VariantKey, strings.Join(p.Variants(), ", "))
		}
		name = n
		fields = val
	default:
		return fmt.Errorf("property '%s' expects a variant, got %T", p.name, v)
	}

	def, ok := p.lookup(name)
	if !ok {
		return fmt.Errorf("property '%s' has no variant '%s', expected one of %s", p.name, name, strings.Join(p.Variants(), ", "))
	}
	variant := def.New()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != VariantKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		prop, ok := variant.Lookup(k)
		if !ok {
			return fmt.Errorf("variant '%s' of property '%s' has no property '%s'", def.Name, p.name, k)
		}
		if err := prop.Assign(fields[k]); err != nil {
			return fmt.Errorf("property '%s': %w", p.name, err)
		}
	}
	p.Set(variant)
	return nil
}

func (p *CompoundProp[V]) lookup(name string) (VariantDef[V], bool) {
	for _, def := range p.variants {
		if def.Name == name {
			return def, true
		}
	}
	return VariantDef[V]{}, false
}
