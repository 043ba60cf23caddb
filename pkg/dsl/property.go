package dsl

import (
	"fmt"
	"strconv"
	"strings"
)

// Property is a typed view over one parameter key.
type Property interface {
	// Name is the property name used in blueprints and validation errors.
	Name() string
	// Key is the parameter the property reads and writes.
	Key() string
	Mandatory() bool
	IsSet() bool
	Clear()
	// Assign stores a loosely typed value, as decoded from a blueprint,
	// through the typed setter.
	Assign(v any) error
}

// ChoiceProperty is a property limited to named choices: the values of an
// enum or the variants of a compound.
type ChoiceProperty interface {
	Property
	// Choices returns the names Assign accepts, in declaration order.
	Choices() []string
	// Encoded returns the string Assign(choice) stores under Key, or false
	// when the choice stores nothing there.
	Encoded(choice string) (string, bool)
	// Selected returns the choice the stored value reads as.
	Selected() (string, bool)
}

// PropertySet owns a parameter bag and the properties declared over it.
// Properties are bound to the set, not to the bag, so a set can be rebound to
// another bag after the properties are declared.
type PropertySet struct {
	params *Params
	props  []Property
}

// Params returns the underlying bag, allocating it on first use.
func (s *PropertySet) Params() *Params {
	if s.params == nil {
		s.params = &Params{}
	}
	return s.params
}

// Param stores a raw parameter, bypassing typed properties.
func (s *PropertySet) Param(name, value string) {
	s.Params().Set(name, value)
}

// HasParam reports whether the raw parameter is present.
func (s *PropertySet) HasParam(name string) bool {
	return s.Params().Has(name)
}

// Properties returns the declared properties in declaration order.
func (s *PropertySet) Properties() []Property {
	return s.props
}

// Lookup finds a declared property by name.
func (s *PropertySet) Lookup(name string) (Property, bool) {
	for _, p := range s.props {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

func (s *PropertySet) bind(p *Params) {
	s.params = p
}

func (s *PropertySet) declare(p Property) {
	s.props = append(s.props, p)
}

// String declares a string property. An empty key defaults to name.
func (s *PropertySet) String(name, key string) *StringProp {
	p := &StringProp{propBase: newPropBase(s, name, key)}
	s.declare(p)
	return p
}

// Int declares an integer property. An empty key defaults to name.
func (s *PropertySet) Int(name, key string) *IntProp {
	p := &IntProp{propBase: newPropBase(s, name, key)}
	s.declare(p)
	return p
}

// Bool declares a boolean property stored as "true" / "false". Use Encoded to
// change the stored strings.
func (s *PropertySet) Bool(name, key string) *BoolProp {
	p := &BoolProp{propBase: newPropBase(s, name, key), trueValue: "true", falseValue: "false"}
	s.declare(p)
	return p
}

type propBase struct {
	set       *PropertySet
	name      string
	key       string
	mandatory bool
}

func newPropBase(s *PropertySet, name, key string) propBase {
	if key == "" {
		key = name
	}
	return propBase{set: s, name: name, key: key}
}

func (b *propBase) Name() string    { return b.name }
func (b *propBase) Key() string     { return b.key }
func (b *propBase) Mandatory() bool { return b.mandatory }

func (b *propBase) IsSet() bool {
	return b.set.Params().Has(b.key)
}

func (b *propBase) Clear() {
	b.set.Params().Remove(b.key)
}

func (b *propBase) raw() (string, bool) {
	return b.set.Params().Get(b.key)
}

func (b *propBase) store(v string) {
	b.set.Params().Set(b.key, v)
}

// StringProp stores its value verbatim.
type StringProp struct {
	propBase
}

// Required marks the property as mandatory.
func (p *StringProp) Required() *StringProp {
	p.mandatory = true
	return p
}

func (p *StringProp) Get() (string, bool) {
	return p.raw()
}

// Value returns the stored string or "" when unset.
func (p *StringProp) Value() string {
	v, _ := p.raw()
	return v
}

func (p *StringProp) Set(v string) {
	p.store(v)
}

func (p *StringProp) Assign(v any) error {
	switch val := v.(type) {
	case string:
		p.Set(val)
	case int, int64, uint64, float64, bool:
		p.Set(fmt.Sprint(val))
	default:
		return fmt.Errorf("property '%s' expects a string, got %T", p.name, v)
	}
	return nil
}

// IntProp stores a base-10 integer. A stored value that does not parse reads
// as unset.
type IntProp struct {
	propBase
}

func (p *IntProp) Required() *IntProp {
	p.mandatory = true
	return p
}

func (p *IntProp) Get() (int, bool) {
	raw, ok := p.raw()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p *IntProp) Set(v int) {
	p.store(strconv.Itoa(v))
}

func (p *IntProp) Assign(v any) error {
	switch val := v.(type) {
	case int:
		p.Set(val)
	case int64:
		p.Set(int(val))
	case uint64:
		p.Set(int(val))
	case float64:
		if val != float64(int(val)) {
			return fmt.Errorf("property '%s' expects an integer, got %v", p.name, val)
		}
		p.Set(int(val))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("property '%s' expects an integer, got %q", p.name, val)
		}
		p.Set(n)
	default:
		return fmt.Errorf("property '%s' expects an integer, got %T", p.name, v)
	}
	return nil
}

// BoolProp stores one of two configured strings.
type BoolProp struct {
	propBase
	trueValue  string
	falseValue string
}

func (p *BoolProp) Required() *BoolProp {
	p.mandatory = true
	return p
}

// Encoded sets the strings stored for true and false.
func (p *BoolProp) Encoded(trueValue, falseValue string) *BoolProp {
	p.trueValue = trueValue
	p.falseValue = falseValue
	return p
}

// Encoding returns the strings stored for true and false.
func (p *BoolProp) Encoding() (trueValue, falseValue string) {
	return p.trueValue, p.falseValue
}

// Get reads the stored value. Anything other than the two configured strings
// reads as unset.
func (p *BoolProp) Get() (bool, bool) {
	raw, ok := p.raw()
	if !ok {
		return false, false
	}
	switch raw {
	case p.trueValue:
		return true, true
	case p.falseValue:
		return false, true
	}
	return false, false
}

func (p *BoolProp) Set(v bool) {
	if v {
		p.store(p.trueValue)
		return
	}
	p.store(p.falseValue)
}

func (p *BoolProp) Assign(v any) error {
	switch val := v.(type) {
	case bool:
		p.Set(val)
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("property '%s' expects a boolean, got %q", p.name, val)
		}
		p.Set(b)
	default:
		return fmt.Errorf("property '%s' expects a boolean, got %T", p.name, v)
	}
	return nil
}

// EnumProp stores one of a closed set of string constants. Without a mapping
// the constant itself is stored; with one, the mapped string is.
type EnumProp[E ~string] struct {
	propBase
	values  []E
	mapping map[E]string
}

// Enum declares an enum property over values. An empty key defaults to name.
func Enum[E ~string](s *PropertySet, name, key string, values ...E) *EnumProp[E] {
	p := &EnumProp[E]{propBase: newPropBase(s, name, key), values: values}
	s.declare(p)
	return p
}

func (p *EnumProp[E]) Required() *EnumProp[E] {
	p.mandatory = true
	return p
}

// Mapped sets the string stored for each value.
func (p *EnumProp[E]) Mapped(mapping map[E]string) *EnumProp[E] {
	p.mapping = mapping
	return p
}

func (p *EnumProp[E]) Values() []E {
	return p.values
}

// Encode returns the string stored for v.
func (p *EnumProp[E]) Encode(v E) string {
	if p.mapping != nil {
		if s, ok := p.mapping[v]; ok {
			return s
		}
	}
	return string(v)
}

// Get reverse maps the stored string. Unknown strings read as unset.
func (p *EnumProp[E]) Get() (E, bool) {
	var zero E
	raw, ok := p.raw()
	if !ok {
		return zero, false
	}
	for _, v := range p.values {
		if p.Encode(v) == raw {
			return v, true
		}
	}
	return zero, false
}

func (p *EnumProp[E]) Set(v E) {
	p.store(p.Encode(v))
}

// Assign accepts either the constant name or its stored string.
func (p *EnumProp[E]) Assign(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("property '%s' expects one of %s, got %T", p.name, p.names(), v)
	}
	for _, val := range p.values {
		if string(val) == s {
			p.Set(val)
			return nil
		}
	}
	for _, val := range p.values {
		if p.Encode(val) == s {
			p.Set(val)
			return nil
		}
	}
	return fmt.Errorf("property '%s' expects one of %s, got %q", p.name, p.names(), s)
}

func (p *EnumProp[E]) Choices() []string {
	names := make([]string, len(p.values))
	for i, v := range p.values {
		names[i] = string(v)
	}
	return names
}

func (p *EnumProp[E]) Encoded(choice string) (string, bool) {
	for _, v := range p.values {
		if string(v) == choice {
			return p.Encode(v), true
		}
	}
	return "", false
}

func (p *EnumProp[E]) Selected() (string, bool) {
	v, ok := p.Get()
	return string(v), ok
}

func (p *EnumProp[E]) names() string {
	return strings.Join(p.Choices(), ", ")
}
