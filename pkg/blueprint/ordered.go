package blueprint

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Param is a raw parameter.
type Param struct {
	Name  string
	Value string
}

// Params is a mapping of raw parameters that keeps document order.
type Params []Param

func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: params must be a mapping", node.Line)
	}
	out := make(Params, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: param '%s' must be a scalar", value.Line, key.Value)
		}
		out = append(out, Param{Name: key.Value, Value: value.Value})
	}
	*p = out
	return nil
}

// Value is a typed property value as decoded from the document: a string,
// number, bool, or a map for compound properties.
type Value struct {
	Name  string
	Value any
}

// Values is a mapping of property values that keeps document order.
type Values []Value

func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	out := make(Values, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var decoded any
		if err := node.Content[i+1].Decode(&decoded); err != nil {
			return fmt.Errorf("line %d: property '%s': %w", node.Content[i+1].Line, node.Content[i].Value, err)
		}
		out = append(out, Value{Name: node.Content[i].Value, Value: decoded})
	}
	*v = out
	return nil
}
