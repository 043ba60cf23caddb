// Package dsl models CI server settings entities as typed views over flat,
// insertion-ordered string parameter bags.
package dsl

// Param is a single raw parameter.
type Param struct {
	Name  string `json:"name" yaml:"name" xml:"name,attr"`
	Value string `json:"value" yaml:"value" xml:"value,attr"`
}

// Params is an insertion-ordered string to string mapping. The zero value is
// an empty bag ready to use.
type Params struct {
	index map[string]int
	items []Param
}

// NewParams returns a bag holding the given parameters in order.
func NewParams(params ...Param) *Params {
	p := &Params{}
	for _, param := range params {
		p.Set(param.Name, param.Value)
	}
	return p
}

// Set stores value under name. An existing parameter keeps its position.
func (p *Params) Set(name, value string) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[name]; ok {
		p.items[i].Value = value
		return
	}
	p.index[name] = len(p.items)
	p.items = append(p.items, Param{Name: name, Value: value})
}

// Get returns the value stored under name.
func (p *Params) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	i, ok := p.index[name]
	if !ok {
		return "", false
	}
	return p.items[i].Value, true
}

// Has reports whether name is present, including with an empty value.
func (p *Params) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Remove deletes name from the bag.
func (p *Params) Remove(name string) {
	i, ok := p.index[name]
	if !ok {
		return
	}
	p.items = append(p.items[:i], p.items[i+1:]...)
	delete(p.index, name)
	for j := i; j < len(p.items); j++ {
		p.index[p.items[j].Name] = j
	}
}

func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// All returns a copy of the parameters in insertion order.
func (p *Params) All() []Param {
	if p == nil {
		return nil
	}
	out := make([]Param, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.items))
	for i, item := range p.items {
		keys[i] = item.Name
	}
	return keys
}

// Merge copies every parameter of other into p, overwriting values that are
// already present.
func (p *Params) Merge(other *Params) {
	if other == nil || other == p {
		return
	}
	for _, item := range other.items {
		p.Set(item.Name, item.Value)
	}
}

func (p *Params) Clone() *Params {
	out := &Params{}
	out.Merge(p)
	return out
}
