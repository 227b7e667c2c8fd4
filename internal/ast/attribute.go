package ast

import (
	"github.com/funvibe/pyrite/internal/location"
)

// Attribute describes a discovered class attribute: the single-segment
// target it is stored under, the annotation and value (when known), and the
// flags distinguishing how it was discovered. Primitive attributes arise
// from direct assignment; synthesized callable and nested-class attributes
// are not primitive. Defines accumulates overload signatures when several
// defines share a name.
type Attribute struct {
	Loc        location.Location
	Target     Expression
	Annotation Expression
	Defines    []*Define
	Value      Expression
	Async      bool
	Setter     bool
	Primitive  bool
}

// Name returns the identifier the attribute is stored under.
func (a *Attribute) Name() string {
	if access, ok := AsAccess(a.Target); ok {
		if name, ok := access.SimpleName(); ok {
			return name
		}
	}
	return ""
}

// AttributeMap is an insertion-ordered map from attribute name to attribute.
// Iteration order is deterministic: first insertion wins the position, and
// an overwrite keeps both the position and the first occurrence's location.
type AttributeMap struct {
	names []string
	items map[string]*Attribute
}

// NewAttributeMap returns an empty attribute map.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{items: make(map[string]*Attribute)}
}

// Len returns the number of attributes.
func (m *AttributeMap) Len() int {
	return len(m.names)
}

// Names returns the attribute names in insertion order.
func (m *AttributeMap) Names() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// Get returns the attribute stored under name.
func (m *AttributeMap) Get(name string) (*Attribute, bool) {
	attribute, ok := m.items[name]
	return attribute, ok
}

// Set stores attribute under name. A later write replaces the stored value
// but keeps the original position and first-occurrence location.
func (m *AttributeMap) Set(name string, attribute *Attribute) {
	if existing, ok := m.items[name]; ok {
		replacement := *attribute
		replacement.Loc = existing.Loc
		m.items[name] = &replacement
		return
	}
	m.names = append(m.names, name)
	m.items[name] = attribute
}

// Add stores attribute under its own target name.
func (m *AttributeMap) Add(attribute *Attribute) {
	if name := attribute.Name(); name != "" {
		m.Set(name, attribute)
	}
}

// Each calls fn for every attribute in insertion order.
func (m *AttributeMap) Each(fn func(name string, attribute *Attribute)) {
	for _, name := range m.names {
		fn(name, m.items[name])
	}
}

// mergeAttributeMaps combines two maps, left-biased: on a key conflict the
// left map's entry survives. Order is left's entries followed by the right's
// non-conflicting entries.
func mergeAttributeMaps(left, right *AttributeMap) *AttributeMap {
	merged := NewAttributeMap()
	left.Each(func(name string, attribute *Attribute) {
		merged.Set(name, attribute)
	})
	right.Each(func(name string, attribute *Attribute) {
		if _, ok := merged.Get(name); !ok {
			merged.Set(name, attribute)
		}
	})
	return merged
}
