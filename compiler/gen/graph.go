package gen

import (
	"strings"

	"github.com/syssam/odatagen/compiler/load"
)

// Graph is the unit of generation: the domain model of every input
// document together with the configuration used to emit it.
type Graph struct {
	*Config
	*Metadata
	schemas map[string]*Schema
}

// NewGraph creates a Graph from already transformed metadata. Namespaces
// must be unique across all schemas.
func NewGraph(c *Config, md *Metadata) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if md == nil {
		md = &Metadata{}
	}
	g := &Graph{Config: c, Metadata: md, schemas: make(map[string]*Schema, len(md.Schemas))}
	for _, s := range md.Schemas {
		if _, ok := g.schemas[s.Namespace]; ok {
			return nil, NewSchemaError(s.Namespace, "", "namespace declared by more than one schema", nil)
		}
		g.schemas[s.Namespace] = s
	}
	return g, nil
}

// FromDocuments transforms and merges decoded documents, keeping the
// schemas in input order, and creates a Graph from the result.
func FromDocuments(c *Config, docs ...*load.Metadata) (*Graph, error) {
	md := &Metadata{Schemas: []*Schema{}}
	for _, d := range docs {
		md.Schemas = append(md.Schemas, NewMetadata(d).Schemas...)
	}
	return NewGraph(c, md)
}

// SplitName splits a qualified name at its last dot into the namespace
// and the local name. A name without dots has an empty namespace.
func SplitName(qualified string) (namespace, name string) {
	i := strings.LastIndexByte(qualified, '.')
	if i < 0 {
		return "", qualified
	}
	return qualified[:i], qualified[i+1:]
}

// Namespaces returns the namespaces of the graph in document order.
func (g *Graph) Namespaces() []string {
	ns := make([]string, 0, len(g.Schemas))
	for _, s := range g.Schemas {
		ns = append(ns, s.Namespace)
	}
	return ns
}

// Schema returns the schema declaring namespace.
func (g *Graph) Schema(namespace string) (*Schema, bool) {
	s, ok := g.schemas[namespace]
	return s, ok
}

func (g *Graph) lookup(qualified string) (*Schema, string, bool) {
	ns, name := SplitName(qualified)
	s, ok := g.schemas[ns]
	return s, name, ok
}

// LookupEntity resolves a qualified entity or complex type name.
func (g *Graph) LookupEntity(qualified string) (*Schema, *Entity, bool) {
	s, name, ok := g.lookup(qualified)
	if !ok {
		return nil, nil, false
	}
	e, ok := s.Entity(name)
	return s, e, ok
}

// LookupEnum resolves a qualified enum type name.
func (g *Graph) LookupEnum(qualified string) (*Schema, *Enum, bool) {
	s, name, ok := g.lookup(qualified)
	if !ok {
		return nil, nil, false
	}
	e, ok := s.Enum(name)
	return s, e, ok
}

// LookupFunction resolves a qualified function name.
func (g *Graph) LookupFunction(qualified string) (*Schema, Function, bool) {
	s, name, ok := g.lookup(qualified)
	if !ok {
		return nil, nil, false
	}
	f, ok := s.Function(name)
	return s, f, ok
}

// LookupAction resolves a qualified action name.
func (g *Graph) LookupAction(qualified string) (*Schema, Action, bool) {
	s, name, ok := g.lookup(qualified)
	if !ok {
		return nil, nil, false
	}
	a, ok := s.Action(name)
	return s, a, ok
}
