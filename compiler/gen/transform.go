package gen

import (
	"fmt"

	"github.com/syssam/odatagen/compiler/load"
)

// NewMetadata transforms a decoded document into the domain model. The
// input must come from a successful load.Decode; NewMetadata does not
// validate it again and panics if a bound operation has no binding
// parameter.
func NewMetadata(md *load.Metadata) *Metadata {
	out := &Metadata{Schemas: make([]*Schema, 0, len(md.Schemas))}
	for _, s := range md.Schemas {
		out.Schemas = append(out.Schemas, newSchema(s))
	}
	return out
}

func newSchema(s *load.Schema) *Schema {
	out := &Schema{
		Namespace:    s.Namespace,
		EntityTypes:  mapSlice(s.EntityTypes, newEntity),
		ComplexTypes: mapSlice(s.ComplexTypes, newEntity),
		EnumTypes:    mapSlice(s.EnumTypes, newEnum),
		Actions:      mapSlice(s.Actions, newAction),
		Functions:    mapSlice(s.Functions, newFunction),
	}
	if s.EntityContainer != nil {
		out.EntityContainer = newEntityContainer(s.EntityContainer)
	}
	return out
}

// typeRef resolves a decoded type reference, defaulting nullability to true.
func typeRef(ref load.TypeRef, nullable *bool) TypeRef {
	return TypeRef{
		Type:         ref.Name,
		IsCollection: ref.IsCollection,
		IsNullable:   nullable == nil || *nullable,
	}
}

func newProperty(p *load.Property) *Property {
	return &Property{Name: p.Name, TypeRef: typeRef(p.Type, p.Nullable)}
}

func newParameter(p *load.Property) *Parameter {
	return &Parameter{Name: p.Name, TypeRef: typeRef(p.Type, p.Nullable)}
}

func newReturnType(r *load.ReturnType) *TypeRef {
	if r == nil {
		return nil
	}
	ref := typeRef(r.Type, r.Nullable)
	return &ref
}

func newEntity(t *load.EntityType) *Entity {
	return &Entity{
		Name:                 t.Name,
		Properties:           mapSlice(t.Properties, newProperty),
		NavigationProperties: mapSlice(t.NavigationProperties, newProperty),
	}
}

func newEnum(t *load.EnumType) *Enum {
	e := &Enum{Name: t.Name, Members: make([]*EnumMember, 0, len(t.Members))}
	for i, m := range t.Members {
		v := int64(i)
		if m.Value != nil {
			v = *m.Value
		}
		e.Members = append(e.Members, &EnumMember{Name: m.Name, Value: v})
	}
	return e
}

// bind splits the binding parameter off a bound operation.
func bind(kind, name string, params []*load.Property) (TypeRef, Operation) {
	if len(params) == 0 {
		panic(fmt.Sprintf("gen: bound %s %q has no binding parameter", kind, name))
	}
	return typeRef(params[0].Type, params[0].Nullable), Operation{
		Name:       name,
		Parameters: mapSlice(params[1:], newParameter),
	}
}

func newAction(a *load.Action) Action {
	if !a.IsBound {
		return &UnboundAction{
			Operation:  Operation{Name: a.Name, Parameters: mapSlice(a.Parameters, newParameter)},
			ReturnType: newReturnType(a.ReturnType),
		}
	}
	bound, op := bind("action", a.Name, a.Parameters)
	return &BoundAction{
		Operation:  op,
		BoundType:  bound,
		ReturnType: newReturnType(a.ReturnType),
	}
}

func newFunction(f *load.Function) Function {
	if f.ReturnType == nil {
		panic(fmt.Sprintf("gen: function %q has no return type", f.Name))
	}
	ret := typeRef(f.ReturnType.Type, f.ReturnType.Nullable)
	if !f.IsBound {
		return &UnboundFunction{
			Operation:  Operation{Name: f.Name, Parameters: mapSlice(f.Parameters, newParameter)},
			ReturnType: ret,
		}
	}
	bound, op := bind("function", f.Name, f.Parameters)
	return &BoundFunction{
		Operation:  op,
		BoundType:  bound,
		ReturnType: ret,
	}
}

func newEntityContainer(c *load.EntityContainer) *EntityContainer {
	return &EntityContainer{
		Name: c.Name,
		EntitySets: mapSlice(c.EntitySets, func(s *load.EntitySet) *EntitySet {
			return &EntitySet{Name: s.Name, Type: s.EntityType}
		}),
		ActionImports: mapSlice(c.ActionImports, func(i *load.ActionImport) *ActionImport {
			return &ActionImport{Name: i.Name, ActionName: i.Action}
		}),
		FunctionImports: mapSlice(c.FunctionImports, func(i *load.FunctionImport) *FunctionImport {
			return &FunctionImport{Name: i.Name, FunctionName: i.Function}
		}),
	}
}

// mapSlice applies f to every element of in. The result is never nil.
func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
