package typescript

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/odatagen/compiler/gen"
)

// Computed keys grouping members that are not plain properties.
const (
	navigationPropertiesKey = "[Constant.navigationProperties]"
	functionsKey            = "[Constant.functions]"
	actionsKey              = "[Constant.actions]"
)

type (
	// member is a property signature. A member with nested members has an
	// object literal type.
	member struct {
		key     string
		typ     string
		members []member
	}

	signature struct {
		params []member
		ret    string
	}

	iface struct {
		name    string
		members []member
		call    *signature
	}

	alias struct {
		name string
		typ  string
	}

	// schemaFile holds the declarations of one namespace.
	schemaFile struct {
		path       string
		depth      int
		container  *iface
		aliases    []alias
		interfaces []*iface
	}
)

// typeOf renders a type reference: collections as T[], nullable types as
// a union with null.
func typeOf(ref gen.TypeRef) string {
	t := ref.Type
	if ref.IsCollection {
		t += "[]"
	}
	if ref.IsNullable {
		t += " | null"
	}
	return t
}

func mapEach[T, U any](items []T, conv func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return out
}

func propertyMember(p *gen.Property) member {
	return member{key: p.Name, typ: typeOf(p.TypeRef)}
}

func parameterMember(p *gen.Parameter) member {
	return member{key: p.Name, typ: typeOf(p.TypeRef)}
}

// enumType renders the member names as a union of string literals.
func enumType(e *gen.Enum) string {
	if len(e.Members) == 0 {
		return "string"
	}
	names := make([]string, 0, len(e.Members))
	for _, m := range e.Members {
		names = append(names, strconv.Quote(m.Name))
	}
	return strings.Join(names, " | ")
}

func entityInterface(e *gen.Entity) *iface {
	i := &iface{name: e.Name, members: mapEach(e.Properties, propertyMember)}
	if len(e.NavigationProperties) > 0 {
		i.members = append(i.members, member{
			key:     navigationPropertiesKey,
			members: mapEach(e.NavigationProperties, propertyMember),
		})
	}
	return i
}

func functionInterface(f gen.Function) *iface {
	var ret gen.TypeRef
	switch f := f.(type) {
	case *gen.UnboundFunction:
		ret = f.ReturnType
	case *gen.BoundFunction:
		ret = f.ReturnType
	}
	op := f.Signature()
	return &iface{name: op.Name, call: &signature{params: mapEach(op.Parameters, parameterMember), ret: typeOf(ret)}}
}

func actionInterface(a gen.Action) *iface {
	var ret *gen.TypeRef
	switch a := a.(type) {
	case *gen.UnboundAction:
		ret = a.ReturnType
	case *gen.BoundAction:
		ret = a.ReturnType
	}
	op := a.Signature()
	sig := &signature{params: mapEach(op.Parameters, parameterMember), ret: "void"}
	if ret != nil {
		sig.ret = typeOf(*ret)
	}
	return &iface{name: op.Name, call: sig}
}

func containerInterface(c *gen.EntityContainer) *iface {
	i := &iface{name: c.Name, members: mapEach(c.EntitySets, func(s *gen.EntitySet) member {
		return member{key: s.Name, typ: s.Type + "[]"}
	})}
	if len(c.FunctionImports) > 0 {
		i.members = append(i.members, member{key: functionsKey, members: mapEach(c.FunctionImports, func(fi *gen.FunctionImport) member {
			return member{key: fi.Name, typ: fi.FunctionName}
		})})
	}
	if len(c.ActionImports) > 0 {
		i.members = append(i.members, member{key: actionsKey, members: mapEach(c.ActionImports, func(ai *gen.ActionImport) member {
			return member{key: ai.Name, typ: ai.ActionName}
		})})
	}
	return i
}

func newSchemaFile(s *gen.Schema) (*schemaFile, error) {
	sf := &schemaFile{}
	if s.EntityContainer != nil {
		sf.container = containerInterface(s.EntityContainer)
	}
	for _, e := range s.EnumTypes {
		sf.aliases = append(sf.aliases, alias{name: e.Name, typ: enumType(e)})
	}
	entities := mapEach(s.Entities(), entityInterface)
	sf.interfaces = append(sf.interfaces, entities...)
	for _, f := range s.Functions {
		sf.interfaces = append(sf.interfaces, functionInterface(f))
	}
	for _, a := range s.Actions {
		sf.interfaces = append(sf.interfaces, actionInterface(a))
	}

	types, funcs := s.BoundFunctions()
	for _, bt := range types {
		names := make([]string, 0, len(funcs[bt]))
		for _, f := range funcs[bt] {
			names = append(names, f.Name)
		}
		if err := bindMembers(s, entities, bt, functionsKey, names); err != nil {
			return nil, err
		}
	}
	types, acts := s.BoundActions()
	for _, bt := range types {
		names := make([]string, 0, len(acts[bt]))
		for _, a := range acts[bt] {
			names = append(names, a.Name)
		}
		if err := bindMembers(s, entities, bt, actionsKey, names); err != nil {
			return nil, err
		}
	}
	return sf, nil
}

// bindMembers attaches bound operations to the interface named by the
// last segment of their binding type.
func bindMembers(s *gen.Schema, entities []*iface, boundType, key string, names []string) error {
	_, local := gen.SplitName(boundType)
	idx := slices.IndexFunc(entities, func(i *iface) bool { return i.name == local })
	if idx < 0 {
		return gen.NewSchemaError(s.Namespace, boundType, "bound operation type is not declared in the schema", nil)
	}
	group := member{key: key}
	for _, name := range names {
		if !slices.ContainsFunc(group.members, func(m member) bool { return m.key == name }) {
			group.members = append(group.members, member{key: name, typ: name})
		}
	}
	entities[idx].members = append(entities[idx].members, group)
	return nil
}

func (sf *schemaFile) render(w io.Writer, roots []string) {
	up := strings.Repeat("../", sf.depth)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "import * as %s from \"%s%s\"\n", constantModule, up, constantModule)
	fmt.Fprintf(w, "import * as %s from \"%s%s\"\n", edmModule, up, edmModule)
	if len(roots) > 0 {
		fmt.Fprintf(w, "import { %s } from \"%sindex\"\n", strings.Join(roots, ", "), up)
	}
	if sf.container != nil {
		sf.container.render(w)
	}
	for _, a := range sf.aliases {
		fmt.Fprintf(w, "\nexport type %s = %s\n", a.name, a.typ)
	}
	for _, i := range sf.interfaces {
		i.render(w)
	}
}

func (i *iface) render(w io.Writer) {
	fmt.Fprintf(w, "\nexport interface %s {\n", i.name)
	if i.call != nil {
		params := make([]string, 0, len(i.call.params))
		for _, p := range i.call.params {
			params = append(params, p.key+": "+p.typ)
		}
		fmt.Fprintf(w, "  (%s): %s\n", strings.Join(params, ", "), i.call.ret)
	}
	renderMembers(w, i.members, "  ")
	fmt.Fprintln(w, "}")
}

func renderMembers(w io.Writer, members []member, indent string) {
	for _, m := range members {
		if m.members == nil {
			fmt.Fprintf(w, "%s%s: %s\n", indent, m.key, m.typ)
			continue
		}
		fmt.Fprintf(w, "%s%s: {\n", indent, m.key)
		renderMembers(w, m.members, indent+"  ")
		fmt.Fprintf(w, "%s}\n", indent)
	}
}
