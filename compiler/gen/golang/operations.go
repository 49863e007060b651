package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/odatagen/compiler/gen"
)

// method is an operation rendered as a Go signature.
type method struct {
	name    string
	params  []jen.Code
	results []jen.Code
}

// boundGroup collects the operations bound to one type.
type boundGroup struct {
	iface   string
	binding string
	methods []*method
}

func (sg *schemaGen) signature(op *gen.Operation, ret *gen.TypeRef) *method {
	m := &method{name: goName(op.Name), params: []jen.Code{jen.Id("ctx").Qual("context", "Context")}}
	for _, p := range op.Parameters {
		m.params = append(m.params, jen.Id(paramName(p.Name)).Add(sg.goType(p.TypeRef)))
	}
	if ret != nil {
		m.results = append(m.results, sg.goType(*ret))
	}
	m.results = append(m.results, jen.Error())
	return m
}

// result renders the result list, without parentheses for a lone error.
func (m *method) result() jen.Code {
	if len(m.results) == 1 {
		return m.results[0]
	}
	return jen.Params(m.results...)
}

// operations renders a function type per unbound operation and an
// interface per binding type holding its bound operations. Overloads
// sharing a name keep the first declaration.
func (sg *schemaGen) operations() (*jen.File, error) {
	var (
		unbound []*method
		groups  []*boundGroup
		byIface = make(map[string]*boundGroup)
		seen    = make(map[string]bool)
	)
	bind := func(binding gen.TypeRef, m *method) error {
		_, local := gen.SplitName(binding.Type)
		if _, ok := sg.schema.Entity(local); !ok {
			return gen.NewSchemaError(sg.schema.Namespace, binding.Type, "bound operation type is not declared in the schema", nil)
		}
		iface := goName(local) + "Operations"
		if binding.IsCollection {
			iface = goName(local) + "CollectionOperations"
		}
		g, ok := byIface[iface]
		if !ok {
			g = &boundGroup{iface: iface, binding: binding.Type}
			byIface[iface] = g
			groups = append(groups, g)
		}
		for _, prev := range g.methods {
			if prev.name == m.name {
				return nil
			}
		}
		g.methods = append(g.methods, m)
		return nil
	}
	addUnbound := func(m *method) {
		if !seen[m.name] {
			seen[m.name] = true
			unbound = append(unbound, m)
		}
	}

	for _, fn := range sg.schema.Functions {
		switch fn := fn.(type) {
		case *gen.UnboundFunction:
			addUnbound(sg.signature(fn.Signature(), &fn.ReturnType))
		case *gen.BoundFunction:
			if err := bind(fn.BoundType, sg.signature(fn.Signature(), &fn.ReturnType)); err != nil {
				return nil, err
			}
		}
	}
	for _, act := range sg.schema.Actions {
		switch act := act.(type) {
		case *gen.UnboundAction:
			addUnbound(sg.signature(act.Signature(), act.ReturnType))
		case *gen.BoundAction:
			if err := bind(act.BoundType, sg.signature(act.Signature(), act.ReturnType)); err != nil {
				return nil, err
			}
		}
	}

	f := sg.newFile(sg.dir)
	for _, m := range unbound {
		f.Commentf("%s is the signature of the %s.%s operation.", m.name, sg.schema.Namespace, m.name)
		f.Type().Id(m.name).Func().Params(m.params...).Add(m.result())
	}
	for _, g := range groups {
		f.Commentf("%s holds the operations bound to %s.", g.iface, g.binding)
		f.Type().Id(g.iface).InterfaceFunc(func(ig *jen.Group) {
			for _, m := range g.methods {
				ig.Id(m.name).Params(m.params...).Add(m.result())
			}
		})
	}
	return f, nil
}
