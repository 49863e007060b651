package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/odatagen/compiler/gen"
)

const (
	uuidPkg = "github.com/google/uuid"
	jsonPkg = "encoding/json"
)

// goType returns the Go type of a type reference. Collections are slices
// and nullable values are pointers, unless the type is already nilable.
func (e *emitter) goType(ref gen.TypeRef) jen.Code {
	base, nilable := e.baseType(ref.Type)
	switch {
	case ref.IsCollection:
		return jen.Index().Add(base)
	case ref.IsNullable && !nilable:
		return jen.Op("*").Add(base)
	default:
		return base
	}
}

// navType returns the Go type of a navigation property. Single-valued
// navigation properties are always pointers so entities may refer to
// each other.
func (e *emitter) navType(ref gen.TypeRef) jen.Code {
	base, nilable := e.baseType(ref.Type)
	switch {
	case ref.IsCollection:
		return jen.Index().Add(base)
	case nilable:
		return base
	default:
		return jen.Op("*").Add(base)
	}
}

// baseType resolves a qualified type name. Types of namespaces outside
// the graph are rendered as any.
func (e *emitter) baseType(name string) (code jen.Code, nilable bool) {
	ns, local := gen.SplitName(name)
	if ns == "Edm" {
		return edmType(e.importPath(edmPkg), local)
	}
	if _, ok := e.graph.Schema(ns); !ok {
		e.graph.Log().Debug("unresolved type reference", "type", name)
		return jen.Any(), true
	}
	return jen.Qual(e.importPath(e.dir(ns)), goName(local)), false
}

// edmType maps an Edm primitive to its Go type. Primitives without a
// native counterpart are declared in the generated edm package; the
// remaining ones (geography, streams of untyped values) stay raw JSON.
func edmType(edm, name string) (jen.Code, bool) {
	switch name {
	case "Boolean":
		return jen.Bool(), false
	case "Byte":
		return jen.Uint8(), false
	case "SByte":
		return jen.Int8(), false
	case "Int16":
		return jen.Int16(), false
	case "Int32":
		return jen.Int32(), false
	case "Int64":
		return jen.Int64(), false
	case "Single":
		return jen.Float32(), false
	case "Double", "Decimal":
		return jen.Float64(), false
	case "String", "Stream":
		return jen.String(), false
	case "Binary":
		return jen.Index().Byte(), true
	case "Guid":
		return jen.Qual(uuidPkg, "UUID"), false
	case "DateTimeOffset":
		return jen.Qual("time", "Time"), false
	case "Date", "TimeOfDay", "Duration":
		return jen.Qual(edm, name), false
	default:
		return jen.Qual(jsonPkg, "RawMessage"), true
	}
}
