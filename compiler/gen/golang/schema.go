package golang

import (
	"path"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/odatagen/compiler/gen"
)

// schemaGen renders the files of a single namespace package.
type schemaGen struct {
	*emitter
	schema *gen.Schema
	dir    string
}

// types renders the enumerations and structured types.
func (sg *schemaGen) types() *jen.File {
	f := sg.newFile(sg.dir)
	for _, en := range sg.schema.EnumTypes {
		sg.genEnum(f, en)
	}
	for _, ent := range sg.schema.Entities() {
		sg.genStruct(f, ent)
	}
	return f
}

// genEnum renders an int64 backed enumeration encoded as its member names
// in JSON.
func (sg *schemaGen) genEnum(f *jen.File, en *gen.Enum) {
	name := goName(en.Name)
	recv := jen.Id("e").Id(name)
	f.Commentf("%s is the %s.%s enumeration.", name, sg.schema.Namespace, en.Name)
	f.Type().Id(name).Int64()

	// Members sharing a value are aliases; String reports the first one.
	var (
		seenValue = make(map[int64]bool)
		seenName  = make(map[string]bool)
		cases     []*gen.EnumMember
		names     []*gen.EnumMember
	)
	for _, m := range en.Members {
		if !seenValue[m.Value] {
			seenValue[m.Value] = true
			cases = append(cases, m)
		}
		if !seenName[m.Name] {
			seenName[m.Name] = true
			names = append(names, m)
		}
	}
	if len(names) > 0 {
		f.Const().DefsFunc(func(g *jen.Group) {
			for _, m := range names {
				g.Id(name + goName(m.Name)).Id(name).Op("=").Lit(int(m.Value))
			}
		})
	}

	f.Comment("String returns the member name of the value.")
	f.Func().Params(recv).Id("String").Params().String().Block(
		jen.Switch(jen.Id("e")).BlockFunc(func(g *jen.Group) {
			for _, m := range cases {
				g.Case(jen.Id(name + goName(m.Name))).Block(jen.Return(jen.Lit(m.Name)))
			}
		}),
		jen.Return(jen.Lit(name+"(").Op("+").Qual("strconv", "FormatInt").Call(jen.Int64().Call(jen.Id("e")), jen.Lit(10)).Op("+").Lit(")")),
	)

	f.Comment("MarshalText implements encoding.TextMarshaler.")
	f.Func().Params(recv).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Index().Byte().Call(jen.Id("e").Dot("String").Call()), jen.Nil()),
	)

	f.Comment("UnmarshalText implements encoding.TextUnmarshaler.")
	f.Func().Params(jen.Id("e").Op("*").Id(name)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().Block(
		jen.Switch(jen.String().Call(jen.Id("text"))).BlockFunc(func(g *jen.Group) {
			for _, m := range names {
				g.Case(jen.Lit(m.Name)).Block(jen.Op("*").Id("e").Op("=").Id(name + goName(m.Name)))
			}
			g.Default().Block(jen.Return(jen.Qual("fmt", "Errorf").Call(
				jen.Lit(path.Base(sg.dir)+": invalid "+name+" %q"), jen.Id("text"),
			)))
		}),
		jen.Return(jen.Nil()),
	)
}

// genStruct renders an entity or complex type. Navigation properties are
// only present when expanded and are omitted when empty.
func (sg *schemaGen) genStruct(f *jen.File, ent *gen.Entity) {
	name := goName(ent.Name)
	f.Commentf("%s is the %s.%s structured type.", name, sg.schema.Namespace, ent.Name)
	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		for _, p := range ent.Properties {
			tag := p.Name
			if p.IsNullable {
				tag += ",omitempty"
			}
			g.Id(goName(p.Name)).Add(sg.goType(p.TypeRef)).Tag(map[string]string{"json": tag})
		}
		for _, p := range ent.NavigationProperties {
			g.Id(goName(p.Name)).Add(sg.navType(p.TypeRef)).Tag(map[string]string{"json": p.Name + ",omitempty"})
		}
	})
}
