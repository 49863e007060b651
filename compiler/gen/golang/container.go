package golang

import (
	"github.com/dave/jennifer/jen"
)

// container renders the entity container as a service interface reading
// its entity sets and a struct holding its operation imports.
func (sg *schemaGen) container() *jen.File {
	c := sg.schema.EntityContainer
	name := goName(c.Name)
	service := name + "Service"
	f := sg.newFile(sg.dir)

	f.Commentf("%s reads the entity sets of the %s.%s container.", service, sg.schema.Namespace, c.Name)
	f.Type().Id(service).InterfaceFunc(func(g *jen.Group) {
		for _, set := range c.EntitySets {
			elem, _ := sg.baseType(set.Type)
			g.Id(goName(set.Name)).Params(jen.Id("ctx").Qual("context", "Context")).Params(
				jen.Qual(runtimePkg, "EntityCollection").Types(elem),
				jen.Error(),
			)
		}
	})

	f.Commentf("%s binds the operation imports of the %s.%s container.", name, sg.schema.Namespace, c.Name)
	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		g.Id("Service").Id(service)
		for _, fi := range c.FunctionImports {
			target, _ := sg.baseType(fi.FunctionName)
			g.Id(goName(fi.Name)).Add(target)
		}
		for _, ai := range c.ActionImports {
			target, _ := sg.baseType(ai.ActionName)
			g.Id(goName(ai.Name)).Add(target)
		}
	})
	return f
}
