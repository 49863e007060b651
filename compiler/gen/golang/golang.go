// Package golang implements the Go dialect: one package per namespace
// holding the structured types, enumerations, operation signatures and
// entity container of its schema.
//
// Packages are laid out under the target directory by namespace segment,
// so People.Model becomes people/model. Config.Package must hold the
// import path of the target directory.
package golang

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/syssam/odatagen/compiler/gen"
)

// DefaultHeader is written at the top of every file unless the config
// sets its own header.
const DefaultHeader = "Code generated by odatagen. DO NOT EDIT."

const (
	// runtimePkg holds the types shared by every generated package.
	runtimePkg = "github.com/syssam/odatagen"
	edmPkg     = "edm"
)

// Dialect renders Go packages.
type Dialect struct{}

// Name implements gen.Dialect.
func (Dialect) Name() string { return "go" }

// NewEmitter implements gen.Dialect.
func (Dialect) NewEmitter(g *gen.Graph) gen.Emitter {
	header := DefaultHeader
	if g.Config.Header != "" {
		header = g.Config.Header
	}
	return &emitter{graph: g, header: header, pkg: g.Config.Package}
}

var _ gen.Dialect = Dialect{}

type emitter struct {
	graph  *gen.Graph
	header string
	pkg    string
	// dirs lists the generated namespace packages in schema order.
	dirs []string
}

// dir returns the package directory of a namespace, relative to the
// target directory.
func (e *emitter) dir(namespace string) string {
	segments := strings.Split(namespace, ".")
	for i, seg := range segments {
		segments[i] = pkgName(seg)
	}
	return path.Join(segments...)
}

func (e *emitter) importPath(dir string) string {
	return path.Join(e.pkg, dir)
}

// newFile creates a file of the package in dir with the header comment and
// the names of every package it may import.
func (e *emitter) newFile(dir string) *jen.File {
	f := jen.NewFilePathName(e.importPath(dir), path.Base(dir))
	f.HeaderComment(e.header)
	f.ImportName(runtimePkg, "odatagen")
	f.ImportName(uuidPkg, "uuid")
	f.ImportName(e.importPath(edmPkg), edmPkg)
	for _, ns := range e.graph.Namespaces() {
		d := e.dir(ns)
		f.ImportName(e.importPath(d), path.Base(d))
	}
	return f
}

// write renders f, formats it and adds it to the file set.
func (e *emitter) write(fs *gen.FileSet, name string, f *jen.File) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return gen.NewGenerationError("", name, "render go source", err)
	}
	src, err := imports.Process(name, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return gen.NewGenerationError("", name, "format go source", err)
	}
	out, err := fs.Create(name)
	if err != nil {
		return err
	}
	out.Write(src)
	return nil
}

// GenBase adds the edm package.
func (e *emitter) GenBase(fs *gen.FileSet) error {
	if e.pkg == "" {
		return gen.NewConfigError("Package", nil, "the go dialect requires the import path of the target directory")
	}
	f := e.newFile(edmPkg)
	f.PackageComment("Package edm holds the Edm primitive types without a native Go counterpart.")

	f.Comment("Date is an Edm.Date value such as 2006-01-02.")
	f.Type().Id("Date").String()
	f.Comment("Time parses the date.")
	f.Func().Params(jen.Id("d").Id("Date")).Id("Time").Params().Params(jen.Qual("time", "Time"), jen.Error()).Block(
		jen.Return(jen.Qual("time", "Parse").Call(jen.Qual("time", "DateOnly"), jen.String().Call(jen.Id("d")))),
	)

	f.Comment("TimeOfDay is an Edm.TimeOfDay value such as 15:04:05.")
	f.Type().Id("TimeOfDay").String()
	f.Comment("Time parses the time of day on the zero date.")
	f.Func().Params(jen.Id("t").Id("TimeOfDay")).Id("Time").Params().Params(jen.Qual("time", "Time"), jen.Error()).Block(
		jen.Return(jen.Qual("time", "Parse").Call(jen.Lit("15:04:05.999999999"), jen.String().Call(jen.Id("t")))),
	)

	f.Comment("Duration is an Edm.Duration value in ISO 8601 form such as P1DT2H.")
	f.Type().Id("Duration").String()
	return e.write(fs, path.Join(edmPkg, "edm.go"), f)
}

// GenSchema adds the package of s.
func (e *emitter) GenSchema(fs *gen.FileSet, s *gen.Schema) error {
	dir := e.dir(s.Namespace)
	if root, _, _ := strings.Cut(dir, "/"); root == edmPkg {
		return gen.NewSchemaError(s.Namespace, "", fmt.Sprintf("namespace root %q collides with the edm package", root), nil)
	}
	sg := &schemaGen{emitter: e, schema: s, dir: dir}
	if len(s.EnumTypes) > 0 || len(s.Entities()) > 0 {
		if err := e.write(fs, path.Join(dir, "types.go"), sg.types()); err != nil {
			return err
		}
	}
	if len(s.Functions) > 0 || len(s.Actions) > 0 {
		f, err := sg.operations()
		if err != nil {
			return err
		}
		if err := e.write(fs, path.Join(dir, "operations.go"), f); err != nil {
			return err
		}
	}
	if s.EntityContainer != nil {
		if err := e.write(fs, path.Join(dir, "container.go"), sg.container()); err != nil {
			return err
		}
	}
	e.dirs = append(e.dirs, dir)
	return nil
}

// Finalize adds the documentation of the root package.
func (e *emitter) Finalize(fs *gen.FileSet) error {
	name := pkgName(path.Base(e.pkg))
	f := jen.NewFilePathName(e.pkg, name)
	f.HeaderComment(e.header)
	var doc strings.Builder
	fmt.Fprintf(&doc, "Package %s holds the packages generated for the namespaces:\n", name)
	for _, dir := range e.dirs {
		fmt.Fprintf(&doc, "\n\t%s", e.importPath(dir))
	}
	f.PackageComment(doc.String())
	return e.write(fs, "doc.go", f)
}
