// Package typescript implements the TypeScript dialect: one directory per
// namespace segment, index.ts barrels re-exporting every segment, and a
// <Segment>-schema.ts file per namespace holding interfaces and type
// aliases for its declarations.
package typescript

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/syssam/odatagen/compiler/gen"
)

// DefaultHeader is written at the top of every file unless the config
// sets its own header.
const DefaultHeader = "// Code generated by odatagen. DO NOT EDIT."

// Names of the base modules every schema file imports.
const (
	constantModule = "Constant"
	edmModule      = "Edm"
	indexFile      = "index.ts"
)

//go:embed base/*.ts
var baseFS embed.FS

// Dialect renders TypeScript declarations.
type Dialect struct{}

// Name implements gen.Dialect.
func (Dialect) Name() string { return "typescript" }

// NewEmitter implements gen.Dialect.
func (Dialect) NewEmitter(g *gen.Graph) gen.Emitter {
	header := DefaultHeader
	if g.Config.Header != "" {
		header = g.Config.Header
	}
	return &emitter{
		graph:   g,
		header:  header,
		barrels: make(map[string]*barrel),
	}
}

var _ gen.Dialect = Dialect{}

// emitter accumulates index barrels and schema files; both are rendered
// in Finalize once every namespace root is known.
type emitter struct {
	graph   *gen.Graph
	header  string
	barrels map[string]*barrel
	dirs    []string
	schemas []*schemaFile
}

// barrelAt returns the index barrel of dir, creating it on first use.
func (e *emitter) barrelAt(dir string) *barrel {
	b, ok := e.barrels[dir]
	if !ok {
		b = &barrel{}
		e.barrels[dir] = b
		e.dirs = append(e.dirs, dir)
	}
	return b
}

// GenBase adds Constant.ts and Edm.ts and seeds the root barrel with them.
func (e *emitter) GenBase(fs *gen.FileSet) error {
	for _, name := range []string{constantModule, edmModule} {
		data, err := baseFS.ReadFile("base/" + name + ".ts")
		if err != nil {
			return err
		}
		f, err := fs.Create(name + ".ts")
		if err != nil {
			return err
		}
		f.WriteString(e.header + "\n\n")
		f.Write(data)
		e.barrelAt("").addNamespace(name)
	}
	return nil
}

// GenSchema registers the namespace directories of s and prepares its
// schema file.
func (e *emitter) GenSchema(_ *gen.FileSet, s *gen.Schema) error {
	segments := strings.Split(s.Namespace, ".")
	if slices.Contains([]string{constantModule, edmModule}, segments[0]) {
		return gen.NewSchemaError(s.Namespace, "", fmt.Sprintf("namespace root %q collides with a base module", segments[0]), nil)
	}
	dir := ""
	for _, seg := range segments {
		e.barrelAt(dir).addNamespace(seg)
		dir = path.Join(dir, seg)
	}
	leaf := segments[len(segments)-1]
	e.barrelAt(dir).addModule(leaf + "-schema")

	sf, err := newSchemaFile(s)
	if err != nil {
		return err
	}
	sf.path = path.Join(dir, leaf+"-schema.ts")
	sf.depth = len(segments)
	e.schemas = append(e.schemas, sf)
	return nil
}

// Finalize renders the barrels and the schema files.
func (e *emitter) Finalize(fs *gen.FileSet) error {
	root := e.barrelAt("")
	for _, dir := range e.dirs {
		f, err := fs.Create(path.Join(dir, indexFile))
		if err != nil {
			return err
		}
		f.WriteString(e.header + "\n")
		e.barrels[dir].render(f)
		if dir == "" {
			data, err := baseFS.ReadFile("base/collection.ts")
			if err != nil {
				return err
			}
			f.WriteString("\n")
			f.Write(data)
		}
	}
	var roots []string
	for _, name := range root.sortedNamespaces() {
		if name != constantModule && name != edmModule {
			roots = append(roots, name)
		}
	}
	for _, sf := range e.schemas {
		f, err := fs.Create(sf.path)
		if err != nil {
			return err
		}
		f.WriteString(e.header + "\n")
		sf.render(f, roots)
	}
	return nil
}
