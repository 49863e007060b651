package gen

// Dialect renders the domain model into source files of one target
// language. Dialects live in their own packages and are set on the
// Config to avoid import cycles:
//
//	import "github.com/syssam/odatagen/compiler/gen/typescript"
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./build"),
//	    gen.WithDialect(typescript.Dialect{}),
//	)
//
// A Dialect is stateless; every generation run asks it for a fresh
// Emitter bound to the graph being generated.
type Dialect interface {
	// Name returns the dialect name (e.g., "typescript", "go").
	Name() string
	// NewEmitter returns an emitter for a single generation run.
	NewEmitter(g *Graph) Emitter
}

// Emitter fills a FileSet for one generation run. The Generator calls
// GenBase once, GenSchema once per non-empty schema in document order,
// and Finalize last. Calls are sequential, so an Emitter may keep state
// between them (such as index files completed in Finalize).
type Emitter interface {
	// GenBase adds the files that do not depend on any schema.
	GenBase(fs *FileSet) error
	// GenSchema adds the files declaring the given schema.
	GenSchema(fs *FileSet, s *Schema) error
	// Finalize adds the files that depend on every schema.
	Finalize(fs *FileSet) error
}
