package gen

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Generator runs a Dialect over a Graph and replaces the target directory
// with the result.
//
// The output is first written to a staging directory next to the target
// (<target>.<uuid>.tmp). Only when every file has been written is the
// previous target removed and the staging directory renamed in its place,
// so a failed run leaves the previous output untouched.
type Generator struct {
	graph   *Graph
	dialect Dialect
	workers int
	logger  *slog.Logger
}

// NewGenerator creates a Generator using the dialect, workers and logger
// of the graph config.
func NewGenerator(g *Graph) *Generator {
	return &Generator{
		graph:   g,
		dialect: g.Config.Dialect,
		workers: g.Config.Concurrency(),
		logger:  g.Config.Log(),
	}
}

// WithWorkers sets the number of parallel writers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithDialect overrides the dialect of the graph config.
func (g *Generator) WithDialect(d Dialect) *Generator {
	if d != nil {
		g.dialect = d
	}
	return g
}

// Build renders the graph into an in-memory FileSet without touching the
// file system. Schemas with nothing to emit are skipped.
func (g *Generator) Build() (*FileSet, error) {
	if g.dialect == nil {
		return nil, NewConfigError("Dialect", nil, "no dialect set: use WithDialect")
	}
	em := g.dialect.NewEmitter(g.graph)
	fs := NewFileSet()
	if err := em.GenBase(fs); err != nil {
		return nil, wrapPhase("base", err)
	}
	for _, s := range g.graph.Schemas {
		if s.Empty() {
			g.logger.Debug("skipping empty schema", "namespace", s.Namespace)
			continue
		}
		if err := em.GenSchema(fs, s); err != nil {
			return nil, wrapPhase("schema", err)
		}
	}
	if err := em.Finalize(fs); err != nil {
		return nil, wrapPhase("finalize", err)
	}
	return fs, nil
}

// wrapPhase attaches the phase to errors that are not already typed.
func wrapPhase(phase string, err error) error {
	var (
		schemaErr *SchemaError
		configErr *ConfigError
		genErr    *GenerationError
	)
	switch {
	case errors.As(err, &schemaErr), errors.As(err, &configErr):
		return err
	case errors.As(err, &genErr):
		if genErr.Phase == "" {
			genErr.Phase = phase
		}
		return err
	default:
		return NewGenerationError(phase, "", "", err)
	}
}

// Generate builds the file set and swaps it into the target directory.
func (g *Generator) Generate(ctx context.Context) error {
	target := g.graph.Config.Target
	if target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	start := time.Now()
	fs, err := g.Build()
	if err != nil {
		return err
	}
	if err := g.swap(ctx, fs, filepath.Clean(target)); err != nil {
		return err
	}
	g.logger.Info("generated",
		"dialect", g.dialect.Name(),
		"target", target,
		"files", fs.Len(),
		"duration", time.Since(start),
	)
	return nil
}

// swap writes fs to a staging directory and replaces target with it.
func (g *Generator) swap(ctx context.Context, fs *FileSet, target string) (err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return NewGenerationError("write", target, "create parent directory", err)
	}
	staging := target + "." + uuid.NewString() + ".tmp"
	defer func() {
		if err != nil {
			if rerr := os.RemoveAll(staging); rerr != nil {
				g.logger.Warn("removing staging directory", "dir", staging, "error", rerr)
			}
		}
	}()
	g.logger.Debug("writing staging directory", "dir", staging, "files", fs.Len())
	if err := fs.WriteTo(ctx, staging, g.workers); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(target); err != nil {
		return NewGenerationError("swap", target, "remove previous output", err)
	}
	if err := os.Rename(staging, target); err != nil {
		return NewGenerationError("swap", target, "rename staging directory", err)
	}
	return nil
}

// Generate is a convenience function running a Generator with the graph
// configuration.
//
//	cfg, _ := gen.NewConfig(gen.WithTarget("./build"), gen.WithDialect(typescript.Dialect{}))
//	graph, _ := gen.NewGraph(cfg, gen.NewMetadata(doc))
//	err := gen.Generate(ctx, graph)
func Generate(ctx context.Context, g *Graph) error {
	if g == nil || g.Config == nil {
		return NewConfigError("Config", nil, "missing config")
	}
	return NewGenerator(g).Generate(ctx)
}
