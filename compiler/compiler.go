// Package compiler loads OData CSDL metadata documents into a generation
// graph and runs the configured dialect over it.
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./odata"),
//	    gen.WithDialect(typescript.Dialect{}),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := compiler.Generate(ctx, cfg, "./metadata"); err != nil {
//	    fmt.Fprintln(os.Stderr, load.Report(err))
//	}
package compiler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/odatagen/compiler/gen"
	"github.com/syssam/odatagen/compiler/gen/golang"
	"github.com/syssam/odatagen/compiler/gen/typescript"
	"github.com/syssam/odatagen/compiler/load"
)

// dialects holds the dialects selectable by name.
var dialects = map[string]gen.Dialect{
	typescript.Dialect{}.Name(): typescript.Dialect{},
	golang.Dialect{}.Name():     golang.Dialect{},
}

// Dialects returns the names of the available dialects.
func Dialects() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupDialect returns the dialect registered under name.
func LookupDialect(name string) (gen.Dialect, error) {
	d, ok := dialects[name]
	if !ok {
		return nil, gen.NewConfigError("Dialect", name, fmt.Sprintf("unknown dialect, expected one of %v", Dialects()))
	}
	return d, nil
}

// Load reads and decodes the documents found in paths. Documents are
// decoded concurrently; every failing document is reported, each wrapped
// in a *load.FileError, and the failures are joined with errors.Join.
func Load(ctx context.Context, cfg *gen.Config, paths ...string) ([]*load.Metadata, error) {
	srcs, err := expandInputs(paths)
	if err != nil {
		return nil, err
	}
	defer srcs.Close()
	if len(srcs.list) == 0 {
		return nil, gen.NewConfigError("Inputs", paths, "no metadata documents found")
	}

	var (
		log  = cfg.Log()
		docs = make([]*load.Metadata, len(srcs.list))
		errs = make([]error, len(srcs.list))
		eg   errgroup.Group
	)
	eg.SetLimit(cfg.Concurrency())
	for i, src := range srcs.list {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			md, err := readSource(src)
			if err != nil {
				errs[i] = &load.FileError{Path: src.name, Err: err}
				return nil
			}
			log.Debug("decoded document", "input", src.name, "schemas", len(md.Schemas))
			docs[i] = md
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return docs, nil
}

func readSource(src source) (*load.Metadata, error) {
	rc, err := src.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return load.Read(rc)
}

// LoadGraph loads the documents found in paths and merges their schemas,
// in input order, into a graph.
func LoadGraph(ctx context.Context, cfg *gen.Config, paths ...string) (*gen.Graph, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "missing config")
	}
	start := time.Now()
	docs, err := Load(ctx, cfg, paths...)
	if err != nil {
		return nil, err
	}
	g, err := gen.FromDocuments(cfg, docs...)
	if err != nil {
		return nil, err
	}
	cfg.Log().Info("loaded metadata",
		"documents", len(docs),
		"schemas", len(g.Schemas),
		"duration", time.Since(start),
	)
	return g, nil
}

// Validate loads the documents found in paths and renders them in memory
// with the configured dialect, if any, without writing anything.
func Validate(ctx context.Context, cfg *gen.Config, paths ...string) error {
	g, err := LoadGraph(ctx, cfg, paths...)
	if err != nil {
		return err
	}
	if cfg.Dialect == nil {
		return nil
	}
	_, err = gen.NewGenerator(g).Build()
	return err
}

// Generate loads the documents found in paths and generates the target
// directory. Nothing is written unless every document decodes.
func Generate(ctx context.Context, cfg *gen.Config, paths ...string) error {
	g, err := LoadGraph(ctx, cfg, paths...)
	if err != nil {
		return err
	}
	return gen.Generate(ctx, g)
}
