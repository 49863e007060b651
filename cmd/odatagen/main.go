// odatagen generates TypeScript or Go declarations from OData CSDL
// metadata documents.
//
//	odatagen generate --target ./odata ./metadata
//	odatagen generate --dialect go --package example.com/api/odata --target ./odata api.zip
//	odatagen validate ./metadata
//	odatagen dump --format yaml ./metadata/People.xml
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/syssam/odatagen/compiler"
	"github.com/syssam/odatagen/compiler/gen"
	"github.com/syssam/odatagen/compiler/load"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, load.Report(err))
		stop()
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	generate := func(cctx *cli.Context) error {
		cfg, inputs, err := resolve(cctx, stderr)
		if err != nil {
			return err
		}
		if !cctx.Bool("watch") {
			return compiler.Generate(cctx.Context, cfg, inputs...)
		}
		return compiler.Watch(cctx.Context, cfg, inputs, func(err error) {
			if err != nil {
				fmt.Fprintln(stderr, load.Report(err))
			}
		})
	}
	generateFlags := func() []cli.Flag {
		return append(commonFlags(), &cli.BoolFlag{
			Name:  "watch",
			Usage: "regenerate whenever an input changes",
		})
	}
	return &cli.App{
		Name:      "odatagen",
		Usage:     "generate code from OData CSDL metadata documents",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     generateFlags(),
		Action:    generate,
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate declarations into the target directory",
				ArgsUsage: "[inputs...]",
				Flags:     generateFlags(),
				Action:    generate,
			},
			{
				Name:      "validate",
				Usage:     "decode the inputs and render them in memory without writing",
				ArgsUsage: "[inputs...]",
				Flags:     commonFlags(),
				Action: func(cctx *cli.Context) error {
					cfg, inputs, err := resolve(cctx, stderr)
					if err != nil {
						return err
					}
					if err := compiler.Validate(cctx.Context, cfg, inputs...); err != nil {
						return err
					}
					fmt.Fprintln(stdout, "ok")
					return nil
				},
			},
			{
				Name:      "dump",
				Usage:     "print the merged domain model",
				ArgsUsage: "[inputs...]",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("output format, one of %v", gen.Formats),
						Value:   gen.FormatJSON,
					},
				),
				Action: func(cctx *cli.Context) error {
					cfg, inputs, err := resolve(cctx, stderr)
					if err != nil {
						return err
					}
					g, err := compiler.LoadGraph(cctx.Context, cfg, inputs...)
					if err != nil {
						return err
					}
					return gen.Encode(stdout, cctx.String("format"), g.Metadata)
				},
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file; flags override its settings",
			EnvVars: []string{"ODATAGEN_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "target",
			Aliases: []string{"o"},
			Usage:   "output directory, replaced as a whole",
		},
		&cli.StringFlag{
			Name:    "dialect",
			Aliases: []string{"d"},
			Usage:   fmt.Sprintf("output dialect, one of %v", compiler.Dialects()),
			Value:   "typescript",
		},
		&cli.StringFlag{
			Name:  "package",
			Usage: "import path of the output directory (go dialect)",
		},
		&cli.StringFlag{
			Name:  "header",
			Usage: "comment written at the top of every generated file",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of concurrent reads and writes (default GOMAXPROCS)",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error",
			Value:   "info",
			EnvVars: []string{"ODATAGEN_LOG_LEVEL"},
		},
	}
}

// resolve merges the configuration file, if any, with the flags and
// returns the config and the inputs to read. Relative inputs of the
// configuration file are resolved against its directory.
func resolve(cctx *cli.Context, stderr io.Writer) (*gen.Config, []string, error) {
	fc := &gen.FileConfig{}
	if path := cctx.String("config"); path != "" {
		var err error
		if fc, err = gen.LoadConfigFile(path); err != nil {
			return nil, nil, err
		}
		base := filepath.Dir(path)
		for i, in := range fc.Inputs {
			if !filepath.IsAbs(in) {
				fc.Inputs[i] = filepath.Join(base, in)
			}
		}
		if fc.Target != "" && !filepath.IsAbs(fc.Target) {
			fc.Target = filepath.Join(base, fc.Target)
		}
	}
	for name, dst := range map[string]*string{
		"target":    &fc.Target,
		"package":   &fc.Package,
		"header":    &fc.Header,
		"log-level": &fc.LogLevel,
		"dialect":   &fc.Dialect,
	} {
		if cctx.IsSet(name) || *dst == "" {
			*dst = cctx.String(name)
		}
	}
	if cctx.IsSet("workers") {
		fc.Workers = cctx.Int("workers")
	}
	inputs := fc.Inputs
	if cctx.Args().Present() {
		inputs = cctx.Args().Slice()
	}
	if len(inputs) == 0 {
		return nil, nil, gen.NewConfigError("Inputs", nil, "no inputs given")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(fc.LogLevel)); err != nil {
		return nil, nil, gen.NewConfigError("LogLevel", fc.LogLevel, err.Error())
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dialect, err := compiler.LookupDialect(fc.Dialect)
	if err != nil {
		return nil, nil, err
	}
	cfg := &gen.Config{}
	if err := cfg.ApplyAll(append(fc.Options(), gen.WithDialect(dialect), gen.WithLogger(logger))...); err != nil {
		return nil, nil, err
	}
	return cfg, inputs, nil
}
