package gen

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the global codegen configuration shared by the loader,
// the generator and the dialects.
type Config struct {
	// Target is the output directory. It is replaced as a whole on every
	// successful run.
	Target string `json:"target,omitempty"`
	// Package is the import path matching Target. The Go dialect uses it
	// to reference the packages it generates for other namespaces.
	Package string `json:"package,omitempty"`
	// Header is written at the top of every generated file. Each dialect
	// has its own default.
	Header string `json:"header,omitempty"`
	// Workers bounds the number of concurrent file reads and writes.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int `json:"workers,omitempty"`
	// Dialect renders the model into files.
	Dialect Dialect `json:"-"`
	// Logger receives progress and debug records. Nil means slog.Default().
	Logger *slog.Logger `json:"-"`
}

// OutputConfig groups the settings controlling where and how files are
// written.
type OutputConfig struct {
	Target  string
	Package string
	Header  string
}

// Output returns the output settings.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Target:  c.Target,
		Package: c.Package,
		Header:  c.Header,
	}
}

// Concurrency returns the effective number of workers.
func (c *Config) Concurrency() int {
	if c == nil || c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// Log returns the effective logger.
func (c *Config) Log() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// FileConfig is the on-disk form of the configuration, typically stored
// as odatagen.yaml next to the metadata documents.
type FileConfig struct {
	// Inputs lists metadata files, directories or zip archives.
	Inputs []string `yaml:"inputs"`
	Target string   `yaml:"target"`
	// Dialect names the output dialect, "typescript" or "go".
	Dialect  string `yaml:"dialect"`
	Package  string `yaml:"package"`
	Header   string `yaml:"header"`
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"logLevel"`
}

// LoadConfigFile reads a YAML configuration file. Unknown keys are
// rejected.
func LoadConfigFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	fc := &FileConfig{}
	if err := dec.Decode(fc); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return fc, nil
}

// Options converts the file settings into options. Zero values are
// skipped; the dialect is resolved by the caller.
func (fc *FileConfig) Options() []Option {
	var opts []Option
	if fc.Target != "" {
		opts = append(opts, WithTarget(fc.Target))
	}
	if fc.Package != "" {
		opts = append(opts, WithPackage(fc.Package))
	}
	if fc.Header != "" {
		opts = append(opts, WithHeader(fc.Header))
	}
	if fc.Workers != 0 {
		opts = append(opts, WithWorkers(fc.Workers))
	}
	return opts
}
