package gen

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputConfig(t *testing.T) {
	t.Run("returns grouped output settings", func(t *testing.T) {
		c := &Config{
			Target:  "./build",
			Package: "github.com/test/project/build",
			Header:  "// Custom header",
		}

		output := c.Output()

		assert.Equal(t, "./build", output.Target)
		assert.Equal(t, "github.com/test/project/build", output.Package)
		assert.Equal(t, "// Custom header", output.Header)
	})

	t.Run("handles empty config", func(t *testing.T) {
		c := &Config{}

		output := c.Output()

		assert.Empty(t, output.Target)
		assert.Empty(t, output.Package)
		assert.Empty(t, output.Header)
	})
}

func TestConfigDefaults(t *testing.T) {
	t.Run("concurrency", func(t *testing.T) {
		assert.Equal(t, runtime.GOMAXPROCS(0), (&Config{}).Concurrency())
		assert.Equal(t, runtime.GOMAXPROCS(0), (*Config)(nil).Concurrency())
		assert.Equal(t, 3, (&Config{Workers: 3}).Concurrency())
	})

	t.Run("logger", func(t *testing.T) {
		assert.Equal(t, slog.Default(), (&Config{}).Log())
		l := slog.New(slog.NewTextHandler(os.Stderr, nil))
		assert.Equal(t, l, (&Config{Logger: l}).Log())
	})
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads all keys", func(t *testing.T) {
		path := filepath.Join(dir, "odatagen.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`inputs:
  - metadata/people.xml
  - metadata/extra
target: build
dialect: go
package: example.com/app/build
header: "// generated"
workers: 2
logLevel: debug
`), 0o644))

		fc, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"metadata/people.xml", "metadata/extra"}, fc.Inputs)
		assert.Equal(t, "go", fc.Dialect)
		assert.Equal(t, "debug", fc.LogLevel)

		c, err := NewConfig(fc.Options()...)
		require.NoError(t, err)
		assert.Equal(t, "build", c.Target)
		assert.Equal(t, "example.com/app/build", c.Package)
		assert.Equal(t, "// generated", c.Header)
		assert.Equal(t, 2, c.Workers)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("target: build\ntargt: typo\n"), 0o644))
		_, err := LoadConfigFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "targt")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("zero values produce no options", func(t *testing.T) {
		assert.Empty(t, (&FileConfig{}).Options())
	})
}
