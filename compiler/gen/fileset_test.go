package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetCreate(t *testing.T) {
	fs := NewFileSet()

	f, err := fs.Create("People/Model/./Model-schema.ts")
	require.NoError(t, err)
	assert.Equal(t, "People/Model/Model-schema.ts", f.Path)

	_, err = fs.Create("People/Model/Model-schema.ts")
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))

	for _, bad := range []string{"", ".", "..", "../escape.ts", "/abs.ts", "a/../../b.ts"} {
		_, err := fs.Create(bad)
		assert.Error(t, err, bad)
	}

	got, ok := fs.Lookup("People/Model/Model-schema.ts")
	require.True(t, ok)
	assert.Same(t, f, got)
	_, ok = fs.Lookup("missing.ts")
	assert.False(t, ok)
	assert.Equal(t, 1, fs.Len())
}

func TestFileSetFilesSorted(t *testing.T) {
	fs := NewFileSet()
	for _, name := range []string{"index.ts", "Edm.ts", "People/index.ts", "Constant.ts"} {
		_, err := fs.Create(name)
		require.NoError(t, err)
	}
	var paths []string
	for _, f := range fs.Files() {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"Constant.ts", "Edm.ts", "People/index.ts", "index.ts"}, paths)
}

func TestFileSetWriteTo(t *testing.T) {
	fs := NewFileSet()
	a, err := fs.Create("a.txt")
	require.NoError(t, err)
	a.Printf("hello %s\n", "a")
	b, err := fs.Create("nested/deep/b.txt")
	require.NoError(t, err)
	b.WriteString("b")

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, fs.WriteTo(context.Background(), dir, 2))

	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello a\n", string(data))
	data, err = os.ReadFile(filepath.Join(dir, "nested", "deep", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}

func TestFileSetWriteToCanceled(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Create("a.txt")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = fs.WriteTo(ctx, t.TempDir(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
