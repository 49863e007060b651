package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// File is a generated file held in memory until its FileSet is written.
type File struct {
	// Path is slash separated and relative to the output directory.
	Path string
	bytes.Buffer
}

// Printf appends formatted text to the file.
func (f *File) Printf(format string, args ...any) {
	fmt.Fprintf(&f.Buffer, format, args...)
}

// FileSet is the in-memory output of a generation run. It is not safe for
// concurrent modification.
type FileSet struct {
	files map[string]*File
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{files: make(map[string]*File)}
}

// cleanPath validates a relative output path.
func cleanPath(name string) (string, error) {
	p := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if name == "" || p == "." || path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
		return "", NewGenerationError("", name, "invalid output path", nil)
	}
	return p, nil
}

// Create adds a new empty file. Creating the same path twice is an error.
func (fs *FileSet) Create(name string) (*File, error) {
	p, err := cleanPath(name)
	if err != nil {
		return nil, err
	}
	if _, ok := fs.files[p]; ok {
		return nil, NewGenerationError("", p, "file already exists", nil)
	}
	f := &File{Path: p}
	fs.files[p] = f
	return f, nil
}

// Lookup returns the file stored at name.
func (fs *FileSet) Lookup(name string) (*File, bool) {
	p, err := cleanPath(name)
	if err != nil {
		return nil, false
	}
	f, ok := fs.files[p]
	return f, ok
}

// Len returns the number of files.
func (fs *FileSet) Len() int { return len(fs.files) }

// Files returns the files sorted by path.
func (fs *FileSet) Files() []*File {
	files := make([]*File, 0, len(fs.files))
	for _, f := range fs.files {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *File) int { return strings.Compare(a.Path, b.Path) })
	return files
}

// WriteTo writes every file below dir using up to workers goroutines.
func (fs *FileSet) WriteTo(ctx context.Context, dir string, workers int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewGenerationError("write", dir, "create output directory", err)
	}
	errg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		errg.SetLimit(workers)
	}
	for _, f := range fs.Files() {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(dir, f)
		})
	}
	return errg.Wait()
}

// writeFile writes a single file below dir.
func writeFile(dir string, f *File) error {
	full := filepath.Join(dir, filepath.FromSlash(f.Path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return NewGenerationError("write", f.Path, "create directory", err)
	}
	if err := os.WriteFile(full, f.Bytes(), 0o644); err != nil {
		return NewGenerationError("write", f.Path, "", err)
	}
	return nil
}
