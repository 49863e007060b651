package compiler

import (
	"archive/zip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// source is a single metadata document: a file on disk or a member of a
// zip archive.
type source struct {
	// name identifies the document in errors, e.g. "api.zip:People.xml".
	name string
	open func() (io.ReadCloser, error)
}

// sources is the expanded input list. Close releases the zip archives
// backing some of its members.
type sources struct {
	list    []source
	closers []io.Closer
}

func (s *sources) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func isMetadata(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xml")
}

func isArchive(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".zip")
}

// expandInputs turns files, directories and zip archives into a flat
// document list. Directories contribute every *.xml file below them and
// archives every *.xml member, both in lexical order. Files named
// explicitly are taken as is.
func expandInputs(paths []string) (*sources, error) {
	out := &sources{}
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			out.Close()
			return nil, err
		}
		switch {
		case st.IsDir():
			err = out.addDir(p)
		case isArchive(p):
			err = out.addArchive(p)
		default:
			out.addFile(p)
		}
		if err != nil {
			out.Close()
			return nil, err
		}
	}
	return out, nil
}

func (s *sources) addFile(path string) {
	s.list = append(s.list, source{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	})
}

func (s *sources) addDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isMetadata(path) {
			s.addFile(path)
		}
		return nil
	})
}

func (s *sources) addArchive(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, zr)
	members := slices.DeleteFunc(slices.Clone(zr.File), func(f *zip.File) bool {
		return f.FileInfo().IsDir() || !isMetadata(f.Name)
	})
	slices.SortFunc(members, func(a, b *zip.File) int { return strings.Compare(a.Name, b.Name) })
	for _, f := range members {
		s.list = append(s.list, source{
			name: path + ":" + f.Name,
			open: f.Open,
		})
	}
	return nil
}
