package gen

import (
	"errors"
	"strings"
)

// recordingDialect writes one file per call and records the call order.
type recordingDialect struct {
	calls []string
	// failOn makes the named call ("base", "schema:<ns>", "finalize") fail.
	failOn string
	// failWith is returned by the failing call; a plain error by default.
	failWith error
}

func (d *recordingDialect) Name() string { return "recording" }

func (d *recordingDialect) NewEmitter(_ *Graph) Emitter {
	d.calls = nil
	return &recordingEmitter{d: d}
}

type recordingEmitter struct {
	d *recordingDialect
}

func (e *recordingEmitter) record(call string) error {
	e.d.calls = append(e.d.calls, call)
	if call == e.d.failOn {
		if e.d.failWith != nil {
			return e.d.failWith
		}
		return errors.New("emitter failure")
	}
	return nil
}

func (e *recordingEmitter) GenBase(fs *FileSet) error {
	if err := e.record("base"); err != nil {
		return err
	}
	f, err := fs.Create("base.txt")
	if err != nil {
		return err
	}
	f.Printf("base\n")
	return nil
}

func (e *recordingEmitter) GenSchema(fs *FileSet, s *Schema) error {
	if err := e.record("schema:" + s.Namespace); err != nil {
		return err
	}
	f, err := fs.Create(strings.ReplaceAll(s.Namespace, ".", "/") + "/schema.txt")
	if err != nil {
		return err
	}
	f.Printf("%s\n", s.Namespace)
	return nil
}

func (e *recordingEmitter) Finalize(fs *FileSet) error {
	if err := e.record("finalize"); err != nil {
		return err
	}
	f, err := fs.Create("index.txt")
	if err != nil {
		return err
	}
	f.Printf("%d\n", fs.Len())
	return nil
}

var _ Dialect = (*recordingDialect)(nil)
