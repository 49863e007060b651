package load

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a decoding violation.
type Kind string

const (
	// KindLexical indicates a name or qualified name failed its grammar check.
	KindLexical Kind = "lexical"
	// KindTypeRef indicates a type attribute is neither a qualified name
	// nor a Collection(...) wrapper around one.
	KindTypeRef Kind = "type-reference"
	// KindScalar indicates a boolean or integer attribute holds a value
	// outside its literal set.
	KindScalar Kind = "scalar"
	// KindShape indicates a missing attribute or element, a cardinality
	// mismatch, or an element matching no variant of a tagged union.
	KindShape Kind = "shape"
)

// ErrInvalidDocument is matched by every ViolationList.
var ErrInvalidDocument = errors.New("odatagen: invalid metadata document")

// Violation describes a single decoding failure. Path is the element and
// attribute chain leading to the offending value, for example
// "Edmx/DataServices[0]/Schema[0]/EntityType[2]/@Name".
type Violation struct {
	Kind     Kind
	Path     string
	Expected string
	Actual   string
}

// Error formats the violation on a single line.
func (v *Violation) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", v.Kind)
	if v.Path != "" {
		b.WriteString(" ")
		b.WriteString(v.Path)
		b.WriteString(":")
	}
	if v.Expected != "" {
		b.WriteString(" expected ")
		b.WriteString(v.Expected)
	}
	if v.Actual != "" {
		b.WriteString(", got ")
		b.WriteString(v.Actual)
	}
	return b.String()
}

// ViolationList is an error holding every violation found while decoding
// a document.
type ViolationList []Violation

// Error returns a compact summary of the violations.
func (l ViolationList) Error() string {
	switch len(l) {
	case 0:
		return "no violations"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Is reports whether target is ErrInvalidDocument.
func (l ViolationList) Is(target error) bool {
	return target == ErrInvalidDocument
}

// Report renders every violation, one per line, under a header line.
func (l ViolationList) Report() string {
	var b strings.Builder
	b.WriteString("Decoding errors:")
	for i := range l {
		b.WriteString("\n  ")
		b.WriteString(l[i].Error())
	}
	return b.String()
}

// AsViolations extracts the violations wrapped by err, if any.
func AsViolations(err error) (ViolationList, bool) {
	var list ViolationList
	if errors.As(err, &list) {
		return list, true
	}
	return nil, false
}

// FileError associates a read or decode failure with its input.
type FileError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Report renders the failure with the full violation report when the
// underlying error is a ViolationList.
func (e *FileError) Report() string {
	if list, ok := AsViolations(e.Err); ok {
		return e.Path + ": " + list.Report()
	}
	return e.Error()
}

// Report renders err for display. Violation lists, possibly wrapped in
// FileErrors or joined together, are expanded line by line.
func Report(err error) string {
	if err == nil {
		return ""
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var lines []string
		for _, e := range joined.Unwrap() {
			lines = append(lines, Report(e))
		}
		return strings.Join(lines, "\n")
	}
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Report()
	}
	if list, ok := AsViolations(err); ok {
		return list.Report()
	}
	return err.Error()
}

func quote(s string) string {
	return strconv.Quote(s)
}
