package load

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"

	"aqwari.net/xml/xmltree"
	"golang.org/x/text/encoding/htmlindex"
	xunicode "golang.org/x/text/encoding/unicode"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16BEBOM = []byte{0xFE, 0xFF}
	utf16LEBOM = []byte{0xFF, 0xFE}

	// encodingDecl captures the encoding label of the XML declaration.
	encodingDecl = regexp.MustCompile(`^(\s*<\?xml[^>]*?\bencoding\s*=\s*["'])([A-Za-z0-9._:-]+)(["'])`)
)

// Parse parses an XML document into a generic element tree. Documents in
// a non UTF-8 encoding, either declared in the XML declaration or marked
// by a UTF-16 byte order mark, are transcoded first.
func Parse(data []byte) (*xmltree.Element, error) {
	data, err := toUTF8(data)
	if err != nil {
		return nil, err
	}
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	return root, nil
}

// Read parses and decodes the metadata document read from r.
func Read(r io.Reader) (*Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Decode(root)
}

// ReadFile parses and decodes the metadata document stored at path.
// Failures are wrapped in a *FileError.
func ReadFile(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer f.Close()
	md, err := Read(f)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return md, nil
}

func toUTF8(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return data[len(utf8BOM):], nil
	case bytes.HasPrefix(data, utf16BEBOM), bytes.HasPrefix(data, utf16LEBOM):
		out, err := xunicode.UTF16(xunicode.BigEndian, xunicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode utf-16 document: %w", err)
		}
		return relabel(out), nil
	}
	m := encodingDecl.FindSubmatch(data)
	if m == nil {
		return data, nil
	}
	label := string(m[2])
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported document encoding %q: %w", label, err)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return data, nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s document: %w", label, err)
	}
	return relabel(out), nil
}

// relabel rewrites the encoding label of a transcoded document so the XML
// decoder accepts it as UTF-8.
func relabel(data []byte) []byte {
	return encodingDecl.ReplaceAll(data, []byte("${1}UTF-8${3}"))
}
