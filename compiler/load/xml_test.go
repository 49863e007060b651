package load

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

const latinSchema = `<Schema Namespace="NS"><EntityType Name="Größe"/></Schema>`

func TestParseEncodings(t *testing.T) {
	t.Run("declared latin-1", func(t *testing.T) {
		doc := `<?xml version="1.0" encoding="ISO-8859-1"?>` + document(latinSchema)
		data, err := charmap.ISO8859_1.NewEncoder().String(doc)
		require.NoError(t, err)
		md, err := Read(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "Größe", md.Schemas[0].EntityTypes[0].Name)
	})

	t.Run("utf-16 with byte order mark", func(t *testing.T) {
		doc := `<?xml version="1.0" encoding="UTF-16"?>` + document(latinSchema)
		data, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewEncoder().String(doc)
		require.NoError(t, err)
		md, err := Read(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "Größe", md.Schemas[0].EntityTypes[0].Name)
	})

	t.Run("utf-8 byte order mark", func(t *testing.T) {
		md, err := Read(strings.NewReader("\ufeff" + document(latinSchema)))
		require.NoError(t, err)
		assert.Equal(t, "NS", md.Schemas[0].Namespace)
	})

	t.Run("unknown encoding", func(t *testing.T) {
		_, err := Parse([]byte(`<?xml version="1.0" encoding="x-klingon"?><Edmx/>`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "x-klingon")
	})
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`<Edmx><DataServices></Edmx>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse xml")
	_, ok := AsViolations(err)
	assert.False(t, ok)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("testdata/missing.xml")
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "testdata/missing.xml", fe.Path)
}

func TestReadFileViolations(t *testing.T) {
	path := t.TempDir() + "/bad.xml"
	require.NoError(t, writeTestFile(path, document(`<Schema Namespace="1NS"/>`)))
	_, err := ReadFile(path)
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, fe.Report(), "Decoding errors:")
}
