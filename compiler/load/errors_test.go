package load

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestViolationError(t *testing.T) {
	v := &Violation{Kind: KindLexical, Path: "Edmx/@Name", Expected: "SimpleIdentifier", Actual: `"1a"`}
	assert.Equal(t, `[lexical] Edmx/@Name: expected SimpleIdentifier, got "1a"`, v.Error())

	v = &Violation{Kind: KindScalar, Expected: "boolean literal"}
	assert.Equal(t, "[scalar] expected boolean literal", v.Error())
}

func TestViolationList(t *testing.T) {
	list := ViolationList{
		{Kind: KindShape, Path: "a", Expected: "x", Actual: "y"},
		{Kind: KindScalar, Path: "b", Expected: "x", Actual: "y"},
		{Kind: KindLexical, Path: "c", Expected: "x", Actual: "y"},
	}

	t.Run("compact error", func(t *testing.T) {
		assert.Equal(t, "[shape] a: expected x, got y (and 2 more)", list.Error())
		assert.Equal(t, list[0].Error(), list[:1].Error())
	})

	t.Run("report", func(t *testing.T) {
		lines := strings.Split(list.Report(), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "Decoding errors:", lines[0])
		assert.Equal(t, "  [lexical] c: expected x, got y", lines[3])
	})

	t.Run("sentinel", func(t *testing.T) {
		assert.ErrorIs(t, list, ErrInvalidDocument)
		wrapped := &FileError{Path: "f.xml", Err: list}
		assert.ErrorIs(t, wrapped, ErrInvalidDocument)
		got, ok := AsViolations(wrapped)
		require.True(t, ok)
		assert.Len(t, got, 3)
	})
}

func TestReport(t *testing.T) {
	list := ViolationList{{Kind: KindShape, Path: "p", Expected: "x", Actual: "y"}}
	joined := errors.Join(
		&FileError{Path: "a.xml", Err: list},
		&FileError{Path: "b.xml", Err: errors.New("boom")},
	)
	out := Report(joined)
	assert.Equal(t, "a.xml: Decoding errors:\n  [shape] p: expected x, got y\nb.xml: boom", out)
	assert.Empty(t, Report(nil))
	assert.Equal(t, "plain", Report(errors.New("plain")))
}
