package golang

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// goName returns the exported Go identifier of an EDM name.
func goName(name string) string {
	return identifier(inflect.Camelize(name), "X")
}

// paramName returns the Go parameter name of an EDM parameter. Keywords
// and the context parameter name get a trailing underscore.
func paramName(name string) string {
	if name == "" {
		return "p"
	}
	n := identifier(inflect.CamelizeDownFirst(name), "p")
	if token.IsKeyword(n) || n == "ctx" {
		n += "_"
	}
	return n
}

// pkgName returns the package name of a namespace segment: lower case
// letters and digits only.
func pkgName(segment string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(segment) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	n := identifier(b.String(), "ns")
	if token.IsKeyword(n) {
		n += "_"
	}
	return n
}

// identifier drops the characters that cannot appear in a Go identifier
// and prefixes names that would otherwise start with a digit.
func identifier(s, prefix string) string {
	s = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if s == "" || unicode.IsDigit(rune(s[0])) {
		s = prefix + s
	}
	return s
}
