package load

import (
	"regexp"
	"strings"
	"unicode"
)

// collectionRegexp matches the Collection(...) type wrapper.
var collectionRegexp = regexp.MustCompile(`^Collection\((.+)\)$`)

// IsSimpleIdentifier reports whether s is a CSDL simple identifier: a
// letter, letter number or underscore, followed by any number of letters,
// letter numbers, decimal digits, combining marks, connector punctuation
// or format characters.
func IsSimpleIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !identStart(r) {
				return false
			}
			continue
		}
		if !identPart(r) {
			return false
		}
	}
	return true
}

func identStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func identPart(r rune) bool {
	return identStart(r) || unicode.In(r, unicode.Nd, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Cf)
}

// IsQualifiedName reports whether every dot-separated segment of s is a
// simple identifier.
func IsQualifiedName(s string) bool {
	for _, seg := range strings.Split(s, ".") {
		if !IsSimpleIdentifier(seg) {
			return false
		}
	}
	return true
}

// ParseTypeRef parses a type attribute that is either a qualified name or
// a qualified name wrapped in Collection(...).
func ParseTypeRef(s string) (TypeRef, error) {
	ref := TypeRef{Name: s}
	if m := collectionRegexp.FindStringSubmatch(s); m != nil {
		ref = TypeRef{Name: m[1], IsCollection: true}
	}
	if !IsQualifiedName(ref.Name) {
		return TypeRef{}, &Violation{
			Kind:     KindTypeRef,
			Expected: "QualifiedName or Collection(QualifiedName)",
			Actual:   quote(s),
		}
	}
	return ref, nil
}
