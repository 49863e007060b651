package load

import (
	"regexp"
	"strconv"
)

var integerRegexp = regexp.MustCompile(`^[+-]?\d+$`)

// ParseBool decodes the attribute literals "true" and "false".
// Any other spelling, including "True" or "1", is rejected.
func ParseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, &Violation{Kind: KindScalar, Expected: `boolean "true" or "false"`, Actual: quote(s)}
	}
}

// FormatBool encodes b as an attribute literal.
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ParseInt decodes an optionally signed decimal integer attribute.
// Values outside the int64 range are rejected.
func ParseInt(s string) (int64, error) {
	if !integerRegexp.MatchString(s) {
		return 0, &Violation{Kind: KindScalar, Expected: "integer", Actual: quote(s)}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &Violation{Kind: KindScalar, Expected: "64-bit integer", Actual: quote(s)}
	}
	return v, nil
}

// FormatInt encodes v in canonical decimal form. A leading "+" or
// redundant zeros accepted by ParseInt are not preserved.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
