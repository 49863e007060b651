package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	for _, lit := range []string{"true", "false"} {
		t.Run(lit, func(t *testing.T) {
			b, err := ParseBool(lit)
			require.NoError(t, err)
			assert.Equal(t, lit, FormatBool(b))
		})
	}

	for _, in := range []string{"True", "FALSE", "1", "0", "", " true"} {
		t.Run("rejects "+in, func(t *testing.T) {
			_, err := ParseBool(in)
			var v *Violation
			require.ErrorAs(t, err, &v)
			assert.Equal(t, KindScalar, v.Kind)
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in        string
		want      int64
		canonical string
	}{
		{"0", 0, "0"},
		{"42", 42, "42"},
		{"-7", -7, "-7"},
		{"+7", 7, "7"},
		{"007", 7, "7"},
		{"9223372036854775807", 9223372036854775807, "9223372036854775807"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseInt(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.canonical, FormatInt(v))
		})
	}

	for _, in := range []string{"", "1.5", "0x10", "1e3", "--1", " 1", "9223372036854775808"} {
		t.Run("rejects "+in, func(t *testing.T) {
			_, err := ParseInt(in)
			var v *Violation
			require.ErrorAs(t, err, &v)
			assert.Equal(t, KindScalar, v.Kind)
		})
	}
}
