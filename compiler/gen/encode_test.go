package gen

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// encoded is the subset of an encoded document inspected by the tests.
type encoded struct {
	Schemas []struct {
		Namespace string `json:"namespace" yaml:"namespace"`
		Functions []struct {
			Kind      string         `json:"kind" yaml:"kind"`
			Name      string         `json:"name" yaml:"name"`
			BoundType map[string]any `json:"boundType" yaml:"boundType"`
		} `json:"functions" yaml:"functions"`
		EnumTypes []struct {
			Members []struct {
				Name  string `json:"name" yaml:"name"`
				Value int64  `json:"value" yaml:"value"`
			} `json:"members" yaml:"members"`
		} `json:"enumTypes" yaml:"enumTypes"`
	} `json:"schemas" yaml:"schemas"`
}

func TestEncode(t *testing.T) {
	md := NewMetadata(loadFixture(t))
	decoders := map[string]func([]byte, any) error{
		FormatJSON: json.Unmarshal,
		FormatYAML: yaml.Unmarshal,
		FormatMsgpack: func(data []byte, v any) error {
			dec := msgpack.NewDecoder(bytes.NewReader(data))
			dec.SetCustomStructTag("json")
			return dec.Decode(v)
		},
	}
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, md))

			var doc encoded
			require.NoError(t, decoders[format](buf.Bytes(), &doc))
			require.Len(t, doc.Schemas, 2)
			s := doc.Schemas[0]
			assert.Equal(t, "People.Model", s.Namespace)
			require.Len(t, s.Functions, 2)
			assert.Equal(t, "bound", s.Functions[0].Kind)
			assert.Equal(t, "People.Model.Person", s.Functions[0].BoundType["type"])
			assert.Equal(t, "unbound", s.Functions[1].Kind)
			assert.Nil(t, s.Functions[1].BoundType)
			require.Len(t, s.EnumTypes, 1)
			var values []int64
			for _, m := range s.EnumTypes[0].Members {
				values = append(values, m.Value)
			}
			assert.Equal(t, []int64{0, 5, 2}, values)
		})
	}
}

func TestEncodeFlattensTypeRef(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, &Metadata{Schemas: []*Schema{{
		Namespace: "NS",
		EntityTypes: []*Entity{{
			Name:       "E",
			Properties: []*Property{{Name: "P", TypeRef: TypeRef{Type: "Edm.String", IsNullable: true}}},
		}},
	}}}))
	assert.Contains(t, buf.String(), `"name": "P"`)
	assert.Contains(t, buf.String(), `"type": "Edm.String"`)
	assert.NotContains(t, buf.String(), "TypeRef")
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, "xml", &Metadata{})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}
