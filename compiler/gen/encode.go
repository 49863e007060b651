package gen

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Formats supported by Encode.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// Formats lists the supported encoding formats.
var Formats = []string{FormatJSON, FormatYAML, FormatMsgpack}

// Encode writes the domain model to w in the given format. Actions and
// functions carry an explicit "kind" so the variant survives encoding.
func Encode(w io.Writer, format string, md *Metadata) error {
	doc := newDocument(md)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		enc.SetSortMapKeys(true)
		return enc.Encode(doc)
	default:
		return NewConfigError("Format", format, fmt.Sprintf("unsupported format; use one of %v", Formats))
	}
}

// Operation kinds used in encoded documents.
const (
	kindBound   = "bound"
	kindUnbound = "unbound"
)

type (
	document struct {
		Schemas []schemaDocument `json:"schemas" yaml:"schemas"`
	}

	schemaDocument struct {
		Namespace       string              `json:"namespace" yaml:"namespace"`
		EntityTypes     []*Entity           `json:"entityTypes" yaml:"entityTypes"`
		ComplexTypes    []*Entity           `json:"complexTypes" yaml:"complexTypes"`
		EnumTypes       []*Enum             `json:"enumTypes" yaml:"enumTypes"`
		Actions         []operationDocument `json:"actions" yaml:"actions"`
		Functions       []operationDocument `json:"functions" yaml:"functions"`
		EntityContainer *EntityContainer    `json:"entityContainer" yaml:"entityContainer"`
	}

	operationDocument struct {
		Kind       string       `json:"kind" yaml:"kind"`
		Name       string       `json:"name" yaml:"name"`
		BoundType  *TypeRef     `json:"boundType,omitempty" yaml:"boundType,omitempty"`
		Parameters []*Parameter `json:"parameters" yaml:"parameters"`
		ReturnType *TypeRef     `json:"returnType" yaml:"returnType"`
	}
)

func newDocument(md *Metadata) document {
	doc := document{Schemas: make([]schemaDocument, 0, len(md.Schemas))}
	for _, s := range md.Schemas {
		doc.Schemas = append(doc.Schemas, schemaDocument{
			Namespace:       s.Namespace,
			EntityTypes:     s.EntityTypes,
			ComplexTypes:    s.ComplexTypes,
			EnumTypes:       s.EnumTypes,
			Actions:         mapSlice(s.Actions, actionDocument),
			Functions:       mapSlice(s.Functions, functionDocument),
			EntityContainer: s.EntityContainer,
		})
	}
	return doc
}

func actionDocument(a Action) operationDocument {
	switch a := a.(type) {
	case *BoundAction:
		bound := a.BoundType
		return operationDocument{Kind: kindBound, Name: a.Name, BoundType: &bound, Parameters: a.Parameters, ReturnType: a.ReturnType}
	case *UnboundAction:
		return operationDocument{Kind: kindUnbound, Name: a.Name, Parameters: a.Parameters, ReturnType: a.ReturnType}
	default:
		panic(fmt.Sprintf("gen: unexpected action %T", a))
	}
}

func functionDocument(f Function) operationDocument {
	switch f := f.(type) {
	case *BoundFunction:
		bound, ret := f.BoundType, f.ReturnType
		return operationDocument{Kind: kindBound, Name: f.Name, BoundType: &bound, Parameters: f.Parameters, ReturnType: &ret}
	case *UnboundFunction:
		ret := f.ReturnType
		return operationDocument{Kind: kindUnbound, Name: f.Name, Parameters: f.Parameters, ReturnType: &ret}
	default:
		panic(fmt.Sprintf("gen: unexpected function %T", f))
	}
}
