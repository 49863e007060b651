package load

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// document wraps schema bodies in the Edmx/DataServices envelope.
func document(schemas ...string) string {
	var b strings.Builder
	b.WriteString(`<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx"><edmx:DataServices>`)
	for _, s := range schemas {
		b.WriteString(s)
	}
	b.WriteString(`</edmx:DataServices></edmx:Edmx>`)
	return b.String()
}

func decodeString(t *testing.T, doc string) (*Metadata, error) {
	t.Helper()
	root, err := Parse([]byte(doc))
	require.NoError(t, err)
	return Decode(root)
}

func requireViolations(t *testing.T, err error) ViolationList {
	t.Helper()
	require.Error(t, err)
	list, ok := AsViolations(err)
	require.True(t, ok, "expected a ViolationList, got %T", err)
	return list
}

func findViolation(list ViolationList, path string) *Violation {
	for i := range list {
		if list[i].Path == path {
			return &list[i]
		}
	}
	return nil
}

func TestDecodeFixture(t *testing.T) {
	md, err := ReadFile(filepath.Join("testdata", "people.xml"))
	require.NoError(t, err)
	require.Len(t, md.Schemas, 2)

	s := md.Schemas[0]
	assert.Equal(t, "People.Model", s.Namespace)
	require.Len(t, s.EnumTypes, 1)
	require.Len(t, s.EnumTypes[0].Members, 3)
	assert.Nil(t, s.EnumTypes[0].Members[0].Value)
	require.NotNil(t, s.EnumTypes[0].Members[1].Value)
	assert.Equal(t, int64(5), *s.EnumTypes[0].Members[1].Value)

	require.Len(t, s.ComplexTypes, 1)
	tags := s.ComplexTypes[0].Properties[1]
	assert.Equal(t, TypeRef{Name: "Edm.String", IsCollection: true}, tags.Type)
	require.NotNil(t, tags.Nullable)
	assert.False(t, *tags.Nullable)

	require.Len(t, s.EntityTypes, 2)
	person := s.EntityTypes[0]
	assert.Equal(t, "Person", person.Name)
	assert.Len(t, person.Properties, 3)
	assert.Len(t, person.NavigationProperties, 2)
	assert.Nil(t, person.Properties[1].Nullable)

	require.Len(t, s.Functions, 2)
	assert.True(t, s.Functions[0].IsBound)
	assert.Len(t, s.Functions[0].Parameters, 1)
	require.NotNil(t, s.Functions[0].ReturnType)
	assert.False(t, s.Functions[1].IsBound)
	assert.Len(t, s.Functions[1].Parameters, 2)

	require.Len(t, s.Actions, 2)
	assert.True(t, s.Actions[0].IsBound)
	assert.Nil(t, s.Actions[0].ReturnType)
	assert.False(t, s.Actions[1].IsBound)
	assert.Empty(t, s.Actions[1].Parameters)

	require.NotNil(t, s.EntityContainer)
	assert.Equal(t, "Container", s.EntityContainer.Name)
	assert.Len(t, s.EntityContainer.EntitySets, 2)
	assert.Equal(t, "People.Model.GetNearestAirport", s.EntityContainer.FunctionImports[0].Function)
	assert.Equal(t, "People.Model.ResetDataSource", s.EntityContainer.ActionImports[0].Action)

	empty := md.Schemas[1]
	assert.Equal(t, "People.Empty", empty.Namespace)
	assert.Nil(t, empty.EntityContainer)
}

func TestDecodeIdempotent(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "people.xml"))
	require.NoError(t, err)
	first, err := decodeString(t, string(data))
	require.NoError(t, err)
	second, err := decodeString(t, string(data))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeOperations(t *testing.T) {
	t.Run("bound action without parameters", func(t *testing.T) {
		_, err := decodeString(t, document(`<Schema Namespace="NS"><Action Name="Act" IsBound="true"/></Schema>`))
		list := requireViolations(t, err)
		v := findViolation(list, "Edmx/DataServices[0]/Schema[0]/Action[0]/Parameter")
		require.NotNil(t, v, list.Report())
		assert.Equal(t, KindShape, v.Kind)
		assert.Len(t, list, 1)
	})

	t.Run("bound function without parameters", func(t *testing.T) {
		_, err := decodeString(t, document(`<Schema Namespace="NS"><Function Name="F" IsBound="true"><ReturnType Type="Edm.String"/></Function></Schema>`))
		list := requireViolations(t, err)
		assert.NotNil(t, findViolation(list, "Edmx/DataServices[0]/Schema[0]/Function[0]/Parameter"), list.Report())
	})

	t.Run("function without return type", func(t *testing.T) {
		_, err := decodeString(t, document(`<Schema Namespace="NS"><Function Name="F"/></Schema>`))
		list := requireViolations(t, err)
		v := findViolation(list, "Edmx/DataServices[0]/Schema[0]/Function[0]/ReturnType")
		require.NotNil(t, v, list.Report())
		assert.Equal(t, "exactly one element", v.Expected)
	})

	t.Run("action with two return types", func(t *testing.T) {
		_, err := decodeString(t, document(`<Schema Namespace="NS"><Action Name="A"><ReturnType Type="Edm.String"/><ReturnType Type="Edm.Int32"/></Action></Schema>`))
		list := requireViolations(t, err)
		assert.NotNil(t, findViolation(list, "Edmx/DataServices[0]/Schema[0]/Action[0]/ReturnType"), list.Report())
	})

	t.Run("explicit unbound", func(t *testing.T) {
		md, err := decodeString(t, document(`<Schema Namespace="NS"><Action Name="A" IsBound="false"><Parameter Name="x" Type="Edm.String"/></Action></Schema>`))
		require.NoError(t, err)
		a := md.Schemas[0].Actions[0]
		assert.False(t, a.IsBound)
		assert.Len(t, a.Parameters, 1)
	})

	t.Run("bound with parameters", func(t *testing.T) {
		md, err := decodeString(t, document(`<Schema Namespace="NS"><Function Name="F" IsBound="true"><Parameter Name="bindingParam" Type="NS.Entity"/><Parameter Name="x" Type="Edm.String"/><ReturnType Type="Edm.Int32"/></Function></Schema>`))
		require.NoError(t, err)
		f := md.Schemas[0].Functions[0]
		assert.True(t, f.IsBound)
		assert.Len(t, f.Parameters, 2)
	})

	t.Run("invalid IsBound literal", func(t *testing.T) {
		_, err := decodeString(t, document(`<Schema Namespace="NS"><Action Name="A" IsBound="True"><Parameter Name="x" Type="NS.E"/></Action></Schema>`))
		list := requireViolations(t, err)
		v := findViolation(list, "Edmx/DataServices[0]/Schema[0]/Action[0]/@IsBound")
		require.NotNil(t, v, list.Report())
		assert.Equal(t, KindScalar, v.Kind)
		assert.Len(t, list, 1)
	})

	t.Run("unbound branch errors are reported once", func(t *testing.T) {
		_, err := decodeString(t, document(`<Schema Namespace="NS"><Action Name="A"><Parameter Name="1x" Type="Edm.String"/></Action></Schema>`))
		list := requireViolations(t, err)
		require.Len(t, list, 1, list.Report())
		assert.Equal(t, KindLexical, list[0].Kind)
		assert.Equal(t, "Edmx/DataServices[0]/Schema[0]/Action[0]/Parameter[0]/@Name", list[0].Path)
	})
}

func TestDecodeShape(t *testing.T) {
	t.Run("two entity containers", func(t *testing.T) {
		_, err := decodeString(t, document(`<Schema Namespace="NS"><EntityContainer Name="A"/><EntityContainer Name="B"/></Schema>`))
		list := requireViolations(t, err)
		v := findViolation(list, "Edmx/DataServices[0]/Schema[0]/EntityContainer")
		require.NotNil(t, v, list.Report())
		assert.Equal(t, "2 elements", v.Actual)
	})

	t.Run("wrong root", func(t *testing.T) {
		_, err := decodeString(t, `<Schema Namespace="NS"/>`)
		list := requireViolations(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Schema", list[0].Path)
	})

	t.Run("missing data services", func(t *testing.T) {
		_, err := decodeString(t, `<Edmx/>`)
		list := requireViolations(t, err)
		assert.NotNil(t, findViolation(list, "Edmx/DataServices"))
	})

	t.Run("no schema", func(t *testing.T) {
		_, err := decodeString(t, document())
		list := requireViolations(t, err)
		assert.NotNil(t, findViolation(list, "Edmx/DataServices[0]/Schema"))
	})

	t.Run("missing required attributes", func(t *testing.T) {
		_, err := decodeString(t, document(`<Schema><EntityType><Property Name="P"/></EntityType></Schema>`))
		list := requireViolations(t, err)
		for _, path := range []string{
			"Edmx/DataServices[0]/Schema[0]/@Namespace",
			"Edmx/DataServices[0]/Schema[0]/EntityType[0]/@Name",
			"Edmx/DataServices[0]/Schema[0]/EntityType[0]/Property[0]/@Type",
		} {
			v := findViolation(list, path)
			if assert.NotNil(t, v, path) {
				assert.Equal(t, KindShape, v.Kind)
				assert.Equal(t, "missing", v.Actual)
			}
		}
	})
}

func TestDecodeAggregatesViolations(t *testing.T) {
	_, err := decodeString(t, document(`<Schema Namespace="NS..Bad">
		<EntityType Name="1Bad">
			<Property Name="P" Type="Collection(NS..T)" Nullable="yes"/>
		</EntityType>
		<EnumType Name="E"><Member Name="A" Value="1.5"/></EnumType>
		<EntityContainer Name="C"><EntitySet Name="S" EntityType="NS.Bad."/></EntityContainer>
	</Schema>`))
	list := requireViolations(t, err)
	base := "Edmx/DataServices[0]/Schema[0]"
	want := map[string]Kind{
		base + "/@Namespace":                                  KindLexical,
		base + "/EntityType[0]/@Name":                         KindLexical,
		base + "/EntityType[0]/Property[0]/@Type":             KindTypeRef,
		base + "/EntityType[0]/Property[0]/@Nullable":         KindScalar,
		base + "/EnumType[0]/Member[0]/@Value":                KindScalar,
		base + "/EntityContainer[0]/EntitySet[0]/@EntityType": KindLexical,
	}
	assert.Len(t, list, len(want), list.Report())
	for path, kind := range want {
		v := findViolation(list, path)
		if assert.NotNil(t, v, path) {
			assert.Equal(t, kind, v.Kind, path)
		}
	}
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDecodeIgnoresUnknown(t *testing.T) {
	md, err := decodeString(t, document(`<Schema Namespace="NS" Alias="self">
		<Annotations Target="NS.E"/>
		<EntityType Name="E" OpenType="true"><Key><PropertyRef Name="Id"/></Key><Property Name="Id" Type="Edm.Int32" MaxLength="10"/></EntityType>
	</Schema>`))
	require.NoError(t, err)
	require.Len(t, md.Schemas[0].EntityTypes, 1)
	assert.Len(t, md.Schemas[0].EntityTypes[0].Properties, 1)
}

func TestDecodeNil(t *testing.T) {
	_, err := Decode(nil)
	requireViolations(t, err)
}
