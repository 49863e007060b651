package gen

// The following types form the domain model consumed by the dialects.
// Every value is built once by NewMetadata and never mutated afterwards;
// optional lists are empty, never nil.
type (
	// TypeRef is a resolved type reference: the element type name with the
	// Collection(...) wrapper removed, and the nullability defaulted.
	TypeRef struct {
		// Type holds the qualified element type name, e.g. "Edm.String".
		Type string `json:"type" yaml:"type"`
		// IsCollection reports that the source type was Collection(Type).
		IsCollection bool `json:"isCollection" yaml:"isCollection"`
		// IsNullable defaults to true when the source omits Nullable.
		IsNullable bool `json:"isNullable" yaml:"isNullable"`
	}

	// Property is a structural or navigation property of an Entity.
	Property struct {
		Name    string `json:"name" yaml:"name"`
		TypeRef `yaml:",inline"`
	}

	// Parameter is an action or function parameter.
	Parameter struct {
		Name    string `json:"name" yaml:"name"`
		TypeRef `yaml:",inline"`
	}

	// Entity holds an entity type or a complex type.
	Entity struct {
		Name                 string      `json:"name" yaml:"name"`
		Properties           []*Property `json:"properties" yaml:"properties"`
		NavigationProperties []*Property `json:"navigationProperties" yaml:"navigationProperties"`
	}

	// EnumMember is a member of an Enum. Value is the declared value, or
	// the zero-based position of the member when none was declared.
	EnumMember struct {
		Name  string `json:"name" yaml:"name"`
		Value int64  `json:"value" yaml:"value"`
	}

	// Enum is an enumeration type.
	Enum struct {
		Name    string        `json:"name" yaml:"name"`
		Members []*EnumMember `json:"members" yaml:"members"`
	}

	// Operation holds the part shared by every action and function variant.
	Operation struct {
		Name string `json:"name" yaml:"name"`
		// Parameters excludes the binding parameter of bound operations.
		Parameters []*Parameter `json:"parameters" yaml:"parameters"`
	}

	// UnboundAction is an action invoked without a receiver.
	UnboundAction struct {
		Operation
		// ReturnType is nil for actions returning nothing.
		ReturnType *TypeRef
	}

	// BoundAction is an action invoked on an instance (or collection) of
	// its BoundType.
	BoundAction struct {
		Operation
		BoundType  TypeRef
		ReturnType *TypeRef
	}

	// UnboundFunction is a function invoked without a receiver.
	UnboundFunction struct {
		Operation
		ReturnType TypeRef
	}

	// BoundFunction is a function invoked on an instance (or collection)
	// of its BoundType.
	BoundFunction struct {
		Operation
		BoundType  TypeRef
		ReturnType TypeRef
	}

	// EntitySet exposes a collection of Type. Type is an unchecked
	// qualified name; resolution is left to the dialects.
	EntitySet struct {
		Name string `json:"name" yaml:"name"`
		Type string `json:"type" yaml:"type"`
	}

	// ActionImport exposes an unbound action in the entity container.
	ActionImport struct {
		Name       string `json:"name" yaml:"name"`
		ActionName string `json:"actionName" yaml:"actionName"`
	}

	// FunctionImport exposes an unbound function in the entity container.
	FunctionImport struct {
		Name         string `json:"name" yaml:"name"`
		FunctionName string `json:"functionName" yaml:"functionName"`
	}

	// EntityContainer holds the entry points of a service.
	EntityContainer struct {
		Name            string            `json:"name" yaml:"name"`
		EntitySets      []*EntitySet      `json:"entitySets" yaml:"entitySets"`
		ActionImports   []*ActionImport   `json:"actionImports" yaml:"actionImports"`
		FunctionImports []*FunctionImport `json:"functionImports" yaml:"functionImports"`
	}

	// Schema holds the declarations of a single namespace.
	Schema struct {
		Namespace    string    `json:"namespace" yaml:"namespace"`
		EntityTypes  []*Entity `json:"entityTypes" yaml:"entityTypes"`
		ComplexTypes []*Entity `json:"complexTypes" yaml:"complexTypes"`
		EnumTypes    []*Enum   `json:"enumTypes" yaml:"enumTypes"`
		Actions      []Action
		Functions    []Function
		// EntityContainer is nil when the schema declares none.
		EntityContainer *EntityContainer `json:"entityContainer" yaml:"entityContainer"`
	}

	// Metadata is the root of the domain model.
	Metadata struct {
		Schemas []*Schema `json:"schemas" yaml:"schemas"`
	}
)

// Action is one of *UnboundAction or *BoundAction.
type Action interface {
	Signature() *Operation
	action()
}

// Function is one of *UnboundFunction or *BoundFunction.
type Function interface {
	Signature() *Operation
	function()
}

// Signature returns the name and parameters of the operation.
func (o *Operation) Signature() *Operation { return o }

func (*UnboundAction) action()     {}
func (*BoundAction) action()       {}
func (*UnboundFunction) function() {}
func (*BoundFunction) function()   {}

// Empty reports whether the schema declares nothing a dialect can emit.
func (s *Schema) Empty() bool {
	return len(s.EntityTypes) == 0 && len(s.ComplexTypes) == 0 && len(s.EnumTypes) == 0 &&
		len(s.Actions) == 0 && len(s.Functions) == 0 && s.EntityContainer == nil
}

// Entities returns the complex types followed by the entity types.
func (s *Schema) Entities() []*Entity {
	all := make([]*Entity, 0, len(s.ComplexTypes)+len(s.EntityTypes))
	all = append(all, s.ComplexTypes...)
	return append(all, s.EntityTypes...)
}

// Entity returns the entity or complex type with the given local name.
func (s *Schema) Entity(name string) (*Entity, bool) {
	for _, e := range s.Entities() {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Enum returns the enum type with the given local name.
func (s *Schema) Enum(name string) (*Enum, bool) {
	for _, e := range s.EnumTypes {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Function returns the function with the given local name. Overloads are
// not distinguished; the first declaration wins.
func (s *Schema) Function(name string) (Function, bool) {
	for _, f := range s.Functions {
		if f.Signature().Name == name {
			return f, true
		}
	}
	return nil, false
}

// Action returns the action with the given local name.
func (s *Schema) Action(name string) (Action, bool) {
	for _, a := range s.Actions {
		if a.Signature().Name == name {
			return a, true
		}
	}
	return nil, false
}

// BoundFunctions groups the bound functions of the schema by the qualified
// name of their binding type, in declaration order.
func (s *Schema) BoundFunctions() (types []string, byType map[string][]*BoundFunction) {
	byType = make(map[string][]*BoundFunction)
	for _, f := range s.Functions {
		bf, ok := f.(*BoundFunction)
		if !ok {
			continue
		}
		if _, seen := byType[bf.BoundType.Type]; !seen {
			types = append(types, bf.BoundType.Type)
		}
		byType[bf.BoundType.Type] = append(byType[bf.BoundType.Type], bf)
	}
	return types, byType
}

// BoundActions groups the bound actions of the schema by the qualified
// name of their binding type, in declaration order.
func (s *Schema) BoundActions() (types []string, byType map[string][]*BoundAction) {
	byType = make(map[string][]*BoundAction)
	for _, a := range s.Actions {
		ba, ok := a.(*BoundAction)
		if !ok {
			continue
		}
		if _, seen := byType[ba.BoundType.Type]; !seen {
			types = append(types, ba.BoundType.Type)
		}
		byType[ba.BoundType.Type] = append(byType[ba.BoundType.Type], ba)
	}
	return types, byType
}
