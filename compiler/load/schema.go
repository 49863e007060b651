package load

// Metadata represents a metadata document that was decoded and validated
// from its XML form. It is the input of the gen package transform.
type Metadata struct {
	Schemas []*Schema `json:"schemas,omitempty"`
}

// Schema represents a decoded <Schema> element.
type Schema struct {
	Namespace       string           `json:"namespace,omitempty"`
	EntityTypes     []*EntityType    `json:"entity_types,omitempty"`
	ComplexTypes    []*EntityType    `json:"complex_types,omitempty"`
	EnumTypes       []*EnumType      `json:"enum_types,omitempty"`
	Actions         []*Action        `json:"actions,omitempty"`
	Functions       []*Function      `json:"functions,omitempty"`
	EntityContainer *EntityContainer `json:"entity_container,omitempty"`
}

// TypeRef is a type attribute after the Collection(...) wrapper was
// recognized. Name is always a valid qualified name.
type TypeRef struct {
	Name         string `json:"name,omitempty"`
	IsCollection bool   `json:"is_collection,omitempty"`
}

// String returns the attribute form of the reference.
func (r TypeRef) String() string {
	if r.IsCollection {
		return "Collection(" + r.Name + ")"
	}
	return r.Name
}

// Property represents a decoded <Property>, <NavigationProperty> or
// <Parameter> element. Nullable is nil when the attribute is absent.
type Property struct {
	Name     string  `json:"name,omitempty"`
	Type     TypeRef `json:"type"`
	Nullable *bool   `json:"nullable,omitempty"`
}

// ReturnType represents a decoded <ReturnType> element.
type ReturnType struct {
	Type     TypeRef `json:"type"`
	Nullable *bool   `json:"nullable,omitempty"`
}

// EntityType represents a decoded <EntityType> or <ComplexType> element.
type EntityType struct {
	Name                 string      `json:"name,omitempty"`
	Properties           []*Property `json:"properties,omitempty"`
	NavigationProperties []*Property `json:"navigation_properties,omitempty"`
}

// EnumMember represents a decoded <Member> of an <EnumType>.
type EnumMember struct {
	Name  string `json:"name,omitempty"`
	Value *int64 `json:"value,omitempty"`
}

// EnumType represents a decoded <EnumType> element.
type EnumType struct {
	Name    string        `json:"name,omitempty"`
	Members []*EnumMember `json:"members,omitempty"`
}

// Action represents a decoded <Action> element. A bound action always
// carries at least one parameter, the binding parameter.
type Action struct {
	Name       string      `json:"name,omitempty"`
	IsBound    bool        `json:"is_bound,omitempty"`
	Parameters []*Property `json:"parameters,omitempty"`
	ReturnType *ReturnType `json:"return_type,omitempty"`
}

// Function represents a decoded <Function> element. Unlike actions,
// ReturnType is never nil for a successfully decoded function.
type Function struct {
	Name       string      `json:"name,omitempty"`
	IsBound    bool        `json:"is_bound,omitempty"`
	Parameters []*Property `json:"parameters,omitempty"`
	ReturnType *ReturnType `json:"return_type,omitempty"`
}

// EntitySet represents a decoded <EntitySet> element.
type EntitySet struct {
	Name       string `json:"name,omitempty"`
	EntityType string `json:"entity_type,omitempty"`
}

// ActionImport represents a decoded <ActionImport> element.
type ActionImport struct {
	Name   string `json:"name,omitempty"`
	Action string `json:"action,omitempty"`
}

// FunctionImport represents a decoded <FunctionImport> element.
type FunctionImport struct {
	Name     string `json:"name,omitempty"`
	Function string `json:"function,omitempty"`
}

// EntityContainer represents a decoded <EntityContainer> element.
type EntityContainer struct {
	Name            string            `json:"name,omitempty"`
	EntitySets      []*EntitySet      `json:"entity_sets,omitempty"`
	ActionImports   []*ActionImport   `json:"action_imports,omitempty"`
	FunctionImports []*FunctionImport `json:"function_imports,omitempty"`
}
