package load

import (
	"errors"
	"fmt"
	"slices"

	"aqwari.net/xml/xmltree"
)

// Decode validates the generic XML tree rooted at root and decodes it into
// a Metadata value. Elements and attributes are matched by local name;
// unknown attributes and elements are ignored.
//
// Decoding is atomic: either the complete tree is returned, or a
// ViolationList holding every violation found in the document.
func Decode(root *xmltree.Element) (*Metadata, error) {
	if root == nil {
		return nil, ViolationList{{Kind: KindShape, Expected: "root element Edmx", Actual: "empty document"}}
	}
	d := &decoder{}
	md := d.metadata(node{el: root, path: root.Name.Local})
	if len(d.errs) > 0 {
		return nil, d.errs
	}
	return md, nil
}

// node is an element together with its path from the document root.
type node struct {
	el   *xmltree.Element
	path string
}

func (n node) attr(name string) (string, bool) {
	for _, a := range n.el.StartElement.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n node) children(local string) []node {
	var nodes []node
	for i := range n.el.Children {
		c := &n.el.Children[i]
		if c.Name.Local != local {
			continue
		}
		nodes = append(nodes, node{el: c, path: fmt.Sprintf("%s/%s[%d]", n.path, local, len(nodes))})
	}
	return nodes
}

func (n node) attrPath(name string) string { return n.path + "/@" + name }

func (n node) childPath(local string) string { return n.path + "/" + local }

// decoder accumulates violations while walking the tree.
type decoder struct {
	errs ViolationList
}

func (d *decoder) fail(kind Kind, path, expected, actual string) {
	d.errs = append(d.errs, Violation{Kind: kind, Path: path, Expected: expected, Actual: actual})
}

// report records a codec failure at path.
func (d *decoder) report(path string, err error) {
	var v *Violation
	if errors.As(err, &v) {
		vv := *v
		vv.Path = path
		d.errs = append(d.errs, vv)
		return
	}
	d.fail(KindShape, path, "", err.Error())
}

// merge adds the violations of a sub-decoder, skipping duplicates.
func (d *decoder) merge(errs ViolationList) {
	for _, v := range errs {
		if !slices.Contains(d.errs, v) {
			d.errs = append(d.errs, v)
		}
	}
}

func (d *decoder) required(n node, name string) (string, bool) {
	s, ok := n.attr(name)
	if !ok {
		d.fail(KindShape, n.attrPath(name), "required attribute", "missing")
	}
	return s, ok
}

func (d *decoder) simpleIdentifier(n node, name string) string {
	s, ok := d.required(n, name)
	if ok && !IsSimpleIdentifier(s) {
		d.fail(KindLexical, n.attrPath(name), "SimpleIdentifier", quote(s))
	}
	return s
}

func (d *decoder) qualifiedName(n node, name string) string {
	s, ok := d.required(n, name)
	if ok && !IsQualifiedName(s) {
		d.fail(KindLexical, n.attrPath(name), "QualifiedName", quote(s))
	}
	return s
}

func (d *decoder) typeRef(n node, name string) TypeRef {
	s, ok := d.required(n, name)
	if !ok {
		return TypeRef{}
	}
	ref, err := ParseTypeRef(s)
	if err != nil {
		d.report(n.attrPath(name), err)
	}
	return ref
}

func (d *decoder) optionalBool(n node, name string) *bool {
	s, ok := n.attr(name)
	if !ok {
		return nil
	}
	b, err := ParseBool(s)
	if err != nil {
		d.report(n.attrPath(name), err)
		return nil
	}
	return &b
}

func (d *decoder) optionalInt(n node, name string) *int64 {
	s, ok := n.attr(name)
	if !ok {
		return nil
	}
	v, err := ParseInt(s)
	if err != nil {
		d.report(n.attrPath(name), err)
		return nil
	}
	return &v
}

// atMostOne returns the local children of n, recording a violation when
// there is more than one.
func (d *decoder) atMostOne(n node, local string) []node {
	nodes := n.children(local)
	if len(nodes) > 1 {
		d.fail(KindShape, n.childPath(local), "at most one element", fmt.Sprintf("%d elements", len(nodes)))
	}
	return nodes
}

// exactlyOne returns the local children of n, recording a violation unless
// there is exactly one.
func (d *decoder) exactlyOne(n node, local string) []node {
	nodes := n.children(local)
	if len(nodes) != 1 {
		d.fail(KindShape, n.childPath(local), "exactly one element", fmt.Sprintf("%d elements", len(nodes)))
	}
	return nodes
}

func (d *decoder) metadata(root node) *Metadata {
	if root.el.Name.Local != "Edmx" {
		d.fail(KindShape, root.path, "root element Edmx", quote(root.el.Name.Local))
		return nil
	}
	services := d.exactlyOne(root, "DataServices")
	if len(services) == 0 {
		return nil
	}
	md := &Metadata{}
	for i, ds := range services {
		schemas := ds.children("Schema")
		if len(schemas) == 0 {
			d.fail(KindShape, ds.childPath("Schema"), "at least one element", "0 elements")
		}
		for _, s := range schemas {
			schema := d.schema(s)
			if i == 0 {
				md.Schemas = append(md.Schemas, schema)
			}
		}
	}
	return md
}

func (d *decoder) schema(n node) *Schema {
	s := &Schema{Namespace: d.qualifiedName(n, "Namespace")}
	for _, c := range n.children("EntityType") {
		s.EntityTypes = append(s.EntityTypes, d.entityType(c))
	}
	for _, c := range n.children("ComplexType") {
		s.ComplexTypes = append(s.ComplexTypes, d.entityType(c))
	}
	for _, c := range n.children("EnumType") {
		s.EnumTypes = append(s.EnumTypes, d.enumType(c))
	}
	for _, c := range n.children("Action") {
		s.Actions = append(s.Actions, d.action(c))
	}
	for _, c := range n.children("Function") {
		s.Functions = append(s.Functions, d.function(c))
	}
	for i, c := range d.atMostOne(n, "EntityContainer") {
		ec := d.entityContainer(c)
		if i == 0 {
			s.EntityContainer = ec
		}
	}
	return s
}

func (d *decoder) property(n node) *Property {
	return &Property{
		Name:     d.simpleIdentifier(n, "Name"),
		Type:     d.typeRef(n, "Type"),
		Nullable: d.optionalBool(n, "Nullable"),
	}
}

func (d *decoder) returnType(n node) *ReturnType {
	return &ReturnType{
		Type:     d.typeRef(n, "Type"),
		Nullable: d.optionalBool(n, "Nullable"),
	}
}

func (d *decoder) entityType(n node) *EntityType {
	t := &EntityType{Name: d.simpleIdentifier(n, "Name")}
	for _, c := range n.children("Property") {
		t.Properties = append(t.Properties, d.property(c))
	}
	for _, c := range n.children("NavigationProperty") {
		t.NavigationProperties = append(t.NavigationProperties, d.property(c))
	}
	return t
}

func (d *decoder) enumType(n node) *EnumType {
	t := &EnumType{Name: d.simpleIdentifier(n, "Name")}
	for _, c := range n.children("Member") {
		t.Members = append(t.Members, &EnumMember{
			Name:  d.simpleIdentifier(c, "Name"),
			Value: d.optionalInt(c, "Value"),
		})
	}
	return t
}

// operation is the shape shared by actions and functions.
type operation struct {
	name       string
	bound      bool
	params     []*Property
	returnType *ReturnType
}

// operation decodes the bound/unbound union. The bound shape is attempted
// first, so a present "true" IsBound can never be taken by the unbound
// shape. When neither shape matches, the violations of the shape selected
// by IsBound are reported; an IsBound outside the boolean literals reports
// both.
func (d *decoder) operation(n node, returnRequired bool) operation {
	bd := &decoder{}
	op := bd.boundOperation(n, returnRequired)
	if len(bd.errs) == 0 {
		return op
	}
	ud := &decoder{}
	op = ud.unboundOperation(n, returnRequired)
	if len(ud.errs) == 0 {
		return op
	}
	switch s, ok := n.attr("IsBound"); {
	case ok && s == "true":
		d.merge(bd.errs)
	case !ok || s == "false":
		d.merge(ud.errs)
	default:
		d.merge(bd.errs)
		d.merge(ud.errs)
	}
	return operation{}
}

func (d *decoder) boundOperation(n node, returnRequired bool) operation {
	op := operation{name: d.simpleIdentifier(n, "Name"), bound: true}
	if s, ok := n.attr("IsBound"); !ok {
		d.fail(KindShape, n.attrPath("IsBound"), `"true"`, "missing")
	} else if b, err := ParseBool(s); err != nil {
		d.report(n.attrPath("IsBound"), err)
	} else if !b {
		d.fail(KindShape, n.attrPath("IsBound"), `"true"`, quote(s))
	}
	params := n.children("Parameter")
	if len(params) == 0 {
		d.fail(KindShape, n.childPath("Parameter"), "at least one element (the binding parameter)", "0 elements")
	}
	for _, p := range params {
		op.params = append(op.params, d.property(p))
	}
	op.returnType = d.operationReturn(n, returnRequired)
	return op
}

func (d *decoder) unboundOperation(n node, returnRequired bool) operation {
	op := operation{name: d.simpleIdentifier(n, "Name")}
	if s, ok := n.attr("IsBound"); ok {
		if b, err := ParseBool(s); err != nil {
			d.report(n.attrPath("IsBound"), err)
		} else if b {
			d.fail(KindShape, n.attrPath("IsBound"), `"false" or absent`, quote(s))
		}
	}
	for _, p := range n.children("Parameter") {
		op.params = append(op.params, d.property(p))
	}
	op.returnType = d.operationReturn(n, returnRequired)
	return op
}

func (d *decoder) operationReturn(n node, required bool) *ReturnType {
	var nodes []node
	if required {
		nodes = d.exactlyOne(n, "ReturnType")
	} else {
		nodes = d.atMostOne(n, "ReturnType")
	}
	var rt *ReturnType
	for i, c := range nodes {
		r := d.returnType(c)
		if i == 0 {
			rt = r
		}
	}
	return rt
}

func (d *decoder) action(n node) *Action {
	op := d.operation(n, false)
	return &Action{Name: op.name, IsBound: op.bound, Parameters: op.params, ReturnType: op.returnType}
}

func (d *decoder) function(n node) *Function {
	op := d.operation(n, true)
	return &Function{Name: op.name, IsBound: op.bound, Parameters: op.params, ReturnType: op.returnType}
}

func (d *decoder) entityContainer(n node) *EntityContainer {
	ec := &EntityContainer{Name: d.simpleIdentifier(n, "Name")}
	for _, c := range n.children("EntitySet") {
		ec.EntitySets = append(ec.EntitySets, &EntitySet{
			Name:       d.simpleIdentifier(c, "Name"),
			EntityType: d.qualifiedName(c, "EntityType"),
		})
	}
	for _, c := range n.children("ActionImport") {
		ec.ActionImports = append(ec.ActionImports, &ActionImport{
			Name:   d.simpleIdentifier(c, "Name"),
			Action: d.qualifiedName(c, "Action"),
		})
	}
	for _, c := range n.children("FunctionImport") {
		ec.FunctionImports = append(ec.FunctionImports, &FunctionImport{
			Name:     d.simpleIdentifier(c, "Name"),
			Function: d.qualifiedName(c, "Function"),
		})
	}
	return ec
}
