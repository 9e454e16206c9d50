// Package ast defines the immutable abstract syntax tree produced by parsing
// an algorithm configuration string, e.g. "lz78(coder=huffman(), dict_size=0)".
package ast

import "strings"

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "ast: " + string(e) }

// Node is either a Value or an Object.
type Node interface {
	// Name returns the identifier naming this node (the bare value for a
	// Value, or the algorithm name for an Object).
	Name() string
	node()
}

// Value is a bare identifier or number token, e.g. "ascii" or "42".
type Value struct {
	name string
}

// NewValue creates a Value node.
func NewValue(name string) *Value { return &Value{name: name} }

func (v *Value) Name() string { return v.name }
func (*Value) node()          {}

// Param is a single argument inside an Object's parameter list. Name is
// empty for a positional parameter.
type Param struct {
	Name  string
	Value Node
}

// IsPositional reports whether p was given without a "name=" prefix.
func (p *Param) IsPositional() bool { return p.Name == "" }

// Object is a named node with an ordered parameter list, e.g.
// "lz78(coder=huffman())".
type Object struct {
	name   string
	Params []*Param
}

// NewObject creates an Object node with the given name and parameters.
func NewObject(name string, params []*Param) *Object {
	return &Object{name: name, Params: params}
}

func (o *Object) Name() string { return o.name }
func (*Object) node()          {}

// IsList reports whether o represents a bracketed value list, i.e. an
// Object whose elements are all positional and whose synthetic name is the
// reserved list marker used by the parser.
func (o *Object) IsList() bool { return o.name == listMarker }

const listMarker = "$list"

// NewList creates the Object used to represent a parsed value list.
func NewList(items []Node) *Object {
	params := make([]*Param, len(items))
	for i, it := range items {
		params[i] = &Param{Value: it}
	}
	return &Object{name: listMarker, Params: params}
}

// Elements returns the positional values of a list Object.
func (o *Object) Elements() []Node {
	out := make([]Node, len(o.Params))
	for i, p := range o.Params {
		out[i] = p.Value
	}
	return out
}

// String renders the node back into the textual grammar, in a normalised
// form: positional parameters first, then keyword parameters, each
// separated by ", ".
func String(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Value:
		sb.WriteString(v.name)
	case *Object:
		if v.IsList() {
			sb.WriteByte('[')
			for i, p := range v.Params {
				if i > 0 {
					sb.WriteString(", ")
				}
				writeNode(sb, p.Value)
			}
			sb.WriteByte(']')
			return
		}
		sb.WriteString(v.name)
		sb.WriteByte('(')
		for i, p := range v.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			if p.Name != "" {
				sb.WriteString(p.Name)
				sb.WriteByte('=')
			}
			writeNode(sb, p.Value)
		}
		sb.WriteByte(')')
	}
}
