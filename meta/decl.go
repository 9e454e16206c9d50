// Package meta declares algorithms, their typed parameters, defaults, and
// tags (spec.md §4.F). A Decl is built once per compiled algorithm type via
// the Builder returned by a static meta() constructor and is otherwise
// immutable.
package meta

import "sort"

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "meta: " + string(e) }

// TypeDesc names a declared type and its optional super-type, forming a
// subtype chain used to type-check bound/unbound sub-algorithm parameters.
type TypeDesc struct {
	Name  string
	Super *TypeDesc
}

// IsSubtypeOf reports whether t is the same type as, or a descendant of,
// other. A nil t or a nil other always returns false.
func (t *TypeDesc) IsSubtypeOf(other *TypeDesc) bool {
	if other == nil {
		return false
	}
	for cur := t; cur != nil; cur = cur.Super {
		if cur.Name == other.Name {
			return true
		}
	}
	return false
}

// ParamKind distinguishes the three parameter declaration kinds of §3.
type ParamKind int

const (
	// KindPrimitive takes a string literal value.
	KindPrimitive ParamKind = iota
	// KindBound requires a specific, compiled-in sub-algorithm.
	KindBound
	// KindUnbound permits any algorithm of the declared type.
	KindUnbound
)

func (k ParamKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindBound:
		return "bound"
	case KindUnbound:
		return "unbound"
	default:
		return "unknown"
	}
}

// ParamDecl is a single declared parameter of an algorithm.
type ParamDecl struct {
	Name        string
	Description string
	Kind        ParamKind
	IsList      bool
	Type        *TypeDesc // nil for KindPrimitive
	Default     string    // string literal default, only meaningful when HasDefault
	HasDefault  bool
	// Bound, if Kind == KindBound, is the declaration of the single
	// permitted sub-algorithm. Populated by Builder.Strategy.
	Bound *Decl
}

// InputRestrictions pairs a set of forbidden byte values with a
// null-terminator flag (spec.md §3).
type InputRestrictions struct {
	Forbidden    map[byte]bool
	NulTerminate bool
}

// NewInputRestrictions builds an InputRestrictions from a forbidden byte list.
func NewInputRestrictions(nulTerminate bool, forbidden ...byte) InputRestrictions {
	m := make(map[byte]bool, len(forbidden))
	for _, b := range forbidden {
		m[b] = true
	}
	return InputRestrictions{Forbidden: m, NulTerminate: nulTerminate}
}

// Merge returns the union of r and other: the union of forbidden bytes, and
// null-termination if either requires it.
func (r InputRestrictions) Merge(other InputRestrictions) InputRestrictions {
	out := NewInputRestrictions(r.NulTerminate || other.NulTerminate)
	for b := range r.Forbidden {
		out.Forbidden[b] = true
	}
	for b := range other.Forbidden {
		out.Forbidden[b] = true
	}
	return out
}

// SortedForbidden returns the forbidden bytes in ascending order, for
// deterministic escape index assignment.
func (r InputRestrictions) SortedForbidden() []byte {
	out := make([]byte, 0, len(r.Forbidden))
	for b := range r.Forbidden {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Decl is a complete algorithm declaration: name, type, description,
// ordered parameter list, tags, and propagated input restrictions.
type Decl struct {
	Name          string
	Type          *TypeDesc
	Description   string
	Params        []*ParamDecl
	Tags          map[string]bool
	Restrictions  InputRestrictions
	// Signature is the reduced bound-sub-algorithm structure used as the
	// registry dispatch key (spec.md §3 "Signature").
	Signature string
}

// Param looks up a declared parameter by name.
func (d *Decl) Param(name string) (*ParamDecl, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// HasTag reports whether tag is set on d.
func (d *Decl) HasTag(tag string) bool { return d.Tags[tag] }

// Doc renders a human-readable multi-line description of d, used by the
// driver's --list flag (SPEC_FULL.md item 1).
func (d *Decl) Doc() string {
	s := d.Name + ": " + d.Description + "\n"
	for _, p := range d.Params {
		s += "  " + p.Name + " (" + p.Kind.String() + ")"
		if p.IsList {
			s += "[]"
		}
		if p.HasDefault {
			s += " = " + p.Default
		}
		if p.Description != "" {
			s += " -- " + p.Description
		}
		s += "\n"
	}
	return s
}
