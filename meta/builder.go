package meta

// Builder accumulates a Decl incrementally, mirroring tudocomp's Meta
// builder (include/tudocomp/meta/Meta.hpp): each parameter kind is a
// distinct, explicit method rather than a single generic "add parameter"
// call.
type Builder struct {
	decl *Decl
}

// NewBuilder starts a declaration for an algorithm named name of the given
// type, with description desc.
func NewBuilder(typ *TypeDesc, name, desc string) *Builder {
	return &Builder{decl: &Decl{
		Name:        name,
		Type:        typ,
		Description: desc,
		Tags:        map[string]bool{},
	}}
}

// Tag marks the declaration with an advisory marker, e.g. "require_sentinel".
// Tags propagate to every parent declaration that binds this one as a
// sub-algorithm (spec.md §4.F).
func (b *Builder) Tag(tag string) *Builder {
	b.decl.Tags[tag] = true
	return b
}

// Restrict adds byte values that must never reach this algorithm's input,
// and/or requires a trailing null terminator.
func (b *Builder) Restrict(r InputRestrictions) *Builder {
	b.decl.Restrictions = b.decl.Restrictions.Merge(r)
	return b
}

// Primitive declares a required or defaulted string-literal parameter.
func (b *Builder) Primitive(name, desc string, def ...string) *Builder {
	pd := &ParamDecl{Name: name, Description: desc, Kind: KindPrimitive}
	if len(def) > 0 {
		pd.Default, pd.HasDefault = def[0], true
	}
	b.decl.Params = append(b.decl.Params, pd)
	return b
}

// PrimitiveList declares a list-of-primitives parameter.
func (b *Builder) PrimitiveList(name, desc string, def ...string) *Builder {
	pd := &ParamDecl{Name: name, Description: desc, Kind: KindPrimitive, IsList: true}
	if len(def) > 0 {
		pd.Default, pd.HasDefault = def[0], true
	}
	b.decl.Params = append(b.decl.Params, pd)
	return b
}

// Strategy declares a bound sub-algorithm parameter: the concrete bound
// declaration's type must be a subtype of typ, and bound must itself be a
// fully built Decl for the single permitted implementation.
//
// Registering a bound strategy inherits the child's tags and folds the
// child's signature into the parent's signature, per spec.md §4.F.
func (b *Builder) Strategy(name, desc string, typ *TypeDesc, bound *Decl, useDefault bool) *Builder {
	if !bound.Type.IsSubtypeOf(typ) {
		panic(Error("bound sub-algorithm \"" + bound.Name + "\" is not a subtype of \"" + typ.Name + "\""))
	}
	pd := &ParamDecl{Name: name, Description: desc, Kind: KindBound, Type: typ, Bound: bound}
	if useDefault {
		pd.Default, pd.HasDefault = bound.Name, true
	}
	b.decl.Params = append(b.decl.Params, pd)
	for tag := range bound.Tags {
		b.decl.Tags[tag] = true
	}
	b.decl.Restrictions = b.decl.Restrictions.Merge(bound.Restrictions)
	b.decl.Signature += "{" + name + ":" + bound.Signature + "}"
	return b
}

// StrategyList declares a list of bound sub-algorithms.
func (b *Builder) StrategyList(name, desc string, typ *TypeDesc, bound []*Decl) *Builder {
	pd := &ParamDecl{Name: name, Description: desc, Kind: KindBound, Type: typ, IsList: true}
	sig := "{" + name + ":["
	for i, d := range bound {
		if !d.Type.IsSubtypeOf(typ) {
			panic(Error("bound sub-algorithm \"" + d.Name + "\" is not a subtype of \"" + typ.Name + "\""))
		}
		if i > 0 {
			sig += ","
		}
		sig += d.Signature
		for tag := range d.Tags {
			b.decl.Tags[tag] = true
		}
		b.decl.Restrictions = b.decl.Restrictions.Merge(d.Restrictions)
	}
	sig += "]}"
	b.decl.Signature += sig
	b.decl.Params = append(b.decl.Params, pd)
	return b
}

// UnboundStrategy declares a parameter that permits any algorithm of typ,
// resolved at Config-construction time rather than at declaration time.
// Unbound parameters do not contribute to the parent's signature, since they
// are not statically dispatched (spec.md §3 "Signature").
func (b *Builder) UnboundStrategy(name, desc string, typ *TypeDesc, def ...string) *Builder {
	pd := &ParamDecl{Name: name, Description: desc, Kind: KindUnbound, Type: typ}
	if len(def) > 0 {
		pd.Default, pd.HasDefault = def[0], true
	}
	b.decl.Params = append(b.decl.Params, pd)
	return b
}

// UnboundStrategyList declares a list-of-any-algorithm-of-typ parameter.
func (b *Builder) UnboundStrategyList(name, desc string, typ *TypeDesc) *Builder {
	pd := &ParamDecl{Name: name, Description: desc, Kind: KindUnbound, Type: typ, IsList: true}
	b.decl.Params = append(b.decl.Params, pd)
	return b
}

// Build finalises and returns the Decl. The receiver must not be reused
// after calling Build.
func (b *Builder) Build() *Decl {
	if b.decl.Signature == "" {
		b.decl.Signature = b.decl.Name
	} else {
		b.decl.Signature = b.decl.Name + b.decl.Signature
	}
	return b.decl
}
