package config

import "github.com/tudocomp-go/tdc/meta"

// Factory instantiates a compressor/coder/etc. of type T from a resolved
// Config.
type Factory[T any] func(cfg *Config) (T, error)

// Registry maps a Config's reduced Signature to the factory that
// instantiates the matching compiled type (spec.md §4.G).
type Registry[T any] struct {
	factories map[string]Factory[T]
	decls     map[string]*meta.Decl
}

// NewRegistry creates an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		factories: map[string]Factory[T]{},
		decls:     map[string]*meta.Decl{},
	}
}

// Register associates decl's signature with factory. It panics if the
// signature is already registered with differing details, mirroring
// tudocomp's duplicate-registration declaration error.
func (r *Registry[T]) Register(decl *meta.Decl, factory Factory[T]) {
	sig := decl.Signature
	if existing, ok := r.decls[sig]; ok && existing.Name != decl.Name {
		panic(Error("duplicate registration for signature \"" + sig + "\" with differing details"))
	}
	r.decls[sig] = decl
	r.factories[sig] = factory
}

// Construct looks up and invokes the factory for cfg's signature.
func (r *Registry[T]) Construct(cfg *Config) (T, error) {
	var zero T
	factory, ok := r.factories[cfg.Signature()]
	if !ok {
		return zero, Error("No implementation found for algorithm " + cfg.Signature())
	}
	return factory(cfg)
}

// Decls returns every registered declaration, for use by --list.
func (r *Registry[T]) Decls() []*meta.Decl {
	out := make([]*meta.Decl, 0, len(r.decls))
	for _, d := range r.decls {
		out = append(out, d)
	}
	return out
}

// Library is a config.Library keyed by declared type and algorithm name,
// for resolving unbound sub-algorithm parameters against declarations of a
// particular type.
type Library struct {
	byType map[string]map[string]*meta.Decl
}

// NewLibrary creates an empty Library.
func NewLibrary() *Library {
	return &Library{byType: map[string]map[string]*meta.Decl{}}
}

// Add registers decl under its own type for unbound lookup.
func (l *Library) Add(decl *meta.Decl) {
	m, ok := l.byType[decl.Type.Name]
	if !ok {
		m = map[string]*meta.Decl{}
		l.byType[decl.Type.Name] = m
	}
	m[decl.Name] = decl
}

// Lookup implements config.Library.
func (l *Library) Lookup(typ *meta.TypeDesc, name string) (*meta.Decl, bool) {
	m, ok := l.byType[typ.Name]
	if !ok {
		return nil, false
	}
	d, ok := m[name]
	return d, ok
}
