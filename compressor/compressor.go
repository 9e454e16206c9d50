// Package compressor wires the concrete lz78/lzw/lzss compressors and
// their coder sub-algorithms into a config.Registry, the "known library"
// tudocomp_driver.cpp builds at startup by registering every compiled-in
// algorithm before parsing the user's configuration string. Trie backing
// is not a runtime sub-algorithm here (see the lz78 variants below for
// why): only the literal coder is resolved through the Algorithms
// library.
package compressor

import (
	"io"

	"github.com/tudocomp-go/tdc/ast"
	"github.com/tudocomp-go/tdc/coder"
	"github.com/tudocomp-go/tdc/config"
	"github.com/tudocomp-go/tdc/meta"
)

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "compressor: " + string(e) }

// Type is the declared type every top-level compressor registers under.
var Type = &meta.TypeDesc{Name: "compressor"}

// Compressor is the contract every registered algorithm satisfies: both
// lz78.Compressor and lzss.Compressor already implement it.
type Compressor interface {
	Compress(w io.Writer, input []byte) error
	Decompress(r io.Reader) ([]byte, error)
}

// Library collects every unbound sub-algorithm declaration (coders) that
// a top-level compressor's strategy parameters may reference, keyed by
// their own declared type, plus the Registry of top-level compressors
// itself.
type Library struct {
	// Algorithms resolves unbound "coder" parameters by type name; a
	// single config.Library suffices since lookups are keyed by
	// (typ.Name, algorithm name). Trie backings are not registered here:
	// each is a separate top-level compressor name instead of a runtime
	// sub-algorithm (see lz78.go), so there is nothing for an
	// UnboundStrategy("trie", ...) parameter to ever resolve.
	Algorithms  *config.Library
	Compressors *config.Registry[Compressor]

	// byName indexes every registered top-level compressor Decl by the
	// name a user types at the CLI (e.g. "lz78"), the entry point
	// Build needs before a Signature can even be computed.
	byName map[string]*meta.Decl
}

// NewLibrary builds the fully populated Library: every coder this module
// ships, plus lz78/lzw/lzss registered against the Compressor registry.
func NewLibrary() *Library {
	lib := &Library{
		Algorithms:  config.NewLibrary(),
		Compressors: config.NewRegistry[Compressor](),
		byName:      map[string]*meta.Decl{},
	}

	for _, d := range []*meta.Decl{coder.AsciiDecl(), coder.BlockDecl()} {
		lib.Algorithms.Add(d)
	}

	registerLZ78(lib)
	registerLZSS(lib)
	return lib
}

// register associates decl with factory in Compressors and indexes decl
// by name for Build's entry point.
func (lib *Library) register(decl *meta.Decl, factory config.Factory[Compressor]) {
	lib.Compressors.Register(decl, factory)
	lib.byName[decl.Name] = decl
}

// Build parses s as an algorithm configuration string (spec.md §4.E) and
// resolves it into a Config against the top-level compressor it names.
func (lib *Library) Build(s string) (*config.Config, error) {
	n, err := ast.Parse(s)
	if err != nil {
		return nil, err
	}
	name := n.Name()
	decl, ok := lib.byName[name]
	if !ok {
		return nil, Error("unknown algorithm \"" + name + "\"")
	}
	return config.Build(n, decl, lib.Algorithms)
}

// Construct parses and resolves s, then instantiates the matching
// Compressor.
func (lib *Library) Construct(s string) (Compressor, error) {
	cfg, err := lib.Build(s)
	if err != nil {
		return nil, err
	}
	return lib.Compressors.Construct(cfg)
}

// Decls returns every registered top-level compressor declaration, for
// use by the driver's --list flag.
func (lib *Library) Decls() []*meta.Decl {
	return lib.Compressors.Decls()
}
