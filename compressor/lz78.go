package compressor

import (
	"strconv"

	"github.com/tudocomp-go/tdc/coder"
	"github.com/tudocomp-go/tdc/config"
	"github.com/tudocomp-go/tdc/hash"
	"github.com/tudocomp-go/tdc/lz78"
	"github.com/tudocomp-go/tdc/meta"
	"github.com/tudocomp-go/tdc/trie"
)

// lzwRoots is the number of roots an lzw-mode trie is seeded with: one
// per byte of the initial alphabet (spec.md §4.I, supplemented feature 3).
const lzwRoots = 256

// defaultJumpWidth and defaultDictSize are lz78.Compressor's fixed
// pointer-jumping lookahead width and dictionary reset threshold
// (spec.md §4.J). Neither is exposed as a Config parameter: spec.md §8
// scenario 6 pins the canonical header for "lz78(ascii)" to exactly
// "lz78(coder=ascii())", so every tuning knob besides the literal coder
// is fixed per registered algorithm name rather than user-configurable
// — the trie backing becomes a choice of *which name* to register
// (lz78, lz78hash, lz78ternary, ...) instead of a runtime sub-parameter.
const (
	defaultJumpWidth = 5
	defaultDictSize  = 0
)

// withCoderParam adds the one parameter every lz78/lzw variant exposes.
func withCoderParam(b *meta.Builder) *meta.Builder {
	return b.UnboundStrategy("coder", "literal coder for unmatched/new symbols", coder.Type, "ascii")
}

func coderFromConfig(cfg *config.Config) (coder.Coder, error) {
	coderCfg, ok := cfg.SubConfig("coder")
	if !ok {
		return nil, Error("missing \"coder\" parameter")
	}
	return buildCoder(coderCfg)
}

// registerLZ78Variant registers one trie backing of the LZ78/LZW family
// under name, with the given root count (1 for lz78, lzwRoots for lzw).
func registerLZ78Variant(lib *Library, name, desc string, newTrie func() trie.Trie, roots int) {
	decl := withCoderParam(meta.NewBuilder(Type, name, desc)).Build()
	lib.register(decl, func(cfg *config.Config) (Compressor, error) {
		c, err := coderFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		return &lz78.Compressor{
			NewTrie:   newTrie,
			Coder:     c,
			JumpWidth: defaultJumpWidth,
			DictSize:  defaultDictSize,
			Roots:     roots,
		}, nil
	})
}

func registerLZ78(lib *Library) {
	registerLZ78Variant(lib, "lz78", "LZ78 dictionary compressor",
		func() trie.Trie { return trie.NewBinaryTrie() }, 1)
	registerLZ78Variant(lib, "lz78hash", "LZ78 dictionary compressor, hash-map trie backing",
		func() trie.Trie { return trie.NewHashTrie() }, 1)
	registerLZ78Variant(lib, "lz78ternary", "LZ78 dictionary compressor, ternary-search-tree trie backing",
		func() trie.Trie { return trie.NewTernaryTrie() }, 1)
	registerLZ78Variant(lib, "lz78rolling", "LZ78 dictionary compressor, rolling-hash trie backing",
		func() trie.Trie { return trie.NewRollingTrie() }, 1)
	registerLZ78Variant(lib, "lzw", "LZW multi-root dictionary compressor",
		func() trie.Trie { return trie.NewBinaryTrie() }, lzwRoots)

	compactHashDecl := withCoderParam(meta.NewBuilder(Type, "lz78compacthash", "LZ78 dictionary compressor, compact hash table trie backing")).
		Primitive("key_width", "bit width of parent_id<<8|byte keys", "24").
		Primitive("max_load_factor", "table growth threshold", "0.9").
		Build()
	lib.register(compactHashDecl, func(cfg *config.Config) (Compressor, error) {
		c, err := coderFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		kw, err := cfg.Param("key_width").AsUint()
		if err != nil {
			return nil, err
		}
		mlfStr, err := cfg.Param("max_load_factor").AsString()
		if err != nil {
			return nil, err
		}
		mlf, err := strconv.ParseFloat(mlfStr, 64)
		if err != nil {
			return nil, Error("max_load_factor: " + err.Error())
		}
		return &lz78.Compressor{
			NewTrie:   func() trie.Trie { return trie.NewCompactHashTrie(uint(kw), mlf, hash.Xorshift{}) },
			Coder:     c,
			JumpWidth: defaultJumpWidth,
			DictSize:  defaultDictSize,
			Roots:     1,
		}, nil
	})
}
