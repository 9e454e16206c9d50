package compressor

import (
	"github.com/tudocomp-go/tdc/coder"
	"github.com/tudocomp-go/tdc/config"
)

// buildCoder resolves a "coder" sub-Config to the concrete coder.Coder it
// names.
func buildCoder(cfg *config.Config) (coder.Coder, error) {
	switch cfg.Decl.Name {
	case "ascii":
		return coder.Ascii{}, nil
	case "block":
		return coder.Block{}, nil
	default:
		return nil, Error("unknown coder algorithm \"" + cfg.Decl.Name + "\"")
	}
}
