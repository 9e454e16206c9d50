package compressor

import (
	"strconv"

	"github.com/tudocomp-go/tdc/coder"
	"github.com/tudocomp-go/tdc/config"
	"github.com/tudocomp-go/tdc/lzss"
	"github.com/tudocomp-go/tdc/meta"
)

func registerLZSS(lib *Library) {
	decl := meta.NewBuilder(Type, "lzss", "LCP/LZSS compressor").
		Tag("require_sentinel").
		Restrict(meta.NewInputRestrictions(true)).
		UnboundStrategy("coder", "literal coder for unmatched symbols", coder.Type, "ascii").
		Primitive("threshold", "minimum factor length", strconv.Itoa(lzss.DefaultThreshold)).
		Build()

	lib.register(decl, func(cfg *config.Config) (Compressor, error) {
		coderCfg, ok := cfg.SubConfig("coder")
		if !ok {
			return nil, Error("lzss: missing \"coder\" parameter")
		}
		c, err := buildCoder(coderCfg)
		if err != nil {
			return nil, err
		}
		threshold, err := cfg.Param("threshold").AsInt()
		if err != nil {
			return nil, err
		}
		return &lzss.Compressor{Coder: c, Threshold: int(threshold)}, nil
	})
}
