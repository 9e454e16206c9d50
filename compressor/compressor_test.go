package compressor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func roundTrip(t *testing.T, spec string, input []byte) {
	t.Helper()
	lib := NewLibrary()
	c, err := lib.Construct(spec)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, c.Compress(&buf, input))

	out, err := c.Decompress(&buf)
	assert.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestLZ78DefaultConfigRoundTrip(t *testing.T) {
	roundTrip(t, "lz78()", []byte("abcdebcdeabc"))
}

func TestLZ78HashTrieBackingRoundTrip(t *testing.T) {
	roundTrip(t, "lz78hash(coder=block())", []byte("abcdebcdeabcabcdebcdeabc"))
}

func TestLZ78CompactHashTrieRoundTrip(t *testing.T) {
	roundTrip(t, "lz78compacthash(key_width=16, max_load_factor=0.8)", []byte("mississippi"))
}

func TestLZ78HeaderIsCanonical(t *testing.T) {
	lib := NewLibrary()
	cfg, err := lib.Build("lz78(ascii())")
	assert.NoError(t, err)
	assert.Equal(t, "lz78(coder=ascii())", cfg.Str())
}

func TestLZWDefaultConfigRoundTrip(t *testing.T) {
	roundTrip(t, "lzw()", []byte("TOBEORNOTTOBEORTOBEORNOT"))
}

func TestLZSSDefaultConfigRoundTrip(t *testing.T) {
	roundTrip(t, "lzss()", append([]byte("abracadabra"), 0))
}

func TestLZSSExplicitThresholdRoundTrip(t *testing.T) {
	roundTrip(t, "lzss(coder=block(), threshold=4)", append([]byte("abababababab"), 0))
}

func TestUnknownAlgorithmIsRejected(t *testing.T) {
	lib := NewLibrary()
	_, err := lib.Construct("nonexistent()")
	assert.Error(t, err)
}

func TestConfigStrRoundTripsThroughRegistry(t *testing.T) {
	lib := NewLibrary()
	cfg, err := lib.Build("lz78(coder=ascii())")
	assert.NoError(t, err)
	again, err := lib.Build(cfg.Str())
	assert.NoError(t, err)
	assert.Equal(t, cfg.Signature(), again.Signature())
}

func TestDeclsListsEveryRegisteredCompressor(t *testing.T) {
	lib := NewLibrary()
	names := map[string]bool{}
	for _, d := range lib.Decls() {
		names[d.Name] = true
	}
	assert.True(t, names["lz78"])
	assert.True(t, names["lzw"])
	assert.True(t, names["lzss"])
}
