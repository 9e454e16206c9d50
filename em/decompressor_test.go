package em

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompressorDirectReferenceOnly(t *testing.T) {
	d := NewDecompressor(6)
	d.SetLiteral(0, 'a')
	d.SetLiteral(1, 'b')
	d.SetLiteral(2, 'c')
	d.AddReference(3, 0, 3) // copy "abc" -> positions 3..5
	out, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, []byte("abcabc"), out)
}

func TestDecompressorResolvesChainedReference(t *testing.T) {
	// position 3..5 is itself a reference to 0..2, and 6..8 references
	// 3..5 — so resolving 6..8 requires jumping through 3..5 first.
	d := NewDecompressor(9)
	d.SetLiteral(0, 'a')
	d.SetLiteral(1, 'b')
	d.SetLiteral(2, 'c')
	d.AddReference(3, 0, 3)
	d.AddReference(6, 3, 3)
	out, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, []byte("abcabcabc"), out)
}

func TestDecompressorResolvesLongChain(t *testing.T) {
	// A chain of depth 5: each block of 2 bytes references the previous
	// block, bottoming out at a 2-byte literal prefix.
	const blocks = 6
	d := NewDecompressor(2 * blocks)
	d.SetLiteral(0, 'x')
	d.SetLiteral(1, 'y')
	for b := 1; b < blocks; b++ {
		d.AddReference(2*b, 2*(b-1), 2)
	}
	out, err := d.Run()
	require.NoError(t, err)
	want := make([]byte, 2*blocks)
	for i := range want {
		if i%2 == 0 {
			want[i] = 'x'
		} else {
			want[i] = 'y'
		}
	}
	assert.Equal(t, want, out)
}

func TestDecompressorSelfOverlappingReference(t *testing.T) {
	// A reference whose source range overlaps its own target, the
	// classic LZSS "run" pattern (src+len > pos is explicitly allowed).
	d := NewDecompressor(8)
	d.SetLiteral(0, 'a')
	d.SetLiteral(1, 'b')
	d.AddReference(2, 0, 6) // copy "ab" repeating, extending past the source
	out, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, []byte("abababab"), out)
}

func TestDecompressorUnresolvableReferenceReturnsError(t *testing.T) {
	// A source position with no literal and no covering reference (here,
	// position 5 is never set by SetLiteral nor covered by any
	// AddReference) can never be resolved: Run must report this as an
	// error rather than loop forever or panic the caller.
	d := NewDecompressor(6)
	d.SetLiteral(0, 'a')
	d.AddReference(1, 5, 1)
	_, err := d.Run()
	assert.Error(t, err)
}

func TestDriverBudgetSplitsByCacheFraction(t *testing.T) {
	perVector, sortBytes := DriverBudget(100)
	totalBytes := 100 * 1024 * 1024
	assert.Less(t, perVector*driverVectorCount, totalBytes)
	assert.Greater(t, sortBytes, 0)
	assert.Equal(t, totalBytes, perVector*driverVectorCount+sortBytes+remainderFromFraction(totalBytes))
}

// remainderFromFraction accounts for integer truncation in
// DriverBudget's cacheBytes computation so the above equality holds
// exactly rather than approximately.
func remainderFromFraction(totalBytes int) int {
	cacheBytes := int(float64(totalBytes) * cacheFraction)
	return cacheBytes - (cacheBytes/driverVectorCount)*driverVectorCount
}
