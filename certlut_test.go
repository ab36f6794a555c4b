package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampPalette(t *testing.T, n int) *Palette {
	t.Helper()
	entries := make([][]uint8, n)
	for i := 0; i < n; i++ {
		v := uint8(i * 255 / (n - 1))
		entries[i] = []uint8{v, 255 - v, uint8((i * 37) % 256)}
	}
	return testPalette(t, entries)
}

func TestNewCertlutRejectsEmptyPalette(t *testing.T) {
	p := &Palette{Depth: 3}
	_, err := newCertlut(p, 1, 1, 1, 1)
	require.Error(t, err)
}

func TestCertlutAgreesWithExhaustiveSearch(t *testing.T) {
	p := rampPalette(t, 200)
	cl, err := newCertlut(p, 1, 1, 1, 1)
	require.NoError(t, err)
	exhaustive, err := NewLUT(p, 3, p.NColors(), 1, 1, 1, 1, LUTNone)
	require.NoError(t, err)

	samples := [][3]uint8{
		{0, 0, 0}, {255, 255, 255}, {128, 64, 200}, {10, 250, 30}, {77, 88, 99}, {200, 10, 5},
	}
	for _, s := range samples {
		want := exhaustive.MapPixel(s[0], s[1], s[2])
		got := cl.lookup(s[0], s[1], s[2])
		assert.Equal(t, want, got, "mismatch for sample %v", s)
	}
}

func TestCertifiesBoundHoldsForWellSeparatedDistances(t *testing.T) {
	cl := &certlut{wR: 1, wG: 1, wB: 1, complexion: 1}
	// second-best much farther than best, relative to a small cube.
	assert.True(t, cl.certifies(10, 10000, 1))
	assert.False(t, cl.certifies(10, 11, 100))
}

func TestBuildKDTreeCoversEveryPaletteEntry(t *testing.T) {
	p := rampPalette(t, 32)
	cl, err := newCertlut(p, 1, 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 32, len(cl.kdNode))
}

// TestLookupDoesNotRebuildOnRepeatedQuery guards against a cell
// reference going stale across a pool growth: looking up the same
// pixel twice must only build its cube once. If a grown cell ever
// wrote through a pointer taken before the append, the live slot
// would stay certUnset and every repeat lookup would rebuild it,
// growing the pool again each time.
func TestLookupDoesNotRebuildOnRepeatedQuery(t *testing.T) {
	p := rampPalette(t, 200)
	cl, err := newCertlut(p, 1, 1, 1, 1)
	require.NoError(t, err)

	first := cl.lookup(128, 64, 200)
	after1 := cl.stats().PoolCells

	second := cl.lookup(128, 64, 200)
	after2 := cl.stats().PoolCells

	assert.Equal(t, first, second)
	assert.Equal(t, after1, after2, "pool must not grow on a repeat lookup of the same pixel")
}
