package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette(t *testing.T, entries [][]uint8) *Palette {
	t.Helper()
	p, err := NewPalette(3, entries)
	require.NoError(t, err)
	return p
}

func TestResolveLUTPolicyHonoursExplicitChoice(t *testing.T) {
	assert.Equal(t, LUT5Bit, resolveLUTPolicy(LUT5Bit, 3, 200))
	assert.Equal(t, LUTNone, resolveLUTPolicy(LUTAuto, 1, 200))
}

func TestResolveLUTPolicyAutoScalesWithPaletteSize(t *testing.T) {
	assert.Equal(t, LUTNone, resolveLUTPolicy(LUTAuto, 3, 4))
	assert.Equal(t, LUT6Bit, resolveLUTPolicy(LUTAuto, 3, 16))
	assert.Equal(t, LUTCertlut, resolveLUTPolicy(LUTAuto, 3, 128))
}

func TestNewLUTRejectsDenseOrCertlutOnNonRGBDepth(t *testing.T) {
	p := testPalette(t, [][]uint8{{0, 0, 0}, {255, 255, 255}})
	_, err := NewLUT(p, 4, 2, 1, 1, 1, 1, LUT6Bit)
	require.Error(t, err)
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, BadArgument, ce.Kind)
}

func TestMapPixelExhaustiveFindsNearestEntry(t *testing.T) {
	p := testPalette(t, [][]uint8{{0, 0, 0}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255}})
	lut, err := NewLUT(p, 3, p.NColors(), 1, 1, 1, 1, LUTNone)
	require.NoError(t, err)

	assert.Equal(t, 0, lut.MapPixel(5, 5, 5))
	assert.Equal(t, 1, lut.MapPixel(250, 10, 10))
	assert.Equal(t, 2, lut.MapPixel(10, 250, 10))
	assert.Equal(t, 3, lut.MapPixel(10, 10, 250))
}

func TestMapPixelDenseAgreesWithExhaustive(t *testing.T) {
	entries := [][]uint8{
		{0, 0, 0}, {64, 64, 64}, {128, 128, 128}, {192, 192, 192}, {255, 255, 255},
		{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 0},
	}
	p := testPalette(t, entries)
	exhaustive, err := NewLUT(p, 3, p.NColors(), 1, 1, 1, 1, LUTNone)
	require.NoError(t, err)
	dense, err := NewLUT(p, 3, p.NColors(), 1, 1, 1, 1, LUT6Bit)
	require.NoError(t, err)

	for _, sample := range [][3]uint8{{10, 20, 30}, {200, 200, 0}, {130, 5, 250}, {1, 1, 1}} {
		want := exhaustive.MapPixel(sample[0], sample[1], sample[2])
		got := dense.MapPixel(sample[0], sample[1], sample[2])
		assert.Equal(t, want, got)
		// second call must hit the memoised slot and agree too.
		assert.Equal(t, want, dense.MapPixel(sample[0], sample[1], sample[2]))
	}
}

func TestComplexionWeightsRedChannelMoreHeavily(t *testing.T) {
	// entry 1 is close in red, far in green; entry 2 is the reverse.
	// Under complexion=1 entry 2's smaller combined distance wins;
	// raising complexion to 4 tips the balance to entry 1.
	p := testPalette(t, [][]uint8{{0, 0, 0}, {49, 45, 0}, {46, 49, 0}})

	low, err := NewLUT(p, 3, p.NColors(), 1, 1, 1, 1, LUTNone)
	require.NoError(t, err)
	assert.Equal(t, 2, low.MapPixel(50, 50, 0))

	high, err := NewLUT(p, 3, p.NColors(), 4, 1, 1, 1, LUTNone)
	require.NoError(t, err)
	assert.Equal(t, 1, high.MapPixel(50, 50, 0))
}
