package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunByteBandRejectsUnsupportedDepth(t *testing.T) {
	_, err := runByteBand(&ByteBand{Depth: 4})
	require.Error(t, err)
}

func TestRunByteBandRejectsNilLUT(t *testing.T) {
	_, err := runByteBand(&ByteBand{Depth: 3})
	require.Error(t, err)
}

func TestRunByteBandMapsEveryPixelToNearestPaletteEntry(t *testing.T) {
	p := testPalette(t, [][]uint8{{0, 0, 0}, {255, 255, 255}})
	lut, err := NewLUT(p, 3, p.NColors(), 1, 1, 1, 1, LUTNone)
	require.NoError(t, err)

	width, height := 2, 2
	data := []uint8{
		10, 10, 10, 240, 240, 240,
		250, 250, 250, 5, 5, 5,
	}
	result := make([]uint8, width*height)
	var rows []int
	n, err := runByteBand(&ByteBand{
		Data: data, Width: width, Height: height, Depth: 3,
		Palette: p, LUT: lut, Kernel: DiffuseNone,
		BandOrigin: 0, OutputStart: 0, ResultWidth: width,
		Result: result, RowCallback: func(row int) { rows = append(rows, row) },
	})
	require.NoError(t, err)
	assert.Equal(t, 0, n) // no optimize pass configured
	assert.Equal(t, []uint8{0, 1, 1, 0}, result)
	assert.Equal(t, []int{0, 1}, rows)
}

func TestRunByteBandSkipsRowsBeforeOutputStart(t *testing.T) {
	p := testPalette(t, [][]uint8{{0, 0, 0}, {255, 255, 255}})
	lut, err := NewLUT(p, 3, p.NColors(), 1, 1, 1, 1, LUTNone)
	require.NoError(t, err)

	width, height := 2, 2
	data := []uint8{
		10, 10, 10, 240, 240, 240,
		250, 250, 250, 5, 5, 5,
	}
	result := make([]uint8, width*4)
	var rows []int
	_, err = runByteBand(&ByteBand{
		Data: data, Width: width, Height: height, Depth: 3,
		Palette: p, LUT: lut, Kernel: DiffuseNone,
		BandOrigin: 2, OutputStart: 3, ResultWidth: width,
		Result: result, RowCallback: func(row int) { rows = append(rows, row) },
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, rows, "row 2 is warm-up only, must not be committed")
}

func TestRunByteBandAppliesOptimizeRemap(t *testing.T) {
	p := testPalette(t, [][]uint8{{0, 0, 0}, {100, 100, 100}, {255, 255, 255}})
	lut, err := NewLUT(p, 3, p.NColors(), 1, 1, 1, 1, LUTNone)
	require.NoError(t, err)
	opt := newMigrationMap(false)

	width, height := 2, 1
	data := []uint8{255, 255, 255, 255, 255, 255} // both pixels nearest entry 2
	result := make([]uint8, width*height)
	n, err := runByteBand(&ByteBand{
		Data: data, Width: width, Height: height, Depth: 3,
		Palette: p, LUT: lut, Kernel: DiffuseNone, Optimize: opt,
		BandOrigin: 0, OutputStart: 0, ResultWidth: width,
		Result: result,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []uint8{0, 0}, result, "the only observed index compacts to slot 0")
}

func TestRunFloatBandRejectsVariableCoefficientKernel(t *testing.T) {
	p := testPalette(t, [][]uint8{{0, 0, 0}})
	require.NoError(t, p.WithFloatMirror([][]float32{{0, 0, 0}}))
	lut, err := NewLUT(p, 3, p.NColors(), 1, 1, 1, 1, LUTNone)
	require.NoError(t, err)

	_, err = runFloatBand(&FloatBand{
		Depth: 3, Palette: p, LUT: lut, Kernel: DiffuseLSO2,
	})
	require.Error(t, err)
}
