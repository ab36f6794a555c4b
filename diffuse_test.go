package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampByteSaturates(t *testing.T) {
	assert.Equal(t, uint8(0), clampByte(-5))
	assert.Equal(t, uint8(255), clampByte(300))
	assert.Equal(t, uint8(128), clampByte(128))
}

func TestApplyTermMirrorsDxOnBackwardScan(t *testing.T) {
	tm := term{dx: 1, dy: 1, num: 3, den: 16}
	dx, dy := applyTerm(tm, 1)
	assert.Equal(t, 1, dx)
	assert.Equal(t, 1, dy)

	dx, dy = applyTerm(tm, -1)
	assert.Equal(t, -1, dx)
	assert.Equal(t, 1, dy)
}

// TestDiffuseDirectFloydSteinbergConservesError checks that the total
// error pushed into neighbouring pixels, weighted back out by their
// own num/den fractions, never exceeds the injected error by more
// than the unavoidable per-term rounding.
func TestDiffuseDirectFloydSteinbergConservesError(t *testing.T) {
	width, height, depth := 4, 4, 1
	data := make([]uint8, width*height*depth)
	for i := range data {
		data[i] = 128
	}
	// Error injected at (1,1) channel 0, forward scan.
	diffuseDirect(DiffuseFS, data, width, height, depth, 1, 1, 0, 16, 1)

	// Floyd-Steinberg distributes 7/16, 3/16, 5/16, 1/16 of the error.
	assert.Equal(t, uint8(135), data[(1*width+2)*depth]) // +7
	assert.Equal(t, uint8(131), data[(2*width+0)*depth]) // +3
	assert.Equal(t, uint8(133), data[(2*width+1)*depth]) // +5
	assert.Equal(t, uint8(129), data[(2*width+2)*depth]) // +1
}

func TestDiffuseDirectSkipsOutOfBoundsNeighbors(t *testing.T) {
	width, height, depth := 2, 2, 1
	data := []uint8{100, 100, 100, 100}
	// Bottom-right corner: every FS neighbour is out of bounds.
	assert.NotPanics(t, func() {
		diffuseDirect(DiffuseFS, data, width, height, depth, 1, 1, 0, 16, 1)
	})
}

func TestDiffuseFixedTermRoundsTiesAwayFromZero(t *testing.T) {
	assert.Equal(t, int32(1), diffuseFixedTerm(1, 1, 2))
	assert.Equal(t, int32(-1), diffuseFixedTerm(-1, 1, 2))
	assert.Equal(t, int32(0), diffuseFixedTerm(0, 1, 2))
}

func TestDiffuseCarryAccumulatesIntoCorrectRow(t *testing.T) {
	width, depth := 3, 1
	curr := make([]int32, width*depth)
	next := make([]int32, width*depth)
	far := make([]int32, width*depth)
	diffuseCarry(DiffuseFS, curr, next, far, width, depth, 0, 0, 16, 1)

	assert.NotEqual(t, int32(0), curr[1], "same-row term must land in curr")
	assert.NotEqual(t, int32(0), next[0], "row-below terms must land in next")
	assert.Equal(t, int32(0), far[0], "FS never writes two rows down")
}
