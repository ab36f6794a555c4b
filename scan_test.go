package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanOrderRasterAlwaysLeftToRight(t *testing.T) {
	for y := 0; y < 4; y++ {
		start, end, step, dir := scanOrder(y, 10, false)
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
		assert.Equal(t, 1, step)
		assert.Equal(t, 1, dir)
	}
}

func TestScanOrderSerpentineAlternates(t *testing.T) {
	start, end, step, dir := scanOrder(0, 10, true)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
	assert.Equal(t, 1, dir)
	assert.Equal(t, 1, step)

	start, end, step, dir = scanOrder(1, 10, true)
	assert.Equal(t, 9, start)
	assert.Equal(t, -1, end)
	assert.Equal(t, -1, step)
	assert.Equal(t, -1, dir)
}

func TestResolveScanModeForcesRasterForPositional(t *testing.T) {
	assert.False(t, resolveScanMode(ScanSerpentine, true))
	assert.True(t, resolveScanMode(ScanSerpentine, false))
	assert.False(t, resolveScanMode(ScanRaster, false))
	assert.False(t, resolveScanMode(ScanAuto, false))
}
