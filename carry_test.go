package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCarryModeAutoDisables(t *testing.T) {
	assert.Equal(t, CarryDisable, resolveCarryMode(CarryAuto))
	assert.Equal(t, CarryEnable, resolveCarryMode(CarryEnable))
	assert.Equal(t, CarryDisable, resolveCarryMode(CarryDisable))
}

func TestCarryBuffersComposeConsumesAndRounds(t *testing.T) {
	c := newCarryBuffers(4, 3)
	data := []uint8{100, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	c.curr[0] = 1 << (Q12Shift - 1) // +0.5 in Q12

	got := c.compose(data, 0, 0)
	require.Equal(t, uint8(101), got)
	assert.Equal(t, int32(0), c.curr[0], "carry slot must be consumed after compose")
}

func TestCarryBuffersComposeClampsToByteRange(t *testing.T) {
	c := newCarryBuffers(1, 3)
	data := []uint8{250, 0, 0}
	c.curr[0] = 100 << Q12Shift

	got := c.compose(data, 0, 0)
	assert.Equal(t, uint8(255), got)
}

func TestCarryBuffersRotateShiftsAndZeroes(t *testing.T) {
	c := newCarryBuffers(2, 3)
	for i := range c.next {
		c.next[i] = int32(i + 1)
	}
	for i := range c.far {
		c.far[i] = int32(i + 100)
	}
	oldCurr := c.curr

	c.rotate()

	assert.Equal(t, int32(1), c.curr[0])
	assert.Equal(t, int32(100), c.next[0])
	assert.Same(t, &oldCurr[0], &c.far[0])
	for _, v := range c.far {
		assert.Equal(t, int32(0), v)
	}
}
