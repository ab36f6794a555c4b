package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationMapAssignsFirstSeenOrder(t *testing.T) {
	p := testPalette(t, [][]uint8{{0, 0, 0}, {10, 10, 10}, {20, 20, 20}})
	m := newMigrationMap(false)

	assert.Equal(t, 0, m.Map(2, p))
	assert.Equal(t, 1, m.Map(0, p))
	assert.Equal(t, 0, m.Map(2, p), "repeat observation returns the same compacted slot")
	assert.Equal(t, 2, m.Count())
}

func TestMigrationMapApplyCompactsPalette(t *testing.T) {
	p := testPalette(t, [][]uint8{{0, 0, 0}, {10, 10, 10}, {20, 20, 20}})
	m := newMigrationMap(false)
	m.Map(2, p)
	m.Map(0, p)
	m.Apply(p)

	require.Len(t, p.Entries, 2)
	assert.Equal(t, []uint8{20, 20, 20}, p.Entries[0])
	assert.Equal(t, []uint8{0, 0, 0}, p.Entries[1])
}

func TestMigrationMapCarriesFloatMirrorWhenPresent(t *testing.T) {
	p := testPalette(t, [][]uint8{{0, 0, 0}, {255, 255, 255}})
	require.NoError(t, p.WithFloatMirror([][]float32{{0, 0, 0}, {1, 1, 1}}))
	m := newMigrationMap(true)
	m.Map(1, p)
	m.Apply(p)

	require.Len(t, p.Float, 1)
	assert.Equal(t, float32(1), p.Float[0][0])
}
