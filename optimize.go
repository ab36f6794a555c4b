package sixel

// migrationMap compacts the palette indices a band worker actually
// used into a dense prefix, in first-seen order.
type migrationMap struct {
	table      [MaxPaletteEntries]int // 0 => unseen, else compacted index + 1
	newEntries [][]uint8
	newFloat   [][]float32
	hasFloat   bool
}

func newMigrationMap(hasFloat bool) *migrationMap {
	return &migrationMap{hasFloat: hasFloat}
}

// Map returns the compacted index for orig, allocating a fresh slot
// the first time orig is observed and copying its palette row (and
// float mirror, when present) into the compacted tables.
func (m *migrationMap) Map(orig int, palette *Palette) int {
	if v := m.table[orig]; v != 0 {
		return v - 1
	}
	idx := len(m.newEntries)
	m.table[orig] = idx + 1
	row := make([]uint8, palette.Depth)
	copy(row, palette.Entries[orig])
	m.newEntries = append(m.newEntries, row)
	if m.hasFloat && palette.Float != nil {
		frow := make([]float32, palette.Depth)
		copy(frow, palette.Float[orig])
		m.newFloat = append(m.newFloat, frow)
	}
	return idx
}

// Count returns the number of distinct source indices observed.
func (m *migrationMap) Count() int { return len(m.newEntries) }

// Apply overwrites palette's entries (and float mirror) with the
// compacted tables, matching the post-worker memcpy of the original
// design.
func (m *migrationMap) Apply(palette *Palette) {
	palette.Entries = m.newEntries
	if m.hasFloat && m.newFloat != nil {
		palette.Float = m.newFloat
	}
}
