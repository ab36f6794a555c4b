package sixel

// MaxPaletteEntries is the hard cap on palette size; a SIXEL colour
// register is addressed by a single index so entries never exceed 256.
const MaxPaletteEntries = 256

// Palette is an ordered sequence of at most MaxPaletteEntries colour
// entries. Depth is always 3 inside the dither core (RGB, alpha
// pre-stripped upstream). Float mirrors the same entries in [0,1]
// float32 when the caller is running the float32 pipeline; it may be
// nil when only the byte path is in use.
type Palette struct {
	Depth      int
	Entries    [][]uint8
	Float      [][]float32 // parallel to Entries, or nil
	KeyColor   int         // index designated transparent, or -1
	lut        *LUT        // not set by this package; Dither.resolveLUT memoises the LUT
	lutPolicy  LUTPolicy
	lutWR      float64
	lutWG      float64
	lutWB      float64
	lutComplex int
}

// NewPalette builds a Palette from depth-wide byte entries. KeyColor
// defaults to -1 (no transparency).
func NewPalette(depth int, entries [][]uint8) (*Palette, error) {
	if depth != 3 && depth != 4 {
		return nil, newError(BadArgument, "palette: unsupported depth %d", depth)
	}
	if len(entries) == 0 {
		return nil, newError(BadInput, "palette: ncolors == 0")
	}
	if len(entries) > MaxPaletteEntries {
		return nil, newError(BadInput, "palette: %d entries exceeds max %d", len(entries), MaxPaletteEntries)
	}
	for i, e := range entries {
		if len(e) != depth {
			return nil, newError(BadArgument, "palette: entry %d has %d channels, want %d", i, len(e), depth)
		}
	}
	cp := make([][]uint8, len(entries))
	for i, e := range entries {
		row := make([]uint8, depth)
		copy(row, e)
		cp[i] = row
	}
	return &Palette{Depth: depth, Entries: cp, KeyColor: -1}, nil
}

// WithFloatMirror attaches a parallel float32 representation, used by
// the float32 dither path.
func (p *Palette) WithFloatMirror(float [][]float32) error {
	if len(float) != len(p.Entries) {
		return newError(BadArgument, "palette: float mirror has %d rows, want %d", len(float), len(p.Entries))
	}
	cp := make([][]float32, len(float))
	for i, e := range float {
		row := make([]float32, p.Depth)
		copy(row, e)
		cp[i] = row
	}
	p.Float = cp
	return nil
}

// NColors returns the current number of live entries.
func (p *Palette) NColors() int { return len(p.Entries) }

// Clone returns a deep copy of the palette. Sharing one handle across
// goroutines the way a refcounted handle would is unnecessary here:
// Go's GC makes a deep copy cheap enough. The unexported lut fields
// are not copied.
func (p *Palette) Clone() *Palette {
	cp := &Palette{Depth: p.Depth, KeyColor: p.KeyColor}
	cp.Entries = make([][]uint8, len(p.Entries))
	for i, e := range p.Entries {
		row := make([]uint8, len(e))
		copy(row, e)
		cp.Entries[i] = row
	}
	if p.Float != nil {
		cp.Float = make([][]float32, len(p.Float))
		for i, e := range p.Float {
			row := make([]float32, len(e))
			copy(row, e)
			cp.Float[i] = row
		}
	}
	return cp
}
