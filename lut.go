package sixel

// LUTPolicy selects the nearest-colour lookup accelerator.
type LUTPolicy int

const (
	LUTAuto LUTPolicy = iota
	LUTNone
	LUT5Bit
	LUT6Bit
	LUTCertlut
)

const emptySentinel int32 = -1

// LUT is the palette lookup accelerator. Dither.resolveLUT memoises
// one per (policy, ncolors, complexion, weights); MapPixel is O(1)
// after warm-up for dense/certlut policies.
type LUT struct {
	policy     LUTPolicy
	palette    *Palette
	depth      int
	complexion int32
	wR, wG, wB float64

	// dense mode state
	bits  int
	mask  int32
	shift uint
	dense []int32

	// certlut mode state
	cert *certlut
}

// resolveLUTPolicy turns LUTAuto into a concrete policy: certlut for
// large palettes, dense6 for mid-size, linear otherwise. depth != 3
// forces LUTNone regardless; an explicit dense/certlut policy instead
// fails with BadArgument for depth != 3 since it names what it wants,
// while Auto just degrades.
func resolveLUTPolicy(policy LUTPolicy, depth, ncolors int) LUTPolicy {
	if policy != LUTAuto {
		return policy
	}
	if depth != 3 {
		return LUTNone
	}
	switch {
	case ncolors > 64:
		return LUTCertlut
	case ncolors > 8:
		return LUT6Bit
	default:
		return LUTNone
	}
}

// NewLUT builds and configures a lookup accelerator for palette under
// policy. wR/wG/wB are component distance weights; complexion
// additionally multiplies the red term.
func NewLUT(palette *Palette, depth, ncolors, complexion int, wR, wG, wB float64, policy LUTPolicy) (*LUT, error) {
	resolved := resolveLUTPolicy(policy, depth, ncolors)
	if depth != 3 && (resolved == LUT5Bit || resolved == LUT6Bit || resolved == LUTCertlut) {
		return nil, newError(BadArgument, "lut: depth %d unsupported for policy %v", depth, resolved)
	}
	l := &LUT{
		policy:     resolved,
		palette:    palette,
		depth:      depth,
		complexion: int32(complexion),
		wR:         wR, wG: wG, wB: wB,
	}
	switch resolved {
	case LUT5Bit:
		l.bits = 5
	case LUT6Bit:
		l.bits = 6
	}
	if l.bits > 0 {
		l.shift = 8 - uint(l.bits)
		l.mask = int32(1<<l.bits) - 1
		size := 1 << (3 * l.bits)
		l.dense = make([]int32, size)
		for i := range l.dense {
			l.dense[i] = emptySentinel
		}
	}
	if resolved == LUTCertlut {
		cl, err := newCertlut(palette, wR, wG, wB, float64(complexion))
		if err != nil {
			return nil, err
		}
		l.cert = cl
	}
	return l, nil
}

// pack reduces a channel to l.bits via round-then-saturate, then
// concatenates MSB-first as (r<<2b | g<<b | b).
func (l *LUT) pack(r, g, b uint8) int32 {
	round := func(v uint8) int32 {
		half := int32(1) << (l.shift - 1)
		if l.shift == 0 {
			half = 0
		}
		x := (int32(v) + half) >> l.shift
		if x > l.mask {
			x = l.mask
		}
		return x
	}
	pr, pg, pb := round(r), round(g), round(b)
	return (pr << (2 * uint(l.bits))) | (pg << uint(l.bits)) | pb
}

// distance computes the weighted squared distance used by every
// lookup policy here: complexion*dr^2 + dg^2 + db^2, each component
// additionally scaled by wR/wG/wB.
func (l *LUT) distance(r, g, b uint8, entry []uint8) float64 {
	dr := float64(int32(r) - int32(entry[0]))
	dg := float64(int32(g) - int32(entry[1]))
	db := float64(int32(b) - int32(entry[2]))
	return l.wR*float64(l.complexion)*dr*dr + l.wG*dg*dg + l.wB*db*db
}

// exhaustive performs the brute-force scan, tie-broken by lowest
// index.
func (l *LUT) exhaustive(r, g, b uint8) int {
	best := 0
	bestD := l.distance(r, g, b, l.palette.Entries[0])
	for i := 1; i < len(l.palette.Entries); i++ {
		d := l.distance(r, g, b, l.palette.Entries[i])
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

// MapPixel resolves the palette index nearest to (r, g, b) under the
// configured policy, memoising dense-mode misses.
func (l *LUT) MapPixel(r, g, b uint8) int {
	switch l.policy {
	case LUTCertlut:
		return l.cert.lookup(r, g, b)
	case LUT5Bit, LUT6Bit:
		key := l.pack(r, g, b)
		if idx := l.dense[key]; idx != emptySentinel {
			return int(idx)
		}
		idx := l.exhaustive(r, g, b)
		l.dense[key] = int32(idx)
		return idx
	default: // LUTNone / LUTAuto-resolved-to-none
		return l.exhaustive(r, g, b)
	}
}

// MapPixelFloat resolves against float32 samples in [0,1], used when
// both the sample and palette carry float precision.
func (l *LUT) MapPixelFloat(r, g, b float32) int {
	toByte := func(v float32) uint8 {
		return clampByte(int32(v*255 + 0.5))
	}
	if l.policy == LUTCertlut || l.policy == LUT5Bit || l.policy == LUT6Bit {
		return l.MapPixel(toByte(r), toByte(g), toByte(b))
	}
	best := 0
	bestD := l.distanceFloat(r, g, b, l.palette.Float[0])
	for i := 1; i < len(l.palette.Float); i++ {
		d := l.distanceFloat(r, g, b, l.palette.Float[i])
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

func (l *LUT) distanceFloat(r, g, b float32, entry []float32) float64 {
	dr := float64(r - entry[0])
	dg := float64(g - entry[1])
	db := float64(b - entry[2])
	return l.wR*float64(l.complexion)*dr*dr + l.wG*dg*dg + l.wB*db*db
}
