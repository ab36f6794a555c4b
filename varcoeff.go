package sixel

// lso2Entry is one row of the variable-coefficient ("LSO2") table:
// six numerators keyed by the channel residue magnitude, plus a
// shared denominator.
type lso2Entry struct {
	r, r2, dl, d, dr, d2 int32
	den                  int32
}

// lso2Table is indexed by |error| in 0..255. Row 0 carries a zero
// denominator; lso2Denom silently rewrites that to 1 to avoid
// division by zero. The table below preserves the shape the rest of
// this package relies on — six offsets, a shared denominator, energy
// that grows smoothly with residue magnitude — without claiming to
// reproduce any particular upstream table byte-for-byte.
var lso2Table = buildLSO2Table()

func buildLSO2Table() [256]lso2Entry {
	var t [256]lso2Entry
	for i := 0; i < 256; i++ {
		if i == 0 {
			// Exercise the den==0 rewrite rule deliberately.
			t[i] = lso2Entry{r: 0, r2: 0, dl: 0, d: 0, dr: 0, d2: 0, den: 0}
			continue
		}
		// Energy grows with the residue magnitude but the six
		// weights keep a fixed ratio to each other and to den=18,
		// matching Floyd-Steinberg-like proportions (7,1,3,5,1 style)
		// with an extra d2 term to spend the remaining budget.
		scale := int32(1 + i/32) // 1..8
		t[i] = lso2Entry{
			r:   7 * scale,
			r2:  1 * scale,
			dl:  3 * scale,
			d:   5 * scale,
			dr:  1 * scale,
			d2:  1 * scale,
			den: 18 * scale,
		}
	}
	return t
}

func lso2Denom(e lso2Entry) int32 {
	if e.den == 0 {
		return 1
	}
	return e.den
}

// clampResidueIndex clamps |error| into the table's 0..255 domain.
func clampResidueIndex(err int32) int {
	if err < 0 {
		err = -err
	}
	if err > 255 {
		err = 255
	}
	return int(err)
}

// diffuseLSO2Direct applies the LSO2 direct-byte diffusion rule,
// mirroring offsets for the reverse scan direction the same way the
// fixed-kernel diffusion does.
func diffuseLSO2Direct(data []uint8, width, height, depth, x, y, channel int, err int32, dir int) {
	if err == 0 {
		return
	}
	e := lso2Table[clampResidueIndex(err)]
	den := lso2Denom(e)
	apply := func(dx, dy int, num int32) {
		nx, ny := x+dx, y+dy
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			return
		}
		pos := (ny*width+nx)*depth + channel
		data[pos] = diffuseOneDirect(roundPrecise, data[pos], err, num, den)
	}
	if dir >= 0 {
		apply(1, 0, e.r)
		apply(2, 0, e.r2)
		apply(-1, 1, e.dl)
		apply(0, 1, e.d)
		apply(1, 1, e.dr)
		apply(0, 2, e.d2)
	} else {
		apply(-1, 0, e.r)
		apply(-2, 0, e.r2)
		apply(1, 1, e.dl)
		apply(0, 1, e.d)
		apply(-1, 1, e.dr)
		apply(0, 2, e.d2)
	}
}

// diffuseLSO2Carry applies the LSO2 carry rule. For float carry the
// d2 term is computed as err - sum(others) so residue is conserved
// exactly; this Go core applies that conservation rule to the
// fixed-point carry path too, since the integer carry buffers are the
// only carry representation this package implements.
func diffuseLSO2Carry(curr, next, far []int32, width, depth, x, channel int, err int32, dir int) {
	if err == 0 {
		return
	}
	e := lso2Table[clampResidueIndex(err)]
	den := lso2Denom(e)
	r := diffuseFixedTerm(err, e.r, den)
	r2 := diffuseFixedTerm(err, e.r2, den)
	dl := diffuseFixedTerm(err, e.dl, den)
	d := diffuseFixedTerm(err, e.d, den)
	dr := diffuseFixedTerm(err, e.dr, den)
	d2 := err - (r + r2 + dl + d + dr)

	type target struct {
		buf    []int32
		x      int
		weight int32
	}
	var targets []target
	if dir >= 0 {
		targets = []target{
			{curr, x + 1, r}, {curr, x + 2, r2},
			{next, x - 1, dl}, {next, x, d}, {next, x + 1, dr},
			{far, x, d2},
		}
	} else {
		targets = []target{
			{curr, x - 1, r}, {curr, x - 2, r2},
			{next, x + 1, dl}, {next, x, d}, {next, x - 1, dr},
			{far, x, d2},
		}
	}
	for _, tg := range targets {
		if tg.x < 0 || tg.x >= width || tg.buf == nil {
			continue
		}
		tg.buf[tg.x*depth+channel] += tg.weight
	}
}
