package sixel

// Q12Shift and q12Round implement the fixed-point format carry
// arithmetic uses.
const (
	Q12Shift = 12
	q12Round = 1 << (Q12Shift - 1)
)

// clampByte saturates c to [0, 255].
func clampByte(c int32) uint8 {
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return uint8(c)
}

// applyTerm mirrors dx when scanning backwards (serpentine odd rows),
// collapsing separate forward/backward branches into one mirrored-
// offset computation.
func applyTerm(t term, dir int) (dx, dy int) {
	if dir < 0 {
		return -t.dx, t.dy
	}
	return t.dx, t.dy
}

// diffuseDirect writes the weighted quotient of error directly into
// the byte sample buffer, clipping to [0,255].
// data is the full width*height*depth buffer; x, y the source pixel;
// channel the channel offset within a depth-wide pixel.
func diffuseDirect(d Diffusion, data []uint8, width, height, depth, x, y, channel int, err int32, dir int) {
	weights := kernelWeights[d]
	form := roundingFor(d)
	for _, t := range weights {
		dx, dy := applyTerm(t, dir)
		nx, ny := x+dx, y+dy
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			continue
		}
		pos := (ny*width+nx)*depth + channel
		data[pos] = diffuseOneDirect(form, data[pos], err, t.num, t.den)
	}
}

func diffuseOneDirect(form roundingForm, sample uint8, err, num, den int32) uint8 {
	switch form {
	case roundNormal:
		c := int32(sample) + (err*num*2/den+1)/2
		return clampByte(c)
	case roundFast:
		c := int32(sample) + err*num/den
		return clampByte(c)
	default: // roundPrecise
		c := int32(sample) + diffuseFixedTermFloat(err, num, den)
		return clampByte(c)
	}
}

// diffuseFixedTermFloat implements the "precise" rounding rule
// floor(err*num/den + 0.5) using only integer arithmetic so results
// are reproducible regardless of float rounding mode.
func diffuseFixedTermFloat(err, num, den int32) int32 {
	n := int64(err) * int64(num)
	d := int64(den)
	// floor(n/d + 0.5) == floor((2n + d) / (2d))
	num2 := 2*n + d
	if num2 >= 0 {
		return int32(num2 / (2 * d))
	}
	// integer division truncates toward zero; adjust for floor.
	q := num2 / (2 * d)
	if num2%(2*d) != 0 {
		q--
	}
	return int32(q)
}

// diffuseFixedTerm computes q = round-to-nearest-ties-away-from-zero
// of (err*num)/den, the rounding rule the carry path uses throughout.
func diffuseFixedTerm(err, num, den int32) int32 {
	delta := int64(err) * int64(num)
	half := int64(den) / 2
	if delta >= 0 {
		delta = (delta + half) / int64(den)
	} else {
		delta = (delta - half) / int64(den)
	}
	return int32(delta)
}

// diffuseCarry adds scaled Q12 terms into the carry buffers. curr/next/far are width*depth-long arrays
// for the current/next/two-rows-below scanlines; only x and channel
// index into them (y is implicit: curr is "this row", etc).
func diffuseCarry(d Diffusion, curr, next, far []int32, width, depth, x, channel int, err int32, dir int) {
	weights := kernelWeights[d]
	for _, t := range weights {
		dx, _ := applyTerm(t, dir)
		nx := x + dx
		if nx < 0 || nx >= width {
			continue
		}
		q := diffuseFixedTerm(err, t.num, t.den)
		base := nx*depth + channel
		switch t.dy {
		case 0:
			curr[base] += q
		case 1:
			next[base] += q
		case 2:
			far[base] += q
		}
	}
}
