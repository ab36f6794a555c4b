package sixel

// floatClampRange returns the per-channel clamp bounds used by the
// float diffusion path: sRGB/linear float
// channels clamp to [0,1]; OKLab clamps asymmetric bounds per channel
// (L in [0,1], a/b roughly in [-0.5,0.5] — the caller is expected to
// have produced OKLab values in that convention upstream, this core
// only enforces the bound, it does not define the colour space).
func floatClampRange(format PixelFormat, channel int) (lo, hi float32) {
	if format == OKLABFLOAT32 && channel > 0 {
		return -0.5, 0.5
	}
	return 0, 1
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// oklabChromaScale is the dampening factor applied to chroma-channel
// (index 1, 2) error before diffusion when the pixel format is OKLab,
// preventing overshoot.
const oklabChromaScale = 0.10

// scaleErrForFormat applies the OKLab chroma dampening, a no-op for
// every other format.
func scaleErrForFormat(format PixelFormat, channel int, err float32) float32 {
	if format == OKLABFLOAT32 && channel > 0 {
		return err * oklabChromaScale
	}
	return err
}

// diffuseDirectFloat writes delta = err*(num/den) directly into a
// float32 sample buffer, clamped to the pixel format's channel range.
// Carry is forbidden on the float32 fast path for fixed kernels, so
// this is the only float diffusion entry point for fixed kernels.
func diffuseDirectFloat(d Diffusion, data []float32, format PixelFormat, width, height, depth, x, y, channel int, err float32, dir int) {
	weights := kernelWeights[d]
	lo, hi := floatClampRange(format, channel)
	for _, t := range weights {
		dx, dy := applyTerm(t, dir)
		nx, ny := x+dx, y+dy
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			continue
		}
		pos := (ny*width+nx)*depth + channel
		delta := err * (float32(t.num) / float32(t.den))
		data[pos] = clampFloat(data[pos]+delta, lo, hi)
	}
}
