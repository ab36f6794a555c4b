package sixel

// Diffusion enumerates the supported error-diffusion / dither
// strategies.
type Diffusion int

const (
	DiffuseNone Diffusion = iota
	DiffuseAtkinson
	DiffuseFS
	DiffuseJajuni
	DiffuseStucki
	DiffuseBurkes
	DiffuseSierra1
	DiffuseSierra2
	DiffuseSierra3
	DiffuseADither
	DiffuseXDither
	DiffuseLSO2
)

// IsPositional reports whether d is one of the deterministic
// per-pixel jitter masks rather than a true diffusion kernel.
func (d Diffusion) IsPositional() bool {
	return d == DiffuseADither || d == DiffuseXDither
}

// IsVariableCoefficient reports whether d reads its weights from the
// LSO2 256-entry table instead of a fixed weight set.
func (d Diffusion) IsVariableCoefficient() bool {
	return d == DiffuseLSO2
}

// term is one (dx, dy, num, den) weight of a diffusion kernel,
// expressed relative to the scan direction: dx is mirrored by the
// caller when scanning right-to-left (serpentine odd rows).
type term struct {
	dx, dy   int
	num, den int32
}

// kernelWeights holds the forward-scan weight table for a fixed
// kernel: numerator/denominator per offset, in the classic
// Floyd-Steinberg/Atkinson/Jarvis-Judice-Ninke/Stucki/Burkes/Sierra
// coefficient layouts.
var kernelWeights = map[Diffusion][]term{
	DiffuseFS: {
		{1, 0, 7, 16},
		{-1, 1, 3, 16}, {0, 1, 5, 16}, {1, 1, 1, 16},
	},
	DiffuseAtkinson: {
		{1, 0, 1, 8}, {2, 0, 1, 8},
		{-1, 1, 1, 8}, {0, 1, 1, 8}, {1, 1, 1, 8},
		{0, 2, 1, 8},
	},
	DiffuseJajuni: {
		{1, 0, 7, 48}, {2, 0, 5, 48},
		{-2, 1, 3, 48}, {-1, 1, 5, 48}, {0, 1, 7, 48}, {1, 1, 5, 48}, {2, 1, 3, 48},
		{-2, 2, 1, 48}, {-1, 2, 3, 48}, {0, 2, 5, 48}, {1, 2, 3, 48}, {2, 2, 1, 48},
	},
	DiffuseStucki: {
		{1, 0, 8, 48}, {2, 0, 4, 48},
		{-2, 1, 2, 48}, {-1, 1, 4, 48}, {0, 1, 8, 48}, {1, 1, 4, 48}, {2, 1, 2, 48},
		{-2, 2, 1, 48}, {-1, 2, 2, 48}, {0, 2, 4, 48}, {1, 2, 2, 48}, {2, 2, 1, 48},
	},
	DiffuseBurkes: {
		{1, 0, 8, 32}, {2, 0, 4, 32},
		{-2, 1, 2, 32}, {-1, 1, 4, 32}, {0, 1, 8, 32}, {1, 1, 4, 32}, {2, 1, 2, 32},
	},
	DiffuseSierra1: {
		{1, 0, 2, 4},
		{-1, 1, 1, 4}, {0, 1, 1, 4},
	},
	DiffuseSierra2: {
		{1, 0, 4, 32}, {2, 0, 3, 32},
		{-2, 1, 1, 32}, {-1, 1, 2, 32}, {0, 1, 3, 32}, {1, 1, 2, 32}, {2, 1, 1, 32},
		{-1, 2, 2, 32}, {0, 2, 3, 32}, {1, 2, 2, 32},
	},
	DiffuseSierra3: {
		{1, 0, 5, 32}, {2, 0, 3, 32},
		{-2, 1, 2, 32}, {-1, 1, 4, 32}, {0, 1, 5, 32}, {1, 1, 4, 32}, {2, 1, 2, 32},
		{-1, 2, 2, 32}, {0, 2, 3, 32}, {1, 2, 2, 32},
	},
}

// needsFar reports whether a kernel writes two rows below the current
// one, requiring the three-buffer carry rotation rather than a
// two-buffer reduction.
func needsFar(d Diffusion) bool {
	switch d {
	case DiffuseAtkinson, DiffuseJajuni, DiffuseStucki, DiffuseSierra2, DiffuseSierra3, DiffuseLSO2:
		return true
	default:
		return false
	}
}

// roundingForm selects which of the three direct-diffusion rounding
// rules a fixed kernel uses.
type roundingForm int

const (
	roundNormal roundingForm = iota // Floyd-Steinberg: (err*num*2/den + 1) / 2
	roundFast                       // Atkinson: err*num/den, truncated
	roundPrecise                    // 5x3 kernels: floor(err*num/den + 0.5)
)

func roundingFor(d Diffusion) roundingForm {
	switch d {
	case DiffuseFS:
		return roundNormal
	case DiffuseAtkinson:
		return roundFast
	default:
		return roundPrecise
	}
}
