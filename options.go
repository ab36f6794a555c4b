package sixel

// DefaultBandHeight is the default band height passed to the parallel
// scheduler when a caller leaves Options.BandHeight at zero.
const DefaultBandHeight = 18 // multiple of 6

// DefaultOverlap is the default per-band warm-up overlap.
const DefaultOverlap = 6

// DefaultComplexion is the default red-channel distance weight.
const DefaultComplexion = 1

// Options are the pipeline's dithering and rendering parameters.
// A nil *Options is equivalent to DefaultOptions().
type Options struct {
	PixelFormat PixelFormat
	Diffusion   Diffusion
	ScanMode    ScanMode
	CarryMode   CarryMode
	LUTPolicy   LUTPolicy

	// Complexion multiplies the red term of the nearest-colour
	// distance metric.
	Complexion int

	// Weight{R,G,B} additionally scale each channel's squared
	// distance. Zero values are treated as 1.0.
	WeightR, WeightG, WeightB float64

	// BandHeight and Overlap control the parallel band scheduler.
	// BandHeight is rounded up to a multiple of 6; Overlap is clamped
	// to BandHeight/2.
	BandHeight int
	Overlap    int
	Threads    int

	// OptimizePalette compacts the palette to actually-used entries.
	// It forces the serial path, since compaction needs to see every
	// pixel's chosen index in one consistent first-seen order.
	OptimizePalette bool

	// MaxRunLength caps a RLE run's repeat count, working around
	// terminals that mishandle very large `!<count><byte>` runs. Zero
	// disables the cap.
	MaxRunLength int

	// PaletteDefOrder, when true, emits palette colour definitions in
	// first-referenced order instead of palette index order.
	PaletteDefOrder bool

	// Float32Dither forces the float32 pipeline regardless of the
	// SIXEL_FLOAT32_DITHER environment variable. Nil means "consult
	// the environment"; non-nil overrides it.
	Float32Dither *bool
}

// DefaultOptions returns the zero-value-safe defaults: Floyd-Steinberg
// diffusion, automatic scan/carry/LUT resolution, a complexion weight
// of 1, and single-threaded band scheduling.
func DefaultOptions() *Options {
	return &Options{
		PixelFormat: RGB888,
		Diffusion:   DiffuseFS,
		ScanMode:    ScanAuto,
		CarryMode:   CarryAuto,
		LUTPolicy:   LUTAuto,
		Complexion:  DefaultComplexion,
		WeightR:     1, WeightG: 1, WeightB: 1,
		BandHeight: DefaultBandHeight,
		Overlap:    DefaultOverlap,
		Threads:    1,
	}
}

// normalize fills in zero-value fields left unset by a caller-built
// Options and clamps band scheduling parameters, mirroring the
// one-shot validation a *jpeg.Options value receives in Encode.
func (o *Options) normalize() *Options {
	if o == nil {
		return DefaultOptions()
	}
	n := *o
	if n.WeightR == 0 {
		n.WeightR = 1
	}
	if n.WeightG == 0 {
		n.WeightG = 1
	}
	if n.WeightB == 0 {
		n.WeightB = 1
	}
	if n.Complexion == 0 {
		n.Complexion = DefaultComplexion
	}
	if n.BandHeight <= 0 {
		n.BandHeight = DefaultBandHeight
	}
	n.BandHeight = roundUpToSix(n.BandHeight)
	if n.Overlap < 0 {
		n.Overlap = DefaultOverlap
	}
	if n.Overlap > n.BandHeight/2 {
		n.Overlap = n.BandHeight / 2
	}
	if n.Threads <= 0 {
		n.Threads = 1
	}
	return &n
}

func roundUpToSix(v int) int {
	if v%6 == 0 {
		return v
	}
	return v + (6 - v%6)
}
