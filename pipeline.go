package sixel

import (
	"context"
)

// Logger receives the few diagnostic lines the pipeline emits: LUT
// policy resolution and palette-optimize counts. NewDither installs a
// no-op Logger that drops them; a nil Logger is not supported.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Dither is the mutable handle a caller configures once and reuses
// across frames: it owns the palette, its memoised LUT, and the
// options governing how each Dither.Run call quantizes and diffuses.
// It mirrors the sixel_dither_t handle of the reference encoder.
type Dither struct {
	Palette   *Palette
	Opts      *Options
	Allocator Allocator
	Logger    Logger
	env       Env

	lut         *LUT
	lutKey      lutCacheKey
	hasFloat    bool
	float32Pref *float32DitherCache
}

type lutCacheKey struct {
	policy     LUTPolicy
	ncolors    int
	complexion int
	wR, wG, wB float64
}

// NewDither builds a handle for palette under opts. A nil opts is
// equivalent to DefaultOptions(). The handle starts with
// DefaultAllocator{} and a no-op Logger; Run does not accept a nil
// Allocator or Logger.
func NewDither(palette *Palette, opts *Options) *Dither {
	return &Dither{
		Palette:   palette,
		Opts:      opts.normalize(),
		Allocator: DefaultAllocator{},
		Logger:    nopLogger{},
		env:       OSEnv{},
		hasFloat:  palette.Float != nil,
	}
}

// Clone returns a handle that shares this Dither's immutable LUT (once
// built) but copies the palette and options, so the clone's
// palette-optimize pass and per-call complexion overrides never
// disturb the original.
func (d *Dither) Clone() *Dither {
	cp := &Dither{
		Palette:   d.Palette.Clone(),
		Opts:      d.Opts,
		Allocator: d.Allocator,
		Logger:    d.Logger,
		env:       d.env,
		lut:       d.lut,
		lutKey:    d.lutKey,
		hasFloat:  d.hasFloat,
	}
	if cp.Opts == nil {
		cp.Opts = DefaultOptions()
	}
	o := *cp.Opts
	cp.Opts = &o
	return cp
}

// WithComplexion overrides the red-channel weight for one call without
// mutating the configured Options, invalidating the memoised LUT if
// the new weight differs from the one it was built with.
func (d *Dither) WithComplexion(complexion int) *Dither {
	cp := *d
	o := *d.Opts
	o.Complexion = complexion
	cp.Opts = &o
	return &cp
}

func (d *Dither) resolveLUT() (*LUT, error) {
	complexion := d.Opts.Complexion
	if complexion == 0 {
		complexion = DefaultComplexion
	}
	key := lutCacheKey{
		policy:     d.Opts.LUTPolicy,
		ncolors:    d.Palette.NColors(),
		complexion: complexion,
		wR:         d.Opts.WeightR, wG: d.Opts.WeightG, wB: d.Opts.WeightB,
	}
	if d.lut != nil && d.lutKey == key {
		return d.lut, nil
	}
	lut, err := NewLUT(d.Palette, d.Palette.Depth, d.Palette.NColors(), complexion,
		d.Opts.WeightR, d.Opts.WeightG, d.Opts.WeightB, d.Opts.LUTPolicy)
	if err != nil {
		return nil, err
	}
	d.Logger.Printf("sixel: lut policy resolved to %v for %d colors", lut.policy, d.Palette.NColors())
	d.lut = lut
	d.lutKey = key
	return lut, nil
}

// useFloat32 decides whether the float32 dither path runs: an
// explicit Options.Float32Dither always wins; otherwise one of the
// three float pixel formats always selects it, since only they carry
// float samples; for every other format the decision follows
// SIXEL_FLOAT32_DITHER (see env.go).
func (d *Dither) useFloat32() bool {
	if d.Opts.Float32Dither != nil {
		return *d.Opts.Float32Dither
	}
	if d.Opts.PixelFormat.IsFloat() {
		return true
	}
	if d.float32Pref == nil {
		d.float32Pref = newFloat32DitherCache(d.env)
	}
	return d.float32Pref.Enabled()
}

// Run quantizes and dithers data, a width*height*3 RGB buffer ([]uint8,
// or []float32 when useFloat32 selects the float path), into a
// width*height index buffer addressed one byte per pixel. rowCallback,
// when non-nil, is invoked once per committed output row. Within one
// band rows arrive in increasing order; when more than one thread is
// dispatched, bands run concurrently, so calls from different bands
// may interleave in any order and come from different goroutines.
func (d *Dither) Run(ctx context.Context, data any, width, height int, rowCallback func(row int)) ([]uint8, int, error) {
	if width <= 0 || height <= 0 {
		return nil, 0, newError(BadArgument, "dither: invalid dimensions %dx%d", width, height)
	}
	lut, err := d.resolveLUT()
	if err != nil {
		return nil, 0, err
	}

	opts := d.Opts
	positional := opts.Diffusion.IsPositional()
	serpentine := resolveScanMode(opts.ScanMode, positional)
	carryMode := resolveCarryMode(opts.CarryMode)
	threads := opts.Threads
	if opts.OptimizePalette {
		threads = 1
	}

	result, err := d.Allocator.Alloc(width * height)
	if err != nil {
		return nil, 0, newError(BadAllocation, "dither: result buffer: %v", err)
	}

	var optimize *migrationMap
	if opts.OptimizePalette {
		optimize = newMigrationMap(d.hasFloat)
	}

	floatPath := d.useFloat32()
	if floatPath && !d.hasFloat {
		return nil, 0, newError(BadInput, "dither: float32 path requested but palette has no float mirror")
	}

	job := func(spec bandSpec) error {
		if floatPath {
			src, ok := data.([]float32)
			if !ok {
				return newError(BadArgument, "dither: float32 path requires []float32 data")
			}
			slab := sliceBandFloat(src, width, spec)
			_, err := runFloatBand(&FloatBand{
				Data: slab, Width: width, Height: spec.height, Depth: 3,
				Format: opts.PixelFormat, Palette: d.Palette, LUT: lut, Kernel: opts.Diffusion,
				Serpentine: serpentine, Optimize: optimize,
				BandOrigin: spec.bandOrigin, OutputStart: spec.outputStart, ResultWidth: width,
				Result: result, RowCallback: rowCallback,
			})
			return err
		}
		src, ok := data.([]uint8)
		if !ok {
			return newError(BadArgument, "dither: byte path requires []uint8 data")
		}
		slab := sliceBandByte(src, width, spec)
		_, err := runByteBand(&ByteBand{
			Data: slab, Width: width, Height: spec.height, Depth: 3,
			Palette: d.Palette, LUT: lut, Kernel: opts.Diffusion,
			Serpentine: serpentine, Carry: carryMode, Optimize: optimize,
			BandOrigin: spec.bandOrigin, OutputStart: spec.outputStart, ResultWidth: width,
			Result: result, RowCallback: rowCallback,
		})
		return err
	}

	if err := runBands(ctx, height, opts.BandHeight, opts.Overlap, threads, job); err != nil {
		return nil, 0, err
	}

	ncolors := d.Palette.NColors()
	if optimize != nil {
		ncolors = optimize.Count()
		optimize.Apply(d.Palette)
		d.lut = nil // palette changed, force a rebuild on next Run
		d.Logger.Printf("sixel: palette optimized to %d colors", ncolors)
	}
	return result, ncolors, nil
}

// sliceBandByte copies spec's rows out of the shared input buffer into
// a private slab: band workers run concurrently and must never alias
// the same backing array, since a worker writes diffused error into
// its own slab as it goes.
func sliceBandByte(data []uint8, width int, spec bandSpec) []uint8 {
	start := spec.bandOrigin * width * 3
	end := start + spec.height*width*3
	slab := make([]uint8, end-start)
	copy(slab, data[start:end])
	return slab
}

func sliceBandFloat(data []float32, width int, spec bandSpec) []float32 {
	start := spec.bandOrigin * width * 3
	end := start + spec.height*width*3
	slab := make([]float32, end-start)
	copy(slab, data[start:end])
	return slab
}
