package sixel

// PixelFormat enumerates the channel layouts the pipeline glue
// accepts at its boundary. The dither core itself only ever operates
// on a normalised 3-channel RGB buffer (byte or float32); every other
// format is expected to have been normalised upstream, outside this
// package's scope, before reaching Dither.Run.
type PixelFormat int

const (
	RGB888 PixelFormat = iota
	RGBA8888
	ARGB8888
	BGR888
	RGB555
	RGB565
	BGR555
	BGR565
	GA88
	AG88
	G8
	PAL1
	PAL2
	PAL4
	PAL8
	RGBFLOAT32
	LINEARRGBFLOAT32
	OKLABFLOAT32
)

// IsFloat reports whether the format's dither-core representation is
// float32 channels rather than 8-bit unsigned channels.
func (f PixelFormat) IsFloat() bool {
	switch f {
	case RGBFLOAT32, LINEARRGBFLOAT32, OKLABFLOAT32:
		return true
	default:
		return false
	}
}

// IsOKLab reports whether chroma-channel error needs the 0.10 scale
// applied before diffusion.
func (f PixelFormat) IsOKLab() bool {
	return f == OKLABFLOAT32
}

func (f PixelFormat) String() string {
	switch f {
	case RGB888:
		return "RGB888"
	case RGBA8888:
		return "RGBA8888"
	case ARGB8888:
		return "ARGB8888"
	case BGR888:
		return "BGR888"
	case RGB555:
		return "RGB555"
	case RGB565:
		return "RGB565"
	case BGR555:
		return "BGR555"
	case BGR565:
		return "BGR565"
	case GA88:
		return "GA88"
	case AG88:
		return "AG88"
	case G8:
		return "G8"
	case PAL1:
		return "PAL1"
	case PAL2:
		return "PAL2"
	case PAL4:
		return "PAL4"
	case PAL8:
		return "PAL8"
	case RGBFLOAT32:
		return "RGBFLOAT32"
	case LINEARRGBFLOAT32:
		return "LINEARRGBFLOAT32"
	case OKLABFLOAT32:
		return "OKLABFLOAT32"
	default:
		return "unknown"
	}
}
