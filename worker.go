package sixel

// ByteBand holds one band worker's inputs for the 8-bit sample path.
// Data is the private width*height*depth slab the caller has already
// copied (with overlap rows prepended); Result is the shared,
// full-image-sized index buffer addressed via BandOrigin.
type ByteBand struct {
	Data           []uint8
	Width, Height  int
	Depth          int
	Palette        *Palette
	LUT            *LUT
	Kernel         Diffusion
	Serpentine     bool
	Carry          CarryMode // resolved: CarryEnable or CarryDisable
	Optimize       *migrationMap
	BandOrigin     int
	OutputStart    int
	ResultWidth    int
	Result         []uint8
	RowCallback    func(row int)
}

// runByteBand executes the per-scanline algorithm of the band worker
// over the 8-bit path: compose sample (direct or carry) -> lookup ->
// optional palette-optimize remap -> conditional write -> diffuse.
func runByteBand(b *ByteBand) (int, error) {
	if b.Depth != 3 {
		return 0, newError(BadArgument, "worker: depth %d unsupported", b.Depth)
	}
	if b.LUT == nil {
		return 0, newError(BadArgument, "worker: nil LUT")
	}
	width, height, depth := b.Width, b.Height, b.Depth
	positional := b.Kernel.IsPositional()
	variable := b.Kernel.IsVariableCoefficient()
	useCarry := b.Carry == CarryEnable && !positional

	var carry *carryBuffers
	if useCarry {
		carry = newCarryBuffers(width, depth)
	}

	for y := 0; y < height; y++ {
		globalY := b.BandOrigin + y
		start, end, step, dir := scanOrder(globalY, width, b.Serpentine)
		for x := start; x != end; x += step {
			pos := (y*width+x)*depth
			var sample [3]uint8
			if useCarry {
				base := x * depth
				for c := 0; c < depth; c++ {
					sample[c] = carry.compose(b.Data, pos+c, base+c)
				}
			} else {
				for c := 0; c < depth; c++ {
					sample[c] = b.Data[pos+c]
				}
			}

			r, g, bl := sample[0], sample[1], sample[2]
			if positional {
				r = jitterByte(b.Kernel, r, x, globalY, 0)
				g = jitterByte(b.Kernel, g, x, globalY, 1)
				bl = jitterByte(b.Kernel, bl, x, globalY, 2)
			}

			idx := b.LUT.MapPixel(r, g, bl)
			outIdx := idx
			if b.Optimize != nil {
				outIdx = b.Optimize.Map(idx, b.Palette)
			}
			if globalY >= b.OutputStart {
				b.Result[globalY*b.ResultWidth+x] = uint8(outIdx)
			}

			if !positional {
				entry := b.Palette.Entries[idx]
				for c := 0; c < depth; c++ {
					errv := int32(sample[c]) - int32(entry[c])
					switch {
					case variable && useCarry:
						diffuseLSO2Carry(carry.curr, carry.next, carry.far, width, depth, x, c, errv, dir)
					case variable:
						diffuseLSO2Direct(b.Data, width, height, depth, x, y, c, errv, dir)
					case useCarry:
						diffuseCarry(b.Kernel, carry.curr, carry.next, carry.far, width, depth, x, c, errv, dir)
					default:
						diffuseDirect(b.Kernel, b.Data, width, height, depth, x, y, c, errv, dir)
					}
				}
			}
		}
		if useCarry {
			carry.rotate()
		}
		if b.RowCallback != nil && globalY >= b.OutputStart {
			b.RowCallback(globalY)
		}
	}

	ncolors := 0
	if b.Optimize != nil {
		ncolors = b.Optimize.Count()
	}
	return ncolors, nil
}

// FloatBand holds one band worker's inputs for the float32 sample
// path. Carry is always disabled here: carry buffers are forbidden on
// the float32 fast path for fixed kernels, and LSO2 has no float
// variant in this core (see DESIGN.md).
type FloatBand struct {
	Data          []float32
	Width, Height int
	Depth         int
	Format        PixelFormat
	Palette       *Palette
	LUT           *LUT
	Kernel        Diffusion
	Serpentine    bool
	Optimize      *migrationMap
	BandOrigin    int
	OutputStart   int
	ResultWidth   int
	Result        []uint8
	RowCallback   func(row int)
}

func runFloatBand(b *FloatBand) (int, error) {
	if b.Depth != 3 {
		return 0, newError(BadArgument, "worker: depth %d unsupported", b.Depth)
	}
	if b.LUT == nil {
		return 0, newError(BadArgument, "worker: nil LUT")
	}
	if b.Kernel.IsVariableCoefficient() {
		return 0, newError(BadArgument, "worker: LSO2 has no float32 path")
	}
	width, height, depth := b.Width, b.Height, b.Depth
	positional := b.Kernel.IsPositional()

	for y := 0; y < height; y++ {
		globalY := b.BandOrigin + y
		start, end, step, dir := scanOrder(globalY, width, b.Serpentine)
		for x := start; x != end; x += step {
			pos := (y*width+x)*depth
			var sample [3]float32
			for c := 0; c < depth; c++ {
				sample[c] = b.Data[pos+c]
			}

			r, g, bl := sample[0], sample[1], sample[2]
			if positional {
				r = jitterFloat(b.Kernel, r, x, globalY, 0, b.Format)
				g = jitterFloat(b.Kernel, g, x, globalY, 1, b.Format)
				bl = jitterFloat(b.Kernel, bl, x, globalY, 2, b.Format)
			}

			idx := b.LUT.MapPixelFloat(r, g, bl)
			outIdx := idx
			if b.Optimize != nil {
				outIdx = b.Optimize.Map(idx, b.Palette)
			}
			if globalY >= b.OutputStart {
				b.Result[globalY*b.ResultWidth+x] = uint8(outIdx)
			}

			if !positional {
				entry := b.Palette.Float[idx]
				for c := 0; c < depth; c++ {
					errv := scaleErrForFormat(b.Format, c, sample[c]-entry[c])
					diffuseDirectFloat(b.Kernel, b.Data, b.Format, width, height, depth, x, y, c, errv, dir)
				}
			}
		}
		if b.RowCallback != nil && globalY >= b.OutputStart {
			b.RowCallback(globalY)
		}
	}

	ncolors := 0
	if b.Optimize != nil {
		ncolors = b.Optimize.Count()
	}
	return ncolors, nil
}
