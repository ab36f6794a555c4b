// Command sixelquant renders an image as a SIXEL escape sequence on
// stdout (or a file), quantizing it against a generated palette with
// the dither core.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"sort"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	sixelquant "github.com/dlecorfec/sixelquant"
)

func main() {
	var in, out, diffusion, scanMode, carryMode, lutPolicy string
	var colors, width, threads, bandHeight int
	var optimize, serpentineOverride bool

	flag.StringVar(&in, "i", "", "input image file path")
	flag.StringVar(&out, "o", "", "output file path (default: stdout)")
	flag.IntVar(&colors, "colors", 256, "palette size, 2-256")
	flag.IntVar(&width, "width", 0, "resize to this width, preserving aspect ratio (0 = no resize)")
	flag.StringVar(&diffusion, "diffuse", "fs", "fs|atkinson|jajuni|stucki|burkes|sierra1|sierra2|sierra3|adither|xdither|lso2|none")
	flag.StringVar(&scanMode, "scan", "auto", "auto|raster|serpentine")
	flag.StringVar(&carryMode, "carry", "auto", "auto|enable|disable")
	flag.StringVar(&lutPolicy, "lut", "auto", "auto|none|5bit|6bit|certlut")
	flag.IntVar(&threads, "threads", 1, "band worker concurrency")
	flag.IntVar(&bandHeight, "band", sixelquant.DefaultBandHeight, "parallel band height")
	flag.BoolVar(&optimize, "optimize", false, "compact the palette to actually-used entries")
	flag.BoolVar(&serpentineOverride, "serpentine", false, "force serpentine scanning")
	flag.Parse()

	if in == "" {
		fmt.Fprintln(os.Stderr, "an input file path must be specified with -i")
		os.Exit(1)
	}

	img, err := decodeImage(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant decode input %s: %s\n", in, err)
		os.Exit(1)
	}
	if width > 0 {
		img = resizeToWidth(img, width)
	}

	data, w, h := toRGBBuffer(img)
	entries := medianCutPalette(data, w, h, colors)
	palette, err := sixelquant.NewPalette(3, entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant build palette: %s\n", err)
		os.Exit(1)
	}

	opts := sixelquant.DefaultOptions()
	opts.Diffusion = parseDiffusion(diffusion)
	opts.ScanMode = parseScanMode(scanMode)
	if serpentineOverride {
		opts.ScanMode = sixelquant.ScanSerpentine
	}
	opts.CarryMode = parseCarryMode(carryMode)
	opts.LUTPolicy = parseLUTPolicy(lutPolicy)
	opts.Threads = threads
	opts.BandHeight = bandHeight
	opts.OptimizePalette = optimize

	dither := sixelquant.NewDither(palette, opts)
	index, ncolors, err := dither.Run(context.Background(), data, w, h, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant quantize image: %s\n", err)
		os.Exit(1)
	}

	var output *os.File
	if out == "" {
		output = os.Stdout
	} else {
		output, err = os.Create(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cant open output %s: %s\n", out, err)
			os.Exit(1)
		}
		defer output.Close()
	}

	bw := bufio.NewWriter(output)
	if err := encodeSixel(bw, index, w, h, palette, ncolors); err != nil {
		fmt.Fprintf(os.Stderr, "cant write sixel: %s\n", err)
		os.Exit(1)
	}
	bw.Flush()
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err == nil {
		return img, nil
	}
	// bmp is not registered under image.Decode by default.
	if _, serr := f.Seek(0, 0); serr == nil {
		if bimg, berr := bmp.Decode(f); berr == nil {
			return bimg, nil
		}
	}
	return nil, err
}

func resizeToWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() <= 0 {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func toRGBBuffer(img image.Image) (data []uint8, width, height int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	data = make([]uint8, width*height*3)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			data[i] = uint8(r >> 8)
			data[i+1] = uint8(g >> 8)
			data[i+2] = uint8(bl >> 8)
			i += 3
		}
	}
	return data, width, height
}

type pixel struct{ r, g, b uint8 }

// medianCutPalette builds a palette of at most n colors by recursively
// splitting the pixel population along its widest channel, the
// classic median-cut bucket quantizer.
func medianCutPalette(data []uint8, width, height, n int) [][]uint8 {
	if n < 2 {
		n = 2
	}
	if n > 256 {
		n = 256
	}
	pixels := make([]pixel, width*height)
	for i := range pixels {
		pixels[i] = pixel{data[i*3], data[i*3+1], data[i*3+2]}
	}

	type bucket []pixel
	buckets := []bucket{pixels}
	for len(buckets) < n {
		widest := -1
		widestRange := -1
		for i, buck := range buckets {
			if len(buck) < 2 {
				continue
			}
			_, _, _, rng := channelRange(buck)
			if rng > widestRange {
				widestRange = rng
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		buck := buckets[widest]
		axis, _, _, _ := channelRange(buck)
		sort.Slice(buck, func(i, j int) bool {
			switch axis {
			case 0:
				return buck[i].r < buck[j].r
			case 1:
				return buck[i].g < buck[j].g
			default:
				return buck[i].b < buck[j].b
			}
		})
		mid := len(buck) / 2
		left := append(bucket(nil), buck[:mid]...)
		right := append(bucket(nil), buck[mid:]...)
		buckets[widest] = left
		buckets = append(buckets, right)
	}

	entries := make([][]uint8, 0, len(buckets))
	for _, buck := range buckets {
		if len(buck) == 0 {
			continue
		}
		var sr, sg, sb int
		for _, p := range buck {
			sr += int(p.r)
			sg += int(p.g)
			sb += int(p.b)
		}
		count := len(buck)
		entries = append(entries, []uint8{
			uint8(sr / count), uint8(sg / count), uint8(sb / count),
		})
	}
	if len(entries) == 0 {
		entries = [][]uint8{{0, 0, 0}}
	}
	return entries
}

func channelRange(buck []pixel) (axis int, lo, hi, rng int) {
	minR, maxR := 255, 0
	minG, maxG := 255, 0
	minB, maxB := 255, 0
	for _, p := range buck {
		if int(p.r) < minR {
			minR = int(p.r)
		}
		if int(p.r) > maxR {
			maxR = int(p.r)
		}
		if int(p.g) < minG {
			minG = int(p.g)
		}
		if int(p.g) > maxG {
			maxG = int(p.g)
		}
		if int(p.b) < minB {
			minB = int(p.b)
		}
		if int(p.b) > maxB {
			maxB = int(p.b)
		}
	}
	rR, rG, rB := maxR-minR, maxG-minG, maxB-minB
	switch {
	case rR >= rG && rR >= rB:
		return 0, minR, maxR, rR
	case rG >= rB:
		return 1, minG, maxG, rG
	default:
		return 2, minB, maxB, rB
	}
}

func encodeSixel(w *bufio.Writer, index []uint8, width, height int, palette *sixelquant.Palette, ncolors int) error {
	enc := sixelquant.NewEncoder(w, sixelquant.DefaultOptions())
	if err := enc.EncodeHeader(width, height, palette); err != nil {
		return err
	}
	for y0 := 0; y0 < height; y0 += 6 {
		rows := 6
		if y0+rows > height {
			rows = height - y0
		}
		if err := enc.EncodeIndexBand(index, width, height, y0, rows, palette); err != nil {
			return err
		}
	}
	return enc.EncodeFooter()
}

func parseDiffusion(s string) sixelquant.Diffusion {
	switch s {
	case "atkinson":
		return sixelquant.DiffuseAtkinson
	case "jajuni":
		return sixelquant.DiffuseJajuni
	case "stucki":
		return sixelquant.DiffuseStucki
	case "burkes":
		return sixelquant.DiffuseBurkes
	case "sierra1":
		return sixelquant.DiffuseSierra1
	case "sierra2":
		return sixelquant.DiffuseSierra2
	case "sierra3":
		return sixelquant.DiffuseSierra3
	case "adither":
		return sixelquant.DiffuseADither
	case "xdither":
		return sixelquant.DiffuseXDither
	case "lso2":
		return sixelquant.DiffuseLSO2
	case "none":
		return sixelquant.DiffuseNone
	default:
		return sixelquant.DiffuseFS
	}
}

func parseScanMode(s string) sixelquant.ScanMode {
	switch s {
	case "raster":
		return sixelquant.ScanRaster
	case "serpentine":
		return sixelquant.ScanSerpentine
	default:
		return sixelquant.ScanAuto
	}
}

func parseCarryMode(s string) sixelquant.CarryMode {
	switch s {
	case "enable":
		return sixelquant.CarryEnable
	case "disable":
		return sixelquant.CarryDisable
	default:
		return sixelquant.CarryAuto
	}
}

func parseLUTPolicy(s string) sixelquant.LUTPolicy {
	switch s {
	case "none":
		return sixelquant.LUTNone
	case "5bit":
		return sixelquant.LUT5Bit
	case "6bit":
		return sixelquant.LUT6Bit
	case "certlut":
		return sixelquant.LUTCertlut
	default:
		return sixelquant.LUTAuto
	}
}
