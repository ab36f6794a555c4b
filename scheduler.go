package sixel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// bandSpec describes one dispatchable unit of work: bandOrigin is the
// first row (in image coordinates) the worker reads, height is how
// many rows its private slab covers, and outputStart is the first
// row it is allowed to commit to the shared result buffer.
type bandSpec struct {
	bandOrigin, height, outputStart int
}

// planBandSpecs splits an image of the given height into contiguous
// output stripes of bandHeight rows, each widened backwards by
// overlap rows of warm-up so diffusion state has built up by the time
// a committed row is reached. The warm-up rows start from the
// original samples, not from the previous band's diffused state, so
// under an active diffusion kernel the committed rows approximate the
// serial result rather than reproducing it exactly.
func planBandSpecs(height, bandHeight, overlap int) []bandSpec {
	nbands := ceilDiv(height, bandHeight)
	specs := make([]bandSpec, nbands)
	for i := 0; i < nbands; i++ {
		y0 := i * bandHeight
		y1 := y0 + bandHeight
		if y1 > height {
			y1 = height
		}
		inLo := y0 - overlap
		if inLo < 0 {
			inLo = 0
		}
		specs[i] = bandSpec{bandOrigin: inLo, height: y1 - inLo, outputStart: y0}
	}
	return specs
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// dispatchOrder returns band indices in stride-interleaved order: the
// first `threads` entries seed one band per worker spread across the
// image, so no two workers contend over the image's first rows and
// every worker's later bands stay close in memory to its previous
// one.
func dispatchOrder(nbands, threads int) []int {
	if threads <= 0 {
		threads = 1
	}
	stride := ceilDiv(nbands, threads)
	order := make([]int, 0, nbands)
	for offset := 0; offset < stride; offset++ {
		for bandIndex := 0; bandIndex < threads; bandIndex++ {
			idx := bandIndex*stride + offset
			if idx < nbands {
				order = append(order, idx)
			}
		}
	}
	return order
}

// runBands dispatches job once per band, honoring the serial-path
// escape (threads <= 1 or bandHeight == 0 runs the whole image as one
// band) and otherwise bounding concurrency to threads via an
// errgroup. errgroup.SetLimit already enforces the bounded in-flight
// goroutine count a hand-rolled queue depth would give, so no
// separate queue-depth parameter is threaded through here.
func runBands(ctx context.Context, height, bandHeight, overlap, threads int, job func(bandSpec) error) error {
	if threads <= 1 || bandHeight == 0 {
		return job(bandSpec{bandOrigin: 0, height: height, outputStart: 0})
	}
	specs := planBandSpecs(height, bandHeight, overlap)
	nbands := len(specs)
	if threads > nbands {
		threads = nbands
	}
	if threads <= 1 {
		for _, spec := range specs {
			if err := job(spec); err != nil {
				return err
			}
		}
		return nil
	}
	order := dispatchOrder(nbands, threads)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for _, idx := range order {
		spec := specs[idx]
		g.Go(func() error { return job(spec) })
	}
	return g.Wait()
}
