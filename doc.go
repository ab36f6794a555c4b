// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sixel implements the quantize-and-render core of a SIXEL
// encoder: error-diffusion dithering against a caller-supplied palette,
// accelerated nearest-colour lookup, a parallel band scheduler and the
// run-length-encoded SIXEL bitstream emitter.
//
// Palette construction, image decoding, pixel-format normalisation and
// colour-space conversion are the caller's responsibility; this package
// only consumes an already-normalised RGB/float sample buffer and an
// already-built palette of at most 256 entries.
package sixel
