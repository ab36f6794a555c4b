package sixel

import (
	"bufio"
	"io"
	"strconv"
)

// writer is the minimal sink the emitter needs: Flush lets callers
// supply their own buffering, matching an io.Writer that already
// implements it (bufio.Writer is wrapped around anything that does
// not).
type writer interface {
	Flush() error
	io.Writer
	io.ByteWriter
}

type bufWriter struct{ *bufio.Writer }

func (b bufWriter) Flush() error { return b.Writer.Flush() }

// Encoder turns an index buffer's nodes into the SIXEL bitstream. It
// owns the run-length state (pendingByte, pendingCount) and the
// currently-selected palette index across the whole stream, so bands
// are written with EncodeBand in sequence between one EncodeHeader
// and one EncodeFooter call.
type Encoder struct {
	w    writer
	opts *Options

	pendingByte  byte
	pendingCount int
	havePending  bool
	currentPal   int // -1 = none selected yet
	defined      []bool
}

// NewEncoder wraps w, buffering through bufio.Writer unless w already
// satisfies the writer interface.
func NewEncoder(w io.Writer, opts *Options) *Encoder {
	var ww writer
	if x, ok := w.(writer); ok {
		ww = x
	} else {
		ww = bufWriter{bufio.NewWriter(w)}
	}
	return &Encoder{w: ww, opts: opts.normalize(), currentPal: -1}
}

// EncodeHeader writes the DCS introducer and, unless PaletteDefOrder
// requests lazy inline definitions, every palette colour definition
// up front in index order.
func (e *Encoder) EncodeHeader(width, height int, palette *Palette) error {
	if _, err := e.w.Write([]byte{0x1B, 'P', 'q'}); err != nil {
		return err
	}
	if err := e.writeRasterAttrs(width, height); err != nil {
		return err
	}
	e.defined = make([]bool, palette.NColors())
	if e.opts.PaletteDefOrder {
		return nil
	}
	for i := 0; i < palette.NColors(); i++ {
		if err := e.writeColorDef(i, palette); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeRasterAttrs(width, height int) error {
	_, err := io.WriteString(e.w, "\"1;1;"+strconv.Itoa(width)+";"+strconv.Itoa(height)+"\n")
	return err
}

func (e *Encoder) writeColorDef(pal int, palette *Palette) error {
	entry := palette.Entries[pal]
	pr := (int(entry[0])*100 + 127) / 255
	pg := (int(entry[1])*100 + 127) / 255
	pb := (int(entry[2])*100 + 127) / 255
	_, err := io.WriteString(e.w, "#"+strconv.Itoa(pal)+";2;"+
		strconv.Itoa(pr)+";"+strconv.Itoa(pg)+";"+strconv.Itoa(pb))
	if err == nil && pal < len(e.defined) {
		e.defined[pal] = true
	}
	return err
}

// selectColor emits the colour-select command for pal: a bare "#n"
// once it has been defined, or a full "#n;2;r;g;b" the first time a
// PaletteDefOrder stream references it.
func (e *Encoder) selectColor(pal int, palette *Palette) error {
	if e.opts.PaletteDefOrder && pal < len(e.defined) && !e.defined[pal] {
		return e.writeColorDef(pal, palette)
	}
	_, err := io.WriteString(e.w, "#"+strconv.Itoa(pal))
	return err
}

// EncodeBand writes one band's node list against palette: colour
// selects, zero-bit padding, pattern bytes, carriage returns on
// backtracking starts and a trailing row advance.
func (e *Encoder) EncodeBand(nodes []sixelNode, palette *Palette) error {
	cursor := 0
	for _, n := range nodes {
		if n.startX < cursor {
			if err := e.flushRun(); err != nil {
				return err
			}
			if _, err := io.WriteString(e.w, "$\n"); err != nil {
				return err
			}
			cursor = 0
		}
		if n.pal != e.currentPal {
			if err := e.flushRun(); err != nil {
				return err
			}
			if err := e.selectColor(n.pal, palette); err != nil {
				return err
			}
			e.currentPal = n.pal
		}
		for x := cursor; x < n.startX; x++ {
			if err := e.pushByte(0x3F); err != nil {
				return err
			}
		}
		for x := n.startX; x < n.endX; x++ {
			if err := e.pushByte(0x3F + n.bits[x]); err != nil {
				return err
			}
		}
		cursor = n.endX
	}
	if err := e.flushRun(); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, "-\n")
	return err
}

// EncodeIndexBand builds and writes the node list for the band of
// rows [y0, y0+rows) of an index buffer imageHeight rows tall, so
// callers never need the unexported node representation directly.
func (e *Encoder) EncodeIndexBand(index []uint8, width, imageHeight, y0, rows int, palette *Palette) error {
	nodes := buildBandNodes(index, width, imageHeight, y0, rows, palette, palette.KeyColor)
	return e.EncodeBand(nodes, palette)
}

// EncodeBody runs EncodeBand over several bands without an
// intervening header or footer, so several images can share one
// already-open DCS sequence.
func (e *Encoder) EncodeBody(bands [][]sixelNode, palette *Palette) error {
	for _, nodes := range bands {
		if err := e.EncodeBand(nodes, palette); err != nil {
			return err
		}
	}
	return nil
}

// EncodeFooter flushes any pending run, writes the string terminator
// and flushes the underlying writer.
func (e *Encoder) EncodeFooter() error {
	if err := e.flushRun(); err != nil {
		return err
	}
	if _, err := e.w.Write([]byte{0x1B, '\\'}); err != nil {
		return err
	}
	return e.w.Flush()
}

// pushByte feeds one sixel byte into the run-length state, flushing
// the previous run when the byte value changes.
func (e *Encoder) pushByte(v byte) error {
	if e.havePending && v == e.pendingByte {
		e.pendingCount++
		return nil
	}
	if err := e.flushRun(); err != nil {
		return err
	}
	e.pendingByte = v
	e.pendingCount = 1
	e.havePending = true
	return nil
}

// flushRun writes the accumulated run, splitting it into chunks no
// longer than Options.MaxRunLength when that guard is enabled so
// terminals that mishandle huge repeat counts stay safe.
func (e *Encoder) flushRun() error {
	if !e.havePending || e.pendingCount == 0 {
		e.havePending = false
		return nil
	}
	remaining := e.pendingCount
	limit := e.opts.MaxRunLength
	for remaining > 0 {
		n := remaining
		if limit > 0 && n > limit {
			n = limit
		}
		if err := e.writeRun(n, e.pendingByte); err != nil {
			return err
		}
		remaining -= n
	}
	e.havePending = false
	e.pendingCount = 0
	return nil
}

func (e *Encoder) writeRun(count int, b byte) error {
	if count > 3 {
		if _, err := io.WriteString(e.w, "!"+strconv.Itoa(count)); err != nil {
			return err
		}
		return e.w.WriteByte(b)
	}
	for i := 0; i < count; i++ {
		if err := e.w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
