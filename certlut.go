package sixel

import "math"

// certlut is a lazily-built RGB octree accelerator: a 64³ level-0 grid
// refines, on demand, into an octree whose leaves certify that an
// entire cube resolves to one palette entry, backed by a k-d tree
// over the palette for the best/second-best distance queries that
// certification needs.
//
// Cells are addressed by cellLoc (a slice tag plus index), never by a
// pointer held across a pool growth, so growing pool (which may
// reallocate the backing array) never invalidates a previously
// computed cell reference: build and resolve always re-derive the
// live *certCell from its location after any append.
type certlut struct {
	palette    *Palette
	wR, wG, wB float64
	complexion float64

	level0 []certCell // 64*64*64 lazily-built root cells, cube size 4
	pool   []certCell // lazily-grown child blocks of 8

	kdRoot int32
	kdNode []kdNode
}

type certCellKind uint8

const (
	certUnset certCellKind = iota
	certLeaf
	certBranch
)

type certCell struct {
	kind      certCellKind
	leaf      int32
	childBase int32
}

type cube struct {
	rmin, gmin, bmin, size int
}

// cellLoc names a cell by its owning slice and index rather than by
// pointer, so a reference can be re-resolved after pool grows.
type cellLoc struct {
	inPool bool
	idx    int32
}

func (c *certlut) cellAt(loc cellLoc) *certCell {
	if loc.inPool {
		return &c.pool[loc.idx]
	}
	return &c.level0[loc.idx]
}

const certGridBits = 6 // 64 = 1<<6
const certGridSize = 1 << certGridBits
const certCellSpan = 256 / certGridSize // 4

func newCertlut(p *Palette, wR, wG, wB, complexion float64) (*certlut, error) {
	if len(p.Entries) == 0 {
		return nil, newError(BadInput, "certlut: empty palette")
	}
	c := &certlut{
		palette:    p,
		wR:         wR, wG: wG, wB: wB,
		complexion: complexion,
		level0:     make([]certCell, certGridSize*certGridSize*certGridSize),
	}
	c.buildKDTree()
	return c, nil
}

// --- k-d tree over palette entries, axis = depth % 3 ---

type kdNode struct {
	idx         int
	left, right int32 // -1 = none
}

func (c *certlut) buildKDTree() {
	n := len(c.palette.Entries)
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	c.kdNode = make([]kdNode, 0, n)
	c.kdRoot = c.buildKD(idxs, 0)
}

func (c *certlut) buildKD(idxs []int, depth int) int32 {
	if len(idxs) == 0 {
		return -1
	}
	axis := depth % 3
	sortByAxis(idxs, c.palette.Entries, axis)
	mid := len(idxs) / 2
	node := kdNode{idx: idxs[mid], left: -1, right: -1}
	pos := int32(len(c.kdNode))
	c.kdNode = append(c.kdNode, node)
	left := c.buildKD(idxs[:mid], depth+1)
	right := c.buildKD(idxs[mid+1:], depth+1)
	c.kdNode[pos].left = left
	c.kdNode[pos].right = right
	return pos
}

// sortByAxis is an insertion sort (palettes are at most 256 entries,
// this runs once at configure) over idxs keyed by entry[axis].
func sortByAxis(idxs []int, entries [][]uint8, axis int) {
	for i := 1; i < len(idxs); i++ {
		v := idxs[i]
		key := entries[v][axis]
		j := i - 1
		for j >= 0 && entries[idxs[j]][axis] > key {
			idxs[j+1] = idxs[j]
			j--
		}
		idxs[j+1] = v
	}
}

func (c *certlut) weightedSqDist(r, g, b int, entry []uint8) float64 {
	dr := float64(r - int(entry[0]))
	dg := float64(g - int(entry[1]))
	db := float64(b - int(entry[2]))
	return c.complexion*c.wR*dr*dr + c.wG*dg*dg + c.wB*db*db
}

// distancePair returns the best and second-best palette index and
// their weighted squared distances to (r,g,b), via a k-d tree search.
func (c *certlut) distancePair(r, g, b int) (best, second int, bestD, secondD float64) {
	best, second = -1, -1
	bestD, secondD = math.Inf(1), math.Inf(1)
	var visit func(node int32, depth int)
	visit = func(node int32, depth int) {
		if node < 0 {
			return
		}
		n := c.kdNode[node]
		entry := c.palette.Entries[n.idx]
		d := c.weightedSqDist(r, g, b, entry)
		switch {
		case d < bestD:
			second, secondD = best, bestD
			best, bestD = n.idx, d
		case d < secondD && n.idx != best:
			second, secondD = n.idx, d
		}
		axis := depth % 3
		var near, far int32
		diff := float64(0)
		switch axis {
		case 0:
			diff = float64(r) - float64(entry[0])
		case 1:
			diff = float64(g) - float64(entry[1])
		default:
			diff = float64(b) - float64(entry[2])
		}
		if diff < 0 {
			near, far = n.left, n.right
		} else {
			near, far = n.right, n.left
		}
		visit(near, depth+1)
		// Only descend the far side if it could still hold something
		// closer than the current second-best bound.
		if diff*diff < secondD {
			visit(far, depth+1)
		}
	}
	visit(c.kdRoot, 0)
	if second < 0 {
		second, secondD = best, bestD
	}
	return
}

// certifies reports whether a cube of the given size can be certified
// as entirely belonging to the best candidate, i.e. whether
// (second - best)^2 > 3*size^2*||w.delta||^2. Distances here are
// already squared, so the comparison is linear in the distance gap.
func (c *certlut) certifies(bestD, secondD float64, size int) bool {
	wMagSq := c.wR*c.wR + c.wG*c.wG + c.wB*c.wB
	bound := 3 * float64(size*size) * wMagSq
	return (secondD - bestD) > bound
}

// build materialises cell for cube cb, deciding leaf vs branch.
// Allocation in Go cannot fail the way a caller-provided C allocator
// can; the fallback for allocation failure is implemented as a bound
// on pool growth so the invariant ("lookup never observes
// inconsistent state") stays checkable even though the failure mode
// itself cannot be triggered by ordinary Go allocation.
const certMaxPoolCells = 1 << 24 // far beyond any real palette/depth

func (c *certlut) build(loc cellLoc, cb cube) {
	cx := cb.rmin + cb.size/2
	cy := cb.gmin + cb.size/2
	cz := cb.bmin + cb.size/2
	best, _, bestD, secondD := c.distancePair(cx, cy, cz)
	if cb.size <= 1 || c.certifies(bestD, secondD, cb.size) {
		cell := c.cellAt(loc)
		cell.kind = certLeaf
		cell.leaf = int32(best)
		return
	}
	if len(c.pool)+8 > certMaxPoolCells {
		// Allocation-failure fallback: certify this cube too, using
		// the best candidate found so far, rather than leaving it
		// unset.
		cell := c.cellAt(loc)
		cell.kind = certLeaf
		cell.leaf = int32(best)
		return
	}
	base := int32(len(c.pool))
	c.pool = append(c.pool, make([]certCell, 8)...)
	// c.pool may have just been reallocated by append: re-derive the
	// live cell from loc rather than writing through a pointer taken
	// before the growth, which would land in the orphaned backing
	// array and leave the real slot stuck at certUnset forever.
	cell := c.cellAt(loc)
	cell.kind = certBranch
	cell.childBase = base
}

// lookup descends the level-0 grid then the octree, building cells on
// demand.
func (c *certlut) lookup(r, g, b uint8) int {
	ri := int(r) / certCellSpan
	gi := int(g) / certCellSpan
	bi := int(b) / certCellSpan
	idx0 := (ri*certGridSize+gi)*certGridSize + bi
	cb := cube{rmin: ri * certCellSpan, gmin: gi * certCellSpan, bmin: bi * certCellSpan, size: certCellSpan}
	return c.resolve(cellLoc{idx: int32(idx0)}, cb, int(r), int(g), int(b))
}

func (c *certlut) resolve(loc cellLoc, cb cube, r, g, b int) int {
	for {
		cell := c.cellAt(loc)
		if cell.kind == certUnset {
			c.build(loc, cb)
			cell = c.cellAt(loc)
		}
		if cell.kind == certLeaf {
			return int(cell.leaf)
		}
		half := cb.size / 2
		rmid, gmid, bmid := cb.rmin+half, cb.gmin+half, cb.bmin+half
		oct := 0
		nrmin, ngmin, nbmin := cb.rmin, cb.gmin, cb.bmin
		if r >= rmid {
			oct |= 4
			nrmin = rmid
		}
		if g >= gmid {
			oct |= 2
			ngmin = gmid
		}
		if b >= bmid {
			oct |= 1
			nbmin = bmid
		}
		loc = cellLoc{inPool: true, idx: cell.childBase + int32(oct)}
		cb = cube{rmin: nrmin, gmin: ngmin, bmin: nbmin, size: half}
	}
}

// stats reports pool/leaf/branch counts, used only by tests — never
// by the lookup path itself.
type certStats struct {
	PoolCells  int
	Leaves     int
	Branches   int
	Level0Used int
}

func (c *certlut) stats() certStats {
	var s certStats
	s.PoolCells = len(c.pool)
	count := func(cell certCell) {
		switch cell.kind {
		case certLeaf:
			s.Leaves++
		case certBranch:
			s.Branches++
		}
	}
	for _, cell := range c.level0 {
		if cell.kind != certUnset {
			s.Level0Used++
		}
		count(cell)
	}
	for _, cell := range c.pool {
		count(cell)
	}
	return s
}
