package decodertest

import "fmt"

// block holds the scripted per-block values for one coding block.
type block struct {
	log2Size int
	qpY      int
	qpCb     int
	qpCr     int
	predMode int
}

// Frame is an in-memory decoded picture for tests.
//
// The zero value is not usable; create frames with NewFrame and populate
// them with SetBlock. Queries outside scripted blocks return -1, matching
// how an engine reports unset coding parameters.
type Frame struct {
	id        int
	gridW     int
	gridH     int
	minCBSize int

	// exponent per grid cell; 0 means interior of a larger block
	log2 [][]int
	// scripted blocks keyed by grid origin
	blocks map[[2]int]block
}

// NewFrame creates a frame with the given ID and a gridW x gridH minimum
// coding block grid scaled by minCBSize pixels per unit.
func NewFrame(id, gridW, gridH, minCBSize int) *Frame {
	log2 := make([][]int, gridH)
	for y := range log2 {
		log2[y] = make([]int, gridW)
	}
	return &Frame{
		id:        id,
		gridW:     gridW,
		gridH:     gridH,
		minCBSize: minCBSize,
		log2:      log2,
		blocks:    make(map[[2]int]block),
	}
}

// SetBlock scripts one coding block with its top-left corner at grid
// position (x0, y0). The block covers 1<<log2Size pixels on each side;
// interior grid cells are marked so the walker skips them. Panics on
// out-of-grid placement, which always indicates a broken test.
func (f *Frame) SetBlock(x0, y0, log2Size, qpY, qpCb, qpCr, predMode int) {
	cells := (1 << log2Size) / f.minCBSize
	if cells < 1 {
		cells = 1
	}
	if x0+cells > f.gridW || y0+cells > f.gridH {
		panic(fmt.Sprintf("decodertest: block at (%d,%d) log2 %d exceeds %dx%d grid",
			x0, y0, log2Size, f.gridW, f.gridH))
	}

	for dy := 0; dy < cells; dy++ {
		for dx := 0; dx < cells; dx++ {
			f.log2[y0+dy][x0+dx] = 0
		}
	}
	f.log2[y0][x0] = log2Size
	f.blocks[[2]int{x0, y0}] = block{
		log2Size: log2Size,
		qpY:      qpY,
		qpCb:     qpCb,
		qpCr:     qpCr,
		predMode: predMode,
	}
}

// ID implements decoder.Frame.
func (f *Frame) ID() int { return f.id }

// GridWidth implements decoder.Frame.
func (f *Frame) GridWidth() int { return f.gridW }

// GridHeight implements decoder.Frame.
func (f *Frame) GridHeight() int { return f.gridH }

// MinCBSize implements decoder.Frame.
func (f *Frame) MinCBSize() int { return f.minCBSize }

// Log2CBSize implements decoder.Frame.
func (f *Frame) Log2CBSize(x0, y0 int) int {
	if y0 < 0 || y0 >= f.gridH || x0 < 0 || x0 >= f.gridW {
		return 0
	}
	return f.log2[y0][x0]
}

// owner resolves the scripted block covering pixel (x, y). Linear scan is
// fine at test sizes.
func (f *Frame) owner(x, y int) (block, bool) {
	x0 := x / f.minCBSize
	y0 := y / f.minCBSize
	for origin, b := range f.blocks {
		cells := (1 << b.log2Size) / f.minCBSize
		if cells < 1 {
			cells = 1
		}
		if x0 >= origin[0] && x0 < origin[0]+cells &&
			y0 >= origin[1] && y0 < origin[1]+cells {
			return b, true
		}
	}
	return block{}, false
}

// LumaQP implements decoder.Frame.
func (f *Frame) LumaQP(x, y int) int {
	if b, ok := f.owner(x, y); ok {
		return b.qpY
	}
	return -1
}

// ChromaCbQP implements decoder.Frame.
func (f *Frame) ChromaCbQP(x, y int) int {
	if b, ok := f.owner(x, y); ok {
		return b.qpCb
	}
	return -1
}

// ChromaCrQP implements decoder.Frame.
func (f *Frame) ChromaCrQP(x, y int) int {
	if b, ok := f.owner(x, y); ok {
		return b.qpCr
	}
	return -1
}

// PredictionMode implements decoder.Frame.
func (f *Frame) PredictionMode(x, y int) int {
	if b, ok := f.owner(x, y); ok {
		return b.predMode
	}
	return -1
}
