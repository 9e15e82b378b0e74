package metrics

import "github.com/opd-ai/qpextract/decoder"

// Block describes one coding block: its pixel origin, its partition size
// exponent and its side length in pixels.
type Block struct {
	X        int
	Y        int
	Log2Size int
	Size     int
}

// Walk traverses the frame's minimum coding block grid in raster order
// (rows outer, columns inner) and invokes visit once per coding block, at
// the block's top-left corner. Grid cells with a partition size exponent
// of 0 lie inside a larger block already reported at its origin and are
// skipped.
//
// Walk is a pure function of the frame's query surface; it holds no state
// and performs no side effects of its own.
func Walk(f decoder.Frame, visit func(Block)) {
	minCBSize := f.MinCBSize()
	for y0 := 0; y0 < f.GridHeight(); y0++ {
		for x0 := 0; x0 < f.GridWidth(); x0++ {
			log2Size := f.Log2CBSize(x0, y0)
			if log2Size == 0 {
				continue
			}
			visit(Block{
				X:        x0 * minCBSize,
				Y:        y0 * minCBSize,
				Log2Size: log2Size,
				Size:     1 << log2Size,
			})
		}
	}
}
