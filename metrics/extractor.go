package metrics

import "github.com/opd-ai/qpextract/decoder"

// Extract reads the kind's coding parameter for the block at b's origin.
// For KindCTUSize the value is derived from the block itself rather than
// queried. Domain validation happens later, in Distribution.Add.
func Extract(f decoder.Frame, k Kind, b Block) int {
	switch k {
	case KindLumaQP:
		return f.LumaQP(b.X, b.Y)
	case KindChromaCbQP:
		return f.ChromaCbQP(b.X, b.Y)
	case KindChromaCrQP:
		return f.ChromaCrQP(b.X, b.Y)
	case KindPredMode:
		return f.PredictionMode(b.X, b.Y)
	case KindCTUSize:
		return b.Size
	}
	return -1
}

// Detail holds every per-block coding parameter, used by the detailed
// per-block output schema.
type Detail struct {
	QPY      int
	QPCb     int
	QPCr     int
	PredMode int
	CTUSize  int
}

// ExtractAll reads all coding parameters for the block at b's origin.
func ExtractAll(f decoder.Frame, b Block) Detail {
	return Detail{
		QPY:      f.LumaQP(b.X, b.Y),
		QPCb:     f.ChromaCbQP(b.X, b.Y),
		QPCr:     f.ChromaCrQP(b.X, b.Y),
		PredMode: f.PredictionMode(b.X, b.Y),
		CTUSize:  b.Size,
	}
}
