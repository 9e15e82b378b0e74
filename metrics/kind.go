package metrics

// Value domain bounds. QP values outside [MinQPValue, MaxQPValue) are
// reported as anomalies and excluded from aggregation.
const (
	MinQPValue = 0
	MaxQPValue = 100

	// NumPredModes covers intra (0), inter (1) and skip (2).
	NumPredModes = 3

	// NumCTUSizes covers coding block sizes 8, 16, 32 and 64.
	NumCTUSizes = 4
)

// Kind selects which per-block coding parameter is extracted and
// aggregated.
type Kind int

const (
	// KindLumaQP is the luma quantization parameter.
	KindLumaQP Kind = iota
	// KindChromaCbQP is the chroma Cb quantization parameter.
	KindChromaCbQP
	// KindChromaCrQP is the chroma Cr quantization parameter.
	KindChromaCrQP
	// KindPredMode is the block prediction mode.
	KindPredMode
	// KindCTUSize is the coding block size.
	KindCTUSize
	// KindAll selects the detailed per-block schema: every parameter is
	// read and one row is emitted per block instead of per frame.
	KindAll
)

// String returns the flag-style name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLumaQP:
		return "qpy"
	case KindChromaCbQP:
		return "qpcb"
	case KindChromaCrQP:
		return "qpcr"
	case KindPredMode:
		return "pred"
	case KindCTUSize:
		return "ctu"
	case KindAll:
		return "full"
	}
	return "unknown"
}

// IsQP reports whether the kind is one of the three QP components.
func (k Kind) IsQP() bool {
	return k == KindLumaQP || k == KindChromaCbQP || k == KindChromaCrQP
}

// DomainSize returns the histogram bucket count for the kind.
func (k Kind) DomainSize() int {
	switch {
	case k.IsQP():
		return MaxQPValue
	case k == KindPredMode:
		return NumPredModes
	case k == KindCTUSize:
		return NumCTUSizes
	}
	return 0
}
