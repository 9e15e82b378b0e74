package qpextract

import (
	"fmt"

	"github.com/opd-ai/qpextract/decoder"
	"github.com/opd-ai/qpextract/metrics"
)

// Options configures one analyzer run. Construct with NewOptions and
// adjust fields before passing to New; the value is not mutated
// afterwards and no process-wide state is involved.
type Options struct {
	// Mode selects the active metric kind and with it the output schema.
	Mode metrics.Kind

	// MinPrintedQP and MaxPrintedQP bound the histogram buckets emitted
	// in the QP schemas. Statistics columns always cover the full QP
	// domain regardless of these bounds.
	MinPrintedQP int
	MaxPrintedQP int

	// NALInput selects length-prefixed framing for the input stream.
	NALInput bool

	// CheckHash requests SEI picture hash validation from the engine.
	CheckHash bool

	// MaxTemporalID limits decoding to temporal sublayers up to this ID.
	MaxTemporalID int

	// DisableDeblocking, DisableSAO and NoAcceleration are passed through
	// to the engine unchanged.
	DisableDeblocking bool
	DisableSAO        bool
	NoAcceleration    bool

	// Verbosity is the engine-internal log verbosity level.
	Verbosity int
}

// NewOptions returns options with the default mode (luma QP), the default
// printed range [0, 63] and no temporal layer limit.
func NewOptions() *Options {
	return &Options{
		Mode:          metrics.KindLumaQP,
		MinPrintedQP:  0,
		MaxPrintedQP:  63,
		MaxTemporalID: 100,
	}
}

// Validate checks internal consistency of the options.
func (o *Options) Validate() error {
	switch o.Mode {
	case metrics.KindLumaQP, metrics.KindChromaCbQP, metrics.KindChromaCrQP,
		metrics.KindPredMode, metrics.KindCTUSize, metrics.KindAll:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedMode, o.Mode)
	}
	if o.MinPrintedQP > o.MaxPrintedQP {
		return fmt.Errorf("%w: min %d > max %d",
			ErrInvalidRange, o.MinPrintedQP, o.MaxPrintedQP)
	}
	if o.MinPrintedQP < metrics.MinQPValue || o.MaxPrintedQP >= metrics.MaxQPValue {
		return fmt.Errorf("%w: [%d, %d] outside QP domain [%d, %d)",
			ErrInvalidRange, o.MinPrintedQP, o.MaxPrintedQP,
			metrics.MinQPValue, metrics.MaxQPValue)
	}
	return nil
}

// DecoderConfig builds the pass-through engine configuration.
func (o *Options) DecoderConfig() decoder.Config {
	return decoder.Config{
		CheckHash:         o.CheckHash,
		DisableDeblocking: o.DisableDeblocking,
		DisableSAO:        o.DisableSAO,
		NoAcceleration:    o.NoAcceleration,
		MaxTemporalID:     o.MaxTemporalID,
		Verbosity:         o.Verbosity,
	}
}
