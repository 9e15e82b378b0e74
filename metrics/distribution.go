package metrics

import (
	"github.com/opd-ai/qpextract/decoder"
	"github.com/sirupsen/logrus"
)

// Distribution accumulates one frame's worth of block metrics into two
// parallel histograms: unweighted (one count per block) and weighted
// (each block contributes its pixel area). It also tracks the min and max
// valid value seen, independent of any configured print range.
//
// A Distribution is confined to a single goroutine and reset per frame;
// histograms never span frames.
type Distribution struct {
	kind       Kind
	unweighted []int
	weighted   []int
	minSeen    int
	maxSeen    int
	invalid    int
}

// NewDistribution creates an empty distribution sized to the kind's value
// domain.
func NewDistribution(k Kind) *Distribution {
	d := &Distribution{
		kind:       k,
		unweighted: make([]int, k.DomainSize()),
		weighted:   make([]int, k.DomainSize()),
	}
	d.Reset()
	return d
}

// Reset zeroes both histograms and the min/max trackers.
func (d *Distribution) Reset() {
	for i := range d.unweighted {
		d.unweighted[i] = 0
		d.weighted[i] = 0
	}
	d.minSeen = -1
	d.maxSeen = -1
	d.invalid = 0
}

// bucket maps a raw metric value to its histogram bucket, reporting false
// for values outside the kind's domain.
func (d *Distribution) bucket(value int) (int, bool) {
	switch {
	case d.kind.IsQP():
		if value < MinQPValue || value >= MaxQPValue {
			return 0, false
		}
		return value, true
	case d.kind == KindPredMode:
		if value < 0 || value >= NumPredModes {
			return 0, false
		}
		return value, true
	case d.kind == KindCTUSize:
		switch value {
		case 8:
			return 0, true
		case 16:
			return 1, true
		case 32:
			return 2, true
		case 64:
			return 3, true
		}
		return 0, false
	}
	return 0, false
}

// Add accumulates one block's value. It reports false when the value is
// outside the kind's domain, in which case the block is excluded from
// both histograms.
func (d *Distribution) Add(value, size int) bool {
	i, ok := d.bucket(value)
	if !ok {
		d.invalid++
		return false
	}
	d.unweighted[i]++
	d.weighted[i] += size * size

	if d.minSeen == -1 || value < d.minSeen {
		d.minSeen = value
	}
	if d.maxSeen == -1 || value > d.maxSeen {
		d.maxSeen = value
	}
	return true
}

// AccumulateFrame resets the distribution and folds in every coding block
// of the frame, emitting one diagnostic per out-of-domain value.
func (d *Distribution) AccumulateFrame(f decoder.Frame) {
	d.Reset()
	Walk(f, func(b Block) {
		value := Extract(f, d.kind, b)
		if !d.Add(value, b.Size) {
			logrus.WithFields(logrus.Fields{
				"frame":  f.ID(),
				"metric": d.kind.String(),
				"xb":     b.X,
				"yb":     b.Y,
				"value":  value,
			}).Warn("Invalid block value excluded from distribution")
		}
	})
}

// Kind returns the metric kind this distribution aggregates.
func (d *Distribution) Kind() Kind { return d.kind }

// Unweighted returns the per-block count histogram.
func (d *Distribution) Unweighted() []int { return d.unweighted }

// Weighted returns the area-weighted histogram.
func (d *Distribution) Weighted() []int { return d.weighted }

// MinSeen returns the smallest valid value accumulated, or -1 when the
// distribution is empty.
func (d *Distribution) MinSeen() int { return d.minSeen }

// MaxSeen returns the largest valid value accumulated, or -1 when the
// distribution is empty.
func (d *Distribution) MaxSeen() int { return d.maxSeen }

// InvalidCount returns how many blocks were excluded for carrying
// out-of-domain values.
func (d *Distribution) InvalidCount() int { return d.invalid }
