package metrics

import (
	"testing"

	"github.com/opd-ai/qpextract/decoder/decodertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDistributionHistogramTotals verifies the invariant that the
// unweighted total equals the valid block count and the weighted total
// equals the summed block areas.
func TestDistributionHistogramTotals(t *testing.T) {
	frame := decodertest.NewFrame(0, 4, 4, 8)
	frame.SetBlock(0, 0, 4, 30, 28, 29, 0) // 16x16
	frame.SetBlock(2, 0, 3, 35, 33, 34, 1) // 8x8
	frame.SetBlock(3, 0, 3, 35, 33, 34, 1) // 8x8

	d := NewDistribution(KindLumaQP)
	d.AccumulateFrame(frame)

	var total, weightedTotal int
	for _, c := range d.Unweighted() {
		total += c
	}
	for _, c := range d.Weighted() {
		weightedTotal += c
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 16*16+8*8+8*8, weightedTotal)

	assert.Equal(t, 1, d.Unweighted()[30])
	assert.Equal(t, 2, d.Unweighted()[35])
	assert.Equal(t, 256, d.Weighted()[30])
	assert.Equal(t, 128, d.Weighted()[35])
	assert.Equal(t, 30, d.MinSeen())
	assert.Equal(t, 35, d.MaxSeen())
}

// TestDistributionResetsPerFrame verifies histograms never span frames.
func TestDistributionResetsPerFrame(t *testing.T) {
	first := decodertest.NewFrame(0, 2, 2, 8)
	first.SetBlock(0, 0, 3, 20, 20, 20, 0)
	second := decodertest.NewFrame(1, 2, 2, 8)
	second.SetBlock(0, 0, 3, 40, 40, 40, 0)

	d := NewDistribution(KindLumaQP)
	d.AccumulateFrame(first)
	d.AccumulateFrame(second)

	assert.Zero(t, d.Unweighted()[20])
	assert.Equal(t, 1, d.Unweighted()[40])
	assert.Equal(t, 40, d.MinSeen())
	assert.Equal(t, 40, d.MaxSeen())
}

// TestDistributionExcludesInvalidPredMode verifies an out-of-range
// prediction mode is excluded and does not disturb totals.
func TestDistributionExcludesInvalidPredMode(t *testing.T) {
	frame := decodertest.NewFrame(0, 4, 4, 8)
	frame.SetBlock(0, 0, 3, 30, 30, 30, 5) // invalid mode
	frame.SetBlock(1, 0, 3, 30, 30, 30, 1)
	frame.SetBlock(2, 0, 3, 30, 30, 30, 2)

	d := NewDistribution(KindPredMode)
	d.AccumulateFrame(frame)

	var total int
	for _, c := range d.Unweighted() {
		total += c
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, d.InvalidCount())
	assert.Equal(t, 0, d.Unweighted()[0])
	assert.Equal(t, 1, d.Unweighted()[1])
	assert.Equal(t, 1, d.Unweighted()[2])
}

// TestDistributionExcludesOutOfDomainQP verifies QP values outside
// [0, 100) are excluded with the min/max trackers untouched.
func TestDistributionExcludesOutOfDomainQP(t *testing.T) {
	frame := decodertest.NewFrame(0, 4, 4, 8)
	frame.SetBlock(0, 0, 3, 120, 0, 0, 0)
	frame.SetBlock(1, 0, 3, -1, 0, 0, 0)
	frame.SetBlock(2, 0, 3, 25, 0, 0, 0)

	d := NewDistribution(KindLumaQP)
	d.AccumulateFrame(frame)

	assert.Equal(t, 2, d.InvalidCount())
	assert.Equal(t, 1, d.Unweighted()[25])
	assert.Equal(t, 25, d.MinSeen())
	assert.Equal(t, 25, d.MaxSeen())
}

// TestDistributionCTUBuckets verifies the size-to-bucket mapping and the
// rejection of impossible partition sizes.
func TestDistributionCTUBuckets(t *testing.T) {
	d := NewDistribution(KindCTUSize)
	require.True(t, d.Add(8, 8))
	require.True(t, d.Add(16, 16))
	require.True(t, d.Add(32, 32))
	require.True(t, d.Add(64, 64))
	assert.False(t, d.Add(128, 128))

	assert.Equal(t, []int{1, 1, 1, 1}, d.Unweighted())
	assert.Equal(t, []int{64, 256, 1024, 4096}, d.Weighted())
	assert.Equal(t, 1, d.InvalidCount())
}

// TestDistributionEmptyFrame verifies the sentinels on a frame with no
// valid blocks.
func TestDistributionEmptyFrame(t *testing.T) {
	d := NewDistribution(KindLumaQP)
	d.AccumulateFrame(decodertest.NewFrame(0, 2, 2, 8))

	assert.Equal(t, -1, d.MinSeen())
	assert.Equal(t, -1, d.MaxSeen())
	assert.Zero(t, d.InvalidCount())
}
