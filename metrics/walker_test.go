package metrics

import (
	"testing"

	"github.com/opd-ai/qpextract/decoder/decodertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWalkRasterOrder verifies blocks are yielded row-major and that
// interior grid cells of a larger block are skipped.
func TestWalkRasterOrder(t *testing.T) {
	// 4x4 grid of 8-pixel units: one 16-pixel block covering the top-left
	// quadrant, two 8-pixel blocks right of it, one 16-pixel block below.
	frame := decodertest.NewFrame(0, 4, 4, 8)
	frame.SetBlock(0, 0, 4, 30, 30, 30, 0)
	frame.SetBlock(2, 0, 3, 31, 31, 31, 1)
	frame.SetBlock(3, 0, 3, 32, 32, 32, 1)
	frame.SetBlock(0, 2, 4, 33, 33, 33, 2)

	var got []Block
	Walk(frame, func(b Block) {
		got = append(got, b)
	})

	require.Len(t, got, 4)
	assert.Equal(t, Block{X: 0, Y: 0, Log2Size: 4, Size: 16}, got[0])
	assert.Equal(t, Block{X: 16, Y: 0, Log2Size: 3, Size: 8}, got[1])
	assert.Equal(t, Block{X: 24, Y: 0, Log2Size: 3, Size: 8}, got[2])
	assert.Equal(t, Block{X: 0, Y: 16, Log2Size: 4, Size: 16}, got[3])
}

// TestWalkEmptyFrame verifies a frame with no partition origins yields
// nothing.
func TestWalkEmptyFrame(t *testing.T) {
	frame := decodertest.NewFrame(0, 4, 4, 8)

	count := 0
	Walk(frame, func(Block) { count++ })

	assert.Zero(t, count)
}

// TestWalkPixelScaling verifies pixel origins are scaled by the minimum
// coding block size.
func TestWalkPixelScaling(t *testing.T) {
	frame := decodertest.NewFrame(0, 8, 8, 4)
	frame.SetBlock(2, 6, 3, 20, 20, 20, 0)

	var got []Block
	Walk(frame, func(b Block) { got = append(got, b) })

	require.Len(t, got, 1)
	assert.Equal(t, 8, got[0].X)
	assert.Equal(t, 24, got[0].Y)
	assert.Equal(t, 8, got[0].Size)
}
