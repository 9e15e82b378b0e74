package stream

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/opd-ai/qpextract/decoder"
	"github.com/opd-ai/qpextract/decoder/decodertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRawChunking verifies bounded chunk reads with strictly increasing
// offsets, including a short final chunk.
func TestRawChunking(t *testing.T) {
	engine := decodertest.NewEngine()
	loop := NewLoop(engine, Config{ChunkSize: 8})

	input := bytes.Repeat([]byte{0xAB}, 20)
	require.NoError(t, loop.Run(bytes.NewReader(input)))

	require.Len(t, engine.Pushes, 3)
	assert.Equal(t, int64(0), engine.Pushes[0].Offset)
	assert.Equal(t, int64(8), engine.Pushes[1].Offset)
	assert.Equal(t, int64(16), engine.Pushes[2].Offset)
	assert.Len(t, engine.Pushes[0].Data, 8)
	assert.Len(t, engine.Pushes[2].Data, 4)
	assert.False(t, engine.Pushes[0].NAL)
	assert.Equal(t, 1, engine.FlushCount)
}

// TestNALFraming verifies a 4-byte big-endian length header followed by
// exactly that many bytes yields one push of one discrete unit and
// advances the offset by the unit size.
func TestNALFraming(t *testing.T) {
	engine := decodertest.NewEngine()
	loop := NewLoop(engine, Config{NALInput: true})

	payload := bytes.Repeat([]byte{0x42}, 16)
	var input bytes.Buffer
	input.Write([]byte{0x00, 0x00, 0x00, 0x10})
	input.Write(payload)

	require.NoError(t, loop.Run(&input))

	require.Len(t, engine.Pushes, 1)
	assert.True(t, engine.Pushes[0].NAL)
	assert.Equal(t, payload, engine.Pushes[0].Data)
	assert.Equal(t, int64(0), engine.Pushes[0].Offset)
	assert.Equal(t, 1, engine.FlushCount)
}

// TestNALFramingMultipleUnits verifies per-unit offset accounting.
func TestNALFramingMultipleUnits(t *testing.T) {
	engine := decodertest.NewEngine()
	loop := NewLoop(engine, Config{NALInput: true})

	var input bytes.Buffer
	input.Write([]byte{0x00, 0x00, 0x00, 0x04})
	input.Write([]byte{1, 2, 3, 4})
	input.Write([]byte{0x00, 0x00, 0x00, 0x02})
	input.Write([]byte{5, 6})

	require.NoError(t, loop.Run(&input))

	require.Len(t, engine.Pushes, 2)
	assert.Equal(t, int64(0), engine.Pushes[0].Offset)
	assert.Equal(t, int64(4), engine.Pushes[1].Offset)
	assert.Equal(t, []byte{5, 6}, engine.Pushes[1].Data)
}

// TestEmptyInputFlushesOnce verifies end-of-input triggers exactly one
// flush and the loop terminates even when the last read returns 0 bytes.
func TestEmptyInputFlushesOnce(t *testing.T) {
	engine := decodertest.NewEngine()
	loop := NewLoop(engine, Config{})

	require.NoError(t, loop.Run(bytes.NewReader(nil)))

	assert.Empty(t, engine.Pushes)
	assert.Equal(t, 1, engine.FlushCount)
}

// TestFlushDrainsPendingFrames verifies frames buffered until flush are
// still delivered by the final drain pass.
func TestFlushDrainsPendingFrames(t *testing.T) {
	engine := decodertest.NewEngine()
	engine.QueueFrame(decodertest.NewFrame(0, 2, 2, 8))
	engine.QueueFrame(decodertest.NewFrame(1, 2, 2, 8))

	delivered := 0
	engine.SetFrameHandler(func(decoder.Frame) { delivered++ })

	loop := NewLoop(engine, Config{})
	require.NoError(t, loop.Run(bytes.NewReader(nil)))

	assert.Equal(t, 2, delivered)
}

// TestChecksumMismatchStops verifies the expected-terminal classification
// when hash checking was requested.
func TestChecksumMismatchStops(t *testing.T) {
	engine := decodertest.NewEngine()
	engine.StepErr = fmt.Errorf("step: %w", decoder.ErrChecksumMismatch)

	loop := NewLoop(engine, Config{CheckHash: true})
	err := loop.Run(bytes.NewReader([]byte{0x00}))

	require.Error(t, err)
	assert.ErrorIs(t, err, decoder.ErrChecksumMismatch)
}

// TestDecodeErrorStops verifies any other engine error terminates the
// loop and surfaces to the caller.
func TestDecodeErrorStops(t *testing.T) {
	engine := decodertest.NewEngine()
	engine.StepErr = decoder.ErrDecodeFailed

	loop := NewLoop(engine, Config{})
	err := loop.Run(bytes.NewReader([]byte{0x00}))

	require.Error(t, err)
	assert.ErrorIs(t, err, decoder.ErrDecodeFailed)
}

// TestWarningsDrained verifies the warning queue is emptied during the
// drain step.
func TestWarningsDrained(t *testing.T) {
	engine := decodertest.NewEngine()
	engine.Warnings = []string{"sps missing", "pps missing"}

	loop := NewLoop(engine, Config{})
	require.NoError(t, loop.Run(bytes.NewReader(nil)))

	_, ok := engine.NextWarning()
	assert.False(t, ok)
}
