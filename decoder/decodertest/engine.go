package decodertest

import (
	"github.com/opd-ai/qpextract/decoder"
)

// PushRecord captures one Push or PushNAL call for verification.
type PushRecord struct {
	Data   []byte
	Offset int64
	NAL    bool
}

// Engine is a scriptable decoding engine for tests.
//
// Tests queue frames with QueueFrame and script failures through the
// error fields. Every ingestion call is recorded so framing and offset
// behavior can be asserted afterwards.
type Engine struct {
	// Pushes records every Push/PushNAL in call order.
	Pushes []PushRecord

	// FlushCount counts Flush invocations.
	FlushCount int

	// Closed reports whether Close was called.
	Closed bool

	// PushErr, when set, is returned by the next Push/PushNAL.
	PushErr error

	// StepErr, when set, is returned by DecodeStep after any queued
	// frames for that step have been delivered.
	StepErr error

	// Warnings are drained one per NextWarning call.
	Warnings []string

	// FramesPerStep scripts how many queued frames each DecodeStep
	// delivers. Zero means deliver all pending frames in one step.
	FramesPerStep int

	handler decoder.FrameHandler
	pending []decoder.Frame
}

// NewEngine creates an empty scriptable engine.
func NewEngine() *Engine {
	return &Engine{}
}

// QueueFrame schedules a frame for delivery on a future DecodeStep.
func (e *Engine) QueueFrame(f decoder.Frame) {
	e.pending = append(e.pending, f)
}

// Push implements decoder.Engine.
func (e *Engine) Push(data []byte, offset int64) error {
	if e.PushErr != nil {
		return e.PushErr
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	e.Pushes = append(e.Pushes, PushRecord{Data: buf, Offset: offset})
	return nil
}

// PushNAL implements decoder.Engine.
func (e *Engine) PushNAL(data []byte, offset int64) error {
	if e.PushErr != nil {
		return e.PushErr
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	e.Pushes = append(e.Pushes, PushRecord{Data: buf, Offset: offset, NAL: true})
	return nil
}

// Flush implements decoder.Engine.
func (e *Engine) Flush() error {
	e.FlushCount++
	return nil
}

// DecodeStep implements decoder.Engine. Queued frames are delivered to the
// registered handler; more work is reported while frames remain pending.
func (e *Engine) DecodeStep() (bool, error) {
	n := e.FramesPerStep
	if n <= 0 || n > len(e.pending) {
		n = len(e.pending)
	}
	for i := 0; i < n; i++ {
		if e.handler != nil {
			e.handler(e.pending[i])
		}
	}
	e.pending = e.pending[n:]

	if e.StepErr != nil {
		err := e.StepErr
		e.StepErr = nil
		return false, err
	}
	return len(e.pending) > 0, nil
}

// SetFrameHandler implements decoder.Engine.
func (e *Engine) SetFrameHandler(h decoder.FrameHandler) {
	e.handler = h
}

// NextWarning implements decoder.Engine.
func (e *Engine) NextWarning() (string, bool) {
	if len(e.Warnings) == 0 {
		return "", false
	}
	w := e.Warnings[0]
	e.Warnings = e.Warnings[1:]
	return w, true
}

// Close implements decoder.Engine.
func (e *Engine) Close() error {
	e.Closed = true
	return nil
}
