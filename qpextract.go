package qpextract

import (
	"fmt"
	"io"

	"github.com/opd-ai/qpextract/decoder"
	"github.com/opd-ai/qpextract/metrics"
	"github.com/opd-ai/qpextract/report"
	"github.com/opd-ai/qpextract/stream"
	"github.com/sirupsen/logrus"
)

// Analyzer ties the ingestion loop, the metrics pipeline and the record
// serializer together for one run.
//
// Everything is single-threaded and synchronous: the engine delivers
// frames from within the loop's decode calls, the frame handler
// aggregates and serializes before returning, and no state outlives a
// frame except the serializer's one-shot header flag.
type Analyzer struct {
	options *Options
	engine  decoder.Engine
	writer  *report.Writer
	dist    *metrics.Distribution
	loop    *stream.Loop

	frameCount int
	handlerErr error
}

// New wires an analyzer from options, an opened engine and an output
// sink. The engine's frame handler is registered here; frames must not
// be delivered before Run is called.
func New(options *Options, engine decoder.Engine, out io.Writer) (*Analyzer, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if out == nil {
		return nil, ErrNilOutput
	}
	if options == nil {
		options = NewOptions()
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		options: options,
		engine:  engine,
		writer:  report.NewWriter(out, options.Mode, options.MinPrintedQP, options.MaxPrintedQP),
	}
	if options.Mode != metrics.KindAll {
		a.dist = metrics.NewDistribution(options.Mode)
	}
	a.loop = stream.NewLoop(engine, stream.Config{
		NALInput:  options.NALInput,
		CheckHash: options.CheckHash,
	})
	engine.SetFrameHandler(a.handleFrame)

	logrus.WithFields(logrus.Fields{
		"function":    "New",
		"mode":        options.Mode.String(),
		"min_printed": options.MinPrintedQP,
		"max_printed": options.MaxPrintedQP,
		"nal_input":   options.NALInput,
		"check_hash":  options.CheckHash,
	}).Info("Analyzer created")

	return a, nil
}

// Run writes the schema header, then drives the ingestion loop over the
// input until end of stream or a fatal engine error. Serialization
// failures inside the frame callback surface here as well.
func (a *Analyzer) Run(input io.Reader) error {
	// The header is emitted exactly once per run, before any data row,
	// even when the stream yields no frames.
	if err := a.writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := a.loop.Run(input); err != nil {
		return err
	}
	if a.handlerErr != nil {
		return a.handlerErr
	}

	logrus.WithFields(logrus.Fields{
		"function": "Analyzer.Run",
		"frames":   a.frameCount,
	}).Info("Analysis finished")

	return nil
}

// handleFrame is the synchronous per-frame callback. The frame handle is
// only valid for the duration of this call; everything is extracted and
// serialized before returning.
func (a *Analyzer) handleFrame(f decoder.Frame) {
	a.frameCount++
	if a.handlerErr != nil {
		return
	}

	logrus.WithFields(logrus.Fields{
		"frame":       f.ID(),
		"grid_width":  f.GridWidth(),
		"grid_height": f.GridHeight(),
		"min_cb_size": f.MinCBSize(),
	}).Debug("Processing frame")

	if a.dist != nil {
		a.dist.AccumulateFrame(f)
	}
	if err := a.writer.WriteFrame(f, a.dist); err != nil {
		a.handlerErr = fmt.Errorf("serialize frame %d: %w", f.ID(), err)
	}
}

// FrameCount returns how many frames the engine delivered.
func (a *Analyzer) FrameCount() int {
	return a.frameCount
}
