package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/opd-ai/qpextract/decoder"
	"github.com/sirupsen/logrus"
)

// DefaultChunkSize is the raw-mode read size in bytes.
const DefaultChunkSize = 40960

// Config controls the ingestion loop.
type Config struct {
	// NALInput selects length-prefixed framing: each unit is preceded by
	// a 4-byte big-endian length.
	NALInput bool

	// CheckHash records that checksum validation was requested, so a
	// checksum mismatch from the engine is an expected terminal
	// condition rather than an unexpected failure.
	CheckHash bool

	// ChunkSize overrides the raw-mode read size. Zero means
	// DefaultChunkSize.
	ChunkSize int
}

// Loop drives one engine over one input stream.
type Loop struct {
	engine    decoder.Engine
	nalInput  bool
	checkHash bool
	chunkSize int
}

// NewLoop creates an ingestion loop for the engine.
func NewLoop(engine decoder.Engine, cfg Config) *Loop {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Loop{
		engine:    engine,
		nalInput:  cfg.NALInput,
		checkHash: cfg.CheckHash,
		chunkSize: chunkSize,
	}
}

// Run reads r to exhaustion, feeding the engine and draining decode work
// after every push. On end of input it flushes the engine exactly once
// and performs one final drain before returning.
//
// A checksum mismatch while validation was requested terminates the loop
// and is returned for the caller to classify with errors.Is; any other
// engine error terminates the loop the same way.
func (l *Loop) Run(r io.Reader) error {
	input, err := WrapReader(r)
	if err != nil {
		return fmt.Errorf("prepare input: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Loop.Run",
		"nal_input":  l.nalInput,
		"check_hash": l.checkHash,
		"chunk_size": l.chunkSize,
	}).Debug("Starting ingestion loop")

	var offset int64
	buf := make([]byte, l.chunkSize)
	stop := false

	for !stop {
		if l.nalInput {
			stop, err = l.readUnit(input, &offset)
		} else {
			stop, err = l.readChunk(input, buf, &offset)
		}
		if err != nil {
			return err
		}

		if stop {
			if err := l.engine.Flush(); err != nil {
				return l.classify(fmt.Errorf("flush: %w", err))
			}
		}

		if err := l.drain(); err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Loop.Run",
		"bytes_in": offset,
	}).Debug("Ingestion loop finished")

	return nil
}

// readChunk reads up to one raw chunk and pushes it as an opaque span.
// It reports end of input through its first return value.
func (l *Loop) readChunk(r io.Reader, buf []byte, offset *int64) (bool, error) {
	n, err := io.ReadFull(r, buf)
	if n > 0 {
		if perr := l.engine.Push(buf[:n], *offset); perr != nil {
			return false, l.classify(fmt.Errorf("push: %w", perr))
		}
		*offset += int64(n)
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read input: %w", err)
	}
	return false, nil
}

// readUnit reads one 4-byte big-endian length prefix followed by exactly
// that many bytes, pushed as a single discrete unit. The offset counter
// advances by the unit bytes actually read.
func (l *Loop) readUnit(r io.Reader, offset *int64) (bool, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF {
			return true, nil
		}
		if err == io.ErrUnexpectedEOF {
			logrus.WithField("offset", *offset).Warn("Truncated unit length prefix at end of input")
			return true, nil
		}
		return false, fmt.Errorf("read unit length: %w", err)
	}

	length := binary.BigEndian.Uint32(hdr[:])
	unit := make([]byte, length)
	n, err := io.ReadFull(r, unit)
	if n > 0 {
		if perr := l.engine.PushNAL(unit[:n], *offset); perr != nil {
			return false, l.classify(fmt.Errorf("push unit: %w", perr))
		}
		*offset += int64(n)
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		if n < int(length) {
			logrus.WithFields(logrus.Fields{
				"expected": length,
				"read":     n,
			}).Warn("Truncated unit at end of input")
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read unit: %w", err)
	}
	return false, nil
}

// drain performs decode steps until the engine reports no more work,
// delivering frames through the registered callback and emptying the
// warning queue after every step.
func (l *Loop) drain() error {
	for {
		more, err := l.engine.DecodeStep()
		l.drainWarnings()
		if err != nil {
			return l.classify(fmt.Errorf("decode: %w", err))
		}
		if !more {
			return nil
		}
	}
}

// drainWarnings empties the engine's warning queue. Warnings are
// diagnostic pass-through; they never affect the pipeline.
func (l *Loop) drainWarnings() {
	for {
		warning, ok := l.engine.NextWarning()
		if !ok {
			return
		}
		logrus.WithField("warning", warning).Warn("Decoder warning")
	}
}

// classify logs engine failures at the right severity. A checksum
// mismatch under requested validation is an expected terminal condition;
// everything else is an unexpected decode failure. Both stop the loop.
func (l *Loop) classify(err error) error {
	if l.checkHash && errors.Is(err, decoder.ErrChecksumMismatch) {
		logrus.WithError(err).Warn("Checksum validation failed; stopping")
		return err
	}
	logrus.WithError(err).Error("Decoding engine error; stopping")
	return err
}
