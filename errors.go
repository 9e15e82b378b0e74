package qpextract

import "errors"

// Sentinel errors for analyzer construction and execution.
// These errors enable reliable classification using errors.Is().

var (
	// ErrNilEngine indicates the analyzer was built without an engine.
	ErrNilEngine = errors.New("decoding engine is nil")

	// ErrNilOutput indicates the analyzer was built without a sink.
	ErrNilOutput = errors.New("output sink is nil")

	// ErrInvalidRange indicates minimum printed QP exceeds the maximum.
	ErrInvalidRange = errors.New("invalid printed QP range")

	// ErrUnsupportedMode indicates an unrecognized metric kind.
	ErrUnsupportedMode = errors.New("unsupported metric mode")
)
