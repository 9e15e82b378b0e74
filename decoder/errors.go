package decoder

import "errors"

// Sentinel errors for decoding engine operations.
// These errors enable reliable error classification using errors.Is().

var (
	// ErrChecksumMismatch indicates an SEI picture hash did not match the
	// decoded picture. Only reported when hash checking was requested.
	ErrChecksumMismatch = errors.New("picture checksum mismatch")

	// ErrDecodeFailed indicates the engine hit an unrecoverable bitstream
	// error.
	ErrDecodeFailed = errors.New("decode failed")

	// ErrEngineClosed indicates an operation on a closed engine.
	ErrEngineClosed = errors.New("engine is closed")

	// ErrNoEngine indicates no decoding engine implementation has been
	// registered.
	ErrNoEngine = errors.New("no decoding engine registered")

	// ErrUnknownEngine indicates a request for an engine name that was
	// never registered.
	ErrUnknownEngine = errors.New("unknown decoding engine")
)
