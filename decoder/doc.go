// Package decoder defines the contract between the statistics pipeline and
// the HEVC decoding engine.
//
// The engine itself is an external collaborator: entropy decoding, inverse
// transform, prediction and in-loop filtering all happen behind the Engine
// interface. This package only specifies what the pipeline consumes:
//
//   - a push-style ingestion API (Push/Flush/DecodeStep) fed by the stream
//     package,
//
//   - a synchronous per-frame callback delivering decoded frames, and
//
//   - the Frame query surface exposing, per pixel coordinate, the owning
//     coding block's partition size and per-component QP and prediction
//     mode values.
//
// Concrete engines register themselves through Register, typically from an
// init function in a binding package. Tests use the scriptable engine in
// the decodertest subpackage.
package decoder
