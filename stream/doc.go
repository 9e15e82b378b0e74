// Package stream feeds a bitstream into the decoding engine.
//
// The ingestion loop reads input in bounded chunks (raw mode) or as
// 4-byte big-endian length-prefixed units (NAL mode), pushes each span to
// the engine with its strictly increasing byte offset, and after every
// push drains all decode work the engine is willing to perform. Completed
// frames reach the metrics pipeline through the engine's synchronous
// frame callback; the loop itself never touches frame contents.
//
// End of input triggers exactly one flush followed by a final drain pass.
// Gzip- and zstd-compressed inputs are detected by their magic bytes and
// unwrapped transparently before framing.
//
// Everything here is single-threaded and blocking: one goroutine reads,
// pushes and drains in strict order.
package stream
