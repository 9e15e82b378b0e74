// Package decodertest provides in-memory test doubles for the decoder
// package.
//
// Frame is a fully scriptable decoded picture: tests lay out a partition
// grid with SetBlock and the Frame answers the same query surface a real
// engine-owned picture would. Engine is a scriptable decoding engine that
// records every Push, PushNAL and Flush it receives and emits queued
// frames from DecodeStep, so stream-loop and pipeline tests can verify
// framing, offsets and drain behavior without a real bitstream.
//
// Both types conform to the decoder package interfaces, mirroring how the
// production engine plugs in.
package decodertest
