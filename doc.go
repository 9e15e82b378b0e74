// Package qpextract analyzes HEVC bitstreams by extracting per-coding-block
// statistics and emitting structured per-frame distributions as CSV.
//
// For each decoded frame the analyzer walks the block partition grid,
// reads per-block coding parameters (quantization parameters, prediction
// mode, coding block size) from the decoding engine, accumulates them
// into count- and area-weighted histograms, derives summary statistics
// and serializes one output row per frame (or per block in the detailed
// mode). It gives codec engineers quantitative visibility into an
// encoder's rate-control and mode-decision behavior.
//
// # Getting Started
//
// Construct options, open an engine and run the analyzer over an input
// stream:
//
//	options := qpextract.NewOptions()
//	options.Mode = metrics.KindLumaQP
//
//	engine, err := decoder.Open("", options.DecoderConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	analyzer, err := qpextract.New(options, engine, os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := analyzer.Run(os.Stdin); err != nil {
//	    log.Fatal(err)
//	}
//
// The decoding engine itself (entropy decoding, prediction, in-loop
// filtering) is an external collaborator behind the decoder package's
// Engine interface; this module only consumes its push API and the
// decoded-frame query surface.
//
// # Packages
//
//   - decoder: engine contract and pass-through configuration
//   - metrics: grid walker, extraction, distributions, summaries
//   - report: schema-dependent CSV serialization
//   - stream: chunked and length-prefixed ingestion
package qpextract
