// Package metrics turns decoded frames into per-frame coding statistics.
//
// The pipeline inside this package is small and strictly synchronous:
//
//	Walk → Extract → Distribution → Summarize
//
// Walk traverses a frame's partition grid in raster order and yields each
// coding block once, at its origin. Extract reads the requested coding
// parameter for a block and validates it against the metric's value
// domain. Distribution accumulates valid values into a pair of
// histograms, one counting blocks and one weighting each block by its
// pixel area. Summarize reduces a histogram to count, min, max, mean and
// population standard deviation.
//
// Distributions never span frames; Reset is called (or a fresh
// Distribution built) at the start of every frame. Out-of-domain values
// are excluded from the histograms and reported through logrus, one
// diagnostic per occurrence.
package metrics
