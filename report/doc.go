// Package report serializes per-frame coding statistics as CSV.
//
// Each metric kind has a fixed schema. The QP kinds emit one row per
// frame carrying summary statistics and the printed histogram buckets,
// unweighted first and area-weighted second. The prediction mode and CTU
// size kinds emit raw counts followed by their share of the row total.
// The detailed kind emits one row per coding block with no aggregation.
//
// The header row is written exactly once per run, before any data row,
// and matches the active schema. Rows are flushed to the sink as they are
// produced; nothing is buffered across frames.
package report
