package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/opd-ai/qpextract/decoder"
	"github.com/opd-ai/qpextract/metrics"
	"github.com/sirupsen/logrus"
)

// Writer renders frame results for one metric kind as CSV rows.
//
// Writer is confined to a single goroutine. Its only state beyond
// configuration is the one-shot header transition: repeated frames never
// re-emit the header.
type Writer struct {
	kind       metrics.Kind
	minPrinted int
	maxPrinted int

	csv           *csv.Writer
	headerWritten bool
}

// NewWriter creates a writer for the given kind. For QP kinds the printed
// histogram covers the inclusive bucket range [minPrinted, maxPrinted];
// other kinds ignore the bounds.
func NewWriter(out io.Writer, kind metrics.Kind, minPrinted, maxPrinted int) *Writer {
	return &Writer{
		kind:       kind,
		minPrinted: minPrinted,
		maxPrinted: maxPrinted,
		csv:        csv.NewWriter(out),
	}
}

// WriteHeader emits the schema header row. The first call writes it;
// later calls are no-ops, so callers may invoke it defensively.
func (w *Writer) WriteHeader() error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true

	var record []string
	switch {
	case w.kind.IsQP():
		record = []string{
			"frame",
			"qp_num", "qp_min", "qp_max", "qp_avg", "qp_stddev",
			"qpw_num", "qpw_min", "qpw_max", "qpw_avg", "qpw_stddev",
		}
		for qp := w.minPrinted; qp <= w.maxPrinted; qp++ {
			record = append(record, strconv.Itoa(qp))
		}
		for qp := w.minPrinted; qp <= w.maxPrinted; qp++ {
			record = append(record, strconv.Itoa(qp)+"w")
		}
	case w.kind == metrics.KindPredMode:
		record = []string{
			"frame",
			"intra", "inter", "skip",
			"intra_ratio", "inter_ratio", "skip_ratio",
			"intraw", "interw", "skipw",
			"intraw_ratio", "interw_ratio", "skipw_ratio",
		}
	case w.kind == metrics.KindCTUSize:
		record = []string{
			"frame",
			"ctu8", "ctu16", "ctu32", "ctu64",
			"ctu8_ratio", "ctu16_ratio", "ctu32_ratio", "ctu64_ratio",
			"ctu8w", "ctu16w", "ctu32w", "ctu64w",
			"ctu8w_ratio", "ctu16w_ratio", "ctu32w_ratio", "ctu64w_ratio",
		}
	case w.kind == metrics.KindAll:
		record = []string{
			"frame", "xb", "yb", "size",
			"qpy", "qpcb", "qpcr", "pred_mode", "ctu_size",
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedSchema, w.kind)
	}

	return w.flushRecord(record)
}

// WriteFrame renders one frame. For aggregate kinds d must hold the
// frame's accumulated distribution; for KindAll d is ignored and the
// frame is walked directly, one row per block.
func (w *Writer) WriteFrame(f decoder.Frame, d *metrics.Distribution) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}

	switch {
	case w.kind.IsQP():
		return w.writeQPRow(f.ID(), d)
	case w.kind == metrics.KindPredMode || w.kind == metrics.KindCTUSize:
		return w.writeRatioRow(f.ID(), d)
	case w.kind == metrics.KindAll:
		return w.writeBlockRows(f)
	}
	return fmt.Errorf("%w: %d", ErrUnsupportedSchema, w.kind)
}

// writeQPRow emits the QP schema: summary statistics for both histograms
// followed by the printed buckets of each.
func (w *Writer) writeQPRow(frameID int, d *metrics.Distribution) error {
	domain := d.Kind().DomainSize()
	stats := metrics.Summarize(d.Unweighted(), 0, domain-1)
	wstats := metrics.Summarize(d.Weighted(), 0, domain-1)

	w.warnRangeMismatch(frameID, d)

	record := make([]string, 0, 11+2*(w.maxPrinted-w.minPrinted+1))
	record = append(record, strconv.Itoa(frameID))
	record = appendSummary(record, stats)
	record = appendSummary(record, wstats)
	for qp := w.minPrinted; qp <= w.maxPrinted && qp < domain; qp++ {
		record = append(record, strconv.Itoa(d.Unweighted()[qp]))
	}
	for qp := w.minPrinted; qp <= w.maxPrinted && qp < domain; qp++ {
		record = append(record, strconv.Itoa(d.Weighted()[qp]))
	}

	return w.flushRecord(record)
}

// writeRatioRow emits the count-and-ratio schema shared by the
// prediction mode and CTU size kinds.
func (w *Writer) writeRatioRow(frameID int, d *metrics.Distribution) error {
	record := []string{strconv.Itoa(frameID)}
	record = appendCountsAndRatios(record, d.Unweighted())
	record = appendCountsAndRatios(record, d.Weighted())
	return w.flushRecord(record)
}

// writeBlockRows emits the detailed schema: one row per coding block.
func (w *Writer) writeBlockRows(f decoder.Frame) error {
	var err error
	metrics.Walk(f, func(b metrics.Block) {
		if err != nil {
			return
		}
		detail := metrics.ExtractAll(f, b)
		record := []string{
			strconv.Itoa(f.ID()),
			strconv.Itoa(b.X),
			strconv.Itoa(b.Y),
			strconv.Itoa(b.Size),
			strconv.Itoa(detail.QPY),
			strconv.Itoa(detail.QPCb),
			strconv.Itoa(detail.QPCr),
			strconv.Itoa(detail.PredMode),
			strconv.Itoa(detail.CTUSize),
		}
		err = w.flushRecord(record)
	})
	return err
}

// warnRangeMismatch reports observed values that fall outside the
// configured print range. The row is still emitted with the truncated
// buckets; the statistics columns always cover the full domain.
func (w *Writer) warnRangeMismatch(frameID int, d *metrics.Distribution) {
	if max := d.MaxSeen(); max > w.maxPrinted {
		logrus.WithFields(logrus.Fields{
			"frame":       frameID,
			"max_printed": w.maxPrinted,
			"max_seen":    max,
		}).Warnf("QP values above printed range; consider %s",
			color.YellowString("--max-qp %d", max))
	}
	if min := d.MinSeen(); min != -1 && min < w.minPrinted {
		logrus.WithFields(logrus.Fields{
			"frame":       frameID,
			"min_printed": w.minPrinted,
			"min_seen":    min,
		}).Warnf("QP values below printed range; consider %s",
			color.YellowString("--min-qp %d", min))
	}
}

// flushRecord writes one CSV record and pushes it to the sink so no row
// is buffered across frames.
func (w *Writer) flushRecord(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush record: %w", err)
	}
	return nil
}

// appendSummary appends the five statistic columns of one histogram.
func appendSummary(record []string, s metrics.Summary) []string {
	return append(record,
		strconv.Itoa(s.Count),
		strconv.Itoa(s.Min),
		strconv.Itoa(s.Max),
		formatFloat(s.Mean),
		formatFloat(s.StdDev),
	)
}

// appendCountsAndRatios appends each bucket's count followed by each
// bucket's share of the histogram total. A zero total yields zero ratios
// instead of a division by zero.
func appendCountsAndRatios(record []string, hist []int) []string {
	total := 0
	for _, c := range hist {
		record = append(record, strconv.Itoa(c))
		total += c
	}
	for _, c := range hist {
		if total == 0 {
			record = append(record, formatFloat(0))
			continue
		}
		record = append(record, formatFloat(float64(c)/float64(total)))
	}
	return record
}

// formatFloat renders ratio and statistic columns with the fixed
// six-decimal precision downstream consumers parse positionally.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
