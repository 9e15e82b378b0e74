package report

import "errors"

var (
	// ErrUnsupportedSchema indicates a metric kind with no output schema.
	ErrUnsupportedSchema = errors.New("unsupported output schema")
)
