package local

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/teaguesterling/yamlrows/pkg/infer"
	"github.com/teaguesterling/yamlrows/pkg/materialize"
)

// CSVSink writes rows as CSV with a header line in schema order. Null cells
// become empty fields.
type CSVSink struct {
	w  *csv.Writer
	ok bool
}

// NewCSVSink returns a sink writing to w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

func (s *CSVSink) Begin(_ context.Context, schema infer.Schema) error {
	s.ok = true
	return s.w.Write(schema.Names())
}

func (s *CSVSink) WriteRow(_ context.Context, row materialize.Row) error {
	rec := make([]string, len(row.Values))
	for i, v := range row.Values {
		text, notNull := materialize.Render(v)
		if notNull {
			rec[i] = text
		}
	}
	return s.w.Write(rec)
}

func (s *CSVSink) Close() error {
	if !s.ok {
		return nil
	}
	s.w.Flush()
	return s.w.Error()
}
