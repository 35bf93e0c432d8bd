package local

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/teaguesterling/yamlrows/pkg/infer"
	"github.com/teaguesterling/yamlrows/pkg/materialize"
)

// JSONLSink writes one JSON object per row, with keys in schema order.
type JSONLSink struct {
	w      *bufio.Writer
	schema infer.Schema
}

// NewJSONLSink returns a sink writing to w.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{w: bufio.NewWriter(w)}
}

func (s *JSONLSink) Begin(_ context.Context, schema infer.Schema) error {
	s.schema = schema
	return nil
}

func (s *JSONLSink) WriteRow(_ context.Context, row materialize.Row) error {
	buf := []byte{'{'}
	for i, col := range s.schema.Columns {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendQuote(buf, col.Name)
		buf = append(buf, ':')
		buf = materialize.AppendJSON(buf, row.Values[i])
	}
	buf = append(buf, '}', '\n')
	_, err := s.w.Write(buf)
	return err
}

func (s *JSONLSink) Close() error {
	return s.w.Flush()
}
