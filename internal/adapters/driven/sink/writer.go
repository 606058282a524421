package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// Ensure WriterSink implements the interface.
var _ driven.FieldMapSink = (*WriterSink)(nil)

// WriterSink writes the field map as JSON to an io.Writer.
type WriterSink struct {
	w       io.Writer
	compact bool
}

// NewWriterSink creates a sink writing 2-space indented JSON, or a single
// line when compact is set.
func NewWriterSink(w io.Writer, compact bool) *WriterSink {
	return &WriterSink{w: w, compact: compact}
}

// Write encodes the extraction's field map followed by a newline.
func (s *WriterSink) Write(_ context.Context, e *domain.Extraction) error {
	data, err := Encode(e.Fields, s.compact)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing field map: %w", err)
	}
	return nil
}

// Encode renders a field map as JSON in insertion order.
// A nil map encodes as an empty object.
func Encode(fm *domain.FieldMap, compact bool) ([]byte, error) {
	if fm == nil {
		fm = domain.NewFieldMap()
	}
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(fm)
	} else {
		data, err = json.MarshalIndent(fm, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encoding field map: %w", err)
	}
	return data, nil
}
