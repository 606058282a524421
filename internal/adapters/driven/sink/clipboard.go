package sink

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
)

// Ensure ClipboardSink implements the interface.
var _ driven.FieldMapSink = (*ClipboardSink)(nil)

// ClipboardSink copies the indented JSON field map to the system clipboard.
type ClipboardSink struct {
	write func(string) error
}

// NewClipboardSink creates a clipboard sink.
func NewClipboardSink() *ClipboardSink {
	return &ClipboardSink{write: clipboard.WriteAll}
}

// Available reports whether a clipboard utility is present.
func (s *ClipboardSink) Available() bool {
	return !clipboard.Unsupported
}

// Write copies the field map.
func (s *ClipboardSink) Write(_ context.Context, e *domain.Extraction) error {
	data, err := Encode(e.Fields, false)
	if err != nil {
		return err
	}
	if err := s.write(string(data)); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
