package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
	"github.com/custodia-labs/formmap/internal/logger"
)

// Ensure ExtractService implements the interface.
var _ driving.ExtractService = (*ExtractService)(nil)

// ExtractService runs the locate-classify pipeline over a form blob.
type ExtractService struct {
	provider   driven.BlobProvider
	classifier *Classifier
	store      driven.ExtractionStore

	now   func() time.Time
	newID func() string
}

// NewExtractService creates an extraction service.
// A nil classifier uses DefaultClassifier; a nil store disables history.
func NewExtractService(
	provider driven.BlobProvider,
	classifier *Classifier,
	store driven.ExtractionStore,
) *ExtractService {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &ExtractService{
		provider:   provider,
		classifier: classifier,
		store:      store,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Extract loads ref and extracts its field map. The result is recorded
// in history when a store is configured; a history failure is logged and
// does not fail the extraction.
func (s *ExtractService) Extract(ctx context.Context, ref string) (*domain.Extraction, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no input provider configured", domain.ErrMissingInput)
	}

	logger.Section("Extract")
	logger.Debug("Loading %s", ref)
	root, err := s.provider.Load(ctx, ref)
	if err != nil {
		return nil, err
	}

	fields, located, err := s.ExtractNode(root)
	if err != nil {
		return nil, err
	}

	extraction := &domain.Extraction{
		ID:        s.newID(),
		Ref:       ref,
		Strategy:  located.Strategy,
		Questions: len(located.Questions),
		Fields:    fields,
		CreatedAt: s.now(),
	}

	if s.store != nil {
		if err := s.store.Save(ctx, extraction); err != nil {
			logger.Warn("Could not record extraction in history: %v", err)
		}
	}

	return extraction, nil
}

// ExtractNode extracts the field map of an already decoded blob.
// Fields are accumulated in question order; a field id produced twice
// keeps its first position and its last value.
func (s *ExtractService) ExtractNode(root domain.Node) (*domain.FieldMap, domain.LocateResult, error) {
	if root.IsNull() {
		return nil, domain.LocateResult{}, fmt.Errorf("%w: blob is null", domain.ErrMissingInput)
	}

	located, err := Locate(root)
	if err != nil {
		return nil, located, err
	}

	fields := domain.NewFieldMap()
	skipped := 0
	for _, record := range located.Questions {
		produced := s.classifier.Classify(record)
		if len(produced) == 0 {
			skipped++
			continue
		}
		for _, f := range produced {
			if _, dup := fields.Get(f.ID); dup {
				logger.Debug("Field %s defined again, keeping latest definition", f.ID)
			}
			fields.Set(f.ID, f.Entry)
		}
	}

	logger.Info("Extracted %d fields from %d questions (%d without fields, strategy %s)",
		fields.Len(), len(located.Questions), skipped, located.Strategy)

	return fields, located, nil
}

// ExtractTo runs Extract and writes the result to sink.
func (s *ExtractService) ExtractTo(ctx context.Context, ref string, sink driven.FieldMapSink) (*domain.Extraction, error) {
	extraction, err := s.Extract(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := sink.Write(ctx, extraction); err != nil {
		return extraction, err
	}
	return extraction, nil
}
