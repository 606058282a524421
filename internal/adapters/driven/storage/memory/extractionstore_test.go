package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

func extractionAt(id, ref string, at time.Time) *domain.Extraction {
	fm := domain.NewFieldMap()
	fm.Set("entry.1", domain.OpenEndedEntry())
	return &domain.Extraction{ID: id, Ref: ref, Strategy: domain.StrategyFastPath, Fields: fm, CreatedAt: at}
}

func TestExtractionStore_SaveGet(t *testing.T) {
	store := NewExtractionStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, extractionAt("a", "form.json", now)))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "form.json", got.Ref)
	assert.Equal(t, 1, got.FieldCount())

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractionStore_ListNewestFirst(t *testing.T) {
	store := NewExtractionStore()
	ctx := context.Background()
	base := time.Now()

	_ = store.Save(ctx, extractionAt("old", "x", base.Add(-2*time.Hour)))
	_ = store.Save(ctx, extractionAt("new", "x", base))
	_ = store.Save(ctx, extractionAt("mid", "y", base.Add(-time.Hour)))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestExtractionStore_Latest(t *testing.T) {
	store := NewExtractionStore()
	ctx := context.Background()
	base := time.Now()

	_ = store.Save(ctx, extractionAt("first", "x", base.Add(-time.Minute)))
	_ = store.Save(ctx, extractionAt("second", "x", base))
	_ = store.Save(ctx, extractionAt("other", "y", base.Add(time.Minute)))

	got, err := store.Latest(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "second", got.ID)

	_, err = store.Latest(ctx, "z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractionStore_Delete(t *testing.T) {
	store := NewExtractionStore()
	ctx := context.Background()

	_ = store.Save(ctx, extractionAt("a", "x", time.Now()))

	require.NoError(t, store.Delete(ctx, "a"))
	assert.ErrorIs(t, store.Delete(ctx, "a"), domain.ErrNotFound)
}
