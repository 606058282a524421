package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func sampleExtraction(id, ref string, at time.Time) *domain.Extraction {
	fm := domain.NewFieldMap()
	fm.Set("entry.300", domain.EnumeratedEntry([]string{"Red", "Blue"}))
	fm.Set("entry.100", domain.OpenEndedEntry())
	return &domain.Extraction{
		ID:        id,
		Ref:       ref,
		Strategy:  domain.StrategySearch,
		Questions: 2,
		Fields:    fm,
		CreatedAt: at,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := setupTestStore(t)

	assert.FileExists(t, store.Path())
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Reopening must not reapply 001.
	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var version int
	require.NoError(t, second.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestExtractionStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t).ExtractionStore()
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, sampleExtraction("e1", "form.json", at)))

	got, err := store.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "form.json", got.Ref)
	assert.Equal(t, domain.StrategySearch, got.Strategy)
	assert.Equal(t, 2, got.Questions)
	assert.True(t, at.Equal(got.CreatedAt))
	assert.Equal(t, []string{"entry.300", "entry.100"}, got.Fields.Keys())

	entry, ok := got.Fields.Get("entry.300")
	require.True(t, ok)
	assert.Equal(t, []string{"Red", "Blue"}, entry.Options)
}

func TestExtractionStore_SaveOverwrites(t *testing.T) {
	store := setupTestStore(t).ExtractionStore()
	ctx := context.Background()
	at := time.Now()

	e := sampleExtraction("e1", "a", at)
	require.NoError(t, store.Save(ctx, e))
	e.Ref = "b"
	require.NoError(t, store.Save(ctx, e))

	got, err := store.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Ref)
}

func TestExtractionStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t).ExtractionStore()

	_, err := store.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractionStore_ListAndLatest(t *testing.T) {
	store := setupTestStore(t).ExtractionStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, sampleExtraction("old", "x", base)))
	require.NoError(t, store.Save(ctx, sampleExtraction("new", "x", base.Add(1500*time.Millisecond))))
	require.NoError(t, store.Save(ctx, sampleExtraction("mid", "y", base.Add(time.Second))))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)

	latest, err := store.Latest(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "new", latest.ID)

	_, err = store.Latest(ctx, "z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractionStore_Delete(t *testing.T) {
	store := setupTestStore(t).ExtractionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleExtraction("e1", "x", time.Now())))
	require.NoError(t, store.Delete(ctx, "e1"))

	_, err := store.Get(ctx, "e1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "e1"), domain.ErrNotFound)
}

func TestExtractionStore_CreatedAtRoundTrip(t *testing.T) {
	base := time.Date(2026, 10, 14, 4, 48, 29, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
	}{
		{"whole second", base},
		{"microsecond clock", base.Add(591451 * time.Microsecond)},
		{"millisecond with trailing zeros", base.Add(500 * time.Millisecond)},
		{"full nanoseconds", base.Add(123456789)},
		{"local zone", time.Now().Truncate(time.Microsecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t).ExtractionStore()
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, sampleExtraction("e1", "x", tt.at)))

			got, err := store.Get(ctx, "e1")
			require.NoError(t, err)
			assert.True(t, tt.at.Equal(got.CreatedAt), "want %v, got %v", tt.at, got.CreatedAt)

			all, err := store.List(ctx, 0)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.True(t, tt.at.Equal(all[0].CreatedAt))
		})
	}
}

func TestExtractionStore_ReadsTrimmedTimestamps(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, ref, strategy, questions, field_count, fields, created_at)
		VALUES ('legacy', 'x', 'fast_path', 0, 0, '{}', '2026-10-14T04:48:29.591451Z')
	`)
	require.NoError(t, err)

	got, err := s.ExtractionStore().Get(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, 591451000, got.CreatedAt.Nanosecond())
}
