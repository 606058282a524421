package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/formmap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/formmap/internal/core/domain"
)

func TestHistoryService_Operations(t *testing.T) {
	store := memory.NewExtractionStore()
	ctx := context.Background()
	base := time.Now()
	_ = store.Save(ctx, &domain.Extraction{ID: "a", Ref: "x", Fields: domain.NewFieldMap(), CreatedAt: base})
	_ = store.Save(ctx, &domain.Extraction{ID: "b", Ref: "x", Fields: domain.NewFieldMap(), CreatedAt: base.Add(time.Second)})

	svc := NewHistoryService(store)

	list, err := svc.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)

	got, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Ref)

	latest, err := svc.Latest(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)

	require.NoError(t, svc.Delete(ctx, "a"))
	_, err = svc.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryService_Disabled(t *testing.T) {
	svc := NewHistoryService(nil)
	ctx := context.Background()

	_, err := svc.List(ctx, 0)
	assert.ErrorIs(t, err, errHistoryDisabled)
	_, err = svc.Get(ctx, "a")
	assert.ErrorIs(t, err, errHistoryDisabled)
	_, err = svc.Latest(ctx, "x")
	assert.ErrorIs(t, err, errHistoryDisabled)
	assert.ErrorIs(t, svc.Delete(ctx, "a"), errHistoryDisabled)
}
