package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-admin/draft"
	"inventory-admin/models"
)

type emptySource struct{}

func (emptySource) ListProducts(context.Context, string) ([]models.Product, error) { return nil, nil }
func (emptySource) ListSuppliers(context.Context, string) ([]models.Supplier, error) {
	return nil, nil
}

func TestDraftRepository(t *testing.T) {
	repo := NewDraftRepository()
	d1 := draft.New("d1", "sess-a", emptySource{}, time.Now())
	d2 := draft.New("d2", "sess-a", emptySource{}, time.Now())
	d3 := draft.New("d3", "sess-b", emptySource{}, time.Now())
	repo.Save(d1)
	repo.Save(d2)
	repo.Save(d3)

	got, err := repo.Get("d1", "sess-a")
	require.NoError(t, err)
	assert.Same(t, d1, got)

	_, err = repo.Get("d1", "sess-b")
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = repo.Get("nope", "sess-a")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	repo.Delete("d1")
	_, err = repo.Get("d1", "sess-a")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	assert.Equal(t, 1, repo.DeleteBySession("sess-a"))
	_, err = repo.Get("d2", "sess-a")
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = repo.Get("d3", "sess-b")
	assert.NoError(t, err)
}

func TestDraftRepository_PurgeCreatedBefore(t *testing.T) {
	repo := NewDraftRepository()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.Save(draft.New("old", "sess-a", emptySource{}, now.Add(-13*time.Hour)))
	repo.Save(draft.New("edge", "sess-a", emptySource{}, now.Add(-12*time.Hour)))
	repo.Save(draft.New("fresh", "sess-b", emptySource{}, now.Add(-time.Minute)))

	assert.Equal(t, 1, repo.PurgeCreatedBefore(now.Add(-12*time.Hour)))

	_, err := repo.Get("old", "sess-a")
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = repo.Get("edge", "sess-a")
	assert.NoError(t, err)
	_, err = repo.Get("fresh", "sess-b")
	assert.NoError(t, err)

	assert.Equal(t, 0, repo.PurgeCreatedBefore(now.Add(-12*time.Hour)))
}
