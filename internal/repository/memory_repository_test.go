package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roterize/internal/domain/model"
)

func TestMemoryItineraryRepository(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("作成・更新・削除", func(t *testing.T) {
		repo := NewMemoryItineraryRepository()
		id, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u1", Name: "Rio", Places: []string{"A", "B"}, CreatedAt: base})
		require.NoError(t, err)
		require.NoError(t, repo.SetVisibility(ctx, id, true))

		err = repo.Update(ctx, &model.Itinerary{ID: id, OwnerID: "u1", Name: "Rio 2", Places: []string{"A", "C"}, CreatedAt: base.Add(time.Hour)})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Rio 2", got.Name)
		assert.Equal(t, base, got.CreatedAt)
		assert.True(t, got.IsPublic)

		require.NoError(t, repo.Delete(ctx, id))
		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, model.ErrItineraryNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, id), model.ErrItineraryNotFound)
	})

	t.Run("取得した値を変更しても保存内容は変わらない", func(t *testing.T) {
		repo := NewMemoryItineraryRepository()
		id, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u1", Places: []string{"A", "B"}})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		got.Places[0] = "changed"

		again, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "A", again.Places[0])
	})

	t.Run("公開ルートは新しい順にlimit件", func(t *testing.T) {
		repo := NewMemoryItineraryRepository()
		for i := 0; i < 3; i++ {
			id, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u1", Name: string(rune('a' + i)), CreatedAt: base.Add(time.Duration(i) * time.Hour)})
			require.NoError(t, err)
			require.NoError(t, repo.SetVisibility(ctx, id, true))
		}
		_, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u1", Name: "private", CreatedAt: base.Add(10 * time.Hour)})
		require.NoError(t, err)

		list, err := repo.ListPublic(ctx, 2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "c", list[0].Name)
		assert.Equal(t, "b", list[1].Name)
	})
}

func TestMemoryTipRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTipRepository()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, &model.Tip{PlaceName: "Bar do Mineiro", Category: model.TipCategoryFood, CreatedAt: base})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Tip{PlaceName: "Confeitaria Colombo", Category: model.TipCategoryFood, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &model.Tip{PlaceName: "Pedra da Gávea", Category: model.TipCategoryAdventure, CreatedAt: base})
	require.NoError(t, err)

	t.Run("カテゴリで絞り込み新しい順", func(t *testing.T) {
		tips, err := repo.ListByCategory(ctx, model.TipCategoryFood, 10)
		require.NoError(t, err)
		require.Len(t, tips, 2)
		assert.Equal(t, "Confeitaria Colombo", tips[0].PlaceName)
	})

	t.Run("allは全件", func(t *testing.T) {
		tips, err := repo.ListByCategory(ctx, model.TipCategoryAll, 10)
		require.NoError(t, err)
		assert.Len(t, tips, 3)
	})
}
