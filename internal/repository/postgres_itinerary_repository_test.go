package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roterize/internal/domain/model"
	"roterize/internal/infrastructure/database"
)

// TestPostgresItineraryRepository はDATABASE_URLが設定されている場合のみ実行する
func TestPostgresItineraryRepository(t *testing.T) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URLが設定されていません。統合テストをスキップします。")
	}

	ctx := context.Background()
	client, err := database.NewPostgreSQLClient(ctx, databaseURL)
	require.NoError(t, err)
	defer client.Close()

	repo := NewPostgresItineraryRepository(client)
	require.NoError(t, repo.EnsureSchema(ctx))

	owner := "test-owner-" + time.Now().Format("20060102150405.000000")
	now := time.Now().UTC().Truncate(time.Millisecond)
	itinerary := &model.Itinerary{
		OwnerID:    owner,
		Name:       "Teste",
		Places:     []string{"A", "B"},
		TravelMode: model.TravelModeWalking,
		Legs: []model.RouteLeg{{
			StartLabel:   "A",
			EndLabel:     "B",
			DistanceText: "1 km",
			DurationText: "12 min",
		}},
		TotalDistance: 1,
		TotalDuration: 12,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	t.Run("保存して取得", func(t *testing.T) {
		id, err := repo.Create(ctx, itinerary)
		require.NoError(t, err)
		itinerary.ID = id

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, itinerary.Places, got.Places)
		assert.Equal(t, itinerary.Legs, got.Legs)
		assert.Equal(t, model.TravelModeWalking, got.TravelMode)
	})

	t.Run("所有者で一覧", func(t *testing.T) {
		list, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, itinerary.ID, list[0].ID)
	})

	t.Run("削除", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, itinerary.ID))
		_, err := repo.GetByID(ctx, itinerary.ID)
		assert.ErrorIs(t, err, model.ErrItineraryNotFound)
	})

	t.Run("UUID以外のIDはnot found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, model.ErrItineraryNotFound)
	})
}
