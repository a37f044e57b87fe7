package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"roterize/internal/database"
	"roterize/internal/domain/model"
)

const CatalogTable = "places"

// SupabaseCatalogRepository Supabase（PostgREST）を使用した場所カタログのリポジトリ
type SupabaseCatalogRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseCatalogRepository(client *database.SupabaseClient) *SupabaseCatalogRepository {
	return &SupabaseCatalogRepository{client: client}
}

// catalogPlaceDB はplacesテーブルの行（opening_hoursはjsonb）
type catalogPlaceDB struct {
	ID              string                    `json:"id"`
	Name            string                    `json:"name"`
	Description     string                    `json:"description"`
	Category        string                    `json:"category"`
	Address         string                    `json:"address"`
	Latitude        float64                   `json:"latitude"`
	Longitude       float64                   `json:"longitude"`
	OpeningHours    map[string]model.DayHours `json:"opening_hours"`
	PriceRange      string                    `json:"price_range"`
	Tags            []string                  `json:"tags"`
	Website         string                    `json:"website"`
	Phone           string                    `json:"phone"`
	Photos          []string                  `json:"photos"`
	ContributorID   string                    `json:"contributor_id"`
	ContributorName string                    `json:"contributor_name"`
	Verified        bool                      `json:"verified"`
	AverageRating   float64                   `json:"average_rating"`
	TotalReviews    int                       `json:"total_reviews"`
	CreatedAt       time.Time                 `json:"created_at"`
}

func (r *SupabaseCatalogRepository) Create(ctx context.Context, place *model.CatalogPlace) (string, error) {
	row := catalogPlaceDB(*place)
	row.ID = uuid.New().String()
	_, _, err := r.client.GetClient().From(CatalogTable).Insert(&row, false, "", "minimal", "").Execute()
	if err != nil {
		return "", supabaseError("場所の作成", err)
	}
	return row.ID, nil
}

func (r *SupabaseCatalogRepository) ListByCategory(ctx context.Context, category string, limit int) ([]*model.CatalogPlace, error) {
	data, _, err := r.client.GetClient().From(CatalogTable).
		Select("*", "", false).
		Eq("category", category).
		Order("average_rating", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, supabaseError("場所一覧の取得", err)
	}

	var rows []catalogPlaceDB
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("場所データのJSONアンマーシャル失敗: %w", err)
	}

	places := make([]*model.CatalogPlace, 0, len(rows))
	for i := range rows {
		place := model.CatalogPlace(rows[i])
		places = append(places, &place)
	}
	return places, nil
}
