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

const TipsTable = "tips"

// SupabaseTipRepository Supabase（PostgREST）を使用したチップのリポジトリ
type SupabaseTipRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseTipRepository(client *database.SupabaseClient) *SupabaseTipRepository {
	return &SupabaseTipRepository{client: client}
}

// tipDB はtipsテーブルの行
type tipDB struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	PlaceName       string    `json:"place_name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Address         string    `json:"address"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	Rating          int       `json:"rating"`
	PriceRange      string    `json:"price_range"`
	Tags            []string  `json:"tags"`
	Tip             string    `json:"tip"`
	BestTimeToVisit string    `json:"best_time_to_visit"`
	Accessibility   bool      `json:"accessibility"`
	FamilyFriendly  bool      `json:"family_friendly"`
	Photos          []string  `json:"photos"`
	Likes           int       `json:"likes"`
	CreatedAt       time.Time `json:"created_at"`
}

func tipToDB(id string, t *model.Tip) *tipDB {
	return &tipDB{
		ID:              id,
		UserID:          t.UserID,
		UserName:        t.UserName,
		PlaceName:       t.PlaceName,
		Description:     t.Description,
		Category:        t.Category,
		Address:         t.Address,
		Latitude:        t.Latitude,
		Longitude:       t.Longitude,
		Rating:          t.Rating,
		PriceRange:      t.PriceRange,
		Tags:            t.Tags,
		Tip:             t.Tip,
		BestTimeToVisit: t.BestTimeToVisit,
		Accessibility:   t.Accessibility,
		FamilyFriendly:  t.FamilyFriendly,
		Photos:          t.Photos,
		Likes:           t.Likes,
		CreatedAt:       t.CreatedAt,
	}
}

func (d *tipDB) toTip() *model.Tip {
	return &model.Tip{
		ID:              d.ID,
		UserID:          d.UserID,
		UserName:        d.UserName,
		PlaceName:       d.PlaceName,
		Description:     d.Description,
		Category:        d.Category,
		Address:         d.Address,
		Latitude:        d.Latitude,
		Longitude:       d.Longitude,
		Rating:          d.Rating,
		PriceRange:      d.PriceRange,
		Tags:            d.Tags,
		Tip:             d.Tip,
		BestTimeToVisit: d.BestTimeToVisit,
		Accessibility:   d.Accessibility,
		FamilyFriendly:  d.FamilyFriendly,
		Photos:          d.Photos,
		Likes:           d.Likes,
		CreatedAt:       d.CreatedAt,
	}
}

func (r *SupabaseTipRepository) Create(ctx context.Context, tip *model.Tip) (string, error) {
	id := uuid.New().String()
	_, _, err := r.client.GetClient().From(TipsTable).Insert(tipToDB(id, tip), false, "", "minimal", "").Execute()
	if err != nil {
		return "", supabaseError("チップの作成", err)
	}
	return id, nil
}

func (r *SupabaseTipRepository) ListByCategory(ctx context.Context, category string, limit int) ([]*model.Tip, error) {
	query := r.client.GetClient().From(TipsTable).Select("*", "", false)
	if category != "" && category != model.TipCategoryAll {
		query = query.Eq("category", category)
	}
	data, _, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, supabaseError("チップ一覧の取得", err)
	}

	var rows []tipDB
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("チップデータのJSONアンマーシャル失敗: %w", err)
	}

	tips := make([]*model.Tip, 0, len(rows))
	for i := range rows {
		tips = append(tips, rows[i].toTip())
	}
	return tips, nil
}

func supabaseError(action string, err error) error {
	return &model.ProviderError{
		Provider: model.ProviderSupabase,
		Category: model.CategoryUnknown,
		Message:  fmt.Sprintf("%s失敗: %v", action, err),
		Err:      err,
	}
}
