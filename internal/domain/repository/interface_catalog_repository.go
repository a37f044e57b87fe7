package repository

import (
	"context"

	"roterize/internal/domain/model"
)

type CatalogPlaceRepository interface {
	Create(ctx context.Context, place *model.CatalogPlace) (string, error)
	// ListByCategory はカテゴリの場所を評価の高い順に返す
	ListByCategory(ctx context.Context, category string, limit int) ([]*model.CatalogPlace, error)
}
