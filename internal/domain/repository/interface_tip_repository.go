package repository

import (
	"context"

	"roterize/internal/domain/model"
)

type TipRepository interface {
	Create(ctx context.Context, tip *model.Tip) (string, error)
	// ListByCategory はカテゴリのチップを新しい順に返す（model.TipCategoryAllは全件）
	ListByCategory(ctx context.Context, category string, limit int) ([]*model.Tip, error)
}
