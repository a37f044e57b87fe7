package repository

import (
	"context"

	"roterize/internal/domain/model"
)

// ItineraryRepository は保存済みルートの永続化を担当するリポジトリインターフェース
type ItineraryRepository interface {
	// Create は新しいルートを作成し、永続化先が採番したIDを返す
	Create(ctx context.Context, itinerary *model.Itinerary) (string, error)
	// Update は既存のルートの内容を更新する（作成日時は変更しない）
	Update(ctx context.Context, itinerary *model.Itinerary) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Itinerary, error)
	// ListByOwner は所有者のルートを作成日時の降順で返す
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Itinerary, error)
	ListPublic(ctx context.Context, limit int) ([]*model.Itinerary, error)
	SetVisibility(ctx context.Context, id string, isPublic bool) error
}
