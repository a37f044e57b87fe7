package repository

import (
	"context"

	"roterize/internal/domain/model"
)

// DirectionsProvider は外部の経路検索サービス
// ステータスがOK以外の場合もエラーにせず生の結果を返す（分類は正規化側で行う）
type DirectionsProvider interface {
	Route(ctx context.Context, req *model.RouteRequest) (*model.DirectionsResult, error)
}

// AutocompleteProvider は外部のプレイス補完サービス
type AutocompleteProvider interface {
	Predict(ctx context.Context, text string, types []string) (*model.AutocompleteResult, error)
}
