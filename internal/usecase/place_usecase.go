package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"roterize/internal/domain/model"
	"roterize/internal/domain/repository"
)

type PlaceUseCase interface {
	// Autocomplete は入力テキストに対する場所の候補を1回だけ問い合わせる
	Autocomplete(ctx context.Context, text string) ([]model.SuggestionItem, error)
}

type placeUseCaseImpl struct {
	provider repository.AutocompleteProvider
	minChars int
}

// NewPlaceUseCase は新しいPlaceUseCaseインスタンスを作成
func NewPlaceUseCase(provider repository.AutocompleteProvider, minChars int) PlaceUseCase {
	return &placeUseCaseImpl{provider: provider, minChars: minChars}
}

func (u *placeUseCaseImpl) Autocomplete(ctx context.Context, text string) ([]model.SuggestionItem, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < u.minChars {
		return []model.SuggestionItem{}, nil
	}

	result, err := u.provider.Predict(ctx, text, model.DefaultAutocompleteTypes)
	if err != nil {
		return nil, err
	}

	switch result.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []model.SuggestionItem{}, nil
	default:
		message := result.ErrorMessage
		if message == "" {
			message = "補完候補の取得に失敗しました"
		}
		return nil, &model.ProviderError{
			Provider: model.ProviderAutocomplete,
			Category: model.CategoryFromStatus(result.Status),
			Code:     result.Status,
			Message:  message,
		}
	}

	items := result.Predictions
	if len(items) > model.MaxSuggestions {
		items = items[:model.MaxSuggestions]
	}
	return items, nil
}
