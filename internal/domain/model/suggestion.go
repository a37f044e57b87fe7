package model

// SuggestionItem はプレイス補完APIから返された候補（永続化しない）
type SuggestionItem struct {
	Description     string `json:"description"`
	ProviderPlaceID string `json:"place_id"`
}

// AutocompleteResult はプレイス補完APIの生の結果
type AutocompleteResult struct {
	Status       string
	ErrorMessage string
	Predictions  []SuggestionItem
}

// DefaultAutocompleteTypes は補完検索で指定するタイプ
var DefaultAutocompleteTypes = []string{"establishment", "geocode"}

// MaxSuggestions は一度に表示する候補の最大数
const MaxSuggestions = 5
