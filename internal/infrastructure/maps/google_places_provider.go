package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"roterize/internal/domain/model"
)

const defaultAutocompleteURL = "https://maps.googleapis.com/maps/api/place/autocomplete/json"

// GooglePlacesProvider はGoogle Places Autocomplete APIを使用した入力補完の実装
// 全セッション共通のリミッタで1秒あたりの問い合わせ数を制限する
type GooglePlacesProvider struct {
	apiKey     string
	language   string
	baseURL    string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewGooglePlacesProvider は新しいプロバイダを生成する
func NewGooglePlacesProvider(apiKey, language string, qps float64) *GooglePlacesProvider {
	burst := int(qps)
	if burst < 1 {
		burst = 1
	}
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		language:   language,
		baseURL:    defaultAutocompleteURL,
		limiter:    rate.NewLimiter(rate.Limit(qps), burst),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// WithBaseURL は接続先を差し替える（テスト用）
func (g *GooglePlacesProvider) WithBaseURL(baseURL string) *GooglePlacesProvider {
	g.baseURL = baseURL
	return g
}

// Predict は入力テキストに対する場所の候補を取得する
func (g *GooglePlacesProvider) Predict(ctx context.Context, text string, types []string) (*model.AutocompleteResult, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &model.ProviderError{
			Provider: model.ProviderAutocomplete,
			Category: model.CategoryQuotaExceeded,
			Message:  "補完APIの問い合わせ待ちが打ち切られました",
			Err:      err,
		}
	}

	params := url.Values{}
	params.Set("input", text)
	if len(types) > 0 {
		params.Set("types", strings.Join(types, "|"))
	}
	if g.language != "" {
		params.Set("language", g.language)
	}
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", g.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &model.ProviderError{
			Provider: model.ProviderAutocomplete,
			Category: model.CategoryUnknown,
			Message:  "補完APIへのリクエストに失敗しました",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.ProviderError{
			Provider: model.ProviderAutocomplete,
			Category: model.CategoryUnknown,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  fmt.Sprintf("APIからエラーステータスが返されました: %s", resp.Status),
		}
	}

	var apiResp autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	result := &model.AutocompleteResult{
		Status:       apiResp.Status,
		ErrorMessage: apiResp.ErrorMessage,
		Predictions:  make([]model.SuggestionItem, 0, len(apiResp.Predictions)),
	}
	for _, p := range apiResp.Predictions {
		result.Predictions = append(result.Predictions, model.SuggestionItem{
			Description:     p.Description,
			ProviderPlaceID: p.PlaceID,
		})
	}
	return result, nil
}

type autocompleteResponse struct {
	Predictions  []prediction `json:"predictions"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
}
type prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}
