package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roterize/internal/domain/model"
)

func TestGooglePlacesProvider_Predict(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{
		  "status": "OK",
		  "predictions": [
		    {"description": "Cristo Redentor, Rio de Janeiro", "place_id": "p1"},
		    {"description": "Copacabana, Rio de Janeiro", "place_id": "p2"}
		  ]
		}`))
	}))
	defer server.Close()

	provider := NewGooglePlacesProvider("key", "pt-BR", 5).WithBaseURL(server.URL)
	result, err := provider.Predict(context.Background(), "cri", model.DefaultAutocompleteTypes)

	require.NoError(t, err)
	assert.Equal(t, "cri", got.Get("input"))
	assert.Equal(t, "establishment|geocode", got.Get("types"))
	assert.Equal(t, "OK", result.Status)
	require.Len(t, result.Predictions, 2)
	assert.Equal(t, "Cristo Redentor, Rio de Janeiro", result.Predictions[0].Description)
	assert.Equal(t, "p2", result.Predictions[1].ProviderPlaceID)
}

func TestGooglePlacesProvider_StatusIsPassedThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "invalid key", "predictions": []}`))
	}))
	defer server.Close()

	provider := NewGooglePlacesProvider("bad", "", 5).WithBaseURL(server.URL)
	result, err := provider.Predict(context.Background(), "rio", nil)

	require.NoError(t, err)
	assert.Equal(t, "REQUEST_DENIED", result.Status)
	assert.Equal(t, "invalid key", result.ErrorMessage)
	assert.Empty(t, result.Predictions)
}

func TestGooglePlacesProvider_RateLimitHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "predictions": []}`))
	}))
	defer server.Close()

	// 1分に1回しか許可しないリミッタ
	provider := NewGooglePlacesProvider("key", "", 1.0/60).WithBaseURL(server.URL)
	_, err := provider.Predict(context.Background(), "rio", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = provider.Predict(ctx, "rio de", nil)

	require.Error(t, err)
	pe, ok := model.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, model.CategoryQuotaExceeded, pe.Category)
}
