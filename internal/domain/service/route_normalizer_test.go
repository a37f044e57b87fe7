package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roterize/internal/domain/model"
)

func TestNormalizeRoute(t *testing.T) {
	t.Run("A→B→Cの自動車ルートを集計", func(t *testing.T) {
		summary, err := NormalizeRoute([]string{"A", "B", "C"}, threeStopResult())
		require.NoError(t, err)

		require.Len(t, summary.Legs, 2)
		assert.Equal(t, "A", summary.Legs[0].StartLabel)
		assert.Equal(t, "B", summary.Legs[0].EndLabel)
		assert.Equal(t, "B", summary.Legs[1].StartLabel)
		assert.Equal(t, "C", summary.Legs[1].EndLabel)
		assert.Equal(t, "2,5 km", summary.Legs[0].DistanceText)

		assert.InDelta(t, 3.7, summary.TotalDistance, 1e-9)
		assert.Equal(t, 75, summary.TotalDuration)
		assert.Equal(t, 3702, summary.TotalDistanceMeters)
		assert.Equal(t, 4490, summary.TotalDurationSeconds)
		assert.Equal(t, "abc", summary.Polyline)

		require.NotNil(t, summary.MapFit)
		assert.InDelta(t, -22.97, summary.MapFit.Bounds.SouthWest.Lat, 1e-9)
		assert.InDelta(t, -43.22, summary.MapFit.Bounds.SouthWest.Lng, 1e-9)
		assert.InDelta(t, -22.90, summary.MapFit.Bounds.NorthEast.Lat, 1e-9)
		assert.InDelta(t, -43.18, summary.MapFit.Bounds.NorthEast.Lng, 1e-9)
	})

	t.Run("結果の言語で桁区切りを判断する", func(t *testing.T) {
		result := &model.DirectionsResult{
			Status:   "OK",
			Language: "en",
			Routes: []model.DirectionsRoute{{
				Legs: []model.DirectionsLeg{
					{DistanceText: "1,234 km", DurationText: "20h30"},
				},
			}},
		}
		summary, err := NormalizeRoute([]string{"A", "B"}, result)
		require.NoError(t, err)
		assert.InDelta(t, 1234.0, summary.TotalDistance, 1e-9)
		assert.Equal(t, 1230, summary.TotalDuration)

		result.Language = "pt-BR"
		summary, err = NormalizeRoute([]string{"A", "B"}, result)
		require.NoError(t, err)
		assert.InDelta(t, 1.234, summary.TotalDistance, 1e-9)
	})

	t.Run("経由地の並び替えを反映", func(t *testing.T) {
		result := &model.DirectionsResult{
			Status: "OK",
			Routes: []model.DirectionsRoute{{
				WaypointOrder: []int{1, 0},
				Legs: []model.DirectionsLeg{
					{DistanceText: "1 km", DurationText: "1 min"},
					{DistanceText: "1 km", DurationText: "1 min"},
					{DistanceText: "1 km", DurationText: "1 min"},
				},
			}},
		}
		summary, err := NormalizeRoute([]string{"A", "B", "C", "D"}, result)
		require.NoError(t, err)

		labels := []string{summary.Legs[0].StartLabel}
		for _, leg := range summary.Legs {
			labels = append(labels, leg.EndLabel)
		}
		assert.Equal(t, []string{"A", "C", "B", "D"}, labels)
	})

	t.Run("区間数が合わなければ住所から表示名を作る", func(t *testing.T) {
		result := threeStopResult()
		summary, err := NormalizeRoute([]string{"A", "B", "C", "D"}, result)
		require.NoError(t, err)
		assert.Equal(t, "Praça A", summary.Legs[0].StartLabel)
		assert.Equal(t, "Avenida C", summary.Legs[1].EndLabel)
	})

	t.Run("解析できないテキストは0として扱う", func(t *testing.T) {
		result := threeStopResult()
		result.Routes[0].Legs[0].DistanceText = "perto"
		result.Routes[0].Legs[0].DurationText = "logo ali"
		summary, err := NormalizeRoute([]string{"A", "B", "C"}, result)
		require.NoError(t, err)
		assert.InDelta(t, 1.2, summary.TotalDistance, 1e-9)
		assert.Equal(t, 65, summary.TotalDuration)
	})

	t.Run("ZERO_RESULTSは分類されたエラー", func(t *testing.T) {
		_, err := NormalizeRoute([]string{"A", "B"}, &model.DirectionsResult{Status: "ZERO_RESULTS"})
		pe, ok := model.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, model.CategoryZeroResults, pe.Category)
		assert.Equal(t, "ZERO_RESULTS", pe.Code)
		assert.NotEmpty(t, pe.Message)
	})

	t.Run("プロバイダのメッセージをそのまま保持", func(t *testing.T) {
		_, err := NormalizeRoute([]string{"A", "B"}, &model.DirectionsResult{
			Status:       "REQUEST_DENIED",
			ErrorMessage: "The provided API key is invalid.",
		})
		pe, ok := model.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, model.CategoryRequestDenied, pe.Category)
		assert.Equal(t, "The provided API key is invalid.", pe.Message)
	})

	t.Run("OKでもルートがなければZERO_RESULTS", func(t *testing.T) {
		_, err := NormalizeRoute([]string{"A", "B"}, &model.DirectionsResult{Status: "OK"})
		pe, ok := model.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, model.CategoryZeroResults, pe.Category)
	})
}
