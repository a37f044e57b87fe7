package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"roterize/internal/domain/helper"
	"roterize/internal/domain/model"
)

// statusMessages はプロバイダがエラーメッセージを返さなかった場合の既定メッセージ
var statusMessages = map[model.ErrorCategory]string{
	model.CategoryNotFound:      "指定された場所の少なくとも1つが見つかりませんでした",
	model.CategoryZeroResults:   "指定された場所の間にルートが見つかりませんでした",
	model.CategoryQuotaExceeded: "経路検索の利用上限を超えました",
	model.CategoryRequestDenied: "経路検索のリクエストが拒否されました",
	model.CategoryUnknown:       "経路検索で不明なエラーが発生しました",
}

// NormalizeRoute はプロバイダの生の結果を内部表現に変換する
// places は経路リクエストを組み立てた元の場所リスト（区間名の推定に使用）
func NormalizeRoute(places []string, result *model.DirectionsResult) (*model.RouteSummary, error) {
	if err := checkDirectionsStatus(result); err != nil {
		return nil, err
	}

	route := result.Routes[0]
	order, confident := visitingOrder(places, route.WaypointOrder, len(route.Legs))

	summary := &model.RouteSummary{
		Legs:     make([]model.RouteLeg, 0, len(route.Legs)),
		Polyline: route.Polyline,
	}

	var distanceMeters, durationMinutes int
	for i, leg := range route.Legs {
		normalized := model.RouteLeg{
			StartAddress:    leg.StartAddress,
			EndAddress:      leg.EndAddress,
			DistanceText:    leg.DistanceText,
			DurationText:    leg.DurationText,
			DistanceMeters:  leg.DistanceMeters,
			DurationSeconds: leg.DurationSeconds,
			StartLocation:   leg.StartLocation,
			EndLocation:     leg.EndLocation,
		}
		if confident {
			normalized.StartLabel = order[i]
			normalized.EndLabel = order[i+1]
		} else {
			normalized.StartLabel = labelFromAddress(leg.StartAddress)
			normalized.EndLabel = labelFromAddress(leg.EndAddress)
		}

		// 解析できないテキストは合計に0として扱う
		if meters, ok := ParseDistanceMeters(leg.DistanceText, result.Language); ok {
			distanceMeters += meters
		} else {
			logrus.Debugf("⚠️ 区間%dの距離テキストを解析できませんでした: %q", i+1, leg.DistanceText)
		}
		if minutes, ok := ParseDurationMinutes(leg.DurationText); ok {
			durationMinutes += minutes
		} else {
			logrus.Debugf("⚠️ 区間%dの所要時間テキストを解析できませんでした: %q", i+1, leg.DurationText)
		}

		summary.TotalDistanceMeters += leg.DistanceMeters
		summary.TotalDurationSeconds += leg.DurationSeconds
		summary.Legs = append(summary.Legs, normalized)
	}

	summary.TotalDistance = float64(distanceMeters) / 1000
	summary.TotalDuration = durationMinutes
	summary.MapFit = helper.MapFitFromLegs(summary.Legs)

	return summary, nil
}

// checkDirectionsStatus はステータスをProviderErrorに変換する
func checkDirectionsStatus(result *model.DirectionsResult) error {
	if result == nil {
		return &model.ProviderError{
			Provider: model.ProviderDirections,
			Category: model.CategoryUnknown,
			Message:  statusMessages[model.CategoryUnknown],
		}
	}

	if result.Status != "OK" {
		category := model.CategoryFromStatus(result.Status)
		message := result.ErrorMessage
		if message == "" {
			message = statusMessages[category]
		}
		return &model.ProviderError{
			Provider: model.ProviderDirections,
			Category: category,
			Code:     result.Status,
			Message:  message,
		}
	}

	if len(result.Routes) == 0 || len(result.Routes[0].Legs) == 0 {
		return &model.ProviderError{
			Provider: model.ProviderDirections,
			Category: model.CategoryZeroResults,
			Code:     "ZERO_RESULTS",
			Message:  statusMessages[model.CategoryZeroResults],
		}
	}
	return nil
}

// visitingOrder はプロバイダが並べ替えた後の訪問順を元の場所名で復元する
// 経由地の並び順が有効な順列で、区間数が場所数-1と一致する場合のみconfident=true
// 曖昧な場合の優先順位は定めていない（ベストエフォート）
func visitingOrder(places []string, waypointOrder []int, legCount int) ([]string, bool) {
	if len(places) < MinPlacesForRoute || legCount != len(places)-1 {
		return nil, false
	}

	waypoints := places[1 : len(places)-1]
	if len(waypoints) == 0 {
		return places, true
	}
	if !isPermutation(waypointOrder, len(waypoints)) {
		return nil, false
	}

	order := make([]string, 0, len(places))
	order = append(order, places[0])
	for _, idx := range waypointOrder {
		order = append(order, waypoints[idx])
	}
	order = append(order, places[len(places)-1])
	return order, true
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// labelFromAddress は住所の最初のカンマより前を表示名として使う
func labelFromAddress(address string) string {
	label := strings.TrimSpace(strings.SplitN(address, ",", 2)[0])
	if label == "" {
		return strings.TrimSpace(address)
	}
	return label
}
