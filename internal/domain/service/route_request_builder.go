package service

import (
	"fmt"
	"strings"

	"roterize/internal/domain/model"
)

// BuildRouteRequest は場所リストと移動手段から経路リクエストを組み立てる
// 最初の場所が出発地、最後の場所が目的地、その間が経由地になる
func BuildRouteRequest(places []string, mode model.TravelMode) (*model.RouteRequest, error) {
	cleaned := make([]string, 0, len(places))
	for _, p := range places {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) < MinPlacesForRoute {
		return nil, model.NewValidationError("places", fmt.Sprintf("ルートを生成するには%d件以上の場所を追加してください", MinPlacesForRoute))
	}

	parsed, ok := model.ParseTravelMode(string(mode))
	if !ok {
		return nil, model.NewValidationError("travel_mode", "travel_modeはWALKING, DRIVING, TRANSITのいずれかを指定してください")
	}

	// 経由地は入力順を保持する（最適化はプロバイダ側で行う）
	waypoints := make([]model.Waypoint, 0, len(cleaned)-2)
	for _, p := range cleaned[1 : len(cleaned)-1] {
		waypoints = append(waypoints, model.Waypoint{
			Location: p,
			Stopover: true,
		})
	}

	return &model.RouteRequest{
		Origin:            cleaned[0],
		Destination:       cleaned[len(cleaned)-1],
		Waypoints:         waypoints,
		TravelMode:        parsed,
		OptimizeWaypoints: true,
	}, nil
}
