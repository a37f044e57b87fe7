package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
)

const defaultDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

// GoogleDirectionsProvider はGoogle Maps Directions APIを使用した経路検索の実装
type GoogleDirectionsProvider struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleDirectionsProvider は新しいプロバイダを生成する
func NewGoogleDirectionsProvider(apiKey, language string) *GoogleDirectionsProvider {
	return &GoogleDirectionsProvider{
		apiKey:     apiKey,
		language:   language,
		baseURL:    defaultDirectionsURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL は接続先を差し替える（テスト用）
func (g *GoogleDirectionsProvider) WithBaseURL(baseURL string) *GoogleDirectionsProvider {
	g.baseURL = baseURL
	return g
}

// Route はDirections APIを呼び出して経路を取得する
// APIのステータスがOK以外でも生の結果を返す
func (g *GoogleDirectionsProvider) Route(ctx context.Context, routeReq *model.RouteRequest) (*model.DirectionsResult, error) {
	// 1. APIリクエストURLを構築
	reqURL := g.buildURL(routeReq)

	// 2. HTTPリクエストを作成・実行
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &model.ProviderError{
			Provider: model.ProviderDirections,
			Category: model.CategoryUnknown,
			Message:  "経路検索APIへのリクエストに失敗しました",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.ProviderError{
			Provider: model.ProviderDirections,
			Category: model.CategoryUnknown,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  fmt.Sprintf("APIからエラーステータスが返されました: %s", resp.Status),
		}
	}

	// 3. JSONレスポンスをパース
	var apiResp googleRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if apiResp.Status != "OK" {
		logrus.Warnf("⚠️ Directions APIのステータス: %s %s", apiResp.Status, apiResp.ErrorMessage)
	}

	// 4. ドメインモデルに変換して返す
	result := apiResp.toDirectionsResult()
	result.Language = g.language
	return result, nil
}

func (g *GoogleDirectionsProvider) buildURL(routeReq *model.RouteRequest) string {
	params := url.Values{}
	params.Set("origin", routeReq.Origin)
	params.Set("destination", routeReq.Destination)

	// 経由地を設定（optimize:trueで訪問順の最適化を依頼する）
	if len(routeReq.Waypoints) > 0 {
		viaPoints := make([]string, 0, len(routeReq.Waypoints)+1)
		if routeReq.OptimizeWaypoints {
			viaPoints = append(viaPoints, "optimize:true")
		}
		for _, wp := range routeReq.Waypoints {
			if wp.Stopover {
				viaPoints = append(viaPoints, wp.Location)
			} else {
				viaPoints = append(viaPoints, "via:"+wp.Location)
			}
		}
		params.Set("waypoints", strings.Join(viaPoints, "|"))
	}

	params.Set("mode", routeReq.TravelMode.APIValue())
	if g.language != "" {
		params.Set("language", g.language)
	}
	params.Set("key", g.apiKey)

	return fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
}

// --- Google Maps APIのレスポンスをパースするための構造体 ---

type googleRouteResponse struct {
	Routes       []route `json:"routes"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}
type route struct {
	Legs             []leg            `json:"legs"`
	WaypointOrder    []int            `json:"waypoint_order"`
	OverviewPolyline overviewPolyline `json:"overview_polyline"`
}
type leg struct {
	StartAddress  string      `json:"start_address"`
	EndAddress    string      `json:"end_address"`
	StartLocation apiLocation `json:"start_location"`
	EndLocation   apiLocation `json:"end_location"`
	Distance      textValue   `json:"distance"`
	Duration      textValue   `json:"duration"`
}
type apiLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"` // meters or seconds
}
type overviewPolyline struct {
	Points string `json:"points"`
}

func (r *googleRouteResponse) toDirectionsResult() *model.DirectionsResult {
	result := &model.DirectionsResult{
		Status:       r.Status,
		ErrorMessage: r.ErrorMessage,
		Routes:       make([]model.DirectionsRoute, 0, len(r.Routes)),
	}
	for _, rt := range r.Routes {
		dr := model.DirectionsRoute{
			WaypointOrder: rt.WaypointOrder,
			Polyline:      rt.OverviewPolyline.Points,
			Legs:          make([]model.DirectionsLeg, 0, len(rt.Legs)),
		}
		for _, l := range rt.Legs {
			dr.Legs = append(dr.Legs, model.DirectionsLeg{
				StartAddress:    l.StartAddress,
				EndAddress:      l.EndAddress,
				StartLocation:   model.LatLng{Lat: l.StartLocation.Lat, Lng: l.StartLocation.Lng},
				EndLocation:     model.LatLng{Lat: l.EndLocation.Lat, Lng: l.EndLocation.Lng},
				DistanceText:    l.Distance.Text,
				DistanceMeters:  l.Distance.Value,
				DurationText:    l.Duration.Text,
				DurationSeconds: l.Duration.Value,
			})
		}
		result.Routes = append(result.Routes, dr)
	}
	return result
}
