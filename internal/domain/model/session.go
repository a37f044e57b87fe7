package model

import "time"

// SessionSnapshot は編集セッションの現在の状態
type SessionSnapshot struct {
	SessionID       string           `json:"session_id"`
	OwnerID         string           `json:"owner_id"`
	Places          []string         `json:"places"`
	TravelMode      TravelMode       `json:"travel_mode"`
	StagedInput     string           `json:"staged_input"`
	Suggestions     []SuggestionItem `json:"suggestions"`
	ShowSuggestions bool             `json:"show_suggestions"`
	Route           *RouteSummary    `json:"route,omitempty"`
	State           PersistenceState `json:"state"`
	ItineraryID     string           `json:"itinerary_id,omitempty"`
	ItineraryName   string           `json:"itinerary_name,omitempty"`
	View            View             `json:"view"`
	Busy            bool             `json:"busy"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// AddPlaceRequest は場所追加リクエスト
type AddPlaceRequest struct {
	Place string `json:"place"`
}

// SetTravelModeRequest は移動手段変更リクエスト
type SetTravelModeRequest struct {
	TravelMode string `json:"travel_mode"`
}

// SetViewRequest は画面切り替えリクエスト
type SetViewRequest struct {
	View string `json:"view"`
}

// InputRequest は入力欄の変更イベント
type InputRequest struct {
	Text string `json:"text"`
}

// SelectSuggestionRequest は候補選択リクエスト
type SelectSuggestionRequest struct {
	Index int `json:"index"`
}

// SaveItineraryRequest はルート保存リクエスト
type SaveItineraryRequest struct {
	Name string `json:"name"`
	Mode string `json:"mode"` // "update" or "new"
}

// LoadItineraryRequest はルート読み込みリクエスト
type LoadItineraryRequest struct {
	ItineraryID string `json:"itinerary_id"`
}

// LoadItineraryResponse はルート読み込みレスポンス
// 経路の再計算に失敗した場合は保存済みの区間を返し、RouteWarningに理由を入れる
type LoadItineraryResponse struct {
	Session      *SessionSnapshot `json:"session"`
	RouteWarning string           `json:"route_warning,omitempty"`
}

// VisibilityRequest は公開設定変更リクエスト
type VisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}

// ItineraryListResponse はルート一覧レスポンス
type ItineraryListResponse struct {
	Itineraries []ItinerarySummary `json:"itineraries"`
}
