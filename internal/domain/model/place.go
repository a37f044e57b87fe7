package model

import "strings"

// TravelMode は経路計算に使用する移動手段
type TravelMode string

const (
	TravelModeWalking TravelMode = "WALKING"
	TravelModeDriving TravelMode = "DRIVING"
	TravelModeTransit TravelMode = "TRANSIT"
)

// DefaultTravelMode は新しい編集セッションの移動手段
const DefaultTravelMode = TravelModeDriving

// ParseTravelMode は文字列をTravelModeに変換する（大文字小文字は区別しない）
func ParseTravelMode(s string) (TravelMode, bool) {
	switch TravelMode(strings.ToUpper(strings.TrimSpace(s))) {
	case TravelModeWalking:
		return TravelModeWalking, true
	case TravelModeDriving:
		return TravelModeDriving, true
	case TravelModeTransit:
		return TravelModeTransit, true
	default:
		return "", false
	}
}

// APIValue はDirections APIのmodeパラメータ値を返す
func (m TravelMode) APIValue() string {
	return strings.ToLower(string(m))
}

// GetAllTravelModes は対応している移動手段の一覧を取得する
func GetAllTravelModes() []TravelMode {
	return []TravelMode{TravelModeWalking, TravelModeDriving, TravelModeTransit}
}

// LatLng 緯度経度を表す基本的な型
type LatLng struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// View は画面の表示状態（複数のbooleanフラグの代わりに単一のenumで管理する）
type View string

const (
	ViewPlanner     View = "planner"
	ViewSavedRoutes View = "saved_routes"
	ViewSaveDialog  View = "save_dialog"
	ViewTips        View = "tips"
	ViewProfile     View = "profile"
)

// ParseView は文字列をViewに変換する
func ParseView(s string) (View, bool) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewPlanner, ViewSavedRoutes, ViewSaveDialog, ViewTips, ViewProfile:
		return v, true
	default:
		return "", false
	}
}
