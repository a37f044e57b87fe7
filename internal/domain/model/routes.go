package model

// Waypoint は出発地と目的地の間で立ち寄る地点
type Waypoint struct {
	Location string `json:"location"`
	Stopover bool   `json:"stopover"`
}

// RouteRequest は経路プロバイダへ渡す正規化済みのリクエスト
type RouteRequest struct {
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	Waypoints         []Waypoint `json:"waypoints"`
	TravelMode        TravelMode `json:"travel_mode"`
	OptimizeWaypoints bool       `json:"optimize_waypoints"`
}

// DirectionsResult は経路プロバイダから返された生の結果
// プロバイダのスキーマに依存しないよう必要な項目だけを保持する
type DirectionsResult struct {
	Status       string
	ErrorMessage string
	Routes       []DirectionsRoute
	Language     string // 距離・所要時間テキストの言語タグ（空なら不明）
}

// DirectionsRoute はプロバイダが返した1つのルート候補
type DirectionsRoute struct {
	Legs          []DirectionsLeg
	WaypointOrder []int
	Polyline      string
}

// DirectionsLeg はプロバイダが返した区間
type DirectionsLeg struct {
	StartAddress    string
	EndAddress      string
	StartLocation   LatLng
	EndLocation     LatLng
	DistanceText    string
	DistanceMeters  int
	DurationText    string
	DurationSeconds int
}

// RouteLeg は正規化済みの区間（ルート計算ごとに丸ごと置き換えられる）
type RouteLeg struct {
	StartLabel      string `json:"start_label" firestore:"startLabel"`
	EndLabel        string `json:"end_label" firestore:"endLabel"`
	StartAddress    string `json:"start_address" firestore:"startAddress"`
	EndAddress      string `json:"end_address" firestore:"endAddress"`
	DistanceText    string `json:"distance_text" firestore:"distanceText"`
	DurationText    string `json:"duration_text" firestore:"durationText"`
	DistanceMeters  int    `json:"distance_meters" firestore:"distanceMeters"`
	DurationSeconds int    `json:"duration_seconds" firestore:"durationSeconds"`
	StartLocation   LatLng `json:"start_location" firestore:"startLocation"`
	EndLocation     LatLng `json:"end_location" firestore:"endLocation"`
}

// Bounds は地図表示用の境界ボックス
type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// MapFit は地図を全区間に合わせるためのヒント
type MapFit struct {
	Bounds Bounds `json:"bounds"`
	Center LatLng `json:"center"`
}

// RouteSummary は正規化後のルート表示データ
type RouteSummary struct {
	Legs                 []RouteLeg `json:"legs"`
	TotalDistance        float64    `json:"total_distance_km"`      // 表示テキストから集計した距離（km）
	TotalDuration        int        `json:"total_duration_minutes"` // 表示テキストから集計した時間（分）
	TotalDistanceMeters  int        `json:"total_distance_meters"`
	TotalDurationSeconds int        `json:"total_duration_seconds"`
	MapFit               *MapFit    `json:"map_fit,omitempty"`
	Polyline             string     `json:"polyline,omitempty"`
}
