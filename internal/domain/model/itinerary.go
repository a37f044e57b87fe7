package model

import (
	"strings"
	"time"
)

// SaveMode は保存時の動作（既存を更新するか、新規として保存するか）
type SaveMode string

const (
	SaveModeUpdate SaveMode = "update"
	SaveModeNew    SaveMode = "new"
)

// ParseSaveMode は文字列をSaveModeに変換する（空文字はupdate扱い）
func ParseSaveMode(s string) (SaveMode, bool) {
	switch SaveMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SaveModeUpdate:
		return SaveModeUpdate, true
	case SaveModeNew:
		return SaveModeNew, true
	default:
		return "", false
	}
}

// PersistenceState は編集セッションの保存状態
type PersistenceState string

const (
	StateUnsaved PersistenceState = "unsaved"
	StateSaved   PersistenceState = "saved"
	StateDirty   PersistenceState = "dirty"
)

// Itinerary は保存されたルート
type Itinerary struct {
	ID                   string     `json:"id"`
	OwnerID              string     `json:"owner_id"`
	Name                 string     `json:"name"`
	Places               []string   `json:"places"`
	TravelMode           TravelMode `json:"travel_mode"`
	Legs                 []RouteLeg `json:"legs"`
	TotalDistance        float64    `json:"total_distance_km"`
	TotalDuration        int        `json:"total_duration_minutes"`
	TotalDistanceMeters  int        `json:"total_distance_meters"`
	TotalDurationSeconds int        `json:"total_duration_seconds"`
	IsPublic             bool       `json:"is_public"`
	Likes                int        `json:"likes"`
	Views                int        `json:"views"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ItineraryContent は保存対象となる編集中の内容
type ItineraryContent struct {
	Places     []string
	TravelMode TravelMode
	Route      *RouteSummary
}

// FirestoreItinerary はFirestoreに保存するドキュメント形式
type FirestoreItinerary struct {
	OwnerID              string     `firestore:"userId"`
	Name                 string     `firestore:"name"`
	Places               []string   `firestore:"places"`
	TravelMode           string     `firestore:"travelMode"`
	Legs                 []RouteLeg `firestore:"legs"`
	TotalDistance        float64    `firestore:"totalDistance"`
	TotalDuration        int        `firestore:"totalDuration"`
	TotalDistanceMeters  int        `firestore:"totalDistanceMeters"`
	TotalDurationSeconds int        `firestore:"totalDurationSeconds"`
	IsPublic             bool       `firestore:"isPublic"`
	Likes                int        `firestore:"likes"`
	Views                int        `firestore:"views"`
	CreatedAt            time.Time  `firestore:"createdAt"`
	UpdatedAt            time.Time  `firestore:"updatedAt"`
}

// ToFirestoreItinerary はItineraryをFirestore用の構造体に変換する
func (it *Itinerary) ToFirestoreItinerary() *FirestoreItinerary {
	return &FirestoreItinerary{
		OwnerID:              it.OwnerID,
		Name:                 it.Name,
		Places:               it.Places,
		TravelMode:           string(it.TravelMode),
		Legs:                 it.Legs,
		TotalDistance:        it.TotalDistance,
		TotalDuration:        it.TotalDuration,
		TotalDistanceMeters:  it.TotalDistanceMeters,
		TotalDurationSeconds: it.TotalDurationSeconds,
		IsPublic:             it.IsPublic,
		Likes:                it.Likes,
		Views:                it.Views,
		CreatedAt:            it.CreatedAt,
		UpdatedAt:            it.UpdatedAt,
	}
}

// ToItinerary はFirestoreのドキュメントをItineraryに変換する
func (f *FirestoreItinerary) ToItinerary(id string) *Itinerary {
	mode, ok := ParseTravelMode(f.TravelMode)
	if !ok {
		mode = DefaultTravelMode
	}
	return &Itinerary{
		ID:                   id,
		OwnerID:              f.OwnerID,
		Name:                 f.Name,
		Places:               f.Places,
		TravelMode:           mode,
		Legs:                 f.Legs,
		TotalDistance:        f.TotalDistance,
		TotalDuration:        f.TotalDuration,
		TotalDistanceMeters:  f.TotalDistanceMeters,
		TotalDurationSeconds: f.TotalDurationSeconds,
		IsPublic:             f.IsPublic,
		Likes:                f.Likes,
		Views:                f.Views,
		CreatedAt:            f.CreatedAt,
		UpdatedAt:            f.UpdatedAt,
	}
}

// ItinerarySummary は一覧表示用の要約
type ItinerarySummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	PlaceCount    int        `json:"place_count"`
	TravelMode    TravelMode `json:"travel_mode"`
	TotalDistance float64    `json:"total_distance_km"`
	TotalDuration int        `json:"total_duration_minutes"`
	IsPublic      bool       `json:"is_public"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Summary はItineraryから一覧表示用の要約を作成する
func (it *Itinerary) Summary() ItinerarySummary {
	return ItinerarySummary{
		ID:            it.ID,
		Name:          it.Name,
		PlaceCount:    len(it.Places),
		TravelMode:    it.TravelMode,
		TotalDistance: it.TotalDistance,
		TotalDuration: it.TotalDuration,
		IsPublic:      it.IsPublic,
		CreatedAt:     it.CreatedAt,
	}
}
