package model

import (
	"mime/multipart"
	"time"
)

// 場所カタログのカテゴリ
const (
	CatalogCategoryRestaurant = "restaurant"
	CatalogCategoryAttraction = "attraction"
	CatalogCategoryLodging    = "lodging"
	CatalogCategoryShopping   = "shopping"
	CatalogCategoryPark       = "park"
	CatalogCategoryMuseum     = "museum"
	CatalogCategoryShows      = "shows"
	CatalogCategoryNightlife  = "nightlife"
	CatalogCategoryBeach      = "beach"
	CatalogCategoryTrail      = "trail"
	CatalogCategoryAdventure  = "adventure"
	CatalogCategoryTransport  = "transport"
	CatalogCategoryServices   = "services"
	CatalogCategoryOther      = "other"
)

// CatalogCategoryNameMap はカテゴリIDから表示名へのマッピング
var CatalogCategoryNameMap = map[string]string{
	CatalogCategoryRestaurant: "Restaurante",
	CatalogCategoryAttraction: "Atração Turística",
	CatalogCategoryLodging:    "Hotel/Pousada",
	CatalogCategoryShopping:   "Shopping",
	CatalogCategoryPark:       "Parque",
	CatalogCategoryMuseum:     "Museu",
	CatalogCategoryShows:      "Teatro/Cinema",
	CatalogCategoryNightlife:  "Bar/Balada",
	CatalogCategoryBeach:      "Praia",
	CatalogCategoryTrail:      "Trilha/Caminhada",
	CatalogCategoryAdventure:  "Esporte/Aventura",
	CatalogCategoryTransport:  "Transporte",
	CatalogCategoryServices:   "Serviços",
	CatalogCategoryOther:      "Outros",
}

// IsValidCatalogCategory はカテゴリが定義済みかどうかを判定する
func IsValidCatalogCategory(category string) bool {
	_, ok := CatalogCategoryNameMap[category]
	return ok
}

// CatalogPriceRanges は場所の価格帯（無料はない）
var CatalogPriceRanges = []string{"$", "$$", "$$$", "$$$$"}

// Weekdays は営業時間のキー
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DefaultCatalogLimit は場所一覧の既定の件数
const DefaultCatalogLimit = 20

// DayHours は1日の営業時間（"HH:MM"）
type DayHours struct {
	Open   string `json:"open" firestore:"open"`
	Close  string `json:"close" firestore:"close"`
	Closed bool   `json:"closed" firestore:"closed"`
}

// CatalogPlace はユーザーが登録したおすすめの場所
type CatalogPlace struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Category        string              `json:"category"`
	Address         string              `json:"address"`
	Latitude        float64             `json:"latitude"`
	Longitude       float64             `json:"longitude"`
	OpeningHours    map[string]DayHours `json:"opening_hours"`
	PriceRange      string              `json:"price_range"`
	Tags            []string            `json:"tags"`
	Website         string              `json:"website"`
	Phone           string              `json:"phone"`
	Photos          []string            `json:"photos"`
	ContributorID   string              `json:"contributor_id"`
	ContributorName string              `json:"contributor_name"`
	Verified        bool                `json:"verified"`
	AverageRating   float64             `json:"average_rating"`
	TotalReviews    int                 `json:"total_reviews"`
	CreatedAt       time.Time           `json:"created_at"`
}

// CreateCatalogPlaceRequest は場所登録リクエスト（multipartのフォーム項目）
type CreateCatalogPlaceRequest struct {
	Name         string                  `form:"name" binding:"required,max=120"`
	Description  string                  `form:"description" binding:"required"`
	Category     string                  `form:"category" binding:"required,oneof=restaurant attraction lodging shopping park museum shows nightlife beach trail adventure transport services other"`
	Address      string                  `form:"address" binding:"required"`
	Latitude     *float64                `form:"latitude" binding:"required,latitude"`
	Longitude    *float64                `form:"longitude" binding:"required,longitude"`
	OpeningHours string                  `form:"opening_hours"` // 曜日ごとのDayHoursのJSON
	PriceRange   string                  `form:"price_range" binding:"omitempty,oneof=$ $$ $$$ $$$$"`
	Tags         string                  `form:"tags"` // カンマ区切り
	Website      string                  `form:"website" binding:"omitempty,url"`
	Phone        string                  `form:"phone" binding:"max=30"`
	Photos       []*multipart.FileHeader `form:"photos" binding:"max=5"`
}

// FirestoreCatalogPlace はFirestoreのplacesコレクションのドキュメント形式
type FirestoreCatalogPlace struct {
	Name            string              `firestore:"name"`
	Description     string              `firestore:"description"`
	Category        string              `firestore:"category"`
	Address         string              `firestore:"address"`
	Latitude        float64             `firestore:"latitude"`
	Longitude       float64             `firestore:"longitude"`
	OpeningHours    map[string]DayHours `firestore:"openingHours"`
	PriceRange      string              `firestore:"priceRange"`
	Tags            []string            `firestore:"tags"`
	Website         string              `firestore:"website"`
	Phone           string              `firestore:"phone"`
	Photos          []string            `firestore:"photos"`
	ContributorID   string              `firestore:"contributorId"`
	ContributorName string              `firestore:"contributorName"`
	Verified        bool                `firestore:"verified"`
	AverageRating   float64             `firestore:"averageRating"`
	TotalReviews    int                 `firestore:"totalReviews"`
	CreatedAt       time.Time           `firestore:"createdAt"`
}

// ToFirestoreCatalogPlace はCatalogPlaceをFirestore用の構造体に変換する
func (p *CatalogPlace) ToFirestoreCatalogPlace() *FirestoreCatalogPlace {
	return &FirestoreCatalogPlace{
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Address:         p.Address,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		OpeningHours:    p.OpeningHours,
		PriceRange:      p.PriceRange,
		Tags:            p.Tags,
		Website:         p.Website,
		Phone:           p.Phone,
		Photos:          p.Photos,
		ContributorID:   p.ContributorID,
		ContributorName: p.ContributorName,
		Verified:        p.Verified,
		AverageRating:   p.AverageRating,
		TotalReviews:    p.TotalReviews,
		CreatedAt:       p.CreatedAt,
	}
}

// ToCatalogPlace はFirestoreのドキュメントをCatalogPlaceに変換する
func (f *FirestoreCatalogPlace) ToCatalogPlace(id string) *CatalogPlace {
	return &CatalogPlace{
		ID:              id,
		Name:            f.Name,
		Description:     f.Description,
		Category:        f.Category,
		Address:         f.Address,
		Latitude:        f.Latitude,
		Longitude:       f.Longitude,
		OpeningHours:    f.OpeningHours,
		PriceRange:      f.PriceRange,
		Tags:            f.Tags,
		Website:         f.Website,
		Phone:           f.Phone,
		Photos:          f.Photos,
		ContributorID:   f.ContributorID,
		ContributorName: f.ContributorName,
		Verified:        f.Verified,
		AverageRating:   f.AverageRating,
		TotalReviews:    f.TotalReviews,
		CreatedAt:       f.CreatedAt,
	}
}
