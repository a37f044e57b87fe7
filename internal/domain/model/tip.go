package model

import (
	"mime/multipart"
	"strings"
	"time"
)

// TipCategoryAll はカテゴリ絞り込みなしを表す
const TipCategoryAll = "all"

// チップのカテゴリ
const (
	TipCategoryFood      = "food"
	TipCategoryLodging   = "lodging"
	TipCategorySights    = "sights"
	TipCategoryShopping  = "shopping"
	TipCategoryNature    = "nature"
	TipCategoryCulture   = "culture"
	TipCategoryShows     = "shows"
	TipCategoryNightlife = "nightlife"
	TipCategoryBeach     = "beach"
	TipCategoryAdventure = "adventure"
	TipCategorySports    = "sports"
	TipCategoryTransport = "transport"
	TipCategoryServices  = "services"
	TipCategoryMarket    = "market"
	TipCategoryOther     = "other"
)

// TipCategoryNameMap はカテゴリIDから表示名へのマッピング
var TipCategoryNameMap = map[string]string{
	TipCategoryFood:      "Restaurante/Comida",
	TipCategoryLodging:   "Hotel/Hospedagem",
	TipCategorySights:    "Turismo/Pontos Turísticos",
	TipCategoryShopping:  "Compras/Shopping",
	TipCategoryNature:    "Parque/Natureza",
	TipCategoryCulture:   "Museu/Cultura",
	TipCategoryShows:     "Teatro/Cinema",
	TipCategoryNightlife: "Bar/Vida Noturna",
	TipCategoryBeach:     "Praia/Água",
	TipCategoryAdventure: "Trilha/Aventura",
	TipCategorySports:    "Esporte/Fitness",
	TipCategoryTransport: "Transporte",
	TipCategoryServices:  "Serviços",
	TipCategoryMarket:    "Mercado/Feira",
	TipCategoryOther:     "Outros",
}

// IsValidTipCategory はカテゴリが定義済みかどうかを判定する
func IsValidTipCategory(category string) bool {
	_, ok := TipCategoryNameMap[category]
	return ok
}

// 価格帯
var TipPriceRanges = []string{"gratis", "$", "$$", "$$$", "$$$$"}

// DefaultTipsLimit はチップ一覧の既定の件数
const DefaultTipsLimit = 20

// Tip はコミュニティから投稿されたおすすめ情報
type Tip struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	PlaceName       string    `json:"place_name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Address         string    `json:"address"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	Rating          int       `json:"rating"`
	PriceRange      string    `json:"price_range"`
	Tags            []string  `json:"tags"`
	Tip             string    `json:"tip"`
	BestTimeToVisit string    `json:"best_time_to_visit"`
	Accessibility   bool      `json:"accessibility"`
	FamilyFriendly  bool      `json:"family_friendly"`
	Photos          []string  `json:"photos"`
	Likes           int       `json:"likes"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateTipRequest はチップ投稿リクエスト（multipartのフォーム項目）
type CreateTipRequest struct {
	PlaceName       string                  `form:"place_name" binding:"required,max=120"`
	Description     string                  `form:"description" binding:"required"`
	Category        string                  `form:"category" binding:"required,oneof=food lodging sights shopping nature culture shows nightlife beach adventure sports transport services market other"`
	Address         string                  `form:"address"`
	Latitude        *float64                `form:"latitude" binding:"omitempty,latitude"`
	Longitude       *float64                `form:"longitude" binding:"omitempty,longitude"`
	Rating          int                     `form:"rating" binding:"min=0,max=5"`
	PriceRange      string                  `form:"price_range" binding:"omitempty,oneof=gratis $ $$ $$$ $$$$"`
	Tags            string                  `form:"tags"` // カンマ区切り
	Tip             string                  `form:"tip"`
	BestTimeToVisit string                  `form:"best_time_to_visit"`
	Accessibility   bool                    `form:"accessibility"`
	FamilyFriendly  bool                    `form:"family_friendly"`
	Photos          []*multipart.FileHeader `form:"photos" binding:"max=5"`
}

// SplitTags はカンマ区切りのタグを分割し、空要素を除外する
func SplitTags(raw string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FirestoreTip はFirestoreに保存するドキュメント形式
type FirestoreTip struct {
	UserID          string    `firestore:"userId"`
	UserName        string    `firestore:"userName"`
	PlaceName       string    `firestore:"placeName"`
	Description     string    `firestore:"description"`
	Category        string    `firestore:"category"`
	Address         string    `firestore:"address"`
	Latitude        *float64  `firestore:"latitude"`
	Longitude       *float64  `firestore:"longitude"`
	Rating          int       `firestore:"rating"`
	PriceRange      string    `firestore:"priceRange"`
	Tags            []string  `firestore:"tags"`
	Tip             string    `firestore:"tip"`
	BestTimeToVisit string    `firestore:"bestTimeToVisit"`
	Accessibility   bool      `firestore:"accessibility"`
	FamilyFriendly  bool      `firestore:"familyFriendly"`
	Photos          []string  `firestore:"photos"`
	Likes           int       `firestore:"likes"`
	CreatedAt       time.Time `firestore:"createdAt"`
}

// ToFirestoreTip はTipをFirestore用の構造体に変換する
func (t *Tip) ToFirestoreTip() *FirestoreTip {
	return &FirestoreTip{
		UserID:          t.UserID,
		UserName:        t.UserName,
		PlaceName:       t.PlaceName,
		Description:     t.Description,
		Category:        t.Category,
		Address:         t.Address,
		Latitude:        t.Latitude,
		Longitude:       t.Longitude,
		Rating:          t.Rating,
		PriceRange:      t.PriceRange,
		Tags:            t.Tags,
		Tip:             t.Tip,
		BestTimeToVisit: t.BestTimeToVisit,
		Accessibility:   t.Accessibility,
		FamilyFriendly:  t.FamilyFriendly,
		Photos:          t.Photos,
		Likes:           t.Likes,
		CreatedAt:       t.CreatedAt,
	}
}

// ToTip はFirestoreのドキュメントをTipに変換する
func (f *FirestoreTip) ToTip(id string) *Tip {
	return &Tip{
		ID:              id,
		UserID:          f.UserID,
		UserName:        f.UserName,
		PlaceName:       f.PlaceName,
		Description:     f.Description,
		Category:        f.Category,
		Address:         f.Address,
		Latitude:        f.Latitude,
		Longitude:       f.Longitude,
		Rating:          f.Rating,
		PriceRange:      f.PriceRange,
		Tags:            f.Tags,
		Tip:             f.Tip,
		BestTimeToVisit: f.BestTimeToVisit,
		Accessibility:   f.Accessibility,
		FamilyFriendly:  f.FamilyFriendly,
		Photos:          f.Photos,
		Likes:           f.Likes,
		CreatedAt:       f.CreatedAt,
	}
}
