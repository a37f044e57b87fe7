package model

// User は認証済みユーザー
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

// Name は表示用の名前を返す（表示名がなければメールアドレス）
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// SignUpRequest はユーザー登録リクエスト
type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name" binding:"max=50"`
}

// UpdateProfileRequest はプロフィール更新リクエスト
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=50"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,url"`
}

// ProfileResponse はプロフィール取得レスポンス
type ProfileResponse struct {
	User           *User   `json:"user"`
	ItineraryCount int     `json:"itinerary_count"`
	Level          int     `json:"level"`
	Badges         []Badge `json:"badges"`
}

// Badge は保存したルート数に応じて付与されるバッジ
type Badge struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	MinRoutes int    `json:"min_routes"`
}

// RoutesPerLevel はレベルが1つ上がるのに必要なルート数
const RoutesPerLevel = 5

// ProfileBadges は獲得条件の低い順
var ProfileBadges = []Badge{
	{Name: "Primeiro Roteiro", Icon: "🎯", MinRoutes: 1},
	{Name: "Explorador", Icon: "🗺️", MinRoutes: 5},
	{Name: "Aventureiro", Icon: "🏔️", MinRoutes: 10},
	{Name: "Mestre dos Roteiros", Icon: "👑", MinRoutes: 20},
}

// LevelFor は保存したルート数からレベルを返す（1から始まる）
func LevelFor(routes int) int {
	if routes < 0 {
		routes = 0
	}
	return routes/RoutesPerLevel + 1
}

// BadgesFor は保存したルート数で獲得済みのバッジを返す
func BadgesFor(routes int) []Badge {
	badges := make([]Badge, 0, len(ProfileBadges))
	for _, b := range ProfileBadges {
		if routes >= b.MinRoutes {
			badges = append(badges, b)
		}
	}
	return badges
}

// SignInRequest はパスワードによるログインリクエスト
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse はログイン時に発行したトークン
type SignInResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // 秒
	User      *User  `json:"user"`
}
