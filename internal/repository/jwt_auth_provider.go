package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"roterize/internal/domain/model"
)

// JWTAuthProvider はHS256で署名されたトークンを検証する（ローカル開発・テスト用）
type JWTAuthProvider struct {
	secret []byte
}

func NewJWTAuthProvider(secret string) (*JWTAuthProvider, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET環境変数が設定されていません")
	}
	return &JWTAuthProvider{secret: []byte(secret)}, nil
}

// GenerateToken はユーザーのトークンを発行する
func (p *JWTAuthProvider) GenerateToken(user *model.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.UID,
		"email":   user.Email,
		"name":    user.DisplayName,
		"picture": user.PhotoURL,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *JWTAuthProvider) Verify(ctx context.Context, tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, model.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrUnauthorized
	}
	uid, _ := claims.GetSubject()
	if uid == "" {
		return nil, model.ErrUnauthorized
	}
	return &model.User{
		UID:         uid,
		Email:       claimString(claims, "email"),
		DisplayName: claimString(claims, "name"),
		PhotoURL:    claimString(claims, "picture"),
	}, nil
}

// MemoryUserDirectory はJWTモード用のメモリ上のユーザー一覧
// 登録ユーザーのパスワードはbcryptハッシュで保持する
type MemoryUserDirectory struct {
	mu       sync.RWMutex
	users    map[string]*model.User
	byEmail  map[string]string // 正規化したメールアドレス -> uid
	password map[string][]byte // uid -> bcryptハッシュ
}

func NewMemoryUserDirectory() *MemoryUserDirectory {
	return &MemoryUserDirectory{
		users:    make(map[string]*model.User),
		byEmail:  make(map[string]string),
		password: make(map[string][]byte),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Remember はトークンから得たユーザーを登録する（既に更新済みのプロフィールは上書きしない）
func (d *MemoryUserDirectory) Remember(user *model.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[user.UID]; !ok {
		copied := *user
		d.users[user.UID] = &copied
	}
}

func (d *MemoryUserDirectory) Get(ctx context.Context, uid string) (*model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.users[uid]
	if !ok {
		return nil, &model.ProviderError{Provider: model.ProviderAuth, Category: model.CategoryNotFound, Message: "ユーザーが見つかりません: " + uid}
	}
	copied := *user
	return &copied, nil
}

func (d *MemoryUserDirectory) Create(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	email := normalizeEmail(req.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byEmail[email]; exists {
		return nil, model.NewValidationError("email", "このメールアドレスは既に登録されています")
	}

	user := &model.User{
		UID:         uuid.New().String(),
		Email:       email,
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	d.users[user.UID] = user
	d.byEmail[email] = user.UID
	d.password[user.UID] = hash

	logrus.Infof("✅ ユーザーを作成しました (uid: %s)", user.UID)
	copied := *user
	return &copied, nil
}

// Authenticate はメールアドレスとパスワードを照合する
func (d *MemoryUserDirectory) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	d.mu.RLock()
	uid, ok := d.byEmail[normalizeEmail(email)]
	hash := d.password[uid]
	var user model.User
	if ok {
		user = *d.users[uid]
	}
	d.mu.RUnlock()

	if !ok {
		return nil, model.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, model.ErrUnauthorized
	}
	return &user, nil
}

func (d *MemoryUserDirectory) Update(ctx context.Context, uid string, req *model.UpdateProfileRequest) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[uid]
	if !ok {
		user = &model.User{UID: uid}
		d.users[uid] = user
	}
	if req.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}
	copied := *user
	return &copied, nil
}

// JWTSignIn はMemoryUserDirectoryで照合したユーザーにHS256トークンを発行する
type JWTSignIn struct {
	provider  *JWTAuthProvider
	directory *MemoryUserDirectory
	ttl       time.Duration
}

func NewJWTSignIn(provider *JWTAuthProvider, directory *MemoryUserDirectory, ttl time.Duration) *JWTSignIn {
	return &JWTSignIn{provider: provider, directory: directory, ttl: ttl}
}

func (s *JWTSignIn) SignIn(ctx context.Context, email, password string) (*model.User, string, time.Duration, error) {
	user, err := s.directory.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", 0, err
	}
	token, err := s.provider.GenerateToken(user, s.ttl)
	if err != nil {
		return nil, "", 0, fmt.Errorf("トークンの発行に失敗: %w", err)
	}
	return user, token, s.ttl, nil
}
