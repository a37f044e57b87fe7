package repository

import (
	"context"
	"time"

	"roterize/internal/domain/model"
)

// AuthProvider はリクエストのトークンを検証して現在のユーザーを返す
type AuthProvider interface {
	Verify(ctx context.Context, token string) (*model.User, error)
}

// UserDirectory はユーザー情報の取得・更新を担当する
type UserDirectory interface {
	Get(ctx context.Context, uid string) (*model.User, error)
	Create(ctx context.Context, req *model.SignUpRequest) (*model.User, error)
	Update(ctx context.Context, uid string, req *model.UpdateProfileRequest) (*model.User, error)
}

// PasswordSignIn はメールアドレスとパスワードを照合してトークンを発行する
type PasswordSignIn interface {
	SignIn(ctx context.Context, email, password string) (user *model.User, token string, ttl time.Duration, err error)
}
