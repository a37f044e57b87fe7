package repository

import (
	"context"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
)

// FirebaseAuthProvider はFirebaseのIDトークンを検証する
type FirebaseAuthProvider struct {
	client *auth.Client
}

func NewFirebaseAuthProvider(client *auth.Client) *FirebaseAuthProvider {
	return &FirebaseAuthProvider{client: client}
}

func (p *FirebaseAuthProvider) Verify(ctx context.Context, idToken string) (*model.User, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		logrus.Debugf("⚠️ IDトークンの検証に失敗: %v", err)
		return nil, model.ErrUnauthorized
	}
	return &model.User{
		UID:         token.UID,
		Email:       claimString(token.Claims, "email"),
		DisplayName: claimString(token.Claims, "name"),
		PhotoURL:    claimString(token.Claims, "picture"),
	}, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// FirebaseUserDirectory はFirebase Authのユーザー情報を管理する
type FirebaseUserDirectory struct {
	client *auth.Client
}

func NewFirebaseUserDirectory(client *auth.Client) *FirebaseUserDirectory {
	return &FirebaseUserDirectory{client: client}
}

func (d *FirebaseUserDirectory) Get(ctx context.Context, uid string) (*model.User, error) {
	record, err := d.client.GetUser(ctx, uid)
	if err != nil {
		return nil, authError("ユーザーの取得", err)
	}
	return userFromRecord(record), nil
}

func (d *FirebaseUserDirectory) Create(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	params := (&auth.UserToCreate{}).
		Email(strings.TrimSpace(req.Email)).
		Password(req.Password)
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		params = params.DisplayName(name)
	}

	record, err := d.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, model.NewValidationError("email", "このメールアドレスは既に登録されています")
		}
		return nil, authError("ユーザーの作成", err)
	}

	logrus.Infof("✅ ユーザーを作成しました (uid: %s)", record.UID)
	return userFromRecord(record), nil
}

func (d *FirebaseUserDirectory) Update(ctx context.Context, uid string, req *model.UpdateProfileRequest) (*model.User, error) {
	params := &auth.UserToUpdate{}
	if req.DisplayName != nil {
		params = params.DisplayName(strings.TrimSpace(*req.DisplayName))
	}
	if req.PhotoURL != nil {
		params = params.PhotoURL(*req.PhotoURL)
	}

	record, err := d.client.UpdateUser(ctx, uid, params)
	if err != nil {
		return nil, authError("プロフィールの更新", err)
	}
	return userFromRecord(record), nil
}

func userFromRecord(record *auth.UserRecord) *model.User {
	if record == nil || record.UserInfo == nil {
		return &model.User{}
	}
	return &model.User{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
	}
}

func authError(action string, err error) error {
	category := model.CategoryUnknown
	if auth.IsUserNotFound(err) {
		category = model.CategoryNotFound
	}
	return &model.ProviderError{
		Provider: model.ProviderAuth,
		Category: category,
		Message:  fmt.Sprintf("%sに失敗: %v", action, err),
		Err:      err,
	}
}
