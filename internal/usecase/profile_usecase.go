package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
	"roterize/internal/domain/repository"
)

type ProfileUseCase interface {
	// Me は現在のユーザーと保存済みルート数、レベルとバッジを返す
	Me(ctx context.Context, user *model.User) (*model.ProfileResponse, error)
	Update(ctx context.Context, user *model.User, req *model.UpdateProfileRequest) (*model.User, error)
	// UploadAvatar はプロフィール画像を保存してユーザーのphoto_urlを更新する
	UploadAvatar(ctx context.Context, user *model.User, file UploadFile) (*model.User, error)
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error)
	// SignIn はパスワードを照合してトークンを発行する（JWTモードのみ）
	SignIn(ctx context.Context, req *model.SignInRequest) (*model.SignInResponse, error)
}

type profileUseCaseImpl struct {
	users       repository.UserDirectory
	storage     repository.PhotoStorage
	itineraries ItineraryUseCase
	signIn      repository.PasswordSignIn
}

// NewProfileUseCase は新しいProfileUseCaseインスタンスを作成
// signInがnilの場合、ログインはクライアント側（Firebase）で行う
func NewProfileUseCase(users repository.UserDirectory, storage repository.PhotoStorage, itineraries ItineraryUseCase, signIn repository.PasswordSignIn) ProfileUseCase {
	return &profileUseCaseImpl{users: users, storage: storage, itineraries: itineraries, signIn: signIn}
}

func (u *profileUseCaseImpl) Me(ctx context.Context, user *model.User) (*model.ProfileResponse, error) {
	if user == nil || user.UID == "" {
		return nil, model.ErrUnauthorized
	}

	current, err := u.users.Get(ctx, user.UID)
	if err != nil {
		// ディレクトリに未登録でもトークンの情報で応答する
		logrus.Warnf("⚠️ ユーザー情報の取得に失敗したためトークンの情報を使用します: %v", err)
		current = user
	}

	count, err := u.itineraries.Count(ctx, user.UID)
	if err != nil {
		return nil, err
	}
	return &model.ProfileResponse{
		User:           current,
		ItineraryCount: count,
		Level:          model.LevelFor(count),
		Badges:         model.BadgesFor(count),
	}, nil
}

func (u *profileUseCaseImpl) Update(ctx context.Context, user *model.User, req *model.UpdateProfileRequest) (*model.User, error) {
	if user == nil || user.UID == "" {
		return nil, model.ErrUnauthorized
	}
	if req.DisplayName == nil && req.PhotoURL == nil {
		return nil, model.NewValidationError("body", "更新する項目がありません")
	}
	if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "" {
		return nil, model.NewValidationError("display_name", "表示名を空にすることはできません")
	}

	updated, err := u.users.Update(ctx, user.UID, req)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの更新に失敗: %w", err)
	}
	logrus.Infof("✅ プロフィールを更新しました (uid: %s)", user.UID)
	return updated, nil
}

func (u *profileUseCaseImpl) UploadAvatar(ctx context.Context, user *model.User, file UploadFile) (*model.User, error) {
	if user == nil || user.UID == "" {
		return nil, model.ErrUnauthorized
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return nil, model.NewValidationError("avatar", "画像ファイルを指定してください")
	}
	if u.storage == nil {
		return nil, &model.ProviderError{
			Provider: model.ProviderStorage,
			Category: model.CategoryRequestDenied,
			Message:  "写真の保存先が設定されていません",
			Err:      model.ErrNotReady,
		}
	}

	objectPath := fmt.Sprintf("avatars/%s/%s%s", user.UID, uuid.New().String(), strings.ToLower(path.Ext(file.Filename)))
	url, err := u.storage.Upload(ctx, objectPath, file.ContentType, file.Content)
	if err != nil {
		return nil, fmt.Errorf("プロフィール画像のアップロードに失敗: %w", err)
	}

	return u.Update(ctx, user, &model.UpdateProfileRequest{PhotoURL: &url})
}

// SignUp はユーザーを登録する。メールアドレスの形式とパスワード長はbindingタグで検証済み
func (u *profileUseCaseImpl) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error) {
	return u.users.Create(ctx, req)
}

func (u *profileUseCaseImpl) SignIn(ctx context.Context, req *model.SignInRequest) (*model.SignInResponse, error) {
	if u.signIn == nil {
		return nil, &model.ProviderError{
			Provider: model.ProviderAuth,
			Category: model.CategoryRequestDenied,
			Message:  "パスワードログインはAUTH_MODE=jwtでのみ利用できます",
			Err:      model.ErrNotReady,
		}
	}
	user, token, ttl, err := u.signIn.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	logrus.Infof("🔑 ログインしました (uid: %s)", user.UID)
	return &model.SignInResponse{Token: token, ExpiresIn: int(ttl.Seconds()), User: user}, nil
}
