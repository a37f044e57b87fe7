package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
	"roterize/internal/domain/repository"
)

// UploadFile はアップロードされたファイル
type UploadFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type TipUseCase interface {
	// Create は写真をアップロードしてからチップを保存する
	Create(ctx context.Context, user *model.User, req *model.CreateTipRequest, photos []UploadFile) (*model.Tip, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]*model.Tip, error)
}

type tipUseCaseImpl struct {
	repo    repository.TipRepository
	storage repository.PhotoStorage
	now     func() time.Time
}

// NewTipUseCase は新しいTipUseCaseインスタンスを作成
func NewTipUseCase(repo repository.TipRepository, storage repository.PhotoStorage) TipUseCase {
	return &tipUseCaseImpl{repo: repo, storage: storage, now: time.Now}
}

func (u *tipUseCaseImpl) Create(ctx context.Context, user *model.User, req *model.CreateTipRequest, photos []UploadFile) (*model.Tip, error) {
	if user == nil || user.UID == "" {
		return nil, model.ErrUnauthorized
	}
	if err := validateTip(req); err != nil {
		return nil, err
	}

	// 1. 写真をアップロード
	urls := make([]string, 0, len(photos))
	if len(photos) > 0 && u.storage == nil {
		return nil, &model.ProviderError{
			Provider: model.ProviderStorage,
			Category: model.CategoryRequestDenied,
			Message:  "写真の保存先が設定されていません",
			Err:      model.ErrNotReady,
		}
	}
	for _, photo := range photos {
		objectPath := fmt.Sprintf("tips/%s/%s%s", user.UID, uuid.New().String(), strings.ToLower(path.Ext(photo.Filename)))
		url, err := u.storage.Upload(ctx, objectPath, photo.ContentType, photo.Content)
		if err != nil {
			return nil, fmt.Errorf("写真のアップロードに失敗: %w", err)
		}
		urls = append(urls, url)
	}

	// 2. チップを保存
	tip := &model.Tip{
		UserID:          user.UID,
		UserName:        user.Name(),
		PlaceName:       strings.TrimSpace(req.PlaceName),
		Description:     strings.TrimSpace(req.Description),
		Category:        req.Category,
		Address:         strings.TrimSpace(req.Address),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Rating:          req.Rating,
		PriceRange:      req.PriceRange,
		Tags:            model.SplitTags(req.Tags),
		Tip:             strings.TrimSpace(req.Tip),
		BestTimeToVisit: strings.TrimSpace(req.BestTimeToVisit),
		Accessibility:   req.Accessibility,
		FamilyFriendly:  req.FamilyFriendly,
		Photos:          urls,
		CreatedAt:       u.now(),
	}

	id, err := u.repo.Create(ctx, tip)
	if err != nil {
		return nil, fmt.Errorf("チップの保存に失敗: %w", err)
	}
	tip.ID = id

	logrus.Infof("✅ チップを投稿しました (ID: %s, カテゴリ: %s, 写真: %d枚)", id, tip.Category, len(urls))
	return tip, nil
}

func (u *tipUseCaseImpl) ListByCategory(ctx context.Context, category string, limit int) ([]*model.Tip, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = model.TipCategoryAll
	}
	if category != model.TipCategoryAll && !model.IsValidTipCategory(category) {
		return nil, model.NewValidationError("category", "不明なカテゴリです: "+category)
	}
	if limit <= 0 {
		limit = model.DefaultTipsLimit
	}

	tips, err := u.repo.ListByCategory(ctx, category, limit)
	if err != nil {
		return nil, fmt.Errorf("チップ一覧の取得に失敗: %w", err)
	}
	if tips == nil {
		tips = []*model.Tip{}
	}
	return tips, nil
}

// validateTip はbindingタグで表せない検証を行う
func validateTip(req *model.CreateTipRequest) error {
	if req == nil {
		return model.NewValidationError("body", "リクエストが空です")
	}
	if strings.TrimSpace(req.PlaceName) == "" {
		return model.NewValidationError("place_name", "場所の名前は必須です")
	}
	if strings.TrimSpace(req.Description) == "" {
		return model.NewValidationError("description", "説明は必須です")
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return model.NewValidationError("latitude", "緯度と経度は両方指定してください")
	}
	return nil
}
