package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
	"roterize/internal/domain/repository"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type CatalogUseCase interface {
	// Create は写真をアップロードしてから場所を登録する
	// アップロードに失敗した写真は警告を出して登録から外す
	Create(ctx context.Context, user *model.User, req *model.CreateCatalogPlaceRequest, photos []UploadFile) (*model.CatalogPlace, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]*model.CatalogPlace, error)
}

type catalogUseCaseImpl struct {
	repo    repository.CatalogPlaceRepository
	storage repository.PhotoStorage
	now     func() time.Time
}

// NewCatalogUseCase は新しいCatalogUseCaseインスタンスを作成
func NewCatalogUseCase(repo repository.CatalogPlaceRepository, storage repository.PhotoStorage) CatalogUseCase {
	return &catalogUseCaseImpl{repo: repo, storage: storage, now: time.Now}
}

func (u *catalogUseCaseImpl) Create(ctx context.Context, user *model.User, req *model.CreateCatalogPlaceRequest, photos []UploadFile) (*model.CatalogPlace, error) {
	if user == nil || user.UID == "" {
		return nil, model.ErrUnauthorized
	}
	if req == nil {
		return nil, model.NewValidationError("body", "リクエストが空です")
	}
	for _, f := range []struct{ name, value string }{{"name", req.Name}, {"description", req.Description}, {"address", req.Address}} {
		if strings.TrimSpace(f.value) == "" {
			return nil, model.NewValidationError(f.name, f.name+"は必須です")
		}
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, model.NewValidationError("latitude", "地図上で場所を選択してください")
	}
	hours, err := parseOpeningHours(req.OpeningHours)
	if err != nil {
		return nil, err
	}
	if len(photos) > 0 && u.storage == nil {
		return nil, &model.ProviderError{
			Provider: model.ProviderStorage,
			Category: model.CategoryRequestDenied,
			Message:  "写真の保存先が設定されていません",
			Err:      model.ErrNotReady,
		}
	}

	// 1. 写真をアップロード
	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		objectPath := fmt.Sprintf("places/%s/%s%s", user.UID, uuid.New().String(), strings.ToLower(path.Ext(photo.Filename)))
		url, err := u.storage.Upload(ctx, objectPath, photo.ContentType, photo.Content)
		if err != nil {
			logrus.Warnf("⚠️ 写真 %s のアップロードに失敗したためスキップします: %v", photo.Filename, err)
			continue
		}
		urls = append(urls, url)
	}

	// 2. 場所を保存
	place := &model.CatalogPlace{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		Category:        req.Category,
		Address:         strings.TrimSpace(req.Address),
		Latitude:        *req.Latitude,
		Longitude:       *req.Longitude,
		OpeningHours:    hours,
		PriceRange:      req.PriceRange,
		Tags:            model.SplitTags(req.Tags),
		Website:         strings.TrimSpace(req.Website),
		Phone:           strings.TrimSpace(req.Phone),
		Photos:          urls,
		ContributorID:   user.UID,
		ContributorName: user.Name(),
		CreatedAt:       u.now(),
	}

	id, err := u.repo.Create(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("場所の保存に失敗: %w", err)
	}
	place.ID = id

	logrus.Infof("✅ 場所を登録しました (ID: %s, カテゴリ: %s, 写真: %d/%d枚)", id, place.Category, len(urls), len(photos))
	return place, nil
}

func (u *catalogUseCaseImpl) ListByCategory(ctx context.Context, category string, limit int) ([]*model.CatalogPlace, error) {
	category = strings.TrimSpace(category)
	if !model.IsValidCatalogCategory(category) {
		return nil, model.NewValidationError("category", "不明なカテゴリです: "+category)
	}
	if limit <= 0 {
		limit = model.DefaultCatalogLimit
	}

	places, err := u.repo.ListByCategory(ctx, category, limit)
	if err != nil {
		return nil, fmt.Errorf("場所一覧の取得に失敗: %w", err)
	}
	if places == nil {
		places = []*model.CatalogPlace{}
	}
	return places, nil
}

// parseOpeningHours は曜日ごとの営業時間のJSONを読む。空なら全曜日を未設定で返す
func parseOpeningHours(raw string) (map[string]model.DayHours, error) {
	hours := make(map[string]model.DayHours, len(model.Weekdays))
	for _, day := range model.Weekdays {
		hours[day] = model.DayHours{}
	}
	if strings.TrimSpace(raw) == "" {
		return hours, nil
	}

	var given map[string]model.DayHours
	if err := json.Unmarshal([]byte(raw), &given); err != nil {
		return nil, model.NewValidationError("opening_hours", "営業時間のJSONが正しくありません")
	}
	for day, h := range given {
		if _, ok := hours[day]; !ok {
			return nil, model.NewValidationError("opening_hours", "不明な曜日です: "+day)
		}
		if !h.Closed {
			for _, clock := range []string{h.Open, h.Close} {
				if clock != "" && !clockPattern.MatchString(clock) {
					return nil, model.NewValidationError("opening_hours", fmt.Sprintf("%s の時刻はHH:MMで指定してください: %s", day, clock))
				}
			}
		}
		hours[day] = h
	}
	return hours, nil
}
