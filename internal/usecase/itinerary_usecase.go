package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
	"roterize/internal/domain/repository"
	"roterize/internal/domain/service"
)

const (
	DefaultPublicLimit = 10
	MaxPublicLimit     = 50
)

type ItineraryUseCase interface {
	// List は所有者の保存済みルートを作成日時の降順で返す
	List(ctx context.Context, ownerID string) (*model.ItineraryListResponse, error)
	ListPublic(ctx context.Context, limit int) (*model.ItineraryListResponse, error)
	// Get は自分のルートまたは公開ルートを返す
	Get(ctx context.Context, ownerID, id string) (*model.Itinerary, error)
	// Delete はルートを削除し、読み込んでいる編集セッションを初期化する
	Delete(ctx context.Context, ownerID, id string) error
	SetVisibility(ctx context.Context, ownerID, id string, isPublic bool) error
	// Count は所有者の保存済みルート数を返す
	Count(ctx context.Context, ownerID string) (int, error)
}

type itineraryUseCaseImpl struct {
	repo  repository.ItineraryRepository
	store *service.SessionStore
}

// NewItineraryUseCase は新しいItineraryUseCaseインスタンスを作成
func NewItineraryUseCase(repo repository.ItineraryRepository, store *service.SessionStore) ItineraryUseCase {
	return &itineraryUseCaseImpl{repo: repo, store: store}
}

func (u *itineraryUseCaseImpl) List(ctx context.Context, ownerID string) (*model.ItineraryListResponse, error) {
	itineraries, err := service.ListOwnedItineraries(ctx, u.repo, ownerID)
	if err != nil {
		return nil, err
	}
	return toListResponse(itineraries), nil
}

func (u *itineraryUseCaseImpl) ListPublic(ctx context.Context, limit int) (*model.ItineraryListResponse, error) {
	if limit <= 0 {
		limit = DefaultPublicLimit
	}
	if limit > MaxPublicLimit {
		limit = MaxPublicLimit
	}
	itineraries, err := u.repo.ListPublic(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("公開ルートの取得に失敗: %w", err)
	}
	return toListResponse(itineraries), nil
}

func (u *itineraryUseCaseImpl) Get(ctx context.Context, ownerID, id string) (*model.Itinerary, error) {
	itinerary, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ルートの取得に失敗: %w", err)
	}
	if itinerary.OwnerID != ownerID && !itinerary.IsPublic {
		return nil, model.ErrForbidden
	}
	return itinerary, nil
}

func (u *itineraryUseCaseImpl) Delete(ctx context.Context, ownerID, id string) error {
	if err := service.DeleteOwnedItinerary(ctx, u.repo, ownerID, id); err != nil {
		return err
	}
	if reset := u.store.ItineraryDeleted(ownerID, id); reset > 0 {
		logrus.Infof("🧹 削除されたルートを読み込んでいた%d件のセッションを初期化しました", reset)
	}
	return nil
}

func (u *itineraryUseCaseImpl) SetVisibility(ctx context.Context, ownerID, id string, isPublic bool) error {
	itinerary, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ルートの取得に失敗: %w", err)
	}
	if itinerary.OwnerID != ownerID {
		return model.ErrForbidden
	}
	if err := u.repo.SetVisibility(ctx, id, isPublic); err != nil {
		return fmt.Errorf("公開設定の変更に失敗: %w", err)
	}
	logrus.Infof("✅ ルート %s の公開設定を変更しました (公開: %t)", id, isPublic)
	return nil
}

func (u *itineraryUseCaseImpl) Count(ctx context.Context, ownerID string) (int, error) {
	itineraries, err := service.ListOwnedItineraries(ctx, u.repo, ownerID)
	if err != nil {
		return 0, err
	}
	return len(itineraries), nil
}

func toListResponse(itineraries []*model.Itinerary) *model.ItineraryListResponse {
	resp := &model.ItineraryListResponse{Itineraries: make([]model.ItinerarySummary, 0, len(itineraries))}
	for _, it := range itineraries {
		resp.Itineraries = append(resp.Itineraries, it.Summary())
	}
	return resp
}
