package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
	"roterize/internal/domain/repository"
)

// ItineraryStatus は保存状態のスナップショット
type ItineraryStatus struct {
	State       model.PersistenceState
	ItineraryID string
	Name        string
}

// ItineraryController は編集中のルートの保存状態を管理する
//
//	unsaved --save--> saved --edit--> dirty --save(update)--> saved
//	                                  dirty --save(new)-----> saved（新しいID）
//
// 失敗した場合は状態を遷移させない
// 同一コントローラに対するSave/Load/Deleteは呼び出し側（セッション）で直列化する
type ItineraryController struct {
	mu          sync.Mutex
	repo        repository.ItineraryRepository
	ownerID     string
	state       model.PersistenceState
	itineraryID string
	name        string
	createdAt   time.Time
	// edits は編集のたびに増える。保存中に編集された場合の判定に使う
	edits uint64
	now   func() time.Time
}

// NewItineraryController は新しいItineraryControllerインスタンスを作成
func NewItineraryController(repo repository.ItineraryRepository, ownerID string) *ItineraryController {
	return &ItineraryController{
		repo:    repo,
		ownerID: ownerID,
		state:   model.StateUnsaved,
		now:     time.Now,
	}
}

// Status は現在の保存状態を返す
func (c *ItineraryController) Status() ItineraryStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ItineraryStatus{
		State:       c.state,
		ItineraryID: c.itineraryID,
		Name:        c.name,
	}
}

// MarkDirty は保存済みの内容が編集されたことを記録する
func (c *ItineraryController) MarkDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edits++
	if c.state == model.StateSaved {
		c.state = model.StateDirty
	}
}

// Reset は未保存の状態に戻す
func (c *ItineraryController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// ResetIfLoaded は指定IDが読み込み中のルートであれば未保存の状態に戻す
func (c *ItineraryController) ResetIfLoaded(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.itineraryID == "" || c.itineraryID != id {
		return false
	}
	c.resetLocked()
	return true
}

func (c *ItineraryController) resetLocked() {
	c.state = model.StateUnsaved
	c.itineraryID = ""
	c.name = ""
	c.createdAt = time.Time{}
}

// Save は編集中の内容を保存する
// 未保存なら新規作成、保存済み・編集済みならmodeに従って更新または別IDで新規作成する
func (c *ItineraryController) Save(ctx context.Context, name string, content *model.ItineraryContent, mode model.SaveMode) (*model.Itinerary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError("name", "ルート名を入力してください")
	}
	if content == nil || len(content.Places) < MinPlacesForRoute || content.Route == nil || len(content.Route.Legs) == 0 {
		return nil, model.NewValidationError("route", "保存する前にルートを生成してください")
	}
	if mode != model.SaveModeUpdate && mode != model.SaveModeNew {
		return nil, model.NewValidationError("mode", "modeは'update'または'new'を指定してください")
	}

	c.mu.Lock()
	status := ItineraryStatus{State: c.state, ItineraryID: c.itineraryID, Name: c.name}
	createdAt := c.createdAt
	edits := c.edits
	c.mu.Unlock()

	now := c.now()
	itinerary := &model.Itinerary{
		OwnerID:              c.ownerID,
		Name:                 name,
		Places:               append([]string(nil), content.Places...),
		TravelMode:           content.TravelMode,
		Legs:                 append([]model.RouteLeg(nil), content.Route.Legs...),
		TotalDistance:        content.Route.TotalDistance,
		TotalDuration:        content.Route.TotalDuration,
		TotalDistanceMeters:  content.Route.TotalDistanceMeters,
		TotalDurationSeconds: content.Route.TotalDurationSeconds,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if status.State != model.StateUnsaved && mode == model.SaveModeUpdate {
		itinerary.ID = status.ItineraryID
		if !createdAt.IsZero() {
			itinerary.CreatedAt = createdAt
		}
		if err := c.repo.Update(ctx, itinerary); err != nil {
			return nil, fmt.Errorf("ルートの更新に失敗: %w", err)
		}
		logrus.Infof("✅ ルートを更新しました (ID: %s, 名前: %s)", itinerary.ID, itinerary.Name)
	} else {
		id, err := c.repo.Create(ctx, itinerary)
		if err != nil {
			return nil, fmt.Errorf("ルートの保存に失敗: %w", err)
		}
		itinerary.ID = id
		if status.ItineraryID != "" {
			logrus.Infof("✅ ルートを新しいルートとして保存しました (元ID: %s, 新ID: %s)", status.ItineraryID, id)
		} else {
			logrus.Infof("✅ ルートを保存しました (ID: %s, 名前: %s)", id, itinerary.Name)
		}
	}

	c.mu.Lock()
	c.state = model.StateSaved
	if c.edits != edits {
		c.state = model.StateDirty
	}
	c.itineraryID = itinerary.ID
	c.name = itinerary.Name
	c.createdAt = itinerary.CreatedAt
	c.mu.Unlock()

	return itinerary, nil
}

// Load は保存済みのルートを取得し、保存済みの状態にする
// 他人の公開ルートはコピーとして読み込み、未保存の状態にする
func (c *ItineraryController) Load(ctx context.Context, id string) (*model.Itinerary, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.NewValidationError("itinerary_id", "itinerary_idは必須です")
	}

	itinerary, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ルートの読み込みに失敗: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case itinerary.OwnerID == c.ownerID:
		c.state = model.StateSaved
		c.itineraryID = itinerary.ID
		c.name = itinerary.Name
		c.createdAt = itinerary.CreatedAt
	case itinerary.IsPublic:
		c.resetLocked()
	default:
		return nil, model.ErrForbidden
	}

	logrus.Infof("📖 ルートを読み込みました (ID: %s, 状態: %s)", itinerary.ID, c.state)
	return itinerary, nil
}

// Delete はルートを削除する。読み込み中のルートだった場合はreset=trueを返す
func (c *ItineraryController) Delete(ctx context.Context, id string) (reset bool, err error) {
	if err := DeleteOwnedItinerary(ctx, c.repo, c.ownerID, id); err != nil {
		return false, err
	}
	return c.ResetIfLoaded(id), nil
}

// List は所有者のルートを作成日時の降順で返す
func (c *ItineraryController) List(ctx context.Context) ([]*model.Itinerary, error) {
	return ListOwnedItineraries(ctx, c.repo, c.ownerID)
}

// DeleteOwnedItinerary は所有者を確認してからルートを削除する
func DeleteOwnedItinerary(ctx context.Context, repo repository.ItineraryRepository, ownerID, id string) error {
	itinerary, err := repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("ルートの取得に失敗: %w", err)
	}
	if itinerary.OwnerID != ownerID {
		return model.ErrForbidden
	}
	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("ルートの削除に失敗: %w", err)
	}
	logrus.Infof("🗑️ ルートを削除しました (ID: %s)", id)
	return nil
}

// ListOwnedItineraries は所有者のルートを作成日時の降順で返す
func ListOwnedItineraries(ctx context.Context, repo repository.ItineraryRepository, ownerID string) ([]*model.Itinerary, error) {
	if ownerID == "" {
		return nil, model.ErrUnauthorized
	}
	itineraries, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ルート一覧の取得に失敗: %w", err)
	}
	sort.SliceStable(itineraries, func(i, j int) bool {
		return itineraries[i].CreatedAt.After(itineraries[j].CreatedAt)
	})
	return itineraries, nil
}

// IsNotFound はルートが見つからないエラーかどうかを判定する
func IsNotFound(err error) bool {
	if errors.Is(err, model.ErrItineraryNotFound) {
		return true
	}
	if pe, ok := model.AsProviderError(err); ok {
		return pe.Category == model.CategoryNotFound
	}
	return false
}
