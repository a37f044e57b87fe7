package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
	"roterize/internal/domain/service"
)

type SessionUseCase interface {
	// Create は新しい編集セッションを開始する
	Create(ctx context.Context, ownerID string) (*model.SessionSnapshot, error)
	Get(ctx context.Context, ownerID, sessionID string) (*model.SessionSnapshot, error)

	AddPlace(ctx context.Context, ownerID, sessionID string, req *model.AddPlaceRequest) (*model.SessionSnapshot, error)
	RemovePlace(ctx context.Context, ownerID, sessionID string, index int) (*model.SessionSnapshot, error)
	SetTravelMode(ctx context.Context, ownerID, sessionID string, req *model.SetTravelModeRequest) (*model.SessionSnapshot, error)
	SetView(ctx context.Context, ownerID, sessionID string, req *model.SetViewRequest) (*model.SessionSnapshot, error)

	// Input は入力欄の変更を受け取る。候補は間引かれて非同期に反映される
	Input(ctx context.Context, ownerID, sessionID string, req *model.InputRequest) (*model.SessionSnapshot, error)
	Suggestions(ctx context.Context, ownerID, sessionID string) ([]model.SuggestionItem, error)
	SelectSuggestion(ctx context.Context, ownerID, sessionID string, req *model.SelectSuggestionRequest) (*model.SessionSnapshot, error)

	GenerateRoute(ctx context.Context, ownerID, sessionID string) (*model.SessionSnapshot, error)
	Save(ctx context.Context, ownerID, sessionID string, req *model.SaveItineraryRequest) (*model.SessionSnapshot, error)
	Load(ctx context.Context, ownerID, sessionID string, req *model.LoadItineraryRequest) (*model.LoadItineraryResponse, error)
}

// sessionUseCaseImpl はSessionUseCaseの実装
type sessionUseCaseImpl struct {
	store *service.SessionStore
}

// NewSessionUseCase は新しいSessionUseCaseインスタンスを作成
func NewSessionUseCase(store *service.SessionStore) SessionUseCase {
	return &sessionUseCaseImpl{store: store}
}

func (u *sessionUseCaseImpl) Create(ctx context.Context, ownerID string) (*model.SessionSnapshot, error) {
	session, err := u.store.Create(ownerID)
	if err != nil {
		return nil, err
	}
	return session.Snapshot(), nil
}

func (u *sessionUseCaseImpl) Get(ctx context.Context, ownerID, sessionID string) (*model.SessionSnapshot, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.Snapshot(), nil
}

func (u *sessionUseCaseImpl) AddPlace(ctx context.Context, ownerID, sessionID string, req *model.AddPlaceRequest) (*model.SessionSnapshot, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.AddPlace(req.Place)
}

func (u *sessionUseCaseImpl) RemovePlace(ctx context.Context, ownerID, sessionID string, index int) (*model.SessionSnapshot, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.RemovePlace(index), nil
}

func (u *sessionUseCaseImpl) SetTravelMode(ctx context.Context, ownerID, sessionID string, req *model.SetTravelModeRequest) (*model.SessionSnapshot, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.SetTravelMode(req.TravelMode)
}

func (u *sessionUseCaseImpl) SetView(ctx context.Context, ownerID, sessionID string, req *model.SetViewRequest) (*model.SessionSnapshot, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.SetView(req.View)
}

func (u *sessionUseCaseImpl) Input(ctx context.Context, ownerID, sessionID string, req *model.InputRequest) (*model.SessionSnapshot, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.Input(req.Text), nil
}

func (u *sessionUseCaseImpl) Suggestions(ctx context.Context, ownerID, sessionID string) ([]model.SuggestionItem, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.Suggestions(), nil
}

func (u *sessionUseCaseImpl) SelectSuggestion(ctx context.Context, ownerID, sessionID string, req *model.SelectSuggestionRequest) (*model.SessionSnapshot, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.SelectSuggestion(req.Index)
}

func (u *sessionUseCaseImpl) GenerateRoute(ctx context.Context, ownerID, sessionID string) (*model.SessionSnapshot, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	logrus.Infof("🚀 経路生成開始 (session: %s)", sessionID)
	return session.GenerateRoute(ctx)
}

func (u *sessionUseCaseImpl) Save(ctx context.Context, ownerID, sessionID string, req *model.SaveItineraryRequest) (*model.SessionSnapshot, error) {
	mode, ok := model.ParseSaveMode(req.Mode)
	if !ok {
		return nil, model.NewValidationError("mode", "modeは'update'または'new'を指定してください")
	}
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.Save(ctx, req.Name, mode)
}

func (u *sessionUseCaseImpl) Load(ctx context.Context, ownerID, sessionID string, req *model.LoadItineraryRequest) (*model.LoadItineraryResponse, error) {
	session, err := u.store.Get(sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	snapshot, warning, err := session.Load(ctx, req.ItineraryID)
	if err != nil {
		return nil, fmt.Errorf("ルート %s の読み込みに失敗: %w", req.ItineraryID, err)
	}
	return &model.LoadItineraryResponse{
		Session:      snapshot,
		RouteWarning: warning,
	}, nil
}
