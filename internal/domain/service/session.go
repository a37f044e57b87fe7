package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"roterize/internal/domain/helper"
	"roterize/internal/domain/model"
	"roterize/internal/domain/repository"
)

// SessionDeps は編集セッションが利用する外部サービス
type SessionDeps struct {
	Directions   repository.DirectionsProvider
	Autocomplete repository.AutocompleteProvider
	Itineraries  repository.ItineraryRepository
	Debounce     DebouncerConfig
	// AfterFunc はテストでタイマーを差し替えるときに指定する
	AfterFunc AfterFunc
}

// EditingSession はユーザーごとのルート編集状態
// 場所リスト・移動手段・経路はこのセッションだけが変更する
//
// ロックの順序: debouncer.mu -> session.mu -> controller.mu
// セッションのロック中にデバウンサを呼ばないこと
type EditingSession struct {
	mu              sync.Mutex
	id              string
	ownerID         string
	places          *PlaceList
	mode            model.TravelMode
	stagedInput     string
	suggestions     []model.SuggestionItem
	showSuggestions bool
	route           *model.RouteSummary
	view            model.View
	busy            bool
	// revision は場所リストか移動手段が変わるたびに増える
	revision uint64
	// routeRevision はrouteを計算したときのrevision
	routeRevision uint64
	updatedAt     time.Time

	directions repository.DirectionsProvider
	debouncer  *SuggestionDebouncer
	controller *ItineraryController
	now        func() time.Time
}

// NewEditingSession は新しいEditingSessionインスタンスを作成
func NewEditingSession(id, ownerID string, deps SessionDeps) *EditingSession {
	s := &EditingSession{
		id:         id,
		ownerID:    ownerID,
		mode:       model.DefaultTravelMode,
		view:       model.ViewPlanner,
		directions: deps.Directions,
		controller: NewItineraryController(deps.Itineraries, ownerID),
		now:        time.Now,
	}
	s.updatedAt = s.now()
	s.places = NewPlaceList(s.invalidateRouteLocked)
	s.debouncer = NewSuggestionDebouncer(deps.Debounce, deps.Autocomplete, s.applySuggestions)
	if deps.AfterFunc != nil {
		s.debouncer.WithAfterFunc(deps.AfterFunc)
	}
	return s
}

func (s *EditingSession) ID() string {
	return s.id
}

func (s *EditingSession) OwnerID() string {
	return s.ownerID
}

// LastActive は最後に操作された時刻を返す
func (s *EditingSession) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Close は待機中の補完問い合わせを停止する
func (s *EditingSession) Close() {
	s.debouncer.Close()
}

// invalidateRouteLocked は場所が2件未満になったときに経路を破棄する
func (s *EditingSession) invalidateRouteLocked() {
	if s.route != nil {
		logrus.Debugf("🧹 場所が不足したため経路をクリアしました (session: %s)", s.id)
	}
	s.route = nil
}

// editedLocked は場所リストか移動手段が変更されたことを記録する
func (s *EditingSession) editedLocked() {
	s.revision++
	s.updatedAt = s.now()
	s.controller.MarkDirty()
}

// AddPlace は場所を追加する。空の場合は入力欄に確定した候補を使う
func (s *EditingSession) AddPlace(raw string) (*model.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw == "" {
		raw = s.stagedInput
	}
	if err := s.places.Add(raw); err != nil {
		return nil, err
	}
	s.stagedInput = ""
	s.editedLocked()
	return s.snapshotLocked(), nil
}

// RemovePlace は指定位置の場所を削除する。範囲外の場合は何もしない
func (s *EditingSession) RemovePlace(index int) *model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.places.Remove(index) {
		s.editedLocked()
	}
	return s.snapshotLocked()
}

// SetTravelMode は移動手段を変更する
func (s *EditingSession) SetTravelMode(raw string) (*model.SessionSnapshot, error) {
	mode, ok := model.ParseTravelMode(raw)
	if !ok {
		return nil, model.NewValidationError("travel_mode", "travel_modeはWALKING, DRIVING, TRANSITのいずれかを指定してください")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if mode != s.mode {
		s.mode = mode
		s.editedLocked()
	}
	return s.snapshotLocked(), nil
}

// SetView は表示中の画面を切り替える
func (s *EditingSession) SetView(raw string) (*model.SessionSnapshot, error) {
	view, ok := model.ParseView(raw)
	if !ok {
		return nil, model.NewValidationError("view", "不明な画面です: "+raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	s.updatedAt = s.now()
	return s.snapshotLocked(), nil
}

// Input は入力欄の変更を受け取り、補完の問い合わせを予約する
func (s *EditingSession) Input(text string) *model.SessionSnapshot {
	s.mu.Lock()
	s.stagedInput = text
	s.updatedAt = s.now()
	s.mu.Unlock()

	s.debouncer.Input(text)
	return s.Snapshot()
}

// applySuggestions はデバウンサから最新の入力に対する候補を受け取る
func (s *EditingSession) applySuggestions(items []model.SuggestionItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = items
	s.showSuggestions = len(items) > 0
}

// Suggestions は現在の候補一覧を返す
func (s *EditingSession) Suggestions() []model.SuggestionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SuggestionItem(nil), s.suggestions...)
}

// SelectSuggestion は候補を選択して入力欄に確定する（場所リストにはまだ追加しない）
func (s *EditingSession) SelectSuggestion(index int) (*model.SessionSnapshot, error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.suggestions) {
		s.mu.Unlock()
		return nil, model.NewValidationError("index", fmt.Sprintf("候補の番号が範囲外です: %d", index))
	}
	item := s.suggestions[index]
	s.mu.Unlock()

	// 実行中の問い合わせの結果で候補が再表示されないようにする
	s.debouncer.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = nil
	s.showSuggestions = false
	s.stagedInput = item.Description
	s.updatedAt = s.now()
	return s.snapshotLocked(), nil
}

// GenerateRoute は現在の場所リストと移動手段で経路を生成する
// 失敗した場合は以前の経路をそのまま残す
func (s *EditingSession) GenerateRoute(ctx context.Context) (*model.SessionSnapshot, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, model.ErrBusy
	}
	places := s.places.Places()
	mode := s.mode
	if _, err := BuildRouteRequest(places, mode); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.busy = true
	revision := s.revision
	s.mu.Unlock()

	summary, err := s.deriveRoute(ctx, places, mode)
	if err != nil {
		s.clearBusy()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if s.revision != revision {
		logrus.Warnf("⚠️ 経路計算中に場所リストが変更されたため結果を破棄 (session: %s)", s.id)
		return nil, model.ErrStaleResult
	}
	s.route = summary
	s.routeRevision = revision
	s.updatedAt = s.now()
	logrus.Infof("✅ 経路を生成しました (session: %s, 区間数: %d, 距離: %.1fkm, 時間: %d分)",
		s.id, len(summary.Legs), summary.TotalDistance, summary.TotalDuration)
	return s.snapshotLocked(), nil
}

// deriveRoute は経路リクエストを組み立て、プロバイダの結果を正規化する
func (s *EditingSession) deriveRoute(ctx context.Context, places []string, mode model.TravelMode) (*model.RouteSummary, error) {
	req, err := BuildRouteRequest(places, mode)
	if err != nil {
		return nil, err
	}
	if s.directions == nil {
		return nil, model.ErrNotReady
	}
	result, err := s.directions.Route(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("経路検索に失敗: %w", err)
	}
	return NormalizeRoute(places, result)
}

// Save は編集中のルートを保存する
func (s *EditingSession) Save(ctx context.Context, name string, mode model.SaveMode) (*model.SessionSnapshot, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, model.ErrBusy
	}
	if s.route != nil && s.routeRevision != s.revision {
		s.mu.Unlock()
		return nil, model.NewValidationError("route", "場所リストか移動手段が変更されています。経路を再生成してから保存してください")
	}
	content := &model.ItineraryContent{
		Places:     s.places.Places(),
		TravelMode: s.mode,
		Route:      s.route,
	}
	s.busy = true
	s.mu.Unlock()

	if _, err := s.controller.Save(ctx, name, content, mode); err != nil {
		s.clearBusy()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if s.view == model.ViewSaveDialog {
		s.view = model.ViewPlanner
	}
	s.updatedAt = s.now()
	return s.snapshotLocked(), nil
}

// Load は保存済みのルートを読み込み、経路を再計算する
// 再計算に失敗した場合は保存されていた区間を表示し、警告を返す
func (s *EditingSession) Load(ctx context.Context, id string) (*model.SessionSnapshot, string, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, "", model.ErrBusy
	}
	s.busy = true
	s.mu.Unlock()

	itinerary, err := s.controller.Load(ctx, id)
	if err != nil {
		s.clearBusy()
		return nil, "", err
	}

	s.mu.Lock()
	s.places.Replace(itinerary.Places)
	s.mode = itinerary.TravelMode
	if _, ok := model.ParseTravelMode(string(s.mode)); !ok {
		s.mode = model.DefaultTravelMode
	}
	s.route = storedRoute(itinerary)
	s.stagedInput = ""
	s.view = model.ViewPlanner
	s.revision++
	s.routeRevision = s.revision
	s.updatedAt = s.now()
	revision := s.revision
	places := s.places.Places()
	mode := s.mode
	s.mu.Unlock()

	warning := ""
	summary, err := s.deriveRoute(ctx, places, mode)
	if err != nil {
		warning = err.Error()
		logrus.Warnf("⚠️ 読み込んだルートの経路再計算に失敗したため保存済みの区間を使用します: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if summary != nil && s.revision == revision {
		s.route = summary
		s.routeRevision = revision
	}
	return s.snapshotLocked(), warning, nil
}

// storedRoute は保存されていた区間から表示用の経路を作る
func storedRoute(it *model.Itinerary) *model.RouteSummary {
	if len(it.Legs) == 0 {
		return nil
	}
	return &model.RouteSummary{
		Legs:                 append([]model.RouteLeg(nil), it.Legs...),
		TotalDistance:        it.TotalDistance,
		TotalDuration:        it.TotalDuration,
		TotalDistanceMeters:  it.TotalDistanceMeters,
		TotalDurationSeconds: it.TotalDurationSeconds,
		MapFit:               helper.MapFitFromLegs(it.Legs),
	}
}

// DeleteItinerary はルートを削除し、読み込み中だった場合はセッションを初期状態に戻す
func (s *EditingSession) DeleteItinerary(ctx context.Context, id string) (*model.SessionSnapshot, error) {
	reset, err := s.controller.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if reset {
		s.resetContentLocked()
	}
	return s.snapshotLocked(), nil
}

// ItineraryDeleted は別の経路でルートが削除されたことを通知する
func (s *EditingSession) ItineraryDeleted(id string) bool {
	if !s.controller.ResetIfLoaded(id) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetContentLocked()
	logrus.Infof("🧹 削除されたルートを読み込んでいたためセッションを初期化しました (session: %s, itinerary: %s)", s.id, id)
	return true
}

// ListItineraries は所有者の保存済みルートを返す
func (s *EditingSession) ListItineraries(ctx context.Context) ([]*model.Itinerary, error) {
	return s.controller.List(ctx)
}

func (s *EditingSession) resetContentLocked() {
	s.places.Clear()
	s.mode = model.DefaultTravelMode
	s.route = nil
	s.stagedInput = ""
	s.revision++
	s.updatedAt = s.now()
}

func (s *EditingSession) clearBusy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// Snapshot は現在の状態を返す
func (s *EditingSession) Snapshot() *model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *EditingSession) snapshotLocked() *model.SessionSnapshot {
	status := s.controller.Status()
	return &model.SessionSnapshot{
		SessionID:       s.id,
		OwnerID:         s.ownerID,
		Places:          s.places.Places(),
		TravelMode:      s.mode,
		StagedInput:     s.stagedInput,
		Suggestions:     append([]model.SuggestionItem{}, s.suggestions...),
		ShowSuggestions: s.showSuggestions,
		Route:           s.route,
		State:           status.State,
		ItineraryID:     status.ItineraryID,
		ItineraryName:   status.Name,
		View:            s.view,
		Busy:            s.busy,
		UpdatedAt:       s.updatedAt,
	}
}
