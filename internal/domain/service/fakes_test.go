package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"roterize/internal/domain/model"
)

// manualTimer は手動で発火させるタイマー
type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// manualClock はAfterFuncで予約されたタイマーを記録する
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// fireActive は停止されていないタイマーを全て発火させ、発火した数を返す
func (c *manualClock) fireActive() int {
	c.mu.Lock()
	var active []*manualTimer
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			active = append(active, t)
		}
	}
	c.mu.Unlock()

	for _, t := range active {
		t.fn()
	}
	return len(active)
}

func (c *manualClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// stubDirections は固定の結果を返す経路プロバイダ
type stubDirections struct {
	mu     sync.Mutex
	result *model.DirectionsResult
	err    error
	calls  []*model.RouteRequest
	// hook はRoute呼び出し中に実行される
	hook func()
}

func (s *stubDirections) Route(ctx context.Context, req *model.RouteRequest) (*model.DirectionsResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	result, err, hook := s.result, s.err, s.hook
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return result, err
}

func (s *stubDirections) set(result *model.DirectionsResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result, s.err = result, err
}

func (s *stubDirections) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// stubAutocomplete は問い合わせを記録する補完プロバイダ
type stubAutocomplete struct {
	mu      sync.Mutex
	queries []string
	result  *model.AutocompleteResult
	err     error
	hook    func(text string)
}

func (s *stubAutocomplete) Predict(ctx context.Context, text string, types []string) (*model.AutocompleteResult, error) {
	s.mu.Lock()
	s.queries = append(s.queries, text)
	result, err, hook := s.result, s.err, s.hook
	s.mu.Unlock()

	if hook != nil {
		hook(text)
	}
	return result, err
}

func (s *stubAutocomplete) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// memoryItineraryRepository はテスト用のメモリ上のリポジトリ
type memoryItineraryRepository struct {
	mu          sync.Mutex
	itineraries map[string]*model.Itinerary
	nextID      int
	failNext    error
	createCalls int
	updateCalls int
}

func newMemoryItineraryRepository() *memoryItineraryRepository {
	return &memoryItineraryRepository{itineraries: map[string]*model.Itinerary{}}
}

func (r *memoryItineraryRepository) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *memoryItineraryRepository) Create(ctx context.Context, it *model.Itinerary) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if err := r.takeFailure(); err != nil {
		return "", err
	}
	r.nextID++
	id := fmt.Sprintf("itinerary-%d", r.nextID)
	stored := *it
	stored.ID = id
	r.itineraries[id] = &stored
	return id, nil
}

func (r *memoryItineraryRepository) Update(ctx context.Context, it *model.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if err := r.takeFailure(); err != nil {
		return err
	}
	existing, ok := r.itineraries[it.ID]
	if !ok {
		return model.ErrItineraryNotFound
	}
	stored := *it
	stored.CreatedAt = existing.CreatedAt
	stored.IsPublic = existing.IsPublic
	r.itineraries[it.ID] = &stored
	return nil
}

func (r *memoryItineraryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.itineraries[id]; !ok {
		return model.ErrItineraryNotFound
	}
	delete(r.itineraries, id)
	return nil
}

func (r *memoryItineraryRepository) GetByID(ctx context.Context, id string) (*model.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	it, ok := r.itineraries[id]
	if !ok {
		return nil, model.ErrItineraryNotFound
	}
	copied := *it
	return &copied, nil
}

func (r *memoryItineraryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	var out []*model.Itinerary
	for _, it := range r.itineraries {
		if it.OwnerID == ownerID {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memoryItineraryRepository) ListPublic(ctx context.Context, limit int) ([]*model.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Itinerary
	for _, it := range r.itineraries {
		if it.IsPublic && len(out) < limit {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memoryItineraryRepository) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.itineraries[id]
	if !ok {
		return model.ErrItineraryNotFound
	}
	it.IsPublic = isPublic
	return nil
}

func (r *memoryItineraryRepository) put(it *model.Itinerary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *it
	r.itineraries[it.ID] = &copied
}

// threeStopResult はA→B→Cを自動車で移動する経路の結果
func threeStopResult() *model.DirectionsResult {
	return &model.DirectionsResult{
		Status: "OK",
		Routes: []model.DirectionsRoute{{
			WaypointOrder: []int{0},
			Polyline:      "abc",
			Legs: []model.DirectionsLeg{
				{
					StartAddress:    "Praça A, Rio de Janeiro",
					EndAddress:      "Rua B, Rio de Janeiro",
					StartLocation:   model.LatLng{Lat: -22.90, Lng: -43.20},
					EndLocation:     model.LatLng{Lat: -22.95, Lng: -43.18},
					DistanceText:    "2,5 km",
					DistanceMeters:  2512,
					DurationText:    "10 min",
					DurationSeconds: 610,
				},
				{
					StartAddress:    "Rua B, Rio de Janeiro",
					EndAddress:      "Avenida C, Rio de Janeiro",
					StartLocation:   model.LatLng{Lat: -22.95, Lng: -43.18},
					EndLocation:     model.LatLng{Lat: -22.97, Lng: -43.22},
					DistanceText:    "1.2 km",
					DistanceMeters:  1190,
					DurationText:    "1 hora 5 min",
					DurationSeconds: 3880,
				},
			},
		}},
	}
}
