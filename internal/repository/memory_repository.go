package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"roterize/internal/domain/model"
)

// MemoryItineraryRepository はメモリ上に保存済みルートを保持する（ローカル開発・テスト用）
type MemoryItineraryRepository struct {
	mu          sync.RWMutex
	itineraries map[string]*model.Itinerary
}

func NewMemoryItineraryRepository() *MemoryItineraryRepository {
	return &MemoryItineraryRepository{itineraries: make(map[string]*model.Itinerary)}
}

func (r *MemoryItineraryRepository) Create(ctx context.Context, itinerary *model.Itinerary) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := copyItinerary(itinerary)
	stored.ID = uuid.New().String()
	r.itineraries[stored.ID] = stored
	return stored.ID, nil
}

func (r *MemoryItineraryRepository) Update(ctx context.Context, itinerary *model.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.itineraries[itinerary.ID]
	if !ok {
		return model.ErrItineraryNotFound
	}
	stored := copyItinerary(itinerary)
	stored.CreatedAt = existing.CreatedAt
	stored.IsPublic = existing.IsPublic
	stored.Likes = existing.Likes
	stored.Views = existing.Views
	r.itineraries[stored.ID] = stored
	return nil
}

func (r *MemoryItineraryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.itineraries[id]; !ok {
		return model.ErrItineraryNotFound
	}
	delete(r.itineraries, id)
	return nil
}

func (r *MemoryItineraryRepository) GetByID(ctx context.Context, id string) (*model.Itinerary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.itineraries[id]
	if !ok {
		return nil, model.ErrItineraryNotFound
	}
	return copyItinerary(it), nil
}

func (r *MemoryItineraryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Itinerary, error) {
	return r.filter(func(it *model.Itinerary) bool { return it.OwnerID == ownerID }, 0), nil
}

func (r *MemoryItineraryRepository) ListPublic(ctx context.Context, limit int) ([]*model.Itinerary, error) {
	return r.filter(func(it *model.Itinerary) bool { return it.IsPublic }, limit), nil
}

func (r *MemoryItineraryRepository) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.itineraries[id]
	if !ok {
		return model.ErrItineraryNotFound
	}
	it.IsPublic = isPublic
	return nil
}

// filter は条件に合うルートを作成日時の降順で返す（limitが0以下なら全件）
func (r *MemoryItineraryRepository) filter(match func(*model.Itinerary) bool, limit int) []*model.Itinerary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Itinerary, 0)
	for _, it := range r.itineraries {
		if match(it) {
			out = append(out, copyItinerary(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func copyItinerary(it *model.Itinerary) *model.Itinerary {
	copied := *it
	copied.Places = append([]string(nil), it.Places...)
	copied.Legs = append([]model.RouteLeg(nil), it.Legs...)
	return &copied
}

// MemoryTipRepository はメモリ上にチップを保持する（ローカル開発・テスト用）
type MemoryTipRepository struct {
	mu   sync.RWMutex
	tips []*model.Tip
}

func NewMemoryTipRepository() *MemoryTipRepository {
	return &MemoryTipRepository{}
}

func (r *MemoryTipRepository) Create(ctx context.Context, tip *model.Tip) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *tip
	stored.ID = uuid.New().String()
	r.tips = append(r.tips, &stored)
	return stored.ID, nil
}

func (r *MemoryTipRepository) ListByCategory(ctx context.Context, category string, limit int) ([]*model.Tip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Tip, 0)
	for _, tip := range r.tips {
		if category == model.TipCategoryAll || tip.Category == category {
			copied := *tip
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MemoryCatalogRepository はメモリ上に場所カタログを保持する
type MemoryCatalogRepository struct {
	mu     sync.RWMutex
	places []*model.CatalogPlace
}

func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{}
}

func (r *MemoryCatalogRepository) Create(ctx context.Context, place *model.CatalogPlace) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *place
	stored.ID = uuid.New().String()
	r.places = append(r.places, &stored)
	return stored.ID, nil
}

func (r *MemoryCatalogRepository) ListByCategory(ctx context.Context, category string, limit int) ([]*model.CatalogPlace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.CatalogPlace, 0)
	for _, place := range r.places {
		if place.Category == category {
			copied := *place
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AverageRating > out[j].AverageRating })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
