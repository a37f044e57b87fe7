package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roterize/internal/domain/model"
	"roterize/internal/repository"
)

func validCatalogRequest() *model.CreateCatalogPlaceRequest {
	lat, lng := -22.9711, -43.1822
	return &model.CreateCatalogPlaceRequest{
		Name:         " Confeitaria Colombo ",
		Description:  "Café histórico",
		Category:     model.CatalogCategoryRestaurant,
		Address:      "R. Gonçalves Dias, 32 - Centro",
		Latitude:     &lat,
		Longitude:    &lng,
		OpeningHours: `{"monday":{"open":"09:00","close":"19:00"},"sunday":{"closed":true}}`,
		PriceRange:   "$$",
		Tags:         "café, doces,",
		Website:      "https://www.confeitariacolombo.com.br",
	}
}

func TestCatalogUseCase_Create(t *testing.T) {
	ctx := context.Background()
	user := &model.User{UID: "u1", Email: "ana@example.com"}

	t.Run("写真をplaces配下に保存して登録", func(t *testing.T) {
		storage := newMemoryPhotoStorage()
		repo := repository.NewMemoryCatalogRepository()
		uc := NewCatalogUseCase(repo, storage)

		place, err := uc.Create(ctx, user, validCatalogRequest(), []UploadFile{
			{Filename: "salao.PNG", ContentType: "image/png", Content: strings.NewReader("png")},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, place.ID)
		assert.Equal(t, "Confeitaria Colombo", place.Name)
		assert.Equal(t, "ana@example.com", place.ContributorName)
		assert.Equal(t, []string{"café", "doces"}, place.Tags)
		assert.False(t, place.Verified)
		assert.Zero(t, place.AverageRating)
		require.Len(t, place.Photos, 1)
		assert.True(t, strings.HasPrefix(place.Photos[0], "https://storage.example.com/places/u1/"))
		assert.True(t, strings.HasSuffix(place.Photos[0], ".png"))

		assert.Len(t, place.OpeningHours, len(model.Weekdays))
		assert.Equal(t, "09:00", place.OpeningHours["monday"].Open)
		assert.True(t, place.OpeningHours["sunday"].Closed)
		assert.Equal(t, model.DayHours{}, place.OpeningHours["tuesday"])
	})

	t.Run("アップロードに失敗した写真は外して登録する", func(t *testing.T) {
		storage := newMemoryPhotoStorage()
		storage.err = errors.New("bucket unavailable")
		uc := NewCatalogUseCase(repository.NewMemoryCatalogRepository(), storage)

		place, err := uc.Create(ctx, user, validCatalogRequest(), []UploadFile{
			{Filename: "a.png", ContentType: "image/png", Content: strings.NewReader("png")},
		})
		require.NoError(t, err)
		assert.Empty(t, place.Photos)
	})

	t.Run("写真の保存先がなければnot ready", func(t *testing.T) {
		uc := NewCatalogUseCase(repository.NewMemoryCatalogRepository(), nil)
		_, err := uc.Create(ctx, user, validCatalogRequest(), []UploadFile{
			{Filename: "a.png", ContentType: "image/png", Content: strings.NewReader("png")},
		})
		assert.ErrorIs(t, err, model.ErrNotReady)
	})

	t.Run("入力の検証", func(t *testing.T) {
		uc := NewCatalogUseCase(repository.NewMemoryCatalogRepository(), nil)
		cases := []struct {
			name   string
			field  string
			mutate func(r *model.CreateCatalogPlaceRequest)
		}{
			{"空白だけの名前", "name", func(r *model.CreateCatalogPlaceRequest) { r.Name = "  " }},
			{"空白だけの住所", "address", func(r *model.CreateCatalogPlaceRequest) { r.Address = "\t" }},
			{"座標なし", "latitude", func(r *model.CreateCatalogPlaceRequest) { r.Latitude = nil }},
			{"壊れたJSON", "opening_hours", func(r *model.CreateCatalogPlaceRequest) { r.OpeningHours = "{" }},
			{"不明な曜日", "opening_hours", func(r *model.CreateCatalogPlaceRequest) { r.OpeningHours = `{"funday":{}}` }},
			{"時刻の形式", "opening_hours", func(r *model.CreateCatalogPlaceRequest) { r.OpeningHours = `{"monday":{"open":"9h"}}` }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validCatalogRequest()
				tc.mutate(req)
				_, err := uc.Create(ctx, user, req, nil)
				var ve *model.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tc.field, ve.Field)
			})
		}
	})

	t.Run("休業日の時刻は検証しない", func(t *testing.T) {
		uc := NewCatalogUseCase(repository.NewMemoryCatalogRepository(), nil)
		req := validCatalogRequest()
		req.OpeningHours = `{"monday":{"open":"-","closed":true}}`
		_, err := uc.Create(ctx, user, req, nil)
		assert.NoError(t, err)
	})

	t.Run("未ログインは401", func(t *testing.T) {
		uc := NewCatalogUseCase(repository.NewMemoryCatalogRepository(), nil)
		_, err := uc.Create(ctx, nil, validCatalogRequest(), nil)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})
}

func TestCatalogUseCase_ListByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("評価の高い順にカテゴリで絞り込む", func(t *testing.T) {
		repo := repository.NewMemoryCatalogRepository()
		for _, p := range []*model.CatalogPlace{
			{Name: "B", Category: model.CatalogCategoryBeach, AverageRating: 3.5},
			{Name: "A", Category: model.CatalogCategoryBeach, AverageRating: 4.8},
			{Name: "M", Category: model.CatalogCategoryMuseum, AverageRating: 5},
		} {
			_, err := repo.Create(ctx, p)
			require.NoError(t, err)
		}

		places, err := NewCatalogUseCase(repo, nil).ListByCategory(ctx, " beach ", 0)
		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, "A", places[0].Name)
		assert.Equal(t, "B", places[1].Name)

		places, err = NewCatalogUseCase(repo, nil).ListByCategory(ctx, model.CatalogCategoryBeach, 1)
		require.NoError(t, err)
		assert.Len(t, places, 1)
	})

	t.Run("カテゴリは必須", func(t *testing.T) {
		uc := NewCatalogUseCase(repository.NewMemoryCatalogRepository(), nil)
		for _, category := range []string{"", "casino"} {
			_, err := uc.ListByCategory(ctx, category, 0)
			assert.True(t, model.IsValidationError(err), category)
		}
	})
}
