package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roterize/internal/domain/model"
	"roterize/internal/domain/service"
	"roterize/internal/repository"
)

// memoryPhotoStorage はアップロードされたファイルを記録する
type memoryPhotoStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newMemoryPhotoStorage() *memoryPhotoStorage {
	return &memoryPhotoStorage{objects: map[string][]byte{}}
}

func (s *memoryPhotoStorage) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return "https://storage.example.com/" + path, nil
}

type stubAutocomplete struct {
	result *model.AutocompleteResult
	err    error
	calls  int
}

func (s *stubAutocomplete) Predict(ctx context.Context, text string, types []string) (*model.AutocompleteResult, error) {
	s.calls++
	return s.result, s.err
}

func validTipRequest() *model.CreateTipRequest {
	lat, lng := -22.9519, -43.2105
	return &model.CreateTipRequest{
		PlaceName:   " Cristo Redentor ",
		Description: "Vá cedo para evitar filas",
		Category:    model.TipCategorySights,
		Latitude:    &lat,
		Longitude:   &lng,
		Rating:      5,
		PriceRange:  "$$",
		Tags:        "vista, , trem ",
	}
}

func TestTipUseCase_Create(t *testing.T) {
	ctx := context.Background()
	user := &model.User{UID: "u1", DisplayName: "Ana"}

	t.Run("写真をアップロードしてから保存", func(t *testing.T) {
		storage := newMemoryPhotoStorage()
		repo := repository.NewMemoryTipRepository()
		uc := NewTipUseCase(repo, storage)

		tip, err := uc.Create(ctx, user, validTipRequest(), []UploadFile{
			{Filename: "vista.JPG", ContentType: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, tip.ID)
		assert.Equal(t, "Cristo Redentor", tip.PlaceName)
		assert.Equal(t, "Ana", tip.UserName)
		assert.Equal(t, []string{"vista", "trem"}, tip.Tags)
		require.Len(t, tip.Photos, 1)
		assert.True(t, strings.HasPrefix(tip.Photos[0], "https://storage.example.com/tips/u1/"))
		assert.True(t, strings.HasSuffix(tip.Photos[0], ".jpg"))
		assert.Len(t, storage.objects, 1)

		listed, err := uc.ListByCategory(ctx, model.TipCategorySights, 0)
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("空白だけの項目と片方だけの座標", func(t *testing.T) {
		uc := NewTipUseCase(repository.NewMemoryTipRepository(), newMemoryPhotoStorage())
		cases := []struct {
			field  string
			mutate func(r *model.CreateTipRequest)
		}{
			{"place_name", func(r *model.CreateTipRequest) { r.PlaceName = " " }},
			{"description", func(r *model.CreateTipRequest) { r.Description = "\t" }},
			{"latitude", func(r *model.CreateTipRequest) { r.Longitude = nil }},
		}
		for _, tc := range cases {
			t.Run(tc.field, func(t *testing.T) {
				req := validTipRequest()
				tc.mutate(req)
				_, err := uc.Create(ctx, user, req, nil)
				var ve *model.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tc.field, ve.Field)
			})
		}
	})

	t.Run("アップロードに失敗したら保存しない", func(t *testing.T) {
		storage := newMemoryPhotoStorage()
		storage.err = errors.New("bucket unavailable")
		repo := repository.NewMemoryTipRepository()
		uc := NewTipUseCase(repo, storage)

		_, err := uc.Create(ctx, user, validTipRequest(), []UploadFile{
			{Filename: "a.png", ContentType: "image/png", Content: strings.NewReader("x")},
		})
		require.Error(t, err)
		tips, err := repo.ListByCategory(ctx, model.TipCategoryAll, 10)
		require.NoError(t, err)
		assert.Empty(t, tips)
	})

	t.Run("未認証は拒否", func(t *testing.T) {
		uc := NewTipUseCase(repository.NewMemoryTipRepository(), nil)
		_, err := uc.Create(ctx, nil, validTipRequest(), nil)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("不明なカテゴリの一覧はエラー", func(t *testing.T) {
		uc := NewTipUseCase(repository.NewMemoryTipRepository(), nil)
		_, err := uc.ListByCategory(ctx, "casino", 10)
		assert.True(t, model.IsValidationError(err))

		tips, err := uc.ListByCategory(ctx, "", 0)
		require.NoError(t, err)
		assert.NotNil(t, tips)
	})
}

func newItineraryFixture() (*repository.MemoryItineraryRepository, *service.SessionStore, ItineraryUseCase) {
	repo := repository.NewMemoryItineraryRepository()
	store := service.NewSessionStore(service.SessionDeps{
		Itineraries: repo,
		AfterFunc: func(d time.Duration, f func()) service.Timer {
			return time.AfterFunc(time.Hour, f)
		},
	}, time.Minute)
	return repo, store, NewItineraryUseCase(repo, store)
}

func TestItineraryUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("削除すると読み込んでいたセッションを初期化", func(t *testing.T) {
		repo, store, uc := newItineraryFixture()
		id, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u1", Name: "Rio", Places: []string{"A", "B"}, TravelMode: model.TravelModeDriving})
		require.NoError(t, err)

		session, err := store.Create("u1")
		require.NoError(t, err)
		_, _, err = session.Load(ctx, id)
		require.NoError(t, err)
		require.Equal(t, model.StateSaved, session.Snapshot().State)

		require.NoError(t, uc.Delete(ctx, "u1", id))
		snap := session.Snapshot()
		assert.Equal(t, model.StateUnsaved, snap.State)
		assert.Empty(t, snap.Places)
	})

	t.Run("他人のルートは削除できない", func(t *testing.T) {
		repo, _, uc := newItineraryFixture()
		id, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u1"})
		require.NoError(t, err)

		assert.ErrorIs(t, uc.Delete(ctx, "u2", id), model.ErrForbidden)
		assert.ErrorIs(t, uc.SetVisibility(ctx, "u2", id, true), model.ErrForbidden)
	})

	t.Run("公開ルートは誰でも取得できる", func(t *testing.T) {
		repo, _, uc := newItineraryFixture()
		id, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u1", Name: "Rio"})
		require.NoError(t, err)

		_, err = uc.Get(ctx, "u2", id)
		assert.ErrorIs(t, err, model.ErrForbidden)

		require.NoError(t, uc.SetVisibility(ctx, "u1", id, true))
		got, err := uc.Get(ctx, "u2", id)
		require.NoError(t, err)
		assert.Equal(t, "Rio", got.Name)

		public, err := uc.ListPublic(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, public.Itineraries, 1)
	})

	t.Run("一覧と件数", func(t *testing.T) {
		repo, _, uc := newItineraryFixture()
		base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u1", Name: "old", CreatedAt: base})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &model.Itinerary{OwnerID: "u1", Name: "new", CreatedAt: base.Add(time.Hour)})
		require.NoError(t, err)

		list, err := uc.List(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list.Itineraries, 2)
		assert.Equal(t, "new", list.Itineraries[0].Name)

		count, err := uc.Count(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestPlaceUseCase_Autocomplete(t *testing.T) {
	ctx := context.Background()

	t.Run("短い入力は問い合わせない", func(t *testing.T) {
		provider := &stubAutocomplete{}
		items, err := NewPlaceUseCase(provider, 3).Autocomplete(ctx, " ab ")
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, 0, provider.calls)
	})

	t.Run("ZERO_RESULTSは空の候補", func(t *testing.T) {
		provider := &stubAutocomplete{result: &model.AutocompleteResult{Status: "ZERO_RESULTS"}}
		items, err := NewPlaceUseCase(provider, 2).Autocomplete(ctx, "xyzzy")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("OVER_QUERY_LIMITはquotaエラー", func(t *testing.T) {
		provider := &stubAutocomplete{result: &model.AutocompleteResult{Status: "OVER_QUERY_LIMIT"}}
		_, err := NewPlaceUseCase(provider, 2).Autocomplete(ctx, "rio")
		pe, ok := model.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, model.CategoryQuotaExceeded, pe.Category)
	})
}

func TestProfileUseCase(t *testing.T) {
	ctx := context.Background()
	user := &model.User{UID: "u1", Email: "ana@example.com"}

	newProfile := func() (*repository.MemoryUserDirectory, *memoryPhotoStorage, ProfileUseCase) {
		users := repository.NewMemoryUserDirectory()
		users.Remember(user)
		storage := newMemoryPhotoStorage()
		_, _, itineraries := newItineraryFixture()
		return users, storage, NewProfileUseCase(users, storage, itineraries, nil)
	}

	t.Run("プロフィールとルート数", func(t *testing.T) {
		_, _, uc := newProfile()
		me, err := uc.Me(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", me.User.Email)
		assert.Equal(t, 0, me.ItineraryCount)
		assert.Equal(t, 1, me.Level)
		assert.Empty(t, me.Badges)
	})

	t.Run("保存したルート数でレベルとバッジが決まる", func(t *testing.T) {
		users := repository.NewMemoryUserDirectory()
		users.Remember(user)
		repo, _, itineraries := newItineraryFixture()
		for i := 0; i < 5; i++ {
			_, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u1", Name: fmt.Sprintf("Rio %d", i), Places: []string{"A", "B"}})
			require.NoError(t, err)
		}
		_, err := repo.Create(ctx, &model.Itinerary{OwnerID: "u2", Name: "Outro", Places: []string{"A", "B"}})
		require.NoError(t, err)

		me, err := NewProfileUseCase(users, nil, itineraries, nil).Me(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, 5, me.ItineraryCount)
		assert.Equal(t, 2, me.Level)
		require.Len(t, me.Badges, 2)
		assert.Equal(t, "Explorador", me.Badges[1].Name)
	})

	t.Run("表示名を更新", func(t *testing.T) {
		_, _, uc := newProfile()
		name := "Ana"
		updated, err := uc.Update(ctx, user, &model.UpdateProfileRequest{DisplayName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Ana", updated.DisplayName)

		empty := " "
		_, err = uc.Update(ctx, user, &model.UpdateProfileRequest{DisplayName: &empty})
		assert.True(t, model.IsValidationError(err))
		_, err = uc.Update(ctx, user, &model.UpdateProfileRequest{})
		assert.True(t, model.IsValidationError(err))
	})

	t.Run("プロフィール画像をアップロード", func(t *testing.T) {
		_, storage, uc := newProfile()
		updated, err := uc.UploadAvatar(ctx, user, UploadFile{Filename: "me.png", ContentType: "image/png", Content: strings.NewReader("png")})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(updated.PhotoURL, "https://storage.example.com/avatars/u1/"))
		assert.Len(t, storage.objects, 1)

		_, err = uc.UploadAvatar(ctx, user, UploadFile{Filename: "me.txt", ContentType: "text/plain", Content: strings.NewReader("x")})
		assert.True(t, model.IsValidationError(err))
	})

	t.Run("登録したユーザーでログイン", func(t *testing.T) {
		users := repository.NewMemoryUserDirectory()
		provider, err := repository.NewJWTAuthProvider("usecase-secret")
		require.NoError(t, err)
		_, _, itineraries := newItineraryFixture()
		uc := NewProfileUseCase(users, nil, itineraries, repository.NewJWTSignIn(provider, users, time.Hour))

		created, err := uc.SignUp(ctx, &model.SignUpRequest{Email: "dani@example.com", Password: "secret123", DisplayName: "Dani"})
		require.NoError(t, err)

		res, err := uc.SignIn(ctx, &model.SignInRequest{Email: "dani@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, created.UID, res.User.UID)
		assert.Equal(t, 3600, res.ExpiresIn)
		assert.NotEmpty(t, res.Token)

		_, err = uc.SignIn(ctx, &model.SignInRequest{Email: "dani@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		_, err = uc.SignIn(ctx, &model.SignInRequest{Email: "nobody@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("パスワードログインが無効な場合はnot ready", func(t *testing.T) {
		_, _, uc := newProfile()
		_, err := uc.SignIn(ctx, &model.SignInRequest{Email: "ana@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, model.ErrNotReady)
	})
}
