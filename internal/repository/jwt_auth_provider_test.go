package repository

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roterize/internal/domain/model"
)

func TestJWTAuthProvider(t *testing.T) {
	ctx := context.Background()
	provider, err := NewJWTAuthProvider("test-secret")
	require.NoError(t, err)
	user := &model.User{UID: "user-1", Email: "ana@example.com", DisplayName: "Ana", PhotoURL: "https://example.com/a.png"}

	t.Run("発行したトークンを検証できる", func(t *testing.T) {
		token, err := provider.GenerateToken(user, time.Hour)
		require.NoError(t, err)

		got, err := provider.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("別の鍵で署名されたトークンは拒否", func(t *testing.T) {
		other, err := NewJWTAuthProvider("other-secret")
		require.NoError(t, err)
		token, err := other.GenerateToken(user, time.Hour)
		require.NoError(t, err)

		_, err = provider.Verify(ctx, token)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("期限切れのトークンは拒否", func(t *testing.T) {
		token, err := provider.GenerateToken(user, -time.Minute)
		require.NoError(t, err)

		_, err = provider.Verify(ctx, token)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("subがないトークンは拒否", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"email": "ana@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = provider.Verify(ctx, token)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("HS256以外は拒否", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = provider.Verify(ctx, token)
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("不正な文字列は拒否", func(t *testing.T) {
		_, err := provider.Verify(ctx, "not-a-token")
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("鍵が空なら初期化エラー", func(t *testing.T) {
		_, err := NewJWTAuthProvider("")
		assert.Error(t, err)
	})
}

func TestMemoryUserDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("Rememberしたユーザーを取得できる", func(t *testing.T) {
		d := NewMemoryUserDirectory()
		d.Remember(&model.User{UID: "u1", Email: "ana@example.com"})

		got, err := d.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", got.Email)
	})

	t.Run("未登録のユーザーはnot found", func(t *testing.T) {
		_, err := NewMemoryUserDirectory().Get(ctx, "missing")
		pe, ok := model.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, model.CategoryNotFound, pe.Category)
	})

	t.Run("更新したプロフィールはRememberで上書きされない", func(t *testing.T) {
		d := NewMemoryUserDirectory()
		d.Remember(&model.User{UID: "u1", DisplayName: "Ana"})

		name := "Ana Maria"
		updated, err := d.Update(ctx, "u1", &model.UpdateProfileRequest{DisplayName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", updated.DisplayName)

		d.Remember(&model.User{UID: "u1", DisplayName: "Ana"})
		got, err := d.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", got.DisplayName)
	})

	t.Run("登録したユーザーはパスワードで照合できる", func(t *testing.T) {
		d := NewMemoryUserDirectory()
		created, err := d.Create(ctx, &model.SignUpRequest{Email: " Ana@Example.com ", Password: "secret1", DisplayName: "Ana"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.UID)
		assert.Equal(t, "ana@example.com", created.Email)

		got, err := d.Authenticate(ctx, "ANA@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, created.UID, got.UID)
		assert.Equal(t, "Ana", got.DisplayName)

		_, err = d.Authenticate(ctx, "ana@example.com", "wrong-password")
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		_, err = d.Authenticate(ctx, "bruno@example.com", "secret1")
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("同じメールアドレスは登録できない", func(t *testing.T) {
		d := NewMemoryUserDirectory()
		_, err := d.Create(ctx, &model.SignUpRequest{Email: "a@example.com", Password: "secret1"})
		require.NoError(t, err)

		_, err = d.Create(ctx, &model.SignUpRequest{Email: "A@example.com", Password: "secret2"})
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "email", verr.Field)
	})
}

func TestJWTSignIn(t *testing.T) {
	ctx := context.Background()
	provider, err := NewJWTAuthProvider("signin-secret")
	require.NoError(t, err)
	directory := NewMemoryUserDirectory()
	created, err := directory.Create(ctx, &model.SignUpRequest{Email: "carla@example.com", Password: "secret1", DisplayName: "Carla"})
	require.NoError(t, err)

	signIn := NewJWTSignIn(provider, directory, time.Hour)

	t.Run("発行したトークンで認証できる", func(t *testing.T) {
		user, token, ttl, err := signIn.SignIn(ctx, "carla@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, created.UID, user.UID)
		assert.Equal(t, time.Hour, ttl)

		verified, err := provider.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, created.UID, verified.UID)
		assert.Equal(t, "Carla", verified.DisplayName)
	})

	t.Run("パスワードが違う場合はトークンを発行しない", func(t *testing.T) {
		_, token, _, err := signIn.SignIn(ctx, "carla@example.com", "nope")
		assert.ErrorIs(t, err, model.ErrUnauthorized)
		assert.Empty(t, token)
	})
}
