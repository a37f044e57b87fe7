package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roterize/internal/domain/model"
	"roterize/internal/domain/repository"
)

const userContextKey = "user"

// UserObserver は認証に成功したユーザーを受け取る（JWTモードのプロフィール保持用）
type UserObserver interface {
	Remember(user *model.User)
}

// RequireAuth はAuthorizationヘッダーのBearerトークンを検証する
func RequireAuth(provider repository.AuthProvider, observer UserObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "認証が必要です",
				"details": "Authorizationヘッダーが不正です",
			})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		user, err := provider.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "認証に失敗しました",
				"details": err.Error(),
			})
			return
		}

		if observer != nil {
			observer.Remember(user)
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser は認証済みユーザーを返す
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}
