package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck は依存サービスの疎通確認
type HealthCheck func(ctx context.Context) error

// HealthHandler はヘルスチェックAPIのハンドラー
type HealthHandler struct {
	checks   map[string]HealthCheck
	sessions func() int
}

// NewHealthHandler は新しいHealthHandlerインスタンスを作成
func NewHealthHandler(checks map[string]HealthCheck, sessions func() int) *HealthHandler {
	return &HealthHandler{checks: checks, sessions: sessions}
}

// Health はサーバーと依存サービスの状態を返すエンドポイント
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	services := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		services[name] = "ok"
	}

	body := gin.H{
		"status":   "ok",
		"services": services,
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if h.sessions != nil {
		body["active_sessions"] = h.sessions()
	}
	c.JSON(status, body)
}
