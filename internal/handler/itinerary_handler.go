package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roterize/internal/domain/model"
	"roterize/internal/middleware"
	"roterize/internal/usecase"
)

// ItineraryHandler は保存済みルートAPIのハンドラー
type ItineraryHandler struct {
	itineraryUseCase usecase.ItineraryUseCase
}

// NewItineraryHandler は新しいItineraryHandlerインスタンスを作成
func NewItineraryHandler(itineraryUseCase usecase.ItineraryUseCase) *ItineraryHandler {
	return &ItineraryHandler{itineraryUseCase: itineraryUseCase}
}

// ListItineraries は自分の保存済みルート一覧を返すエンドポイント
// GET /api/itineraries
func (h *ItineraryHandler) ListItineraries(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	response, err := h.itineraryUseCase.List(c.Request.Context(), ownerID(user))
	if err != nil {
		respondError(c, err, "ルート一覧の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// ListPublicItineraries は公開ルート一覧を返すエンドポイント
// GET /api/itineraries/public?limit=10
func (h *ItineraryHandler) ListPublicItineraries(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "limitは正の整数で指定してください",
				"details": raw,
			})
			return
		}
		limit = parsed
	}

	response, err := h.itineraryUseCase.ListPublic(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "公開ルートの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetItinerary は保存済みルートの詳細を返すエンドポイント
// GET /api/itineraries/:id
func (h *ItineraryHandler) GetItinerary(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	itinerary, err := h.itineraryUseCase.Get(c.Request.Context(), ownerID(user), c.Param("id"))
	if err != nil {
		respondError(c, err, "ルートの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

// DeleteItinerary は保存済みルートを削除するエンドポイント
// DELETE /api/itineraries/:id
func (h *ItineraryHandler) DeleteItinerary(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if err := h.itineraryUseCase.Delete(c.Request.Context(), ownerID(user), c.Param("id")); err != nil {
		respondError(c, err, "ルートの削除に失敗しました")
		return
	}
	c.Status(http.StatusNoContent)
}

// SetVisibility はルートの公開設定を変更するエンドポイント
// PUT /api/itineraries/:id/visibility
func (h *ItineraryHandler) SetVisibility(c *gin.Context) {
	var req model.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	if err := h.itineraryUseCase.SetVisibility(c.Request.Context(), ownerID(user), c.Param("id"), req.IsPublic); err != nil {
		respondError(c, err, "公開設定の変更に失敗しました")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "is_public": req.IsPublic})
}
