package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roterize/internal/usecase"
)

// PlacesHandler は場所検索APIのハンドラー
type PlacesHandler struct {
	placeUseCase usecase.PlaceUseCase
}

// NewPlacesHandler は新しいPlacesHandlerインスタンスを作成
func NewPlacesHandler(placeUseCase usecase.PlaceUseCase) *PlacesHandler {
	return &PlacesHandler{placeUseCase: placeUseCase}
}

// Autocomplete は入力テキストに対する候補を返すエンドポイント
// GET /api/places/autocomplete?input=...
func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	items, err := h.placeUseCase.Autocomplete(c.Request.Context(), c.Query("input"))
	if err != nil {
		respondError(c, err, "補完候補の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": items})
}
