package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roterize/internal/domain/model"
	"roterize/internal/middleware"
	"roterize/internal/usecase"
)

// CatalogHandler は場所カタログAPIのハンドラー
type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
}

// NewCatalogHandler は新しいCatalogHandlerインスタンスを作成
func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalogUseCase: catalogUseCase}
}

// CreatePlace は場所を登録するエンドポイント（multipart/form-data）
// POST /api/catalog/places
func (h *CatalogHandler) CreatePlace(c *gin.Context) {
	var req model.CreateCatalogPlaceRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	photos, closeAll, err := openUploads(req.Photos, "photos")
	defer closeAll()
	if err != nil {
		respondError(c, err, "場所の登録に失敗しました")
		return
	}

	user, _ := middleware.CurrentUser(c)
	place, err := h.catalogUseCase.Create(c.Request.Context(), user, &req, photos)
	if err != nil {
		respondError(c, err, "場所の登録に失敗しました")
		return
	}
	c.JSON(http.StatusCreated, place)
}

// ListPlaces はカテゴリの場所を評価順に返すエンドポイント
// GET /api/catalog/places?category=restaurant&limit=20
func (h *CatalogHandler) ListPlaces(c *gin.Context) {
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

	places, err := h.catalogUseCase.ListByCategory(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		respondError(c, err, "場所一覧の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}

// ListCategories は場所カタログのカテゴリ一覧を返すエンドポイント
// GET /api/catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":   model.CatalogCategoryNameMap,
		"price_ranges": model.CatalogPriceRanges,
		"weekdays":     model.Weekdays,
	})
}
