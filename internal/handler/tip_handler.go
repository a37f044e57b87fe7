package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roterize/internal/domain/model"
	"roterize/internal/middleware"
	"roterize/internal/usecase"
)

// MaxPhotoBytes は1枚あたりの写真の最大サイズ
const MaxPhotoBytes = 5 << 20

// TipHandler はチップAPIのハンドラー
type TipHandler struct {
	tipUseCase usecase.TipUseCase
}

// NewTipHandler は新しいTipHandlerインスタンスを作成
func NewTipHandler(tipUseCase usecase.TipUseCase) *TipHandler {
	return &TipHandler{tipUseCase: tipUseCase}
}

// CreateTip はチップを投稿するエンドポイント（multipart/form-data）
// POST /api/tips
func (h *TipHandler) CreateTip(c *gin.Context) {
	var req model.CreateTipRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	photos, closeAll, err := openUploads(req.Photos, "photos")
	defer closeAll()
	if err != nil {
		respondError(c, err, "チップの投稿に失敗しました")
		return
	}

	user, _ := middleware.CurrentUser(c)
	tip, err := h.tipUseCase.Create(c.Request.Context(), user, &req, photos)
	if err != nil {
		respondError(c, err, "チップの投稿に失敗しました")
		return
	}
	c.JSON(http.StatusCreated, tip)
}

// ListTips はカテゴリのチップ一覧を返すエンドポイント
// GET /api/tips?category=food&limit=20
func (h *TipHandler) ListTips(c *gin.Context) {
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

	tips, err := h.tipUseCase.ListByCategory(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		respondError(c, err, "チップ一覧の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

// ListCategories はチップのカテゴリ一覧を返すエンドポイント
// GET /api/tips/categories
func (h *TipHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":   model.TipCategoryNameMap,
		"price_ranges": model.TipPriceRanges,
	})
}

// openUploads はアップロードされた画像ファイルを開く。closeAllは必ず呼ぶこと
func openUploads(headers []*multipart.FileHeader, field string) ([]usecase.UploadFile, func(), error) {
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	uploads := make([]usecase.UploadFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > MaxPhotoBytes {
			return nil, closeAll, model.NewValidationError(field, fmt.Sprintf("%s は%dMBを超えています", header.Filename, MaxPhotoBytes>>20))
		}
		contentType := header.Header.Get("Content-Type")
		if !isImage(contentType) {
			return nil, closeAll, model.NewValidationError(field, fmt.Sprintf("%s は画像ファイルではありません", header.Filename))
		}
		f, err := header.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("ファイルのオープンに失敗: %w", err)
		}
		files = append(files, f)
		uploads = append(uploads, usecase.UploadFile{
			Filename:    header.Filename,
			ContentType: contentType,
			Content:     f,
		})
	}
	return uploads, closeAll, nil
}

func isImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif", "image/heic":
		return true
	}
	return false
}
