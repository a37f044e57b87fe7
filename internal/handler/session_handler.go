package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roterize/internal/domain/model"
	"roterize/internal/middleware"
	"roterize/internal/usecase"
)

// SessionHandler は編集セッションAPIのハンドラー
type SessionHandler struct {
	sessionUseCase usecase.SessionUseCase
}

// NewSessionHandler は新しいSessionHandlerインスタンスを作成
func NewSessionHandler(sessionUseCase usecase.SessionUseCase) *SessionHandler {
	return &SessionHandler{sessionUseCase: sessionUseCase}
}

// CreateSession は編集セッションを開始するエンドポイント
// POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.Create(c.Request.Context(), ownerID(user))
	if err != nil {
		respondError(c, err, "編集セッションの作成に失敗しました")
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// GetSession は編集セッションの状態を返すエンドポイント
// GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.Get(c.Request.Context(), ownerID(user), c.Param("id"))
	if err != nil {
		respondError(c, err, "編集セッションの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// AddPlace は場所を追加するエンドポイント
// POST /api/sessions/:id/places
func (h *SessionHandler) AddPlace(c *gin.Context) {
	var req model.AddPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.AddPlace(c.Request.Context(), ownerID(user), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "場所の追加に失敗しました")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// RemovePlace は場所を削除するエンドポイント
// DELETE /api/sessions/:id/places/:index
func (h *SessionHandler) RemovePlace(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "indexは整数で指定してください",
			"details": err.Error(),
		})
		return
	}

	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.RemovePlace(c.Request.Context(), ownerID(user), c.Param("id"), index)
	if err != nil {
		respondError(c, err, "場所の削除に失敗しました")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SetTravelMode は移動手段を変更するエンドポイント
// PUT /api/sessions/:id/travel-mode
func (h *SessionHandler) SetTravelMode(c *gin.Context) {
	var req model.SetTravelModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.SetTravelMode(c.Request.Context(), ownerID(user), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "移動手段の変更に失敗しました")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SetView は表示中の画面を切り替えるエンドポイント
// PUT /api/sessions/:id/view
func (h *SessionHandler) SetView(c *gin.Context) {
	var req model.SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.SetView(c.Request.Context(), ownerID(user), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "画面の切り替えに失敗しました")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Input は入力欄の変更を受け取るエンドポイント
// PUT /api/sessions/:id/input
func (h *SessionHandler) Input(c *gin.Context) {
	var req model.InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.Input(c.Request.Context(), ownerID(user), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "入力の反映に失敗しました")
		return
	}
	c.JSON(http.StatusAccepted, snapshot)
}

// GetSuggestions は現在の補完候補を返すエンドポイント
// GET /api/sessions/:id/suggestions
func (h *SessionHandler) GetSuggestions(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	items, err := h.sessionUseCase.Suggestions(c.Request.Context(), ownerID(user), c.Param("id"))
	if err != nil {
		respondError(c, err, "補完候補の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": items})
}

// SelectSuggestion は補完候補を選択するエンドポイント
// POST /api/sessions/:id/suggestions/select
func (h *SessionHandler) SelectSuggestion(c *gin.Context) {
	var req model.SelectSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.SelectSuggestion(c.Request.Context(), ownerID(user), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "候補の選択に失敗しました")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// GenerateRoute は経路を生成するエンドポイント
// POST /api/sessions/:id/route
func (h *SessionHandler) GenerateRoute(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.GenerateRoute(c.Request.Context(), ownerID(user), c.Param("id"))
	if err != nil {
		respondError(c, err, "経路の生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SaveItinerary は編集中のルートを保存するエンドポイント
// POST /api/sessions/:id/save
func (h *SessionHandler) SaveItinerary(c *gin.Context) {
	var req model.SaveItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	snapshot, err := h.sessionUseCase.Save(c.Request.Context(), ownerID(user), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "ルートの保存に失敗しました")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// LoadItinerary は保存済みのルートを読み込むエンドポイント
// POST /api/sessions/:id/load
func (h *SessionHandler) LoadItinerary(c *gin.Context) {
	var req model.LoadItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	response, err := h.sessionUseCase.Load(c.Request.Context(), ownerID(user), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "ルートの読み込みに失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

func ownerID(user *model.User) string {
	if user == nil {
		return ""
	}
	return user.UID
}
