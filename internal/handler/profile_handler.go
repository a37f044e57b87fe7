package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"roterize/internal/domain/model"
	"roterize/internal/middleware"
	"roterize/internal/usecase"
)

// ProfileHandler はプロフィールAPIのハンドラー
type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
}

// NewProfileHandler は新しいProfileHandlerインスタンスを作成
func NewProfileHandler(profileUseCase usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase}
}

// SignUp はユーザーを登録するエンドポイント
// POST /api/auth/signup
func (h *ProfileHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.profileUseCase.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "ユーザー登録に失敗しました")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// SignIn はパスワードでログインしてトークンを返すエンドポイント
// POST /api/auth/login
func (h *ProfileHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.profileUseCase.SignIn(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "ログインに失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetMe は現在のユーザーのプロフィールを返すエンドポイント
// GET /api/me
func (h *ProfileHandler) GetMe(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	response, err := h.profileUseCase.Me(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "プロフィールの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// UpdateMe はプロフィールを更新するエンドポイント
// PUT /api/me
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	updated, err := h.profileUseCase.Update(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, err, "プロフィールの更新に失敗しました")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UploadAvatar はプロフィール画像をアップロードするエンドポイント
// POST /api/me/avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "avatarファイルが指定されていません",
			"details": err.Error(),
		})
		return
	}

	uploads, closeAll, err := openUploads([]*multipart.FileHeader{header}, "avatar")
	defer closeAll()
	if err != nil {
		respondError(c, err, "プロフィール画像のアップロードに失敗しました")
		return
	}

	user, _ := middleware.CurrentUser(c)
	updated, err := h.profileUseCase.UploadAvatar(c.Request.Context(), user, uploads[0])
	if err != nil {
		respondError(c, err, "プロフィール画像のアップロードに失敗しました")
		return
	}
	c.JSON(http.StatusOK, updated)
}
