package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
)

// respondError はエラーの種類に応じたステータスコードでエラーレスポンスを返す
func respondError(c *gin.Context, err error, message string) {
	status := statusFromError(err)
	body := gin.H{
		"error":   message,
		"details": err.Error(),
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		body["error"] = "バリデーションエラー"
		body["field"] = ve.Field
		body["details"] = ve.Message
	}
	if pe, ok := model.AsProviderError(err); ok {
		body["provider"] = pe.Provider
		body["category"] = pe.Category
		if pe.Code != "" {
			body["code"] = pe.Code
		}
	}

	if status >= http.StatusInternalServerError {
		logrus.Errorf("❌ %s: %v", message, err)
	}
	c.JSON(status, body)
}

// statusFromError はエラーをHTTPステータスコードに変換する
func statusFromError(err error) int {
	if model.IsValidationError(err) {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrSessionNotFound), errors.Is(err, model.ErrItineraryNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrBusy), errors.Is(err, model.ErrStaleResult):
		return http.StatusConflict
	case errors.Is(err, model.ErrNotReady):
		return http.StatusServiceUnavailable
	}

	if pe, ok := model.AsProviderError(err); ok {
		switch pe.Category {
		case model.CategoryZeroResults:
			return http.StatusUnprocessableEntity
		case model.CategoryNotFound:
			if pe.Provider == model.ProviderDirections {
				return http.StatusUnprocessableEntity
			}
			return http.StatusNotFound
		case model.CategoryQuotaExceeded:
			return http.StatusTooManyRequests
		default:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// bindError はリクエストボディの解析失敗を返す
// bindingタグの検証に失敗した場合はValidationErrorと同じ形で項目名を返す
func bindError(c *gin.Context, err error) {
	if fe, ok := firstFieldError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"field":   fe.Field(),
			"details": fieldErrorMessage(fe),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "リクエストの形式が正しくありません",
		"details": err.Error(),
	})
}
