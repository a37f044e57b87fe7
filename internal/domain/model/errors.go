package model

import (
	"errors"
	"fmt"
)

// ErrorCategory は外部プロバイダのエラー分類
type ErrorCategory string

const (
	CategoryNotFound      ErrorCategory = "not_found"
	CategoryZeroResults   ErrorCategory = "zero_results"
	CategoryQuotaExceeded ErrorCategory = "quota_exceeded"
	CategoryRequestDenied ErrorCategory = "request_denied"
	CategoryUnknown       ErrorCategory = "unknown"
)

// 外部プロバイダ名
const (
	ProviderDirections   = "directions"
	ProviderAutocomplete = "autocomplete"
	ProviderFirestore    = "firestore"
	ProviderPostgres     = "postgres"
	ProviderSupabase     = "supabase"
	ProviderStorage      = "storage"
	ProviderAuth         = "auth"
)

var (
	ErrSessionNotFound   = errors.New("編集セッションが見つかりません")
	ErrItineraryNotFound = errors.New("ルートが見つかりません")
	ErrForbidden         = errors.New("このリソースへのアクセス権がありません")
	ErrBusy              = errors.New("別の処理が実行中です")
	ErrStaleResult       = errors.New("処理中に場所リストが変更されたため結果を破棄しました")
	ErrUnauthorized      = errors.New("認証が必要です")
	ErrNotReady          = errors.New("プロバイダの準備ができていません")
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewValidationError はValidationErrorを生成する
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ProviderError は外部プロバイダ（経路・補完・認証・永続化）の失敗を表す
// Messageはプロバイダから返されたものをそのまま保持する
type ProviderError struct {
	Provider string
	Category ErrorCategory
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s [%s/%s]: %s", e.Provider, e.Category, e.Code, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Provider, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsValidationError はエラーがValidationErrorかどうかを判定する
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsProviderError はエラーチェーンからProviderErrorを取り出す
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// CategoryFromStatus はGoogle Maps系APIのステータス文字列をエラー分類に変換する
func CategoryFromStatus(status string) ErrorCategory {
	switch status {
	case "NOT_FOUND":
		return CategoryNotFound
	case "ZERO_RESULTS":
		return CategoryZeroResults
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return CategoryQuotaExceeded
	case "REQUEST_DENIED":
		return CategoryRequestDenied
	default:
		return CategoryUnknown
	}
}
