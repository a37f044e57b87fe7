package repository

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"roterize/internal/domain/model"
)

// classifyGRPCError はgRPCのステータスコードをProviderErrorに変換する
// NotFoundの場合はnotFoundを返す（nilの場合はProviderErrorにする）
func classifyGRPCError(provider, action string, err error, notFound error) error {
	if err == nil {
		return nil
	}

	code := status.Code(err)
	if code == codes.NotFound && notFound != nil {
		return notFound
	}

	category := model.CategoryUnknown
	switch code {
	case codes.NotFound:
		category = model.CategoryNotFound
	case codes.ResourceExhausted:
		category = model.CategoryQuotaExceeded
	case codes.PermissionDenied, codes.Unauthenticated:
		category = model.CategoryRequestDenied
	}

	message := err.Error()
	if st, ok := status.FromError(err); ok && st.Message() != "" {
		message = st.Message()
	}

	return &model.ProviderError{
		Provider: provider,
		Category: category,
		Code:     code.String(),
		Message:  fmt.Sprintf("%sに失敗: %s", action, message),
		Err:      err,
	}
}
