package repository

import (
	"context"
	"io"
)

// PhotoStorage は写真などのファイルを保存し、ダウンロードURLを返す
type PhotoStorage interface {
	Upload(ctx context.Context, path string, contentType string, r io.Reader) (string, error)
}
