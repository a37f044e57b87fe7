package repository

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
)

// FirebasePhotoStorage はFirebase Storage（Cloud Storage）に写真を保存する
type FirebasePhotoStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebasePhotoStorage(bucket *gcs.BucketHandle, bucketName string) *FirebasePhotoStorage {
	return &FirebasePhotoStorage{bucket: bucket, bucketName: bucketName}
}

// Upload はファイルを保存し、トークン付きのダウンロードURLを返す
func (s *FirebasePhotoStorage) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	token := uuid.New().String()

	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", storageError("写真のアップロード", err)
	}
	if err := w.Close(); err != nil {
		return "", storageError("写真のアップロード", err)
	}

	downloadURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		s.bucketName, url.PathEscape(path), token)
	logrus.Infof("📷 写真をアップロードしました: %s", path)
	return downloadURL, nil
}

func storageError(action string, err error) error {
	return &model.ProviderError{
		Provider: model.ProviderStorage,
		Category: model.CategoryUnknown,
		Message:  fmt.Sprintf("%sに失敗: %v", action, err),
		Err:      err,
	}
}
