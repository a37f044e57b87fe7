package firebase

import (
	"context"
	"fmt"
	"os"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// App はFirebase Admin SDKのクライアントをまとめたもの
type App struct {
	app        *firebase.App
	auth       *auth.Client
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewApp はFirebase Admin SDKを初期化する
// bucketNameが空の場合はStorageを初期化しない
func NewApp(ctx context.Context, projectID, bucketName, credentialsFile string) (*App, error) {
	conf := &firebase.Config{ProjectID: projectID}
	if bucketName != "" {
		conf.StorageBucket = bucketName
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err == nil {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		} else {
			logrus.Warnf("⚠️ Credentials file not found: %s, trying with default authentication", credentialsFile)
		}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("Firebaseアプリの初期化に失敗: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("Firebase Authクライアントの初期化に失敗: %w", err)
	}

	result := &App{app: app, auth: authClient, bucketName: bucketName}

	if bucketName != "" {
		storageClient, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("Firebase Storageクライアントの初期化に失敗: %w", err)
		}
		bucket, err := storageClient.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("Storageバケットの取得に失敗: %w", err)
		}
		result.bucket = bucket
	}

	logrus.Infof("✅ Firebase Admin SDK initialized (project: %s, bucket: %s)", projectID, bucketName)
	return result, nil
}

// Auth はFirebase Authクライアントを返す
func (a *App) Auth() *auth.Client {
	return a.auth
}

// Bucket はStorageバケットを返す（未設定の場合はnil）
func (a *App) Bucket() *gcs.BucketHandle {
	return a.bucket
}

// BucketName はStorageバケット名を返す
func (a *App) BucketName() string {
	return a.bucketName
}
