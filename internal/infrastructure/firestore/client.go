package firestore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// FirestoreClient はルートとチップを保存するFirestoreクライアント
type FirestoreClient struct {
	client    *firestore.Client
	projectID string
}

// NewFirestoreClient はFirestoreクライアントを作成する
// 認証情報ファイルが指定されていないか見つからない場合はデフォルト認証（Cloud Run等）を使用する
func NewFirestoreClient(ctx context.Context, projectID, credentialsFile string) (*FirestoreClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_ID環境変数が設定されていません")
	}

	opts := credentialOptions(credentialsFile)
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの作成に失敗: %w", err)
	}

	logrus.Infof("✅ Firestore client initialized for project: %s", projectID)
	return &FirestoreClient{client: client, projectID: projectID}, nil
}

func credentialOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		logrus.Infof("☁️ デフォルト認証を使用")
		return nil
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		logrus.Warnf("⚠️ 認証情報ファイルが見つかりません: %s（デフォルト認証を使用）", credentialsFile)
		return nil
	}
	logrus.Infof("📄 認証情報ファイルを使用: %s", credentialsFile)
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}

// HealthCheck はcollectionから1件読み出せるかを確認する（空のコレクションも正常とする）
func (fc *FirestoreClient) HealthCheck(collection string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		iter := fc.client.Collection(collection).Limit(1).Documents(ctx)
		defer iter.Stop()
		if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
			return fmt.Errorf("Firestore(%s/%s)への問い合わせに失敗: %w", fc.projectID, collection, err)
		}
		return nil
	}
}
