package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/supabase-community/supabase-go"
)

// SupabaseClient はチップ保存先として使うSupabaseクライアント
type SupabaseClient struct {
	client     *supabase.Client
	url        string
	healthTable string
}

// NewSupabaseClient は新しいSupabaseClientインスタンスを作成
// healthTable はヘルスチェックで1行だけ読むテーブル名
func NewSupabaseClient(supabaseURL, supabaseAnonKey, healthTable string) (*SupabaseClient, error) {
	if strings.TrimSpace(supabaseURL) == "" {
		return nil, fmt.Errorf("SUPABASE_URL環境変数が設定されていません")
	}
	if strings.TrimSpace(supabaseAnonKey) == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY環境変数が設定されていません")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseAnonKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("Supabaseクライアントの初期化に失敗: %w", err)
	}

	logrus.Infof("✅ Supabase client initialized (%s, table=%s)", supabaseURL, healthTable)
	return &SupabaseClient{client: client, url: supabaseURL, healthTable: healthTable}, nil
}

// GetClient はSupabaseクライアントを取得
func (sc *SupabaseClient) GetClient() *supabase.Client {
	return sc.client
}

// HealthCheck はhealthTableから1行読み出せるかを確認
func (sc *SupabaseClient) HealthCheck(ctx context.Context) error {
	if sc.client == nil {
		return fmt.Errorf("Supabaseクライアントが初期化されていません")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := sc.client.From(sc.healthTable).Select("id", "", false).Limit(1, "").Execute(); err != nil {
		return fmt.Errorf("Supabase(%s)への問い合わせに失敗: %w", sc.url, err)
	}
	return nil
}
