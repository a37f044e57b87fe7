package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"

	"roterize/internal/domain/model"
)

const tipsCollection = "tips"

// FirestoreTipRepository Firestoreを使用したチップのリポジトリ
type FirestoreTipRepository struct {
	client *firestore.Client
}

// NewFirestoreTipRepository 新しいFirestoreTipRepositoryインスタンスを作成
func NewFirestoreTipRepository(client *firestore.Client) *FirestoreTipRepository {
	return &FirestoreTipRepository{client: client}
}

func (r *FirestoreTipRepository) Create(ctx context.Context, tip *model.Tip) (string, error) {
	ref, _, err := r.client.Collection(tipsCollection).Add(ctx, tip.ToFirestoreTip())
	if err != nil {
		return "", classifyGRPCError(model.ProviderFirestore, "チップの保存", err, nil)
	}
	logrus.Infof("✅ Tip created: %s (%s)", ref.ID, tip.PlaceName)
	return ref.ID, nil
}

func (r *FirestoreTipRepository) ListByCategory(ctx context.Context, category string, limit int) ([]*model.Tip, error) {
	query := r.client.Collection(tipsCollection).Query
	if category != "" && category != model.TipCategoryAll {
		query = query.Where("category", "==", category)
	}
	query = query.OrderBy("createdAt", firestore.Desc).Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	tips := make([]*model.Tip, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyGRPCError(model.ProviderFirestore, "チップ一覧の取得", err, nil)
		}
		var data model.FirestoreTip
		if err := doc.DataTo(&data); err != nil {
			logrus.Warnf("⚠️ チップ %s の変換に失敗したためスキップします: %v", doc.Ref.ID, err)
			continue
		}
		tips = append(tips, data.ToTip(doc.Ref.ID))
	}
	return tips, nil
}
