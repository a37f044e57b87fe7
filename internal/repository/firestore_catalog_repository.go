package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"

	"roterize/internal/domain/model"
)

// CatalogCollection は場所カタログのコレクション名
const CatalogCollection = "places"

// FirestoreCatalogRepository Firestoreを使用した場所カタログのリポジトリ
type FirestoreCatalogRepository struct {
	client *firestore.Client
}

func NewFirestoreCatalogRepository(client *firestore.Client) *FirestoreCatalogRepository {
	return &FirestoreCatalogRepository{client: client}
}

func (r *FirestoreCatalogRepository) Create(ctx context.Context, place *model.CatalogPlace) (string, error) {
	ref, _, err := r.client.Collection(CatalogCollection).Add(ctx, place.ToFirestoreCatalogPlace())
	if err != nil {
		return "", classifyGRPCError(model.ProviderFirestore, "場所の保存", err, nil)
	}
	logrus.Infof("✅ Catalog place created: %s (%s)", ref.ID, place.Name)
	return ref.ID, nil
}

// ListByCategory はcategory+averageRatingの複合インデックスを使う
func (r *FirestoreCatalogRepository) ListByCategory(ctx context.Context, category string, limit int) ([]*model.CatalogPlace, error) {
	iter := r.client.Collection(CatalogCollection).
		Where("category", "==", category).
		OrderBy("averageRating", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	places := make([]*model.CatalogPlace, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyGRPCError(model.ProviderFirestore, "場所一覧の取得", err, nil)
		}
		var data model.FirestoreCatalogPlace
		if err := doc.DataTo(&data); err != nil {
			logrus.Warnf("⚠️ 場所 %s の変換に失敗したためスキップします: %v", doc.Ref.ID, err)
			continue
		}
		places = append(places, data.ToCatalogPlace(doc.Ref.ID))
	}
	return places, nil
}
