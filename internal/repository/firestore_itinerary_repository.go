package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"

	"roterize/internal/domain/model"
)

const ItinerariesCollection = "routes"

// FirestoreItineraryRepository Firestoreを使用した保存済みルートのリポジトリ
type FirestoreItineraryRepository struct {
	client *firestore.Client
}

// NewFirestoreItineraryRepository 新しいFirestoreItineraryRepositoryインスタンスを作成
func NewFirestoreItineraryRepository(client *firestore.Client) *FirestoreItineraryRepository {
	return &FirestoreItineraryRepository{
		client: client,
	}
}

// Create はルートを新しいドキュメントとして保存し、採番されたIDを返す
func (r *FirestoreItineraryRepository) Create(ctx context.Context, itinerary *model.Itinerary) (string, error) {
	ref, _, err := r.client.Collection(ItinerariesCollection).Add(ctx, itinerary.ToFirestoreItinerary())
	if err != nil {
		logrus.Errorf("❌ Failed to create itinerary: %v", err)
		return "", classifyGRPCError(model.ProviderFirestore, "ルートの保存", err, nil)
	}

	logrus.Infof("✅ Itinerary created: %s", ref.ID)
	return ref.ID, nil
}

// Update は既存のルートの内容を更新する（作成日時・公開設定・いいね数は変更しない）
func (r *FirestoreItineraryRepository) Update(ctx context.Context, itinerary *model.Itinerary) error {
	data := itinerary.ToFirestoreItinerary()
	updates := []firestore.Update{
		{Path: "name", Value: data.Name},
		{Path: "places", Value: data.Places},
		{Path: "travelMode", Value: data.TravelMode},
		{Path: "legs", Value: data.Legs},
		{Path: "totalDistance", Value: data.TotalDistance},
		{Path: "totalDuration", Value: data.TotalDuration},
		{Path: "totalDistanceMeters", Value: data.TotalDistanceMeters},
		{Path: "totalDurationSeconds", Value: data.TotalDurationSeconds},
		{Path: "updatedAt", Value: data.UpdatedAt},
	}

	_, err := r.client.Collection(ItinerariesCollection).Doc(itinerary.ID).Update(ctx, updates)
	if err != nil {
		return classifyGRPCError(model.ProviderFirestore, "ルートの更新", err, model.ErrItineraryNotFound)
	}

	logrus.Infof("✅ Itinerary updated: %s", itinerary.ID)
	return nil
}

// Delete はルートを削除する
func (r *FirestoreItineraryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(ItinerariesCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		return classifyGRPCError(model.ProviderFirestore, "ルートの削除", err, model.ErrItineraryNotFound)
	}
	return nil
}

// GetByID は指定されたIDのルートを取得する
func (r *FirestoreItineraryRepository) GetByID(ctx context.Context, id string) (*model.Itinerary, error) {
	doc, err := r.client.Collection(ItinerariesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, classifyGRPCError(model.ProviderFirestore, "ルートの取得", err, model.ErrItineraryNotFound)
	}

	var data model.FirestoreItinerary
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	return data.ToItinerary(doc.Ref.ID), nil
}

// ListByOwner は所有者のルートを作成日時の降順で取得する
func (r *FirestoreItineraryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Itinerary, error) {
	query := r.client.Collection(ItinerariesCollection).
		Where("userId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query, "ルート一覧の取得")
}

// ListPublic は公開されているルートを新しい順に取得する
func (r *FirestoreItineraryRepository) ListPublic(ctx context.Context, limit int) ([]*model.Itinerary, error) {
	query := r.client.Collection(ItinerariesCollection).
		Where("isPublic", "==", true).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return r.collect(ctx, query, "公開ルートの取得")
}

// SetVisibility はルートの公開設定を変更する
func (r *FirestoreItineraryRepository) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	_, err := r.client.Collection(ItinerariesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "isPublic", Value: isPublic},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return classifyGRPCError(model.ProviderFirestore, "公開設定の変更", err, model.ErrItineraryNotFound)
	}
	return nil
}

func (r *FirestoreItineraryRepository) collect(ctx context.Context, query firestore.Query, action string) ([]*model.Itinerary, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	itineraries := make([]*model.Itinerary, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyGRPCError(model.ProviderFirestore, action, err, nil)
		}

		var data model.FirestoreItinerary
		if err := doc.DataTo(&data); err != nil {
			logrus.Warnf("⚠️ ドキュメント %s の変換に失敗したためスキップします: %v", doc.Ref.ID, err)
			continue
		}
		itineraries = append(itineraries, data.ToItinerary(doc.Ref.ID))
	}
	return itineraries, nil
}
