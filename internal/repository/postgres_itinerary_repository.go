package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
	"roterize/internal/infrastructure/database"
)

const itinerarySchema = `
CREATE TABLE IF NOT EXISTS itineraries (
	id                     UUID PRIMARY KEY,
	owner_id               TEXT NOT NULL,
	name                   TEXT NOT NULL,
	places                 TEXT[] NOT NULL,
	travel_mode            TEXT NOT NULL,
	legs                   JSONB NOT NULL DEFAULT '[]',
	total_distance         DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_duration         INTEGER NOT NULL DEFAULT 0,
	total_distance_meters  INTEGER NOT NULL DEFAULT 0,
	total_duration_seconds INTEGER NOT NULL DEFAULT 0,
	is_public              BOOLEAN NOT NULL DEFAULT FALSE,
	likes                  INTEGER NOT NULL DEFAULT 0,
	views                  INTEGER NOT NULL DEFAULT 0,
	created_at             TIMESTAMPTZ NOT NULL,
	updated_at             TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_itineraries_owner_created ON itineraries (owner_id, created_at DESC);
`

const itineraryColumns = `id, owner_id, name, places, travel_mode, legs, total_distance, total_duration,
	total_distance_meters, total_duration_seconds, is_public, likes, views, created_at, updated_at`

// itineraryRow はitinerariesテーブルの1行
type itineraryRow struct {
	ID                   string         `db:"id"`
	OwnerID              string         `db:"owner_id"`
	Name                 string         `db:"name"`
	Places               pq.StringArray `db:"places"`
	TravelMode           string         `db:"travel_mode"`
	Legs                 []byte         `db:"legs"`
	TotalDistance        float64        `db:"total_distance"`
	TotalDuration        int            `db:"total_duration"`
	TotalDistanceMeters  int            `db:"total_distance_meters"`
	TotalDurationSeconds int            `db:"total_duration_seconds"`
	IsPublic             bool           `db:"is_public"`
	Likes                int            `db:"likes"`
	Views                int            `db:"views"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

func itineraryToRow(id string, it *model.Itinerary) (*itineraryRow, error) {
	legs, err := json.Marshal(it.Legs)
	if err != nil {
		return nil, fmt.Errorf("区間データのJSONマーシャル失敗: %w", err)
	}
	return &itineraryRow{
		ID:                   id,
		OwnerID:              it.OwnerID,
		Name:                 it.Name,
		Places:               pq.StringArray(it.Places),
		TravelMode:           string(it.TravelMode),
		Legs:                 legs,
		TotalDistance:        it.TotalDistance,
		TotalDuration:        it.TotalDuration,
		TotalDistanceMeters:  it.TotalDistanceMeters,
		TotalDurationSeconds: it.TotalDurationSeconds,
		IsPublic:             it.IsPublic,
		Likes:                it.Likes,
		Views:                it.Views,
		CreatedAt:            it.CreatedAt,
		UpdatedAt:            it.UpdatedAt,
	}, nil
}

func (row *itineraryRow) toModel() (*model.Itinerary, error) {
	mode, ok := model.ParseTravelMode(row.TravelMode)
	if !ok {
		mode = model.DefaultTravelMode
	}
	it := &model.Itinerary{
		ID:                   row.ID,
		OwnerID:              row.OwnerID,
		Name:                 row.Name,
		Places:               []string(row.Places),
		TravelMode:           mode,
		TotalDistance:        row.TotalDistance,
		TotalDuration:        row.TotalDuration,
		TotalDistanceMeters:  row.TotalDistanceMeters,
		TotalDurationSeconds: row.TotalDurationSeconds,
		IsPublic:             row.IsPublic,
		Likes:                row.Likes,
		Views:                row.Views,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
	if len(row.Legs) > 0 {
		if err := json.Unmarshal(row.Legs, &it.Legs); err != nil {
			return nil, fmt.Errorf("区間データのJSONアンマーシャル失敗: %w", err)
		}
	}
	return it, nil
}

// PostgresItineraryRepository PostgreSQLを使用した保存済みルートのリポジトリ
type PostgresItineraryRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresItineraryRepository 新しいPostgresItineraryRepositoryインスタンスを作成
func NewPostgresItineraryRepository(client *database.PostgreSQLClient) *PostgresItineraryRepository {
	return &PostgresItineraryRepository{client: client}
}

// EnsureSchema はテーブルが存在しなければ作成する
func (r *PostgresItineraryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.client.DB.ExecContext(ctx, itinerarySchema); err != nil {
		return postgresError("テーブルの作成", err)
	}
	logrus.Infof("✅ itinerariesテーブルを確認しました")
	return nil
}

func (r *PostgresItineraryRepository) Create(ctx context.Context, itinerary *model.Itinerary) (string, error) {
	id := uuid.New().String()
	row, err := itineraryToRow(id, itinerary)
	if err != nil {
		return "", err
	}

	query := `INSERT INTO itineraries (` + itineraryColumns + `)
		VALUES (:id, :owner_id, :name, :places, :travel_mode, :legs, :total_distance, :total_duration,
		:total_distance_meters, :total_duration_seconds, :is_public, :likes, :views, :created_at, :updated_at)`
	if _, err := r.client.DB.NamedExecContext(ctx, query, row); err != nil {
		return "", postgresError("ルートの保存", err)
	}

	logrus.Infof("✅ Itinerary created: %s", id)
	return id, nil
}

func (r *PostgresItineraryRepository) Update(ctx context.Context, itinerary *model.Itinerary) error {
	if !isUUID(itinerary.ID) {
		return model.ErrItineraryNotFound
	}
	row, err := itineraryToRow(itinerary.ID, itinerary)
	if err != nil {
		return err
	}

	query := `UPDATE itineraries SET name = :name, places = :places, travel_mode = :travel_mode, legs = :legs,
		total_distance = :total_distance, total_duration = :total_duration,
		total_distance_meters = :total_distance_meters, total_duration_seconds = :total_duration_seconds,
		updated_at = :updated_at
		WHERE id = :id`
	res, err := r.client.DB.NamedExecContext(ctx, query, row)
	if err != nil {
		return postgresError("ルートの更新", err)
	}
	return requireAffected(res)
}

func (r *PostgresItineraryRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return model.ErrItineraryNotFound
	}
	res, err := r.client.DB.ExecContext(ctx, `DELETE FROM itineraries WHERE id = $1`, id)
	if err != nil {
		return postgresError("ルートの削除", err)
	}
	return requireAffected(res)
}

func (r *PostgresItineraryRepository) GetByID(ctx context.Context, id string) (*model.Itinerary, error) {
	if !isUUID(id) {
		return nil, model.ErrItineraryNotFound
	}
	var row itineraryRow
	err := r.client.DB.GetContext(ctx, &row, `SELECT `+itineraryColumns+` FROM itineraries WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrItineraryNotFound
	}
	if err != nil {
		return nil, postgresError("ルートの取得", err)
	}
	return row.toModel()
}

func (r *PostgresItineraryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Itinerary, error) {
	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, "ルート一覧の取得", query, ownerID)
}

func (r *PostgresItineraryRepository) ListPublic(ctx context.Context, limit int) ([]*model.Itinerary, error) {
	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE is_public ORDER BY created_at DESC LIMIT $1`
	return r.list(ctx, "公開ルートの取得", query, limit)
}

func (r *PostgresItineraryRepository) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	if !isUUID(id) {
		return model.ErrItineraryNotFound
	}
	res, err := r.client.DB.ExecContext(ctx,
		`UPDATE itineraries SET is_public = $2, updated_at = $3 WHERE id = $1`, id, isPublic, time.Now())
	if err != nil {
		return postgresError("公開設定の変更", err)
	}
	return requireAffected(res)
}

func (r *PostgresItineraryRepository) list(ctx context.Context, action, query string, args ...interface{}) ([]*model.Itinerary, error) {
	var rows []itineraryRow
	if err := r.client.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, postgresError(action, err)
	}

	itineraries := make([]*model.Itinerary, 0, len(rows))
	for i := range rows {
		it, err := rows[i].toModel()
		if err != nil {
			return nil, postgresError(action, err)
		}
		itineraries = append(itineraries, it)
	}
	return itineraries, nil
}

// isUUID はuuid型の列に渡せるIDかどうかを判定する
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return postgresError("更新件数の取得", err)
	}
	if n == 0 {
		return model.ErrItineraryNotFound
	}
	return nil
}

// postgresError はpq.ErrorのSQLSTATEをコードとしてProviderErrorに変換する
func postgresError(action string, err error) error {
	pe := &model.ProviderError{
		Provider: model.ProviderPostgres,
		Category: model.CategoryUnknown,
		Message:  fmt.Sprintf("%sに失敗: %v", action, err),
		Err:      err,
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		pe.Code = string(pqErr.Code)
		pe.Message = fmt.Sprintf("%sに失敗: %s", action, pqErr.Message)
		if pqErr.Code.Class() == "53" {
			pe.Category = model.CategoryQuotaExceeded
		}
	}
	return pe
}
