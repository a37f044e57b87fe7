package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
)

// DefaultSessionTTL は操作のないセッションを破棄するまでの時間
const DefaultSessionTTL = 30 * time.Minute

// SessionStore はメモリ上で編集セッションを管理する
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*EditingSession
	deps     SessionDeps
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore は新しいSessionStoreインスタンスを作成
func NewSessionStore(deps SessionDeps, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*EditingSession),
		deps:     deps,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create はユーザーの新しい編集セッションを作成する
func (st *SessionStore) Create(ownerID string) (*EditingSession, error) {
	if ownerID == "" {
		return nil, model.ErrUnauthorized
	}
	session := NewEditingSession(uuid.New().String(), ownerID, st.deps)

	st.mu.Lock()
	st.sessions[session.ID()] = session
	st.mu.Unlock()

	logrus.Infof("🆕 編集セッションを作成しました (session: %s, user: %s)", session.ID(), ownerID)
	return session, nil
}

// Get はセッションを取得する。所有者以外はアクセスできない
func (st *SessionStore) Get(id, ownerID string) (*EditingSession, error) {
	st.mu.RLock()
	session, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	if session.OwnerID() != ownerID {
		return nil, model.ErrForbidden
	}
	return session, nil
}

// Remove はセッションを破棄する
func (st *SessionStore) Remove(id string) {
	st.mu.Lock()
	session, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		session.Close()
	}
}

// ItineraryDeleted は削除されたルートを読み込んでいる所有者のセッションを初期化する
func (st *SessionStore) ItineraryDeleted(ownerID, itineraryID string) int {
	reset := 0
	for _, session := range st.ownedBy(ownerID) {
		if session.ItineraryDeleted(itineraryID) {
			reset++
		}
	}
	return reset
}

func (st *SessionStore) ownedBy(ownerID string) []*EditingSession {
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []*EditingSession
	for _, session := range st.sessions {
		if session.OwnerID() == ownerID {
			out = append(out, session)
		}
	}
	return out
}

// Count は保持しているセッション数を返す
func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// EvictIdle はTTLを過ぎたセッションを破棄し、破棄した数を返す
func (st *SessionStore) EvictIdle() int {
	deadline := st.now().Add(-st.ttl)

	var expired []*EditingSession
	st.mu.Lock()
	for id, session := range st.sessions {
		if session.LastActive().Before(deadline) {
			expired = append(expired, session)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, session := range expired {
		session.Close()
	}
	if len(expired) > 0 {
		logrus.Infof("🧹 期限切れの編集セッションを%d件破棄しました", len(expired))
	}
	return len(expired)
}

// RunJanitor はctxがキャンセルされるまで定期的にEvictIdleを実行する
func (st *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.EvictIdle()
		}
	}
}
