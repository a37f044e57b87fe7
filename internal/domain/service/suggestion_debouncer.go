package service

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"roterize/internal/domain/model"
	"roterize/internal/domain/repository"
)

const (
	DefaultSuggestionWindow   = 300 * time.Millisecond
	DefaultSuggestionMinChars = 2
	defaultSuggestionTimeout  = 5 * time.Second
)

// Timer は停止可能なタイマー（*time.Timerが実装する）
type Timer interface {
	Stop() bool
}

// AfterFunc はd経過後にfを別のgoroutineで実行する。テストでは差し替える
type AfterFunc func(d time.Duration, f func()) Timer

// RealAfterFunc はtime.AfterFuncを使ったAfterFunc
func RealAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// DebouncerConfig は入力補完の間引き設定
// MinCharsは画面ごとに2または3を明示的に指定する
type DebouncerConfig struct {
	Window   time.Duration
	MinChars int
	Types    []string
	Timeout  time.Duration
}

// SuggestionDebouncer は入力中の補完問い合わせを間引く
// 最後の入力から Window の間入力がなければ1回だけ問い合わせ、
// それより古い入力に対する結果は完了時に破棄する（last-write-wins）
type SuggestionDebouncer struct {
	mu        sync.Mutex
	cfg       DebouncerConfig
	provider  repository.AutocompleteProvider
	afterFunc AfterFunc
	// onResult は最新の入力に対する結果のみで呼ばれる。nilは候補のクリアを意味する
	// デバウンサのロックを保持したまま呼ばれるため、呼び出し側はロック中にデバウンサを呼ばないこと
	onResult func(items []model.SuggestionItem)
	seq      uint64
	timer    Timer
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewSuggestionDebouncer は新しいSuggestionDebouncerインスタンスを作成
func NewSuggestionDebouncer(cfg DebouncerConfig, provider repository.AutocompleteProvider, onResult func(items []model.SuggestionItem)) *SuggestionDebouncer {
	if cfg.Window <= 0 {
		cfg.Window = DefaultSuggestionWindow
	}
	if cfg.MinChars <= 0 {
		cfg.MinChars = DefaultSuggestionMinChars
	}
	if len(cfg.Types) == 0 {
		cfg.Types = model.DefaultAutocompleteTypes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSuggestionTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SuggestionDebouncer{
		cfg:       cfg,
		provider:  provider,
		afterFunc: RealAfterFunc,
		onResult:  onResult,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// WithAfterFunc はタイマーの実装を差し替える
func (d *SuggestionDebouncer) WithAfterFunc(fn AfterFunc) *SuggestionDebouncer {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.afterFunc = fn
	return d
}

// Input は入力欄の変更イベントを受け取る
func (d *SuggestionDebouncer) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	d.stopTimerLocked()

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < d.cfg.MinChars {
		d.deliverLocked(seq, nil)
		return
	}

	d.timer = d.afterFunc(d.cfg.Window, func() {
		d.fire(seq, trimmed)
	})
}

// Cancel は待機中・実行中の問い合わせを無効にする（候補選択時など）
func (d *SuggestionDebouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.stopTimerLocked()
}

// Close はデバウンサを停止し、実行中の問い合わせをキャンセルする
func (d *SuggestionDebouncer) Close() {
	d.Cancel()
	d.cancel()
}

func (d *SuggestionDebouncer) fire(seq uint64, text string) {
	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	items := d.query(text)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.deliverLocked(seq, items)
}

// query はプロバイダに問い合わせる。失敗時・準備未完了時は候補なし（リトライしない）
func (d *SuggestionDebouncer) query(text string) []model.SuggestionItem {
	if d.provider == nil {
		logrus.Warnf("⚠️ 補完プロバイダが未設定のため候補をクリアします: %v", model.ErrNotReady)
		return nil
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.cfg.Timeout)
	defer cancel()

	result, err := d.provider.Predict(ctx, text, d.cfg.Types)
	if err != nil {
		logrus.Warnf("❌ 補完候補の取得に失敗: %v", err)
		return nil
	}
	if result == nil || result.Status != "OK" {
		if result != nil && result.Status != "ZERO_RESULTS" {
			logrus.Warnf("⚠️ 補完APIのステータス: %s %s", result.Status, result.ErrorMessage)
		}
		return nil
	}

	items := result.Predictions
	if len(items) > model.MaxSuggestions {
		items = items[:model.MaxSuggestions]
	}
	return items
}

func (d *SuggestionDebouncer) deliverLocked(seq uint64, items []model.SuggestionItem) {
	if seq != d.seq {
		logrus.Debugf("🗑️ 古い入力に対する補完結果を破棄 (seq=%d, latest=%d)", seq, d.seq)
		return
	}
	if d.onResult != nil {
		d.onResult(items)
	}
}

func (d *SuggestionDebouncer) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
