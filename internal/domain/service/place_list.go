package service

import (
	"strings"

	"roterize/internal/domain/model"
)

// MinPlacesForRoute はルート生成に必要な最小の場所数
const MinPlacesForRoute = 2

// PlaceList は訪問順に並んだ重複なしの場所リスト
type PlaceList struct {
	places []string
	// onInvalidate は場所数がMinPlacesForRoute未満になったときに呼ばれる
	onInvalidate func()
}

// NewPlaceList は新しいPlaceListインスタンスを作成
func NewPlaceList(onInvalidate func()) *PlaceList {
	return &PlaceList{
		places:       []string{},
		onInvalidate: onInvalidate,
	}
}

// Add は入力をトリムして末尾に追加する
// 空文字列と既存の場所と完全一致するものは拒否する
func (l *PlaceList) Add(raw string) error {
	place := strings.TrimSpace(raw)
	if place == "" {
		return model.NewValidationError("place", "場所を入力してください")
	}
	if l.Contains(place) {
		return model.NewValidationError("place", "この場所は既に追加されています: "+place)
	}
	l.places = append(l.places, place)
	return nil
}

// Remove は指定位置の場所を削除する。範囲外の場合は何もしない
// 削除したかどうかを返す
func (l *PlaceList) Remove(index int) bool {
	if index < 0 || index >= len(l.places) {
		return false
	}
	next := make([]string, 0, len(l.places)-1)
	next = append(next, l.places[:index]...)
	next = append(next, l.places[index+1:]...)
	l.places = next

	if len(l.places) < MinPlacesForRoute && l.onInvalidate != nil {
		l.onInvalidate()
	}
	return true
}

// Replace はリスト全体を置き換える（保存済みルートの読み込み用）
// 空要素と重複は取り除く
func (l *PlaceList) Replace(places []string) {
	l.places = []string{}
	for _, p := range places {
		_ = l.Add(p)
	}
	if len(l.places) < MinPlacesForRoute && l.onInvalidate != nil {
		l.onInvalidate()
	}
}

// Clear は全ての場所を削除する
func (l *PlaceList) Clear() {
	l.Replace(nil)
}

// Contains は場所が既に含まれているかどうかを判定する
func (l *PlaceList) Contains(place string) bool {
	for _, p := range l.places {
		if p == place {
			return true
		}
	}
	return false
}

// Places は場所リストのコピーを返す
func (l *PlaceList) Places() []string {
	out := make([]string, len(l.places))
	copy(out, l.places)
	return out
}

func (l *PlaceList) Len() int {
	return len(l.places)
}
