package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roterize/internal/domain/model"
)

func TestPlaceList(t *testing.T) {
	t.Run("トリムして末尾に追加", func(t *testing.T) {
		list := NewPlaceList(nil)
		require.NoError(t, list.Add("  Cristo Redentor "))
		require.NoError(t, list.Add("Copacabana"))
		assert.Equal(t, []string{"Cristo Redentor", "Copacabana"}, list.Places())
	})

	t.Run("空文字と重複は拒否", func(t *testing.T) {
		list := NewPlaceList(nil)
		require.NoError(t, list.Add("Lapa"))

		err := list.Add("   ")
		assert.True(t, model.IsValidationError(err))
		err = list.Add(" Lapa")
		assert.True(t, model.IsValidationError(err))
		assert.Equal(t, 1, list.Len())
	})

	t.Run("大文字小文字が違えば別の場所", func(t *testing.T) {
		list := NewPlaceList(nil)
		require.NoError(t, list.Add("lapa"))
		require.NoError(t, list.Add("Lapa"))
		assert.Equal(t, 2, list.Len())
	})

	t.Run("範囲外の削除は何もしない", func(t *testing.T) {
		list := NewPlaceList(nil)
		require.NoError(t, list.Add("A"))
		assert.False(t, list.Remove(-1))
		assert.False(t, list.Remove(1))
		assert.Equal(t, []string{"A"}, list.Places())
	})

	t.Run("2件未満になったら無効化を通知", func(t *testing.T) {
		invalidated := 0
		list := NewPlaceList(func() { invalidated++ })
		for _, p := range []string{"A", "B", "C"} {
			require.NoError(t, list.Add(p))
		}

		assert.True(t, list.Remove(1))
		assert.Equal(t, []string{"A", "C"}, list.Places())
		assert.Equal(t, 0, invalidated)

		assert.True(t, list.Remove(0))
		assert.Equal(t, 1, invalidated)
	})

	t.Run("Replaceは空要素と重複を取り除く", func(t *testing.T) {
		list := NewPlaceList(nil)
		list.Replace([]string{"A", "", "B", "A", " C "})
		assert.Equal(t, []string{"A", "B", "C"}, list.Places())
	})

	t.Run("Placesはコピーを返す", func(t *testing.T) {
		list := NewPlaceList(nil)
		require.NoError(t, list.Add("A"))
		places := list.Places()
		places[0] = "changed"
		assert.Equal(t, []string{"A"}, list.Places())
	})
}
