package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirestoreItineraryFields(t *testing.T) {
	t.Run("既存クライアントと同じフィールド名で保存する", func(t *testing.T) {
		typ := reflect.TypeOf(FirestoreItinerary{})
		expected := map[string]string{
			"OwnerID":    "userId",
			"Name":       "name",
			"Places":     "places",
			"TravelMode": "travelMode",
			"IsPublic":   "isPublic",
			"Likes":      "likes",
			"Views":      "views",
			"CreatedAt":  "createdAt",
		}
		for field, tag := range expected {
			f, ok := typ.FieldByName(field)
			if assert.True(t, ok, field) {
				assert.Equal(t, tag, f.Tag.Get("firestore"), field)
			}
		}
	})

	t.Run("所有者を往復で保持する", func(t *testing.T) {
		it := &Itinerary{OwnerID: "user-1", Name: "Rio", Places: []string{"A", "B"}, TravelMode: TravelModeWalking}
		back := it.ToFirestoreItinerary().ToItinerary("doc-1")
		assert.Equal(t, "user-1", back.OwnerID)
		assert.Equal(t, "doc-1", back.ID)
		assert.Equal(t, TravelModeWalking, back.TravelMode)
	})

	t.Run("不明な移動手段は既定値に戻す", func(t *testing.T) {
		f := &FirestoreItinerary{TravelMode: "BICYCLING"}
		assert.Equal(t, DefaultTravelMode, f.ToItinerary("x").TravelMode)
	})
}
