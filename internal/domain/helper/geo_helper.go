package helper

import (
	"github.com/paulmach/orb"

	"roterize/internal/domain/model"
)

// LatLngToPoint は緯度経度をorb.Pointに変換する（orbは[lng, lat]の順）
func LatLngToPoint(ll model.LatLng) orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}

// PointToLatLng はorb.Pointを緯度経度に変換する
func PointToLatLng(p orb.Point) model.LatLng {
	return model.LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// MapFitFromLegs は全区間の出発・到着座標を含む境界ボックスと中心点を計算する
// 区間がない場合はnilを返す
func MapFitFromLegs(legs []model.RouteLeg) *model.MapFit {
	if len(legs) == 0 {
		return nil
	}

	points := make(orb.MultiPoint, 0, len(legs)*2)
	for _, leg := range legs {
		points = append(points, LatLngToPoint(leg.StartLocation), LatLngToPoint(leg.EndLocation))
	}

	bound := points.Bound()
	return &model.MapFit{
		Bounds: model.Bounds{
			SouthWest: PointToLatLng(bound.Min),
			NorthEast: PointToLatLng(bound.Max),
		},
		Center: PointToLatLng(bound.Center()),
	}
}
