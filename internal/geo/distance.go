// Package geo provides the great-circle math used for geofence containment.
package geo

import (
	"math"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371.0 * 1000

// DistanceMeters returns the haversine (great-circle) distance between two
// WGS84 points in meters. Pure and total: identical points yield 0, antipodal
// points roughly half the Earth's circumference.
func DistanceMeters(a, b domain.GeoPoint) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*sinLng*sinLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// WithinRadius reports whether point is inside the circle around center.
// The boundary is inclusive: a point exactly radiusMeters away is inside.
func WithinRadius(point, center domain.GeoPoint, radiusMeters float64) bool {
	return DistanceMeters(point, center) <= radiusMeters
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
