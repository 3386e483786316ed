package geo

import (
	"math"
	"testing"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
)

func TestDistanceMetersIdenticalPoints(t *testing.T) {
	p := domain.GeoPoint{Lat: 14.6532, Lng: 121.0689}
	if d := DistanceMeters(p, p); d != 0 {
		t.Errorf("expected 0 for identical points, got %f", d)
	}
}

func TestDistanceMetersKnownPairs(t *testing.T) {
	tests := []struct {
		name      string
		a, b      domain.GeoPoint
		want      float64 // meters
		tolerance float64
	}{
		{
			// UP Diliman to Rizal Park, roughly 12.5 km.
			name:      "up diliman to rizal park",
			a:         domain.GeoPoint{Lat: 14.6532, Lng: 121.0689},
			b:         domain.GeoPoint{Lat: 14.5832, Lng: 120.9794},
			want:      12400,
			tolerance: 500,
		},
		{
			// One degree of latitude is about 111.19 km on a 6371 km sphere.
			name:      "one degree latitude",
			a:         domain.GeoPoint{Lat: 0, Lng: 0},
			b:         domain.GeoPoint{Lat: 1, Lng: 0},
			want:      111195,
			tolerance: 50,
		},
		{
			name:      "antipodal points",
			a:         domain.GeoPoint{Lat: 0, Lng: 0},
			b:         domain.GeoPoint{Lat: 0, Lng: 180},
			want:      math.Pi * 6371000,
			tolerance: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("DistanceMeters() = %f, want %f +/- %f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestDistanceMetersSymmetry(t *testing.T) {
	a := domain.GeoPoint{Lat: 14.5547, Lng: 121.0244}
	b := domain.GeoPoint{Lat: 14.6506, Lng: 121.0497}
	if d1, d2 := DistanceMeters(a, b), DistanceMeters(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestWithinRadiusBoundary(t *testing.T) {
	center := domain.GeoPoint{Lat: 14.6532, Lng: 121.0689}

	if !WithinRadius(center, center, 0) {
		t.Error("center must be inside its own zone even with zero radius")
	}

	// Walk due north until we sit just inside, exactly on, and just outside
	// a 500m boundary. 1 degree latitude ~= 111195m.
	const metersPerDegreeLat = 111195.0
	onBoundary := domain.GeoPoint{Lat: center.Lat + 500/metersPerDegreeLat, Lng: center.Lng}
	d := DistanceMeters(onBoundary, center)

	if !WithinRadius(onBoundary, center, d) {
		t.Error("point exactly on the boundary must be inside (inclusive)")
	}
	if WithinRadius(onBoundary, center, d-0.5) {
		t.Error("point past the boundary must be outside")
	}
}
