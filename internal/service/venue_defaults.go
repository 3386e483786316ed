package service

import "github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"

// BuiltinVenues returns the built-in venue list, popular fitness locations
// around Metro Manila. It backs venue matching whenever the venue collection
// is empty or unreachable, and seeds the collection on first startup.
// Sequence order is load-bearing: first-match resolution walks it top down.
func BuiltinVenues() []domain.Venue {
	return []domain.Venue{
		{
			ID:           "up-diliman",
			Name:         "UP Diliman",
			Description:  "University of the Philippines Diliman campus - popular for running and cycling",
			Center:       domain.GeoPoint{Lat: 14.6532, Lng: 121.0689},
			RadiusMeters: 2000,
			Category:     domain.VenueUniversity,
			City:         "Quezon City",
			Sequence:     1,
		},
		{
			ID:           "bgc",
			Name:         "Bonifacio Global City",
			Description:  "BGC - Modern business district with parks and running paths",
			Center:       domain.GeoPoint{Lat: 14.5547, Lng: 121.0244},
			RadiusMeters: 1500,
			Category:     domain.VenueCommercial,
			City:         "Taguig",
			Sequence:     2,
		},
		{
			ID:           "rizal-park",
			Name:         "Rizal Park",
			Description:  "Luneta Park - Historic park in Manila, great for walking and running",
			Center:       domain.GeoPoint{Lat: 14.5832, Lng: 120.9794},
			RadiusMeters: 1000,
			Category:     domain.VenuePark,
			City:         "Manila",
			Sequence:     3,
		},
		{
			ID:           "ayala-triangle",
			Name:         "Ayala Triangle Gardens",
			Description:  "Urban park in Makati with jogging paths",
			Center:       domain.GeoPoint{Lat: 14.5564, Lng: 121.0236},
			RadiusMeters: 500,
			Category:     domain.VenuePark,
			City:         "Makati",
			Sequence:     4,
		},
		{
			ID:           "quezon-memorial",
			Name:         "Quezon Memorial Circle",
			Description:  "Large circular park in Quezon City, popular for outdoor activities",
			Center:       domain.GeoPoint{Lat: 14.6506, Lng: 121.0497},
			RadiusMeters: 800,
			Category:     domain.VenuePark,
			City:         "Quezon City",
			Sequence:     5,
		},
		{
			ID:           "luneta-park",
			Name:         "Luneta Park",
			Description:  "Rizal Park - National park in Manila",
			Center:       domain.GeoPoint{Lat: 14.5832, Lng: 120.9794},
			RadiusMeters: 1000,
			Category:     domain.VenuePark,
			City:         "Manila",
			Sequence:     6,
		},
		{
			ID:           "moa-complex",
			Name:         "MOA Complex",
			Description:  "Mall of Asia Complex - Large area with seaside promenade",
			Center:       domain.GeoPoint{Lat: 14.5355, Lng: 120.9820},
			RadiusMeters: 1500,
			Category:     domain.VenueCommercial,
			City:         "Pasay",
			Sequence:     7,
		},
		{
			ID:           "greenbelt-park",
			Name:         "Greenbelt Park",
			Description:  "Greenbelt Park in Makati - Urban oasis for fitness activities",
			Center:       domain.GeoPoint{Lat: 14.5544, Lng: 121.0244},
			RadiusMeters: 600,
			Category:     domain.VenuePark,
			City:         "Makati",
			Sequence:     8,
		},
	}
}
