package domain

// VenueCategory classifies a venue for display and filtering.
type VenueCategory string

const (
	VenuePark       VenueCategory = "park"
	VenueUniversity VenueCategory = "university"
	VenueCommercial VenueCategory = "commercial"
	VenueSports     VenueCategory = "sports"
	VenueOther      VenueCategory = "other"
)

// Venue is a named circular geofence used to match events and check-ins to a
// known location. Venues never award points; that is what challenge zones do.
//
// Sequence is the registration order. Venue matching is first-match over
// venues sorted by Sequence, so when two venues overlap the earlier-registered
// one wins. Keep that in mind before widening a radius.
type Venue struct {
	ID           string        `bson:"_id" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Description  string        `bson:"description,omitempty" json:"description,omitempty"`
	Center       GeoPoint      `bson:"center" json:"center"`
	RadiusMeters float64       `bson:"radiusMeters" json:"radiusMeters"`
	Category     VenueCategory `bson:"category" json:"category"`
	City         string        `bson:"city" json:"city"`
	Sequence     int           `bson:"sequence" json:"-"`
}
