package domain

import "time"

// GeoPoint is a WGS84 coordinate pair in degrees.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// ChallengeZone is a circular geofence that awards points once per user per
// calendar day. Active gates whether the zone can award at all; Visible gates
// whether it is surfaced to members (a zone can be active but hidden while it
// is being tested).
type ChallengeZone struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Center       GeoPoint  `bson:"center" json:"center"`
	RadiusMeters float64   `bson:"radiusMeters" json:"radiusMeters"`
	Points       int       `bson:"points" json:"points"` // points awarded per workout
	Active       bool      `bson:"active" json:"active"`
	Visible      bool      `bson:"visible" json:"visible"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DefaultZonePoints is used when an admin creates a zone without an explicit
// per-workout point value.
const DefaultZonePoints = 10
