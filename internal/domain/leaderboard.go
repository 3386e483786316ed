package domain

// LeaderboardEntry is the running per-zone total for one user. It is a
// derived cache over the participation ledger: TotalPoints must equal the sum
// of Points over the user's records for the zone, and WorkoutsCount the count
// of those records. The ledger is the source of truth; entries can be rebuilt
// from it at any time.
type LeaderboardEntry struct {
	UserID          string `bson:"userId" json:"userId"`
	ZoneID          string `bson:"zoneId" json:"zoneId"`
	TotalPoints     int    `bson:"totalPoints" json:"totalPoints"`
	WorkoutsCount   int    `bson:"workoutsCount" json:"workoutsCount"`
	LastWorkoutDate string `bson:"lastWorkoutDate" json:"lastWorkoutDate"` // YYYY-MM-DD
}

// UserZoneStats is the member-facing composite of a leaderboard entry plus
// whether the user already earned points today. Zero-valued when the user has
// never participated in the zone.
type UserZoneStats struct {
	TotalPoints     int    `json:"totalPoints"`
	WorkoutsCount   int    `json:"workoutsCount"`
	LastWorkoutDate string `json:"lastWorkoutDate,omitempty"`
	EarnedToday     bool   `json:"earnedToday"`
}

// Role distinguishes regular members from administrators. Tokens are issued
// by the identity service; this service only validates them.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)
