package domain

// ParticipationRecord is the ledger entry proving a user earned points in a
// zone on a given day. At most one record may ever exist per
// (UserID, ZoneID, Date) tuple; the mongo layer enforces this with a unique
// compound index. Records are written exactly once and never mutated.
type ParticipationRecord struct {
	UserID    string `bson:"userId" json:"userId"`
	ZoneID    string `bson:"zoneId" json:"zoneId"`
	Date      string `bson:"date" json:"date"` // UTC calendar day, YYYY-MM-DD
	WorkoutID string `bson:"workoutId" json:"workoutId"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"` // unix millis at award time
	Points    int    `bson:"points" json:"points"`
}

// DateLayout is the calendar-day key format used by the participation ledger.
const DateLayout = "2006-01-02"
