package repository

import (
	"context"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ZoneRepository defines the interface for challenge-zone definitions.
// Zones are written by administrators only; the award path treats them as
// read-only input.
type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.ChallengeZone) error
	GetByID(ctx context.Context, id string) (*domain.ChallengeZone, error)
	// Update overwrites the stored record with the given merged record.
	// Callers supply the full record; this is not a field-level patch.
	Update(ctx context.Context, zone *domain.ChallengeZone) error
	// Delete removes the zone definition only. Participation and leaderboard
	// data for the zone is deliberately left in place for audit.
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.ChallengeZone, error)
	// Watch emits a signal whenever the zone collection changes. The channel
	// closes when ctx is cancelled or the underlying stream dies.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// ParticipationRepository is the once-per-day award ledger.
type ParticipationRepository interface {
	// CreateIfAbsent atomically inserts the record unless one already exists
	// for its (userId, zoneId, date) key. It returns true when this call
	// inserted the record and false when a record was already present, in
	// which case the stored record is returned. This is the compare-and-set
	// the whole award flow's correctness rests on; it must stay a single
	// atomic operation, never a read followed by a write.
	CreateIfAbsent(ctx context.Context, rec *domain.ParticipationRecord) (bool, *domain.ParticipationRecord, error)
	Exists(ctx context.Context, userID, zoneID, date string) (bool, error)
	ListByZone(ctx context.Context, zoneID string) ([]domain.ParticipationRecord, error)
	ListByUserAndZone(ctx context.Context, userID, zoneID string) ([]domain.ParticipationRecord, error)
}

// LeaderboardRepository maintains per-zone running totals derived from the
// participation ledger.
type LeaderboardRepository interface {
	// Accumulate adds points and one workout to the (zoneId, userId) entry,
	// creating it when absent, and stamps the last workout date.
	Accumulate(ctx context.Context, userID, zoneID string, points int, date string) error
	GetEntry(ctx context.Context, zoneID, userID string) (*domain.LeaderboardEntry, error)
	// GetTop returns up to limit entries for the zone sorted by totalPoints
	// descending, ties broken by workoutsCount descending.
	GetTop(ctx context.Context, zoneID string, limit int) ([]domain.LeaderboardEntry, error)
	ListByZone(ctx context.Context, zoneID string) ([]domain.LeaderboardEntry, error)
	// ReplaceZone swaps every entry for the zone with the given set. Used by
	// the rebuild tool after the old entries have been archived.
	ReplaceZone(ctx context.Context, zoneID string, entries []domain.LeaderboardEntry) error
}

// VenueRepository stores the registered venues.
type VenueRepository interface {
	// ListAll returns venues sorted by registration sequence. First-match
	// venue resolution depends on this ordering being stable.
	ListAll(ctx context.Context) ([]domain.Venue, error)
	Seed(ctx context.Context, venues []domain.Venue) error
}
