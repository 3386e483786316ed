package storage

import (
	"context"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
)

// SnapshotArchiver stores audit copies of leaderboard state. A rebuild must
// archive the entries it is about to overwrite before it overwrites them.
type SnapshotArchiver interface {
	// ArchiveLeaderboard writes the entries as a JSON object and returns the
	// object key it stored them under.
	ArchiveLeaderboard(ctx context.Context, zoneID string, entries []domain.LeaderboardEntry) (string, error)
}
