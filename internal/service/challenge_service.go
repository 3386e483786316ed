package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/geo"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/logger"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrZoneNotFound     = errors.New("challenge zone not found")
	ErrValidationFailed = errors.New("challenge zone validation failed")
)

const defaultLeaderboardLimit = 20

// LeaderboardCache is an optional read cache for zone leaderboards. Every
// method is best effort: a miss or a cache failure must never fail a request.
type LeaderboardCache interface {
	GetTop(ctx context.Context, zoneID string, limit int) ([]domain.LeaderboardEntry, bool)
	SetTop(ctx context.Context, zoneID string, limit int, entries []domain.LeaderboardEntry)
	Invalidate(ctx context.Context, zoneID string)
}

// SnapshotArchiver stores a copy of a zone's leaderboard entries before a
// rebuild overwrites them.
type SnapshotArchiver interface {
	ArchiveLeaderboard(ctx context.Context, zoneID string, entries []domain.LeaderboardEntry) (string, error)
}

// AwardResult reports the outcome of one zone's award attempt within a
// workout completion.
type AwardResult struct {
	Zone    domain.ChallengeZone `json:"zone"`
	Awarded bool                 `json:"awarded"`
	Points  int                  `json:"points"`
}

// CreateZoneInput carries the admin-supplied fields for a new zone.
type CreateZoneInput struct {
	Name         string
	Description  string
	Center       domain.GeoPoint
	RadiusMeters float64
	Points       int
	Active       bool
	Visible      bool
}

// ZoneUpdate holds a partial update; nil fields are left unchanged. The
// service merges it into the stored record and writes the merged record back
// as a whole.
type ZoneUpdate struct {
	Name         *string
	Description  *string
	Center       *domain.GeoPoint
	RadiusMeters *float64
	Points       *int
	Active       *bool
	Visible      *bool
}

// ChallengeService owns challenge zones, the daily award ledger and the zone
// leaderboards.
type ChallengeService interface {
	CreateZone(ctx context.Context, input CreateZoneInput) (*domain.ChallengeZone, error)
	UpdateZone(ctx context.Context, zoneID string, update ZoneUpdate) (*domain.ChallengeZone, error)
	DeleteZone(ctx context.Context, zoneID string) error
	GetZone(ctx context.Context, zoneID string) (*domain.ChallengeZone, error)
	ListZones(ctx context.Context) ([]domain.ChallengeZone, error)
	ListVisibleZones(ctx context.Context) ([]domain.ChallengeZone, error)
	SubscribeZones(ctx context.Context, callback func([]domain.ChallengeZone)) error

	ZonesContaining(point *domain.GeoPoint, zones []domain.ChallengeZone) []domain.ChallengeZone
	AwardPoints(ctx context.Context, userID, workoutID string, zone *domain.ChallengeZone) (bool, error)
	AwardForWorkout(ctx context.Context, userID, workoutID string, point *domain.GeoPoint) ([]AwardResult, error)
	HasAwardedToday(ctx context.Context, userID, zoneID string) (bool, error)

	GetLeaderboard(ctx context.Context, zoneID string, limit int) ([]domain.LeaderboardEntry, error)
	GetUserStats(ctx context.Context, userID, zoneID string) (*domain.UserZoneStats, error)
	RebuildZoneLeaderboard(ctx context.Context, zoneID string) ([]domain.LeaderboardEntry, error)
}

// challengeService implements the ChallengeService interface.
type challengeService struct {
	zoneRepo          repository.ZoneRepository
	participationRepo repository.ParticipationRepository
	leaderboardRepo   repository.LeaderboardRepository
	cache             LeaderboardCache // may be nil
	archiver          SnapshotArchiver // may be nil
	now               func() time.Time
}

// NewChallengeService creates a new instance of challengeService. cache and
// archiver are optional and may be nil.
func NewChallengeService(
	zoneRepo repository.ZoneRepository,
	participationRepo repository.ParticipationRepository,
	leaderboardRepo repository.LeaderboardRepository,
	cache LeaderboardCache,
	archiver SnapshotArchiver,
) ChallengeService {
	return &challengeService{
		zoneRepo:          zoneRepo,
		participationRepo: participationRepo,
		leaderboardRepo:   leaderboardRepo,
		cache:             cache,
		archiver:          archiver,
		now:               time.Now,
	}
}

// today returns the current UTC calendar day. Keying awards on the UTC day
// keeps the boundary identical across devices and server restarts; a device's
// local midnight does not matter.
func (s *challengeService) today() string {
	return s.now().UTC().Format(domain.DateLayout)
}

// --- Zone lifecycle ---

func (s *challengeService) CreateZone(ctx context.Context, input CreateZoneInput) (*domain.ChallengeZone, error) {
	if input.Name == "" || input.RadiusMeters <= 0 {
		return nil, ErrValidationFailed
	}
	points := input.Points
	if points <= 0 {
		points = domain.DefaultZonePoints
	}

	zone := &domain.ChallengeZone{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Description:  input.Description,
		Center:       input.Center,
		RadiusMeters: input.RadiusMeters,
		Points:       points,
		Active:       input.Active,
		Visible:      input.Visible,
	}
	if err := s.zoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}
	logger.Success("Challenge zone created: %s (%s)", zone.Name, zone.ID)
	return zone, nil
}

func (s *challengeService) UpdateZone(ctx context.Context, zoneID string, update ZoneUpdate) (*domain.ChallengeZone, error) {
	zone, err := s.zoneRepo.GetByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		zone.Name = *update.Name
	}
	if update.Description != nil {
		zone.Description = *update.Description
	}
	if update.Center != nil {
		zone.Center = *update.Center
	}
	if update.RadiusMeters != nil {
		zone.RadiusMeters = *update.RadiusMeters
	}
	if update.Points != nil {
		zone.Points = *update.Points
	}
	if update.Active != nil {
		zone.Active = *update.Active
	}
	if update.Visible != nil {
		zone.Visible = *update.Visible
	}
	if zone.Name == "" || zone.RadiusMeters <= 0 || zone.Points <= 0 {
		return nil, ErrValidationFailed
	}

	if err := s.zoneRepo.Update(ctx, zone); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	return zone, nil
}

// DeleteZone removes the zone definition. Ledger and leaderboard data for the
// zone is retained as an audit trail; the rebuild endpoint is the tool for
// reconciling what remains.
func (s *challengeService) DeleteZone(ctx context.Context, zoneID string) error {
	if err := s.zoneRepo.Delete(ctx, zoneID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrZoneNotFound
		}
		return err
	}
	logger.Info("Challenge zone deleted: %s (historical data retained)", zoneID)
	return nil
}

func (s *challengeService) GetZone(ctx context.Context, zoneID string) (*domain.ChallengeZone, error) {
	zone, err := s.zoneRepo.GetByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	return zone, nil
}

// ListZones returns every zone. A store failure degrades to an empty list; a
// partial read is preferable to blocking callers on the store.
func (s *challengeService) ListZones(ctx context.Context) ([]domain.ChallengeZone, error) {
	zones, err := s.zoneRepo.ListAll(ctx)
	if err != nil {
		logger.Warning("Listing challenge zones failed, returning empty list: %v", err)
		return []domain.ChallengeZone{}, nil
	}
	return zones, nil
}

// ListVisibleZones returns zones that are both active and visible — the set
// surfaced to members. Active-but-hidden zones are excluded here but still
// award points.
func (s *challengeService) ListVisibleZones(ctx context.Context) ([]domain.ChallengeZone, error) {
	zones, err := s.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.ChallengeZone, 0, len(zones))
	for _, z := range zones {
		if z.Active && z.Visible {
			visible = append(visible, z)
		}
	}
	return visible, nil
}

// SubscribeZones invokes callback with the full current zone list immediately
// and again after every change to the zone collection. Cancel ctx to
// unsubscribe. No diffs are delivered, always the whole list.
func (s *challengeService) SubscribeZones(ctx context.Context, callback func([]domain.ChallengeZone)) error {
	events, err := s.zoneRepo.Watch(ctx)
	if err != nil {
		return err
	}

	push := func() {
		zones, err := s.zoneRepo.ListAll(ctx)
		if err != nil {
			logger.Warning("Zone subscription read failed: %v", err)
			callback([]domain.ChallengeZone{})
			return
		}
		callback(zones)
	}
	push()

	go func() {
		for range events {
			push()
		}
	}()
	return nil
}

// --- Membership resolution ---

// ZonesContaining returns every active zone whose circle contains the point,
// in input order. All matches, not just the first: overlapping zones are each
// independently eligible to award. A nil point matches nothing. Visibility is
// not consulted here; hidden-but-active zones still qualify.
func (s *challengeService) ZonesContaining(point *domain.GeoPoint, zones []domain.ChallengeZone) []domain.ChallengeZone {
	matches := []domain.ChallengeZone{}
	if point == nil {
		return matches
	}
	for _, zone := range zones {
		if !zone.Active {
			continue
		}
		if geo.WithinRadius(*point, zone.Center, zone.RadiusMeters) {
			matches = append(matches, zone)
		}
	}
	return matches
}

// --- Award ledger ---

// AwardPoints awards the zone's points to the user for today, at most once
// per user per zone per UTC day. Returns false when today's points were
// already earned.
//
// The existence check up front is only an optimization for the common
// no-race case. Correctness comes from CreateIfAbsent: when two calls race
// past the check, the ledger's unique key lets exactly one insert commit and
// the loser sees the winner's record. Only the winner touches the
// leaderboard.
func (s *challengeService) AwardPoints(ctx context.Context, userID, workoutID string, zone *domain.ChallengeZone) (bool, error) {
	if zone == nil || userID == "" {
		return false, ErrValidationFailed
	}
	today := s.today()

	exists, err := s.participationRepo.Exists(ctx, userID, zone.ID, today)
	if err == nil && exists {
		return false, nil
	}
	// A failed fast-path read falls through; CreateIfAbsent decides.

	points := zone.Points
	if points <= 0 {
		points = domain.DefaultZonePoints
	}
	record := &domain.ParticipationRecord{
		UserID:    userID,
		ZoneID:    zone.ID,
		Date:      today,
		WorkoutID: workoutID,
		Timestamp: s.now().UnixMilli(),
		Points:    points,
	}

	created, _, err := s.participationRepo.CreateIfAbsent(ctx, record)
	if err != nil {
		return false, err
	}
	if !created {
		return false, nil
	}

	// The award is durable at this point. A leaderboard failure leaves drift
	// that the rebuild tool repairs; it does not undo the award.
	if err := s.leaderboardRepo.Accumulate(ctx, userID, zone.ID, points, today); err != nil {
		logger.Warning("Leaderboard update failed for user %s zone %s: %v", userID, zone.ID, err)
	} else if s.cache != nil {
		s.cache.Invalidate(ctx, zone.ID)
	}

	logger.Success("Awarded %d points to user %s for zone %s", points, userID, zone.ID)
	return true, nil
}

// AwardForWorkout resolves which active zones contain the workout location
// and runs the award flow for each. Per-zone failures are logged and skipped;
// earning points is a bonus on top of the workout, never a reason to fail it.
func (s *challengeService) AwardForWorkout(ctx context.Context, userID, workoutID string, point *domain.GeoPoint) ([]AwardResult, error) {
	zones, err := s.zoneRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	results := []AwardResult{}
	for _, zone := range s.ZonesContaining(point, zones) {
		z := zone
		awarded, err := s.AwardPoints(ctx, userID, workoutID, &z)
		if err != nil {
			logger.Warning("Award failed for user %s zone %s: %v", userID, zone.ID, err)
			continue
		}
		result := AwardResult{Zone: z, Awarded: awarded}
		if awarded {
			result.Points = z.Points
		}
		results = append(results, result)
	}
	return results, nil
}

// HasAwardedToday reports whether the user already earned today's points for
// the zone. Advisory only (UI affordances); the award path re-checks
// atomically.
func (s *challengeService) HasAwardedToday(ctx context.Context, userID, zoneID string) (bool, error) {
	return s.participationRepo.Exists(ctx, userID, zoneID, s.today())
}

// --- Leaderboard ---

// GetLeaderboard returns the zone's top entries sorted by totalPoints desc,
// ties broken by workoutsCount desc. Store failures degrade to an empty list.
func (s *challengeService) GetLeaderboard(ctx context.Context, zoneID string, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	if s.cache != nil {
		if entries, ok := s.cache.GetTop(ctx, zoneID, limit); ok {
			return entries, nil
		}
	}

	entries, err := s.leaderboardRepo.GetTop(ctx, zoneID, limit)
	if err != nil {
		logger.Warning("Leaderboard read failed for zone %s, returning empty list: %v", zoneID, err)
		return []domain.LeaderboardEntry{}, nil
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	if s.cache != nil {
		s.cache.SetTop(ctx, zoneID, limit, entries)
	}
	return entries, nil
}

// GetUserStats returns the user's totals for a zone plus whether today's
// points were already earned. A user with no entry gets zeros, never an
// error.
func (s *challengeService) GetUserStats(ctx context.Context, userID, zoneID string) (*domain.UserZoneStats, error) {
	stats := &domain.UserZoneStats{}

	earnedToday, err := s.HasAwardedToday(ctx, userID, zoneID)
	if err != nil {
		logger.Warning("earnedToday check failed for user %s zone %s: %v", userID, zoneID, err)
	} else {
		stats.EarnedToday = earnedToday
	}

	entry, err := s.leaderboardRepo.GetEntry(ctx, zoneID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return stats, nil
		}
		logger.Warning("Stats read failed for user %s zone %s: %v", userID, zoneID, err)
		return stats, nil
	}

	stats.TotalPoints = entry.TotalPoints
	stats.WorkoutsCount = entry.WorkoutsCount
	stats.LastWorkoutDate = entry.LastWorkoutDate
	return stats, nil
}

// RebuildZoneLeaderboard recomputes the zone's leaderboard from the
// participation ledger, archiving the previous entries first. This is the
// repair tool for ledger/leaderboard drift (a crash between award and
// accumulate) and for zones whose definition was deleted.
func (s *challengeService) RebuildZoneLeaderboard(ctx context.Context, zoneID string) ([]domain.LeaderboardEntry, error) {
	records, err := s.participationRepo.ListByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	byUser := map[string]*domain.LeaderboardEntry{}
	order := []string{}
	for _, rec := range records {
		entry, ok := byUser[rec.UserID]
		if !ok {
			entry = &domain.LeaderboardEntry{UserID: rec.UserID, ZoneID: zoneID}
			byUser[rec.UserID] = entry
			order = append(order, rec.UserID)
		}
		entry.TotalPoints += rec.Points
		entry.WorkoutsCount++
		if rec.Date > entry.LastWorkoutDate {
			entry.LastWorkoutDate = rec.Date
		}
	}

	rebuilt := make([]domain.LeaderboardEntry, 0, len(byUser))
	for _, userID := range order {
		rebuilt = append(rebuilt, *byUser[userID])
	}
	sort.SliceStable(rebuilt, func(i, j int) bool {
		if rebuilt[i].TotalPoints != rebuilt[j].TotalPoints {
			return rebuilt[i].TotalPoints > rebuilt[j].TotalPoints
		}
		return rebuilt[i].WorkoutsCount > rebuilt[j].WorkoutsCount
	})

	if s.archiver != nil {
		previous, err := s.leaderboardRepo.ListByZone(ctx, zoneID)
		if err != nil {
			return nil, err
		}
		key, err := s.archiver.ArchiveLeaderboard(ctx, zoneID, previous)
		if err != nil {
			// No overwrite without an audit copy.
			return nil, err
		}
		logger.Info("Archived leaderboard snapshot for zone %s at %s", zoneID, key)
	}

	if err := s.leaderboardRepo.ReplaceZone(ctx, zoneID, rebuilt); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, zoneID)
	}
	logger.Success("Rebuilt leaderboard for zone %s: %d entries from %d records", zoneID, len(rebuilt), len(records))
	return rebuilt, nil
}
