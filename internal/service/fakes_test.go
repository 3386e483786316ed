package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/repository"
)

// In-memory, mutex-guarded repository fakes. The participation fake keeps the
// same atomicity contract as the mongo implementation, so concurrency
// behavior is testable without a database.

type fakeZoneRepo struct {
	mu    sync.Mutex
	zones map[string]domain.ChallengeZone
	order []string

	listErr  error
	watch    chan struct{}
	watchCtx context.Context
}

func newFakeZoneRepo() *fakeZoneRepo {
	return &fakeZoneRepo{zones: map[string]domain.ChallengeZone{}}
}

func (r *fakeZoneRepo) Create(ctx context.Context, zone *domain.ChallengeZone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zones[zone.ID] = *zone
	r.order = append(r.order, zone.ID)
	return nil
}

func (r *fakeZoneRepo) GetByID(ctx context.Context, id string) (*domain.ChallengeZone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	zone, ok := r.zones[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &zone, nil
}

func (r *fakeZoneRepo) Update(ctx context.Context, zone *domain.ChallengeZone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.zones[zone.ID]; !ok {
		return repository.ErrNotFound
	}
	r.zones[zone.ID] = *zone
	return nil
}

func (r *fakeZoneRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.zones[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.zones, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeZoneRepo) ListAll(ctx context.Context) ([]domain.ChallengeZone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.ChallengeZone, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.zones[id])
	}
	return out, nil
}

// Watch hands out a channel that notify feeds and that closes once ctx is
// cancelled, mirroring the change-stream repository.
func (r *fakeZoneRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	events := make(chan struct{}, 8)
	r.mu.Lock()
	r.watch = events
	r.watchCtx = ctx
	r.mu.Unlock()
	go func() {
		<-ctx.Done()
		r.mu.Lock()
		close(events)
		r.mu.Unlock()
	}()
	return events, nil
}

// notify emits a change signal to the active watcher, dropping it if the
// watcher is gone or its buffer is full.
func (r *fakeZoneRepo) notify() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watch == nil || r.watchCtx.Err() != nil {
		return
	}
	select {
	case r.watch <- struct{}{}:
	default:
	}
}

func (r *fakeZoneRepo) setListErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listErr = err
}

type fakeParticipationRepo struct {
	mu      sync.Mutex
	records map[string]domain.ParticipationRecord

	existsErr error
	casErr    error
}

func newFakeParticipationRepo() *fakeParticipationRepo {
	return &fakeParticipationRepo{records: map[string]domain.ParticipationRecord{}}
}

func ledgerKey(userID, zoneID, date string) string {
	return fmt.Sprintf("%s|%s|%s", userID, zoneID, date)
}

func (r *fakeParticipationRepo) CreateIfAbsent(ctx context.Context, rec *domain.ParticipationRecord) (bool, *domain.ParticipationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.casErr != nil {
		return false, nil, r.casErr
	}
	key := ledgerKey(rec.UserID, rec.ZoneID, rec.Date)
	if existing, ok := r.records[key]; ok {
		return false, &existing, nil
	}
	r.records[key] = *rec
	return true, rec, nil
}

func (r *fakeParticipationRepo) Exists(ctx context.Context, userID, zoneID, date string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.records[ledgerKey(userID, zoneID, date)]
	return ok, nil
}

func (r *fakeParticipationRepo) ListByZone(ctx context.Context, zoneID string) ([]domain.ParticipationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ParticipationRecord{}
	for _, rec := range r.records {
		if rec.ZoneID == zoneID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *fakeParticipationRepo) ListByUserAndZone(ctx context.Context, userID, zoneID string) ([]domain.ParticipationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ParticipationRecord{}
	for _, rec := range r.records {
		if rec.UserID == userID && rec.ZoneID == zoneID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *fakeParticipationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeLeaderboardRepo struct {
	mu      sync.Mutex
	entries map[string]domain.LeaderboardEntry

	accumulateErr error
}

func newFakeLeaderboardRepo() *fakeLeaderboardRepo {
	return &fakeLeaderboardRepo{entries: map[string]domain.LeaderboardEntry{}}
}

func boardKey(zoneID, userID string) string {
	return fmt.Sprintf("%s|%s", zoneID, userID)
}

func (r *fakeLeaderboardRepo) Accumulate(ctx context.Context, userID, zoneID string, points int, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.accumulateErr != nil {
		return r.accumulateErr
	}
	key := boardKey(zoneID, userID)
	entry, ok := r.entries[key]
	if !ok {
		entry = domain.LeaderboardEntry{UserID: userID, ZoneID: zoneID}
	}
	entry.TotalPoints += points
	entry.WorkoutsCount++
	entry.LastWorkoutDate = date
	r.entries[key] = entry
	return nil
}

func (r *fakeLeaderboardRepo) GetEntry(ctx context.Context, zoneID, userID string) (*domain.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[boardKey(zoneID, userID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entry, nil
}

func (r *fakeLeaderboardRepo) GetTop(ctx context.Context, zoneID string, limit int) ([]domain.LeaderboardEntry, error) {
	entries, _ := r.ListByZone(ctx, zoneID)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].WorkoutsCount > entries[j].WorkoutsCount
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r *fakeLeaderboardRepo) ListByZone(ctx context.Context, zoneID string) ([]domain.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.LeaderboardEntry{}
	for _, entry := range r.entries {
		if entry.ZoneID == zoneID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeLeaderboardRepo) ReplaceZone(ctx context.Context, zoneID string, entries []domain.LeaderboardEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, entry := range r.entries {
		if entry.ZoneID == zoneID {
			delete(r.entries, key)
		}
	}
	for _, entry := range entries {
		r.entries[boardKey(zoneID, entry.UserID)] = entry
	}
	return nil
}

type fakeArchiver struct {
	mu       sync.Mutex
	archived [][]domain.LeaderboardEntry
	err      error
}

func (a *fakeArchiver) ArchiveLeaderboard(ctx context.Context, zoneID string, entries []domain.LeaderboardEntry) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.archived = append(a.archived, entries)
	return fmt.Sprintf("leaderboard-snapshots/%s/test.json", zoneID), nil
}

type fakeVenueRepo struct {
	mu     sync.Mutex
	venues []domain.Venue
	err    error
}

func (r *fakeVenueRepo) ListAll(ctx context.Context) ([]domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Venue, len(r.venues))
	copy(out, r.venues)
	return out, nil
}

func (r *fakeVenueRepo) Seed(ctx context.Context, venues []domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.venues = venues
	return nil
}

func (r *fakeVenueRepo) set(venues []domain.Venue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.venues = venues
}
