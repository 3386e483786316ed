package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/geo"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/logger"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/repository"
)

var ErrVenueNotFound = errors.New("venue not found")

// VenueService resolves locations against the registered venues. Lookups are
// served synchronously from an in-memory cache; call Refresh to re-read the
// store. Stale reads between refreshes are accepted — venue matching only
// needs eventual consistency.
type VenueService interface {
	// Refresh re-reads the venue list from the store. On error or an empty
	// store the built-in list is installed instead, so lookups always have
	// something to match against; the store error is still returned so
	// callers can tell the cache may be stale.
	Refresh(ctx context.Context) error
	ListAll() []domain.Venue
	GetByID(id string) (*domain.Venue, error)
	Search(query string) []domain.Venue
	Nearby(point domain.GeoPoint, radiusKm float64) []domain.Venue
	// FindContaining returns the first venue, in registration order, whose
	// circle contains the point, or nil. First match, not nearest: one
	// physical venue per event, and with overlapping venues the
	// earlier-registered one wins.
	FindContaining(point domain.GeoPoint) *domain.Venue
}

// venueService implements VenueService.
type venueService struct {
	venueRepo repository.VenueRepository

	mu     sync.RWMutex
	venues []domain.Venue
}

// NewVenueService creates a venue service primed with the built-in venue
// list. Call Refresh after construction to load the store's venues.
func NewVenueService(venueRepo repository.VenueRepository) VenueService {
	return &venueService{
		venueRepo: venueRepo,
		venues:    BuiltinVenues(),
	}
}

func (s *venueService) Refresh(ctx context.Context) error {
	venues, err := s.venueRepo.ListAll(ctx)
	if err != nil {
		logger.Warning("Venue refresh failed, falling back to built-in list: %v", err)
		venues = BuiltinVenues()
	} else if len(venues) == 0 {
		venues = BuiltinVenues()
	}

	s.mu.Lock()
	s.venues = venues
	s.mu.Unlock()
	return err
}

// snapshot returns the cached list without copying; callers must not mutate.
func (s *venueService) snapshot() []domain.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.venues
}

func (s *venueService) ListAll() []domain.Venue {
	cached := s.snapshot()
	out := make([]domain.Venue, len(cached))
	copy(out, cached)
	return out
}

func (s *venueService) GetByID(id string) (*domain.Venue, error) {
	for _, v := range s.snapshot() {
		if v.ID == id {
			venue := v
			return &venue, nil
		}
	}
	return nil, ErrVenueNotFound
}

// Search matches case-insensitively against name, description and city. An
// empty query returns everything.
func (s *venueService) Search(query string) []domain.Venue {
	cached := s.snapshot()
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		out := make([]domain.Venue, len(cached))
		copy(out, cached)
		return out
	}

	matches := []domain.Venue{}
	for _, v := range cached {
		if strings.Contains(strings.ToLower(v.Name), query) ||
			strings.Contains(strings.ToLower(v.Description), query) ||
			strings.Contains(strings.ToLower(v.City), query) {
			matches = append(matches, v)
		}
	}
	return matches
}

// Nearby returns venues whose center is within radiusKm of the point, sorted
// nearest first.
func (s *venueService) Nearby(point domain.GeoPoint, radiusKm float64) []domain.Venue {
	type scored struct {
		venue    domain.Venue
		distance float64
	}

	nearby := []scored{}
	for _, v := range s.snapshot() {
		d := geo.DistanceMeters(point, v.Center)
		if d <= radiusKm*1000 {
			nearby = append(nearby, scored{venue: v, distance: d})
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].distance < nearby[j].distance
	})

	out := make([]domain.Venue, 0, len(nearby))
	for _, sc := range nearby {
		out = append(out, sc.venue)
	}
	return out
}

func (s *venueService) FindContaining(point domain.GeoPoint) *domain.Venue {
	for _, v := range s.snapshot() {
		if geo.WithinRadius(point, v.Center, v.RadiusMeters) {
			venue := v
			return &venue
		}
	}
	return nil
}
