package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// VenueHandler holds the venue service dependency.
type VenueHandler struct {
	venueService service.VenueService
}

// NewVenueHandler creates a new VenueHandler.
func NewVenueHandler(venueService service.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

// ListVenues handles GET /venues.
func (h *VenueHandler) ListVenues(c *gin.Context) {
	c.JSON(http.StatusOK, h.venueService.ListAll())
}

// GetVenue handles GET /venues/:id.
func (h *VenueHandler) GetVenue(c *gin.Context) {
	venue, err := h.venueService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to read venue")
		return
	}
	c.JSON(http.StatusOK, venue)
}

// SearchVenues handles GET /venues/search?q=query.
func (h *VenueHandler) SearchVenues(c *gin.Context) {
	c.JSON(http.StatusOK, h.venueService.Search(c.Query("q")))
}

// NearbyVenues handles GET /venues/nearby?lat=&lng=&radius_km=.
func (h *VenueHandler) NearbyVenues(c *gin.Context) {
	point, ok := parsePoint(c)
	if !ok {
		return
	}

	radiusKm := 10.0
	if raw := c.Query("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			abortWithError(c, http.StatusBadRequest, "radius_km must be a positive number")
			return
		}
		radiusKm = parsed
	}

	c.JSON(http.StatusOK, h.venueService.Nearby(point, radiusKm))
}

// MatchVenue handles GET /venues/match?lat=&lng=: returns the first venue
// whose geofence contains the point, or 404 when the point is outside every
// venue.
func (h *VenueHandler) MatchVenue(c *gin.Context) {
	point, ok := parsePoint(c)
	if !ok {
		return
	}

	venue := h.venueService.FindContaining(point)
	if venue == nil {
		abortWithError(c, http.StatusNotFound, "no venue contains this location")
		return
	}
	c.JSON(http.StatusOK, venue)
}

// parsePoint reads lat/lng query params, aborting with 400 on bad input.
func parsePoint(c *gin.Context) (domain.GeoPoint, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		abortWithError(c, http.StatusBadRequest, "lat and lng must be valid numbers")
		return domain.GeoPoint{}, false
	}
	return domain.GeoPoint{Lat: lat, Lng: lng}, true
}
