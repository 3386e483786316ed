package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ChallengeHandler holds the challenge service dependency.
type ChallengeHandler struct {
	challengeService service.ChallengeService
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(challengeService service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// --- DTOs ---

// CreateZoneRequest defines the expected JSON for creating a challenge zone.
type CreateZoneRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters float64 `json:"radiusMeters" binding:"required,gt=0"`
	Points       int     `json:"points" binding:"omitempty,gt=0"`
	Active       bool    `json:"active"`
	Visible      bool    `json:"visible"`
}

// UpdateZoneRequest defines a partial zone update; omitted fields are left
// unchanged.
type UpdateZoneRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	RadiusMeters *float64 `json:"radiusMeters"`
	Points       *int     `json:"points"`
	Active       *bool    `json:"active"`
	Visible      *bool    `json:"visible"`
}

// AwardRequest reports a completed workout and its location for point
// awarding.
type AwardRequest struct {
	WorkoutID string  `json:"workoutId" binding:"required"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// --- Zone admin endpoints ---

// CreateZone handles POST /admin/challenges/zones.
func (h *ChallengeHandler) CreateZone(c *gin.Context) {
	var req CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	zone, err := h.challengeService.CreateZone(c.Request.Context(), service.CreateZoneInput{
		Name:         req.Name,
		Description:  req.Description,
		Center:       domain.GeoPoint{Lat: req.Lat, Lng: req.Lng},
		RadiusMeters: req.RadiusMeters,
		Points:       req.Points,
		Active:       req.Active,
		Visible:      req.Visible,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create challenge zone")
		return
	}
	c.JSON(http.StatusCreated, zone)
}

// UpdateZone handles PUT /admin/challenges/zones/:id.
func (h *ChallengeHandler) UpdateZone(c *gin.Context) {
	var req UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	update := service.ZoneUpdate{
		Name:         req.Name,
		Description:  req.Description,
		RadiusMeters: req.RadiusMeters,
		Points:       req.Points,
		Active:       req.Active,
		Visible:      req.Visible,
	}
	if req.Lat != nil && req.Lng != nil {
		update.Center = &domain.GeoPoint{Lat: *req.Lat, Lng: *req.Lng}
	}

	zone, err := h.challengeService.UpdateZone(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrZoneNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update challenge zone")
		}
		return
	}
	c.JSON(http.StatusOK, zone)
}

// DeleteZone handles DELETE /admin/challenges/zones/:id.
func (h *ChallengeHandler) DeleteZone(c *gin.Context) {
	err := h.challengeService.DeleteZone(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrZoneNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete challenge zone")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAllZones handles GET /admin/challenges/zones (includes hidden and
// inactive zones).
func (h *ChallengeHandler) ListAllZones(c *gin.Context) {
	zones, err := h.challengeService.ListZones(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list challenge zones")
		return
	}
	c.JSON(http.StatusOK, zones)
}

// RebuildLeaderboard handles POST /admin/challenges/zones/:id/leaderboard/rebuild.
// It recomputes the zone's leaderboard from the award ledger after archiving
// the current entries.
func (h *ChallengeHandler) RebuildLeaderboard(c *gin.Context) {
	entries, err := h.challengeService.RebuildZoneLeaderboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to rebuild leaderboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// --- Member endpoints ---

// ListVisibleZones handles GET /challenges/zones.
func (h *ChallengeHandler) ListVisibleZones(c *gin.Context) {
	zones, err := h.challengeService.ListVisibleZones(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list challenge zones")
		return
	}
	c.JSON(http.StatusOK, zones)
}

// GetLeaderboard handles GET /challenges/zones/:id/leaderboard?limit=N.
func (h *ChallengeHandler) GetLeaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.challengeService.GetLeaderboard(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read leaderboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GetMyStats handles GET /challenges/zones/:id/me.
func (h *ChallengeHandler) GetMyStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	stats, err := h.challengeService.GetUserStats(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read challenge stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Award handles POST /challenges/awards: runs the award flow for the
// caller's completed workout at the given location.
func (h *ChallengeHandler) Award(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	point := &domain.GeoPoint{Lat: req.Lat, Lng: req.Lng}
	results, err := h.challengeService.AwardForWorkout(c.Request.Context(), userID, req.WorkoutID, point)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to process award")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
