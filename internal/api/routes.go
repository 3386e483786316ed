package api

import (
	"net/http"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every HTTP endpoint onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	challengeService service.ChallengeService,
	venueService service.VenueService,
) {
	challengeHandler := NewChallengeHandler(challengeService)
	venueHandler := NewVenueHandler(venueService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	// Venue lookups are public; they carry no member data.
	venueGroup := apiV1.Group("/venues")
	{
		venueGroup.GET("", venueHandler.ListVenues)
		venueGroup.GET("/search", venueHandler.SearchVenues)
		venueGroup.GET("/nearby", venueHandler.NearbyVenues)
		venueGroup.GET("/match", venueHandler.MatchVenue)
		venueGroup.GET("/:id", venueHandler.GetVenue)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		challengeGroup := protected.Group("/challenges")
		{
			challengeGroup.GET("/zones", challengeHandler.ListVisibleZones)
			challengeGroup.GET("/zones/:id/leaderboard", challengeHandler.GetLeaderboard)
			challengeGroup.GET("/zones/:id/me", challengeHandler.GetMyStats)
			challengeGroup.POST("/awards", challengeHandler.Award)
		}

		adminGroup := protected.Group("/admin/challenges")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/zones", challengeHandler.ListAllZones)
			adminGroup.POST("/zones", challengeHandler.CreateZone)
			adminGroup.PUT("/zones/:id", challengeHandler.UpdateZone)
			adminGroup.DELETE("/zones/:id", challengeHandler.DeleteZone)
			adminGroup.POST("/zones/:id/leaderboard/rebuild", challengeHandler.RebuildLeaderboard)
		}
	}
}
