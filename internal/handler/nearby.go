package handler

import (
	"context"
	"net/http"

	"resale-api/internal/geo"
	"resale-api/internal/models"

	"github.com/gin-gonic/gin"
)

// NearbyHandler handles facility lookup requests
type NearbyHandler struct {
	service       NearbyService
	defaultRadius float64
}

// Service interface for dependency injection
type NearbyService interface {
	Nearby(ctx context.Context, point geo.Coordinate, collection string, radiusKm float64, level string) (*models.NearbyResult, error)
}

// NewNearbyHandler creates a new nearby handler. defaultRadiusKm applies
// when a request does not set radius_km; zero falls back to 1 km.
func NewNearbyHandler(svc NearbyService, defaultRadiusKm float64) *NearbyHandler {
	if defaultRadiusKm == 0 {
		defaultRadiusKm = 1.0
	}
	return &NearbyHandler{service: svc, defaultRadius: defaultRadiusKm}
}

// NearbyRequest is the query string of GET /facilities/nearby.
type NearbyRequest struct {
	Location   string   `form:"location"`
	Lat        *float64 `form:"lat"`
	Lon        *float64 `form:"lon"`
	Collection string   `form:"collection" binding:"required"`
	RadiusKm   *float64 `form:"radius_km"`
	Level      string   `form:"level"`
}

// Nearby handles GET /facilities/nearby requests
//
//	@Summary	List facilities of one type around a point
//	@Tags		facilities
//	@Produce	json
//	@Param		collection	query		string	true	"Facility collection"	Enums(schools, hawker_markets, train_stations, street_blocks)
//	@Param		location	query		string	false	"Point as \"(lat, lon)\""
//	@Param		lat			query		number	false	"Latitude, with lon"
//	@Param		lon			query		number	false	"Longitude, with lat"
//	@Param		radius_km	query		number	false	"Search radius in km"
//	@Param		level		query		string	false	"School level filter"	Enums(primary, secondary)
//	@Success	200			{object}	models.NearbyResult
//	@Failure	400			{object}	map[string]string
//	@Router		/facilities/nearby [get]
func (h *NearbyHandler) Nearby(c *gin.Context) {
	var req NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	point, err := resolveCoordinate(req.Location, req.Lat, req.Lon)
	if err != nil {
		status, message := statusForError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	radius := h.defaultRadius
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	}

	result, err := h.service.Nearby(c.Request.Context(), point, req.Collection, radius, req.Level)
	if err != nil {
		status, message := statusForError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, result)
}
