package handler

import (
	"context"
	"net/http"

	"resale-api/internal/models"

	"github.com/gin-gonic/gin"
)

// PredictHandler handles price prediction requests
type PredictHandler struct {
	service PredictionService
}

// Service interface for dependency injection
type PredictionService interface {
	Predict(ctx context.Context, query models.PredictionQuery) (*models.Prediction, error)
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(svc PredictionService) *PredictHandler {
	return &PredictHandler{service: svc}
}

// PredictRequest is the body of POST /predict. The flat's location is given
// either as a "(lat, lon)" string or as a separate numeric pair.
type PredictRequest struct {
	Location       string   `json:"location" example:"(1.3521, 103.8198)"`
	Lat            *float64 `json:"lat,omitempty"`
	Lon            *float64 `json:"lon,omitempty"`
	Rooms          int      `json:"rooms" binding:"required,min=1,max=6"`
	LeaseYearsLeft int      `json:"lease_years_left" binding:"required,min=1,max=99"`
	Floor          int      `json:"floor" binding:"required,min=1,max=60"`
}

// Predict handles POST /predict requests
//
//	@Summary	Predict the resale price of a flat
//	@Tags		predictions
//	@Accept		json
//	@Produce	json
//	@Param		request	body		PredictRequest	true	"Flat attributes and location"
//	@Success	200		{object}	models.Prediction
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Failure	502		{object}	map[string]string
//	@Router		/predict [post]
func (h *PredictHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	point, err := resolveCoordinate(req.Location, req.Lat, req.Lon)
	if err != nil {
		status, message := statusForError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	prediction, err := h.service.Predict(c.Request.Context(), models.PredictionQuery{
		Point:          point,
		Rooms:          req.Rooms,
		LeaseYearsLeft: req.LeaseYearsLeft,
		Floor:          req.Floor,
	})
	if err != nil {
		status, message := statusForError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, prediction)
}
