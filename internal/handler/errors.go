package handler

import (
	"errors"
	"fmt"
	"net/http"

	"resale-api/internal/encoder"
	"resale-api/internal/geo"
	"resale-api/internal/predictor"
	"resale-api/internal/proximity"
	"resale-api/internal/service"
)

// statusForError maps service-layer failures to HTTP responses. Anything
// unmapped is an internal error and its detail stays out of the response.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, geo.ErrMalformedCoordinate):
		return http.StatusBadRequest, "invalid coordinates"
	case errors.Is(err, proximity.ErrInvalidRadius):
		return http.StatusBadRequest, "radius must be a positive number of kilometres"
	case errors.Is(err, service.ErrUnknownCollection):
		return http.StatusBadRequest, "unknown facility collection"
	case errors.Is(err, service.ErrNotServiceable):
		return http.StatusNotFound, "location not serviceable"
	case errors.Is(err, encoder.ErrUnknownCategory):
		return http.StatusUnprocessableEntity, "town not covered by the price model"
	case errors.Is(err, predictor.ErrUnavailable):
		return http.StatusBadGateway, "prediction backend unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// resolveCoordinate accepts the two coordinate forms requests may carry:
// a "(lat, lon)" string or a separate numeric pair.
func resolveCoordinate(location string, lat, lon *float64) (geo.Coordinate, error) {
	if location != "" {
		return geo.ParseCoordinate(location)
	}
	if lat != nil && lon != nil {
		return geo.NewCoordinate(*lat, *lon)
	}
	return geo.Coordinate{}, fmt.Errorf("%w: provide location or lat and lon", geo.ErrMalformedCoordinate)
}
