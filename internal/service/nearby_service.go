package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resale-api/internal/geo"
	"resale-api/internal/models"
	"resale-api/internal/proximity"
)

// ErrUnknownCollection reports a nearby lookup against a facility collection
// that does not exist.
var ErrUnknownCollection = errors.New("service: unknown facility collection")

// NearbyService answers direct facility lookups around a point.
type NearbyService struct {
	data *models.ReferenceData
}

// NewNearbyService creates a new nearby facility service
func NewNearbyService(data *models.ReferenceData) *NearbyService {
	return &NearbyService{data: data}
}

// Nearby looks up one facility collection around a point. For the school
// collection, level narrows the lookup to PRIMARY or SECONDARY schools.
func (s *NearbyService) Nearby(ctx context.Context, point geo.Coordinate, collectionName string, radiusKm float64, level string) (*models.NearbyResult, error) {
	collection, ok := s.data.Collection(collectionName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collectionName)
	}

	if collectionName == models.CollectionSchools && level != "" {
		collection = collection.FilterField(models.FieldMainLevel, strings.ToUpper(level))
	}

	result, err := proximity.Query(point, collection, radiusKm, identifierField(collectionName))
	if err != nil {
		return nil, fmt.Errorf("service: query %s: %w", collectionName, err)
	}

	nearby := &models.NearbyResult{
		Collection: collectionName,
		RadiusKm:   radiusKm,
		Count:      result.Count,
		Facilities: result.IDs,
	}
	if result.NearestDefined() {
		nearest := result.NearestKm
		nearby.NearestKm = &nearest
	}
	return nearby, nil
}

// identifierField maps a collection to the column its facilities are named by.
func identifierField(collectionName string) string {
	switch collectionName {
	case models.CollectionSchools:
		return models.FieldSchoolName
	case models.CollectionHawkers:
		return models.FieldHawkerName
	case models.CollectionStations:
		return models.FieldStationName
	case models.CollectionStreetBlocks:
		return models.FieldTown
	}
	return ""
}
