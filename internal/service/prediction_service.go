package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"resale-api/internal/geo"
	"resale-api/internal/models"
	"resale-api/internal/proximity"
)

// ErrNotServiceable reports a query point with no street block in range;
// no town can be resolved for it.
var ErrNotServiceable = errors.New("service: location not serviceable")

// featureCount is the width of the model's input vector.
const featureCount = 13

// TownEncoder turns a resolved town into the rank the model was trained on.
type TownEncoder interface {
	Transform(category string) (int, error)
}

// Predictor returns the model's price estimate for one feature vector.
type Predictor interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}

// PredictionService contains the core business logic for price predictions.
// It assembles the feature vector in the order the model expects and calls
// the predictor exactly once per request.
type PredictionService struct {
	data       *models.ReferenceData
	primary    *models.Collection
	secondary  *models.Collection
	encoder    TownEncoder
	predictor  Predictor
	regionKm   float64
	facilityKm float64
	now        func() time.Time
}

// NewPredictionService creates a prediction service. Radii of zero fall back
// to 1 km; negative or NaN radii are rejected. The school collection must
// contain both PRIMARY and SECONDARY records.
func NewPredictionService(data *models.ReferenceData, enc TownEncoder, pred Predictor, regionRadiusKm, facilityRadiusKm float64) (*PredictionService, error) {
	if math.IsNaN(regionRadiusKm) || regionRadiusKm < 0 {
		return nil, fmt.Errorf("service: invalid region radius %v", regionRadiusKm)
	}
	if math.IsNaN(facilityRadiusKm) || facilityRadiusKm < 0 {
		return nil, fmt.Errorf("service: invalid facility radius %v", facilityRadiusKm)
	}
	if regionRadiusKm == 0 {
		regionRadiusKm = 1.0
	}
	if facilityRadiusKm == 0 {
		facilityRadiusKm = 1.0
	}

	primary := data.Schools.FilterField(models.FieldMainLevel, models.MainLevelPrimary)
	if primary.Len() == 0 {
		return nil, fmt.Errorf("service: school collection has no %s records", models.MainLevelPrimary)
	}
	secondary := data.Schools.FilterField(models.FieldMainLevel, models.MainLevelSecondary)
	if secondary.Len() == 0 {
		return nil, fmt.Errorf("service: school collection has no %s records", models.MainLevelSecondary)
	}

	return &PredictionService{
		data:       data,
		primary:    primary,
		secondary:  secondary,
		encoder:    enc,
		predictor:  pred,
		regionKm:   regionRadiusKm,
		facilityKm: facilityRadiusKm,
		now:        time.Now,
	}, nil
}

// Predict runs one prediction for the given query point and flat attributes.
func (s *PredictionService) Predict(ctx context.Context, query models.PredictionQuery) (*models.Prediction, error) {
	town, err := s.resolveTown(query.Point)
	if err != nil {
		return nil, err
	}

	townRank, err := s.encoder.Transform(town)
	if err != nil {
		return nil, fmt.Errorf("service: encode town %q: %w", town, err)
	}

	quarter := models.QuarterOf(s.now())
	priceIndex, err := s.data.ResaleIndex.Lookup(quarter)
	if err != nil {
		return nil, fmt.Errorf("service: price index: %w", err)
	}

	prediction := &models.Prediction{Town: town, Quarter: quarter}

	// The model's slot order: count and nearest distance per facility type,
	// then town rank, price index, rooms, remaining lease and level.
	slots := []struct {
		collection *models.Collection
		idField    string
		names      *[]string
	}{
		{s.primary, models.FieldSchoolName, &prediction.PrimarySchools},
		{s.secondary, models.FieldSchoolName, &prediction.SecondarySchools},
		{s.data.Hawkers, models.FieldHawkerName, &prediction.HawkerCentres},
		{s.data.Stations, models.FieldStationName, &prediction.TrainStations},
	}

	features := make([]float64, 0, featureCount)
	for _, slot := range slots {
		result, err := proximity.Query(query.Point, slot.collection, s.facilityKm, slot.idField)
		if err != nil {
			return nil, fmt.Errorf("service: query %s: %w", slot.collection.Name, err)
		}
		features = append(features, float64(result.Count), result.NearestKm)
		*slot.names = result.IDs
	}

	features = append(features,
		float64(townRank),
		priceIndex,
		float64(query.Rooms),
		float64(query.LeaseYearsLeft),
		float64(query.Floor/3),
	)

	price, err := s.predictor.Predict(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("service: predict: %w", err)
	}
	prediction.PredictedPrice = price

	return prediction, nil
}

// resolveTown finds the town of the nearest street block within the region
// radius. Points with no street block in range are not serviceable.
func (s *PredictionService) resolveTown(point geo.Coordinate) (string, error) {
	result, err := proximity.Query(point, s.data.StreetBlocks, s.regionKm, models.FieldTown)
	if err != nil {
		return "", fmt.Errorf("service: resolve town: %w", err)
	}
	if len(result.IDs) == 0 {
		return "", ErrNotServiceable
	}
	// IDs are ordered by distance, the first is the nearest block's town.
	return result.IDs[0], nil
}
