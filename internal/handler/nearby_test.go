package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"resale-api/internal/geo"
	"resale-api/internal/models"
	"resale-api/internal/proximity"
	"resale-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNearbyService is a mock implementation of the NearbyService interface
type MockNearbyService struct {
	mock.Mock
}

func (m *MockNearbyService) Nearby(ctx context.Context, point geo.Coordinate, collection string, radiusKm float64, level string) (*models.NearbyResult, error) {
	args := m.Called(ctx, point, collection, radiusKm, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NearbyResult), args.Error(1)
}

func performNearby(t *testing.T, h *NearbyHandler, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/facilities/nearby", nil)
	req.URL.RawQuery = params.Encode()
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.Nearby(c)
	return w
}

func TestNearbyHandler_Nearby(t *testing.T) {
	point := geo.Coordinate{Lat: 1.3521, Lon: 103.8198}
	nearest := 0.2
	result := &models.NearbyResult{
		Collection: models.CollectionStations,
		RadiusKm:   2.0,
		Count:      1,
		NearestKm:  &nearest,
		Facilities: []string{"Bedok"},
	}

	mockSvc := new(MockNearbyService)
	mockSvc.On("Nearby", mock.Anything, point, models.CollectionStations, 2.0, "").Return(result, nil)

	params := url.Values{}
	params.Set("collection", models.CollectionStations)
	params.Set("location", "(1.3521, 103.8198)")
	params.Set("radius_km", "2.0")

	w := performNearby(t, NewNearbyHandler(mockSvc, 1.0), params)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.NearbyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *result, got)

	mockSvc.AssertExpectations(t)
}

func TestNearbyHandler_Nearby_DefaultRadiusAndLevel(t *testing.T) {
	point := geo.Coordinate{Lat: 1.3521, Lon: 103.8198}
	result := &models.NearbyResult{Collection: models.CollectionSchools, RadiusKm: 2.5, Facilities: []string{}}

	mockSvc := new(MockNearbyService)
	mockSvc.On("Nearby", mock.Anything, point, models.CollectionSchools, 2.5, "primary").Return(result, nil)

	params := url.Values{}
	params.Set("collection", models.CollectionSchools)
	params.Set("lat", "1.3521")
	params.Set("lon", "103.8198")
	params.Set("level", "primary")

	w := performNearby(t, NewNearbyHandler(mockSvc, 2.5), params)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestNearbyHandler_Nearby_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
	}{
		{
			name:   "missing collection",
			params: url.Values{"location": {"(1.3521, 103.8198)"}},
		},
		{
			name:   "missing coordinates",
			params: url.Values{"collection": {models.CollectionStations}},
		},
		{
			name: "malformed location",
			params: url.Values{
				"collection": {models.CollectionStations},
				"location":   {"somewhere in Bedok"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockNearbyService)

			w := performNearby(t, NewNearbyHandler(mockSvc, 1.0), tt.params)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockSvc.AssertNotCalled(t, "Nearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestNearbyHandler_Nearby_ServiceErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "unknown collection",
			err:         fmt.Errorf("%w: petrol_stations", service.ErrUnknownCollection),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "unknown facility collection",
		},
		{
			name:        "invalid radius",
			err:         fmt.Errorf("service: query train_stations: %w", proximity.ErrInvalidRadius),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "radius must be a positive number of kilometres",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockNearbyService)
			mockSvc.On("Nearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			params := url.Values{}
			params.Set("collection", models.CollectionStations)
			params.Set("location", "(1.3521, 103.8198)")
			params.Set("radius_km", "-1")

			w := performNearby(t, NewNearbyHandler(mockSvc, 1.0), params)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMessage, errorBody(t, w))
		})
	}
}
