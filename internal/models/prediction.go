package models

import "resale-api/internal/geo"

// PredictionQuery is the validated input to a resale price prediction.
type PredictionQuery struct {
	Point          geo.Coordinate
	Rooms          int // leading digit of the flat type, e.g. 4 for "4-room"
	LeaseYearsLeft int
	Floor          int
}

// Prediction is the outcome of one prediction request: the model's price
// estimate plus the facilities that informed it, for display to the user.
type Prediction struct {
	PredictedPrice   float64  `json:"predicted_price"` // thousands of SGD
	Town             string   `json:"town"`
	Quarter          string   `json:"quarter"`
	PrimarySchools   []string `json:"primary_schools"`
	SecondarySchools []string `json:"secondary_schools"`
	HawkerCentres    []string `json:"hawker_centres"`
	TrainStations    []string `json:"train_stations"`
}

// NearbyResult is the outcome of a direct facility proximity lookup.
type NearbyResult struct {
	Collection string   `json:"collection"`
	RadiusKm   float64  `json:"radius_km"`
	Count      int      `json:"count"`
	NearestKm  *float64 `json:"nearest_km,omitempty"` // omitted when the collection is empty
	Facilities []string `json:"facilities"`
}
