package config

import (
	"time"

	"github.com/spf13/viper"
)

// Data source kinds the API can load reference data from.
const (
	SourceBucket   = "bucket"
	SourcePostgres = "postgres"
)

// Config stores all configuration of the application, read by viper from a
// config file and overridable through environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`

	// Where reference data comes from: the published CSV bucket or the
	// Postgres tables the importer fills.
	DataSource string `mapstructure:"DATA_SOURCE"`
	BucketURL  string `mapstructure:"BUCKET_URL"`
	DBSource   string `mapstructure:"DB_SOURCE"`

	// Local path of the town encoding artifact. Empty means the artifact is
	// fetched from the bucket instead.
	EncoderFile string `mapstructure:"ENCODER_FILE"`

	PredictorURL string `mapstructure:"PREDICTOR_URL"`

	RegionRadiusKm   float64 `mapstructure:"REGION_RADIUS_KM"`
	FacilityRadiusKm float64 `mapstructure:"FACILITY_RADIUS_KM"`

	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	MaxRetries  uint64        `mapstructure:"MAX_RETRIES"`
}

// LoadConfig reads configuration from app.env in path. Environment variables
// take precedence over file values.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("REGION_RADIUS_KM", 1.0)
	viper.SetDefault("FACILITY_RADIUS_KM", 1.0)
	viper.SetDefault("HTTP_TIMEOUT", "10s")
	viper.SetDefault("MAX_RETRIES", 3)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
