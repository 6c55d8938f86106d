package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"resale-api/internal/config"
	"resale-api/internal/encoder"
	"resale-api/internal/handler"
	"resale-api/internal/predictor"
	"resale-api/internal/repository"
	"resale-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "resale-api/docs"
)

//	@title			Resale Price API
//	@version		1.0
//	@description	Predicts HDB flat resale prices and lists public facilities around a point.

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	ctx := context.Background()

	// Reference data source
	var (
		source repository.Source
		bucket *repository.Bucket
	)
	if cfg.BucketURL != "" {
		bucket = repository.NewBucket(repository.BucketOptions{
			BaseURL:    cfg.BucketURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
			Logger:     log.Logger,
		})
	}

	switch cfg.DataSource {
	case config.SourceBucket:
		if bucket == nil {
			log.Fatal().Msg("BUCKET_URL is required for the bucket data source")
		}
		source = bucket
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer pool.Close()
		source = repository.NewPostgres(pool)
	default:
		log.Fatal().Str("data_source", cfg.DataSource).Msg("unknown data source")
	}

	data, err := source.LoadReferenceData(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load reference data")
	}

	townEncoder, err := loadEncoder(ctx, cfg, bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load town encoder")
	}

	predictorClient := predictor.New(predictor.Options{
		Endpoint:   cfg.PredictorURL,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
		Logger:     log.Logger,
	})

	// Initialize layers
	predictionService, err := service.NewPredictionService(data, townEncoder, predictorClient, cfg.RegionRadiusKm, cfg.FacilityRadiusKm)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build prediction service")
	}
	nearbyService := service.NewNearbyService(data)

	predictHandler := handler.NewPredictHandler(predictionService)
	nearbyHandler := handler.NewNearbyHandler(nearbyService, cfg.FacilityRadiusKm)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handler.RequestLogger(log.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.POST("/predict", predictHandler.Predict)
	r.GET("/facilities/nearby", nearbyHandler.Nearby)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Info().Str("address", cfg.ServerAddress).Msg("starting api server")
	r.Run(cfg.ServerAddress)
}

// loadEncoder reads the town encoding artifact from the configured local
// file, falling back to the bucket object.
func loadEncoder(ctx context.Context, cfg config.Config, bucket *repository.Bucket) (*encoder.MeanEncoder, error) {
	if cfg.EncoderFile != "" {
		f, err := os.Open(cfg.EncoderFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return encoder.Load(f)
	}
	if bucket == nil {
		return nil, errors.New("no ENCODER_FILE and no BUCKET_URL configured")
	}
	return bucket.LoadEncoder(ctx)
}
