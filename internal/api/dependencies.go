package api

import (
	"time"

	"vikare/airports/internal/common"
	"vikare/airports/internal/config"
	"vikare/airports/internal/db/repositories"
	"vikare/airports/internal/logging"
	"vikare/airports/internal/metrics"
	"vikare/airports/internal/services"
)

type Repositories struct {
	Airports *repositories.AirportRepository
}

type Services struct {
	Airports services.AirportService
	Cache    common.CacheInterface
}

type Dependencies struct {
	Config   *config.Config
	Metrics  *metrics.MetricsRegistry
	Repo     *Repositories
	Services *Services
}

// InitDependencies builds the object graph and loads the airport dataset.
// A dataset that cannot be read is returned as an error so the process never
// becomes ready without data.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	airportRepo := repositories.NewAirportRepository(cfg.Dataset.Path)

	start := time.Now()
	if err := airportRepo.Load(); err != nil {
		metricsReg.DatasetLoadFailures.Inc()
		return nil, err
	}
	loadTime := time.Since(start)

	count, _ := airportRepo.Count()
	metricsReg.DatasetAirports.Set(float64(count))
	metricsReg.DatasetLoadSeconds.Set(loadTime.Seconds())

	logging.Info("Airport dataset loaded",
		"source", airportRepo.Source(),
		"airports", count,
		"duration_ms", loadTime.Milliseconds(),
	)

	repos := &Repositories{
		Airports: airportRepo,
	}

	svcs := &Services{
		Airports: services.NewAirportQueryService(airportRepo),
		Cache:    common.NewCacheService(cfg.RateLimit.LimiterTTL(), time.Minute),
	}

	return &Dependencies{
		Config:   cfg,
		Metrics:  metricsReg,
		Repo:     repos,
		Services: svcs,
	}, nil
}
