package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"gorm.io/driver/postgres"
	"os/signal"
	"syscall"

	"github.com/akazarov/hh-collector/internal/clients/hh"
	"github.com/akazarov/hh-collector/internal/config"
	"github.com/akazarov/hh-collector/internal/events"
	"github.com/akazarov/hh-collector/internal/logger"
	"github.com/akazarov/hh-collector/internal/metrics"
	"github.com/akazarov/hh-collector/internal/repositories"
	"github.com/akazarov/hh-collector/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(postgres.Open(cfg.DB.DSN()))
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	companies := repositories.NewCachedCompanies(repositories.NewCompaniesRepository(dbContext.DB))
	locations := repositories.NewCachedLocations(repositories.NewLocationsRepository(dbContext.DB))
	vacancies := repositories.NewVacanciesRepository(dbContext.DB)

	hhClient := hh.NewClient()
	if cfg.Collector.HhMaxRequestsPerSecond > 0 {
		hhClient.SetRateLimit(cfg.Collector.HhMaxRequestsPerSecond)
	}

	bus := EventBus.New()
	err = bus.Subscribe(events.VacancyCollectedTopic, func(event events.VacancyCollected) {
		log.Debugf("collected vacancy %v with %v skills: %v", event.ExternalID, event.SkillCount, event.Title)
	})
	if err != nil {
		log.Fatalf("can't subscribe to collected events: %v", err)
	}

	collector := services.NewCollector(bus, hhClient, companies, locations, vacancies, cfg.Collector)

	if cfg.Collector.Schedule == "" {
		if err := collector.Collect(ctx); err != nil {
			log.Fatalf("collection run failed: %v", err)
		}
		return
	}

	scheduler, err := services.NewCollectionScheduler(collector, cfg.Collector.Schedule)
	if err != nil {
		log.Fatalf("can't create collection scheduler: %v", err)
	}
	defer scheduler.Stop()

	<-ctx.Done()
	log.Info("Shutting down...")
}
