package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"

	"github.com/akazarov/hh-collector/internal/clients/hh"
	"github.com/akazarov/hh-collector/internal/config"
	"github.com/akazarov/hh-collector/internal/entities"
	"github.com/akazarov/hh-collector/internal/events"
	"github.com/akazarov/hh-collector/internal/logger"
	"github.com/akazarov/hh-collector/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type vacancyRetriever interface {
	GetVacancies(parameters hh.SearchParameters) ([]hh.VacancyPreview, error)
	GetVacancy(id string) (hh.Vacancy, error)
}

type companyRepository interface {
	GetOrCreate(ctx context.Context, company entities.Company) (uint, error)
}

type locationRepository interface {
	GetOrCreate(ctx context.Context, location entities.Location) (uint, error)
}

type vacancyRepository interface {
	GetOrCreate(ctx context.Context, vacancy entities.Vacancy) (entities.Vacancy, bool, error)
	AttachSkills(ctx context.Context, vacancyID uint, names []string) error
	GetUnenriched(ctx context.Context, limit int) ([]entities.Vacancy, error)
}

// Collector runs the ingestion pipeline: one listing page per run, then one
// detail fetch and one set of upserts per vacancy, sequentially.
type Collector struct {
	bus        EventBus.Bus
	client     vacancyRetriever
	companies  companyRepository
	locations  locationRepository
	vacancies  vacancyRepository
	regionID   string
	windowDays int
	pageSize   int
}

func NewCollector(bus EventBus.Bus, client vacancyRetriever, companies companyRepository,
	locations locationRepository, vacancies vacancyRepository, cfg config.CollectorConfig) *Collector {

	return &Collector{
		bus:        bus,
		client:     client,
		companies:  companies,
		locations:  locations,
		vacancies:  vacancies,
		regionID:   cfg.RegionID,
		windowDays: cfg.WindowDays,
		pageSize:   cfg.PageSize,
	}
}

// Collect fetches one page of vacancies published within the configured
// window and persists them. A listing fetch failure aborts the run; a failure
// on a single item is logged and does not affect the rest of the page.
func (c *Collector) Collect(ctx context.Context) error {

	start := time.Now()
	log.Infof("running collection for region %v, window of %v days", c.regionID, c.windowDays)

	c.retryUnenriched(ctx)

	now := time.Now()
	params := hh.SearchParameters{
		AreaID:   c.regionID,
		DateFrom: now.AddDate(0, 0, -c.windowDays),
		DateTo:   now,
		PerPage:  c.pageSize,
	}

	previews, err := c.client.GetVacancies(params)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).Errorf("failed to get vacancies page: %v", err)
		return err
	}

	var persisted int
	for _, preview := range previews {

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if c.collectOne(ctx, preview) == nil {
			persisted++
		}
	}

	metrics.CollectionDuration.Observe(time.Since(start).Seconds())
	log.Infof("collection ended after %v, handled %v of %v vacancies", time.Since(start), persisted, len(previews))
	return nil
}

func (c *Collector) collectOne(ctx context.Context, preview hh.VacancyPreview) error {

	normalized, err := normalizeVacancy(preview)
	if err != nil {
		metrics.SkippedItemsCounter.Inc()
		log.Warnf("skipping malformed listing item: %v", err)
		return err
	}

	vacancy := normalized.vacancy

	// lookup entities go first so the vacancy row only ever references
	// already-persisted companies and locations
	if normalized.company != nil {
		id, err := c.companies.GetOrCreate(ctx, *normalized.company)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to upsert company: %v", err)
			return err
		}
		vacancy.CompanyID = &id
	}

	if normalized.location != nil {
		id, err := c.locations.GetOrCreate(ctx, *normalized.location)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to upsert location: %v", err)
			return err
		}
		vacancy.LocationID = &id
	}

	persisted, created, err := c.vacancies.GetOrCreate(ctx, vacancy)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to upsert vacancy: %v", err)
		return err
	}

	if created {
		metrics.CollectedVacanciesCounter.Inc()
	}

	if persisted.Enriched {
		return nil
	}

	// the vacancy row is already committed: an enrichment failure leaves it
	// pending and the next run picks it up again
	_ = c.enrich(ctx, persisted)
	return nil
}

func (c *Collector) enrich(ctx context.Context, vacancy entities.Vacancy) error {

	detail, err := c.client.GetVacancy(vacancy.ExternalID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).
			Errorf("failed to get details of vacancy %v: %v", vacancy.ExternalID, err)
		return err
	}

	names := lo.Uniq(lo.Map(detail.KeySkills, func(skill hh.KeySkill, _ int) string {
		return skill.Name
	}))

	if err = c.vacancies.AttachSkills(ctx, vacancy.ID, names); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to attach skills to vacancy %v: %v", vacancy.ExternalID, err)
		return err
	}

	metrics.LinkedSkillsCounter.Add(float64(len(names)))

	c.bus.Publish(events.VacancyCollectedTopic, events.VacancyCollected{
		ExternalID: vacancy.ExternalID,
		Title:      vacancy.Title,
		SkillCount: len(names),
	})
	return nil
}

func (c *Collector) retryUnenriched(ctx context.Context) {

	pending, err := c.vacancies.GetUnenriched(ctx, c.pageSize)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get unenriched vacancies: %v", err)
		return
	}

	if len(pending) == 0 {
		return
	}

	log.Infof("retrying enrichment for %v vacancies", len(pending))
	for _, vacancy := range pending {

		select {
		case <-ctx.Done():
			return
		default:
		}

		_ = c.enrich(ctx, vacancy)
	}
}
