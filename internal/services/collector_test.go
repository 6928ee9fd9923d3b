package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/akazarov/hh-collector/internal/clients/hh"
	"github.com/akazarov/hh-collector/internal/config"
	"github.com/akazarov/hh-collector/internal/entities"
	"github.com/akazarov/hh-collector/internal/events"
	"github.com/akazarov/hh-collector/internal/repositories"
	"github.com/asaskevich/EventBus"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRetriever struct {
	previews  []hh.VacancyPreview
	details   map[string]hh.Vacancy
	detailErr error
}

func (m *mockRetriever) GetVacancies(_ hh.SearchParameters) ([]hh.VacancyPreview, error) {
	return m.previews, nil
}

func (m *mockRetriever) GetVacancy(id string) (hh.Vacancy, error) {
	if m.detailErr != nil {
		return hh.Vacancy{}, m.detailErr
	}
	return m.details[id], nil
}

type collectorFixture struct {
	collector *Collector
	dbCtx     *repositories.DbContext
	vacancies *repositories.Vacancies
	collected []events.VacancyCollected
}

func newCollectorFixture(t *testing.T, retriever *mockRetriever) *collectorFixture {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	fixture := &collectorFixture{dbCtx: dbCtx}

	bus := EventBus.New()
	require.NoError(t, bus.Subscribe(events.VacancyCollectedTopic, func(event events.VacancyCollected) {
		fixture.collected = append(fixture.collected, event)
	}))

	fixture.vacancies = repositories.NewVacanciesRepository(dbCtx.DB)
	fixture.collector = NewCollector(
		bus,
		retriever,
		repositories.NewCachedCompanies(repositories.NewCompaniesRepository(dbCtx.DB)),
		repositories.NewCachedLocations(repositories.NewLocationsRepository(dbCtx.DB)),
		fixture.vacancies,
		config.CollectorConfig{RegionID: "1", WindowDays: 30, PageSize: 30},
	)
	return fixture
}

func (f *collectorFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.dbCtx.DB.Model(model).Count(&count).Error)
	return count
}

func scenarioRetriever() *mockRetriever {

	preview := hh.VacancyPreview{
		ID:                "94581234",
		Name:              "Backend Developer",
		PublishedAt:       hh.CustomTime{Time: time.Date(2024, 5, 3, 10, 22, 0, 0, moscow)},
		Address:           &hh.Address{ID: "7", City: "Moscow"},
		Salary:            &hh.Salary{From: intPtr(100000)},
		ProfessionalRoles: []hh.ProfessionalRole{{Name: "Backend Developer"}},
	}

	return &mockRetriever{
		previews: []hh.VacancyPreview{preview},
		details: map[string]hh.Vacancy{
			"94581234": {
				VacancyPreview: preview,
				KeySkills:      []hh.KeySkill{{Name: "Python"}, {Name: "SQL"}},
			},
		},
	}
}

func Test_Collector_PersistsListingWithSkills(t *testing.T) {

	fixture := newCollectorFixture(t, scenarioRetriever())
	require.NoError(t, fixture.collector.Collect(context.Background()))

	assert.EqualValues(t, 0, fixture.count(t, &entities.Company{}))
	assert.EqualValues(t, 1, fixture.count(t, &entities.Location{}))
	assert.EqualValues(t, 1, fixture.count(t, &entities.Vacancy{}))
	assert.EqualValues(t, 2, fixture.count(t, &entities.Skill{}))
	assert.EqualValues(t, 2, fixture.count(t, &entities.VacancySkill{}))

	var location entities.Location
	require.NoError(t, fixture.dbCtx.DB.First(&location, "location_id = ?", "7").Error)
	assert.Equal(t, "Moscow", location.City)

	var vacancy entities.Vacancy
	require.NoError(t, fixture.dbCtx.DB.First(&vacancy, "h_id = ?", "94581234").Error)
	assert.Nil(t, vacancy.CompanyID)
	require.NotNil(t, vacancy.LocationID)
	assert.Equal(t, location.ID, *vacancy.LocationID)
	require.NotNil(t, vacancy.MinSalary)
	assert.Equal(t, 100000, *vacancy.MinSalary)
	assert.Nil(t, vacancy.MaxSalary)
	require.NotNil(t, vacancy.Category)
	assert.Equal(t, "Backend Developer", *vacancy.Category)
	assert.Equal(t, "2024-05-03", vacancy.PublishDate)
	assert.True(t, vacancy.Enriched)

	names, err := fixture.vacancies.SkillNames(context.Background(), vacancy.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Python", "SQL"}, names)

	require.Len(t, fixture.collected, 1)
	assert.Equal(t, "94581234", fixture.collected[0].ExternalID)
	assert.Equal(t, 2, fixture.collected[0].SkillCount)
}

func Test_Collector_SecondRunIsIdempotent(t *testing.T) {

	fixture := newCollectorFixture(t, scenarioRetriever())
	require.NoError(t, fixture.collector.Collect(context.Background()))
	require.NoError(t, fixture.collector.Collect(context.Background()))

	assert.EqualValues(t, 1, fixture.count(t, &entities.Location{}))
	assert.EqualValues(t, 1, fixture.count(t, &entities.Vacancy{}))
	assert.EqualValues(t, 2, fixture.count(t, &entities.Skill{}))
	assert.EqualValues(t, 2, fixture.count(t, &entities.VacancySkill{}))
}

func Test_Collector_DetailFailureLeavesVacancyPending(t *testing.T) {

	retriever := scenarioRetriever()
	retriever.detailErr = errors.New("upstream is down")

	fixture := newCollectorFixture(t, retriever)
	require.NoError(t, fixture.collector.Collect(context.Background()))

	assert.EqualValues(t, 1, fixture.count(t, &entities.Vacancy{}))
	assert.EqualValues(t, 0, fixture.count(t, &entities.VacancySkill{}))

	var vacancy entities.Vacancy
	require.NoError(t, fixture.dbCtx.DB.First(&vacancy, "h_id = ?", "94581234").Error)
	assert.False(t, vacancy.Enriched)

	// upstream recovers: the next run enriches the pending vacancy
	retriever.detailErr = nil
	require.NoError(t, fixture.collector.Collect(context.Background()))

	assert.EqualValues(t, 1, fixture.count(t, &entities.Vacancy{}))
	assert.EqualValues(t, 2, fixture.count(t, &entities.VacancySkill{}))

	require.NoError(t, fixture.dbCtx.DB.First(&vacancy, "h_id = ?", "94581234").Error)
	assert.True(t, vacancy.Enriched)
}

func Test_Collector_SkipsMalformedItemAndContinues(t *testing.T) {

	retriever := scenarioRetriever()
	retriever.previews = append([]hh.VacancyPreview{{
		ID:          "no-title",
		PublishedAt: hh.CustomTime{Time: time.Date(2024, 5, 3, 9, 0, 0, 0, moscow)},
	}}, retriever.previews...)

	fixture := newCollectorFixture(t, retriever)
	require.NoError(t, fixture.collector.Collect(context.Background()))

	assert.EqualValues(t, 1, fixture.count(t, &entities.Vacancy{}))

	var vacancy entities.Vacancy
	require.NoError(t, fixture.dbCtx.DB.First(&vacancy, "h_id = ?", "94581234").Error)
	assert.True(t, vacancy.Enriched)
}

func Test_Collector_SharedEmployerCreatesOneCompanyRow(t *testing.T) {

	employer := &hh.Employer{ID: "1455", Name: "HeadHunter"}
	first := hh.VacancyPreview{
		ID:          "111",
		Name:        "Backend Developer",
		PublishedAt: hh.CustomTime{Time: time.Date(2024, 5, 3, 10, 0, 0, 0, moscow)},
		Employer:    employer,
	}
	second := hh.VacancyPreview{
		ID:          "222",
		Name:        "Frontend Developer",
		PublishedAt: hh.CustomTime{Time: time.Date(2024, 5, 3, 11, 0, 0, 0, moscow)},
		Employer:    employer,
	}

	retriever := &mockRetriever{
		previews: []hh.VacancyPreview{first, second},
		details: map[string]hh.Vacancy{
			"111": {VacancyPreview: first},
			"222": {VacancyPreview: second},
		},
	}

	fixture := newCollectorFixture(t, retriever)
	require.NoError(t, fixture.collector.Collect(context.Background()))

	assert.EqualValues(t, 1, fixture.count(t, &entities.Company{}))
	assert.EqualValues(t, 2, fixture.count(t, &entities.Vacancy{}))

	var vacancies []entities.Vacancy
	require.NoError(t, fixture.dbCtx.DB.Order("h_id").Find(&vacancies).Error)
	require.Len(t, vacancies, 2)
	require.NotNil(t, vacancies[0].CompanyID)
	require.NotNil(t, vacancies[1].CompanyID)
	assert.Equal(t, *vacancies[0].CompanyID, *vacancies[1].CompanyID)
}
