package repositories

import (
	"context"
	"github.com/akazarov/hh-collector/internal/entities"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type companyRepository interface {
	GetOrCreate(ctx context.Context, company entities.Company) (uint, error)
}

// CachedCompanies memoizes external id -> surrogate id so that a page full of
// vacancies from the same employer costs one round-trip, not thirty.
type CachedCompanies struct {
	repo  companyRepository
	cache *gocache.Cache
}

func NewCachedCompanies(repo companyRepository) *CachedCompanies {
	return &CachedCompanies{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c *CachedCompanies) GetOrCreate(ctx context.Context, company entities.Company) (uint, error) {
	if value, found := c.cache.Get(company.ExternalID); found {
		return value.(uint), nil
	}

	id, err := c.repo.GetOrCreate(ctx, company)
	if err == nil {
		if err = c.cache.Add(company.ExternalID, id, gocache.DefaultExpiration); err != nil {
			return id, err
		}
	}

	return id, err
}
