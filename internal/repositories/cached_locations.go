package repositories

import (
	"context"
	"github.com/akazarov/hh-collector/internal/entities"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type locationRepository interface {
	GetOrCreate(ctx context.Context, location entities.Location) (uint, error)
}

type CachedLocations struct {
	repo  locationRepository
	cache *gocache.Cache
}

func NewCachedLocations(repo locationRepository) *CachedLocations {
	return &CachedLocations{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c *CachedLocations) GetOrCreate(ctx context.Context, location entities.Location) (uint, error) {
	if value, found := c.cache.Get(location.ExternalID); found {
		return value.(uint), nil
	}

	id, err := c.repo.GetOrCreate(ctx, location)
	if err == nil {
		if err = c.cache.Add(location.ExternalID, id, gocache.DefaultExpiration); err != nil {
			return id, err
		}
	}

	return id, err
}
