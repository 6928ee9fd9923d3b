package repositories

import (
	"context"
	"github.com/akazarov/hh-collector/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Locations struct {
	db *gorm.DB
}

func NewLocationsRepository(db *gorm.DB) *Locations {
	return &Locations{db: db}
}

func (repo *Locations) GetOrCreate(ctx context.Context, location entities.Location) (uint, error) {

	if location.Country == "" {
		location.Country = entities.DefaultCountry
	}

	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "location_id"}}, DoNothing: true}).
		Create(&location)
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "failed to create location %v", location.ExternalID)
	}

	if res.RowsAffected > 0 {
		return location.ID, nil
	}

	var existing entities.Location
	if err := repo.db.WithContext(ctx).
		First(&existing, "location_id = ?", location.ExternalID).Error; err != nil {
		return 0, errors.Wrapf(err, "failed to resolve location %v", location.ExternalID)
	}
	return existing.ID, nil
}
