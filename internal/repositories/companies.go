package repositories

import (
	"context"
	"github.com/akazarov/hh-collector/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Companies struct {
	db *gorm.DB
}

func NewCompaniesRepository(db *gorm.DB) *Companies {
	return &Companies{db: db}
}

// GetOrCreate inserts the company unless its external id is already known and
// returns the surrogate id either way. Existing rows are never updated.
func (repo *Companies) GetOrCreate(ctx context.Context, company entities.Company) (uint, error) {

	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "companies_id"}}, DoNothing: true}).
		Create(&company)
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "failed to create company %v", company.ExternalID)
	}

	if res.RowsAffected > 0 {
		return company.ID, nil
	}

	var existing entities.Company
	if err := repo.db.WithContext(ctx).
		First(&existing, "companies_id = ?", company.ExternalID).Error; err != nil {
		return 0, errors.Wrapf(err, "failed to resolve company %v", company.ExternalID)
	}
	return existing.ID, nil
}
