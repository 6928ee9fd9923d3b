package repositories

import (
	"fmt"
	"github.com/akazarov/hh-collector/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

// NewDbContext opens a database through the given dialector. Production uses
// the postgres dialector built from config; tests pass sqlite.
func NewDbContext(dialector gorm.Dialector) (*DbContext, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.Company{})
	if err != nil {
		return fmt.Errorf("failed to migrate Company entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Location{})
	if err != nil {
		return fmt.Errorf("failed to migrate Location entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Vacancy{})
	if err != nil {
		return fmt.Errorf("failed to migrate Vacancy entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Skill{})
	if err != nil {
		return fmt.Errorf("failed to migrate Skill entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.VacancySkill{})
	if err != nil {
		return fmt.Errorf("failed to migrate VacancySkill entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
