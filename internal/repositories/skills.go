package repositories

import (
	"context"
	"github.com/akazarov/hh-collector/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Skills struct {
	db *gorm.DB
}

func NewSkillsRepository(db *gorm.DB) *Skills {
	return &Skills{db: db}
}

func (repo *Skills) GetOrCreate(ctx context.Context, name string) (uint, error) {
	return upsertSkill(repo.db.WithContext(ctx), name)
}

// upsertSkill works on a plain handle so that Vacancies.AttachSkills can reuse
// it inside a transaction.
func upsertSkill(db *gorm.DB, name string) (uint, error) {

	skill := entities.Skill{Name: name}
	res := db.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&skill)
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "failed to create skill %q", name)
	}

	if res.RowsAffected > 0 {
		return skill.ID, nil
	}

	var existing entities.Skill
	if err := db.First(&existing, "name = ?", name).Error; err != nil {
		return 0, errors.Wrapf(err, "failed to resolve skill %q", name)
	}
	return existing.ID, nil
}
