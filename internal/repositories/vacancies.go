package repositories

import (
	"context"
	"github.com/akazarov/hh-collector/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Vacancies struct {
	db *gorm.DB
}

func NewVacanciesRepository(db *gorm.DB) *Vacancies {
	return &Vacancies{db: db}
}

// GetOrCreate inserts the vacancy unless its external id is already known and
// returns the persisted row. The created flag reports whether this call
// inserted it.
func (repo *Vacancies) GetOrCreate(ctx context.Context, vacancy entities.Vacancy) (entities.Vacancy, bool, error) {

	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "h_id"}}, DoNothing: true}).
		Create(&vacancy)
	if res.Error != nil {
		return entities.Vacancy{}, false, errors.Wrapf(res.Error, "failed to create vacancy %v", vacancy.ExternalID)
	}

	if res.RowsAffected > 0 {
		return vacancy, true, nil
	}

	var existing entities.Vacancy
	if err := repo.db.WithContext(ctx).
		First(&existing, "h_id = ?", vacancy.ExternalID).Error; err != nil {
		return entities.Vacancy{}, false, errors.Wrapf(err, "failed to resolve vacancy %v", vacancy.ExternalID)
	}
	return existing, false, nil
}

// AttachSkills links the vacancy to every named skill and marks it enriched,
// all in one transaction: either the full skill set is committed or nothing
// changes and the vacancy stays pending.
func (repo *Vacancies) AttachSkills(ctx context.Context, vacancyID uint, names []string) error {

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for _, name := range names {
			skillID, err := upsertSkill(tx, name)
			if err != nil {
				return err
			}

			link := entities.VacancySkill{VacancyID: vacancyID, SkillID: skillID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return errors.Wrapf(err, "failed to link skill %q to vacancy %v", name, vacancyID)
			}
		}

		return tx.Model(&entities.Vacancy{}).Where("id = ?", vacancyID).
			Update("enriched", true).Error
	})
}

// GetUnenriched returns vacancies whose detail fetch never completed, oldest
// first, so a later run can retry them.
func (repo *Vacancies) GetUnenriched(ctx context.Context, limit int) ([]entities.Vacancy, error) {

	var vacancies []entities.Vacancy
	if err := repo.db.WithContext(ctx).
		Where("enriched = ?", false).
		Order("id").
		Limit(limit).
		Find(&vacancies).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get unenriched vacancies")
	}
	return vacancies, nil
}

// SkillNames returns the names of all skills linked to the vacancy.
func (repo *Vacancies) SkillNames(ctx context.Context, vacancyID uint) ([]string, error) {

	var names []string
	err := repo.db.WithContext(ctx).
		Model(&entities.Skill{}).
		Joins("JOIN vacancy_skill ON vacancy_skill.skill_id = skills.id").
		Where("vacancy_skill.vacancy_id = ?", vacancyID).
		Pluck("skills.name", &names).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get skills of vacancy %v", vacancyID)
	}
	return names, nil
}
