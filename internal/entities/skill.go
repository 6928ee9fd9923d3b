package entities

// Skill has no upstream identifier, so the free-text name is the natural key.
// Case and whitespace variants are distinct skills.
type Skill struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

type VacancySkill struct {
	VacancyID uint `gorm:"primaryKey"`
	SkillID   uint `gorm:"primaryKey"`
}

func (VacancySkill) TableName() string {
	return "vacancy_skill"
}
