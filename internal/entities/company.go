package entities

// Company is an employer as reported by the upstream API. ExternalID is the
// natural key; rows are created on first sighting and never updated.
type Company struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"column:companies_id;uniqueIndex"`
	Name       string
}
