package entities

// Vacancy is one job listing. ExternalID is the upstream identifier and the
// natural key: re-collecting the same vacancy is a no-op, not an update.
// Optional attributes are pointers so that "absent upstream" survives as NULL.
type Vacancy struct {
	ID          uint   `gorm:"primaryKey"`
	ExternalID  string `gorm:"column:h_id;uniqueIndex"`
	Title       string
	Position    *string
	PublishDate string
	Category    *string
	CompanyID   *uint
	LocationID  *uint
	MinSalary   *int
	MaxSalary   *int

	// Enriched reports whether the detail fetch for this vacancy completed
	// and its skill associations were committed. Rows with Enriched == false
	// are picked up again on the next run.
	Enriched bool
}
