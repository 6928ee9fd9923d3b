package entities

const DefaultCountry = "Russia"

type Location struct {
	ID         uint   `gorm:"primaryKey"`
	ExternalID string `gorm:"column:location_id;uniqueIndex"`
	Country    string
	City       string
}
