package models

// Gig is a service listing owned by exactly one provider. Only that
// provider may mutate or delete it.
type Gig struct {
	BaseModel
	ProviderID  string      `gorm:"not null;index"`
	Title       string      `gorm:"not null"`
	Description string      `gorm:"not null"`
	Location    *string     `gorm:"type:text"`
	Budget      *float64    `gorm:"check:budget >= 0"`
	Category    GigCategory `gorm:"type:varchar(30);not null"`
	Status      GigStatus   `gorm:"type:varchar(20);not null;default:'open'"`

	// Relations
	Provider *User `gorm:"foreignKey:ProviderID"`
}
