package entity

type Employee struct {
	ID           int    `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Specialty    *string
	Active       *bool
	RegistrantID *int // References: registrants(id)
	CreatedAt    int64 `gorm:"not null"`
	UpdatedAt    int64 `gorm:"not null"`

	// Relations
	Registrant *Registrant `gorm:"foreignKey:RegistrantID;references:ID"`
}

// IsActive treats a missing flag as active, so employees created before the
// flag existed keep showing up in listings.
func (e *Employee) IsActive() bool {
	return e.Active == nil || *e.Active
}
