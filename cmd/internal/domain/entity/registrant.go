package entity

type Registrant struct {
	ID        int    `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null;uniqueIndex"`
	Phone     string `gorm:"not null"`
	BirthDate string `gorm:"not null"` // normalized to YYYY-MM-DD
	Address   *string
	CreatedAt int64 `gorm:"not null"`

	// Relations
	Appointments []*Appointment `gorm:"many2many:appointment_participants"`
}
