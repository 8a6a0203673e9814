package entity

type Appointment struct {
	ID              int         `gorm:"primaryKey"`
	Title           string      `gorm:"not null"`
	ScheduledAt     int64       `gorm:"not null;index"`
	SessionType     SessionType `gorm:"not null"`
	Status          Status      `gorm:"not null"`
	Notes           *string
	DurationMinutes int `gorm:"not null"`
	Location        *string
	EmployeeID      *int // References: employees(id)
	CreatedAt       int64 `gorm:"not null"`
	UpdatedAt       int64 `gorm:"not null"`

	// Relations
	Participants []*Registrant `gorm:"many2many:appointment_participants"`
	Employee     *Employee     `gorm:"foreignKey:EmployeeID;references:ID"`
}
