package repository

import (
	"errors"

	"schedly/cmd/internal/domain/entity"
	"schedly/cmd/internal/domain/filter"

	"gorm.io/gorm"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (a *DefaultAppointmentRepository) FindByID(id int) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.Preload("Participants").First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// FindPage returns one page of appointments matching the resolved filter,
// newest scheduled time first, plus the total match count. Participants are
// NOT loaded here; the service expands them row by row so one bad row cannot
// void the page.
func (a *DefaultAppointmentRepository) FindPage(f filter.Filter, limit, skip int) ([]*entity.Appointment, int64, error) {
	scope := filterScope(f)

	var total int64
	if err := a.db.Model(&entity.Appointment{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appts []*entity.Appointment
	err := a.db.Scopes(scope).
		Order("scheduled_at desc, created_at desc").
		Limit(limit).
		Offset(skip).
		Find(&appts).Error
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

func filterScope(f filter.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch f.Kind {
		case filter.KindWindow:
			db = db.Where("scheduled_at >= ?", f.From)
			if f.Until > 0 {
				db = db.Where("scheduled_at < ?", f.Until)
			}
		case filter.KindSessionType:
			db = db.Where("session_type = ?", f.SessionType)
		case filter.KindStatus:
			db = db.Where("status = ?", f.Status)
		}
		return db
	}
}

func (a *DefaultAppointmentRepository) FindParticipants(apptID int) ([]*entity.Registrant, error) {
	var parts []*entity.Registrant
	err := a.db.Model(&entity.Appointment{ID: apptID}).
		Order("registrants.id asc").
		Association("Participants").
		Find(&parts)
	if err != nil {
		return nil, err
	}
	return parts, nil
}

// Create persists the appointment and its participant associations in one
// transaction. Participant rows themselves are left untouched.
func (a *DefaultAppointmentRepository) Create(appointment *entity.Appointment) error {
	return a.db.Omit("Participants.*").Create(appointment).Error
}

// Update writes the appointment row only; participant changes go through
// ReplaceParticipants.
func (a *DefaultAppointmentRepository) Update(appointment *entity.Appointment) error {
	return a.db.Omit("Participants").Save(appointment).Error
}

// ReplaceParticipants swaps the whole participant set for the given one.
func (a *DefaultAppointmentRepository) ReplaceParticipants(appointment *entity.Appointment, participants []*entity.Registrant) error {
	return a.db.Model(appointment).Association("Participants").Replace(participants)
}

func (a *DefaultAppointmentRepository) Delete(appointment *entity.Appointment) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(appointment).Association("Participants").Clear(); err != nil {
			return err
		}
		return tx.Delete(appointment).Error
	})
}

func (a *DefaultAppointmentRepository) CountAll() (int64, error) {
	var count int64
	err := a.db.Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

func (a *DefaultAppointmentRepository) CountByStatus() (map[entity.Status]int64, error) {
	var rows []struct {
		Status entity.Status
		N      int64
	}
	err := a.db.Model(&entity.Appointment{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.N
	}
	return counts, nil
}
