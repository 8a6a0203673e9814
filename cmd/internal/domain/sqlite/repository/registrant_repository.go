package repository

import (
	"errors"
	"strings"

	"schedly/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultRegistrantRepository struct {
	db *gorm.DB
}

func NewRegistrantRepository(db *gorm.DB) *DefaultRegistrantRepository {
	return &DefaultRegistrantRepository{db: db}
}

func (r *DefaultRegistrantRepository) FindByID(id int) (*entity.Registrant, error) {
	var registrant entity.Registrant
	err := r.db.First(&registrant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &registrant, nil
}

// FindByIDs resolves a participant-id list. Ids that do not exist are simply
// absent from the result; callers accept a partial list.
func (r *DefaultRegistrantRepository) FindByIDs(ids []int) ([]*entity.Registrant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var registrants []*entity.Registrant
	err := r.db.Where("id IN ?", ids).Find(&registrants).Error
	return registrants, err
}

func (r *DefaultRegistrantRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Registrant{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// FindPage returns one page of registrants, newest first. A non-blank token
// is matched case-insensitively as a substring of name, email or phone.
func (r *DefaultRegistrantRepository) FindPage(token string, limit, skip int) ([]*entity.Registrant, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if token = strings.TrimSpace(token); token == "" {
			return db
		}
		pattern := "%" + strings.ToLower(token) + "%"
		return db.Where(
			"lower(name) LIKE ? OR lower(email) LIKE ? OR lower(phone) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := r.db.Model(&entity.Registrant{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var registrants []*entity.Registrant
	err := r.db.Scopes(scope).
		Order("created_at desc").
		Limit(limit).
		Offset(skip).
		Find(&registrants).Error
	if err != nil {
		return nil, 0, err
	}
	return registrants, total, nil
}

func (r *DefaultRegistrantRepository) Save(registrant *entity.Registrant) error {
	return r.db.Omit("Appointments").Save(registrant).Error
}

// Delete removes the registrant and their participant memberships. The
// appointments themselves stay.
func (r *DefaultRegistrantRepository) Delete(registrant *entity.Registrant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(registrant).Association("Appointments").Clear(); err != nil {
			return err
		}
		return tx.Delete(registrant).Error
	})
}

func (r *DefaultRegistrantRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Registrant{}).Count(&count).Error
	return count, err
}
