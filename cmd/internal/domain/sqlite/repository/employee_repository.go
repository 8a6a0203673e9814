package repository

import (
	"errors"

	"schedly/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultEmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *DefaultEmployeeRepository {
	return &DefaultEmployeeRepository{db: db}
}

func (e *DefaultEmployeeRepository) FindByID(id int) (*entity.Employee, error) {
	var employee entity.Employee
	err := e.db.First(&employee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindAll lists employees, optionally keeping only the active ones. A null
// flag counts as active.
func (e *DefaultEmployeeRepository) FindAll(activeOnly bool) ([]*entity.Employee, error) {
	q := e.db.Order("name asc")
	if activeOnly {
		q = q.Where("active IS NULL OR active = ?", true)
	}

	var employees []*entity.Employee
	err := q.Find(&employees).Error
	return employees, err
}

func (e *DefaultEmployeeRepository) Save(employee *entity.Employee) error {
	return e.db.Save(employee).Error
}

func (e *DefaultEmployeeRepository) Delete(employee *entity.Employee) error {
	return e.db.Delete(employee).Error
}

func (e *DefaultEmployeeRepository) CountAll() (int64, error) {
	var count int64
	err := e.db.Model(&entity.Employee{}).Count(&count).Error
	return count, err
}
