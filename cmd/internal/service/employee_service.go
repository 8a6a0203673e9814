package service

import (
	"schedly/cmd/internal/domain/entity"
	"schedly/cmd/internal/utils"
	"schedly/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type EmployeeRepository interface {
	FindByID(id int) (*entity.Employee, error)
	FindAll(activeOnly bool) ([]*entity.Employee, error)
	Save(employee *entity.Employee) error
	Delete(employee *entity.Employee) error
}

type EmployeeRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=120"`
	Specialty    *string `json:"specialty"`
	Active       *bool   `json:"active"`
	RegistrantID *int    `json:"registrant_id"`
}

type EmployeeUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=120"`
	Specialty    *string `json:"specialty"`
	Active       *bool   `json:"active"`
	RegistrantID *int    `json:"registrant_id"`
}

type EmployeeResponse struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Specialty    *string `json:"specialty,omitempty"`
	Active       bool    `json:"active"`
	RegistrantID *int    `json:"registrant_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type DefaultEmployeeService struct {
	EmployeeRepo EmployeeRepository
	Validate     *validator.Validate
}

func NewEmployeeService(employeeRepo EmployeeRepository, validate *validator.Validate) *DefaultEmployeeService {
	return &DefaultEmployeeService{EmployeeRepo: employeeRepo, Validate: validate}
}

func (e *DefaultEmployeeService) ListEmployees(activeOnly bool) ([]*EmployeeResponse, apierror.ErrorResponse) {
	employees, err := e.EmployeeRepo.FindAll(activeOnly)
	if err != nil {
		log.Errorf("failed to list employees: %v", err)
		return nil, apierror.InternalServerError
	}

	rows := make([]*EmployeeResponse, len(employees))
	for i, employee := range employees {
		rows[i] = toEmployeeResponse(employee)
	}
	return rows, nil
}

func (e *DefaultEmployeeService) GetEmployee(id int) (*EmployeeResponse, apierror.ErrorResponse) {
	employee, err := e.EmployeeRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch employee %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if employee == nil {
		return nil, apierror.NotFoundError
	}
	return toEmployeeResponse(employee), nil
}

func (e *DefaultEmployeeService) CreateEmployee(req *EmployeeRequest) (*EmployeeResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := e.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	now := utils.NowUTC()
	employee := &entity.Employee{
		Name:         req.Name,
		Specialty:    req.Specialty,
		Active:       req.Active,
		RegistrantID: req.RegistrantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := e.EmployeeRepo.Save(employee); err != nil {
		log.Errorf("failed to create employee: %v", err)
		return nil, apierror.InternalServerError
	}
	return toEmployeeResponse(employee), nil
}

func (e *DefaultEmployeeService) UpdateEmployee(id int, req *EmployeeUpdateRequest) (*EmployeeResponse, apierror.ErrorResponse) {
	if err := e.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	employee, err := e.EmployeeRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch employee %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if employee == nil {
		return nil, apierror.NotFoundError
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Specialty != nil {
		employee.Specialty = req.Specialty
	}
	if req.Active != nil {
		employee.Active = req.Active
	}
	if req.RegistrantID != nil {
		employee.RegistrantID = req.RegistrantID
	}
	employee.UpdatedAt = utils.NowUTC()

	if err := e.EmployeeRepo.Save(employee); err != nil {
		log.Errorf("failed to update employee %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toEmployeeResponse(employee), nil
}

func (e *DefaultEmployeeService) DeleteEmployee(id int) apierror.ErrorResponse {
	employee, err := e.EmployeeRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch employee %d: %v", id, err)
		return apierror.InternalServerError
	}
	if employee == nil {
		return apierror.NotFoundError
	}

	if err := e.EmployeeRepo.Delete(employee); err != nil {
		log.Errorf("failed to delete employee %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func toEmployeeResponse(employee *entity.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:           employee.ID,
		Name:         employee.Name,
		Specialty:    employee.Specialty,
		Active:       employee.IsActive(),
		RegistrantID: employee.RegistrantID,
		CreatedAt:    utils.FormatEpoch(employee.CreatedAt),
		UpdatedAt:    utils.FormatEpoch(employee.UpdatedAt),
	}
}
