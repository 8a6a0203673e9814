package service

import (
	"schedly/cmd/internal/domain/entity"
	"schedly/cmd/internal/notify"
	"schedly/cmd/internal/pagination"
	"schedly/cmd/internal/utils"
	"schedly/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type RegistrantRepository interface {
	FindByID(id int) (*entity.Registrant, error)
	FindByIDs(ids []int) ([]*entity.Registrant, error)
	ExistsByEmail(email string) (bool, error)
	FindPage(token string, limit, skip int) ([]*entity.Registrant, int64, error)
	Save(registrant *entity.Registrant) error
	Delete(registrant *entity.Registrant) error
}

type RegistrantRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=120"`
	Email     string  `json:"email" validate:"required,max=254"`
	Phone     string  `json:"phone" validate:"required,max=40"`
	BirthDate string  `json:"birth_date" validate:"required"`
	Address   *string `json:"address"`
}

type RegistrantUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=120"`
	Email     *string `json:"email" validate:"omitempty,max=254"`
	Phone     *string `json:"phone" validate:"omitempty,max=40"`
	BirthDate *string `json:"birth_date"`
	Address   *string `json:"address"`
}

type RegistrantResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	BirthDate string  `json:"birth_date"`
	Address   *string `json:"address,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type RegistrantPage struct {
	Registrants []*RegistrantResponse `json:"registrants"`
	pagination.Meta
}

type DefaultRegistrantService struct {
	RegistrantRepo RegistrantRepository
	Validate       *validator.Validate
	Dispatcher     notify.Dispatcher
}

func NewRegistrantService(registrantRepo RegistrantRepository, validate *validator.Validate, dispatcher notify.Dispatcher) *DefaultRegistrantService {
	return &DefaultRegistrantService{
		RegistrantRepo: registrantRepo,
		Validate:       validate,
		Dispatcher:     dispatcher,
	}
}

func (r *DefaultRegistrantService) ListRegistrants(params pagination.Params) (*RegistrantPage, apierror.ErrorResponse) {
	params = params.Normalize()

	registrants, total, err := r.RegistrantRepo.FindPage(params.Filter, params.Limit, params.Skip)
	if err != nil {
		log.Errorf("failed to list registrants (filter %q): %v", params.Filter, err)
		return nil, apierror.InternalServerError
	}

	rows := make([]*RegistrantResponse, len(registrants))
	for i, registrant := range registrants {
		rows[i] = toRegistrantResponse(registrant)
	}
	return &RegistrantPage{Registrants: rows, Meta: pagination.NewMeta(total, params)}, nil
}

func (r *DefaultRegistrantService) GetRegistrant(id int) (*RegistrantResponse, apierror.ErrorResponse) {
	registrant, err := r.RegistrantRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch registrant %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if registrant == nil {
		return nil, apierror.NotFoundError
	}
	return toRegistrantResponse(registrant), nil
}

func (r *DefaultRegistrantService) CreateRegistrant(req *RegistrantRequest) (*RegistrantResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := r.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	email, err := utils.NormalizeEmail(req.Email)
	if err != nil {
		return nil, apierror.NewValidationError("Invalid email address")
	}

	birthDate, err := utils.ParseBirthDate(req.BirthDate)
	if err != nil {
		return nil, apierror.NewValidationError("Birth date must be DD/MM/YYYY or YYYY-MM-DD")
	}

	taken, err := r.RegistrantRepo.ExistsByEmail(email)
	if err != nil {
		log.Errorf("failed to check email %s: %v", email, err)
		return nil, apierror.InternalServerError
	}
	if taken {
		return nil, apierror.EmailTakenError
	}

	registrant := &entity.Registrant{
		Name:      req.Name,
		Email:     email,
		Phone:     req.Phone,
		BirthDate: birthDate,
		Address:   req.Address,
		CreatedAt: utils.NowUTC(),
	}

	if err := r.RegistrantRepo.Save(registrant); err != nil {
		log.Errorf("failed to create registrant: %v", err)
		return nil, apierror.InternalServerError
	}

	r.Dispatcher.Dispatch(notify.Message{
		ID:        uuid.NewString(),
		Recipient: registrant.Email,
		Subject:   "Welcome to Schedly",
		Template:  "registrant_welcome",
		Context:   map[string]string{"Name": registrant.Name},
	})

	return toRegistrantResponse(registrant), nil
}

// UpdateRegistrant merges supplied fields only. An "id" in the payload is
// ignored; the path parameter wins.
func (r *DefaultRegistrantService) UpdateRegistrant(id int, req *RegistrantUpdateRequest) (*RegistrantResponse, apierror.ErrorResponse) {
	if err := r.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	registrant, err := r.RegistrantRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch registrant %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if registrant == nil {
		return nil, apierror.NotFoundError
	}

	if req.Name != nil {
		registrant.Name = *req.Name
	}
	if req.Email != nil {
		email, err := utils.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, apierror.NewValidationError("Invalid email address")
		}
		if email != registrant.Email {
			taken, err := r.RegistrantRepo.ExistsByEmail(email)
			if err != nil {
				log.Errorf("failed to check email %s: %v", email, err)
				return nil, apierror.InternalServerError
			}
			if taken {
				return nil, apierror.EmailTakenError
			}
		}
		registrant.Email = email
	}
	if req.Phone != nil {
		registrant.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		birthDate, err := utils.ParseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, apierror.NewValidationError("Birth date must be DD/MM/YYYY or YYYY-MM-DD")
		}
		registrant.BirthDate = birthDate
	}
	if req.Address != nil {
		registrant.Address = req.Address
	}

	if err := r.RegistrantRepo.Save(registrant); err != nil {
		log.Errorf("failed to update registrant %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toRegistrantResponse(registrant), nil
}

// DeleteRegistrant removes the registrant and their participant memberships.
// Appointments they were booked into are kept.
func (r *DefaultRegistrantService) DeleteRegistrant(id int) apierror.ErrorResponse {
	registrant, err := r.RegistrantRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch registrant %d: %v", id, err)
		return apierror.InternalServerError
	}
	if registrant == nil {
		return apierror.NotFoundError
	}

	if err := r.RegistrantRepo.Delete(registrant); err != nil {
		log.Errorf("failed to delete registrant %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func toRegistrantResponse(registrant *entity.Registrant) *RegistrantResponse {
	return &RegistrantResponse{
		ID:        registrant.ID,
		Name:      registrant.Name,
		Email:     registrant.Email,
		Phone:     registrant.Phone,
		BirthDate: registrant.BirthDate,
		Address:   registrant.Address,
		CreatedAt: utils.FormatEpoch(registrant.CreatedAt),
	}
}
