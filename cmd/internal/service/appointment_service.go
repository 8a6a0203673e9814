package service

import (
	"strings"
	"time"

	"schedly/cmd/internal/domain/entity"
	"schedly/cmd/internal/domain/filter"
	"schedly/cmd/internal/monitoring"
	"schedly/cmd/internal/notify"
	"schedly/cmd/internal/pagination"
	"schedly/cmd/internal/utils"
	"schedly/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const (
	defaultDurationMinutes = 60
	maxDurationMinutes     = 1440
)

type AppointmentRepository interface {
	FindByID(id int) (*entity.Appointment, error)
	FindPage(f filter.Filter, limit, skip int) ([]*entity.Appointment, int64, error)
	FindParticipants(apptID int) ([]*entity.Registrant, error)
	Create(appointment *entity.Appointment) error
	Update(appointment *entity.Appointment) error
	ReplaceParticipants(appointment *entity.Appointment, participants []*entity.Registrant) error
	Delete(appointment *entity.Appointment) error
}

type AppointmentRequest struct {
	Title           string  `json:"title" validate:"required,max=128"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	ScheduledAt     string  `json:"scheduled_at"` // RFC3339 alternative to date+time
	Location        *string `json:"location"`
	Notes           *string `json:"notes"`
	ParticipantIDs  []int   `json:"participant_ids"`
	SessionType     string  `json:"session_type"`
	DurationMinutes int     `json:"duration_minutes"`
	EmployeeID      *int    `json:"employee_id"`
}

type AppointmentUpdateRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=128"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	ScheduledAt     *string `json:"scheduled_at"`
	Location        *string `json:"location"`
	Notes           *string `json:"notes"`
	ParticipantIDs  *[]int  `json:"participant_ids"`
	SessionType     *string `json:"session_type"`
	Status          *string `json:"status"`
	DurationMinutes *int    `json:"duration_minutes"`
	EmployeeID      *int    `json:"employee_id"`
}

type ParticipantSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type AppointmentResponse struct {
	ID               int                   `json:"id"`
	Title            string                `json:"title"`
	ScheduledAt      string                `json:"scheduled_at"`
	SessionType      string                `json:"session_type"`
	Status           string                `json:"status"`
	StatusColor      string                `json:"status_color"`
	Notes            *string               `json:"notes,omitempty"`
	DurationMinutes  int                   `json:"duration_minutes"`
	Duration         string                `json:"duration"`
	Location         *string               `json:"location,omitempty"`
	EmployeeID       *int                  `json:"employee_id,omitempty"`
	CreatedAt        string                `json:"created_at"`
	UpdatedAt        string                `json:"updated_at"`
	Participants     []*ParticipantSummary `json:"participants"`
	ParticipantCount int                   `json:"participant_count"`
	Error            string                `json:"error,omitempty"`
}

type AppointmentPage struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	pagination.Meta
}

type DefaultAppointmentService struct {
	AppointmentRepo AppointmentRepository
	RegistrantRepo  RegistrantRepository
	Validate        *validator.Validate
	Dispatcher      notify.Dispatcher
}

func NewAppointmentService(apptRepo AppointmentRepository, registrantRepo RegistrantRepository, validate *validator.Validate, dispatcher notify.Dispatcher) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		AppointmentRepo: apptRepo,
		RegistrantRepo:  registrantRepo,
		Validate:        validate,
		Dispatcher:      dispatcher,
	}
}

// ListAppointments returns one page of appointments with expanded
// participants. A row whose participant lookup fails degrades to its base
// fields with an error marker; the rest of the page is unaffected.
func (a *DefaultAppointmentService) ListAppointments(params pagination.Params) (*AppointmentPage, apierror.ErrorResponse) {
	params = params.Normalize()
	f := filter.Resolve(params.Filter, time.Now())

	appts, total, err := a.AppointmentRepo.FindPage(f, params.Limit, params.Skip)
	if err != nil {
		log.Errorf("failed to list appointments (filter %q): %v", params.Filter, err)
		return nil, apierror.InternalServerError
	}

	rows := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		participants, err := a.AppointmentRepo.FindParticipants(appt.ID)
		if err != nil {
			log.Errorf("failed to expand participants of appointment %d: %v", appt.ID, err)
			row := toAppointmentResponse(appt, nil)
			row.Error = "participants unavailable"
			rows[i] = row
			continue
		}
		rows[i] = toAppointmentResponse(appt, participants)
	}

	return &AppointmentPage{
		Appointments: rows,
		Meta:         pagination.NewMeta(total, params),
	}, nil
}

func (a *DefaultAppointmentService) GetAppointment(id int) (*AppointmentResponse, apierror.ErrorResponse) {
	appt, err := a.AppointmentRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if appt == nil {
		return nil, apierror.NotFoundError
	}
	return toAppointmentResponse(appt, appt.Participants), nil
}

// CreateAppointment persists the appointment and its participant set in one
// transaction, then fires one notification per participant with an email
// address. Notification delivery never affects the outcome.
func (a *DefaultAppointmentService) CreateAppointment(req *AppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	scheduledAt, apierr := resolveSchedule(req.ScheduledAt, req.Date, req.Time)
	if apierr != nil {
		return nil, apierr
	}

	sessionType := entity.SessionMeeting
	if req.SessionType != "" {
		sessionType = entity.SessionType(strings.ToLower(req.SessionType))
		if !sessionType.Valid() {
			return nil, apierror.NewValidationError("Unknown session type")
		}
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = defaultDurationMinutes
	}
	if duration < 1 || duration > maxDurationMinutes {
		return nil, apierror.NewValidationError("Duration must be between 1 and 1440 minutes")
	}

	// Ids that resolve to nothing are silently dropped.
	participants, err := a.RegistrantRepo.FindByIDs(req.ParticipantIDs)
	if err != nil {
		log.Errorf("failed to resolve participants %v: %v", req.ParticipantIDs, err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	appt := &entity.Appointment{
		Title:           req.Title,
		ScheduledAt:     scheduledAt,
		SessionType:     sessionType,
		Status:          entity.StatusScheduled, // caller input never sets the initial status
		Notes:           req.Notes,
		DurationMinutes: duration,
		Location:        req.Location,
		EmployeeID:      req.EmployeeID,
		CreatedAt:       now,
		UpdatedAt:       now,
		Participants:    participants,
	}

	if err := a.AppointmentRepo.Create(appt); err != nil {
		log.Errorf("failed to save appointment: %v", err)
		return nil, apierror.InternalServerError
	}
	monitoring.AppointmentsCreated.Inc()

	a.notifyParticipants(appt, participants)
	return toAppointmentResponse(appt, participants), nil
}

// UpdateAppointment merges the supplied fields only. A supplied participant
// list replaces the existing set wholesale.
func (a *DefaultAppointmentService) UpdateAppointment(id int, req *AppointmentUpdateRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	appt, err := a.AppointmentRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if appt == nil {
		return nil, apierror.NotFoundError
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apierror.NewValidationError("Title cannot be empty")
		}
		appt.Title = title
	}

	if apierr := applySchedule(appt, req); apierr != nil {
		return nil, apierr
	}

	if req.SessionType != nil {
		sessionType := entity.SessionType(strings.ToLower(*req.SessionType))
		if !sessionType.Valid() {
			return nil, apierror.NewValidationError("Unknown session type")
		}
		appt.SessionType = sessionType
	}
	if req.Status != nil {
		status := entity.Status(strings.ToLower(*req.Status))
		if !status.Valid() {
			return nil, apierror.NewValidationError("Unknown status")
		}
		appt.Status = status
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 1 || *req.DurationMinutes > maxDurationMinutes {
			return nil, apierror.NewValidationError("Duration must be between 1 and 1440 minutes")
		}
		appt.DurationMinutes = *req.DurationMinutes
	}
	if req.Location != nil {
		appt.Location = req.Location
	}
	if req.Notes != nil {
		appt.Notes = req.Notes
	}
	if req.EmployeeID != nil {
		appt.EmployeeID = req.EmployeeID
	}

	appt.UpdatedAt = utils.NowUTC()
	if err := a.AppointmentRepo.Update(appt); err != nil {
		log.Errorf("failed to update appointment %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	participants := appt.Participants
	if req.ParticipantIDs != nil {
		participants, err = a.RegistrantRepo.FindByIDs(*req.ParticipantIDs)
		if err != nil {
			log.Errorf("failed to resolve participants %v: %v", *req.ParticipantIDs, err)
			return nil, apierror.InternalServerError
		}
		if err := a.AppointmentRepo.ReplaceParticipants(appt, participants); err != nil {
			log.Errorf("failed to replace participants of appointment %d: %v", id, err)
			return nil, apierror.InternalServerError
		}
	}

	return toAppointmentResponse(appt, participants), nil
}

func (a *DefaultAppointmentService) DeleteAppointment(id int) apierror.ErrorResponse {
	appt, err := a.AppointmentRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", id, err)
		return apierror.InternalServerError
	}
	if appt == nil {
		return apierror.NotFoundError
	}

	if err := a.AppointmentRepo.Delete(appt); err != nil {
		log.Errorf("failed to delete appointment %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func (a *DefaultAppointmentService) notifyParticipants(appt *entity.Appointment, participants []*entity.Registrant) {
	for _, p := range participants {
		if strings.TrimSpace(p.Email) == "" {
			continue
		}
		a.Dispatcher.Dispatch(notify.Message{
			ID:        uuid.NewString(),
			Recipient: p.Email,
			Subject:   "New appointment: " + appt.Title,
			Template:  "appointment_created",
			Context: map[string]string{
				"Name":     p.Name,
				"Title":    appt.Title,
				"When":     utils.FormatHuman(appt.ScheduledAt),
				"Location": derefString(appt.Location),
				"Notes":    derefString(appt.Notes),
			},
		})
	}
}

func resolveSchedule(scheduledAt, date, clock string) (int64, apierror.ErrorResponse) {
	if scheduledAt != "" {
		millis, err := utils.FromEpoch(scheduledAt)
		if err != nil {
			return 0, apierror.NewValidationError("scheduled_at must be RFC3339")
		}
		return millis, nil
	}

	if date == "" || clock == "" {
		return 0, apierror.NewValidationError("Both date and time are required")
	}
	millis, err := utils.CombineDateTime(date, clock)
	if err != nil {
		return 0, apierror.NewValidationError("Expected date as YYYY-MM-DD and time as HH:MM")
	}
	return millis, nil
}

func applySchedule(appt *entity.Appointment, req *AppointmentUpdateRequest) apierror.ErrorResponse {
	if req.ScheduledAt != nil {
		millis, err := utils.FromEpoch(*req.ScheduledAt)
		if err != nil {
			return apierror.NewValidationError("scheduled_at must be RFC3339")
		}
		appt.ScheduledAt = millis
		return nil
	}

	if req.Date == nil && req.Time == nil {
		return nil
	}
	if req.Date == nil || req.Time == nil {
		return apierror.NewValidationError("date and time must be supplied together")
	}

	millis, err := utils.CombineDateTime(*req.Date, *req.Time)
	if err != nil {
		return apierror.NewValidationError("Expected date as YYYY-MM-DD and time as HH:MM")
	}
	appt.ScheduledAt = millis
	return nil
}

func toParticipantSummaries(participants []*entity.Registrant) []*ParticipantSummary {
	summaries := make([]*ParticipantSummary, len(participants))
	for i, p := range participants {
		summaries[i] = &ParticipantSummary{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone}
	}
	return summaries
}

func toAppointmentResponse(appt *entity.Appointment, participants []*entity.Registrant) *AppointmentResponse {
	return &AppointmentResponse{
		ID:               appt.ID,
		Title:            appt.Title,
		ScheduledAt:      utils.FormatEpoch(appt.ScheduledAt),
		SessionType:      string(appt.SessionType),
		Status:           string(appt.Status),
		StatusColor:      appt.Status.Color(),
		Notes:            appt.Notes,
		DurationMinutes:  appt.DurationMinutes,
		Duration:         utils.FormatDuration(appt.DurationMinutes),
		Location:         appt.Location,
		EmployeeID:       appt.EmployeeID,
		CreatedAt:        utils.FormatEpoch(appt.CreatedAt),
		UpdatedAt:        utils.FormatEpoch(appt.UpdatedAt),
		Participants:     toParticipantSummaries(participants),
		ParticipantCount: len(participants),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
