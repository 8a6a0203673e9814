package routes

import (
	"net/http"
	"strconv"

	"schedly/cmd/internal/pagination"
	"schedly/cmd/internal/service"
	"schedly/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AppointmentService interface {
	ListAppointments(params pagination.Params) (*service.AppointmentPage, apierror.ErrorResponse)
	GetAppointment(id int) (*service.AppointmentResponse, apierror.ErrorResponse)
	CreateAppointment(req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	UpdateAppointment(id int, req *service.AppointmentUpdateRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	DeleteAppointment(id int) apierror.ErrorResponse
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
}

func NewAppointmentDefault(apptService AppointmentService) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService}
}

func (a *DefaultAppointmentRoute) ListAppointments(c echo.Context) error {
	params := pagination.ParseParams(c.QueryParam("limit"), c.QueryParam("skip"), c.QueryParam("filter"))

	page, apierr := a.AppointmentService.ListAppointments(params)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, page)
}

func (a *DefaultAppointmentRoute) GetAppointment(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	appt, apierr := a.AppointmentService.GetAppointment(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (a *DefaultAppointmentRoute) CreateAppointment(c echo.Context) error {
	var req service.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.CreateAppointment(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, appt)
}

func (a *DefaultAppointmentRoute) UpdateAppointment(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.AppointmentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.UpdateAppointment(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (a *DefaultAppointmentRoute) DeleteAppointment(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := a.AppointmentService.DeleteAppointment(id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}

func pathID(c echo.Context) (int, apierror.ErrorResponse) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "int")
	}
	return id, nil
}
