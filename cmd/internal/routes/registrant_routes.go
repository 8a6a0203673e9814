package routes

import (
	"net/http"

	"schedly/cmd/internal/pagination"
	"schedly/cmd/internal/service"
	"schedly/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type RegistrantService interface {
	ListRegistrants(params pagination.Params) (*service.RegistrantPage, apierror.ErrorResponse)
	GetRegistrant(id int) (*service.RegistrantResponse, apierror.ErrorResponse)
	CreateRegistrant(req *service.RegistrantRequest) (*service.RegistrantResponse, apierror.ErrorResponse)
	UpdateRegistrant(id int, req *service.RegistrantUpdateRequest) (*service.RegistrantResponse, apierror.ErrorResponse)
	DeleteRegistrant(id int) apierror.ErrorResponse
}

type DefaultRegistrantRoute struct {
	RegistrantService RegistrantService
}

func NewRegistrantDefault(registrantService RegistrantService) *DefaultRegistrantRoute {
	return &DefaultRegistrantRoute{RegistrantService: registrantService}
}

func (r *DefaultRegistrantRoute) ListRegistrants(c echo.Context) error {
	params := pagination.ParseParams(c.QueryParam("limit"), c.QueryParam("skip"), c.QueryParam("filter"))

	page, apierr := r.RegistrantService.ListRegistrants(params)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, page)
}

func (r *DefaultRegistrantRoute) GetRegistrant(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	registrant, apierr := r.RegistrantService.GetRegistrant(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, registrant)
}

func (r *DefaultRegistrantRoute) CreateRegistrant(c echo.Context) error {
	var req service.RegistrantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	registrant, apierr := r.RegistrantService.CreateRegistrant(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, registrant)
}

func (r *DefaultRegistrantRoute) UpdateRegistrant(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.RegistrantUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	registrant, apierr := r.RegistrantService.UpdateRegistrant(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, registrant)
}

func (r *DefaultRegistrantRoute) DeleteRegistrant(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := r.RegistrantService.DeleteRegistrant(id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
