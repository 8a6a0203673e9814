package routes

import (
	"net/http"

	"schedly/cmd/internal/service"
	"schedly/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type EmployeeService interface {
	ListEmployees(activeOnly bool) ([]*service.EmployeeResponse, apierror.ErrorResponse)
	GetEmployee(id int) (*service.EmployeeResponse, apierror.ErrorResponse)
	CreateEmployee(req *service.EmployeeRequest) (*service.EmployeeResponse, apierror.ErrorResponse)
	UpdateEmployee(id int, req *service.EmployeeUpdateRequest) (*service.EmployeeResponse, apierror.ErrorResponse)
	DeleteEmployee(id int) apierror.ErrorResponse
}

type DefaultEmployeeRoute struct {
	EmployeeService EmployeeService
}

func NewEmployeeDefault(employeeService EmployeeService) *DefaultEmployeeRoute {
	return &DefaultEmployeeRoute{EmployeeService: employeeService}
}

func (e *DefaultEmployeeRoute) ListEmployees(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"

	employees, apierr := e.EmployeeService.ListEmployees(activeOnly)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"employees": employees})
}

func (e *DefaultEmployeeRoute) GetEmployee(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	employee, apierr := e.EmployeeService.GetEmployee(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, employee)
}

func (e *DefaultEmployeeRoute) CreateEmployee(c echo.Context) error {
	var req service.EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	employee, apierr := e.EmployeeService.CreateEmployee(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, employee)
}

func (e *DefaultEmployeeRoute) UpdateEmployee(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.EmployeeUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	employee, apierr := e.EmployeeService.UpdateEmployee(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, employee)
}

func (e *DefaultEmployeeRoute) DeleteEmployee(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr := e.EmployeeService.DeleteEmployee(id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
