package routes

import (
	"context"
	"net/http"

	"schedly/cmd/internal/service"
	"schedly/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type DashboardService interface {
	GetSummary(ctx context.Context) (*service.Summary, apierror.ErrorResponse)
}

type DefaultDashboardRoute struct {
	DashboardService DashboardService
}

func NewDashboardDefault(dashboardService DashboardService) *DefaultDashboardRoute {
	return &DefaultDashboardRoute{DashboardService: dashboardService}
}

func (d *DefaultDashboardRoute) GetSummary(c echo.Context) error {
	summary, apierr := d.DashboardService.GetSummary(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, summary)
}
