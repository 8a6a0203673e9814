package routes_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"schedly/cmd/internal/pagination"
	"schedly/cmd/internal/routes"
	"schedly/cmd/internal/service"
	"schedly/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAppointmentService struct {
	page       *service.AppointmentPage
	appt       *service.AppointmentResponse
	err        apierror.ErrorResponse
	lastParams pagination.Params
	deletedID  int
}

func (s *stubAppointmentService) ListAppointments(params pagination.Params) (*service.AppointmentPage, apierror.ErrorResponse) {
	s.lastParams = params
	return s.page, s.err
}

func (s *stubAppointmentService) GetAppointment(id int) (*service.AppointmentResponse, apierror.ErrorResponse) {
	return s.appt, s.err
}

func (s *stubAppointmentService) CreateAppointment(req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse) {
	return s.appt, s.err
}

func (s *stubAppointmentService) UpdateAppointment(id int, req *service.AppointmentUpdateRequest) (*service.AppointmentResponse, apierror.ErrorResponse) {
	return s.appt, s.err
}

func (s *stubAppointmentService) DeleteAppointment(id int) apierror.ErrorResponse {
	s.deletedID = id
	return s.err
}

func newContext(method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListAppointmentsRoute(t *testing.T) {
	stub := &stubAppointmentService{
		page: &service.AppointmentPage{
			Appointments: []*service.AppointmentResponse{{ID: 1, Title: "Planning"}},
			Meta:         pagination.NewMeta(1, pagination.Params{Limit: 6}),
		},
	}
	route := routes.NewAppointmentDefault(stub)

	c, rec := newContext(http.MethodGet, "/appointments?limit=10&skip=20&filter=today", "")
	require.NoError(t, route.ListAppointments(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, stub.lastParams.Limit)
	assert.Equal(t, 20, stub.lastParams.Skip)
	assert.Equal(t, "today", stub.lastParams.Filter)
	assert.Contains(t, rec.Body.String(), "Planning")
}

func TestCreateAppointmentRoute(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stub := &stubAppointmentService{appt: &service.AppointmentResponse{ID: 7, Title: "Planning"}}
		route := routes.NewAppointmentDefault(stub)

		c, rec := newContext(http.MethodPost, "/appointments", `{"title":"Planning","date":"2030-06-15","time":"14:30"}`)
		require.NoError(t, route.CreateAppointment(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		stub := &stubAppointmentService{}
		route := routes.NewAppointmentDefault(stub)

		c, rec := newContext(http.MethodPost, "/appointments", `{"title": nope}`)
		require.NoError(t, route.CreateAppointment(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "message")
	})

	t.Run("service error is passed through", func(t *testing.T) {
		stub := &stubAppointmentService{err: apierror.NewValidationError("Title is required")}
		route := routes.NewAppointmentDefault(stub)

		c, rec := newContext(http.MethodPost, "/appointments", `{}`)
		require.NoError(t, route.CreateAppointment(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Title is required")
	})
}

func TestDeleteAppointmentRoute(t *testing.T) {
	t.Run("reports the deleted id", func(t *testing.T) {
		stub := &stubAppointmentService{}
		route := routes.NewAppointmentDefault(stub)

		c, rec := newContext(http.MethodDelete, "/appointments/42", "")
		c.SetParamNames("id")
		c.SetParamValues("42")
		require.NoError(t, route.DeleteAppointment(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 42, stub.deletedID)
		assert.Contains(t, rec.Body.String(), `"deleted":42`)
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubAppointmentService{err: apierror.NotFoundError}
		route := routes.NewAppointmentDefault(stub)

		c, rec := newContext(http.MethodDelete, "/appointments/42", "")
		c.SetParamNames("id")
		c.SetParamValues("42")
		require.NoError(t, route.DeleteAppointment(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		stub := &stubAppointmentService{}
		route := routes.NewAppointmentDefault(stub)

		c, rec := newContext(http.MethodDelete, "/appointments/abc", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")
		require.NoError(t, route.DeleteAppointment(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
