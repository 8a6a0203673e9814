// Package apierror defines the error payloads returned to API clients.
// Services return an ErrorResponse; routes serialize it with its status code.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse interface {
	error
	Code() int
}

type Simple struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (s *Simple) Error() string { return s.Message }
func (s *Simple) Code() int     { return s.Status }

func NewSimple(code int, message string) ErrorResponse {
	return &Simple{Status: code, Message: message}
}

var (
	MalformedBodyError      = NewSimple(http.StatusBadRequest, "Malformed request body")
	NotFoundError           = NewSimple(http.StatusNotFound, "Resource not found")
	InternalServerError     = NewSimple(http.StatusInternalServerError, "Internal server error")
	EmailTakenError         = NewSimple(http.StatusConflict, "Email already in use")
	InvalidCredentialsError = NewSimple(http.StatusUnauthorized, "Invalid credentials")
)

func NewValidationError(message string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, message)
}

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter %q", name))
}

func NewInvalidParamTypeError(name, expected string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter %q must be a valid %s", name, expected))
}

// FromValidationError flattens validator field errors into a single client
// message. Anything else is treated as a malformed body.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
	}
	return NewSimple(http.StatusBadRequest, "Validation failed: "+strings.Join(fields, ", "))
}
