package failure

import (
	"errors"
	"net/http"
)

// Failure is an error meant for the client. Code is the HTTP status it renders with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// Predefined failures are compared with errors.Is.
var (
	ForbiddenError          = New(http.StatusForbidden, "You don't have the required permissions")
	NotOwnerError           = New(http.StatusForbidden, "You don't have permission to access this resource")
	InvalidCredentialsError = New(http.StatusUnauthorized, "invalid username or password")
	NoAvailabilityError     = New(http.StatusConflict, "no available spots in this lot")
	SpotOccupiedError       = New(http.StatusConflict, "cannot delete an occupied spot")
)

func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return New(code, err.Error())
}

func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, err)
}

// GetCode is the HTTP status for err; anything that is not a Failure is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
