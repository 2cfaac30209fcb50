package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Stable machine-checkable error kinds. Clients branch on these, not on
// HTTP status codes.
const (
	KindInvalidCredentials = "invalid_credentials"
	KindAccountBlocked     = "account_blocked"
	KindPendingApproval    = "pending_approval"
	KindTokenExpired       = "token_expired"
	KindTokenInvalid       = "token_invalid"
	KindUnauthorized       = "unauthorized"
	KindForbidden          = "forbidden"
	KindNotFound           = "not_found"
	KindInvalidState       = "invalid_state"
	KindSlotUnavailable    = "slot_unavailable"
	KindValidation         = "validation"
	KindRetryable          = "retryable"
)

type ErrorResponse interface {
	error
	Code() int
	Kind() string
}

type Simple struct {
	Status  int    `json:"-"`
	ErrKind string `json:"kind"`
	Message string `json:"message"`
}

func (e *Simple) Error() string { return e.Message }
func (e *Simple) Code() int     { return e.Status }
func (e *Simple) Kind() string  { return e.ErrKind }

func NewSimple(code int, kind, message string) *Simple {
	return &Simple{Status: code, ErrKind: kind, Message: message}
}

var (
	InvalidCredentialsError = NewSimple(http.StatusUnauthorized, KindInvalidCredentials, "Bad username or password")
	AccountBlockedError     = NewSimple(http.StatusUnauthorized, KindAccountBlocked, "Account blocked")
	PendingApprovalError    = NewSimple(http.StatusUnauthorized, KindPendingApproval, "Your doctor account is not approved yet")
	TokenExpiredError       = NewSimple(http.StatusUnauthorized, KindTokenExpired, "Authorization token has expired")
	InvalidAuthTokenError   = NewSimple(http.StatusUnauthorized, KindTokenInvalid, "Authorization token is invalid")
	UnauthorizedError       = NewSimple(http.StatusUnauthorized, KindUnauthorized, "Authorization required")
	ForbiddenError          = NewSimple(http.StatusForbidden, KindForbidden, "You are not allowed to perform this action")
	NotFoundError           = NewSimple(http.StatusNotFound, KindNotFound, "Resource not found")
	InvalidStateError       = NewSimple(http.StatusConflict, KindInvalidState, "Operation not valid in the current state")
	SlotUnavailableError    = NewSimple(http.StatusConflict, KindSlotUnavailable, "Slot already booked")
	DoctorNotBookableError  = NewSimple(http.StatusConflict, KindInvalidState, "Doctor is not accepting bookings")
	UserAlreadyExistsError  = NewSimple(http.StatusBadRequest, KindValidation, "User already exists")
	MalformedBodyError      = NewSimple(http.StatusBadRequest, KindValidation, "Malformed request body")
	InternalServerError     = NewSimple(http.StatusInternalServerError, KindRetryable, "Temporary server error, try again later")
)

func NewMissingParamError(name string) *Simple {
	return NewSimple(http.StatusBadRequest, KindValidation, fmt.Sprintf("Missing required parameter %q", name))
}

func NewInvalidParamTypeError(name, want string) *Simple {
	return NewSimple(http.StatusBadRequest, KindValidation, fmt.Sprintf("Parameter %q must be a valid %s", name, want))
}

// FromValidationError converts a validator.Struct failure into a 400
// response naming the offending fields.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
	}
	msg := "Invalid fields: " + strings.Join(fields, ", ")
	return NewSimple(http.StatusBadRequest, KindValidation, msg)
}
