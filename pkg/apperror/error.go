package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its transport status.
type Kind string

const (
	KindUnauthenticated          Kind = "UNAUTHENTICATED"
	KindUserNotFound             Kind = "USER_NOT_FOUND"
	KindForbidden                Kind = "FORBIDDEN"
	KindNotFound                 Kind = "NOT_FOUND"
	KindValidation               Kind = "VALIDATION_ERROR"
	KindDuplicateApplication     Kind = "DUPLICATE_APPLICATION"
	KindSelfApplicationForbidden Kind = "SELF_APPLICATION_FORBIDDEN"
	KindBadRequest               Kind = "BAD_REQUEST"
	KindPersistence              Kind = "PERSISTENCE_ERROR"
)

// FieldError describes one failing input field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type AppError struct {
	Kind    Kind         `json:"kind"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func BadRequest(message string) *AppError {
	return New(KindBadRequest, http.StatusBadRequest, message, nil)
}

func Unauthenticated(message string) *AppError {
	return New(KindUnauthenticated, http.StatusUnauthorized, message, nil)
}

func UserNotFound(message string) *AppError {
	return New(KindUserNotFound, http.StatusNotFound, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func Validation(message string, fields []FieldError) *AppError {
	e := New(KindValidation, http.StatusUnprocessableEntity, message, nil)
	e.Fields = fields
	return e
}

func DuplicateApplication(message string) *AppError {
	return New(KindDuplicateApplication, http.StatusConflict, message, nil)
}

func SelfApplicationForbidden(message string) *AppError {
	return New(KindSelfApplicationForbidden, http.StatusForbidden, message, nil)
}

// Persistence wraps an unclassified database failure. The cause is kept for
// server-side logs only.
func Persistence(message string, err error) *AppError {
	return New(KindPersistence, http.StatusInternalServerError, message, err)
}
