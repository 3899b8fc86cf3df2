package apperror

import "fmt"

// AppError is the sentinel type behind every domain error in this service
// (INSUFFICIENT_CHANGE_OFF, INVALID_STATE, DUPLICATE_JOB_EXECUTION, ...).
// Handlers map it straight to the response envelope via its HTTPStatus.
type AppError struct {
	Code       string // stable machine-readable code
	Message    string // pesan untuk pengguna
	HTTPStatus int
	Err        error // underlying cause, optional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New declares a sentinel; the per-domain errors packages call this at init.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        nil,
	}
}

// Wrap attaches a code and status to an infrastructure error.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
