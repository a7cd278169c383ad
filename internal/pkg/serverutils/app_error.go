package serverutils

import "fmt"

// AppError carries an HTTP status alongside a user-visible message. Services
// return these; the error middleware translates them.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(format string, args ...interface{}) *AppError {
	return &AppError{Status: 400, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...interface{}) *AppError {
	return &AppError{Status: 404, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...interface{}) *AppError {
	return &AppError{Status: 409, Message: fmt.Sprintf(format, args...)}
}
