package services

import (
	"fmt"
	"log"
)

type ServiceError struct {
	Status  int
	Message string
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: 400, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: 401, Message: msg}
}

func ErrForbidden(msg string) error {
	return ServiceError{Status: 403, Message: msg}
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: 404, Message: msg}
}

func ErrConflict(msg string) error {
	return ServiceError{Status: 409, Message: msg}
}

// ErrConfigFault marks an operational setup error (missing default professor,
// a professor-role user without a professor record). Logged loudly because it
// is never the caller's mistake.
func ErrConfigFault(msg string) error {
	log.Printf("ERROR configuration fault: %s", msg)
	return ServiceError{Status: 500, Message: msg}
}

func ErrUpstream(msg string) error {
	return ServiceError{Status: 502, Message: msg}
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
