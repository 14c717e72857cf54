package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Admission and update failures, each a distinct user-facing code.

func NewReporterNotFound(email string) error {
	return NewDomainError("REPORTER_NOT_FOUND", "reporter not found in employee directory",
		http.StatusNotFound, map[string]any{"email": email})
}

func NewNoAssigneeForCriteria() error {
	return NewDomainError("NO_ASSIGNEE_FOR_CRITERIA", "no assignee found for the provided criteria",
		http.StatusNotFound, nil)
}

func NewAssigneeNotFound(empID string) error {
	return NewDomainError("ASSIGNEE_NOT_FOUND", "assignee not found in employee directory",
		http.StatusNotFound, map[string]any{"emp_id": empID})
}

func NewPrefixNotFound(subDept string) error {
	return NewDomainError("PREFIX_NOT_FOUND", "ticket prefix not found for the given sub-department",
		http.StatusNotFound, map[string]any{"sub_dept": subDept})
}

func NewTicketNotFound(number string) error {
	return NewDomainError("TICKET_NOT_FOUND", "ticket not found",
		http.StatusNotFound, map[string]any{"ticket_number": number})
}

func NewInvalidActor(userID string) error {
	return NewDomainError("INVALID_ACTOR", "invalid user ID",
		http.StatusBadRequest, map[string]any{"user_id": userID})
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < http.StatusInternalServerError {
		return &DomainError{
			Code:       "BAD_REQUEST",
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
