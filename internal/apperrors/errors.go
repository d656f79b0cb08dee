package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Stable machine-readable error codes.
const (
	CodeNotFound                = "NOT_FOUND"
	CodeNotBalanced             = "NOT_BALANCED"
	CodeInvalidLines            = "INVALID_LINES"
	CodeCannotEditNonDraft      = "CANNOT_EDIT_NON_DRAFT"
	CodeCannotDeletePosted      = "CANNOT_DELETE_POSTED"
	CodeAlreadyReversed         = "ALREADY_REVERSED"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeAccountNotPostable      = "ACCOUNT_NOT_POSTABLE"
	CodePeriodClosed            = "PERIOD_CLOSED"
	CodeValidation              = "VALIDATION_ERROR"
	CodeSequenceConflict        = "SEQUENCE_CONFLICT"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeDatabase                = "DATABASE_ERROR"
	CodeInternal                = "INTERNAL_ERROR"
)

// AppError is the typed error that crosses every layer unmodified.
// Two AppErrors are considered equal by errors.Is when their codes match.
type AppError struct {
	Code       string
	StatusCode int
	Message    string
	Field      string   // set for field-scoped validation errors
	Details    []string // sub-violations, e.g. per-line messages
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so sentinels below work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinels, only meant as errors.Is targets.
var (
	ErrNotFound                = &AppError{Code: CodeNotFound, StatusCode: http.StatusNotFound, Message: "resource not found"}
	ErrNotBalanced             = &AppError{Code: CodeNotBalanced, StatusCode: http.StatusBadRequest, Message: "journal is not balanced"}
	ErrInvalidLines            = &AppError{Code: CodeInvalidLines, StatusCode: http.StatusBadRequest, Message: "invalid journal lines"}
	ErrCannotEditNonDraft      = &AppError{Code: CodeCannotEditNonDraft, StatusCode: http.StatusBadRequest, Message: "only draft journals can be edited"}
	ErrCannotDeletePosted      = &AppError{Code: CodeCannotDeletePosted, StatusCode: http.StatusBadRequest, Message: "only draft or rejected journals can be deleted"}
	ErrAlreadyReversed         = &AppError{Code: CodeAlreadyReversed, StatusCode: http.StatusBadRequest, Message: "journal already reversed"}
	ErrInvalidStatusTransition = &AppError{Code: CodeInvalidStatusTransition, StatusCode: http.StatusBadRequest, Message: "invalid status transition"}
	ErrAccountNotPostable      = &AppError{Code: CodeAccountNotPostable, StatusCode: http.StatusBadRequest, Message: "account is not postable"}
	ErrPeriodClosed            = &AppError{Code: CodePeriodClosed, StatusCode: http.StatusBadRequest, Message: "fiscal period is closed"}
	ErrValidation              = &AppError{Code: CodeValidation, StatusCode: http.StatusBadRequest, Message: "validation error"}
	ErrSequenceConflict        = &AppError{Code: CodeSequenceConflict, StatusCode: http.StatusConflict, Message: "journal sequence already taken"}
	ErrUnauthorized            = &AppError{Code: CodeUnauthorized, StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
	ErrDatabase                = &AppError{Code: CodeDatabase, StatusCode: http.StatusInternalServerError, Message: "database error"}
	ErrInternal                = &AppError{Code: CodeInternal, StatusCode: http.StatusInternalServerError, Message: "internal error"}
)

// NewAppError builds an error with an explicit status. Codes are derived from the status
// so legacy call sites keep producing a sensible kind.
func NewAppError(statusCode int, message string, err error) *AppError {
	code := CodeInternal
	switch statusCode {
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusBadRequest:
		code = CodeValidation
	case http.StatusConflict:
		code = CodeSequenceConflict
	case http.StatusUnauthorized:
		code = CodeUnauthorized
	}
	return &AppError{Code: code, StatusCode: statusCode, Message: message, Err: err}
}

func NewNotFoundError(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s %s not found", resource, id),
	}
}

func NewNotBalancedError(totalDebit, totalCredit string) *AppError {
	return &AppError{
		Code:       CodeNotBalanced,
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("journal is not balanced: total debit %s, total credit %s", totalDebit, totalCredit),
	}
}

// NewInvalidLinesError aggregates every line violation found.
func NewInvalidLinesError(violations []string) *AppError {
	return &AppError{
		Code:       CodeInvalidLines,
		StatusCode: http.StatusBadRequest,
		Message:    "invalid journal lines: " + strings.Join(violations, "; "),
		Details:    violations,
	}
}

func NewCannotEditNonDraftError(status string) *AppError {
	return &AppError{
		Code:       CodeCannotEditNonDraft,
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("cannot edit journal in status %s, only DRAFT journals can be edited", status),
	}
}

func NewCannotDeletePostedError(status string) *AppError {
	return &AppError{
		Code:       CodeCannotDeletePosted,
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("cannot delete journal in status %s, only DRAFT or REJECTED journals can be deleted", status),
	}
}

func NewAlreadyReversedError(journalID string) *AppError {
	return &AppError{
		Code:       CodeAlreadyReversed,
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("journal %s has already been reversed", journalID),
	}
}

func NewInvalidStatusTransitionError(from, to string) *AppError {
	return &AppError{
		Code:       CodeInvalidStatusTransition,
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("invalid status transition from %s to %s", from, to),
		Details:    []string{from, to},
	}
}

func NewAccountNotPostableError(accountIDs []string) *AppError {
	return &AppError{
		Code:       CodeAccountNotPostable,
		StatusCode: http.StatusBadRequest,
		Message:    "accounts are inactive or not postable: " + strings.Join(accountIDs, ", "),
		Details:    accountIDs,
	}
}

func NewPeriodClosedError(period string) *AppError {
	return &AppError{
		Code:       CodePeriodClosed,
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("fiscal period %s is not open for posting", period),
	}
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

func NewSequenceConflictError(err error) *AppError {
	return &AppError{
		Code:       CodeSequenceConflict,
		StatusCode: http.StatusConflict,
		Message:    "journal sequence number already taken, retry the request",
		Err:        err,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, StatusCode: http.StatusUnauthorized, Message: message}
}

// NewDatabaseError wraps an unclassified storage failure.
func NewDatabaseError(message string, err error) *AppError {
	return &AppError{
		Code:       CodeDatabase,
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Err:        err,
	}
}

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
