package model

import (
	"errors"
	"fmt"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageServerError is the message of every 500 response.
const MessageServerError = "Server error"

// Error codes for domain errors.
const (
	ErrCodeNotFound = "NOT_FOUND"
)

// DomainError is an expected, non-exceptional outcome the HTTP layer maps to
// a status code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Not-found messages, one per analytics report.
const (
	MsgNoRecentUsers   = "No users found with purchases in the last 30 days"
	MsgNoProducts      = "No products found"
	MsgNoRevenue       = "No revenue data found"
	msgProductNotFound = "Product with ID %s not found"
)

// Errors returned when a report has no rows.
var (
	ErrNoRecentUsers = NewDomainError(ErrCodeNotFound, MsgNoRecentUsers)
	ErrNoProducts    = NewDomainError(ErrCodeNotFound, MsgNoProducts)
	ErrNoRevenue     = NewDomainError(ErrCodeNotFound, MsgNoRevenue)
)

// ProductNotFound returns the not-found error for a remaining-stock lookup.
func ProductNotFound(productID string) *DomainError {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf(msgProductNotFound, productID))
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == ErrCodeNotFound
}
