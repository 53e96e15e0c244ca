package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound              = NewAppError("RESOURCE_NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrBadRequest            = NewAppError("BAD_REQUEST", "Invalid request", http.StatusBadRequest)
	ErrInternalServer        = NewAppError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrConflict              = NewAppError("CONFLICT", "Resource conflict", http.StatusConflict)
	ErrDatabase              = NewAppError("DATABASE_ERROR", "Database operation failed", http.StatusInternalServerError)
	ErrInvalidInput          = NewAppError("INVALID_INPUT", "Invalid input", http.StatusBadRequest)
	ErrAccountFrozen         = NewAppError("ACCOUNT_FROZEN", "Account is frozen", http.StatusUnprocessableEntity)
	ErrInsufficientFunds     = NewAppError("INSUFFICIENT_FUNDS", "Insufficient funds", http.StatusUnprocessableEntity)
	ErrCardBlocked           = NewAppError("CARD_BLOCKED", "Card is blocked", http.StatusUnprocessableEntity)
	ErrCreditLimitExceeded   = NewAppError("CREDIT_LIMIT_EXCEEDED", "Purchase exceeds the available credit limit", http.StatusUnprocessableEntity)
	ErrInvalidTransferAmount = NewAppError("INVALID_TRANSFER_AMOUNT", "Amount violates transfer channel limits", http.StatusUnprocessableEntity)
	ErrEmiNotEligible        = NewAppError("EMI_CONVERSION_NOT_ELIGIBLE", "Transaction is not eligible for EMI conversion", http.StatusUnprocessableEntity)
	ErrAccountNotFound       = NewAppError("ACCOUNT_NOT_FOUND", "Account not found", http.StatusNotFound)
	ErrCardNotFound          = NewAppError("CARD_NOT_FOUND", "Card not found", http.StatusNotFound)
	ErrCustomerNotFound      = NewAppError("CUSTOMER_NOT_FOUND", "Customer not found", http.StatusNotFound)
	ErrTransactionNotFound   = NewAppError("TRANSACTION_NOT_FOUND", "Transaction not found", http.StatusNotFound)
	ErrBillNotFound          = NewAppError("BILL_NOT_FOUND", "Credit card bill not found", http.StatusNotFound)
	ErrEmiPlanNotFound       = NewAppError("EMI_PLAN_NOT_FOUND", "EMI plan not found", http.StatusNotFound)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	if details == nil {
		clone.Details = make(map[string]interface{})
		return clone
	}
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func (e *AppError) WithMessage(message string) *AppError {
	clone := e.clone()
	clone.Message = message
	return clone
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func WrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Details != nil {
		clone.Details = make(map[string]interface{}, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	} else {
		clone.Details = make(map[string]interface{})
	}
	return &clone
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func FromError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, context.Canceled) {
		return WrapError(err, "REQUEST_CANCELED", "Request canceled by client", http.StatusRequestTimeout)
	}

	return WrapError(err, "UNKNOWN_ERROR", "Unexpected error", http.StatusInternalServerError)
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:       "INVALID_INPUT",
		Message:    fmt.Sprintf("%s: %s", field, message),
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"field": field,
		},
	}
}

func NewDatabaseError(err error) *AppError {
	return WrapError(err, "DATABASE_ERROR", "Database operation failed", http.StatusInternalServerError)
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       "RESOURCE_NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
		Details: map[string]interface{}{
			"resource": resource,
		},
	}
}

func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   fieldErr.Field(),
			"message": describeValidationError(fieldErr),
		})
	}

	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Request validation failed",
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"fields": fieldErrors,
		},
	}
}

func describeValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must have exactly %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("validation '%s' failed for %s", fe.Tag(), fe.Field())
	}
}
