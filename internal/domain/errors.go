package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindValidation   ErrorKind = "VALIDATION"
	KindBusinessRule ErrorKind = "BUSINESS_RULE"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
)

// AppError is the error type every service returns for expected failures.
// Code is stable and safe to expose to clients.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind onto a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(code, format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(code, format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func BusinessRule(code, format string, args ...any) *AppError {
	return &AppError{Kind: KindBusinessRule, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(code, format string, args ...any) *AppError {
	return &AppError{Kind: KindUnauthorized, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(code, format string, args ...any) *AppError {
	return &AppError{Kind: KindForbidden, Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsAppError unwraps err into an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}

// Error codes shared across layers.
const (
	CodeInternal              = "INTERNAL_ERROR"
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeInvalidRentalPeriod   = "INVALID_RENTAL_PERIOD"
	CodeInvalidRentalType     = "INVALID_RENTAL_TYPE"
	CodeInvalidAmount         = "INVALID_AMOUNT"
	CodeDiscountInactive      = "DISCOUNT_INACTIVE"
	CodeDiscountNotApplicable = "DISCOUNT_NOT_APPLICABLE"
	CodeInvalidContractStatus = "INVALID_CONTRACT_STATUS"
	CodeIDCardMismatch        = "ID_CARD_HELD_MISMATCH"
	CodeActivationWindow      = "OUTSIDE_ACTIVATION_WINDOW"
	CodeTotalExceedsPrice     = "TOTAL_EXCEEDS_PRICE"
	CodeMotorbikeUnavailable  = "MOTORBIKE_UNAVAILABLE"
	CodeCustomerHasContract   = "CUSTOMER_HAS_OPEN_CONTRACT"
	CodeContractAlreadyPaid   = "CONTRACT_ALREADY_PAID"
	CodePaymentBeforeRental   = "PAYMENT_BEFORE_RENTAL"
	CodePaymentExists         = "PAYMENT_ALREADY_EXISTS"
	CodePaymentDeclined       = "PAYMENT_DECLINED"
	CodeIncidentExists        = "INCIDENT_ALREADY_EXISTS"
	CodeIncidentResolved      = "INCIDENT_ALREADY_RESOLVED"
	CodeMaintenanceCompleted  = "MAINTENANCE_ALREADY_COMPLETED"
	CodeInvalidStatusChange   = "INVALID_STATUS_CHANGE"
	CodeDuplicate             = "DUPLICATE_VALUE"
	CodeInUse                 = "RESOURCE_IN_USE"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeInvalidToken          = "INVALID_TOKEN"
	CodeAccountDisabled       = "ACCOUNT_DISABLED"
	CodePermissionDenied      = "PERMISSION_DENIED"
	CodeInvalidFile           = "INVALID_FILE"

	CodeCategoryNotFound    = "CATEGORY_NOT_FOUND"
	CodePriceListNotFound   = "PRICE_LIST_NOT_FOUND"
	CodeMotorbikeNotFound   = "MOTORBIKE_NOT_FOUND"
	CodeCustomerNotFound    = "CUSTOMER_NOT_FOUND"
	CodeEmployeeNotFound    = "EMPLOYEE_NOT_FOUND"
	CodeContractNotFound    = "CONTRACT_NOT_FOUND"
	CodeDiscountNotFound    = "DISCOUNT_NOT_FOUND"
	CodeIncidentNotFound    = "INCIDENT_NOT_FOUND"
	CodeMaintenanceNotFound = "MAINTENANCE_NOT_FOUND"
	CodePaymentNotFound     = "PAYMENT_NOT_FOUND"
)
