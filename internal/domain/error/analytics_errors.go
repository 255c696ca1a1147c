// Package error defines domain-specific errors for the analytics service.
package error

import "errors"

// Analytics domain errors.
var (
	// ErrMissingPeriod is returned when no period, preset, or date range is provided.
	ErrMissingPeriod = errors.New("period is required")

	// ErrInvalidPeriodKey is returned when a period key is not of the form YYYY-MM.
	ErrInvalidPeriodKey = errors.New("invalid period key, expected YYYY-MM")

	// ErrInvalidWalletFilter is returned when the wallet filter is neither "all" nor a wallet ID.
	ErrInvalidWalletFilter = errors.New("wallet must be \"all\" or a wallet ID")

	// ErrNegativePeriodCount is returned when a negative period window is requested.
	ErrNegativePeriodCount = errors.New("period count must not be negative")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must be after start_date")

	// ErrInvalidPreset is returned when a range preset name is unknown.
	ErrInvalidPreset = errors.New("unknown range preset")

	// ErrAmbiguousScope is returned when more than one of period, preset, and
	// date range is provided for the same request.
	ErrAmbiguousScope = errors.New("provide exactly one of period, preset, or date range")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingPeriod       AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidPeriodKey    AnalyticsErrorCode = "ANL-010002"
	ErrCodeInvalidWalletFilter AnalyticsErrorCode = "ANL-010003"
	ErrCodeNegativePeriodCount AnalyticsErrorCode = "ANL-010004"
	ErrCodeInvalidDateFormat   AnalyticsErrorCode = "ANL-010005"
	ErrCodeInvalidDateRange    AnalyticsErrorCode = "ANL-010006"
	ErrCodeInvalidPreset       AnalyticsErrorCode = "ANL-010007"
	ErrCodeAmbiguousScope      AnalyticsErrorCode = "ANL-010008"

	// Internal errors (99XXXX)
	ErrCodeAnalyticsInternalError AnalyticsErrorCode = "ANL-990001"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
