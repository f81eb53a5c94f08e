// Package errors provides standardized error handling for the recommendation engine.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Fatal request errors: the caller must fix the request, retrying will not help.
const (
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeInvalidSalary         ErrorCode = "INVALID_SALARY"
	ErrCodeEmptyCandidatePool    ErrorCode = "EMPTY_CANDIDATE_POOL"
	ErrCodeUnknownAssessmentType ErrorCode = "UNKNOWN_ASSESSMENT_TYPE"
)

// Configuration errors: fatal at startup, the process refuses to serve.
const (
	ErrCodeConfigurationInvalid ErrorCode = "CONFIGURATION_INVALID"
	ErrCodeExperimentNotFound   ErrorCode = "EXPERIMENT_NOT_FOUND"
	ErrCodeVariantNotFound      ErrorCode = "VARIANT_NOT_FOUND"
)

// Collaborator errors: external providers and sinks, usually retryable.
const (
	ErrCodeSignalProviderFailed  ErrorCode = "SIGNAL_PROVIDER_FAILED"
	ErrCodeProfileNotFound       ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeCandidateQueryFailed  ErrorCode = "CANDIDATE_QUERY_FAILED"
	ErrCodeCandidateQueryTimeout ErrorCode = "CANDIDATE_QUERY_TIMEOUT"
	ErrCodeEventPublishFailed    ErrorCode = "EVENT_PUBLISH_FAILED"
	ErrCodeOutcomeStoreFailed    ErrorCode = "OUTCOME_STORE_FAILED"
)

// Warning codes: recorded alongside a still-valid result, never fatal.
const (
	WarnCodeSoftClamp        ErrorCode = "SOFT_CLAMP"
	WarnCodeInsufficientData ErrorCode = "INSUFFICIENT_DATA"
	WarnCodeWeightNormalized ErrorCode = "WEIGHT_NORMALIZED"
)

const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// IsFatalInput reports whether the error is a request-level validation failure.
func IsFatalInput(e *StandardError) bool {
	switch e.Code {
	case ErrCodeInputValidationFailed, ErrCodeInvalidSalary,
		ErrCodeEmptyCandidatePool, ErrCodeUnknownAssessmentType:
		return true
	}
	return false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ConvertToBPMNError maps a StandardError onto the workflow error contract.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
		ErrorVariables: map[string]interface{}{
			"errorMetadata": err.Metadata,
		},
	}
}

// GetRetryCount returns how many retries a given error code deserves.
// Validation and configuration errors never retry; collaborator errors do.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSignalProviderFailed, ErrCodeCandidateQueryFailed,
		ErrCodeCandidateQueryTimeout, ErrCodeEventPublishFailed,
		ErrCodeOutcomeStoreFailed:
		return 3
	}
	return 0
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInputValidationError creates a non-retryable request validation error.
func NewInputValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   "Request failed input validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidSalaryError creates a non-retryable salary validation error.
// Salary-relative tier bands are undefined for a non-positive salary.
func NewInvalidSalaryError(salary float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSalary,
		Message:   "Current salary must be positive",
		Details:   fmt.Sprintf("currentSalary: %.2f", salary),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyCandidatePoolError creates a non-retryable empty-pool error.
func NewEmptyCandidatePoolError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyCandidatePool,
		Message:   "Candidate pool is empty, matching is impossible",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownAssessmentTypeError creates a non-retryable assessment-type error.
func NewUnknownAssessmentTypeError(assessmentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownAssessmentType,
		Message:   "Assessment type has no scoring table",
		Details:   fmt.Sprintf("assessmentType: %s", assessmentType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError creates a fatal configuration error. The process
// should refuse to serve requests rather than silently fall back to defaults.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationInvalid,
		Message:   "Malformed engine configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExperimentNotFoundError creates a non-retryable experiment lookup error.
func NewExperimentNotFoundError(experimentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExperimentNotFound,
		Message:   "Experiment is not configured",
		Details:   fmt.Sprintf("experimentId: %s", experimentID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSignalProviderError creates a retryable signal-provider error.
func NewSignalProviderError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSignalProviderFailed,
		Message:   "Failed to load user risk signals",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a non-retryable missing-profile error.
func NewProfileNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "No risk-input profile for user",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCandidateQueryError creates a retryable candidate-pool query error.
func NewCandidateQueryError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateQueryFailed,
		Message:   "Candidate pool query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCandidateQueryTimeoutError creates a retryable candidate-pool timeout error.
func NewCandidateQueryTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateQueryTimeout,
		Message:   "Candidate pool query timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEventPublishError creates a retryable event-sink error.
func NewEventPublishError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEventPublishFailed,
		Message:   "Failed to publish journey event",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOutcomeStoreError creates a retryable outcome-store error.
func NewOutcomeStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOutcomeStoreFailed,
		Message:   "Failed to read outcome events",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Warnings
// ==========================

// Warning is a non-fatal condition carried alongside a valid result.
type Warning struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// NewSoftClampWarning records an out-of-range input that was clamped.
func NewSoftClampWarning(category string, raw, clamped float64) Warning {
	return Warning{
		Code:    WarnCodeSoftClamp,
		Message: fmt.Sprintf("%s value %.2f clamped to %.2f", category, raw, clamped),
	}
}

// NewInsufficientDataWarning records a threshold evaluation that declined to recommend.
func NewInsufficientDataWarning(experimentID, reason string) Warning {
	return Warning{
		Code:    WarnCodeInsufficientData,
		Message: fmt.Sprintf("experiment %s: %s", experimentID, reason),
	}
}

// JoinWarnings renders warnings as one log-friendly string.
func JoinWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
