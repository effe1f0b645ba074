// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Matching
	ErrCodeMatchScoreFailed   ErrorCode = "MATCH_SCORE_FAILED"
	ErrCodeRankingFailed      ErrorCode = "RANKING_FAILED"
	ErrCodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeProfileFetchFailed ErrorCode = "PROFILE_FETCH_FAILED"

	// Catalog
	ErrCodeCatalogQueryFailed ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeCatalogTimeout     ErrorCode = "CATALOG_TIMEOUT"
	ErrCodeIndexNotFound      ErrorCode = "INDEX_NOT_FOUND"
	ErrCodeSchoolNotFound     ErrorCode = "SCHOOL_NOT_FOUND"

	// Documents
	ErrCodeExtractionFailed        ErrorCode = "EXTRACTION_FAILED"
	ErrCodeExtractionTimeout       ErrorCode = "EXTRACTION_TIMEOUT"
	ErrCodeUnsupportedDocumentType ErrorCode = "UNSUPPORTED_DOCUMENT_TYPE"
	ErrCodeDocValidationFailed     ErrorCode = "DOC_VALIDATION_FAILED"

	// Application records
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateApplication     ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"

	// Lifecycle
	ErrCodeTimelineFailed         ErrorCode = "TIMELINE_FAILED"
	ErrCodeUnknownStatus          ErrorCode = "UNKNOWN_APPLICATION_STATUS"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

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

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
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

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
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

// ConvertToBPMNError maps a StandardError onto the BPMN error contract.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
	}
}

// GetRetryCount returns how many Camunda retries a given error code warrants.
// Transient infrastructure faults retry; business outcomes do not.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeQueryTimeout,
		ErrCodeCatalogQueryFailed,
		ErrCodeCatalogTimeout,
		ErrCodeProfileFetchFailed,
		ErrCodeExtractionFailed,
		ErrCodeExtractionTimeout,
		ErrCodeNotificationSendFailed:
		return 3
	default:
		return 0
	}
}

// GetErrorCategory buckets codes for logging/metrics.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeMatchScoreFailed, ErrCodeRankingFailed, ErrCodeProfileNotFound, ErrCodeProfileFetchFailed:
		return "matching"
	case ErrCodeCatalogQueryFailed, ErrCodeCatalogTimeout, ErrCodeIndexNotFound, ErrCodeSchoolNotFound:
		return "catalog"
	case ErrCodeExtractionFailed, ErrCodeExtractionTimeout, ErrCodeUnsupportedDocumentType, ErrCodeDocValidationFailed:
		return "documents"
	case ErrCodeDatabaseConnectionFailed, ErrCodeDatabaseInsertFailed, ErrCodeDuplicateApplication,
		ErrCodeQueryExecutionFailed, ErrCodeQueryTimeout, ErrCodeInvalidQueryType:
		return "database"
	case ErrCodeTimelineFailed, ErrCodeUnknownStatus, ErrCodeNotificationSendFailed:
		return "lifecycle"
	default:
		return "unknown"
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewMatchScoreFailedError creates a non-retryable scoring error.
func NewMatchScoreFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchScoreFailed,
		Message:   "Match score calculation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a non-retryable missing profile error.
func NewProfileNotFoundError(childID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "Child profile not found",
		Details:   fmt.Sprintf("childId: %s", childID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileFetchFailedError creates a retryable profile store error.
func NewProfileFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchFailed,
		Message:   "Database error during profile fetch",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogQueryFailedError creates a retryable catalog search error.
func NewCatalogQueryFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogQueryFailed,
		Message:   "School catalog query error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogTimeoutError creates a retryable catalog timeout error.
func NewCatalogTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogTimeout,
		Message:   "School catalog query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Catalog index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchoolNotFoundError creates a non-retryable unknown school error.
func NewSchoolNotFoundError(schoolID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchoolNotFound,
		Message:   "School not present in reference catalog",
		Details:   fmt.Sprintf("schoolId: %s", schoolID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError creates a retryable extraction backend error.
func NewExtractionFailedError(documentType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Document extraction failed",
		Details:   fmt.Sprintf("documentType: %s, error: %s", documentType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionTimeoutError creates a retryable extraction timeout error.
func NewExtractionTimeoutError(documentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionTimeout,
		Message:   "Document extraction timed out",
		Details:   fmt.Sprintf("documentType: %s", documentType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedDocumentTypeError creates a non-retryable document type error.
func NewUnsupportedDocumentTypeError(documentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedDocumentType,
		Message:   "Unsupported document type",
		Details:   fmt.Sprintf("documentType: %s", documentType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocValidationFailedError creates a non-retryable validation fault.
// Note this covers internal faults only; a field mismatch is a normal
// worker output, not an error.
func NewDocValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocValidationFailed,
		Message:   "Document validation could not be performed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateApplicationError creates a non-retryable duplicate application error.
func NewDuplicateApplicationError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplication,
		Message:   "Application already exists",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryTypeError creates a non-retryable invalid query type error.
func NewInvalidQueryTypeError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQueryType,
		Message:   "Unsupported query type",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownStatusError creates a non-retryable lifecycle status error.
func NewUnknownStatusError(status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownStatus,
		Message:   "Unknown application status",
		Details:   fmt.Sprintf("status: %s", status),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Generic External Errors
// ==========================

// NewExternalServiceError wraps an error from an external dependency.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrorCode(fmt.Sprintf("%s_UNAVAILABLE", normalizeService(service))),
		Message:   fmt.Sprintf("External service %s unavailable", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError wraps an external timeout.
func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrorCode(fmt.Sprintf("%s_TIMEOUT", normalizeService(service))),
		Message:   fmt.Sprintf("External service %s timed out", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError wraps a missing external resource.
func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      ErrorCode(fmt.Sprintf("%s_NOT_FOUND", normalizeService(service))),
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func normalizeService(service string) string {
	out := make([]rune, 0, len(service))
	for _, r := range service {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-'a'+'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
