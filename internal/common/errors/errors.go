// Package errors provides standardized, coded error handling for the
// brand-intelligence pipeline and its workflow integration.
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

// Ingestion / normalization errors. These are recovered locally by the
// pipeline (skip the file or line, keep running) and only reach a caller
// when a single-file operation was requested explicitly.
const (
	ErrCodeFileUnreadable    ErrorCode = "FILE_UNREADABLE"
	ErrCodeFileFormatInvalid ErrorCode = "FILE_FORMAT_INVALID"
	ErrCodeRecordParseFailed ErrorCode = "RECORD_PARSE_FAILED"
)

// Pipeline / configuration errors.
const (
	ErrCodeReportGenerationFailed ErrorCode = "REPORT_GENERATION_FAILED"
	ErrCodeRosterInvalid          ErrorCode = "ROSTER_INVALID"
)

// Storage and delivery errors.
const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeCacheUnavailable         ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeIndexWriteFailed         ErrorCode = "INDEX_WRITE_FAILED"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeBrokerUnavailable        ErrorCode = "BROKER_UNAVAILABLE"
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

// ==========================
// 2. Workflow Error Integration
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

// ToErrorVariables returns a map suitable for setting job-fail variables.
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

// ConvertToBPMNError maps a StandardError onto the workflow error shape.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
	}
}

// GetRetryCount returns how many times a failure with this code should be
// retried by the engine. Data-quality failures are never retried; transient
// infrastructure failures are.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed, ErrCodeCacheUnavailable,
		ErrCodeIndexWriteFailed, ErrCodeNotificationSendFailed,
		ErrCodeBrokerUnavailable:
		return 3
	case ErrCodeQueryExecutionFailed:
		return 1
	default:
		return 0
	}
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeFileUnreadable, ErrCodeFileFormatInvalid, ErrCodeRecordParseFailed:
		return "ingestion"
	case ErrCodeReportGenerationFailed, ErrCodeRosterInvalid:
		return "pipeline"
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed,
		ErrCodeCacheUnavailable, ErrCodeIndexWriteFailed:
		return "storage"
	case ErrCodeNotificationSendFailed, ErrCodeBrokerUnavailable:
		return "delivery"
	default:
		return "internal"
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewFileUnreadableError marks an upload that could not be read from disk.
func NewFileUnreadableError(file string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileUnreadable,
		Message:   "Upload file could not be read",
		Details:   fmt.Sprintf("%s: %v", file, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFileFormatInvalidError marks an upload whose structure is unusable.
func NewFileFormatInvalidError(file, reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileFormatInvalid,
		Message:   "Upload file has an unsupported structure",
		Details:   fmt.Sprintf("%s: %s", file, reason),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReportGenerationFailedError wraps an unexpected internal failure during
// a pipeline run. Callers still receive a well-formed default report.
func NewReportGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReportGenerationFailed,
		Message:   "Competitive report generation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRosterInvalidError marks a roster document that failed schema validation.
func NewRosterInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRosterInvalid,
		Message:   "Brand roster configuration is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionError creates a retryable database error.
func NewDatabaseConnectionError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionError creates a retryable query error.
func NewQueryExecutionError(query string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Query execution failed",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"query": query},
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Report cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexWriteFailedError creates a retryable mention-index error.
func NewIndexWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexWriteFailed,
		Message:   "Mention index write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Run notification delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"channel": channel},
		Timestamp: time.Now().UTC(),
	}
}

// NewBrokerUnavailableError marks a transient workflow-broker failure.
func NewBrokerUnavailableError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBrokerUnavailable,
		Message:   "Workflow broker unavailable",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unclassified failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
