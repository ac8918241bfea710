package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	CodeInternal           ErrorCode = "COMMON_001"
	CodeBadRequest         ErrorCode = "COMMON_002"
	CodeNotFound           ErrorCode = "COMMON_003"
	CodeServiceUnavailable ErrorCode = "COMMON_004"
	CodeSerialization      ErrorCode = "COMMON_005"

	CodeUnknown ErrorCode = "UNKNOWN"
	CodeOK      ErrorCode = "OK"
)

// Dataset error codes.
const (
	// CodeDataUnavailable: remote dataset object missing or the object
	// store unreachable.  Fatal for the session; the user sees an error
	// state.
	CodeDataUnavailable ErrorCode = "DATA_001"

	// CodeUnsupportedFormat: dataset object extension is neither parquet
	// nor CSV.  Fatal; indicates a deployment/configuration bug.
	CodeUnsupportedFormat ErrorCode = "DATA_002"

	// CodeDataMalformed: dataset object fetched but could not be decoded
	// or is missing required columns.
	CodeDataMalformed ErrorCode = "DATA_003"
)

// Selection error codes.
const (
	// CodeInvalidSelection: a categorical value outside its enumerated set
	// reached the resolver.  Must never occur with correctly constrained
	// input widgets.
	CodeInvalidSelection ErrorCode = "SEL_001"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	CodeInternal:           http.StatusInternalServerError,
	CodeBadRequest:         http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
	CodeSerialization:      http.StatusInternalServerError,

	CodeDataUnavailable:   http.StatusServiceUnavailable,
	CodeUnsupportedFormat: http.StatusInternalServerError,
	CodeDataMalformed:     http.StatusBadGateway,

	CodeInvalidSelection: http.StatusBadRequest,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
// Unmapped codes default to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether the ErrorCode maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the ErrorCode maps to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode
// ("DATA", "SEL", "COMMON").
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
