// Package handlers implements the HTTP endpoints of the dashboard API.
package handlers

import (
	goerrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/innovatlas/country-innovation/internal/interfaces/http/middleware"
	"github.com/innovatlas/country-innovation/pkg/errors"
)

// ErrorResponse is the JSON error envelope every endpoint returns.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// respondError maps an error onto its HTTP status and error envelope.  The
// error code drives the status: selection errors are the caller's fault
// (400), unavailable datasets are upstream trouble (503), malformed data is
// a bad gateway (502), everything unclassified is 500.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	resp := ErrorResponse{
		Code:      string(code),
		Message:   "internal error",
		RequestID: middleware.GetRequestID(c),
	}

	var ae *errors.AppError
	if goerrors.As(err, &ae) {
		resp.Message = ae.Message
		resp.Detail = ae.Detail
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(errors.HTTPStatusForCode(code), resp)
}
