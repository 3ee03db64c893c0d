package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"staffclock/pkg/errors"
)

// Envelope is the uniform wire format: {status: "success" | "error", ...}.
// Optional fields are populated per operation (history rows for queries,
// duration for checkout).
type Envelope struct {
	Status   string      `json:"status"`
	Code     string      `json:"code,omitempty"`
	Message  string      `json:"message,omitempty"`
	History  interface{} `json:"history,omitempty"`
	Duration *float64    `json:"duration,omitempty"`
	Record   interface{} `json:"record,omitempty"`
}

func errorToHTTPStatus(err error) int {
	def, ok := err.(errors.Definition)
	if !ok {
		return http.StatusInternalServerError
	}

	switch def.Code {
	case "INVALID_REQUEST", "PARSE_ERROR", "NOT_CHECKED_IN":
		return http.StatusBadRequest // 400
	case "RECORD_NOT_FOUND":
		return http.StatusNotFound // 404
	case "ALREADY_CHECKED_OUT":
		return http.StatusConflict // 409
	case "LOCK_TIMEOUT":
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}

// Success writes a success envelope. The Status field is forced so handlers
// cannot emit an inconsistent one.
func Success(ctx context.Context, c *app.RequestContext, env Envelope) {
	env.Status = "success"
	env.Code = ""
	c.JSON(http.StatusOK, env)
}

// Error converts any error into the uniform error envelope. Definition errors
// keep their code; everything else is reported as INTERNAL_ERROR with the
// original message.
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = errors.InternalError.Code
		message = err.Error()
	}

	c.JSON(statusCode, Envelope{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

// BindError reports a request-body binding failure.
func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, Envelope{
		Status:  "error",
		Code:    errors.InvalidRequest.Code,
		Message: err.Error(),
	})
}
