package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/fred-insights/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

type errorResponse struct {
	status int
	code   string
}

// errorMapping translates domain error codes into the response of one endpoint.
// Codes without an entry fall back to a 500 with fallbackCode.
type errorMapping struct {
	fallbackCode string
	byCode       map[string]errorResponse
}

func (m errorMapping) toHTTP(err error) *HTTPError {
	resp := errorResponse{status: http.StatusInternalServerError, code: m.fallbackCode}
	if mapped, ok := m.byCode[apperrors.CodeOf(err)]; ok {
		resp = mapped
	}
	message := ""
	if err != nil {
		message = err.Error()
	}
	return NewHTTPError(resp.status, resp.code, message, err)
}

var (
	fetchErrors = errorMapping{
		fallbackCode: "fetch_failed",
		byCode: map[string]errorResponse{
			apperrors.CodeNotFound:     {http.StatusNotFound, "series_not_found"},
			apperrors.CodeInvalidInput: {http.StatusUnprocessableEntity, "invalid_request"},
		},
	}
	summarizeErrors = errorMapping{
		fallbackCode: "summarize_failed",
		byCode: map[string]errorResponse{
			apperrors.CodeInvalidInput: {http.StatusBadRequest, "summarize_failed"},
		},
	}
	categoryErrors = errorMapping{
		fallbackCode: "category_failed",
		byCode: map[string]errorResponse{
			apperrors.CodeNotFound: {http.StatusNotFound, "category_not_found"},
		},
	}
)

func invalidRequest(message string, err error) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, "invalid_request", message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// recoverPanic turns a recovered panic into a regular 500 for errorHandlingMiddleware.
func recoverPanic(c *gin.Context, recovered any) {
	abortWithError(c, NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", fmt.Errorf("panic: %v", recovered)))
}

// routeNotFound answers unmatched paths with the JSON error body.
func routeNotFound(c *gin.Context) {
	abortWithError(c, NewHTTPError(http.StatusNotFound, "route_not_found", "Not Found", nil))
}
