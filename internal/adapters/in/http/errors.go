package http

import (
	"errors"
	"net/http"

	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

var statusByKind = map[string]int{
	"validation":          http.StatusBadRequest,
	"invalid_rating":      http.StatusBadRequest,
	"self_review":         http.StatusBadRequest,
	"not_found":           http.StatusNotFound,
	"unauthorized":        http.StatusForbidden,
	"illegal_transition":  http.StatusConflict,
	"capacity_exceeded":   http.StatusConflict,
	"cancel_blocked":      http.StatusConflict,
	"duplicate_review":    http.StatusConflict,
	"service_unavailable": http.StatusServiceUnavailable,
	"transient_conflict":  http.StatusServiceUnavailable,
}

// StatusFor maps an engine error onto an HTTP status code.
func StatusFor(err error) int {
	if status, ok := statusByKind[errs.Kind(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError renders err. Internal errors are logged by the error handler and
// reported without detail.
func writeError(c echo.Context, err error) error {
	kind := errs.Kind(err)
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		message = http.StatusText(status)
	}
	return c.JSON(status, Error{Code: status, Kind: kind, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Kind: "validation", Message: message})
}

// HTTPErrorHandler renders echo's own errors (unknown route, bad method, auth)
// in the same shape as engine errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		_ = c.JSON(he.Code, Error{Code: he.Code, Message: message})
		return
	}
	_ = writeError(c, err)
}
