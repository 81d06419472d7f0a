package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const internalErrorMessage = "Internal server error."

// statusFor maps an error category to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrPolicyViolation):
		return http.StatusConflict
	case errors.Is(err, core.ErrGatewayDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, core.ErrGatewayFault):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail renders err as a failure envelope. Internal failures are logged and their details hidden.
func (s *server) fail(c echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		if s.logger != nil {
			s.logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err.Error())
		}

		message = internalErrorMessage
	}

	return c.JSON(status, envelope{Success: false, Message: message})
}

// errorHandler renders echo's own errors (unknown routes, malformed bodies) as failure envelopes.
func (s *server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		_ = s.fail(c, err)
		return
	}

	message := http.StatusText(httpErr.Code)
	if m, ok := httpErr.Message.(string); ok {
		message = m
	}

	_ = c.JSON(httpErr.Code, envelope{Success: false, Message: message})
}
