// Package common carries request-scoped helpers shared by middleware and
// handlers.
package common

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"infocomm/internal/apperr"
	"infocomm/internal/session"
)

type contextKey string

// SessionKey holds the *session.Session derived from the request's token.
const SessionKey contextKey = "session"

// WithSession attaches the authenticated session to a request context.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// GetSessionFromContext extracts the authenticated session, if any.
func GetSessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*session.Session)
	return s, ok
}

// ErrorResponse is the wire shape of every error the API returns.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newErrorResponse(code, message string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	return &resp
}

// RespondError renders an error with the status its kind implies. Retrieval
// failures map to 503 so clients can tell "backend down, retry" apart from
// "bad request" and from an empty 200.
func RespondError(c echo.Context, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return c.JSON(http.StatusInternalServerError, newErrorResponse("INTERNAL", "operation could not be completed"))
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindAuth:
		status = http.StatusUnauthorized
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindRetrieval:
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, newErrorResponse(appErr.Kind.String(), appErr.Message))
}

// RespondValidationError is a shorthand for ad-hoc request binding failures.
func RespondValidationError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, newErrorResponse(apperr.KindValidation.String(), message))
}
