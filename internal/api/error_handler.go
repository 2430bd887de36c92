package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fitflow/fitflow-web/internal/api/metrics"
	"github.com/fitflow/fitflow-web/internal/api/middleware"
	"github.com/fitflow/fitflow-web/internal/api/view"
	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - On a backend 401, clears the session's credential and redirects to loginPath
//     once (JSON callers get 401 with a redirect hint).
//   - Maps backend rejections and outages to their status and user message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Answers JSON callers with {"error": "<message>"} and browsers with the error page.
func NewHTTPErrorHandler(log zerolog.Logger, store ports.SessionStore, loginPath string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if domain.IsUnauthorized(err) {
			handleUnauthorized(c, log, store, loginPath)
			return
		}

		code, msg := resolveError(err, log, c)
		if middleware.WantsJSON(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}
		if code == http.StatusConflict && errors.Is(err, domain.ErrSuperseded) {
			// A newer navigation already owns the browser; nothing to render.
			_ = c.NoContent(code)
			return
		}
		renderErrorPage(c, code, msg)
	}
}

func handleUnauthorized(c echo.Context, log zerolog.Logger, store ports.SessionStore, loginPath string) {
	if err := store.Clear(c.Request().Context(), middleware.SessionIDFrom(c)); err != nil {
		log.Error().Err(err).Msg("failed to clear session after unauthorized response")
	} else {
		metrics.SessionsClearedTotal.WithLabelValues("unauthorized").Inc()
	}

	if middleware.WantsJSON(c) {
		_ = c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.MsgSessionExpired, Redirect: loginPath})
		return
	}
	_ = c.Redirect(http.StatusSeeOther, loginPath)
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if apiErr, ok := domain.AsAPIError(err); ok {
		return apiErr.HTTPStatus(), apiErr.UserMessage("An error occurred")
	}

	switch {
	case errors.Is(err, domain.ErrSuperseded):
		return http.StatusConflict, "superseded by a newer request"
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict, "submission already in progress"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func renderErrorPage(c echo.Context, code int, msg string) {
	p := &view.Page{
		Title:     http.StatusText(code),
		Principal: middleware.PrincipalFrom(c),
		Message:   msg,
		Errors:    map[string]string{},
	}
	if err := c.Render(code, "error", p); err != nil {
		_ = c.String(code, msg)
	}
}
