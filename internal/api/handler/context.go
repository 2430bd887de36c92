package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"

	"github.com/fitflow/fitflow-web/internal/api/metrics"
	"github.com/fitflow/fitflow-web/internal/api/middleware"
	"github.com/fitflow/fitflow-web/internal/api/view"
	"github.com/fitflow/fitflow-web/internal/core/domain"
)

const (
	msgGeneric   = "An error occurred"
	msgDuplicate = "This submission is already being processed. Please wait."
)

// sessionID returns the browser session id; every route runs behind the
// SessionID middleware so it is never empty in production.
func sessionID(c echo.Context) string {
	return middleware.SessionIDFrom(c)
}

func newPage(c echo.Context, title string, form any) *view.Page {
	return &view.Page{
		Title:     title,
		Principal: middleware.PrincipalFrom(c),
		CSRFField: csrf.TemplateField(c.Request()),
		Errors:    map[string]string{},
		Form:      form,
	}
}

// validate runs target through c.Validate. On failure it renders the page with
// the field messages and status 422, and reports false; the caller must return
// the error it got back without touching the backend.
func validate(c echo.Context, target any, name, form string, p *view.Page, summary string) (bool, error) {
	err := c.Validate(target)
	if err == nil {
		return true, nil
	}
	var fe FieldErrors
	if !errors.As(err, &fe) {
		return false, err
	}
	return false, invalid(c, name, form, p, fe, summary)
}

func invalid(c echo.Context, name, form string, p *view.Page, fe FieldErrors, summary string) error {
	metrics.ValidationFailuresTotal.WithLabelValues(form).Inc()
	for k, v := range fe {
		p.Errors[k] = v
	}
	p.Fail(summary)
	return c.Render(http.StatusUnprocessableEntity, name, p)
}

// fail renders the page with the message for a failed backend call. Unauthorized
// and non-backend errors are returned untouched for the central error handler.
func fail(c echo.Context, name string, p *view.Page, err error, fallback string) error {
	if errors.Is(err, domain.ErrDuplicateSubmission) {
		p.Fail(msgDuplicate)
		return c.Render(http.StatusConflict, name, p)
	}
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind == domain.KindUnauthorized {
		return err
	}
	p.Fail(apiErr.UserMessage(fallback))
	for k, v := range apiErr.Fields {
		p.Errors[k] = v
	}
	return c.Render(apiErr.HTTPStatus(), name, p)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
