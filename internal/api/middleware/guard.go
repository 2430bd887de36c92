package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fitflow/fitflow-web/internal/api/metrics"
	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

// Guard admits a request to a protected route only when a credential is stored
// for its browser session. The credential itself is not checked; an expired one
// is discovered when the backend answers 401.
func Guard(store ports.SessionStore, loginPath string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cred, err := store.Get(c.Request().Context(), SessionIDFrom(c))
			if err != nil {
				if !errors.Is(err, domain.ErrNoCredential) {
					log.Error().Err(err).Msg("session store lookup failed")
					return err
				}
				metrics.GuardDecisionsTotal.WithLabelValues("denied").Inc()
				if WantsJSON(c) {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"error":    "authentication required",
						"redirect": loginPath,
					})
				}
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("allowed").Inc()
			c.Set(principalKey, cred.Principal())
			return next(c)
		}
	}
}
