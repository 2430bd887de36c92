package middleware

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// CSRFField is the form field the token is posted in.
const CSRFField = "csrf_token"

// CSRF protects every unsafe request with gorilla/csrf. When secure is false the
// request is marked as plain HTTP so the origin check does not demand TLS.
func CSRF(authKey []byte, secure bool, log zerolog.Logger) echo.MiddlewareFunc {
	protect := csrf.Protect(authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName(CSRFField),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Warn().Err(csrf.FailureReason(r)).Str("path", r.URL.Path).Msg("csrf check failed")
			http.Error(w, "Forbidden - invalid or missing CSRF token. Reload the page and try again.", http.StatusForbidden)
		})),
	)
	wrapped := echo.WrapMiddleware(protect)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := wrapped(next)
		return func(c echo.Context) error {
			if !secure {
				c.SetRequest(csrf.PlaintextHTTPRequest(c.Request()))
			}
			return h(c)
		}
	}
}
