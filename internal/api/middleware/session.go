package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookie is the name of the signed cookie carrying the browser session id.
	SessionCookie = "fitflow_session"

	sessionIDValue = "sid"
	sessionIDKey   = "session_id"
	principalKey   = "principal"
)

// SessionOptions configures the browser session cookie.
type SessionOptions struct {
	MaxAge int
	Secure bool
}

// SessionID issues every browser a random session id, kept in the signed cookie
// managed by echo-contrib/session, and exposes it through SessionIDFrom. It must
// run after session.Middleware.
func SessionID(opts SessionOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.Get(SessionCookie, c)
			if err != nil && sess == nil {
				return err
			}
			// A cookie that fails verification yields a fresh session; err is ignored then.

			sid, _ := sess.Values[sessionIDValue].(string)
			if _, parseErr := uuid.Parse(sid); parseErr != nil {
				sid = uuid.NewString()
				sess.Values[sessionIDValue] = sid
				sess.Options = &sessions.Options{
					Path:     "/",
					MaxAge:   opts.MaxAge,
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				}
				if err := sess.Save(c.Request(), c.Response()); err != nil {
					return err
				}
			}

			c.Set(sessionIDKey, sid)
			return next(c)
		}
	}
}

// SessionIDFrom returns the browser session id set by SessionID.
func SessionIDFrom(c echo.Context) string {
	sid, _ := c.Get(sessionIDKey).(string)
	return sid
}

// SetSessionID is used by tests and tools that build a context without the cookie middleware.
func SetSessionID(c echo.Context, sid string) {
	c.Set(sessionIDKey, sid)
}

// PrincipalFrom returns the display name of the signed-in user, if any.
func PrincipalFrom(c echo.Context) string {
	p, _ := c.Get(principalKey).(string)
	return p
}

// WantsJSON reports whether the caller expects a JSON answer rather than a page.
func WantsJSON(c echo.Context) bool {
	r := c.Request()
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
