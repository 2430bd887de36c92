package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

func newSessionEcho() *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))))
	e.Use(SessionID(SessionOptions{MaxAge: 3600}))
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, SessionIDFrom(c))
	})
	return e
}

func TestSessionID_IssuesAndKeepsID(t *testing.T) {
	e := newSessionEcho()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	first := rec.Body.String()
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid session id, got %q", first)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != SessionCookie || !cookies[0].HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() != first {
		t.Fatalf("expected same session id %q, got %q", first, rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie for an existing session")
	}
}

func TestSessionID_TamperedCookieGetsFreshID(t *testing.T) {
	e := newSessionEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if _, err := uuid.Parse(rec.Body.String()); err != nil {
		t.Fatalf("expected a fresh session id, got %q", rec.Body.String())
	}
}
