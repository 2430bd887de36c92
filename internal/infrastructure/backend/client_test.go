package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
	"github.com/fitflow/fitflow-web/internal/infrastructure/db/memory"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *memory.SessionStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := memory.NewSessionStore()
	return NewClient(Config{BaseURL: srv.URL, Timeout: time.Second}, store, zerolog.Nop()), store
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestClient_Do_SuccessReturnsBody(t *testing.T) {
	client, _ := newTestClient(t, reply(http.StatusOK, `{"clients":[]}`))

	raw, err := client.Do(context.Background(), "sid", ports.BackendRequest{Method: http.MethodGet, Path: "/clients"})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if string(raw) != `{"clients":[]}` {
		t.Fatalf("unexpected body %s", raw)
	}
}

func TestClient_Do_EmptySuccessBody(t *testing.T) {
	client, _ := newTestClient(t, reply(http.StatusNoContent, ""))

	raw, err := client.Do(context.Background(), "sid", ports.BackendRequest{Method: http.MethodDelete, Path: "/clients/1"})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("expected {}, got %s", raw)
	}
}

func TestClient_Do_AttachesStoredCredential(t *testing.T) {
	var got atomic.Value
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	})
	_ = store.Set(context.Background(), "sid", "tok-123")

	if _, err := client.Do(context.Background(), "sid", ports.BackendRequest{Method: http.MethodGet, Path: "/dashboard", Authenticated: true}); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got.Load() != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %v", got.Load())
	}
}

func TestClient_Do_NoCredentialSendsWithoutHeader(t *testing.T) {
	var got atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	})

	if _, err := client.Do(context.Background(), "sid", ports.BackendRequest{Method: http.MethodGet, Path: "/dashboard", Authenticated: true}); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got.Load() != "" {
		t.Fatalf("expected no Authorization header, got %v", got.Load())
	}
}

func TestClient_Do_UnauthorizedDoesNotTouchStore(t *testing.T) {
	client, store := newTestClient(t, reply(http.StatusUnauthorized, `{"msg":"Token has expired"}`))
	_ = store.Set(context.Background(), "sid", "stale")

	_, err := client.Do(context.Background(), "sid", ports.BackendRequest{Method: http.MethodGet, Path: "/clients", Authenticated: true})
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if cred, _ := store.Get(context.Background(), "sid"); cred != "stale" {
		t.Fatalf("client must not mutate the store, got %q", cred)
	}
}

func TestClient_Do_RejectionMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field", http.StatusBadRequest, `{"error":"Email already in use"}`, "Email already in use"},
		{"message field", http.StatusNotFound, `{"message":"Client not found"}`, "Client not found"},
		{"error wins", http.StatusBadRequest, `{"error":"A","message":"B"}`, "A"},
		{"no message", http.StatusInternalServerError, `{}`, ""},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, reply(tc.status, tc.body))

			_, err := client.Do(context.Background(), "sid", ports.BackendRequest{Method: http.MethodPost, Path: "/addClient", Body: map[string]string{}})
			apiErr, ok := domain.AsAPIError(err)
			if !ok {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Kind != domain.KindRejected || apiErr.Status != tc.status {
				t.Fatalf("unexpected error: %+v", apiErr)
			}
			if apiErr.Message != tc.want {
				t.Fatalf("expected message %q, got %q", tc.want, apiErr.Message)
			}
		})
	}
}

func TestClient_Do_FieldErrors(t *testing.T) {
	client, _ := newTestClient(t, reply(http.StatusUnprocessableEntity, `{"message":"Invalid","errors":{"phone":["too short","digits only"],"email":"bad"}}`))

	_, err := client.Do(context.Background(), "sid", ports.BackendRequest{Method: http.MethodPost, Path: "/addClient"})
	apiErr, _ := domain.AsAPIError(err)
	if apiErr == nil || apiErr.Fields["phone"] != "too short; digits only" || apiErr.Fields["email"] != "bad" {
		t.Fatalf("unexpected field errors: %+v", apiErr)
	}
}

func TestClient_Do_UnreachableIsSingleAttempt(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		// Reading the body lets the server notice the client hanging up.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)
	client := NewClient(Config{BaseURL: srv.URL, Timeout: 100 * time.Millisecond}, memory.NewSessionStore(), zerolog.Nop())

	_, err := client.Do(context.Background(), "sid", ports.BackendRequest{Method: http.MethodPost, Path: "/markCashPayment", Body: map[string]any{"phone": "1"}})
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind != domain.KindUnreachable {
		t.Fatalf("expected unreachable, got %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("expected exactly one attempt, got %d", n)
	}
}

func TestClient_Do_ClosedServerIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client := NewClient(Config{BaseURL: url}, memory.NewSessionStore(), zerolog.Nop())

	_, err := client.Do(context.Background(), "sid", ports.BackendRequest{Method: http.MethodGet, Path: "/subscriptions"})
	if apiErr, ok := domain.AsAPIError(err); !ok || apiErr.Kind != domain.KindUnreachable {
		t.Fatalf("expected unreachable, got %v", err)
	}
}

func TestEndpointLabel(t *testing.T) {
	if got := endpointLabel("/clients/42"); got != "/clients/:id" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := endpointLabel("/dashboard/client"); got != "/dashboard/client" {
		t.Fatalf("unexpected label %q", got)
	}
}
