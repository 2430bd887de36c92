// Package backend is the API client for the FitFlow backend service.
//
// Every call goes through Client.Do, which attaches the session's bearer
// credential when asked to and folds every failure into a *domain.APIError:
//
//	401            → KindUnauthorized
//	other 4xx/5xx  → KindRejected (message from "error", then "message")
//	no response    → KindUnreachable
//
// Calls are single-attempt; nothing is retried.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/fitflow/fitflow-web/internal/api/metrics"
	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Config captures the settings for reaching the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.Backend on top of resty.
type Client struct {
	http  *resty.Client
	store ports.SessionStore
	log   zerolog.Logger
}

// NewClient builds a Client that reads credentials from store.
// A default timeout is applied when none is provided.
func NewClient(cfg Config, store ports.SessionStore, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{log: log})

	return &Client{http: rc, store: store, log: log}
}

// Do issues req on behalf of sessionID and returns the raw JSON body of a 2xx answer.
func (c *Client) Do(ctx context.Context, sessionID string, req ports.BackendRequest) (json.RawMessage, error) {
	r := c.http.R().SetContext(ctx)

	if req.Authenticated {
		cred, err := c.store.Get(ctx, sessionID)
		switch {
		case err == nil:
			r.SetAuthToken(string(cred))
		case errors.Is(err, domain.ErrNoCredential):
			// Sent anyway; the backend answers 401 and the caller handles it.
		default:
			return nil, fmt.Errorf("backend: read credential: %w", err)
		}
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	endpoint := endpointLabel(req.Path)
	start := time.Now()
	resp, err := r.Execute(req.Method, req.Path)
	metrics.BackendRequestDuration.WithLabelValues(req.Method, endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		c.observe(req.Method, endpoint, domain.KindUnreachable.String())
		c.log.Warn().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("backend unreachable")
		return nil, &domain.APIError{Kind: domain.KindUnreachable, Err: err}
	}

	status := resp.StatusCode()
	body := resp.Body()

	if status == http.StatusUnauthorized {
		c.observe(req.Method, endpoint, domain.KindUnauthorized.String())
		apiErr := parseRejection(status, body)
		apiErr.Kind = domain.KindUnauthorized
		return nil, apiErr
	}
	if status >= http.StatusBadRequest {
		c.observe(req.Method, endpoint, domain.KindRejected.String())
		apiErr := parseRejection(status, body)
		c.log.Debug().Int("status", status).Str("path", req.Path).Str("message", apiErr.Message).Msg("backend rejected request")
		return nil, apiErr
	}

	c.observe(req.Method, endpoint, "ok")
	if len(bytes.TrimSpace(body)) == 0 {
		return json.RawMessage("{}"), nil
	}
	return json.RawMessage(body), nil
}

// Ping reports whether the backend answers HTTP at all; any status counts.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.http.R().SetContext(ctx).Get("/"); err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	return nil
}

func (c *Client) observe(method, endpoint, outcome string) {
	metrics.BackendRequestsTotal.WithLabelValues(method, endpoint, outcome).Inc()
}

// errorEnvelope covers the shapes the backend uses for failures:
// {"error": "..."}, {"message": "..."} and an optional {"errors": {field: msg}}.
type errorEnvelope struct {
	Error   any            `json:"error"`
	Message any            `json:"message"`
	Errors  map[string]any `json:"errors"`
}

func parseRejection(status int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{Kind: domain.KindRejected, Status: status}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return apiErr
	}
	if s, ok := env.Error.(string); ok && s != "" {
		apiErr.Message = s
	} else if s, ok := env.Message.(string); ok && s != "" {
		apiErr.Message = s
	}
	if len(env.Errors) > 0 {
		apiErr.Fields = make(map[string]string, len(env.Errors))
		for field, v := range env.Errors {
			if msg := fieldMessage(v); msg != "" {
				apiErr.Fields[field] = msg
			}
		}
	}
	return apiErr
}

func fieldMessage(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// endpointLabel collapses numeric path segments so metric cardinality stays bounded.
func endpointLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s != "" && strings.Trim(s, "0123456789") == "" {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

// restyLogger routes resty's internal warnings into zerolog.
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...any)  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...any) { l.log.Debug().Msgf(format, v...) }
