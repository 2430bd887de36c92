package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAPIError_UserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{"backend message wins", &APIError{Kind: KindRejected, Status: 400, Message: "Client already exists"}, "Client already exists"},
		{"fallback when blank", &APIError{Kind: KindRejected, Status: 500}, "Failed to update client"},
		{"unreachable", &APIError{Kind: KindUnreachable, Err: errors.New("timeout")}, MsgNetworkError},
		{"unauthorized", &APIError{Kind: KindUnauthorized, Message: "Token has expired"}, MsgSessionExpired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.UserMessage("Failed to update client"); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *APIError
		want int
	}{
		{&APIError{Kind: KindUnauthorized, Status: 401}, http.StatusUnauthorized},
		{&APIError{Kind: KindUnreachable}, http.StatusBadGateway},
		{&APIError{Kind: KindRejected, Status: 404}, http.StatusNotFound},
		{&APIError{Kind: KindRejected, Status: 200}, http.StatusBadGateway},
	}
	for _, tc := range tests {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, got)
		}
	}
}

func TestIsUnauthorized_Wrapped(t *testing.T) {
	err := fmt.Errorf("list clients: %w", &APIError{Kind: KindUnauthorized})
	if !IsUnauthorized(err) {
		t.Fatalf("expected wrapped 401 to be detected")
	}
	if IsUnauthorized(&APIError{Kind: KindRejected, Status: 403}) {
		t.Fatalf("403 is not unauthorized")
	}
	if IsUnauthorized(errors.New("plain")) {
		t.Fatalf("plain error is not unauthorized")
	}
}
