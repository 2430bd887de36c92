package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/service"
)

func validClientForm() url.Values {
	return url.Values{
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
		"email":      {"jane@fitflow.test"},
		"phone":      {"0712345678"},
	}
}

func TestCreateClient_EmptyFirstNameBlocksSubmit(t *testing.T) {
	e := newTestEcho(t)
	clients := &stubClientService{}
	plans := &stubSubscriptionService{}
	h := NewClientHandler(clients, plans, service.NewSequencer())

	form := validClientForm()
	form.Set("first_name", "")
	c, rec := newFormContext(e, http.MethodPost, "/addClient", form)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "First name is required") {
		t.Fatalf("expected field message in body:\n%s", rec.Body.String())
	}
	if clients.creates != 0 || plans.lists != 0 {
		t.Fatalf("expected zero backend calls, got creates=%d plan lists=%d", clients.creates, plans.lists)
	}
}

func TestCreateClient_RejectedShowsBackendMessage(t *testing.T) {
	e := newTestEcho(t)
	clients := &stubClientService{createErr: &domain.APIError{Kind: domain.KindRejected, Status: 400, Message: "Client with this email already exists"}}
	h := NewClientHandler(clients, &stubSubscriptionService{}, service.NewSequencer())

	c, rec := newFormContext(e, http.MethodPost, "/addClient", validClientForm())
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Client with this email already exists") {
		t.Fatalf("expected backend message in body:\n%s", rec.Body.String())
	}
}

func TestCreateClient_UnreachableShowsNetworkError(t *testing.T) {
	e := newTestEcho(t)
	clients := &stubClientService{createErr: &domain.APIError{Kind: domain.KindUnreachable, Err: errors.New("timeout")}}
	h := NewClientHandler(clients, &stubSubscriptionService{}, service.NewSequencer())

	c, rec := newFormContext(e, http.MethodPost, "/addClient", validClientForm())
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), domain.MsgNetworkError) {
		t.Fatalf("expected network message in body:\n%s", rec.Body.String())
	}
}

func TestCreateClient_Success(t *testing.T) {
	e := newTestEcho(t)
	clients := &stubClientService{}
	h := NewClientHandler(clients, &stubSubscriptionService{plans: []domain.Subscription{{ID: 1, Name: "Monthly"}}}, service.NewSequencer())

	c, rec := newFormContext(e, http.MethodPost, "/addClient", validClientForm())
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if clients.creates != 1 {
		t.Fatalf("expected one create call, got %d", clients.creates)
	}
	if !strings.Contains(rec.Body.String(), "Client added successfully") {
		t.Fatalf("expected confirmation in body:\n%s", rec.Body.String())
	}
}

func TestListClients_UnauthorizedIsLeftToErrorHandler(t *testing.T) {
	e := newTestEcho(t)
	clients := &stubClientService{
		rows:    []domain.Client{{ID: 1, FirstName: "Jane"}},
		listErr: &domain.APIError{Kind: domain.KindUnauthorized, Status: 401},
	}
	h := NewClientHandler(clients, &stubSubscriptionService{}, service.NewSequencer())

	c, rec := newFormContext(e, http.MethodGet, "/clients", nil)
	err := h.List(c)
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected nothing rendered, got:\n%s", rec.Body.String())
	}
}

func TestListClients_Paginates(t *testing.T) {
	e := newTestEcho(t)
	rows := make([]domain.Client, 23)
	for i := range rows {
		rows[i] = domain.Client{ID: i + 1, FirstName: "Client"}
	}
	h := NewClientHandler(&stubClientService{rows: rows}, &stubSubscriptionService{}, service.NewSequencer())

	c, rec := newFormContext(e, http.MethodGet, "/clients?page=3", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := paginate(rows, 3)
	if len(data.Rows) != 3 || data.Pages != 3 || data.Rows[0].ID != 21 {
		t.Fatalf("unexpected page: %+v", data)
	}
}

func TestSearchClients_SupersededReadIsDiscarded(t *testing.T) {
	e := newTestEcho(t)
	seq := service.NewSequencer()
	clients := &stubClientService{rows: []domain.Client{{ID: 1}}}
	h := NewClientHandler(clients, &stubSubscriptionService{}, seq)

	// While the first search is in flight a newer one starts for the same browser.
	clients.listHook = func(ctx context.Context) {
		clients.listHook = nil
		newer, _ := newFormContext(e, http.MethodGet, "/api/clients/search?search=jan", nil)
		if err := h.Search(newer); err != nil {
			t.Errorf("newer search failed: %v", err)
		}
		if ctx.Err() == nil {
			t.Errorf("expected the older read to be cancelled")
		}
	}

	c, rec := newFormContext(e, http.MethodGet, "/api/clients/search?search=ja", nil)
	err := h.Search(c)
	if !errors.Is(err, domain.ErrSuperseded) {
		t.Fatalf("expected superseded, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected no rows written for the stale read")
	}
}

func TestSearchClients_JSON(t *testing.T) {
	e := newTestEcho(t)
	h := NewClientHandler(&stubClientService{rows: []domain.Client{{ID: 1, FirstName: "Jane"}, {ID: 2, FirstName: "John"}}}, &stubSubscriptionService{}, service.NewSequencer())

	c, rec := newFormContext(e, http.MethodGet, "/api/clients/search?search=j", nil)
	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body clientSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Total != 2 || len(body.Clients) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestUpdateClient_SendsSubscriptionID(t *testing.T) {
	e := newTestEcho(t)
	clients := &stubClientService{rows: []domain.Client{{ID: 7, FirstName: "Jane"}}}
	h := NewClientHandler(clients, &stubSubscriptionService{}, service.NewSequencer())

	c, rec := newFormContext(e, http.MethodPost, "/clients/7/update", url.Values{
		"first_name":      {"Janet"},
		"subscription_id": {"3"},
	})
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(clients.updates) != 1 || clients.updates[0].SubscriptionID == nil || *clients.updates[0].SubscriptionID != 3 {
		t.Fatalf("expected subscription id 3, got %+v", clients.updates)
	}
}

func TestListClients_EditRowCarriesSubscriptionID(t *testing.T) {
	e := newTestEcho(t)
	plan := 3
	h := NewClientHandler(&stubClientService{rows: []domain.Client{{ID: 7, FirstName: "Jane", SubscriptionID: &plan}}}, &stubSubscriptionService{}, service.NewSequencer())

	c, rec := newFormContext(e, http.MethodGet, "/clients", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `name="subscription_id" value="3"`) {
		t.Fatalf("expected subscription id input in edit row:\n%s", rec.Body.String())
	}
}
