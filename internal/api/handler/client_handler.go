package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
	"github.com/fitflow/fitflow-web/internal/core/service"
)

const (
	clientsPerPage = 10
	clientsView    = "clients"

	msgClientsFailed      = "Failed to fetch clients"
	msgUpdateClientFailed = "Failed to update client"
	msgDeleteClientFailed = "Failed to delete client"
)

// ClientHandler serves the add-client form, the client list and its JSON search.
type ClientHandler struct {
	clients       ports.ClientService
	subscriptions ports.SubscriptionService
	seq           *service.Sequencer
}

func NewClientHandler(clients ports.ClientService, subscriptions ports.SubscriptionService, seq *service.Sequencer) *ClientHandler {
	return &ClientHandler{clients: clients, subscriptions: subscriptions, seq: seq}
}

type addClientForm struct {
	FirstName    string `form:"first_name" validate:"required" label:"First name"`
	LastName     string `form:"last_name" validate:"required" label:"Last name"`
	Email        string `form:"email" validate:"required,email" label:"Email"`
	Phone        string `form:"phone" validate:"required" label:"Phone"`
	Status       string `form:"status" validate:"omitempty,oneof=Active Inactive" label:"Status"`
	Subscription string `form:"subscription"`
}

type clientQuery struct {
	Search string `query:"search"`
	Status string `query:"status"`
	Page   int    `query:"page"`
}

type editClientForm struct {
	FirstName      string `form:"first_name"`
	LastName       string `form:"last_name"`
	Email          string `form:"email" validate:"omitempty,email" label:"Email"`
	Phone          string `form:"phone"`
	SubscriptionID string `form:"subscription_id"`
}

type clientListData struct {
	Rows  []domain.Client
	Total int
	Page  int
	Pages int
}

type clientSearchResponse struct {
	Clients []domain.Client `json:"clients"`
	Total   int             `json:"total"`
}

func (h *ClientHandler) NewPage(c echo.Context) error {
	p := newPage(c, "Add Client", &addClientForm{Status: "Active"})

	plans, err := h.subscriptions.List(c.Request().Context(), sessionID(c))
	if err != nil {
		return fail(c, "add_client", p, err, msgGeneric)
	}
	p.Data = plans
	return c.Render(http.StatusOK, "add_client", p)
}

// Create handles POST /addClient. Required fields are checked before anything is sent.
func (h *ClientHandler) Create(c echo.Context) error {
	form := &addClientForm{}
	p := newPage(c, "Add Client", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "add_client", "add_client", p, domain.MsgFixErrors); !ok {
		return err
	}

	ctx := c.Request().Context()
	msg, err := h.clients.Create(ctx, sessionID(c), ports.CreateClientInput{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		Phone:        form.Phone,
		Status:       form.Status,
		Subscription: form.Subscription,
	})
	if err != nil {
		return fail(c, "add_client", p, err, msgGeneric)
	}

	p.Form = &addClientForm{Status: "Active"}
	p.Succeed(orDefault(msg, "Client added successfully"))
	if plans, err := h.subscriptions.List(ctx, sessionID(c)); err == nil {
		p.Data = plans
	}
	return c.Render(http.StatusCreated, "add_client", p)
}

// List renders one page of the client list for the current search.
func (h *ClientHandler) List(c echo.Context) error {
	q := &clientQuery{}
	p := newPage(c, "Clients", q)
	if err := c.Bind(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	rows, err := h.load(c, q)
	if err != nil {
		return fail(c, "clients", p, err, msgClientsFailed)
	}
	p.Data = paginate(rows, q.Page)
	return c.Render(http.StatusOK, "clients", p)
}

// Search handles GET /api/clients/search for search-as-you-type. A request that
// is overtaken by a newer one from the same browser answers 409 and carries no rows.
//
// @Summary      Search clients
// @Tags         clients
// @Produce      json
// @Param        search  query     string  false  "Name, email or phone fragment"
// @Param        status  query     string  false  "Active or Inactive"
// @Success      200     {object}  clientSearchResponse
// @Failure      401     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /api/clients/search [get]
func (h *ClientHandler) Search(c echo.Context) error {
	q := &clientQuery{}
	if err := c.Bind(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	rows, err := h.load(c, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientSearchResponse{Clients: rows, Total: len(rows)})
}

// load runs a sequenced list read: a newer read from the same browser cancels
// this one and its late result is discarded.
func (h *ClientHandler) load(c echo.Context, q *clientQuery) ([]domain.Client, error) {
	sid := sessionID(c)
	ctx, ticket := h.seq.Begin(c.Request().Context(), sid, clientsView)
	rows, err := h.clients.List(ctx, sid, ports.ClientFilter{Search: q.Search, Status: q.Status})
	if err := ticket.Finish(err); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update handles POST /clients/:id/update and shows the list with the edited row
// replaced by the record the backend returned.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "client not found")
	}
	form := &editClientForm{}
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	subscriptionID, err := optionalInt(form.SubscriptionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription")
	}

	q := &clientQuery{}
	p := newPage(c, "Clients", q)
	if ok, err := validate(c, form, "clients", "edit_client", p, domain.MsgFixErrors); !ok {
		return err
	}

	updated, err := h.clients.Update(c.Request().Context(), sessionID(c), id, ports.UpdateClientInput{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Email:          form.Email,
		Phone:          form.Phone,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		return fail(c, "clients", p, err, msgUpdateClientFailed)
	}

	rows, err := h.load(c, q)
	if err != nil {
		return fail(c, "clients", p, err, msgClientsFailed)
	}
	for i := range rows {
		if rows[i].ID == updated.ID {
			rows[i] = *updated
		}
	}
	p.Data = paginate(rows, 1)
	p.Succeed("Client updated successfully")
	return c.Render(http.StatusOK, "clients", p)
}

// Delete handles POST /clients/:id/delete.
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "client not found")
	}
	q := &clientQuery{}
	p := newPage(c, "Clients", q)

	msg, err := h.clients.Delete(c.Request().Context(), sessionID(c), id)
	if err != nil {
		return fail(c, "clients", p, err, msgDeleteClientFailed)
	}

	rows, err := h.load(c, q)
	if err != nil {
		return fail(c, "clients", p, err, msgClientsFailed)
	}
	p.Data = paginate(rows, 1)
	p.Succeed(orDefault(msg, "Client deleted successfully"))
	return c.Render(http.StatusOK, "clients", p)
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func paginate(rows []domain.Client, page int) *clientListData {
	pages := (len(rows) + clientsPerPage - 1) / clientsPerPage
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * clientsPerPage
	end := min(start+clientsPerPage, len(rows))
	return &clientListData{Rows: rows[start:end], Total: len(rows), Page: page, Pages: pages}
}
