package domain

import "github.com/shopspring/decimal"

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Admin is the backend's projection of a gym administrator.
type Admin struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Client models a gym member as returned by the backend.
type Client struct {
	ID                 int                 `json:"id"`
	FirstName          string              `json:"first_name"`
	LastName           string              `json:"last_name"`
	Email              string              `json:"email"`
	Phone              string              `json:"phone"`
	Status             string              `json:"status"`
	Subscription       string              `json:"subscription"`
	SubscriptionID     *int                `json:"subscription_id"`
	SubscriptionPrice  decimal.NullDecimal `json:"subscription_price"`
	SubscriptionExpiry Timestamp           `json:"subscription_expiry"`
	CreatedAt          Timestamp           `json:"created_at"`
}

func (c Client) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// DisplayStatus falls back to "Active" when the backend left the status blank.
func (c Client) DisplayStatus() string {
	if c.Status == "" {
		return "Active"
	}
	return c.Status
}

// LoginResult is what a successful login yields after the credential has been stored.
type LoginResult struct {
	Role    string
	Message string
}
