package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan represents an account's subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Account represents an API consumer. Requests authenticate with a bearer
// API key whose bcrypt hash is stored here; the raw key is shown once at
// creation and never persisted.
type Account struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	APIKeyHash string    `json:"-"` // Never serialize the hash
	Plan       Plan      `json:"plan"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsPro returns true if the account is on the paid plan.
func (a *Account) IsPro() bool {
	return a.Plan == PlanPro
}
