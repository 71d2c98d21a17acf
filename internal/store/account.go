// Package store provides database access methods for all SlidePress
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"slidepress/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = fmt.Errorf("not found")

// apiKeyPrefixLen is how many leading key characters are stored in clear
// for indexed lookup. Must match the auth middleware.
const apiKeyPrefixLen = 11

// AccountStore handles all account-related database operations.
type AccountStore struct {
	db *sql.DB
}

// NewAccountStore creates a new AccountStore with the given database connection.
func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

// ByAPIKeyPrefix retrieves the account whose API key starts with the given
// clear prefix. The caller must still verify the full key against
// APIKeyHash; the prefix only narrows the lookup.
func (s *AccountStore) ByAPIKeyPrefix(ctx context.Context, prefix string) (*models.Account, error) {
	a := &models.Account{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, api_key_hash, plan, created_at, updated_at
		FROM accounts WHERE api_key_prefix = $1
	`, prefix).Scan(
		&a.ID, &a.Email, &a.Name, &a.APIKeyHash, &a.Plan, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account by key prefix: %w", err)
	}
	return a, nil
}

// FindByID retrieves an account by its UUID.
func (s *AccountStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	a := &models.Account{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, api_key_hash, plan, created_at, updated_at
		FROM accounts WHERE id = $1
	`, id).Scan(
		&a.ID, &a.Email, &a.Name, &a.APIKeyHash, &a.Plan, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return a, nil
}

// Create inserts a new account with a bcrypt-hashed API key and returns it.
func (s *AccountStore) Create(ctx context.Context, email, name, apiKey string, plan models.Plan) (*models.Account, error) {
	if len(apiKey) < apiKeyPrefixLen {
		return nil, fmt.Errorf("api key too short: need at least %d characters", apiKeyPrefixLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash api key: %w", err)
	}

	a := &models.Account{}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (email, name, api_key_hash, api_key_prefix, plan)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, name, api_key_hash, plan, created_at, updated_at
	`, email, name, string(hash), apiKey[:apiKeyPrefixLen], plan).Scan(
		&a.ID, &a.Email, &a.Name, &a.APIKeyHash, &a.Plan, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

// UpdatePlan changes an account's subscription tier.
func (s *AccountStore) UpdatePlan(ctx context.Context, id uuid.UUID, plan models.Plan) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET plan = $1, updated_at = NOW() WHERE id = $2
	`, plan, id)
	if err != nil {
		return fmt.Errorf("update account plan: %w", err)
	}
	return nil
}

// Delete removes an account by ID. Posts, style profiles, and carousels
// cascade.
func (s *AccountStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
