// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"slidepress/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// AccountKey is the context key for the authenticated account.
	AccountKey contextKey = "account"

	// keyPrefixLen is how many leading characters of an API key are stored
	// in clear for lookup. The full key is verified against a bcrypt hash,
	// so the prefix only narrows the candidate set.
	keyPrefixLen = 11
)

// AccountSource looks up accounts by API key prefix. Implemented by
// store.AccountStore.
type AccountSource interface {
	ByAPIKeyPrefix(ctx context.Context, prefix string) (*models.Account, error)
}

// APIKeyAuth authenticates requests by their Bearer API key. Keys look
// like "sp_..." and are matched by prefix, then verified against the
// stored bcrypt hash. On success the account is placed in the request
// context for downstream handlers.
func APIKeyAuth(accounts AccountSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := bearerToken(r)
			if !ok || len(key) < keyPrefixLen || !strings.HasPrefix(key, "sp_") {
				unauthorized(w)
				return
			}

			account, err := accounts.ByAPIKeyPrefix(r.Context(), key[:keyPrefixLen])
			if err != nil {
				unauthorized(w)
				return
			}

			if bcrypt.CompareHashAndPassword([]byte(account.APIKeyHash), []byte(key)) != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), AccountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromCtx extracts the authenticated account from the request
// context. Returns nil if the request did not pass APIKeyAuth.
func AccountFromCtx(ctx context.Context) *models.Account {
	account, _ := ctx.Value(AccountKey).(*models.Account)
	return account
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}
	token := strings.TrimSpace(auth[len(prefix):])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized"}`))
}
