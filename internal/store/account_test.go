// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"slidepress/internal/models"
)

func TestAccountStoreCreateAndLookup(t *testing.T) {
	db := testDB(t)
	s := NewAccountStore(db)
	ctx := context.Background()

	const email = "store-test@slidepress.local"
	const apiKey = "sp_test_storeaccount01"
	cleanAccounts(t, db, email)
	t.Cleanup(func() { cleanAccounts(t, db, email) })

	created, err := s.Create(ctx, email, "Store Test", apiKey, models.PlanFree)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Email != email || created.Plan != models.PlanFree {
		t.Errorf("unexpected account: %+v", created)
	}
	if bcrypt.CompareHashAndPassword([]byte(created.APIKeyHash), []byte(apiKey)) != nil {
		t.Error("stored hash does not verify the api key")
	}

	found, err := s.ByAPIKeyPrefix(ctx, apiKey[:apiKeyPrefixLen])
	if err != nil {
		t.Fatalf("ByAPIKeyPrefix: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("prefix lookup returned wrong account: %s != %s", found.ID, created.ID)
	}

	byID, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.Email != email {
		t.Errorf("FindByID email: got %q", byID.Email)
	}
}

func TestAccountStoreUpdatePlan(t *testing.T) {
	db := testDB(t)
	s := NewAccountStore(db)
	ctx := context.Background()

	const email = "store-plan@slidepress.local"
	cleanAccounts(t, db, email)
	t.Cleanup(func() { cleanAccounts(t, db, email) })

	created, err := s.Create(ctx, email, "Plan Test", "sp_test_storeaccount02", models.PlanFree)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.UpdatePlan(ctx, created.ID, models.PlanPro); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}

	updated, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !updated.IsPro() {
		t.Errorf("plan: got %q, want pro", updated.Plan)
	}
}

func TestAccountStoreNotFound(t *testing.T) {
	db := testDB(t)
	s := NewAccountStore(db)

	_, err := s.ByAPIKeyPrefix(context.Background(), "sp_nothere0")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountStoreCreateShortKey(t *testing.T) {
	db := testDB(t)
	s := NewAccountStore(db)

	_, err := s.Create(context.Background(), "short@slidepress.local", "Short", "sp_x", models.PlanFree)
	if err == nil {
		t.Fatal("expected error for short api key")
	}
}
