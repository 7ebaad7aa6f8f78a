// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"testing"

	"github.com/mfedotov/credvault/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestPrincipalCtxKey(t *testing.T) {
	if PrincipalCtxKey.String() != "principal" {
		t.Errorf("expected 'principal', got '%s'", PrincipalCtxKey.String())
	}
}

func TestGetPrincipalFromContext_Success(t *testing.T) {
	want := models.User{ID: 42, Username: "jdoe", Role: models.RoleTechnician}
	ctx := context.WithValue(context.Background(), PrincipalCtxKey, want)

	user, ok := GetPrincipalFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if user.ID != 42 || user.Username != "jdoe" {
		t.Errorf("unexpected principal: %+v", user)
	}
}

func TestGetPrincipalFromContext_Missing(t *testing.T) {
	user, ok := GetPrincipalFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if user.ID != 0 {
		t.Errorf("expected zero user, got %+v", user)
	}
}

func TestGetPrincipalFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), PrincipalCtxKey, "not-a-user")

	user, ok := GetPrincipalFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
	if user.ID != 0 {
		t.Errorf("expected zero user, got %+v", user)
	}
}

func TestGetPrincipalFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, models.User{ID: 99})

	user, ok := GetPrincipalFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for different key, got true")
	}
	if user.ID != 0 {
		t.Errorf("expected zero user, got %+v", user)
	}
}
