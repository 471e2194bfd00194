package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/talentlink/marketplace-service/internal/models"
)

func TestRegister(t *testing.T) {
	store := newFakeStore()
	service := NewUserService(store)

	user, err := service.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Password: "secret",
		Name:     "Alice",
		Role:     models.RoleFreelancer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected username alice, got %s", user.Username)
	}
	if user.PasswordHash == "secret" {
		t.Errorf("password must be stored hashed")
	}

	profile, _ := store.GetProfile(context.Background(), user.ID)
	if profile == nil || profile.Role != models.RoleFreelancer {
		t.Errorf("profile was not created with the requested role: %+v", profile)
	}
}

func TestRegisterDefaultsToClientRole(t *testing.T) {
	store := newFakeStore()
	service := NewUserService(store)

	user, err := service.Register(context.Background(), models.RegisterRequest{Username: "bob", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profile, _ := store.GetProfile(context.Background(), user.ID)
	if profile.Role != models.RoleClient {
		t.Errorf("expected default role %s, got %s", models.RoleClient, profile.Role)
	}
}

func TestRegisterValidation(t *testing.T) {
	store := newFakeStore()
	store.addUser("taken", models.RoleClient)
	service := NewUserService(store)

	tests := []struct {
		name       string
		req        models.RegisterRequest
		wantStatus int
	}{
		{"missing username", models.RegisterRequest{Password: "secret"}, http.StatusBadRequest},
		{"missing password", models.RegisterRequest{Username: "carol"}, http.StatusBadRequest},
		{"invalid role", models.RegisterRequest{Username: "carol", Password: "secret", Role: "admin"}, http.StatusBadRequest},
		{"duplicate username", models.RegisterRequest{Username: "taken", Password: "secret"}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.req)
			if got := statusCode(err); got != tt.wantStatus {
				t.Errorf("expected status %d, got %d (err=%v)", tt.wantStatus, got, err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	store := newFakeStore()
	service := NewUserService(store)

	if _, err := service.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := service.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected username alice, got %s", user.Username)
	}

	_, err = service.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"})
	if got := statusCode(err); got != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusUnauthorized, got, err)
	}

	_, err = service.Login(context.Background(), models.LoginRequest{Username: "nobody", Password: "secret"})
	if got := statusCode(err); got != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusUnauthorized, got, err)
	}
}
