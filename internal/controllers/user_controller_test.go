package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lpz8/Backend-splitwise-back/internal/entities"
	"github.com/lpz8/Backend-splitwise-back/internal/models"
)

type stubUserService struct {
	created *models.CreateUserRequest
	users   []*entities.User
}

func (s *stubUserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error) {
	s.created = req
	return &entities.User{ID: knownID, Name: req.Name, Email: req.Email}, nil
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return s.users, nil
}

func newUserRouter(svc *stubUserService) *gin.Engine {
	router := gin.New()
	uc := NewUserController(svc)
	router.GET("/users", uc.ListUsers)
	router.POST("/users", uc.CreateUser)
	return router
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"ana@example.com"}`},
		{"missing email", `{"name":"Ana"}`},
		{"empty name", `{"name":"","email":"ana@example.com"}`},
		{"empty email", `{"name":"Ana","email":""}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubUserService{}
			w := doRequest(t, newUserRouter(svc), http.MethodPost, "/users", tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if msg := errorBody(t, w); msg != "missing name or email" {
				t.Errorf("expected 'missing name or email', got %q", msg)
			}
			if svc.created != nil {
				t.Error("expected no user to be created on validation failure")
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	svc := &stubUserService{}
	w := doRequest(t, newUserRouter(svc), http.MethodPost, "/users", `{"name":"Ana","email":"ana@example.com"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var user entities.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if user.Name != "Ana" || user.Email != "ana@example.com" {
		t.Errorf("unexpected user in response: %+v", user)
	}
}

func TestListUsers(t *testing.T) {
	svc := &stubUserService{users: []*entities.User{
		{ID: knownID, Name: "Ana", Email: "ana@example.com"},
		{ID: "3f1a7d2e-51c4-4e7a-9b0e-000000000002", Name: "Bruno", Email: "bruno@example.com"},
	}}
	w := doRequest(t, newUserRouter(svc), http.MethodGet, "/users", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var users []entities.User
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
