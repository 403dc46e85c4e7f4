package service

import (
	"context"
	"testing"

	"github.com/lpz8/Backend-splitwise-back/internal/entities"
)

func TestListUsersPreservesStoreOrder(t *testing.T) {
	// The store hands back users sorted by name ascending; the service
	// must not reorder.
	repo := &fakeUserRepo{all: []*entities.User{
		{ID: userA, Name: "Ana", Email: "ana@example.com"},
		{ID: userB, Name: "Bruno", Email: "bruno@example.com"},
		{ID: userC, Name: "Carla", Email: "carla@example.com"},
	}}
	svc := NewUserService(repo)

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, want := range []string{"Ana", "Bruno", "Carla"} {
		if users[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, users[i].Name)
		}
	}
}
