package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lpz8/Backend-splitwise-back/internal/cache"
	"github.com/lpz8/Backend-splitwise-back/internal/entities"
	"github.com/lpz8/Backend-splitwise-back/internal/models"
)

// Reference resolution: expenses store bare user UUIDs in paidBy and
// participants; responses carry {id, name, email} projections instead.
// A dangling reference resolves to nil for that slot, never an error.

func (s *expenseService) resolveOne(ctx context.Context, expense *entities.Expense) (*models.ExpenseResponse, error) {
	resolved, err := s.resolveAll(ctx, []*entities.Expense{expense})
	if err != nil {
		return nil, err
	}
	return resolved[0], nil
}

func (s *expenseService) resolveAll(ctx context.Context, expenses []*entities.Expense) ([]*models.ExpenseResponse, error) {
	ids := referencedUserIDs(expenses)
	refs, err := s.lookupRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ExpenseResponse, len(expenses))
	for i, e := range expenses {
		resp := &models.ExpenseResponse{
			ID:           e.ID,
			Title:        e.Title,
			Amount:       e.Amount,
			PaidBy:       refs[e.PaidBy],
			Participants: make([]*models.UserRef, len(e.Participants)),
			Date:         e.Date,
			Description:  e.Description,
			CreatedAt:    e.CreatedAt,
			UpdatedAt:    e.UpdatedAt,
		}
		for j, userID := range e.Participants {
			resp.Participants[j] = refs[userID]
		}
		responses[i] = resp
	}

	return responses, nil
}

// lookupRefs resolves user IDs into projections, consulting the cache first.
// Users are never updated or deleted, so cached projections cannot go stale.
func (s *expenseService) lookupRefs(ctx context.Context, ids []string) (map[string]*models.UserRef, error) {
	refs := make(map[string]*models.UserRef, len(ids))

	missing := ids
	if s.cache != nil {
		missing = make([]string, 0, len(ids))
		for _, id := range ids {
			var ref models.UserRef
			err := s.cache.GetJSON(ctx, refCacheKey(id), &ref)
			switch {
			case err == nil:
				refs[id] = &ref
			case errors.Is(err, cache.ErrMiss):
				missing = append(missing, id)
			default:
				slog.Warn("projection cache read failed", "error", err)
				missing = append(missing, id)
			}
		}
	}

	if len(missing) == 0 {
		return refs, nil
	}

	users, err := s.userRepo.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, user := range users {
		ref := &models.UserRef{ID: user.ID, Name: user.Name, Email: user.Email}
		refs[id] = ref
		if s.cache != nil {
			if err := s.cache.SetJSON(ctx, refCacheKey(id), ref, s.cacheTTL); err != nil {
				slog.Warn("projection cache write failed", "error", err)
			}
		}
	}

	return refs, nil
}

func refCacheKey(userID string) string {
	return "user:ref:" + userID
}

// referencedUserIDs collects the distinct user IDs an expense batch refers to
func referencedUserIDs(expenses []*entities.Expense) []string {
	seen := map[string]bool{}
	ids := []string{}
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, e := range expenses {
		add(e.PaidBy)
		for _, p := range e.Participants {
			add(p)
		}
	}
	return ids
}
