package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lpz8/Backend-splitwise-back/internal/cache"
	"github.com/lpz8/Backend-splitwise-back/internal/entities"
	"github.com/lpz8/Backend-splitwise-back/internal/models"
	"github.com/lpz8/Backend-splitwise-back/internal/repository"
)

// ErrEmptyParticipants is returned when an update tries to clear the
// participant list entirely.
var ErrEmptyParticipants = errors.New("participants cannot be empty")

// ExpenseService defines the interface for expense business logic.
// Every read path returns expenses with user references resolved.
type ExpenseService interface {
	CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.ExpenseResponse, error)
	ListExpenses(ctx context.Context) ([]*models.ExpenseResponse, error)
	GetExpense(ctx context.Context, id string) (*models.ExpenseResponse, error)
	UpdateExpense(ctx context.Context, id string, req *models.UpdateExpenseRequest) (*models.ExpenseResponse, error)
	DeleteExpense(ctx context.Context, id string) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	userRepo    repository.UserRepository
	cache       cache.Cache
	cacheTTL    time.Duration
}

// NewExpenseService creates a new expense service. cacheClient may be nil,
// in which case user projections are always read from the database.
func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	userRepo repository.UserRepository,
	cacheClient cache.Cache,
	cacheTTL time.Duration,
) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		cache:       cacheClient,
		cacheTTL:    cacheTTL,
	}
}

// CreateExpense persists a new expense and returns it with references resolved
func (s *expenseService) CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.ExpenseResponse, error) {
	expense := &entities.Expense{
		Title:        strings.TrimSpace(req.Title),
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		Date:         time.Now().UTC(),
	}
	if req.Date != nil {
		expense.Date = req.Date.UTC()
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}

	created, err := s.expenseRepo.Create(ctx, expense)
	if err != nil {
		return nil, err
	}

	return s.resolveOne(ctx, created)
}

// ListExpenses returns every expense, newest first, with references resolved
func (s *expenseService) ListExpenses(ctx context.Context) ([]*models.ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, expenses)
}

// GetExpense returns a single expense with references resolved
func (s *expenseService) GetExpense(ctx context.Context, id string) (*models.ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, expense)
}

// UpdateExpense applies the supplied fields and returns the updated expense
// with references resolved
func (s *expenseService) UpdateExpense(ctx context.Context, id string, req *models.UpdateExpenseRequest) (*models.ExpenseResponse, error) {
	if req.Participants != nil && len(req.Participants) == 0 {
		return nil, ErrEmptyParticipants
	}

	upd := &repository.ExpenseUpdate{
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		Date:         req.Date,
		Description:  req.Description,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		upd.Title = &title
	}

	updated, err := s.expenseRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	return s.resolveOne(ctx, updated)
}

// DeleteExpense removes an expense by ID. Repository errors already carry
// context, so they pass through unwrapped.
func (s *expenseService) DeleteExpense(ctx context.Context, id string) error {
	return s.expenseRepo.Delete(ctx, id)
}
