package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/lpz8/Backend-splitwise-back/internal/entities"
)

// ExpenseUpdate describes a partial update of an expense.
// Nil fields are left untouched; a non-nil Participants slice replaces
// the whole participant list.
type ExpenseUpdate struct {
	Title        *string
	Amount       *float64
	PaidBy       *string
	Participants []string
	Date         *time.Time
	Description  *string
}

// ExpenseRepository defines the interface for expense database operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entities.Expense) (*entities.Expense, error)
	FindAll(ctx context.Context) ([]*entities.Expense, error)
	FindByID(ctx context.Context, id string) (*entities.Expense, error)
	Update(ctx context.Context, id string, upd *ExpenseUpdate) (*entities.Expense, error)
	Delete(ctx context.Context, id string) error
}

type expenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *sql.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = "id, title, amount, paid_by, date, description, created_at, updated_at"

// Create inserts a new expense and its participant list in one transaction
func (r *expenseRepository) Create(ctx context.Context, expense *entities.Expense) (*entities.Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (title, amount, paid_by, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + expenseColumns

	created := &entities.Expense{}
	err = tx.QueryRowContext(ctx, query,
		expense.Title, expense.Amount, expense.PaidBy, expense.Date, expense.Description,
	).Scan(
		&created.ID,
		&created.Title,
		&created.Amount,
		&created.PaidBy,
		&created.Date,
		&created.Description,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	if err := replaceParticipants(ctx, tx, created.ID, expense.Participants); err != nil {
		return nil, err
	}
	created.Participants = expense.Participants

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return created, nil
}

// FindAll returns every expense, newest first (date desc, created_at desc)
func (r *expenseRepository) FindAll(ctx context.Context) ([]*entities.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*entities.Expense{}
	for rows.Next() {
		var e entities.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.PaidBy, &e.Date, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadParticipants(ctx, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

// FindByID finds a single expense by ID (UUID)
func (r *expenseRepository) FindByID(ctx context.Context, id string) (*entities.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = $1
	`

	var e entities.Expense
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Amount, &e.PaidBy, &e.Date, &e.Description, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	if err := r.loadParticipants(ctx, []*entities.Expense{&e}); err != nil {
		return nil, err
	}

	return &e, nil
}

// Update applies the supplied fields to an expense and returns the
// post-update record. Missing records map to ErrNotFound.
func (r *expenseRepository) Update(ctx context.Context, id string, upd *ExpenseUpdate) (*entities.Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	set := []string{"updated_at = now()"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if upd.Title != nil {
		set = append(set, "title = "+arg(*upd.Title))
	}
	if upd.Amount != nil {
		set = append(set, "amount = "+arg(*upd.Amount))
	}
	if upd.PaidBy != nil {
		set = append(set, "paid_by = "+arg(*upd.PaidBy))
	}
	if upd.Date != nil {
		set = append(set, "date = "+arg(*upd.Date))
	}
	if upd.Description != nil {
		set = append(set, "description = "+arg(*upd.Description))
	}

	query := fmt.Sprintf(
		"UPDATE expenses SET %s WHERE id = %s RETURNING %s",
		strings.Join(set, ", "), arg(id), expenseColumns,
	)

	var e entities.Expense
	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Title, &e.Amount, &e.PaidBy, &e.Date, &e.Description, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if upd.Participants != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_participants WHERE expense_id = $1", id); err != nil {
			return nil, fmt.Errorf("failed to clear participants: %w", err)
		}
		if err := replaceParticipants(ctx, tx, id, upd.Participants); err != nil {
			return nil, err
		}
		e.Participants = upd.Participants
	} else {
		participants, err := queryParticipants(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		e.Participants = participants
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}

	return &e, nil
}

// Delete removes an expense by ID; participants cascade at the schema level
func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// loadParticipants fills the Participants slice of each expense, in stored order
func (r *expenseRepository) loadParticipants(ctx context.Context, expenses []*entities.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	ids := make([]string, len(expenses))
	byID := make(map[string]*entities.Expense, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
		byID[e.ID] = e
		e.Participants = []string{}
	}

	query := `
		SELECT expense_id, user_id
		FROM expense_participants
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, position
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, userID string
		if err := rows.Scan(&expenseID, &userID); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.Participants = append(e.Participants, userID)
		}
	}
	return rows.Err()
}

func queryParticipants(ctx context.Context, tx *sql.Tx, expenseID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT user_id FROM expense_participants WHERE expense_id = $1 ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	defer rows.Close()

	participants := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, userID)
	}
	return participants, rows.Err()
}

func replaceParticipants(ctx context.Context, tx *sql.Tx, expenseID string, userIDs []string) error {
	for i, userID := range userIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, user_id, position) VALUES ($1, $2, $3)",
			expenseID, userID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}
