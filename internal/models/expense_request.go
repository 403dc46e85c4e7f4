package models

import "time"

// CreateExpenseRequest represents the request body for creating an expense.
// Amount carries "required,gt=0": a zero amount is rejected at the boundary
// even though the store itself only requires amount >= 0.
type CreateExpenseRequest struct {
	Title        string     `json:"title" binding:"required"`
	Amount       float64    `json:"amount" binding:"required,gt=0"`
	PaidBy       string     `json:"paidBy" binding:"required"`
	Participants []string   `json:"participants" binding:"required,min=1"`
	Date         *time.Time `json:"date"`        // defaults to now when omitted
	Description  *string    `json:"description"` // defaults to ""
}

// UpdateExpenseRequest represents the request body for updating an expense.
// Every field is optional; only supplied fields are applied.
type UpdateExpenseRequest struct {
	Title        *string    `json:"title"`
	Amount       *float64   `json:"amount"`
	PaidBy       *string    `json:"paidBy"`
	Participants []string   `json:"participants"`
	Date         *time.Time `json:"date"`
	Description  *string    `json:"description"`
}
