package entities

import "time"

// Expense represents an expense row in the database.
// PaidBy and Participants hold raw user UUIDs; the service layer resolves
// them into user projections before anything leaves the API.
type Expense struct {
	ID           string    `json:"id"` // UUID
	Title        string    `json:"title"`
	Amount       float64   `json:"amount"`
	PaidBy       string    `json:"paidBy"`       // user UUID
	Participants []string  `json:"participants"` // user UUIDs, insertion order preserved
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
