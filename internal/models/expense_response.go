package models

import "time"

// UserRef is a lightweight projection of a referenced user, embedded in
// expense responses in place of the raw UUID.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ExpenseResponse represents an expense with its user references resolved.
// A dangling reference comes back as null rather than failing the response.
type ExpenseResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Amount       float64    `json:"amount"`
	PaidBy       *UserRef   `json:"paidBy"`
	Participants []*UserRef `json:"participants"`
	Date         time.Time  `json:"date"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
