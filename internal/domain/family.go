package domain

import "time"

// Family is the ownership scope for all ledger data. Every account,
// category and transfer belongs to exactly one family, and every core
// operation takes the family explicitly.
type Family struct {
	ID        string
	Name      string
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
