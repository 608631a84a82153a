package model

import "time"

// Customer is a client of the workshop who places orders.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Notes     string
	CreatedAt time.Time
}
