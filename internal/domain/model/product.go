package model

import "time"

// Product is a price list entry derived from order items.
type Product struct {
	Name        string
	UnitPrice   int64
	ImageURL    string
	LastUpdated time.Time
}
