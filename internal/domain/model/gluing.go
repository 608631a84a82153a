package model

import "time"

// GluingRecord logs a lamination batch processed for an order.
type GluingRecord struct {
	ID           string
	OrderID      string
	ProductName  string
	GluingType   string
	Quantity     int
	FailQuantity int
	Date         time.Time
	WorkerName   string
	Notes        string
	Temperature  string
	Pressure     string
	Duration     string
}

// PassQuantity is the number of pieces that passed inspection.
func (g GluingRecord) PassQuantity() int {
	return g.Quantity - g.FailQuantity
}
