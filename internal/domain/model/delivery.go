package model

import "time"

// DeliveryRecord is one partial fulfilment event of an order.
type DeliveryRecord struct {
	ID       string
	Date     time.Time
	Quantity int
	Payment  int64
	Note     string
}
