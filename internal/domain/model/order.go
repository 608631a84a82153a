package model

import "time"

// OrderStatus describes production lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:    "Chờ xử lý",
	OrderStatusInProgress: "Đang sản xuất",
	OrderStatusCompleted:  "Hoàn thành",
	OrderStatusCancelled:  "Đã hủy",
}

// Label returns the status text shown to workshop staff.
func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Terminal reports whether no further production work is expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ParseOrderStatus accepts either a status code or its staff label.
func ParseOrderStatus(v string) (OrderStatus, bool) {
	if s := OrderStatus(v); s.Valid() {
		return s, true
	}
	for s, l := range orderStatusLabels {
		if l == v {
			return s, true
		}
	}
	return "", false
}

// OrderItem is a single product line of an order.
type OrderItem struct {
	ProductName string
	Quantity    int
	Size        string
	Color       string
	UnitPrice   int64
	ImageURL    string
}

// Amount returns quantity multiplied by unit price.
func (i OrderItem) Amount() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// Order is a customer's production request.
//
// TotalAmount is fixed when the order is created and is not derived from Items afterwards.
// ActualDeliveryQuantity caches the sum of DeliveryHistory quantities.
type Order struct {
	ID                     string
	CustomerID             string
	Items                  []OrderItem
	TotalAmount            int64
	DepositAmount          int64
	Status                 OrderStatus
	StatusReason           string
	Deadline               time.Time
	CreatedAt              time.Time
	Notes                  string
	AIAnalysis             string
	ActualDeliveryQuantity int
	DeliveryHistory        []DeliveryRecord
}

// TotalQuantity sums ordered quantity over all items.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}

// ItemsTotal sums quantity×unit price over items.
func ItemsTotal(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Amount()
	}
	return total
}
