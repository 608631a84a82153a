package dto

import "time"

type OrderItem struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
	Color       string `json:"color,omitempty"`
	UnitPrice   int64  `json:"unitPrice"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// CreateOrderRequest describes a new order. OrderDate defaults to now and
// ProductionDays to the configured default.
type CreateOrderRequest struct {
	CustomerID     string      `json:"customerId"`
	Items          []OrderItem `json:"items"`
	DepositAmount  int64       `json:"depositAmount"`
	OrderDate      *time.Time  `json:"orderDate"`
	ProductionDays int         `json:"productionDays"`
	Notes          string      `json:"notes"`
	Analysis       string      `json:"aiAnalysis"`
}

// StatusRequest accepts either a status code or its Vietnamese label.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// DeliveryRequest appends an event to the delivery ledger.
type DeliveryRequest struct {
	Date                time.Time `json:"date"`
	Quantity            int       `json:"quantity"`
	PaymentReceived     int64     `json:"paymentReceived"`
	Notes               string    `json:"notes"`
	ConfirmOverDelivery bool      `json:"confirmOverDelivery"`
}

type DeliveryResponse struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Quantity        int       `json:"quantity"`
	PaymentReceived int64     `json:"paymentReceived"`
	Notes           string    `json:"notes,omitempty"`
}

// OrderResponse carries the stored order plus figures derived on read.
type OrderResponse struct {
	ID                     string             `json:"id"`
	CustomerID             string             `json:"customerId"`
	Items                  []OrderItem        `json:"items"`
	TotalAmount            int64              `json:"totalAmount"`
	DepositAmount          int64              `json:"depositAmount"`
	Status                 string             `json:"status"`
	StatusLabel            string             `json:"statusLabel"`
	StatusReason           string             `json:"statusReason,omitempty"`
	Deadline               time.Time          `json:"deadline"`
	CreatedAt              time.Time          `json:"createdAt"`
	Notes                  string             `json:"notes,omitempty"`
	AIAnalysis             string             `json:"aiAnalysis,omitempty"`
	TotalQuantity          int                `json:"totalQuantity"`
	ActualDeliveryQuantity int                `json:"actualDeliveryQuantity"`
	DeliveryHistory        []DeliveryResponse `json:"deliveryHistory"`
	TotalPaid              int64              `json:"totalPaid"`
	Remaining              int64              `json:"remaining"`
}

// BalanceResponse is the payment position of one order.
type BalanceResponse struct {
	TotalPaid int64 `json:"totalPaid"`
	Remaining int64 `json:"remaining"`
}

// UrgentOrderResponse is one row of the urgent list.
type UrgentOrderResponse struct {
	Order         OrderResponse `json:"order"`
	DaysRemaining int           `json:"daysRemaining"`
	Bucket        string        `json:"bucket"`
}

// AlertResponse describes a notice raised by a scan.
type AlertResponse struct {
	OrderID       string `json:"orderId"`
	Tier          string `json:"tier"`
	DaysRemaining int    `json:"daysRemaining"`
}
