package dto

import "time"

// GluingRequest saves a lamination record. Zero Date means now.
type GluingRequest struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"orderId"`
	ProductName  string    `json:"productName"`
	GluingType   string    `json:"gluingType"`
	Quantity     int       `json:"quantity"`
	FailQuantity int       `json:"failQuantity"`
	Date         time.Time `json:"date"`
	WorkerName   string    `json:"workerName"`
	Notes        string    `json:"notes"`
	Temperature  string    `json:"temperature"`
	Pressure     string    `json:"pressure"`
	Duration     string    `json:"time"`
}

type GluingResponse struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"orderId"`
	ProductName  string    `json:"productName"`
	GluingType   string    `json:"gluingType"`
	Quantity     int       `json:"quantity"`
	FailQuantity int       `json:"failQuantity"`
	PassQuantity int       `json:"passQuantity"`
	Date         time.Time `json:"date"`
	WorkerName   string    `json:"workerName,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Temperature  string    `json:"temperature,omitempty"`
	Pressure     string    `json:"pressure,omitempty"`
	Duration     string    `json:"time,omitempty"`
}
