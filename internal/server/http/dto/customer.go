package dto

import "time"

// CustomerRequest creates a customer when ID is empty and updates it otherwise.
type CustomerRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductStatResponse is one product row of a monthly period.
type ProductStatResponse struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Revenue    int64  `json:"revenue"`
	OrderCount int    `json:"orderCount"`
}

// PeriodResponse groups product rows of one MM/YYYY month.
type PeriodResponse struct {
	Month    string                `json:"month"`
	Products []ProductStatResponse `json:"products"`
}

// CustomerStatsResponse is the monthly timeline of a customer.
type CustomerStatsResponse struct {
	Customer CustomerResponse `json:"customer"`
	Timeline []PeriodResponse `json:"timeline"`
}
