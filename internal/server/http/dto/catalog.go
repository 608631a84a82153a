package dto

import "time"

type ProductResponse struct {
	Name        string    `json:"name"`
	UnitPrice   int64     `json:"unitPrice"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// DashboardResponse is the overview of the order book.
type DashboardResponse struct {
	TotalOrders    int                    `json:"totalOrders"`
	PendingOrders  int                    `json:"pendingOrders"`
	Revenue        int64                  `json:"revenue"`
	Collected      int64                  `json:"collected"`
	Remaining      int64                  `json:"remaining"`
	ItemsOrdered   int                    `json:"itemsOrdered"`
	ItemsDelivered int                    `json:"itemsDelivered"`
	ProductionRate float64                `json:"productionRate"`
	Urgent         []UrgentOrderResponse  `json:"urgent"`
	StatusCounts   []StatusCountResponse  `json:"statusCounts"`
	RevenueSeries  []RevenuePointResponse `json:"revenueSeries"`
	Recent         []OrderResponse        `json:"recent"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// RevenuePointResponse is one bar of the revenue chart. Date is the d/m axis label.
type RevenuePointResponse struct {
	Date   string    `json:"date"`
	Day    time.Time `json:"day"`
	Amount int64     `json:"amount"`
}
