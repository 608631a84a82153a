package handlers

import (
	"fmt"

	"github.com/phan14/du-an-ss2/internal/domain/ledger"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/stats"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
	"github.com/phan14/du-an-ss2/internal/server/http/dto"
)

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{Username: u.Username, Name: u.Name, Role: string(u.Role)}
}

func toCustomerResponse(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

func toPeriodResponses(periods []stats.Period) []dto.PeriodResponse {
	out := make([]dto.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		rows := make([]dto.ProductStatResponse, 0, len(p.Products))
		for _, r := range p.Products {
			rows = append(rows, dto.ProductStatResponse{
				Name:       r.Name,
				Quantity:   r.Quantity,
				Revenue:    r.Revenue,
				OrderCount: r.OrderCount,
			})
		}
		out = append(out, dto.PeriodResponse{Month: p.Key, Products: rows})
	}
	return out
}

func toItems(items []dto.OrderItem) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.OrderItem(it))
	}
	return out
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItem(it))
	}
	history := make([]dto.DeliveryResponse, 0, len(o.DeliveryHistory))
	for _, h := range o.DeliveryHistory {
		history = append(history, dto.DeliveryResponse{
			ID:              h.ID,
			Date:            h.Date,
			Quantity:        h.Quantity,
			PaymentReceived: h.Payment,
			Notes:           h.Note,
		})
	}
	balance := ledger.Reconcile(o)
	return dto.OrderResponse{
		ID:                     o.ID,
		CustomerID:             o.CustomerID,
		Items:                  items,
		TotalAmount:            o.TotalAmount,
		DepositAmount:          o.DepositAmount,
		Status:                 string(o.Status),
		StatusLabel:            o.Status.Label(),
		StatusReason:           o.StatusReason,
		Deadline:               o.Deadline,
		CreatedAt:              o.CreatedAt,
		Notes:                  o.Notes,
		AIAnalysis:             o.AIAnalysis,
		TotalQuantity:          o.TotalQuantity(),
		ActualDeliveryQuantity: o.ActualDeliveryQuantity,
		DeliveryHistory:        history,
		TotalPaid:              balance.TotalPaid,
		Remaining:              balance.Remaining,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toUrgentResponses(entries []urgency.Entry) []dto.UrgentOrderResponse {
	out := make([]dto.UrgentOrderResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.UrgentOrderResponse{
			Order:         toOrderResponse(e.Order),
			DaysRemaining: e.DaysRemaining,
			Bucket:        string(e.Bucket),
		})
	}
	return out
}

func toStatusCountResponses(counts []stats.StatusCount) []dto.StatusCountResponse {
	out := make([]dto.StatusCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.StatusCountResponse{Status: string(c.Status), Label: c.Status.Label(), Count: c.Count})
	}
	return out
}

func toRevenuePointResponses(points []stats.RevenuePoint) []dto.RevenuePointResponse {
	out := make([]dto.RevenuePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.RevenuePointResponse{
			Date:   fmt.Sprintf("%d/%d", p.Day.Day(), int(p.Day.Month())),
			Day:    p.Day,
			Amount: p.Amount,
		})
	}
	return out
}

func toGluingResponse(g model.GluingRecord) dto.GluingResponse {
	return dto.GluingResponse{
		ID:           g.ID,
		OrderID:      g.OrderID,
		ProductName:  g.ProductName,
		GluingType:   g.GluingType,
		Quantity:     g.Quantity,
		FailQuantity: g.FailQuantity,
		PassQuantity: g.PassQuantity(),
		Date:         g.Date,
		WorkerName:   g.WorkerName,
		Notes:        g.Notes,
		Temperature:  g.Temperature,
		Pressure:     g.Pressure,
		Duration:     g.Duration,
	}
}
