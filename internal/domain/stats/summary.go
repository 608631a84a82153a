package stats

import (
	"sort"
	"time"

	"github.com/phan14/du-an-ss2/internal/domain/ledger"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
)

const (
	revenuePoints = 7
	recentOrders  = 5
)

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status model.OrderStatus
	Count  int
}

// RevenuePoint is the order value booked on one calendar day.
type RevenuePoint struct {
	Day    time.Time
	Amount int64
}

// Summary is the dashboard overview of the order book.
type Summary struct {
	TotalOrders    int
	PendingOrders  int
	Revenue        int64
	Collected      int64
	Remaining      int64
	ItemsOrdered   int
	ItemsDelivered int
	ProductionRate float64
	Urgent         []urgency.Entry
	StatusCounts   []StatusCount
	RevenueSeries  []RevenuePoint
	Recent         []model.Order
}

// Summarize computes dashboard figures for orders on today.
func Summarize(orders []model.Order, today time.Time) Summary {
	s := Summary{TotalOrders: len(orders)}
	byStatus := make(map[model.OrderStatus]int, 4)
	for _, o := range orders {
		if o.Status == model.OrderStatusPending {
			s.PendingOrders++
		}
		byStatus[o.Status]++
		s.Revenue += o.TotalAmount
		s.Collected += ledger.Reconcile(o).TotalPaid
		s.ItemsOrdered += o.TotalQuantity()
		s.ItemsDelivered += o.ActualDeliveryQuantity
	}
	s.Remaining = s.Revenue - s.Collected
	if s.ItemsOrdered > 0 {
		s.ProductionRate = float64(s.ItemsDelivered) / float64(s.ItemsOrdered) * 100
	}
	s.Urgent = urgency.DashboardList(orders, today)
	for _, st := range []model.OrderStatus{
		model.OrderStatusPending, model.OrderStatusInProgress, model.OrderStatusCompleted, model.OrderStatusCancelled,
	} {
		s.StatusCounts = append(s.StatusCounts, StatusCount{Status: st, Count: byStatus[st]})
	}
	s.RevenueSeries = revenueByDay(orders, today.Location())
	s.Recent = latest(orders, recentOrders)
	return s
}

// revenueByDay sums order totals per creation day in loc and keeps the last points, oldest first.
func revenueByDay(orders []model.Order, loc *time.Location) []RevenuePoint {
	totals := make(map[time.Time]int64)
	for _, o := range orders {
		t := o.CreatedAt.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		totals[day] += o.TotalAmount
	}
	points := make([]RevenuePoint, 0, len(totals))
	for day, amount := range totals {
		points = append(points, RevenuePoint{Day: day, Amount: amount})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day.Before(points[j].Day) })
	if len(points) > revenuePoints {
		points = points[len(points)-revenuePoints:]
	}
	return points
}

func latest(orders []model.Order, n int) []model.Order {
	sorted := append([]model.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
