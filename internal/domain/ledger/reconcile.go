package ledger

import "github.com/phan14/du-an-ss2/internal/domain/model"

// Balance is the payment position of an order.
// Remaining is negative when the customer has overpaid.
type Balance struct {
	TotalPaid int64
	Remaining int64
}

// Reconcile derives the payment position from deposit and delivery payments.
func Reconcile(order model.Order) Balance {
	paid := order.DepositAmount + Collected(order.DeliveryHistory)
	return Balance{TotalPaid: paid, Remaining: order.TotalAmount - paid}
}

// Collected sums payments received with deliveries.
func Collected(history []model.DeliveryRecord) int64 {
	var total int64
	for _, rec := range history {
		total += rec.Payment
	}
	return total
}
