// Package ledger maintains the partial delivery history of an order.
package ledger

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// Validate checks that ev describes an actual delivery event.
func Validate(ev model.DeliveryRecord) error {
	if ev.Quantity < 0 {
		return errors.Invalid("quantity", errors.ErrInvalidQuantity)
	}
	if ev.Payment < 0 {
		return errors.Invalid("payment", errors.ErrInvalidAmount)
	}
	if ev.Quantity == 0 && ev.Payment == 0 && strings.TrimSpace(ev.Note) == "" {
		return errors.Invalid("", errors.ErrEmptyEvent)
	}
	if ev.Date.IsZero() {
		return errors.Invalid("date", errors.ErrMissingDate)
	}
	return nil
}

// OverDelivers reports whether delivering quantity more would exceed what was ordered.
func OverDelivers(order model.Order, quantity int) bool {
	return quantity > 0 && Delivered(order.DeliveryHistory)+quantity > order.TotalQuantity()
}

// Add appends ev to the order's ledger and returns the updated order.
//
// If the event over-delivers and confirmed is false, the order is returned unchanged
// together with ErrOverDelivery so the caller can ask for confirmation.
func Add(order model.Order, ev model.DeliveryRecord, confirmed bool) (model.Order, error) {
	if err := Validate(ev); err != nil {
		return order, err
	}
	if OverDelivers(order, ev.Quantity) && !confirmed {
		return order, errors.ErrOverDelivery
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	history := make([]model.DeliveryRecord, 0, len(order.DeliveryHistory)+1)
	history = append(history, order.DeliveryHistory...)
	order.DeliveryHistory = append(history, ev)
	return Normalize(order), nil
}

// Remove drops the event with id from the order's ledger.
func Remove(order model.Order, id string) (model.Order, error) {
	history := make([]model.DeliveryRecord, 0, len(order.DeliveryHistory))
	found := false
	for _, rec := range order.DeliveryHistory {
		if rec.ID == id {
			found = true
			continue
		}
		history = append(history, rec)
	}
	if !found {
		return order, errors.ErrNotFound
	}
	order.DeliveryHistory = history
	return Normalize(order), nil
}

// Normalize sorts the ledger newest first and recomputes the delivered counter.
func Normalize(order model.Order) model.Order {
	sort.SliceStable(order.DeliveryHistory, func(i, j int) bool {
		return order.DeliveryHistory[i].Date.After(order.DeliveryHistory[j].Date)
	})
	order.ActualDeliveryQuantity = Delivered(order.DeliveryHistory)
	return order
}

// Delivered sums event quantities.
func Delivered(history []model.DeliveryRecord) int {
	total := 0
	for _, rec := range history {
		total += rec.Quantity
	}
	return total
}
