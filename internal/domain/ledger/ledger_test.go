package ledger

import (
	stdErrors "errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

var day0 = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func orderWithQuantity(qty int) model.Order {
	return model.Order{
		ID:          "ORD1",
		Items:       []model.OrderItem{{ProductName: "Áo", Quantity: qty, UnitPrice: 10000}},
		TotalAmount: int64(qty) * 10000,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		ev   model.DeliveryRecord
		want error
	}{
		{"empty event", model.DeliveryRecord{Date: day0, Note: "   "}, errors.ErrEmptyEvent},
		{"missing date", model.DeliveryRecord{Quantity: 3}, errors.ErrMissingDate},
		{"negative quantity", model.DeliveryRecord{Date: day0, Quantity: -1}, errors.ErrInvalidQuantity},
		{"negative payment", model.DeliveryRecord{Date: day0, Payment: -1}, errors.ErrInvalidAmount},
		{"quantity only", model.DeliveryRecord{Date: day0, Quantity: 1}, nil},
		{"payment only", model.DeliveryRecord{Date: day0, Payment: 1}, nil},
		{"note only", model.DeliveryRecord{Date: day0, Note: "gọi khách"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ev)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
			var vErr *errors.ValidationError
			assert.True(t, stdErrors.As(err, &vErr))
		})
	}
}

func TestAddSortsNewestFirstAndRecomputes(t *testing.T) {
	order := orderWithQuantity(100)

	order, err := Add(order, model.DeliveryRecord{Date: day0, Quantity: 10}, false)
	require.NoError(t, err)
	order, err = Add(order, model.DeliveryRecord{Date: day0.AddDate(0, 0, 5), Quantity: 20}, false)
	require.NoError(t, err)
	order, err = Add(order, model.DeliveryRecord{Date: day0.AddDate(0, 0, 2), Quantity: 5}, false)
	require.NoError(t, err)

	require.Len(t, order.DeliveryHistory, 3)
	assert.Equal(t, 35, order.ActualDeliveryQuantity)
	for i := 1; i < len(order.DeliveryHistory); i++ {
		assert.False(t, order.DeliveryHistory[i].Date.After(order.DeliveryHistory[i-1].Date))
	}
	for _, rec := range order.DeliveryHistory {
		assert.NotEmpty(t, rec.ID)
	}
}

func TestAddDoesNotAliasInput(t *testing.T) {
	original := orderWithQuantity(10)
	original.DeliveryHistory = make([]model.DeliveryRecord, 1, 4)
	original.DeliveryHistory[0] = model.DeliveryRecord{ID: "a", Date: day0, Quantity: 1}

	updated, err := Add(original, model.DeliveryRecord{Date: day0.AddDate(0, 0, 1), Quantity: 2}, false)
	require.NoError(t, err)
	assert.Len(t, original.DeliveryHistory, 1)
	assert.Equal(t, "a", original.DeliveryHistory[0].ID)
	assert.Len(t, updated.DeliveryHistory, 2)
}

func TestOverDeliveryRequiresConfirmation(t *testing.T) {
	order := orderWithQuantity(100)
	order, err := Add(order, model.DeliveryRecord{Date: day0, Quantity: 90}, false)
	require.NoError(t, err)

	assert.True(t, OverDelivers(order, 20))
	assert.False(t, OverDelivers(order, 10))

	unchanged, err := Add(order, model.DeliveryRecord{Date: day0, Quantity: 20}, false)
	require.ErrorIs(t, err, errors.ErrOverDelivery)
	assert.Equal(t, 90, unchanged.ActualDeliveryQuantity)
	assert.Len(t, unchanged.DeliveryHistory, 1)

	confirmed, err := Add(order, model.DeliveryRecord{Date: day0, Quantity: 20}, true)
	require.NoError(t, err)
	assert.Equal(t, 110, confirmed.ActualDeliveryQuantity)
}

func TestRemove(t *testing.T) {
	order := orderWithQuantity(100)
	order, _ = Add(order, model.DeliveryRecord{ID: "a", Date: day0, Quantity: 30}, false)
	order, _ = Add(order, model.DeliveryRecord{ID: "b", Date: day0.AddDate(0, 0, 1), Quantity: 40}, false)

	_, err := Remove(order, "missing")
	require.ErrorIs(t, err, errors.ErrNotFound)

	order, err = Remove(order, "b")
	require.NoError(t, err)
	assert.Equal(t, 30, order.ActualDeliveryQuantity)
	require.Len(t, order.DeliveryHistory, 1)
	assert.Equal(t, "a", order.DeliveryHistory[0].ID)
}

func TestDeliveredCounterMatchesHistoryForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		order := orderWithQuantity(50)
		for step := 0; step < 40; step++ {
			if len(order.DeliveryHistory) > 0 && rng.Intn(3) == 0 {
				victim := order.DeliveryHistory[rng.Intn(len(order.DeliveryHistory))].ID
				var err error
				order, err = Remove(order, victim)
				require.NoError(t, err)
			} else {
				ev := model.DeliveryRecord{
					Date:     day0.AddDate(0, 0, rng.Intn(60)),
					Quantity: rng.Intn(15),
					Payment:  int64(rng.Intn(3)) * 1000,
					Note:     "đợt",
				}
				var err error
				order, err = Add(order, ev, true)
				require.NoError(t, err)
			}
			require.Equal(t, Delivered(order.DeliveryHistory), order.ActualDeliveryQuantity)
		}
	}
}

func TestReconcile(t *testing.T) {
	order := model.Order{TotalAmount: 1000000, DepositAmount: 200000}
	before := Reconcile(order)
	assert.Equal(t, int64(200000), before.TotalPaid)
	assert.Equal(t, int64(800000), before.Remaining)

	order.Items = []model.OrderItem{{ProductName: "Áo", Quantity: 100, UnitPrice: 10000}}
	after, err := Add(order, model.DeliveryRecord{Date: day0, Quantity: 7, Payment: 150000}, false)
	require.NoError(t, err)
	assert.Equal(t, before.Remaining-150000, Reconcile(after).Remaining)

	overpaid, err := Add(after, model.DeliveryRecord{Date: day0, Payment: 900000}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(-250000), Reconcile(overpaid).Remaining)
}

func TestEndToEndDeliveryAndPayment(t *testing.T) {
	order := model.Order{
		Items:         []model.OrderItem{{ProductName: "Đồng phục", Quantity: 100, UnitPrice: 10000}},
		TotalAmount:   1000000,
		DepositAmount: 200000,
	}

	order, err := Add(order, model.DeliveryRecord{Date: day0, Quantity: 50, Payment: 300000}, false)
	require.NoError(t, err)
	order, err = Add(order, model.DeliveryRecord{Date: day0.AddDate(0, 0, 3), Quantity: 50, Note: "final batch"}, false)
	require.NoError(t, err)

	balance := Reconcile(order)
	assert.Equal(t, 100, order.ActualDeliveryQuantity)
	assert.Equal(t, int64(500000), balance.TotalPaid)
	assert.Equal(t, int64(500000), balance.Remaining)
}
