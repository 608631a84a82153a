package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

func TestOrderUseCaseCreate(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "cust-1", "Công ty May Việt")

	order, err := f.orders.Create(context.Background(), NewOrder{
		CustomerID: " cust-1 ",
		Items: []model.OrderItem{
			{ProductName: " Áo polo ", Quantity: 2, Size: "L", UnitPrice: 150000},
			{ProductName: "Quần tây", Quantity: 3, Size: "M", UnitPrice: 50000},
		},
		DepositAmount: 100000,
		Notes:         "  giao buổi sáng ",
		Analysis:      "Đơn ưu tiên",
	})
	require.NoError(t, err)

	assert.Equal(t, orderCode(testNow), order.ID)
	assert.Len(t, order.ID, 8)
	assert.Equal(t, "cust-1", order.CustomerID)
	assert.Equal(t, int64(450000), order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "Áo polo", order.Items[0].ProductName)
	assert.Equal(t, "giao buổi sáng", order.Notes)
	assert.Equal(t, "Đơn ưu tiên", order.AIAnalysis)
	assert.Zero(t, order.ActualDeliveryQuantity)
	assert.Empty(t, order.DeliveryHistory)
	// Fourteen production days from Monday 10 June skip two Sundays.
	assert.True(t, order.Deadline.Equal(time.Date(2024, time.June, 26, 0, 0, 0, 0, workshopTZ)), "deadline %v", order.Deadline)

	stored, err := f.store.Orders().Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, *order, *stored)
}

func TestOrderUseCaseCreateUsesGivenDateAndDays(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "cust-1", "Lan")

	orderDate := time.Date(2024, time.June, 14, 15, 0, 0, 0, workshopTZ) // Friday
	order, err := f.orders.Create(context.Background(), NewOrder{
		CustomerID:     "cust-1",
		Items:          []model.OrderItem{{ProductName: "Váy", Quantity: 1, UnitPrice: 10}},
		OrderDate:      orderDate,
		ProductionDays: 2,
	})
	require.NoError(t, err)
	assert.True(t, order.CreatedAt.Equal(orderDate))
	assert.True(t, order.Deadline.Equal(time.Date(2024, time.June, 17, 0, 0, 0, 0, workshopTZ)), "deadline %v", order.Deadline)
}

func TestOrderUseCaseCreateSkipsTakenCode(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "cust-1", "Lan")
	f.seedOrder(t, model.Order{ID: orderCode(testNow), CustomerID: "cust-1", Deadline: dueIn(20)})

	order, err := f.orders.Create(context.Background(), NewOrder{
		CustomerID: "cust-1",
		Items:      []model.OrderItem{{ProductName: "Váy", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, orderCode(testNow.Add(time.Millisecond)), order.ID)
}

func TestOrderUseCaseCreateValidation(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "cust-1", "Lan")
	item := model.OrderItem{ProductName: "Áo", Quantity: 1, UnitPrice: 1000}

	cases := []struct {
		name  string
		in    NewOrder
		field string
	}{
		{"missing customer", NewOrder{Items: []model.OrderItem{item}}, "customerId"},
		{"unknown customer", NewOrder{CustomerID: "cust-404", Items: []model.OrderItem{item}}, "customerId"},
		{"no items", NewOrder{CustomerID: "cust-1"}, "items"},
		{"blank product", NewOrder{CustomerID: "cust-1", Items: []model.OrderItem{{ProductName: " ", Quantity: 1}}}, "productName"},
		{"zero quantity", NewOrder{CustomerID: "cust-1", Items: []model.OrderItem{{ProductName: "Áo"}}}, "quantity"},
		{"negative price", NewOrder{CustomerID: "cust-1", Items: []model.OrderItem{{ProductName: "Áo", Quantity: 1, UnitPrice: -1}}}, "unitPrice"},
		{"negative deposit", NewOrder{CustomerID: "cust-1", Items: []model.OrderItem{item}, DepositAmount: -5}, "depositAmount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.orders.Create(context.Background(), tc.in)
			var verr *domainErrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	orders, err := f.store.Orders().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderUseCaseListRaisesAlertsOncePerSession(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "cust-1", "Hà <Shop>")
	f.seedOrder(t, model.Order{ID: "SOON", CustomerID: "cust-1", Deadline: dueIn(3)})
	f.seedOrder(t, model.Order{ID: "LATE", CustomerID: "cust-1", Deadline: dueIn(-2), StatusReason: "Thiếu vải"})
	f.seedOrder(t, model.Order{ID: "CALM", CustomerID: "cust-1", Deadline: dueIn(10)})
	f.seedOrder(t, model.Order{ID: "DONE", CustomerID: "cust-1", Deadline: dueIn(-5), Status: model.OrderStatusCompleted})

	orders, err := f.orders.List(context.Background(), OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, orders, 4)

	queued := f.queue.Items()
	require.Len(t, queued, 2)
	byID := map[string]string{}
	for _, q := range queued {
		byID[q.OrderID] = q.Text
	}
	assert.Contains(t, byID["SOON"], "CÒN 3 NGÀY")
	assert.Contains(t, byID["SOON"], "Hà &lt;Shop&gt;")
	assert.Contains(t, byID["LATE"], "CẢNH BÁO ĐƠN HÀNG GẤP")
	assert.Contains(t, byID["LATE"], "QUÁ HẠN 2 NGÀY")
	assert.Contains(t, byID["LATE"], "Thiếu vải")

	_, err = f.orders.List(context.Background(), OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, f.queue.Items(), 2, "orders already notified must not alert again")

	_, err = f.orders.Reload(context.Background())
	require.NoError(t, err)
	assert.Len(t, f.queue.Items(), 4, "reload starts a new notification session")
}

func TestOrderUseCaseListPropagatesStoreError(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("db down")

	_, err := f.orders.List(context.Background(), OrderFilter{})
	require.EqualError(t, err, "db down")
	assert.Empty(t, f.queue.Items())
}

func TestOrderUseCaseDelete(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, model.Order{ID: "A1", Deadline: dueIn(10)})

	require.ErrorIs(t, f.orders.Delete(context.Background(), staff, "A1"), domainErrors.ErrForbidden)
	require.NoError(t, f.orders.Delete(context.Background(), admin, "A1"))
	require.ErrorIs(t, f.orders.Delete(context.Background(), admin, "A1"), domainErrors.ErrNotFound)
}

func TestOrderUseCaseUpdateStatus(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, model.Order{ID: "A1", Deadline: dueIn(10)})

	order, err := f.orders.UpdateStatus(context.Background(), "A1", model.OrderStatusInProgress, " chờ phụ liệu ")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, order.Status)
	assert.Equal(t, "chờ phụ liệu", order.StatusReason)

	_, err = f.orders.UpdateStatus(context.Background(), "A1", "SHIPPED", "")
	var verr *domainErrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)

	_, err = f.orders.UpdateStatus(context.Background(), "missing", model.OrderStatusCompleted, "")
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestOrderUseCaseDeliveries(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, model.Order{ID: "A1", Deadline: dueIn(10), DepositAmount: 200000})
	ctx := context.Background()

	order, err := f.orders.AddDelivery(ctx, "A1", model.DeliveryRecord{Date: testNow, Quantity: 6, Payment: 300000}, false)
	require.NoError(t, err)
	assert.Equal(t, 6, order.ActualDeliveryQuantity)
	require.Len(t, order.DeliveryHistory, 1)
	first := order.DeliveryHistory[0].ID
	assert.NotEmpty(t, first)

	_, err = f.orders.AddDelivery(ctx, "A1", model.DeliveryRecord{Date: testNow, Quantity: 5}, false)
	require.ErrorIs(t, err, domainErrors.ErrOverDelivery)
	stored, err := f.store.Orders().Get(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, 6, stored.ActualDeliveryQuantity, "unconfirmed over-delivery must not be saved")

	order, err = f.orders.AddDelivery(ctx, "A1", model.DeliveryRecord{Date: testNow.Add(time.Hour), Quantity: 5, Payment: 600000}, true)
	require.NoError(t, err)
	assert.Equal(t, 11, order.ActualDeliveryQuantity)

	balance, err := f.orders.Reconcile(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, int64(1100000), balance.TotalPaid)
	assert.Equal(t, int64(-100000), balance.Remaining)

	order, err = f.orders.RemoveDelivery(ctx, "A1", first)
	require.NoError(t, err)
	assert.Equal(t, 5, order.ActualDeliveryQuantity)

	_, err = f.orders.RemoveDelivery(ctx, "A1", "nope")
	require.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = f.orders.AddDelivery(ctx, "A1", model.DeliveryRecord{Date: testNow}, false)
	require.ErrorIs(t, err, domainErrors.ErrEmptyEvent)
}

func TestOrderUseCaseUrgent(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, model.Order{ID: "LATER", Deadline: dueIn(6)})
	f.seedOrder(t, model.Order{ID: "SOON", Deadline: dueIn(1)})
	f.seedOrder(t, model.Order{ID: "FAR", Deadline: dueIn(7)})
	f.seedOrder(t, model.Order{ID: "DONE", Deadline: dueIn(0), Status: model.OrderStatusCancelled})

	entries, err := f.orders.Urgent(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "SOON", entries[0].Order.ID)
	assert.Equal(t, "LATER", entries[1].Order.ID)
	assert.Equal(t, 1, entries[0].DaysRemaining)
}

func TestOrderCode(t *testing.T) {
	code := orderCode(time.UnixMilli(1718000000000))
	assert.Equal(t, "LX8KUBY8", code)
	assert.Len(t, orderCode(time.UnixMilli(36)), 2)
}

func TestOrderUseCaseListFilters(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "cust-1", "Cửa hàng Lan")
	f.seedCustomer(t, "cust-2", "Hoa")
	f.seedOrder(t, model.Order{ID: "LX01", CustomerID: "cust-1", Deadline: dueIn(20)})
	f.seedOrder(t, model.Order{ID: "AB02", CustomerID: "cust-2", Deadline: dueIn(20), Status: model.OrderStatusCompleted})
	f.seedOrder(t, model.Order{ID: "CD03", CustomerID: "cust-2", Deadline: dueIn(20)})
	ctx := context.Background()

	ids := func(filter OrderFilter) []string {
		orders, err := f.orders.List(ctx, filter)
		require.NoError(t, err)
		var out []string
		for _, o := range orders {
			out = append(out, o.ID)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"LX01"}, ids(OrderFilter{Search: "LAN"}))
	assert.ElementsMatch(t, []string{"LX01"}, ids(OrderFilter{Search: "lx"}))
	assert.ElementsMatch(t, []string{"AB02"}, ids(OrderFilter{Status: model.OrderStatusCompleted}))
	assert.ElementsMatch(t, []string{"AB02", "CD03"}, ids(OrderFilter{CustomerID: "cust-2"}))
	assert.ElementsMatch(t, []string{"CD03"}, ids(OrderFilter{CustomerID: "cust-2", Status: model.OrderStatusPending}))
	assert.Len(t, ids(OrderFilter{}), 3)
}
