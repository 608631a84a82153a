package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

func TestGluingUseCaseSave(t *testing.T) {
	f := newFixture(t)
	uc := NewGluingUseCase(f.store.Gluing(), f.calendar)
	ctx := context.Background()

	rec, err := uc.Save(ctx, model.GluingRecord{
		OrderID: " A1 ", ProductName: "Áo khoác", Quantity: 50, FailQuantity: 2,
		WorkerName: " Tuấn ", Temperature: "150°C", Pressure: "4 bar", Duration: "15s",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "A1", rec.OrderID)
	assert.Equal(t, defaultGluingType, rec.GluingType)
	assert.Equal(t, "Tuấn", rec.WorkerName)
	assert.True(t, rec.Date.Equal(testNow))
	assert.Equal(t, 48, rec.PassQuantity())

	cases := []struct {
		name  string
		in    model.GluingRecord
		field string
	}{
		{"missing order", model.GluingRecord{ProductName: "Áo", Quantity: 1}, "orderId"},
		{"missing product", model.GluingRecord{OrderID: "A1", Quantity: 1}, "productName"},
		{"negative quantity", model.GluingRecord{OrderID: "A1", ProductName: "Áo", Quantity: -1}, "quantity"},
		{"fail above total", model.GluingRecord{OrderID: "A1", ProductName: "Áo", Quantity: 3, FailQuantity: 4}, "failQuantity"},
		{"negative fail", model.GluingRecord{OrderID: "A1", ProductName: "Áo", Quantity: 3, FailQuantity: -1}, "failQuantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Save(ctx, tc.in)
			var verr *domainErrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGluingUseCaseDeleteAndExport(t *testing.T) {
	f := newFixture(t)
	uc := NewGluingUseCase(f.store.Gluing(), f.calendar)
	ctx := context.Background()

	rec, err := uc.Save(ctx, model.GluingRecord{OrderID: "A1", ProductName: "Áo", GluingType: "Keo vải", Quantity: 5})
	require.NoError(t, err)

	name, content, err := uc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ui_keo_ep_keo_2024-06-10.xlsx", name)
	assert.NotEmpty(t, content)

	require.ErrorIs(t, uc.Delete(ctx, staff, rec.ID), domainErrors.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, admin, rec.ID))
	require.ErrorIs(t, uc.Delete(ctx, admin, rec.ID), domainErrors.ErrNotFound)
}
