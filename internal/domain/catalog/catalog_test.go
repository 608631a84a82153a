package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

var base = time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)

func TestBuildKeepsLatestPrice(t *testing.T) {
	orders := []model.Order{
		{CreatedAt: base.AddDate(0, 0, 5), Items: []model.OrderItem{{ProductName: "Áo polo ", UnitPrice: 120000}}},
		{CreatedAt: base, Items: []model.OrderItem{{ProductName: "Áo polo", UnitPrice: 100000, ImageURL: "old.png"}}},
		{CreatedAt: base.AddDate(0, 0, 9), Items: []model.OrderItem{{ProductName: "Áo polo", UnitPrice: 130000}}},
		{CreatedAt: base.AddDate(0, 0, 1), Items: []model.OrderItem{{ProductName: "Mũ", UnitPrice: 30000, ImageURL: "cap.png"}}},
	}

	products := Build(orders)
	require.Len(t, products, 2)
	assert.Equal(t, "Áo polo", products[0].Name)
	assert.Equal(t, int64(130000), products[0].UnitPrice)
	assert.Equal(t, base.AddDate(0, 0, 9), products[0].LastUpdated)
	assert.Equal(t, "", products[0].ImageURL)
	assert.Equal(t, "cap.png", products[1].ImageURL)
}

func TestCatalogRebuildsOnVersionChange(t *testing.T) {
	c := New()
	orders := []model.Order{
		{CreatedAt: base, Items: []model.OrderItem{{ProductName: "Áo", UnitPrice: 1}}},
	}

	first := c.Products(orders)
	second := c.Products(orders)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.rebuilds)

	orders = append(orders, model.Order{CreatedAt: base.Add(time.Hour), Items: []model.OrderItem{{ProductName: "Áo", UnitPrice: 2}}})
	third := c.Products(orders)
	assert.Equal(t, 2, c.rebuilds)
	assert.Equal(t, int64(2), third[0].UnitPrice)

	third[0].UnitPrice = 99
	assert.Equal(t, int64(2), c.Products(orders)[0].UnitPrice)
}

func TestApply(t *testing.T) {
	products := []model.Product{
		{Name: "Quần kaki", UnitPrice: 200},
		{Name: "Áo sơ mi", UnitPrice: 150},
		{Name: "Áo thun", UnitPrice: 90},
	}

	byPrice := Apply(append([]model.Product(nil), products...), Query{SortBy: SortByPrice})
	assert.Equal(t, []string{"Áo thun", "Áo sơ mi", "Quần kaki"}, names(byPrice))

	byPriceDesc := Apply(append([]model.Product(nil), products...), Query{SortBy: SortByPrice, Desc: true})
	assert.Equal(t, "Quần kaki", byPriceDesc[0].Name)

	filtered := Apply(append([]model.Product(nil), products...), Query{Search: "ÁO"})
	assert.Equal(t, []string{"Áo sơ mi", "Áo thun"}, names(filtered))
}

func names(ps []model.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
