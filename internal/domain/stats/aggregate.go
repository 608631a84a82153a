// Package stats rolls up orders for statistics views and exports.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// ProductStat is the rollup for one product within one period.
type ProductStat struct {
	Quantity   int
	Revenue    int64
	OrderCount int
}

// KeyFunc derives the period key of an order.
type KeyFunc func(model.Order) string

// Aggregate maps period key to product name to rollup, ignoring cancelled orders.
//
// OrderCount grows once per line item, so an order listing a product twice counts twice.
func Aggregate(orders []model.Order, key KeyFunc) map[string]map[string]ProductStat {
	out := make(map[string]map[string]ProductStat)
	for _, o := range orders {
		if o.Status == model.OrderStatusCancelled {
			continue
		}
		k := key(o)
		bucket, ok := out[k]
		if !ok {
			bucket = make(map[string]ProductStat)
			out[k] = bucket
		}
		for _, it := range o.Items {
			name := strings.TrimSpace(it.ProductName)
			st := bucket[name]
			st.Quantity += it.Quantity
			st.Revenue += it.Amount()
			st.OrderCount++
			bucket[name] = st
		}
	}
	return out
}

// MonthKey keys orders by MM/YYYY of their creation time in loc.
func MonthKey(loc *time.Location) KeyFunc {
	return func(o model.Order) string {
		t := o.CreatedAt.In(loc)
		return fmt.Sprintf("%02d/%d", int(t.Month()), t.Year())
	}
}

// Period is one month of product rollups.
type Period struct {
	Key      string
	Products []ProductRow
}

// ProductRow is a named ProductStat.
type ProductRow struct {
	Name string
	ProductStat
}

// Timeline orders MM/YYYY periods newest first and products by name.
func Timeline(agg map[string]map[string]ProductStat) []Period {
	periods := make([]Period, 0, len(agg))
	for k, products := range agg {
		p := Period{Key: k, Products: make([]ProductRow, 0, len(products))}
		for name, st := range products {
			p.Products = append(p.Products, ProductRow{Name: name, ProductStat: st})
		}
		sort.Slice(p.Products, func(i, j int) bool { return p.Products[i].Name < p.Products[j].Name })
		periods = append(periods, p)
	}
	sort.SliceStable(periods, func(i, j int) bool {
		mi, yi := splitMonthKey(periods[i].Key)
		mj, yj := splitMonthKey(periods[j].Key)
		if yi != yj {
			return yi > yj
		}
		return mi > mj
	})
	return periods
}

func splitMonthKey(k string) (month, year int) {
	_, _ = fmt.Sscanf(k, "%d/%d", &month, &year)
	return month, year
}

// ForCustomer keeps orders placed by customerID.
func ForCustomer(orders []model.Order, customerID string) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out
}
