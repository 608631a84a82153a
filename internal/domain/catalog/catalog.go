// Package catalog derives the product price list from order items.
package catalog

import (
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// Build returns one product per trimmed item name, carrying the unit price of the most
// recently created order that lists it. Images are only replaced by non-empty ones.
func Build(orders []model.Order) []model.Product {
	index := make(map[string]int)
	var products []model.Product
	for _, o := range orders {
		for _, it := range o.Items {
			name := strings.TrimSpace(it.ProductName)
			i, ok := index[name]
			if !ok {
				index[name] = len(products)
				products = append(products, model.Product{
					Name:        name,
					UnitPrice:   it.UnitPrice,
					ImageURL:    it.ImageURL,
					LastUpdated: o.CreatedAt,
				})
				continue
			}
			p := &products[i]
			if o.CreatedAt.After(p.LastUpdated) {
				p.UnitPrice = it.UnitPrice
				p.LastUpdated = o.CreatedAt
				if it.ImageURL != "" {
					p.ImageURL = it.ImageURL
				}
			}
		}
	}
	return products
}

type version struct {
	count  int
	latest time.Time
}

func versionOf(orders []model.Order) version {
	v := version{count: len(orders)}
	for _, o := range orders {
		if o.CreatedAt.After(v.latest) {
			v.latest = o.CreatedAt
		}
	}
	return v
}

// Catalog caches the built product list until the order collection changes.
type Catalog struct {
	mu       sync.Mutex
	built    bool
	version  version
	products []model.Product
	rebuilds int
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Products returns the product list for orders, rebuilding it when the order count
// or the newest creation time differs from the cached one.
func (c *Catalog) Products(orders []model.Order) []model.Product {
	v := versionOf(orders)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.built || c.version != v {
		c.products = Build(orders)
		c.version = v
		c.built = true
		c.rebuilds++
	}
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// SortField selects the product ordering.
type SortField string

const (
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
)

// Query filters and orders a product list.
type Query struct {
	Search string
	SortBy SortField
	Desc   bool
}

// Apply filters products by case-insensitive name substring and sorts them.
func Apply(products []model.Product, q Query) []model.Product {
	out := products
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		out = make([]model.Product, 0, len(products))
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), term) {
				out = append(out, p)
			}
		}
	}

	var less func(a, b model.Product) int
	switch q.SortBy {
	case SortByPrice:
		less = func(a, b model.Product) int {
			switch {
			case a.UnitPrice < b.UnitPrice:
				return -1
			case a.UnitPrice > b.UnitPrice:
				return 1
			}
			return 0
		}
	default:
		col := collate.New(language.Vietnamese, collate.IgnoreCase)
		less = func(a, b model.Product) int { return col.CompareString(a.Name, b.Name) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := less(out[i], out[j])
		if q.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}
