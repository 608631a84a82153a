package urgency

import (
	"sync"
	"time"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// Tier is an alert level that fires at most once per order.
type Tier string

const (
	TierThreeDay Tier = "THREE_DAY"
	TierUrgent   Tier = "URGENT"
)

// Alert is a notice for an order that has just entered a tier.
type Alert struct {
	Tier  Tier
	Order model.Order
	Classification
}

// Notifier remembers which orders were already alerted for each tier.
// A zero Notifier is not usable; construct it with NewNotifier.
type Notifier struct {
	mu       sync.Mutex
	notified map[Tier]map[string]struct{}
}

// NewNotifier returns a notifier with empty notified sets.
func NewNotifier() *Notifier {
	n := &Notifier{}
	n.Reset()
	return n
}

// Reset forgets every notified order.
func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = map[Tier]map[string]struct{}{
		TierThreeDay: {},
		TierUrgent:   {},
	}
}

// Evaluate returns alerts for orders entering a tier for the first time and marks them notified.
func (n *Notifier) Evaluate(orders []model.Order, today time.Time) []Alert {
	n.mu.Lock()
	defer n.mu.Unlock()

	var alerts []Alert
	for _, o := range orders {
		c := Classify(o, today)
		var tier Tier
		switch c.Bucket {
		case BucketDueSoon:
			tier = TierThreeDay
		case BucketOverdue:
			tier = TierUrgent
		default:
			continue
		}
		seen := n.notified[tier]
		if _, ok := seen[o.ID]; ok {
			continue
		}
		seen[o.ID] = struct{}{}
		alerts = append(alerts, Alert{Tier: tier, Order: o, Classification: c})
	}
	return alerts
}

// Notified reports whether id was already alerted for tier.
func (n *Notifier) Notified(tier Tier, id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.notified[tier][id]
	return ok
}
