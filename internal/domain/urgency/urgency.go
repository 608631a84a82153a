// Package urgency classifies orders by time left until their deadline.
package urgency

import (
	"math"
	"sort"
	"time"

	"github.com/phan14/du-an-ss2/internal/domain/deadline"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// Bucket is the alerting classification of an order.
type Bucket string

const (
	BucketOnTrack Bucket = "ON_TRACK"
	BucketDueSoon Bucket = "DUE_SOON"
	BucketOverdue Bucket = "OVERDUE"
)

const (
	// DashboardThreshold is the exclusive day bound for the dashboard urgent list.
	DashboardThreshold = 7
	// DueSoonDays starts the one-day window that triggers the three day notice.
	DueSoonDays = 3
)

// Classification is the urgency of one order on a given day.
type Classification struct {
	DaysRemaining int
	Bucket        Bucket
}

// DaysRemaining returns whole days from today's midnight to the deadline, rounded up.
// Negative values mean the deadline has passed.
func DaysRemaining(due, today time.Time) int {
	midnight := deadline.Date(today)
	return int(math.Ceil(due.Sub(midnight).Hours() / 24))
}

// Classify buckets order relative to today. Completed and cancelled orders are always on track.
func Classify(order model.Order, today time.Time) Classification {
	days := DaysRemaining(order.Deadline, today)
	c := Classification{DaysRemaining: days, Bucket: BucketOnTrack}
	if order.Status.Terminal() {
		return c
	}
	switch {
	case days < DueSoonDays:
		c.Bucket = BucketOverdue
	case days < DueSoonDays+1:
		c.Bucket = BucketDueSoon
	}
	return c
}

// Entry pairs an order with its classification.
type Entry struct {
	Order model.Order
	Classification
}

// DashboardList returns open orders due within DashboardThreshold days, earliest deadline first.
func DashboardList(orders []model.Order, today time.Time) []Entry {
	var out []Entry
	for _, o := range orders {
		if o.Status.Terminal() {
			continue
		}
		c := Classify(o, today)
		if c.DaysRemaining < DashboardThreshold {
			out = append(out, Entry{Order: o, Classification: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order.Deadline.Before(out[j].Order.Deadline)
	})
	return out
}
