package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeSkipsClosedDay(t *testing.T) {
	monday := date(2024, time.June, 3)
	require.Equal(t, time.Monday, monday.Weekday())

	tests := []struct {
		name string
		days int
		want time.Time
	}{
		{"zero days keeps start", 0, monday},
		{"negative treated as zero", -5, monday},
		{"single day", 1, date(2024, time.June, 4)},
		{"saturday reached without skip", 5, date(2024, time.June, 8)},
		{"week boundary skips sunday", 6, date(2024, time.June, 10)},
		{"two weeks", 12, date(2024, time.June, 17)},
		{"default production days", 14, date(2024, time.June, 19)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForWorkshop(monday, tt.days))
		})
	}
}

func TestComputeStartOnClosedDay(t *testing.T) {
	sunday := date(2024, time.June, 9)
	assert.Equal(t, date(2024, time.June, 10), Compute(sunday, 1, time.Sunday))
}

func TestComputeCustomExcludedWeekday(t *testing.T) {
	friday := date(2024, time.June, 7)
	assert.Equal(t, date(2024, time.June, 9), Compute(friday, 1, time.Saturday))
}

func TestComputeCountsExactlyNWorkingDays(t *testing.T) {
	start := date(2023, time.December, 28)
	for n := 0; n <= 40; n++ {
		got := ForWorkshop(start, n)
		counted := 0
		for d := start.AddDate(0, 0, 1); !d.After(got); d = d.AddDate(0, 0, 1) {
			if d.Weekday() != ExcludedWeekday {
				counted++
			}
		}
		require.Equal(t, n, counted, "n=%d deadline=%s", n, got)
		if n > 0 {
			require.NotEqual(t, ExcludedWeekday, got.Weekday(), "deadline must not land on closed day")
		}
	}
}

func TestComputeDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	start := time.Date(2024, time.June, 3, 17, 45, 0, 0, loc)
	got := ForWorkshop(start, 1)
	assert.Equal(t, time.Date(2024, time.June, 4, 0, 0, 0, 0, loc), got)
}
