package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phan14/du-an-ss2/internal/config"
	"github.com/phan14/du-an-ss2/internal/domain/deadline"
)

// Calendar supplies the current time on the workshop's clock.
type Calendar struct {
	now func() time.Time
	loc *time.Location
}

// NewCalendar uses the configured workshop time zone.
func NewCalendar(cfg *config.Config) Calendar {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return Calendar{now: time.Now, loc: loc}
}

// FixedCalendar always reports now. It is meant for tests and tooling.
func FixedCalendar(now time.Time, loc *time.Location) Calendar {
	return Calendar{now: func() time.Time { return now }, loc: loc}
}

func (c Calendar) Now() time.Time { return c.now().In(c.loc) }

// Today is midnight of the current workshop day.
func (c Calendar) Today() time.Time { return deadline.Date(c.Now()) }

func (c Calendar) Location() *time.Location { return c.loc }

func newCustomerID() string {
	return "cust-" + uuid.NewString()
}

func newRecordID() string {
	return uuid.NewString()
}

const orderIDLength = 8

// orderCode renders t in milliseconds as upper-case base36, cut to eight characters.
func orderCode(t time.Time) string {
	code := strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
	if len(code) > orderIDLength {
		code = code[:orderIDLength]
	}
	return code
}
