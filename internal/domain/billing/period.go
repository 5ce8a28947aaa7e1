package billing

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("billing period must be formatted as YYYY-MM")

const periodLayout = "2006-01"

// Period is a calendar month billing key, e.g. "2024-05"
type Period struct {
	year  int
	month time.Month
}

func ParsePeriod(key string) (Period, error) {
	t, err := time.Parse(periodLayout, key)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return Period{year: t.Year(), month: t.Month()}, nil
}

func PeriodOf(t time.Time) Period {
	return Period{year: t.Year(), month: t.Month()}
}

func (p Period) Previous() Period {
	first := time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return Period{year: first.Year(), month: first.Month()}
}

func (p Period) Key() string {
	return time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC).Format(periodLayout)
}

func (p Period) String() string { return p.Key() }

func (p Period) Start(loc *time.Location) time.Time {
	return time.Date(p.year, p.month, 1, 0, 0, 0, 0, loc)
}

// Cutoff is the last instant of the month's last day in loc
func (p Period) Cutoff(loc *time.Location) time.Time {
	return p.Start(loc).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func (p Period) PaymentDate(loc *time.Location, daysAfterCutoff int) time.Time {
	return p.Cutoff(loc).AddDate(0, 0, daysAfterCutoff)
}
