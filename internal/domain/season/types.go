package season

import (
	"strings"
	"time"
)

// DateRange is an inclusive range of calendar days
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := truncateDay(start), truncateDay(end)
	if e.Before(s) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: s, end: e}, nil
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// Contains compares calendar days, so t may be in any location
func (r DateRange) Contains(t time.Time) bool {
	d := dayKey(t)
	return d >= dayKey(r.start) && d <= dayKey(r.end)
}

func (r DateRange) Days() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// CookingDays is the weekly pattern of days with a communal dinner
type CookingDays [7]bool

func NewCookingDays(days ...time.Weekday) CookingDays {
	var cd CookingDays
	for _, d := range days {
		cd[d] = true
	}
	return cd
}

// ParseCookingDays accepts english weekday names, e.g. "monday,tuesday,thursday"
func ParseCookingDays(s string) (CookingDays, error) {
	var cd CookingDays
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		found := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			if strings.ToLower(d.String()) == name {
				cd[d] = true
				found = true
				break
			}
		}
		if !found {
			return CookingDays{}, ErrInvalidCookingDay
		}
	}
	return cd, nil
}

func (cd CookingDays) Includes(d time.Weekday) bool {
	return cd[d]
}

func (cd CookingDays) IsEmpty() bool {
	for _, v := range cd {
		if v {
			return false
		}
	}
	return true
}

func (cd CookingDays) Weekdays() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if cd[d] {
			out = append(out, d)
		}
	}
	return out
}

func (cd CookingDays) String() string {
	names := make([]string, 0, 7)
	for _, d := range cd.Weekdays() {
		names = append(names, strings.ToLower(d.String()))
	}
	return strings.Join(names, ",")
}

func dayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
