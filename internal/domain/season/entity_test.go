//go:build unit

package season_test

import (
	"testing"
	"time"

	"commons-dinner/internal/domain/season"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newSeason(t *testing.T, rules season.Rules, holidays ...season.DateRange) *season.Season {
	t.Helper()
	period, err := season.NewDateRange(day(2024, 5, 1), day(2024, 5, 31))
	require.NoError(t, err)
	s, err := season.NewSeason("spring-24", period,
		season.NewCookingDays(time.Monday, time.Tuesday, time.Thursday),
		holidays, rules, day(2024, 4, 1))
	require.NoError(t, err)
	return s
}

func TestNewSeason_Validation(t *testing.T) {
	period, _ := season.NewDateRange(day(2024, 5, 1), day(2024, 5, 31))
	days := season.NewCookingDays(time.Monday)

	testCases := []struct {
		name      string
		shortName string
		days      season.CookingDays
		rules     season.Rules
		errIs     error
	}{
		{name: "success: consecutive defaults to one", shortName: "s", days: days},
		{name: "error: empty short name", shortName: "  ", days: days, errIs: season.ErrEmptyShortName},
		{name: "error: no cooking days", shortName: "s", errIs: season.ErrNoCookingDays},
		{name: "error: negative cancellation window", shortName: "s", days: days,
			rules: season.Rules{TicketIsCancellableDaysBefore: -1}, errIs: season.ErrNegativeWindow},
		{name: "error: negative consecutive days", shortName: "s", days: days,
			rules: season.Rules{ConsecutiveCookingDays: -2}, errIs: season.ErrInvalidConsecutive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := season.NewSeason(tc.shortName, period, tc.days, nil, tc.rules, day(2024, 4, 1))
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, s.ConsecutiveCookingDays())
			assert.False(t, s.IsActive())
		})
	}
}

func TestNewDateRange_RejectsInverted(t *testing.T) {
	_, err := season.NewDateRange(day(2024, 5, 2), day(2024, 5, 1))
	assert.ErrorIs(t, err, season.ErrInvalidDateRange)
}

func TestSeason_CancellationWindow(t *testing.T) {
	s := newSeason(t, season.Rules{TicketIsCancellableDaysBefore: 2})
	dinnerAt := time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 5, 18, 18, 0, 0, 0, time.UTC), s.CancellationDeadline(dinnerAt))
	assert.True(t, s.CanReleaseTicket(dinnerAt.AddDate(0, 0, -5), dinnerAt))
	assert.True(t, s.CanReleaseTicket(dinnerAt.AddDate(0, 0, -2), dinnerAt), "deadline itself is inclusive")
	assert.False(t, s.CanReleaseTicket(dinnerAt.AddDate(0, 0, -1), dinnerAt))
}

func TestSeason_DiningModeWindow(t *testing.T) {
	s := newSeason(t, season.Rules{DiningModeIsEditableMinutesBefore: 90})
	dinnerAt := time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)

	assert.True(t, s.CanEditDiningMode(dinnerAt.Add(-90*time.Minute), dinnerAt))
	assert.False(t, s.CanEditDiningMode(dinnerAt.Add(-89*time.Minute), dinnerAt))
}

func TestSeason_CookingDates(t *testing.T) {
	holiday, err := season.NewDateRange(day(2024, 5, 13), day(2024, 5, 19))
	require.NoError(t, err)
	s := newSeason(t, season.Rules{}, holiday)

	assert.True(t, s.IsCookingDay(day(2024, 5, 6)))
	assert.False(t, s.IsCookingDay(day(2024, 5, 8)), "wednesday")
	assert.False(t, s.IsCookingDay(day(2024, 5, 13)), "holiday")
	assert.False(t, s.IsCookingDay(day(2024, 6, 3)), "outside period")

	dates := s.CookingDates()
	// 13 mon/tue/thu in May 2024, minus 13th, 14th and 16th
	assert.Len(t, dates, 10)
	assert.Equal(t, day(2024, 5, 2), dates[0])
	assert.Equal(t, day(2024, 5, 30), dates[len(dates)-1])
}

func TestParseCookingDays(t *testing.T) {
	cd, err := season.ParseCookingDays("Monday, thursday")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday}, cd.Weekdays())
	assert.Equal(t, "monday,thursday", cd.String())

	_, err = season.ParseCookingDays("funday")
	assert.ErrorIs(t, err, season.ErrInvalidCookingDay)
}

func TestResolveActive(t *testing.T) {
	a := newSeason(t, season.Rules{})
	b := newSeason(t, season.Rules{})

	_, err := season.ResolveActive([]*season.Season{a, b})
	assert.ErrorIs(t, err, season.ErrNoActiveSeason)

	a.Activate(day(2024, 4, 2))
	got, err := season.ResolveActive([]*season.Season{a, b})
	require.NoError(t, err)
	assert.Equal(t, a.ID(), got.ID())

	b.Activate(day(2024, 4, 2))
	assert.ErrorIs(t, season.EnsureSingleActive([]*season.Season{a, b}), season.ErrMultipleActiveSeasons)
	_, err = season.ResolveActive([]*season.Season{a, b})
	assert.ErrorIs(t, err, season.ErrMultipleActiveSeasons)
}
