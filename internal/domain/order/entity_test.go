//go:build unit

package order_test

import (
	"encoding/json"
	"testing"
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/season"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dinnerDay = time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func fixture(t *testing.T, rules season.Rules) (*season.Season, *dinner.Dinner, []order.TicketPrice) {
	t.Helper()
	period, err := season.NewDateRange(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	s, err := season.NewSeason("may", period, season.NewCookingDays(time.Monday), nil, rules, dinnerDay.AddDate(0, -1, 0))
	require.NoError(t, err)
	menu, err := dinner.NewMenu("Soup", "", nil)
	require.NoError(t, err)
	d, err := dinner.NewDinner(s, dinnerDay, nil, nil, menu, dinnerDay.AddDate(0, -1, 0))
	require.NoError(t, err)

	prices := []order.TicketPrice{
		{ID: uuid.New(), SeasonID: s.ID(), TicketType: order.TicketAdult, Price: 200},
		{ID: uuid.New(), SeasonID: s.ID(), TicketType: order.TicketChild, Price: 100, MaximumAgeLimit: ptr(12)},
		{ID: uuid.New(), SeasonID: s.ID(), TicketType: order.TicketBaby, Price: 0, MaximumAgeLimit: ptr(2)},
	}
	return s, d, prices
}

func book(t *testing.T, d *dinner.Dinner, prices []order.TicketPrice, actor order.Actor, at time.Time) *order.Order {
	t.Helper()
	o, err := order.Book(order.BookingRequest{
		Dinner:       d,
		InhabitantID: uuid.New(),
		Prices:       prices,
		Actor:        actor,
	}, at)
	require.NoError(t, err)
	return o
}

func actions(entries []order.HistoryEntry) []order.HistoryAction {
	out := make([]order.HistoryAction, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Action)
	}
	return out
}

func TestOrder_ReleaseWindowScenario(t *testing.T) {
	s, d, prices := fixture(t, season.Rules{TicketIsCancellableDaysBefore: 2})
	user := order.UserActor(uuid.New())

	t.Run("error: release on D-1 is rejected and state unchanged", func(t *testing.T) {
		o := book(t, d, prices, user, dinnerDay.AddDate(0, 0, -10))
		o.PullHistory()

		err := o.Release(s, dinnerDay, user, dinnerDay.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, order.ErrTooLateToCancel)
		assert.Equal(t, order.StateBooked, o.State())
		assert.Nil(t, o.ReleasedAt())
		assert.Empty(t, o.PullHistory())
	})

	t.Run("success: release on D-5 sets releasedAt", func(t *testing.T) {
		o := book(t, d, prices, user, dinnerDay.AddDate(0, 0, -10))
		o.PullHistory()

		at := dinnerDay.AddDate(0, 0, -5)
		require.NoError(t, o.Release(s, dinnerDay, user, at))
		assert.Equal(t, order.StateReleased, o.State())
		require.NotNil(t, o.ReleasedAt())
		assert.Equal(t, at, *o.ReleasedAt())
		assert.Equal(t, []order.HistoryAction{order.ActionUserCancelled}, actions(o.PullHistory()))
	})
}

func TestOrder_HistoryFollowsActor(t *testing.T) {
	s, d, prices := fixture(t, season.Rules{TicketIsCancellableDaysBefore: 2, DiningModeIsEditableMinutesBefore: 60})
	at := dinnerDay.AddDate(0, 0, -7)
	userID := uuid.New()

	testCases := []struct {
		name   string
		actor  order.Actor
		expect []order.HistoryAction
	}{
		{
			name:   "user actor",
			actor:  order.UserActor(userID),
			expect: []order.HistoryAction{order.ActionUserBooked, order.ActionUserClaimed, order.ActionUserCancelled},
		},
		{
			name:   "system actor",
			actor:  order.SystemActor(),
			expect: []order.HistoryAction{order.ActionSystemCreated, order.ActionSystemUpdated, order.ActionSystemUpdated},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := book(t, d, prices, tc.actor, at)
			require.NoError(t, o.ChangeDiningMode(s, dinnerDay, order.ModeTakeaway, tc.actor, at))
			require.NoError(t, o.Release(s, dinnerDay, tc.actor, at))

			entries := o.PullHistory()
			assert.Equal(t, tc.expect, actions(entries))
			for _, e := range entries {
				assert.Equal(t, tc.actor.UserID, e.PerformedByUserID)
				require.NotNil(t, e.DinnerEventID)
				assert.Equal(t, d.ID(), *e.DinnerEventID)
				require.NotNil(t, e.SeasonID)
			}
			assert.Empty(t, o.PullHistory(), "history is handed over once")
		})
	}
}

func TestOrder_ChangeDiningMode(t *testing.T) {
	s, d, prices := fixture(t, season.Rules{DiningModeIsEditableMinutesBefore: 60})
	actor := order.UserActor(uuid.New())

	o := book(t, d, prices, actor, dinnerDay.AddDate(0, 0, -3))
	err := o.ChangeDiningMode(s, dinnerDay, order.ModeTakeaway, actor, dinnerDay.Add(-30*time.Minute))
	assert.ErrorIs(t, err, order.ErrTooLateToChangeMode)
	assert.Equal(t, order.ModeDineIn, o.DinnerMode())

	require.NoError(t, o.ChangeDiningMode(s, dinnerDay, order.ModeDineInLate, actor, dinnerDay.Add(-time.Hour)))
	assert.Equal(t, order.ModeDineInLate, o.DinnerMode())
	assert.Equal(t, order.StateBooked, o.State())

	entries := o.PullHistory()
	var audit order.AuditData
	require.NoError(t, json.Unmarshal(entries[len(entries)-1].AuditData, &audit))
	assert.Equal(t, order.ModeDineIn, audit.PreviousMode)
	assert.Equal(t, order.ModeDineInLate, audit.DinnerMode)
}

func TestOrder_Close(t *testing.T) {
	s, d, prices := fixture(t, season.Rules{TicketIsCancellableDaysBefore: 2})
	actor := order.UserActor(uuid.New())
	at := dinnerDay.AddDate(0, 0, -7)

	t.Run("error: dinner not consumed", func(t *testing.T) {
		o := book(t, d, prices, actor, at)
		_, err := o.Close(dinner.StateAnnounced, false, dinnerDay)
		assert.ErrorIs(t, err, order.ErrDinnerNotConsumed)
	})

	t.Run("success: closing twice is a no-op", func(t *testing.T) {
		o := book(t, d, prices, actor, at)
		o.PullHistory()

		closed, err := o.Close(dinner.StateConsumed, false, dinnerDay)
		require.NoError(t, err)
		assert.True(t, closed)
		closedAt := *o.ClosedAt()

		closed, err = o.Close(dinner.StateConsumed, false, dinnerDay.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.False(t, closed)
		assert.Equal(t, closedAt, *o.ClosedAt())
		assert.Len(t, o.PullHistory(), 1)
	})

	t.Run("error: closed order rejects transitions", func(t *testing.T) {
		o := book(t, d, prices, actor, at)
		_, err := o.Close(dinner.StateConsumed, false, dinnerDay)
		require.NoError(t, err)

		assert.ErrorIs(t, o.Release(s, dinnerDay, actor, at), order.ErrOrderClosed)
		assert.ErrorIs(t, o.Cancel(actor, "", at), order.ErrOrderClosed)
		assert.ErrorIs(t, o.ChangeDiningMode(s, dinnerDay, order.ModeNone, actor, at), order.ErrOrderClosed)
		assert.Equal(t, order.StateClosed, o.State())
	})

	t.Run("released orders are charged only by policy", func(t *testing.T) {
		o := book(t, d, prices, actor, at)
		require.NoError(t, o.Release(s, dinnerDay, actor, at))

		_, err := o.Close(dinner.StateConsumed, false, dinnerDay)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)

		closed, err := o.Close(dinner.StateConsumed, true, dinnerDay)
		require.NoError(t, err)
		assert.True(t, closed)
	})
}

func TestOrder_Cancel(t *testing.T) {
	_, d, prices := fixture(t, season.Rules{})
	o := book(t, d, prices, order.SystemActor(), dinnerDay.AddDate(0, 0, -7))
	o.PullHistory()

	require.NoError(t, o.Cancel(order.SystemActor(), "dinner cancelled", dinnerDay))
	assert.Equal(t, []order.HistoryAction{order.ActionSystemDeleted}, actions(o.PullHistory()))
	assert.ErrorIs(t, o.Cancel(order.SystemActor(), "", dinnerDay), order.ErrOrderTerminal)

	_, err := o.Close(dinner.StateConsumed, true, dinnerDay)
	assert.ErrorIs(t, err, order.ErrOrderTerminal)
}

func TestOrder_Claim(t *testing.T) {
	s, d, prices := fixture(t, season.Rules{TicketIsCancellableDaysBefore: 2})
	holder := order.UserActor(uuid.New())
	claimerUser := uuid.New()
	claimer := uuid.New()
	at := dinnerDay.AddDate(0, 0, -5)

	o := book(t, d, prices, holder, at)
	assert.ErrorIs(t, o.Claim(s, dinnerDay, claimer, order.UserActor(claimerUser), at), order.ErrInvalidTransition)

	require.NoError(t, o.Release(s, dinnerDay, holder, at))
	assert.ErrorIs(t, o.Claim(s, dinnerDay, o.InhabitantID(), holder, at), order.ErrSameInhabitant)
	assert.ErrorIs(t, o.Claim(s, dinnerDay, claimer, order.UserActor(claimerUser), dinnerDay), order.ErrTooLateToCancel)

	price := o.PriceAtBooking()
	require.NoError(t, o.Claim(s, dinnerDay, claimer, order.UserActor(claimerUser), at))
	assert.Equal(t, order.StateBooked, o.State())
	assert.Equal(t, claimer, o.InhabitantID())
	assert.Nil(t, o.ReleasedAt())
	assert.Equal(t, price, o.PriceAtBooking())
	assert.Equal(t, &claimerUser, o.BookedByUserID())

	entries := o.PullHistory()
	assert.Equal(t, order.ActionUserClaimed, entries[len(entries)-1].Action)
}

func TestOrder_PriceSnapshotIsInvariant(t *testing.T) {
	_, d, prices := fixture(t, season.Rules{})
	o := book(t, d, prices, order.SystemActor(), dinnerDay.AddDate(0, 0, -7))
	require.Equal(t, int64(200), o.PriceAtBooking())

	for i := range prices {
		prices[i].Price *= 3
	}
	assert.Equal(t, int64(200), o.PriceAtBooking())
	assert.Equal(t, int64(200), o.Snapshot().PriceAtBooking)
}

func TestOrder_BookRequiresBookableDinner(t *testing.T) {
	_, d, prices := fixture(t, season.Rules{})
	require.NoError(t, d.Cancel(dinnerDay))

	_, err := order.Book(order.BookingRequest{Dinner: d, InhabitantID: uuid.New(), Prices: prices}, dinnerDay)
	assert.ErrorIs(t, err, dinner.ErrNotBookable)
}
