//go:build unit

package order_test

import (
	"testing"
	"time"

	"commons-dinner/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTicketPrice(t *testing.T) {
	adult := order.TicketPrice{ID: uuid.New(), TicketType: order.TicketAdult, Price: 200}
	child := order.TicketPrice{ID: uuid.New(), TicketType: order.TicketChild, Price: 100, MaximumAgeLimit: ptr(12)}
	baby := order.TicketPrice{ID: uuid.New(), TicketType: order.TicketBaby, Price: 0, MaximumAgeLimit: ptr(2)}
	prices := []order.TicketPrice{adult, child, baby}
	at := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		birth  *time.Time
		guest  bool
		prices []order.TicketPrice
		expect order.TicketType
		errIs  error
	}{
		{name: "baby", birth: ptr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)), prices: prices, expect: order.TicketBaby},
		{name: "child on the limit", birth: ptr(time.Date(2011, 5, 21, 0, 0, 0, 0, time.UTC)), prices: prices, expect: order.TicketChild},
		{name: "adult after birthday", birth: ptr(time.Date(2011, 5, 20, 0, 0, 0, 0, time.UTC)), prices: prices, expect: order.TicketAdult},
		{name: "unknown birth date", prices: prices, expect: order.TicketAdult},
		{name: "guest pays adult", birth: ptr(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)), guest: true, prices: prices, expect: order.TicketAdult},
		{name: "error: no adult fallback", prices: []order.TicketPrice{child}, errIs: order.ErrNoTicketPrice},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := order.SelectTicketPrice(tc.prices, tc.birth, at, tc.guest)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, got.TicketType)
		})
	}
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 23, order.AgeAt(birth, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, order.AgeAt(birth, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}
