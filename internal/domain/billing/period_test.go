//go:build unit

package billing_test

import (
	"testing"
	"time"

	"commons-dinner/internal/domain/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := billing.ParsePeriod("2024-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-05", p.Key())

	for _, bad := range []string{"", "2024-5", "2024-13", "05-2024", "2024-05-01"} {
		_, err := billing.ParsePeriod(bad)
		assert.ErrorIs(t, err, billing.ErrInvalidPeriod, bad)
	}
}

func TestPeriod_Dates(t *testing.T) {
	cph := time.FixedZone("CET", 3600)
	p, _ := billing.ParsePeriod("2024-02")

	cutoff := p.Cutoff(cph)
	assert.Equal(t, 29, cutoff.Day())
	assert.Equal(t, time.February, cutoff.Month())
	assert.Equal(t, 23, cutoff.Hour())
	assert.True(t, cutoff.Add(time.Nanosecond).Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, cph)))

	payment := p.PaymentDate(cph, 10)
	assert.Equal(t, time.March, payment.Month())
	assert.Equal(t, 10, payment.Day())
}

func TestPeriod_Previous(t *testing.T) {
	p, _ := billing.ParsePeriod("2024-01")
	assert.Equal(t, "2023-12", p.Previous().Key())
	assert.Equal(t, "2024-05", billing.PeriodOf(time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)).Key())
}
