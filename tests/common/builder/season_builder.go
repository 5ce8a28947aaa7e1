//go:build unit || e2e

package builder

import (
	"time"

	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/season"

	"github.com/google/uuid"
)

type SeasonBuilder struct {
	ShortName   string
	Start       time.Time
	End         time.Time
	CookingDays []time.Weekday
	Holidays    []season.DateRange
	Rules       season.Rules
	Active      bool
	CreatedAt   time.Time
}

// NewSeasonBuilder cooks every day of 2024 so any test date is a cooking day
func NewSeasonBuilder() *SeasonBuilder {
	return &SeasonBuilder{
		ShortName: "24",
		Start:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		CookingDays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
		},
		Rules: season.Rules{
			TicketIsCancellableDaysBefore:     2,
			DiningModeIsEditableMinutesBefore: 90,
			ConsecutiveCookingDays:            1,
		},
		Active:    true,
		CreatedAt: time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *SeasonBuilder) With(mutate func(*SeasonBuilder)) *SeasonBuilder {
	mutate(s)
	return s
}

func (s *SeasonBuilder) BuildDomain() (*season.Season, error) {
	period, err := season.NewDateRange(s.Start, s.End)
	if err != nil {
		return nil, err
	}
	out, err := season.NewSeason(s.ShortName, period, season.NewCookingDays(s.CookingDays...), s.Holidays, s.Rules, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if s.Active {
		out.Activate(s.CreatedAt)
	}
	return out, nil
}

// DefaultTicketPrices: adults 200, children up to 12 pay 100, babies up to 2 eat free
func DefaultTicketPrices(seasonID uuid.UUID) []order.TicketPrice {
	child, baby := 12, 2
	return []order.TicketPrice{
		{ID: uuid.New(), SeasonID: seasonID, TicketType: order.TicketAdult, Price: 200},
		{ID: uuid.New(), SeasonID: seasonID, TicketType: order.TicketChild, Price: 100, MaximumAgeLimit: &child},
		{ID: uuid.New(), SeasonID: seasonID, TicketType: order.TicketBaby, Price: 0, MaximumAgeLimit: &baby},
	}
}
