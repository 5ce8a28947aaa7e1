package request

import (
	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/usecase/commands"

	"github.com/google/uuid"
)

type TicketPrice struct {
	TicketType      string `json:"ticket_type" binding:"required"`
	Price           int64  `json:"price" binding:"min=0"`
	MaximumAgeLimit *int   `json:"maximum_age_limit,omitempty" binding:"omitempty,min=0"`
}

type CreateSeasonRequest struct {
	ShortName                         string        `json:"short_name" binding:"required,max=50"`
	Start                             string        `json:"start" binding:"required,datetime=2006-01-02"`
	End                               string        `json:"end" binding:"required,datetime=2006-01-02"`
	CookingDays                       []string      `json:"cooking_days" binding:"required,min=1"`
	Holidays                          []DateRange   `json:"holidays" binding:"dive"`
	TicketIsCancellableDaysBefore     int           `json:"ticket_is_cancellable_days_before" binding:"min=0"`
	DiningModeIsEditableMinutesBefore int           `json:"dining_mode_is_editable_minutes_before" binding:"min=0"`
	ConsecutiveCookingDays            int           `json:"consecutive_cooking_days" binding:"min=0"`
	TicketPrices                      []TicketPrice `json:"ticket_prices" binding:"dive"`
}

func (r CreateSeasonRequest) ToCommand() (commands.CreateSeasonRequest, error) {
	start, err := ParseDate(r.Start)
	if err != nil {
		return commands.CreateSeasonRequest{}, err
	}
	end, err := ParseDate(r.End)
	if err != nil {
		return commands.CreateSeasonRequest{}, err
	}

	holidays := make([]commands.DateRangeInput, 0, len(r.Holidays))
	for _, h := range r.Holidays {
		hs, err := ParseDate(h.Start)
		if err != nil {
			return commands.CreateSeasonRequest{}, err
		}
		he, err := ParseDate(h.End)
		if err != nil {
			return commands.CreateSeasonRequest{}, err
		}
		holidays = append(holidays, commands.DateRangeInput{Start: hs, End: he})
	}

	prices := make([]commands.TicketPriceInput, 0, len(r.TicketPrices))
	for _, p := range r.TicketPrices {
		prices = append(prices, commands.TicketPriceInput{
			TicketType:      p.TicketType,
			Price:           p.Price,
			MaximumAgeLimit: p.MaximumAgeLimit,
		})
	}

	return commands.CreateSeasonRequest{
		ShortName:   r.ShortName,
		Start:       start,
		End:         end,
		CookingDays: r.CookingDays,
		Holidays:    holidays,
		Rules: season.Rules{
			TicketIsCancellableDaysBefore:     r.TicketIsCancellableDaysBefore,
			DiningModeIsEditableMinutesBefore: r.DiningModeIsEditableMinutesBefore,
			ConsecutiveCookingDays:            r.ConsecutiveCookingDays,
		},
		TicketPrices: prices,
	}, nil
}

type CreateTeamRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Affinity *string `json:"affinity,omitempty"`
}

type AssignMemberRequest struct {
	InhabitantID         uuid.UUID `json:"inhabitant_id" binding:"required"`
	Role                 string    `json:"role" binding:"required"`
	AllocationPercentage int       `json:"allocation_percentage" binding:"min=0,max=100"`
	Affinity             *string   `json:"affinity,omitempty"`
}
