package order

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var ErrNoTicketPrice = errors.New("no ticket price applies")

type TicketPrice struct {
	ID              uuid.UUID
	SeasonID        uuid.UUID
	TicketType      TicketType
	Price           int64
	MaximumAgeLimit *int
}

// SelectTicketPrice picks the price with the smallest age limit the eater is still under at
// the dinner date, falling back to the ADULT price without a limit. Guests and eaters without a
// known birth date pay the adult price.
func SelectTicketPrice(prices []TicketPrice, birthDate *time.Time, dinnerDate time.Time, guest bool) (TicketPrice, error) {
	limited := make([]TicketPrice, 0, len(prices))
	var adult *TicketPrice
	for i := range prices {
		p := prices[i]
		if p.MaximumAgeLimit == nil {
			if p.TicketType == TicketAdult && adult == nil {
				adult = &p
			}
			continue
		}
		limited = append(limited, p)
	}

	if !guest && birthDate != nil {
		age := AgeAt(*birthDate, dinnerDate)
		sort.SliceStable(limited, func(i, j int) bool { return *limited[i].MaximumAgeLimit < *limited[j].MaximumAgeLimit })
		for _, p := range limited {
			if age <= *p.MaximumAgeLimit {
				return p, nil
			}
		}
	}

	if adult == nil {
		return TicketPrice{}, ErrNoTicketPrice
	}
	return *adult, nil
}

// AgeAt returns completed years at the given date
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}
