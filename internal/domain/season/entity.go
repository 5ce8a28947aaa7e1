package season

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange      = errors.New("season date range end is before start")
	ErrInvalidCookingDay     = errors.New("unknown cooking day")
	ErrNoCookingDays         = errors.New("season has no cooking days")
	ErrEmptyShortName        = errors.New("season short name cannot be empty")
	ErrNegativeWindow        = errors.New("season window cannot be negative")
	ErrInvalidConsecutive    = errors.New("consecutive cooking days must be at least 1")
	ErrNoActiveSeason        = errors.New("no active season")
	ErrMultipleActiveSeasons = errors.New("more than one active season")
)

const DefaultConsecutiveCookingDays = 1

type Rules struct {
	TicketIsCancellableDaysBefore     int
	DiningModeIsEditableMinutesBefore int
	ConsecutiveCookingDays            int
}

type Season struct {
	id          uuid.UUID
	shortName   string
	period      DateRange
	isActive    bool
	cookingDays CookingDays
	holidays    []DateRange
	rules       Rules
	createdAt   time.Time
	updatedAt   time.Time
}

func NewSeason(shortName string, period DateRange, cookingDays CookingDays, holidays []DateRange, rules Rules, now time.Time) (*Season, error) {
	shortName = strings.TrimSpace(shortName)
	if shortName == "" {
		return nil, ErrEmptyShortName
	}
	if cookingDays.IsEmpty() {
		return nil, ErrNoCookingDays
	}
	if rules.ConsecutiveCookingDays == 0 {
		rules.ConsecutiveCookingDays = DefaultConsecutiveCookingDays
	}
	if err := rules.validate(); err != nil {
		return nil, err
	}

	return &Season{
		id:          uuid.New(),
		shortName:   shortName,
		period:      period,
		cookingDays: cookingDays,
		holidays:    holidays,
		rules:       rules,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructSeason(
	id uuid.UUID,
	shortName string,
	period DateRange,
	isActive bool,
	cookingDays CookingDays,
	holidays []DateRange,
	rules Rules,
	createdAt, updatedAt time.Time,
) *Season {
	return &Season{
		id:          id,
		shortName:   shortName,
		period:      period,
		isActive:    isActive,
		cookingDays: cookingDays,
		holidays:    holidays,
		rules:       rules,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r Rules) validate() error {
	if r.TicketIsCancellableDaysBefore < 0 || r.DiningModeIsEditableMinutesBefore < 0 {
		return ErrNegativeWindow
	}
	if r.ConsecutiveCookingDays < 1 {
		return ErrInvalidConsecutive
	}
	return nil
}

func (s *Season) Activate(now time.Time) {
	s.isActive = true
	s.updatedAt = now
}

func (s *Season) Deactivate(now time.Time) {
	s.isActive = false
	s.updatedAt = now
}

// CancellationDeadline is the last instant a ticket for a dinner at eventDate may be released
func (s *Season) CancellationDeadline(eventDate time.Time) time.Time {
	return eventDate.AddDate(0, 0, -s.rules.TicketIsCancellableDaysBefore)
}

func (s *Season) CanReleaseTicket(now, eventDate time.Time) bool {
	return !now.After(s.CancellationDeadline(eventDate))
}

func (s *Season) DiningModeDeadline(eventDate time.Time) time.Time {
	return eventDate.Add(-time.Duration(s.rules.DiningModeIsEditableMinutesBefore) * time.Minute)
}

func (s *Season) CanEditDiningMode(now, eventDate time.Time) bool {
	return !now.After(s.DiningModeDeadline(eventDate))
}

func (s *Season) IsHoliday(date time.Time) bool {
	for _, h := range s.holidays {
		if h.Contains(date) {
			return true
		}
	}
	return false
}

func (s *Season) IsCookingDay(date time.Time) bool {
	return s.period.Contains(date) && s.cookingDays.Includes(date.Weekday()) && !s.IsHoliday(date)
}

func (s *Season) CookingDates() []time.Time {
	var dates []time.Time
	for d := s.period.Start(); !d.After(s.period.End()); d = d.AddDate(0, 0, 1) {
		if s.IsCookingDay(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

func (s *Season) ID() uuid.UUID               { return s.id }
func (s *Season) ShortName() string           { return s.shortName }
func (s *Season) Period() DateRange           { return s.period }
func (s *Season) IsActive() bool              { return s.isActive }
func (s *Season) CookingDays() CookingDays    { return s.cookingDays }
func (s *Season) Holidays() []DateRange       { return s.holidays }
func (s *Season) Rules() Rules                { return s.rules }
func (s *Season) ConsecutiveCookingDays() int { return s.rules.ConsecutiveCookingDays }
func (s *Season) CreatedAt() time.Time        { return s.createdAt }
func (s *Season) UpdatedAt() time.Time        { return s.updatedAt }

func EnsureSingleActive(seasons []*Season) error {
	active := 0
	for _, s := range seasons {
		if s.isActive {
			active++
		}
	}
	if active > 1 {
		return ErrMultipleActiveSeasons
	}
	return nil
}

// ResolveActive returns the single active season. Zero or several active seasons are both errors.
func ResolveActive(seasons []*Season) (*Season, error) {
	var active *Season
	for _, s := range seasons {
		if !s.isActive {
			continue
		}
		if active != nil {
			return nil, ErrMultipleActiveSeasons
		}
		active = s
	}
	if active == nil {
		return nil, ErrNoActiveSeason
	}
	return active, nil
}
