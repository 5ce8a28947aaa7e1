package queries

import (
	"context"
	"strings"
	"time"

	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	"github.com/google/uuid"
)

type SeasonQueries interface {
	// Active resolves the single active season
	Active(ctx context.Context) (*SeasonView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SeasonView, error)
	Rotation(ctx context.Context, seasonID uuid.UUID, from, to time.Time) ([]DutyView, error)
	AllocationReport(ctx context.Context, seasonID uuid.UUID) ([]TeamAllocationView, error)
}

type seasonQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSeasonQueries(uow shared.UnitOfWork) SeasonQueries {
	return &seasonQueriesImpl{uow: uow}
}

func (q *seasonQueriesImpl) Active(ctx context.Context) (*SeasonView, error) {
	var out *SeasonView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		seasons, err := tx.Seasons().ListActive(ctx)
		if err != nil {
			return err
		}
		s, err := season.ResolveActive(seasons)
		if err != nil {
			if errs.Is(err, season.ErrNoActiveSeason) {
				return errs.Mark(err, errs.ErrSeasonNotFound)
			}
			return errs.Mark(err, errs.ErrDataIntegrity)
		}
		out, err = seasonView(ctx, tx, s)
		return err
	})
	return out, err
}

func (q *seasonQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SeasonView, error) {
	var out *SeasonView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Seasons().FindByID(ctx, id)
		if err != nil {
			return mapSeasonErr(err)
		}
		out, err = seasonView(ctx, tx, s)
		return err
	})
	return out, err
}

func (q *seasonQueriesImpl) Rotation(ctx context.Context, seasonID uuid.UUID, from, to time.Time) ([]DutyView, error) {
	var out []DutyView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, roster, err := shared.LoadRoster(ctx, tx, seasonID)
		if err != nil {
			return mapSeasonErr(err)
		}
		duties, err := roster.TeamsForRange(from, to)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		out = make([]DutyView, 0, len(duties))
		for _, d := range duties {
			out = append(out, DutyView{Date: d.Date, TeamID: d.Team.ID(), TeamName: d.Team.Name()})
		}
		return nil
	})
	return out, err
}

// AllocationReport is advisory; totals are never enforced
func (q *seasonQueriesImpl) AllocationReport(ctx context.Context, seasonID uuid.UUID) ([]TeamAllocationView, error) {
	var out []TeamAllocationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, roster, err := shared.LoadRoster(ctx, tx, seasonID)
		if err != nil {
			return mapSeasonErr(err)
		}
		for _, s := range roster.AllocationReport() {
			out = append(out, TeamAllocationView(s))
		}
		return nil
	})
	return out, err
}

func seasonView(ctx context.Context, tx shared.Tx, s *season.Season) (*SeasonView, error) {
	prices, err := tx.Seasons().TicketPrices(ctx, s.ID())
	if err != nil {
		return nil, err
	}
	rules := s.Rules()
	v := &SeasonView{
		ID:                                s.ID(),
		ShortName:                         s.ShortName(),
		PeriodStart:                       s.Period().Start(),
		PeriodEnd:                         s.Period().End(),
		IsActive:                          s.IsActive(),
		TicketIsCancellableDaysBefore:     rules.TicketIsCancellableDaysBefore,
		DiningModeIsEditableMinutesBefore: rules.DiningModeIsEditableMinutesBefore,
		ConsecutiveCookingDays:            rules.ConsecutiveCookingDays,
		Holidays:                          []DateRangeView{},
		TicketPrices:                      []TicketPriceView{},
	}
	for _, d := range s.CookingDays().Weekdays() {
		v.CookingDays = append(v.CookingDays, strings.ToLower(d.String()))
	}
	for _, h := range s.Holidays() {
		v.Holidays = append(v.Holidays, DateRangeView{Start: h.Start(), End: h.End()})
	}
	for _, p := range prices {
		v.TicketPrices = append(v.TicketPrices, TicketPriceView{
			ID:              p.ID,
			TicketType:      string(p.TicketType),
			Price:           p.Price,
			MaximumAgeLimit: p.MaximumAgeLimit,
		})
	}
	return v, nil
}

func mapSeasonErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrSeasonNotFound)
	}
	return err
}
