package commands

import (
	"context"
	"log/slog"
	"time"

	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/domain/team"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/clock"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	"github.com/google/uuid"
)

type DateRangeInput struct {
	Start time.Time
	End   time.Time
}

type TicketPriceInput struct {
	TicketType      string
	Price           int64
	MaximumAgeLimit *int
}

type CreateSeasonRequest struct {
	ShortName    string
	Start        time.Time
	End          time.Time
	CookingDays  []string
	Holidays     []DateRangeInput
	Rules        season.Rules
	TicketPrices []TicketPriceInput
}

type CreateTeamRequest struct {
	SeasonID uuid.UUID
	Name     string
	Affinity *string
}

type AssignMemberRequest struct {
	TeamID               uuid.UUID
	InhabitantID         uuid.UUID
	Role                 string
	AllocationPercentage int
	Affinity             *string
}

type SeasonCommands interface {
	Create(ctx context.Context, req CreateSeasonRequest) (uuid.UUID, error)
	// Activate makes the season the single active one
	Activate(ctx context.Context, id uuid.UUID) error
	CreateTeam(ctx context.Context, req CreateTeamRequest) (uuid.UUID, error)
	Assign(ctx context.Context, req AssignMemberRequest) (uuid.UUID, error)
}

type seasonUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSeasonUseCase(uow shared.UnitOfWork, clk clock.Clock) SeasonCommands {
	return &seasonUseCaseImpl{uow: uow, clock: clk}
}

func (uc *seasonUseCaseImpl) Create(ctx context.Context, req CreateSeasonRequest) (uuid.UUID, error) {
	s, prices, err := uc.buildSeason(req)
	if err != nil {
		return uuid.Nil, classify(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Seasons().Create(ctx, s); err != nil {
			return err
		}
		for _, p := range prices {
			if err := tx.Seasons().CreateTicketPrice(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	slog.Info("season created", "season_id", s.ID(), "short_name", s.ShortName(), "cooking_dates", len(s.CookingDates()))
	return s.ID(), nil
}

func (uc *seasonUseCaseImpl) buildSeason(req CreateSeasonRequest) (*season.Season, []order.TicketPrice, error) {
	period, err := season.NewDateRange(req.Start, req.End)
	if err != nil {
		return nil, nil, err
	}
	days := season.NewCookingDays()
	for _, name := range req.CookingDays {
		parsed, err := season.ParseCookingDays(name)
		if err != nil {
			return nil, nil, err
		}
		days = mergeCookingDays(days, parsed)
	}
	holidays := make([]season.DateRange, 0, len(req.Holidays))
	for _, h := range req.Holidays {
		r, err := season.NewDateRange(h.Start, h.End)
		if err != nil {
			return nil, nil, err
		}
		holidays = append(holidays, r)
	}

	s, err := season.NewSeason(req.ShortName, period, days, holidays, req.Rules, uc.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	prices := make([]order.TicketPrice, 0, len(req.TicketPrices))
	for _, p := range req.TicketPrices {
		typ, err := order.NewTicketType(p.TicketType)
		if err != nil {
			return nil, nil, err
		}
		if p.Price < 0 {
			return nil, nil, errs.Mark(errs.New("ticket price cannot be negative"), errs.ErrDomainValidation)
		}
		prices = append(prices, order.TicketPrice{
			ID:              uuid.New(),
			SeasonID:        s.ID(),
			TicketType:      typ,
			Price:           p.Price,
			MaximumAgeLimit: p.MaximumAgeLimit,
		})
	}
	return s, prices, nil
}

func mergeCookingDays(a, b season.CookingDays) season.CookingDays {
	return season.NewCookingDays(append(a.Weekdays(), b.Weekdays()...)...)
}

func (uc *seasonUseCaseImpl) Activate(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Seasons().FindByID(ctx, id)
		if err != nil {
			return notFound(err, errs.ErrSeasonNotFound)
		}
		if err := tx.Seasons().DeactivateOthers(ctx, id); err != nil {
			return err
		}
		s.Activate(uc.clock.Now())
		return tx.Seasons().Update(ctx, s)
	})
	if err != nil {
		return err
	}
	slog.Info("season activated", "season_id", id)
	return nil
}

func (uc *seasonUseCaseImpl) CreateTeam(ctx context.Context, req CreateTeamRequest) (uuid.UUID, error) {
	var id uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Seasons().FindByID(ctx, req.SeasonID); err != nil {
			return notFound(err, errs.ErrSeasonNotFound)
		}
		t, err := team.NewTeam(req.SeasonID, req.Name, req.Affinity, uc.clock.Now())
		if err != nil {
			return classify(err)
		}
		if err := tx.Teams().Create(ctx, t); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(ErrTeamConflict, errs.ErrConflict)
			}
			return err
		}
		id = t.ID()
		return nil
	})
	return id, err
}

func (uc *seasonUseCaseImpl) Assign(ctx context.Context, req AssignMemberRequest) (uuid.UUID, error) {
	role, err := team.NewRole(req.Role)
	if err != nil {
		return uuid.Nil, classify(err)
	}

	var id uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Teams().FindByID(ctx, req.TeamID); err != nil {
			return notFound(err, errs.ErrTeamNotFound)
		}
		if _, err := tx.Households().FindInhabitant(ctx, req.InhabitantID); err != nil {
			return notFound(err, errs.ErrInhabitantNotFound)
		}
		a, err := team.NewAssignment(req.TeamID, req.InhabitantID, role, req.AllocationPercentage, req.Affinity, uc.clock.Now())
		if err != nil {
			return classify(err)
		}
		if err := tx.Teams().CreateAssignment(ctx, a); err != nil {
			return err
		}
		id = a.ID()
		return nil
	})
	return id, err
}
