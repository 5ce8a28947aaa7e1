package commands

import (
	"context"
	"log/slog"
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/household"
	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/domain/user"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/clock"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	"github.com/google/uuid"
)

type MembershipCommands interface {
	// ImportHouseholds upserts households, inhabitants and users from Heynabo, one unit per household
	ImportHouseholds(ctx context.Context) (job.Result, error)
	// ReconcileEvents links dinners of the active season to Heynabo events on the same day
	ReconcileEvents(ctx context.Context) (job.Result, error)
}

type membershipUseCaseImpl struct {
	uow    shared.UnitOfWork
	source shared.MembershipSource
	clock  clock.Clock
	loc    *time.Location
}

func NewMembershipUseCase(uow shared.UnitOfWork, source shared.MembershipSource, clk clock.Clock, loc *time.Location) MembershipCommands {
	if loc == nil {
		loc = time.UTC
	}
	return &membershipUseCaseImpl{uow: uow, source: source, clock: clk, loc: loc}
}

func (uc *membershipUseCaseImpl) ImportHouseholds(ctx context.Context) (job.Result, error) {
	records, err := uc.source.FetchHouseholds(ctx)
	if err != nil {
		return job.Result{}, errs.Wrap(err, "fetch heynabo households")
	}

	tally := job.NewTally(len(records))
	for _, rec := range records {
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return uc.importHousehold(ctx, tx, rec)
		})
		if err != nil {
			slog.Warn("household import failed", "heynabo_id", rec.HeynaboID, "error", err.Error())
			tally.Fail(errs.Wrapf(err, "household %d", rec.HeynaboID))
			continue
		}
		tally.Succeed()
	}
	return tally.Result("imported"), nil
}

func (uc *membershipUseCaseImpl) importHousehold(ctx context.Context, tx shared.Tx, rec shared.HouseholdRecord) error {
	now := uc.clock.Now()

	h, err := tx.Households().FindByHeynaboID(ctx, rec.HeynaboID)
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		h, err = household.NewHousehold(rec.HeynaboID, rec.PbsID, rec.Name, rec.Address, now)
		if err != nil {
			return classify(err)
		}
		if err := tx.Households().Create(ctx, h); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		changed, err := h.Refresh(rec.PbsID, rec.Name, rec.Address, now)
		if err != nil {
			return classify(err)
		}
		if changed {
			if err := tx.Households().Update(ctx, h); err != nil {
				return err
			}
		}
	}

	for _, r := range rec.Inhabitants {
		if err := uc.importInhabitant(ctx, tx, h.ID(), r, now); err != nil {
			return errs.Wrapf(err, "inhabitant %d", r.HeynaboID)
		}
	}
	return nil
}

func (uc *membershipUseCaseImpl) importInhabitant(ctx context.Context, tx shared.Tx, householdID uuid.UUID, r shared.InhabitantRecord, now time.Time) error {
	heynaboID := r.HeynaboID
	details := household.InhabitantDetails{
		HeynaboID:   &heynaboID,
		Name:        r.Name,
		LastName:    r.LastName,
		BirthDate:   r.BirthDate,
		MoveInDate:  r.MoveInDate,
		MoveOutDate: r.MoveOutDate,
	}

	if r.Email != nil && *r.Email != "" {
		u, err := uc.upsertUser(ctx, tx, *r.Email, r.Role, heynaboID, now)
		if err != nil {
			return err
		}
		id := u.ID()
		details.UserID = &id
	}

	inh, err := tx.Households().FindInhabitantByHeynaboID(ctx, heynaboID)
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		inh, err = household.NewInhabitant(householdID, details, now)
		if err != nil {
			return classify(err)
		}
		return tx.Households().CreateInhabitant(ctx, inh)
	case err != nil:
		return err
	}
	if details.UserID == nil {
		details.UserID = inh.UserID()
	}
	if err := inh.Refresh(details, now); err != nil {
		return classify(err)
	}
	return tx.Households().UpdateInhabitant(ctx, inh)
}

func (uc *membershipUseCaseImpl) upsertUser(ctx context.Context, tx shared.Tx, rawEmail, rawRole string, heynaboID int64, now time.Time) (*user.User, error) {
	email, err := user.NewEmail(rawEmail)
	if err != nil {
		return nil, classify(err)
	}
	return tx.Users().Upsert(ctx, user.NewUser(email, heynaboRole(rawRole), &heynaboID, now))
}

// heynaboRole maps the feed's role onto ours; anything but admin is a plain member
func heynaboRole(s string) user.Role {
	if r, err := user.NewRole(s); err == nil {
		return r
	}
	if s == "admin" {
		return user.RoleAdmin
	}
	return user.RoleMember
}

func (uc *membershipUseCaseImpl) ReconcileEvents(ctx context.Context) (job.Result, error) {
	var (
		active  *season.Season
		dinners []*dinner.Dinner
	)
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		seasons, err := tx.Seasons().ListActive(ctx)
		if err != nil {
			return err
		}
		active, err = season.ResolveActive(seasons)
		if err != nil {
			return classify(err)
		}
		dinners, err = tx.Dinners().ListBetween(ctx, active.Period().Start(), active.Period().End())
		return err
	})
	if err != nil {
		return job.Result{}, err
	}

	events, err := uc.source.FetchEvents(ctx, active.Period().Start(), active.Period().End())
	if err != nil {
		return job.Result{}, errs.Wrap(err, "fetch heynabo events")
	}
	byDay := make(map[string]int64, len(events))
	for _, e := range events {
		byDay[e.Date.In(uc.loc).Format(time.DateOnly)] = e.HeynaboEventID
	}

	tally := job.NewTally(0)
	for _, d := range dinners {
		eventID, ok := byDay[d.Date().In(uc.loc).Format(time.DateOnly)]
		if !ok {
			continue
		}
		if cur := d.HeynaboEventID(); cur != nil && *cur == eventID {
			continue
		}
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			locked, err := tx.Dinners().FindByIDForUpdate(ctx, d.ID())
			if err != nil {
				return notFound(err, errs.ErrDinnerNotFound)
			}
			locked.LinkHeynaboEvent(eventID, uc.clock.Now())
			return tx.Dinners().Update(ctx, locked)
		})
		if err != nil {
			slog.Warn("dinner event link failed", "dinner_id", d.ID(), "heynabo_event_id", eventID, "error", err.Error())
			tally.Fail(errs.Wrapf(err, "dinner %s", d.ID()))
			continue
		}
		tally.Succeed()
	}
	return tally.Result("linked"), nil
}
