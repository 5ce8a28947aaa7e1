package commands

import (
	"commons-dinner/internal/domain/billing"
	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/household"
	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/domain/team"
	"commons-dinner/internal/domain/user"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/pkg/errs"
)

var (
	ErrOrderConflict     = errs.New("inhabitant already holds a ticket for this dinner")
	ErrTeamConflict      = errs.New("cooking team name already used in this season")
	ErrDinnerHasNoSeason = errs.New("dinner is not linked to a season")
	ErrUnknownAllergen   = errs.New("unknown allergy type")
)

var guardErrors = []error{
	order.ErrTooLateToCancel,
	order.ErrTooLateToChangeMode,
	order.ErrOrderClosed,
	order.ErrOrderTerminal,
	order.ErrInvalidTransition,
	order.ErrDinnerNotConsumed,
	order.ErrSameInhabitant,
	order.ErrNoTicketPrice,
	dinner.ErrNotBookable,
	dinner.ErrInvalidTransition,
}

var validationErrors = []error{
	order.ErrInvalidDinnerMode,
	order.ErrInvalidTicketType,
	order.ErrInvalidState,
	dinner.ErrEmptyMenuTitle,
	dinner.ErrNegativeCost,
	dinner.ErrNotCookingDay,
	season.ErrInvalidDateRange,
	season.ErrInvalidCookingDay,
	season.ErrNoCookingDays,
	season.ErrEmptyShortName,
	season.ErrNegativeWindow,
	season.ErrInvalidConsecutive,
	team.ErrEmptyTeamName,
	team.ErrInvalidAllocation,
	team.ErrInvalidRole,
	team.ErrSeasonMismatch,
	team.ErrUnknownTeam,
	team.ErrNotCookingDay,
	household.ErrEmptyAddress,
	household.ErrEmptyName,
	household.ErrInvalidResident,
	user.ErrInvalidEmail,
	user.ErrInvalidRole,
	billing.ErrInvalidPeriod,
	billing.ErrNegativeAmount,
	job.ErrInvalidType,
	ErrDinnerHasNoSeason,
	ErrUnknownAllergen,
}

// classify marks domain sentinels with the layer error the API boundary maps to a status
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range guardErrors {
		if errs.Is(err, target) {
			return errs.Mark(err, errs.ErrGuardViolation)
		}
	}
	for _, target := range validationErrors {
		if errs.Is(err, target) {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
	}
	switch {
	case errs.Is(err, job.ErrJobAlreadyRunning):
		return errs.Mark(err, errs.ErrConflict)
	case errs.Is(err, season.ErrMultipleActiveSeasons):
		return errs.Mark(err, errs.ErrDataIntegrity)
	case errs.Is(err, season.ErrNoActiveSeason):
		return errs.Mark(err, errs.ErrSeasonNotFound)
	}
	return err
}

// notFound turns a repository miss into the given lookup sentinel
func notFound(err, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return err
}

// integrity is notFound for references that must exist, such as an order's dinner during billing
func integrity(err error, what string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, what+" missing"), errs.ErrDataIntegrity)
	}
	return err
}
