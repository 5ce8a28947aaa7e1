package errs

import "errors"

// Sentinels shared by the usecase layers and the API boundary
var (
	// Lookup errors
	ErrSeasonNotFound     = errors.New("season not found")
	ErrDinnerNotFound     = errors.New("dinner event not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInhabitantNotFound = errors.New("inhabitant not found")
	ErrTeamNotFound       = errors.New("cooking team not found")
	ErrPeriodNotFound     = errors.New("billing period not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrHouseholdNotFound  = errors.New("household not found")
	ErrUserNotFound       = errors.New("user not found")

	// Guard violations
	ErrGuardViolation = errors.New("guard violation")

	// Conflicts
	ErrConflict = errors.New("conflict")

	// Data integrity
	ErrDataIntegrity = errors.New("data integrity violation")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
