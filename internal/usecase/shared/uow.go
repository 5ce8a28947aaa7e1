package shared

import (
	"context"
	"time"

	"commons-dinner/internal/domain/billing"
	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/household"
	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/domain/team"
	"commons-dinner/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the repositories bound to one database transaction
type Tx interface {
	Seasons() SeasonRepository
	Teams() TeamRepository
	Dinners() DinnerRepository
	Orders() OrderRepository
	History() OrderHistoryRepository
	Households() HouseholdRepository
	Users() UserRepository
	Billing() BillingRepository
	JobRuns() JobRunRepository
}

type SeasonRepository interface {
	Create(ctx context.Context, s *season.Season) error
	Update(ctx context.Context, s *season.Season) error
	FindByID(ctx context.Context, id uuid.UUID) (*season.Season, error)
	ListActive(ctx context.Context) ([]*season.Season, error)
	// DeactivateOthers clears the active flag on every season except keep
	DeactivateOthers(ctx context.Context, keep uuid.UUID) error
	CreateTicketPrice(ctx context.Context, p order.TicketPrice) error
	TicketPrices(ctx context.Context, seasonID uuid.UUID) ([]order.TicketPrice, error)
}

type TeamRepository interface {
	Create(ctx context.Context, t *team.Team) error
	FindByID(ctx context.Context, id uuid.UUID) (*team.Team, error)
	ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]*team.Team, error)
	CreateAssignment(ctx context.Context, a *team.Assignment) error
	ListAssignmentsBySeason(ctx context.Context, seasonID uuid.UUID) ([]*team.Assignment, error)
}

type DinnerRepository interface {
	Create(ctx context.Context, d *dinner.Dinner) error
	Update(ctx context.Context, d *dinner.Dinner) error
	FindByID(ctx context.Context, id uuid.UUID) (*dinner.Dinner, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*dinner.Dinner, error)
	ListByStateBefore(ctx context.Context, state dinner.State, before time.Time) ([]*dinner.Dinner, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*dinner.Dinner, error)
	AllergyTypesExist(ctx context.Context, ids []uuid.UUID) (bool, error)
}

type OrderRepository interface {
	// Create fails with a duplicate key error when the eater already holds an open ticket
	Create(ctx context.Context, o *order.Order) error
	Update(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListOpenByDinnerForUpdate(ctx context.Context, dinnerID uuid.UUID) ([]*order.Order, error)
	ListBillableIDs(ctx context.Context, cutoff time.Time, includeReleased bool) ([]uuid.UUID, error)
}

// OrderHistoryRepository is append-only
type OrderHistoryRepository interface {
	Append(ctx context.Context, entries ...order.HistoryEntry) error
}

type HouseholdRepository interface {
	Create(ctx context.Context, h *household.Household) error
	Update(ctx context.Context, h *household.Household) error
	FindByID(ctx context.Context, id uuid.UUID) (*household.Household, error)
	FindByHeynaboID(ctx context.Context, heynaboID int64) (*household.Household, error)
	CreateInhabitant(ctx context.Context, i *household.Inhabitant) error
	UpdateInhabitant(ctx context.Context, i *household.Inhabitant) error
	FindInhabitant(ctx context.Context, id uuid.UUID) (*household.Inhabitant, error)
	FindInhabitantByHeynaboID(ctx context.Context, heynaboID int64) (*household.Inhabitant, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	// Upsert is keyed by email and returns the stored user
	Upsert(ctx context.Context, u *user.User) (*user.User, error)
}

type BillingRepository interface {
	// CreateTransaction reports false when the order already has a transaction
	CreateTransaction(ctx context.Context, tx *billing.Transaction) (bool, error)
	ListUninvoicedTransactions(ctx context.Context, cutoff time.Time) ([]*billing.Transaction, error)
	// UpsertInvoice returns the stored invoice for (period, household), creating it when missing
	UpsertInvoice(ctx context.Context, inv *billing.Invoice) (*billing.Invoice, error)
	LinkTransactions(ctx context.Context, invoiceID uuid.UUID, txIDs []uuid.UUID) error
	ListTransactionsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*billing.Transaction, error)
	ListTransactionsByPeriod(ctx context.Context, period string) ([]*billing.Transaction, error)
	UpdateInvoice(ctx context.Context, inv *billing.Invoice) error
	ListInvoicesByPeriod(ctx context.Context, period string) ([]*billing.Invoice, error)
	ListUnexportedInvoices(ctx context.Context) ([]*billing.Invoice, error)
	FindInvoiceForUpdate(ctx context.Context, id uuid.UUID) (*billing.Invoice, error)
	FindSummaryByPeriod(ctx context.Context, period string) (*billing.Summary, error)
	UpsertSummary(ctx context.Context, s *billing.Summary) error
}

type JobRunRepository interface {
	Create(ctx context.Context, r *job.Run) error
	// Complete writes the terminal state only while the stored row is still RUNNING
	Complete(ctx context.Context, r *job.Run) error
}
