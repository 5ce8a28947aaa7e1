//go:build unit

// Package memuow is an in-memory shared.UnitOfWork for use case tests.
// Transactions are serialized by one mutex and rolled back by restoring a snapshot of the tables.
package memuow

import (
	"bytes"
	"context"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"commons-dinner/internal/domain/billing"
	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/household"
	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/domain/season"
	"commons-dinner/internal/domain/team"
	"commons-dinner/internal/domain/user"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/usecase/shared"

	"github.com/google/uuid"
)

type tables struct {
	seasons      map[uuid.UUID]*season.Season
	prices       map[uuid.UUID]order.TicketPrice
	teams        map[uuid.UUID]*team.Team
	assignments  map[uuid.UUID]*team.Assignment
	dinners      map[uuid.UUID]*dinner.Dinner
	allergyTypes map[uuid.UUID]bool
	orders       map[uuid.UUID]*order.Order
	history      []order.HistoryEntry
	households   map[uuid.UUID]*household.Household
	inhabitants  map[uuid.UUID]*household.Inhabitant
	users        map[uuid.UUID]*user.User
	transactions map[uuid.UUID]*billing.Transaction
	invoices     map[uuid.UUID]*billing.Invoice
	summaries    map[string]*billing.Summary
	jobRuns      map[uuid.UUID]*job.Run
}

func newTables() tables {
	return tables{
		seasons:      map[uuid.UUID]*season.Season{},
		prices:       map[uuid.UUID]order.TicketPrice{},
		teams:        map[uuid.UUID]*team.Team{},
		assignments:  map[uuid.UUID]*team.Assignment{},
		dinners:      map[uuid.UUID]*dinner.Dinner{},
		allergyTypes: map[uuid.UUID]bool{},
		orders:       map[uuid.UUID]*order.Order{},
		households:   map[uuid.UUID]*household.Household{},
		inhabitants:  map[uuid.UUID]*household.Inhabitant{},
		users:        map[uuid.UUID]*user.User{},
		transactions: map[uuid.UUID]*billing.Transaction{},
		invoices:     map[uuid.UUID]*billing.Invoice{},
		summaries:    map[string]*billing.Summary{},
		jobRuns:      map[uuid.UUID]*job.Run{},
	}
}

// stored values are never mutated in place, so a shallow clone is a full snapshot
func (t tables) clone() tables {
	return tables{
		seasons:      maps.Clone(t.seasons),
		prices:       maps.Clone(t.prices),
		teams:        maps.Clone(t.teams),
		assignments:  maps.Clone(t.assignments),
		dinners:      maps.Clone(t.dinners),
		allergyTypes: maps.Clone(t.allergyTypes),
		orders:       maps.Clone(t.orders),
		history:      slices.Clone(t.history),
		households:   maps.Clone(t.households),
		inhabitants:  maps.Clone(t.inhabitants),
		users:        maps.Clone(t.users),
		transactions: maps.Clone(t.transactions),
		invoices:     maps.Clone(t.invoices),
		summaries:    maps.Clone(t.summaries),
		jobRuns:      maps.Clone(t.jobRuns),
	}
}

type Store struct {
	mu   sync.Mutex
	data tables
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{data: newTables()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(ctx, &memTx{t: &s.data}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.Within(ctx, fn)
}

// Seed runs fn in a transaction and fails the test on error
func (s *Store) Seed(tb testing.TB, fn func(ctx context.Context, tx shared.Tx) error) {
	tb.Helper()
	if err := s.Within(context.Background(), fn); err != nil {
		tb.Fatalf("seed: %v", err)
	}
}

func (s *Store) AddAllergyTypes(ids ...uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.data.allergyTypes[id] = true
	}
}

// History returns the audit rows of one order in insertion order
func (s *Store) History(orderID uuid.UUID) []order.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []order.HistoryEntry
	for _, e := range s.data.history {
		if e.OrderID != nil && *e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) Order(id uuid.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.data.orders[id]; ok {
		return copyOrder(o)
	}
	return nil
}

func (s *Store) Orders() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*order.Order, 0, len(s.data.orders))
	for _, o := range s.data.orders {
		out = append(out, copyOrder(o))
	}
	return out
}

func (s *Store) Dinner(id uuid.UUID) *dinner.Dinner {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.data.dinners[id]; ok {
		c := *d
		return &c
	}
	return nil
}

func (s *Store) Transactions() []*billing.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedTransactions(s.data.transactions, func(*billing.Transaction) bool { return true })
}

func (s *Store) Invoices() []*billing.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedInvoices(s.data.invoices, func(*billing.Invoice) bool { return true })
}

func (s *Store) Summary(period string) *billing.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sum, ok := s.data.summaries[period]; ok {
		c := *sum
		return &c
	}
	return nil
}

func (s *Store) JobRuns() []*job.Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*job.Run, 0, len(s.data.jobRuns))
	for _, r := range s.data.jobRuns {
		c := *r
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *job.Run) int { return a.StartedAt().Compare(b.StartedAt()) })
	return out
}

type memTx struct {
	t *tables
}

func (m *memTx) Seasons() shared.SeasonRepository       { return seasonRepo{m.t} }
func (m *memTx) Teams() shared.TeamRepository           { return teamRepo{m.t} }
func (m *memTx) Dinners() shared.DinnerRepository       { return dinnerRepo{m.t} }
func (m *memTx) Orders() shared.OrderRepository         { return orderRepo{m.t} }
func (m *memTx) History() shared.OrderHistoryRepository { return historyRepo{m.t} }
func (m *memTx) Households() shared.HouseholdRepository { return householdRepo{m.t} }
func (m *memTx) Users() shared.UserRepository           { return userRepo{m.t} }
func (m *memTx) Billing() shared.BillingRepository      { return billingRepo{m.t} }
func (m *memTx) JobRuns() shared.JobRunRepository       { return jobRunRepo{m.t} }

// seasons

type seasonRepo struct{ t *tables }

func (r seasonRepo) Create(_ context.Context, s *season.Season) error {
	if _, ok := r.t.seasons[s.ID()]; ok {
		return infra.Duplicate("season exists")
	}
	return r.put(s)
}

func (r seasonRepo) Update(_ context.Context, s *season.Season) error {
	if _, ok := r.t.seasons[s.ID()]; !ok {
		return infra.NotFound("season not found")
	}
	return r.put(s)
}

func (r seasonRepo) put(s *season.Season) error {
	if s.IsActive() {
		for id, other := range r.t.seasons {
			if id != s.ID() && other.IsActive() {
				return infra.Duplicate("another season is active")
			}
		}
	}
	c := *s
	r.t.seasons[s.ID()] = &c
	return nil
}

func (r seasonRepo) FindByID(_ context.Context, id uuid.UUID) (*season.Season, error) {
	s, ok := r.t.seasons[id]
	if !ok {
		return nil, infra.NotFound("season not found")
	}
	c := *s
	return &c, nil
}

func (r seasonRepo) ListActive(_ context.Context) ([]*season.Season, error) {
	var out []*season.Season
	for _, s := range r.t.seasons {
		if s.IsActive() {
			c := *s
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *season.Season) int { return a.Period().Start().Compare(b.Period().Start()) })
	return out, nil
}

func (r seasonRepo) DeactivateOthers(_ context.Context, keep uuid.UUID) error {
	for id, s := range r.t.seasons {
		if id == keep || !s.IsActive() {
			continue
		}
		c := *s
		c.Deactivate(time.Now())
		r.t.seasons[id] = &c
	}
	return nil
}

func (r seasonRepo) CreateTicketPrice(_ context.Context, p order.TicketPrice) error {
	r.t.prices[p.ID] = p
	return nil
}

func (r seasonRepo) TicketPrices(_ context.Context, seasonID uuid.UUID) ([]order.TicketPrice, error) {
	var out []order.TicketPrice
	for _, p := range r.t.prices {
		if p.SeasonID == seasonID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b order.TicketPrice) int { return int(b.Price - a.Price) })
	return out, nil
}

// teams

type teamRepo struct{ t *tables }

func (r teamRepo) Create(_ context.Context, t *team.Team) error {
	for _, other := range r.t.teams {
		if other.SeasonID() == t.SeasonID() && other.Name() == t.Name() {
			return infra.Duplicate("team name taken")
		}
	}
	c := *t
	r.t.teams[t.ID()] = &c
	return nil
}

func (r teamRepo) FindByID(_ context.Context, id uuid.UUID) (*team.Team, error) {
	t, ok := r.t.teams[id]
	if !ok {
		return nil, infra.NotFound("team not found")
	}
	c := *t
	return &c, nil
}

func (r teamRepo) ListBySeason(_ context.Context, seasonID uuid.UUID) ([]*team.Team, error) {
	var out []*team.Team
	for _, t := range r.t.teams {
		if t.SeasonID() == seasonID {
			c := *t
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *team.Team) int {
		if n := a.CreatedAt().Compare(b.CreatedAt()); n != 0 {
			return n
		}
		return compareIDs(a.ID(), b.ID())
	})
	return out, nil
}

func (r teamRepo) CreateAssignment(_ context.Context, a *team.Assignment) error {
	c := *a
	r.t.assignments[a.ID()] = &c
	return nil
}

func (r teamRepo) ListAssignmentsBySeason(_ context.Context, seasonID uuid.UUID) ([]*team.Assignment, error) {
	var out []*team.Assignment
	for _, a := range r.t.assignments {
		if t, ok := r.t.teams[a.TeamID()]; ok && t.SeasonID() == seasonID {
			c := *a
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *team.Assignment) int { return compareIDs(a.ID(), b.ID()) })
	return out, nil
}

// dinners

type dinnerRepo struct{ t *tables }

func (r dinnerRepo) Create(_ context.Context, d *dinner.Dinner) error {
	if _, ok := r.t.dinners[d.ID()]; ok {
		return infra.Duplicate("dinner exists")
	}
	c := *d
	r.t.dinners[d.ID()] = &c
	return nil
}

func (r dinnerRepo) Update(_ context.Context, d *dinner.Dinner) error {
	if _, ok := r.t.dinners[d.ID()]; !ok {
		return infra.NotFound("dinner not found")
	}
	c := *d
	r.t.dinners[d.ID()] = &c
	return nil
}

func (r dinnerRepo) FindByID(_ context.Context, id uuid.UUID) (*dinner.Dinner, error) {
	d, ok := r.t.dinners[id]
	if !ok {
		return nil, infra.NotFound("dinner not found")
	}
	c := *d
	return &c, nil
}

func (r dinnerRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*dinner.Dinner, error) {
	return r.FindByID(ctx, id)
}

func (r dinnerRepo) ListByStateBefore(_ context.Context, state dinner.State, before time.Time) ([]*dinner.Dinner, error) {
	return r.list(func(d *dinner.Dinner) bool { return d.State() == state && d.Date().Before(before) }), nil
}

func (r dinnerRepo) ListBetween(_ context.Context, from, to time.Time) ([]*dinner.Dinner, error) {
	return r.list(func(d *dinner.Dinner) bool { return !d.Date().Before(from) && !d.Date().After(to) }), nil
}

func (r dinnerRepo) list(keep func(*dinner.Dinner) bool) []*dinner.Dinner {
	var out []*dinner.Dinner
	for _, d := range r.t.dinners {
		if keep(d) {
			c := *d
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *dinner.Dinner) int { return a.Date().Compare(b.Date()) })
	return out
}

func (r dinnerRepo) AllergyTypesExist(_ context.Context, ids []uuid.UUID) (bool, error) {
	for _, id := range ids {
		if !r.t.allergyTypes[id] {
			return false, nil
		}
	}
	return true, nil
}

// orders

type orderRepo struct{ t *tables }

// copyOrder drops pending history so a stored order never replays it
func copyOrder(o *order.Order) *order.Order {
	return order.ReconstructOrder(
		o.ID(), o.DinnerEventID(), o.InhabitantID(),
		o.BookedByUserID(), o.TicketPriceID(),
		o.PriceAtBooking(), o.DinnerMode(), o.State(), o.IsGuestTicket(),
		o.ReleasedAt(), o.ClosedAt(), o.SeasonID(),
		o.CreatedAt(), o.UpdatedAt(),
	)
}

// holdsOpenTicket mirrors uq_orders_inhabitant_dinner
func holdsOpenTicket(o *order.Order) bool {
	return !o.IsGuestTicket() && o.State() != order.StateCancelled
}

func (r orderRepo) checkUnique(o *order.Order) error {
	if !holdsOpenTicket(o) {
		return nil
	}
	for id, other := range r.t.orders {
		if id == o.ID() || !holdsOpenTicket(other) {
			continue
		}
		if other.InhabitantID() == o.InhabitantID() && other.DinnerEventID() == o.DinnerEventID() {
			return infra.Duplicate("inhabitant already holds a ticket")
		}
	}
	return nil
}

func (r orderRepo) Create(_ context.Context, o *order.Order) error {
	if _, ok := r.t.orders[o.ID()]; ok {
		return infra.Duplicate("order exists")
	}
	if err := r.checkUnique(o); err != nil {
		return err
	}
	r.t.orders[o.ID()] = copyOrder(o)
	return nil
}

func (r orderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.t.orders[o.ID()]; !ok {
		return infra.NotFound("order not found")
	}
	if err := r.checkUnique(o); err != nil {
		return err
	}
	r.t.orders[o.ID()] = copyOrder(o)
	return nil
}

func (r orderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.t.orders[id]
	if !ok {
		return nil, infra.NotFound("order not found")
	}
	return copyOrder(o), nil
}

func (r orderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.FindByID(ctx, id)
}

func (r orderRepo) ListOpenByDinnerForUpdate(_ context.Context, dinnerID uuid.UUID) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.t.orders {
		if o.DinnerEventID() == dinnerID && (o.State() == order.StateBooked || o.State() == order.StateReleased) {
			out = append(out, copyOrder(o))
		}
	}
	slices.SortFunc(out, func(a, b *order.Order) int {
		if n := a.CreatedAt().Compare(b.CreatedAt()); n != 0 {
			return n
		}
		return compareIDs(a.ID(), b.ID())
	})
	return out, nil
}

func (r orderRepo) ListBillableIDs(_ context.Context, cutoff time.Time, includeReleased bool) ([]uuid.UUID, error) {
	charged := map[uuid.UUID]bool{}
	for _, t := range r.t.transactions {
		if t.OrderID() != nil {
			charged[*t.OrderID()] = true
		}
	}

	type billable struct {
		o    *order.Order
		date time.Time
	}
	var rows []billable
	for _, o := range r.t.orders {
		d, ok := r.t.dinners[o.DinnerEventID()]
		if !ok || d.State() != dinner.StateConsumed || d.Date().After(cutoff) || charged[o.ID()] {
			continue
		}
		if o.State() == order.StateBooked || (includeReleased && o.State() == order.StateReleased) {
			rows = append(rows, billable{o: o, date: d.Date()})
		}
	}
	slices.SortFunc(rows, func(a, b billable) int {
		if n := a.date.Compare(b.date); n != 0 {
			return n
		}
		if n := a.o.CreatedAt().Compare(b.o.CreatedAt()); n != 0 {
			return n
		}
		return compareIDs(a.o.ID(), b.o.ID())
	})

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.o.ID())
	}
	return ids, nil
}

type historyRepo struct{ t *tables }

func (r historyRepo) Append(_ context.Context, entries ...order.HistoryEntry) error {
	r.t.history = append(r.t.history, entries...)
	return nil
}

// households

type householdRepo struct{ t *tables }

func (r householdRepo) Create(_ context.Context, h *household.Household) error {
	for _, other := range r.t.households {
		if other.HeynaboID() == h.HeynaboID() {
			return infra.Duplicate("heynabo id taken")
		}
	}
	c := *h
	r.t.households[h.ID()] = &c
	return nil
}

func (r householdRepo) Update(_ context.Context, h *household.Household) error {
	if _, ok := r.t.households[h.ID()]; !ok {
		return infra.NotFound("household not found")
	}
	c := *h
	r.t.households[h.ID()] = &c
	return nil
}

func (r householdRepo) FindByID(_ context.Context, id uuid.UUID) (*household.Household, error) {
	h, ok := r.t.households[id]
	if !ok {
		return nil, infra.NotFound("household not found")
	}
	c := *h
	return &c, nil
}

func (r householdRepo) FindByHeynaboID(_ context.Context, heynaboID int64) (*household.Household, error) {
	for _, h := range r.t.households {
		if h.HeynaboID() == heynaboID {
			c := *h
			return &c, nil
		}
	}
	return nil, infra.NotFound("household not found")
}

func (r householdRepo) CreateInhabitant(_ context.Context, i *household.Inhabitant) error {
	c := *i
	r.t.inhabitants[i.ID()] = &c
	return nil
}

func (r householdRepo) UpdateInhabitant(_ context.Context, i *household.Inhabitant) error {
	if _, ok := r.t.inhabitants[i.ID()]; !ok {
		return infra.NotFound("inhabitant not found")
	}
	c := *i
	r.t.inhabitants[i.ID()] = &c
	return nil
}

func (r householdRepo) FindInhabitant(_ context.Context, id uuid.UUID) (*household.Inhabitant, error) {
	i, ok := r.t.inhabitants[id]
	if !ok {
		return nil, infra.NotFound("inhabitant not found")
	}
	c := *i
	return &c, nil
}

func (r householdRepo) FindInhabitantByHeynaboID(_ context.Context, heynaboID int64) (*household.Inhabitant, error) {
	for _, i := range r.t.inhabitants {
		if i.HeynaboID() != nil && *i.HeynaboID() == heynaboID {
			c := *i
			return &c, nil
		}
	}
	return nil, infra.NotFound("inhabitant not found")
}

// users

type userRepo struct{ t *tables }

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.t.users[id]
	if !ok {
		return nil, infra.NotFound("user not found")
	}
	c := *u
	return &c, nil
}

// Upsert keeps the role of an existing user and fills in heynabo_id when known
func (r userRepo) Upsert(_ context.Context, u *user.User) (*user.User, error) {
	for _, existing := range r.t.users {
		if existing.Email().Value() != u.Email().Value() {
			continue
		}
		heynaboID := existing.HeynaboID()
		if u.HeynaboID() != nil {
			heynaboID = u.HeynaboID()
		}
		stored := user.ReconstructUser(existing.ID(), existing.Email(), existing.Role(), heynaboID, existing.CreatedAt(), u.UpdatedAt())
		r.t.users[stored.ID()] = stored
		c := *stored
		return &c, nil
	}
	c := *u
	r.t.users[u.ID()] = &c
	out := *u
	return &out, nil
}

// billing

type billingRepo struct{ t *tables }

func (r billingRepo) CreateTransaction(_ context.Context, tx *billing.Transaction) (bool, error) {
	if tx.OrderID() != nil {
		for _, other := range r.t.transactions {
			if other.OrderID() != nil && *other.OrderID() == *tx.OrderID() {
				return false, nil
			}
		}
	}
	c := *tx
	r.t.transactions[tx.ID()] = &c
	return true, nil
}

// chargeDate is COALESCE(dinner date, created_at)
func (r billingRepo) chargeDate(tx *billing.Transaction) time.Time {
	if tx.OrderID() != nil {
		if o, ok := r.t.orders[*tx.OrderID()]; ok {
			if d, ok := r.t.dinners[o.DinnerEventID()]; ok {
				return d.Date()
			}
		}
	}
	return tx.CreatedAt()
}

func (r billingRepo) ListUninvoicedTransactions(_ context.Context, cutoff time.Time) ([]*billing.Transaction, error) {
	return sortedTransactions(r.t.transactions, func(tx *billing.Transaction) bool {
		return tx.InvoiceID() == nil && !r.chargeDate(tx).After(cutoff)
	}), nil
}

func (r billingRepo) UpsertInvoice(_ context.Context, inv *billing.Invoice) (*billing.Invoice, error) {
	for _, existing := range r.t.invoices {
		if existing.BillingPeriod() == inv.BillingPeriod() && sameUUID(existing.HouseholdID(), inv.HouseholdID()) {
			c := *existing
			return &c, nil
		}
	}
	stored := *inv
	r.t.invoices[inv.ID()] = &stored
	c := stored
	return &c, nil
}

func (r billingRepo) LinkTransactions(_ context.Context, invoiceID uuid.UUID, txIDs []uuid.UUID) error {
	for _, id := range txIDs {
		tx, ok := r.t.transactions[id]
		if !ok || tx.InvoiceID() != nil {
			continue
		}
		inv := invoiceID
		r.t.transactions[id] = billing.ReconstructTransaction(
			tx.ID(), tx.OrderID(), tx.HouseholdID(), tx.OrderSnapshot(), tx.UserSnapshot(),
			tx.Amount(), tx.UserEmailHandle(), &inv, tx.CreatedAt(),
		)
	}
	return nil
}

func (r billingRepo) ListTransactionsByInvoice(_ context.Context, invoiceID uuid.UUID) ([]*billing.Transaction, error) {
	return sortedTransactions(r.t.transactions, func(tx *billing.Transaction) bool {
		return tx.InvoiceID() != nil && *tx.InvoiceID() == invoiceID
	}), nil
}

func (r billingRepo) ListTransactionsByPeriod(_ context.Context, period string) ([]*billing.Transaction, error) {
	return sortedTransactions(r.t.transactions, func(tx *billing.Transaction) bool {
		if tx.InvoiceID() == nil {
			return false
		}
		inv, ok := r.t.invoices[*tx.InvoiceID()]
		return ok && inv.BillingPeriod() == period
	}), nil
}

func (r billingRepo) UpdateInvoice(_ context.Context, inv *billing.Invoice) error {
	if _, ok := r.t.invoices[inv.ID()]; !ok {
		return infra.NotFound("invoice not found")
	}
	c := *inv
	r.t.invoices[inv.ID()] = &c
	return nil
}

func (r billingRepo) ListInvoicesByPeriod(_ context.Context, period string) ([]*billing.Invoice, error) {
	return sortedInvoices(r.t.invoices, func(inv *billing.Invoice) bool { return inv.BillingPeriod() == period }), nil
}

func (r billingRepo) ListUnexportedInvoices(_ context.Context) ([]*billing.Invoice, error) {
	return sortedInvoices(r.t.invoices, func(inv *billing.Invoice) bool { return !inv.IsExported() }), nil
}

func (r billingRepo) FindInvoiceForUpdate(_ context.Context, id uuid.UUID) (*billing.Invoice, error) {
	inv, ok := r.t.invoices[id]
	if !ok {
		return nil, infra.NotFound("invoice not found")
	}
	c := *inv
	return &c, nil
}

func (r billingRepo) FindSummaryByPeriod(_ context.Context, period string) (*billing.Summary, error) {
	s, ok := r.t.summaries[period]
	if !ok {
		return nil, infra.NotFound("billing summary not found")
	}
	c := *s
	return &c, nil
}

func (r billingRepo) UpsertSummary(_ context.Context, s *billing.Summary) error {
	stored := s
	if existing, ok := r.t.summaries[s.BillingPeriod()]; ok {
		stored = billing.ReconstructSummary(
			existing.ID(), existing.BillingPeriod(), existing.ShareToken(),
			s.TotalAmount(), s.HouseholdCount(), s.TicketCount(),
			existing.CutoffDate(), existing.PaymentDate(), existing.CreatedAt(), s.UpdatedAt(),
		)
	}
	c := *stored
	r.t.summaries[s.BillingPeriod()] = &c
	return nil
}

// job runs

type jobRunRepo struct{ t *tables }

func (r jobRunRepo) Create(_ context.Context, run *job.Run) error {
	c := *run
	r.t.jobRuns[run.ID()] = &c
	return nil
}

func (r jobRunRepo) Complete(_ context.Context, run *job.Run) error {
	stored, ok := r.t.jobRuns[run.ID()]
	if !ok || stored.Status() != job.StatusRunning {
		return job.ErrJobRunFinished
	}
	c := *run
	r.t.jobRuns[run.ID()] = &c
	return nil
}

func sortedTransactions(all map[uuid.UUID]*billing.Transaction, keep func(*billing.Transaction) bool) []*billing.Transaction {
	var out []*billing.Transaction
	for _, tx := range all {
		if keep(tx) {
			c := *tx
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *billing.Transaction) int {
		if n := compareIDs(a.HouseholdID(), b.HouseholdID()); n != 0 {
			return n
		}
		if n := a.CreatedAt().Compare(b.CreatedAt()); n != 0 {
			return n
		}
		return compareIDs(a.ID(), b.ID())
	})
	return out
}

func sortedInvoices(all map[uuid.UUID]*billing.Invoice, keep func(*billing.Invoice) bool) []*billing.Invoice {
	var out []*billing.Invoice
	for _, inv := range all {
		if keep(inv) {
			c := *inv
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *billing.Invoice) int {
		if a.BillingPeriod() != b.BillingPeriod() {
			if a.BillingPeriod() < b.BillingPeriod() {
				return -1
			}
			return 1
		}
		var ah, bh uuid.UUID
		if a.HouseholdID() != nil {
			ah = *a.HouseholdID()
		}
		if b.HouseholdID() != nil {
			bh = *b.HouseholdID()
		}
		return compareIDs(ah, bh)
	})
	return out
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

func sameUUID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
