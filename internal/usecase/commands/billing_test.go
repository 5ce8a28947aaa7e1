//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"commons-dinner/internal/domain/billing"
	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/household"
	"commons-dinner/internal/domain/order"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/commands"
	"commons-dinner/internal/usecase/shared"
	"commons-dinner/tests/common/builder"
	sharedmock "commons-dinner/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BillingUseCaseTestSuite struct {
	suite.Suite
	w         *world
	ctrl      *gomock.Controller
	publisher *sharedmock.MockInvoicePublisher
	settings  commands.BillingSettings
	may       []*dinner.Dinner
	eaters    []*household.Inhabitant
}

func TestBillingUseCaseSuite(t *testing.T) {
	suite.Run(t, new(BillingUseCaseTestSuite))
}

func (s *BillingUseCaseTestSuite) SetupTest() {
	s.w = newWorld(s.T(), day(2024, 6, 1).Add(2*time.Hour))
	s.ctrl = gomock.NewController(s.T())
	s.publisher = sharedmock.NewMockInvoicePublisher(s.ctrl)
	s.settings = commands.BillingSettings{Location: time.UTC, PaymentDaysAfterCutoff: 5, Workers: 3}

	s.may = []*dinner.Dinner{
		s.w.dinner(day(2024, 5, 7), dinner.StateConsumed),
		s.w.dinner(day(2024, 5, 14), dinner.StateConsumed),
		s.w.dinner(day(2024, 5, 21), dinner.StateConsumed),
	}

	// three households, seven tickets: 3 + 2 + 2
	_, a := s.w.household("Karen", "Niels")
	_, b := s.w.household("Ida")
	_, c := s.w.household("Bo")
	s.eaters = []*household.Inhabitant{a[0], a[1], b[0], c[0]}

	s.w.order(s.may[0], a[0])
	s.w.order(s.may[1], a[0])
	s.w.order(s.may[0], a[1])
	s.w.order(s.may[0], b[0])
	s.w.order(s.may[1], b[0])
	s.w.order(s.may[0], c[0])
	s.w.order(s.may[2], c[0])
}

func (s *BillingUseCaseTestSuite) usecase() commands.BillingCommands {
	return commands.NewBillingUseCase(s.w.store, s.publisher, s.w.clock, s.settings)
}

func invoiceTotal(invoices []*billing.Invoice) int64 {
	var total int64
	for _, inv := range invoices {
		total += inv.Amount()
	}
	return total
}

func (s *BillingUseCaseTestSuite) TestClosePeriod() {
	res, err := s.usecase().ClosePeriod(context.Background(), "2024-05")
	s.Require().NoError(err)

	s.Equal("7/7 closed", res.Summary)
	s.Equal(7, countState(s.w.store.Orders(), order.StateClosed))
	s.Len(s.w.store.Transactions(), 7)

	invoices := s.w.store.Invoices()
	s.Require().Len(invoices, 3)
	s.Equal(int64(1400), invoiceTotal(invoices))
	for _, inv := range invoices {
		s.Equal("2024-05", inv.BillingPeriod())
		s.Equal("2024-06-05", inv.PaymentDate().Format(time.DateOnly))
		s.Require().NotNil(inv.SummaryID())
	}

	summary := s.w.store.Summary("2024-05")
	s.Require().NotNil(summary)
	s.Equal(int64(1400), summary.TotalAmount())
	s.Equal(3, summary.HouseholdCount())
	s.Equal(7, summary.TicketCount())
	s.NotEmpty(summary.ShareToken())
	for _, inv := range invoices {
		s.Equal(summary.ID(), *inv.SummaryID())
	}
}

func (s *BillingUseCaseTestSuite) TestClosePeriodIsIdempotent() {
	uc := s.usecase()
	_, err := uc.ClosePeriod(context.Background(), "2024-05")
	s.Require().NoError(err)
	first := s.w.store.Summary("2024-05")

	res, err := uc.ClosePeriod(context.Background(), "2024-05")
	s.Require().NoError(err)

	s.Equal(0, res.Total)
	s.Len(s.w.store.Transactions(), 7)
	s.Len(s.w.store.Invoices(), 3)
	again := s.w.store.Summary("2024-05")
	s.Equal(first.ShareToken(), again.ShareToken())
	s.Equal(first.ID(), again.ID())
	s.Equal(int64(1400), again.TotalAmount())
}

func (s *BillingUseCaseTestSuite) TestLateTicketJoinsExistingInvoice() {
	uc := s.usecase()
	_, err := uc.ClosePeriod(context.Background(), "2024-05")
	s.Require().NoError(err)
	before := map[uuid.UUID]int64{}
	for _, inv := range s.w.store.Invoices() {
		before[inv.ID()] = inv.Amount()
	}

	s.w.order(s.may[2], s.eaters[0])
	_, err = uc.ClosePeriod(context.Background(), "2024-05")
	s.Require().NoError(err)

	invoices := s.w.store.Invoices()
	s.Require().Len(invoices, 3)
	for _, inv := range invoices {
		s.Contains(before, inv.ID())
	}
	s.Equal(int64(1600), invoiceTotal(invoices))
	s.Equal(8, s.w.store.Summary("2024-05").TicketCount())
}

func (s *BillingUseCaseTestSuite) TestClosePeriodExcludesLaterDinners() {
	june := s.w.dinner(day(2024, 6, 3), dinner.StateConsumed)
	late := s.w.order(june, s.eaters[3])
	scheduled := s.w.dinner(day(2024, 5, 28), dinner.StateAnnounced)
	pending := s.w.order(scheduled, s.eaters[3])

	res, err := s.usecase().ClosePeriod(context.Background(), "2024-05")
	s.Require().NoError(err)

	s.Equal("7/7 closed", res.Summary)
	s.Equal(order.StateBooked, s.w.store.Order(late.ID()).State())
	s.Equal(order.StateBooked, s.w.store.Order(pending.ID()).State())
	s.Equal(int64(1400), invoiceTotal(s.w.store.Invoices()))
}

func (s *BillingUseCaseTestSuite) TestClosePeriodAllOrdersFailed() {
	// a transaction left un-invoiced by an earlier run
	earlier := s.w.order(s.may[2], s.eaters[0], func(b *builder.OrderBuilder) { b.State = order.StateClosed })
	leftover, err := billing.NewTransaction(earlier.Snapshot(), billing.UserSnapshot{
		InhabitantID: s.eaters[0].ID(),
		HouseholdID:  s.eaters[0].HouseholdID(),
	}, "", s.may[2].Date())
	s.Require().NoError(err)
	s.w.store.Seed(s.T(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Billing().CreateTransaction(ctx, leftover)
		return err
	})

	uc := commands.NewBillingUseCase(&orphanUoW{Store: s.w.store}, s.publisher, s.w.clock, s.settings)
	res, err := uc.ClosePeriod(context.Background(), "2024-05")
	s.Require().NoError(err)

	s.Equal(0, res.Succeeded)
	s.Equal(7, res.Failed)
	s.Empty(s.w.store.Invoices())
	s.Nil(s.w.store.Summary("2024-05"))
	txs := s.w.store.Transactions()
	s.Require().Len(txs, 1)
	s.Nil(txs[0].InvoiceID())
}

func (s *BillingUseCaseTestSuite) TestReleasedTickets() {
	cases := []struct {
		name           string
		chargeReleased bool
		wantState      order.State
		wantTotal      int64
	}{
		{name: "not charged by default", chargeReleased: false, wantState: order.StateReleased, wantTotal: 1400},
		{name: "charged when configured", chargeReleased: true, wantState: order.StateClosed, wantTotal: 1600},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			released := s.w.order(s.may[2], s.eaters[2], func(b *builder.OrderBuilder) { b.State = order.StateReleased })
			s.settings.ChargeReleased = tc.chargeReleased

			_, err := s.usecase().ClosePeriod(context.Background(), "2024-05")
			s.Require().NoError(err)

			s.Equal(tc.wantState, s.w.store.Order(released.ID()).State())
			s.Equal(tc.wantTotal, invoiceTotal(s.w.store.Invoices()))
		})
	}
}

func (s *BillingUseCaseTestSuite) TestClosePreviousPeriod() {
	res, err := s.usecase().ClosePreviousPeriod(context.Background())
	s.Require().NoError(err)

	s.Equal(7, res.Succeeded)
	s.NotNil(s.w.store.Summary("2024-05"))
}

func (s *BillingUseCaseTestSuite) TestClosePeriodInvalidKey() {
	_, err := s.usecase().ClosePeriod(context.Background(), "May 2024")
	s.True(errs.Is(err, errs.ErrDomainValidation), "got %v", err)
}

func (s *BillingUseCaseTestSuite) TestExportInvoices() {
	uc := s.usecase()
	_, err := uc.ClosePeriod(context.Background(), "2024-05")
	s.Require().NoError(err)

	var published []shared.InvoiceExport
	s.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv shared.InvoiceExport) error {
			published = append(published, inv)
			return nil
		}).
		Times(3)

	res, err := uc.ExportInvoices(context.Background())
	s.Require().NoError(err)

	s.Equal("3/3 exported", res.Summary)
	s.Len(published, 3)
	var total int64
	for _, msg := range published {
		s.Equal("2024-05", msg.BillingPeriod)
		s.NotNil(msg.PbsID)
		total += msg.Amount
	}
	s.Equal(int64(1400), total)
	for _, inv := range s.w.store.Invoices() {
		s.True(inv.IsExported())
	}

	s.Run("rerun publishes nothing", func() {
		res, err := uc.ExportInvoices(context.Background())
		s.Require().NoError(err)
		s.Equal(0, res.Total)
	})
}

func (s *BillingUseCaseTestSuite) TestExportInvoicesPublishFailure() {
	uc := s.usecase()
	_, err := uc.ClosePeriod(context.Background(), "2024-05")
	s.Require().NoError(err)

	gomock.InOrder(
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errs.New("broker unavailable")),
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2),
	)

	res, err := uc.ExportInvoices(context.Background())
	s.Require().NoError(err)

	s.Equal(1, res.Failed)
	s.Equal("2/3 exported", res.Summary)
	s.Require().Error(res.FirstError)
	s.Contains(res.FirstError.Error(), "broker unavailable")

	exported := 0
	for _, inv := range s.w.store.Invoices() {
		if inv.IsExported() {
			exported++
		}
	}
	s.Equal(2, exported)
}
