//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/infra/lock"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/commands"
	"commons-dinner/internal/usecase/shared"
	"commons-dinner/tests/common/builder"
	sharedmock "commons-dinner/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type JobRunnerTestSuite struct {
	suite.Suite
	w      *world
	locker *lock.LocalLocker
}

func TestJobRunnerSuite(t *testing.T) {
	suite.Run(t, new(JobRunnerTestSuite))
}

func (s *JobRunnerTestSuite) SetupTest() {
	s.w = newWorld(s.T(), day(2024, 6, 1).Add(2*time.Hour))
	s.locker = lock.NewLocalLocker()
}

func (s *JobRunnerTestSuite) runner(jobs map[job.Type]commands.JobFunc) commands.JobRunner {
	return commands.NewJobRunner(s.w.store, s.locker, s.w.clock, jobs)
}

func (s *JobRunnerTestSuite) TestMonthlyBillingPartial() {
	d := s.w.dinner(day(2024, 5, 14), dinner.StateConsumed)
	d2 := s.w.dinner(day(2024, 5, 21), dinner.StateConsumed)
	_, a := s.w.household("Karen", "Niels", "Ida")
	_, b := s.w.household("Bo", "Ulla")
	for _, inh := range a {
		s.w.order(d, inh)
	}
	for _, inh := range b {
		s.w.order(d, inh)
	}
	s.w.order(d2, a[0])

	// an order whose inhabitant row is gone cannot be billed
	seasonID := s.w.season.ID()
	orphan := builder.NewOrderBuilder().With(func(b *builder.OrderBuilder) {
		b.DinnerEventID = d2.ID()
		b.SeasonID = &seasonID
	}).BuildDomain()
	s.w.store.Seed(s.T(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().Create(ctx, orphan)
	})

	billingUC := commands.NewBillingUseCase(s.w.store, nil, s.w.clock, commands.BillingSettings{Location: time.UTC, Workers: 2})
	run, err := s.runner(map[job.Type]commands.JobFunc{
		job.TypeMonthlyBilling: billingUC.ClosePreviousPeriod,
	}).Run(context.Background(), job.TypeMonthlyBilling, job.TriggeredByScheduler)
	s.Require().NoError(err)

	s.Equal(job.StatusPartial, run.Status())
	s.Require().NotNil(run.ResultSummary())
	s.Equal("6/7 closed", *run.ResultSummary())
	s.Require().NotNil(run.ErrorMessage())
	s.Contains(*run.ErrorMessage(), orphan.ID().String())
	s.Equal(int64(1200), invoiceTotal(s.w.store.Invoices()))

	runs := s.w.store.JobRuns()
	s.Require().Len(runs, 1)
	s.Equal(job.StatusPartial, runs[0].Status())
	s.Equal(job.TriggeredByScheduler, runs[0].TriggeredBy())
	s.NotNil(runs[0].CompletedAt())
}

func (s *JobRunnerTestSuite) TestRunStatuses() {
	cases := []struct {
		name       string
		fn         commands.JobFunc
		wantStatus job.Status
		wantError  string
	}{
		{
			name: "success",
			fn: func(context.Context) (job.Result, error) {
				return job.Result{Total: 2, Succeeded: 2, Summary: "2/2 consumed"}, nil
			},
			wantStatus: job.StatusSuccess,
		},
		{
			name: "fatal error",
			fn: func(context.Context) (job.Result, error) {
				return job.Result{}, errs.New("database unavailable")
			},
			wantStatus: job.StatusFailed,
			wantError:  "database unavailable",
		},
		{
			name: "panic",
			fn: func(context.Context) (job.Result, error) {
				panic("nil roster")
			},
			wantStatus: job.StatusFailed,
			wantError:  "job panicked: nil roster",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			run, err := s.runner(map[job.Type]commands.JobFunc{
				job.TypeDailyMaintenance: tc.fn,
			}).Run(context.Background(), job.TypeDailyMaintenance, job.TriggeredByManual)
			s.Require().NoError(err)

			s.Equal(tc.wantStatus, run.Status())
			if tc.wantError != "" {
				s.Require().NotNil(run.ErrorMessage())
				s.Contains(*run.ErrorMessage(), tc.wantError)
			} else {
				s.Nil(run.ErrorMessage())
			}
		})
	}
}

func (s *JobRunnerTestSuite) TestRunWhileBusy() {
	release, err := s.locker.Acquire(context.Background(), job.TypeMonthlyBilling)
	s.Require().NoError(err)
	defer release()

	called := false
	_, err = s.runner(map[job.Type]commands.JobFunc{
		job.TypeMonthlyBilling: func(context.Context) (job.Result, error) {
			called = true
			return job.Result{}, nil
		},
	}).Run(context.Background(), job.TypeMonthlyBilling, job.TriggeredByScheduler)

	s.True(errs.Is(err, errs.ErrConflict), "got %v", err)
	s.False(called)
	s.Empty(s.w.store.JobRuns())
}

func (s *JobRunnerTestSuite) TestRunInvalidType() {
	_, err := s.runner(nil).Run(context.Background(), job.Type("WEEKLY_PARTY"), job.TriggeredByManual)
	s.True(errs.Is(err, errs.ErrDomainValidation), "got %v", err)
}

func (s *JobRunnerTestSuite) TestRunReleasesLock() {
	ctrl := gomock.NewController(s.T())
	locker := sharedmock.NewMockJobLocker(ctrl)
	released := 0
	locker.EXPECT().
		Acquire(gomock.Any(), job.TypeHeynaboImport).
		Return(func() { released++ }, nil)

	runner := commands.NewJobRunner(s.w.store, locker, s.w.clock, map[job.Type]commands.JobFunc{
		job.TypeHeynaboImport: func(context.Context) (job.Result, error) { return job.Result{}, nil },
	})
	_, err := runner.Run(context.Background(), job.TypeHeynaboImport, job.TriggeredByManual)
	s.Require().NoError(err)
	s.Equal(1, released)
}

func (s *JobRunnerTestSuite) TestTrigger() {
	proceed := make(chan struct{})
	runner := s.runner(map[job.Type]commands.JobFunc{
		job.TypeMaintenanceExport: func(context.Context) (job.Result, error) {
			<-proceed
			return job.Result{Total: 1, Succeeded: 1, Summary: "1/1 exported"}, nil
		},
	})

	run, err := runner.Trigger(context.Background(), job.TypeMaintenanceExport, job.TriggeredByManual+":"+uuid.NewString())
	s.Require().NoError(err)
	s.Equal(job.StatusRunning, run.Status())

	_, err = runner.Trigger(context.Background(), job.TypeMaintenanceExport, job.TriggeredByManual)
	s.True(errs.Is(err, errs.ErrConflict), "a second trigger waits for the first, got %v", err)

	close(proceed)
	s.Eventually(func() bool {
		runs := s.w.store.JobRuns()
		return len(runs) == 1 && runs[0].Status() == job.StatusSuccess
	}, time.Second, 10*time.Millisecond)
}
