//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/domain/user"
	"commons-dinner/internal/handler/api"
	resdto "commons-dinner/internal/handler/dto/response"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/queries"
	"commons-dinner/tests/common/httptest"
	commandsmock "commons-dinner/tests/mock/commands"
	queriesmock "commons-dinner/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type JobHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockRunner  *commandsmock.MockJobRunner
	mockQueries *queriesmock.MockJobRunQueries
	adminID     uuid.UUID
}

func (s *JobHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockRunner = commandsmock.NewMockJobRunner(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockJobRunQueries(s.mockCtrl)
	handler := api.NewJobHandler(s.mockRunner, s.mockQueries)

	s.adminID = uuid.New()
	auth := fakeAuth(s.adminID, user.RoleAdmin)
	s.router.POST("/admin/jobs/:type", auth, handler.Trigger)
	s.router.GET("/admin/jobs", auth, handler.ListRuns)
}

func (s *JobHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestJobHandlerSuite(t *testing.T) {
	suite.Run(t, new(JobHandlerTestSuite))
}

func (s *JobHandlerTestSuite) TestTrigger() {
	s.Run("success: 202 with the running row", func() {
		triggeredBy := job.TriggeredByManual + ":" + s.adminID.String()
		run, err := job.Start(job.TypeMonthlyBilling, triggeredBy, time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC))
		s.Require().NoError(err)
		s.mockRunner.EXPECT().Trigger(gomock.Any(), job.TypeMonthlyBilling, triggeredBy).Return(run, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/jobs/MONTHLY_BILLING", nil, bearer)

		var body resdto.JobRunResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &body)
		s.Equal(run.ID(), body.ID)
		s.Equal("RUNNING", body.Status)
		s.True(strings.HasPrefix(body.TriggeredBy, job.TriggeredByManual))
	})

	s.Run("error: 400 on unknown job type", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/jobs/WEEKLY_PARTY", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown job type")
	})

	s.Run("error: 409 while the job is running", func() {
		s.mockRunner.EXPECT().Trigger(gomock.Any(), job.TypeHeynaboImport, gomock.Any()).
			Return(nil, errs.Mark(job.ErrJobAlreadyRunning, errs.ErrConflict)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/jobs/HEYNABO_IMPORT", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Job not started")
	})
}

func (s *JobHandlerTestSuite) TestListRuns() {
	summary := "7/7 closed"
	runs := []*queries.JobRunView{
		{ID: uuid.New(), JobType: "MONTHLY_BILLING", Status: "SUCCESS", ResultSummary: &summary, TriggeredBy: job.TriggeredByScheduler},
	}

	s.Run("success: filters and cursor are passed through", func() {
		jobType := "MONTHLY_BILLING"
		s.mockQueries.EXPECT().
			List(gomock.Any(), &jobType, &queries.Cursor{After: "abc"}, 10).
			Return(runs, &queries.Cursor{After: "next"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/jobs?type=MONTHLY_BILLING&cursor=abc&limit=10", nil, bearer)

		var body resdto.Page[queries.JobRunView]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Require().NotNil(body.NextCursor)
		s.Equal("next", *body.NextCursor)
	})

	s.Run("success: empty page is an empty list", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), nil, nil, 0).Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/jobs", nil, bearer)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"items":[]}`, rec.Body.String())
	})

	s.Run("error: 400 on non-numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/jobs?limit=ten", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})
}
