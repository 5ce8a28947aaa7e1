//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/user"
	"commons-dinner/internal/handler/api"
	reqdto "commons-dinner/internal/handler/dto/request"
	resdto "commons-dinner/internal/handler/dto/response"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/commands"
	"commons-dinner/internal/usecase/queries"
	"commons-dinner/tests/common/builder"
	"commons-dinner/tests/common/httptest"
	"commons-dinner/tests/common/testutil"
	commandsmock "commons-dinner/tests/mock/commands"
	queriesmock "commons-dinner/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DinnerHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDinnerCommands
	mockQueries  *queriesmock.MockDinnerQueries
	mockOrders   *queriesmock.MockOrderQueries
}

func (s *DinnerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDinnerCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDinnerQueries(s.mockCtrl)
	s.mockOrders = queriesmock.NewMockOrderQueries(s.mockCtrl)
	handler := api.NewDinnerHandler(s.mockCommands, s.mockQueries, s.mockOrders)

	auth := fakeAuth(uuid.New(), user.RoleAdmin)
	s.router.POST("/dinners", auth, handler.Create)
	s.router.GET("/dinners", auth, handler.List)
	s.router.GET("/dinners/:id", auth, handler.Get)
	s.router.GET("/dinners/:id/chef", auth, handler.Chef)
	s.router.GET("/dinners/:id/orders", auth, handler.Orders)
	s.router.PUT("/dinners/:id/announce", auth, handler.Announce)
	s.router.POST("/dinners/:id/consume", auth, handler.Consume)
	s.router.POST("/dinners/:id/cancel", auth, handler.Cancel)
}

func (s *DinnerHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDinnerHandlerSuite(t *testing.T) {
	suite.Run(t, new(DinnerHandlerTestSuite))
}

func (s *DinnerHandlerTestSuite) TestCreate() {
	seasonID := uuid.New()
	reqBody := reqdto.CreateDinnerRequest{SeasonID: seasonID, Date: "2024-05-14", MenuTitle: "Lasagne"}
	dinnerID := uuid.New()

	s.Run("success: date is parsed as a calendar day", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), commands.CreateDinnerRequest{
				SeasonID:  seasonID,
				Date:      time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC),
				MenuTitle: "Lasagne",
			}).
			Return(dinnerID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/dinners", reqBody, bearer)

		var body resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(dinnerID, body.ID)
	})

	s.Run("error: 400 on invalid body", func() {
		cases := []testCaseOrder{
			{name: "missing field: season_id", mutate: testutil.Field("season_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: menu_title", mutate: testutil.Field("menu_title", nil), expectCode: http.StatusBadRequest},
			{name: "date not a calendar day", mutate: testutil.Field("date", "14/05/2024"), expectCode: http.StatusBadRequest},
			{name: "picture is not a url", mutate: testutil.Field("menu_picture_url", "lasagne.png"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/dinners", testutil.DtoMap(s.T(), reqBody, tc.mutate), bearer)
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: 400 when the date is not a cooking day", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.Mark(dinner.ErrNotCookingDay, errs.ErrDomainValidation)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/dinners", reqBody, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Create dinner failed")
	})
}

func (s *DinnerHandlerTestSuite) TestList() {
	views := []*queries.DinnerView{builder.NewDinnerBuilder().BuildView()}

	s.Run("success", func() {
		s.mockQueries.EXPECT().
			ListBetween(gomock.Any(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)).
			Return(views, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/dinners?from=2024-05-01&to=2024-05-31", nil, bearer)

		var body []queries.DinnerView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("error: 400 without a range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/dinners?from=2024-05-01", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid to")
	})
}

func (s *DinnerHandlerTestSuite) TestChef() {
	dinnerID := uuid.New()
	s.mockQueries.EXPECT().Chef(gomock.Any(), dinnerID).
		Return(nil, errs.Mark(errs.New("no chef"), errs.ErrInhabitantNotFound)).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/dinners/"+dinnerID.String()+"/chef", nil, bearer)
	httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Chef not found")
}

func (s *DinnerHandlerTestSuite) TestOrders() {
	dinnerID := uuid.New()
	views := []*queries.OrderView{builder.NewOrderBuilder().BuildView(), builder.NewOrderBuilder().BuildView()}
	s.mockOrders.EXPECT().ListByDinner(gomock.Any(), dinnerID).Return(views, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/dinners/"+dinnerID.String()+"/orders", nil, bearer)

	var body []queries.OrderView
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body, 2)
}

func (s *DinnerHandlerTestSuite) TestAnnounce() {
	dinnerID := uuid.New()
	url := "/dinners/" + dinnerID.String() + "/announce"
	reqBody := reqdto.AnnounceDinnerRequest{MenuTitle: "Pasta", TotalCost: 150000}

	s.Run("success", func() {
		s.mockCommands.EXPECT().Announce(gomock.Any(), dinnerID, reqBody.ToCommand()).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, bearer)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on negative cost", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("total_cost", -5)), bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 422 when already consumed", func() {
		s.mockCommands.EXPECT().Announce(gomock.Any(), dinnerID, gomock.Any()).
			Return(errs.Mark(dinner.ErrInvalidTransition, errs.ErrGuardViolation)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Announce failed")
	})
}

func (s *DinnerHandlerTestSuite) TestConsume() {
	dinnerID := uuid.New()
	s.mockCommands.EXPECT().Consume(gomock.Any(), dinnerID).Return(nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/dinners/"+dinnerID.String()+"/consume", nil, bearer)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *DinnerHandlerTestSuite) TestCancel() {
	dinnerID := uuid.New()
	url := "/dinners/" + dinnerID.String() + "/cancel"

	s.Run("success: reports cancelled orders", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), dinnerID).Return(4, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, bearer)

		var body resdto.CancelDinnerResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(4, body.CancelledOrders)
	})

	s.Run("error: 404", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), dinnerID).
			Return(0, errs.Mark(errs.New("dinner event not found"), errs.ErrDinnerNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Cancel failed")
	})
}
