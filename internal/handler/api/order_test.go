//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"commons-dinner/internal/domain/order"
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

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	userID       uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	handler := api.NewOrderHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	auth := fakeAuth(s.userID, user.RoleMember)
	s.router.POST("/orders", auth, handler.Book)
	s.router.GET("/orders/:id", auth, handler.Get)
	s.router.GET("/orders/:id/history", auth, handler.History)
	s.router.POST("/orders/:id/release", auth, handler.Release)
	s.router.POST("/orders/:id/cancel", auth, handler.Cancel)
	s.router.PUT("/orders/:id/dining-mode", auth, handler.ChangeDiningMode)
	s.router.POST("/orders/:id/claim", auth, handler.Claim)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

type testCaseOrder struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestBook
// ================================================================================

func (s *OrderHandlerTestSuite) TestBook() {
	url := "/orders"
	reqBody := reqdto.BookOrderRequest{
		DinnerEventID: uuid.New(),
		InhabitantID:  uuid.New(),
		DinnerMode:    "DINEIN",
	}
	orderID := uuid.New()

	s.Run("success: 201 with location and the acting user recorded", func() {
		s.mockCommands.EXPECT().
			Book(gomock.Any(), reqBody.ToCommand(), order.UserActor(s.userID)).
			Return(orderID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)

		var body resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(orderID, body.ID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/orders/" + orderID.String()})
	})

	s.Run("error: 400 Bad Request on invalid body", func() {
		cases := []testCaseOrder{
			{name: "missing field: dinner_event_id", mutate: testutil.Field("dinner_event_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: inhabitant_id", mutate: testutil.Field("inhabitant_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: dinner_mode", mutate: testutil.Field("dinner_mode", nil), expectCode: http.StatusBadRequest},
			{name: "malformed uuid", mutate: testutil.Field("inhabitant_id", "karen"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: use case errors map onto statuses", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "second ticket", err: errs.Mark(commands.ErrOrderConflict, errs.ErrConflict), expectCode: http.StatusConflict},
			{name: "dinner cancelled", err: errs.Mark(errs.New("dinner is not open for booking"), errs.ErrGuardViolation), expectCode: http.StatusUnprocessableEntity},
			{name: "unknown dinner", err: errs.Mark(errs.New("dinner event not found"), errs.ErrDinnerNotFound), expectCode: http.StatusNotFound},
			{name: "invalid mode", err: errs.Mark(order.ErrInvalidDinnerMode, errs.ErrDomainValidation), expectCode: http.StatusBadRequest},
			{name: "database down", err: errs.New("connection refused"), expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Book(gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestGet / TestHistory
// ================================================================================

func (s *OrderHandlerTestSuite) TestGet() {
	view := builder.NewOrderBuilder().BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+view.ID.String(), nil, bearer)

		var body queries.OrderView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("BOOKED", body.State)
		s.Equal(int64(200), body.PriceAtBooking)
	})

	s.Run("error: 404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("order not found"), errs.ErrOrderNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+uuid.NewString(), nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *OrderHandlerTestSuite) TestHistory() {
	orderID := uuid.New()
	rows := []*queries.OrderHistoryView{
		{ID: uuid.New(), Action: "USER_BOOKED"},
		{ID: uuid.New(), Action: "USER_CANCELLED"},
	}
	s.mockQueries.EXPECT().History(gomock.Any(), orderID).Return(rows, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+orderID.String()+"/history", nil, bearer)

	var body []queries.OrderHistoryView
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 2)
	s.Equal("USER_BOOKED", body[0].Action)
}

// ================================================================================
// Transitions
// ================================================================================

func (s *OrderHandlerTestSuite) TestRelease() {
	orderID := uuid.New()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), orderID, order.UserActor(s.userID)).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+orderID.String()+"/release", nil, bearer)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 422 after the cancellation deadline", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), orderID, gomock.Any()).
			Return(errs.Mark(order.ErrTooLateToCancel, errs.ErrGuardViolation)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+orderID.String()+"/release", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Release failed")
		s.Contains(rec.Body.String(), "too late to cancel")
	})
}

func (s *OrderHandlerTestSuite) TestCancel() {
	orderID := uuid.New()

	s.Run("success: reason is optional", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), orderID, "", gomock.Any()).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+orderID.String()+"/cancel", nil, bearer)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: reason is passed through", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), orderID, "moved away", gomock.Any()).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+orderID.String()+"/cancel",
			reqdto.CancelOrderRequest{Reason: "moved away"}, bearer)
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *OrderHandlerTestSuite) TestChangeDiningMode() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/dining-mode"

	s.Run("success", func() {
		s.mockCommands.EXPECT().ChangeDiningMode(gomock.Any(), orderID, "TAKEAWAY", gomock.Any()).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqdto.ChangeDiningModeRequest{DinnerMode: "TAKEAWAY"}, bearer)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 without a mode", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *OrderHandlerTestSuite) TestClaim() {
	orderID := uuid.New()
	claimer := uuid.New()
	url := "/orders/" + orderID.String() + "/claim"

	s.Run("success", func() {
		s.mockCommands.EXPECT().Claim(gomock.Any(), orderID, claimer, order.UserActor(s.userID)).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.ClaimOrderRequest{InhabitantID: claimer}, bearer)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when the claimer already holds a ticket", func() {
		s.mockCommands.EXPECT().Claim(gomock.Any(), orderID, claimer, gomock.Any()).
			Return(errs.Mark(commands.ErrOrderConflict, errs.ErrConflict)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.ClaimOrderRequest{InhabitantID: claimer}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Claim failed")
	})
}
