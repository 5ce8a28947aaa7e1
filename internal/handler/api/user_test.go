//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"commons-dinner/internal/domain/user"
	"commons-dinner/internal/handler/api"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/queries"
	"commons-dinner/tests/common/builder"
	"commons-dinner/tests/common/httptest"
	queriesmock "commons-dinner/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockUserQueries
	userID      uuid.UUID
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	handler := api.NewUserHandler(s.mockQueries)

	s.userID = uuid.New()
	s.router.GET("/me", fakeAuth(s.userID, user.RoleMember), handler.Me)
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) TestMe() {
	s.Run("success", func() {
		view := builder.NewUserBuilder().BuildView()
		view.ID = s.userID
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, bearer)

		var body queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.userID, body.ID)
		s.Equal("MEMBER", body.Role)
	})

	s.Run("error: 404 when the account is gone", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).
			Return(nil, errs.Mark(errs.New("user not found"), errs.ErrUserNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
