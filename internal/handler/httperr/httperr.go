package httperr

import (
	"net/http"

	"commons-dinner/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

var notFoundErrors = []error{
	errs.ErrSeasonNotFound,
	errs.ErrDinnerNotFound,
	errs.ErrOrderNotFound,
	errs.ErrInhabitantNotFound,
	errs.ErrTeamNotFound,
	errs.ErrPeriodNotFound,
	errs.ErrInvoiceNotFound,
	errs.ErrHouseholdNotFound,
	errs.ErrUserNotFound,
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps the error taxonomy onto HTTP statuses
func StatusOf(err error) int {
	for _, target := range notFoundErrors {
		if errs.Is(err, target) {
			return http.StatusNotFound
		}
	}
	switch {
	case errs.Is(err, errs.ErrGuardViolation):
		return http.StatusUnprocessableEntity
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errs.Is(err, errs.ErrDomainValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Abort answers with the status the error maps to. Client errors carry the error text as detail.
func Abort(c *gin.Context, err error, msg string) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		AbortWithError(c, status, err, "Internal server error", nil)
		return
	}
	AbortWithError(c, status, err, msg, err.Error())
}
