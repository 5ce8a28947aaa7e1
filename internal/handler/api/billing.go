package api

import (
	"net/http"

	resdto "commons-dinner/internal/handler/dto/response"
	"commons-dinner/internal/handler/httperr"
	"commons-dinner/internal/usecase/commands"
	"commons-dinner/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	cmds commands.BillingCommands
	q    queries.BillingQueries
}

func NewBillingHandler(cmds commands.BillingCommands, q queries.BillingQueries) *BillingHandler {
	return &BillingHandler{cmds: cmds, q: q}
}

// @Summary Close billing period
// @Description Bills every eligible order up to the period cutoff, then folds invoices and the summary. Safe to re-run.
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param period path string true "Period (YYYY-MM)"
// @Success 200 {object} resdto.JobResultResponse
// @Failure 400 {object} httperr.Response
// @Router /billing/periods/{period}/close [post]
func (h *BillingHandler) ClosePeriod(c *gin.Context) {
	res, err := h.cmds.ClosePeriod(c.Request.Context(), c.Param("period"))
	if err != nil {
		httperr.Abort(c, err, "Close period failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromJobResult(res))
}

// @Summary Billing period
// @Description Summary and invoices of a closed period
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param period path string true "Period (YYYY-MM)"
// @Success 200 {object} queries.BillingPeriodView
// @Failure 404 {object} httperr.Response
// @Router /billing/periods/{period} [get]
func (h *BillingHandler) Period(c *gin.Context) {
	view, err := h.q.Period(c.Request.Context(), c.Param("period"))
	if err != nil {
		httperr.Abort(c, err, "Billing period not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get invoice
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} queries.InvoiceView
// @Failure 404 {object} httperr.Response
// @Router /invoices/{id} [get]
func (h *BillingHandler) Invoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Invoice(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Invoice not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Public billing summary
// @Description Period summary shared by link, no authentication
// @Tags billing
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} queries.BillingSummaryView
// @Failure 404 {object} httperr.Response
// @Router /public/billing/{token} [get]
func (h *BillingHandler) PublicSummary(c *gin.Context) {
	view, err := h.q.SummaryByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.Abort(c, err, "Summary not found")
		return
	}
	c.JSON(http.StatusOK, view)
}
