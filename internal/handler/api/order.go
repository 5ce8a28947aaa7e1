package api

import (
	"net/http"

	reqdto "commons-dinner/internal/handler/dto/request"
	resdto "commons-dinner/internal/handler/dto/response"
	"commons-dinner/internal/handler/httperr"
	"commons-dinner/internal/usecase/commands"
	"commons-dinner/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Book a ticket
// @Description Book one dinner ticket for an inhabitant. The price is fixed at booking.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookOrderRequest true "Booking"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Book(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req reqdto.BookOrderRequest
	if !bind(c, &req) {
		return
	}
	id, err := h.cmds.Book(c.Request.Context(), req.ToCommand(), a)
	if err != nil {
		httperr.Abort(c, err, "Booking failed")
		return
	}
	c.Header("Location", "/api/orders/"+id.String())
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Order history
// @Description Append-only audit trail of an order, oldest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {array} queries.OrderHistoryView
// @Failure 404 {object} httperr.Response
// @Router /orders/{id}/history [get]
func (h *OrderHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := h.q.History(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// @Summary Release ticket
// @Description Give the ticket up before the cancellation deadline
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /orders/{id}/release [post]
func (h *OrderHandler) Release(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}
	if err := h.cmds.Release(c.Request.Context(), id, a); err != nil {
		httperr.Abort(c, err, "Release failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel order
// @Description Administrative cancellation
// @Tags orders
// @Accept json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.CancelOrderRequest false "Reason"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}
	var req reqdto.CancelOrderRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id, req.Reason, a); err != nil {
		httperr.Abort(c, err, "Cancel failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Change dining mode
// @Tags orders
// @Accept json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.ChangeDiningModeRequest true "Mode"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /orders/{id}/dining-mode [put]
func (h *OrderHandler) ChangeDiningMode(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}
	var req reqdto.ChangeDiningModeRequest
	if !bind(c, &req) {
		return
	}
	if err := h.cmds.ChangeDiningMode(c.Request.Context(), id, req.DinnerMode, a); err != nil {
		httperr.Abort(c, err, "Dining mode change failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Claim a released ticket
// @Tags orders
// @Accept json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.ClaimOrderRequest true "Claimer"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /orders/{id}/claim [post]
func (h *OrderHandler) Claim(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, ok := actor(c)
	if !ok {
		return
	}
	var req reqdto.ClaimOrderRequest
	if !bind(c, &req) {
		return
	}
	if err := h.cmds.Claim(c.Request.Context(), id, req.InhabitantID, a); err != nil {
		httperr.Abort(c, err, "Claim failed")
		return
	}
	c.Status(http.StatusNoContent)
}
