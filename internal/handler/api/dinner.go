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

type DinnerHandler struct {
	cmds   commands.DinnerCommands
	q      queries.DinnerQueries
	orders queries.OrderQueries
}

func NewDinnerHandler(cmds commands.DinnerCommands, q queries.DinnerQueries, orders queries.OrderQueries) *DinnerHandler {
	return &DinnerHandler{cmds: cmds, q: q, orders: orders}
}

// @Summary Create dinner event
// @Description The date must be a cooking day of the season. Without a team the rotation decides.
// @Tags dinners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateDinnerRequest true "Dinner"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /dinners [post]
func (h *DinnerHandler) Create(c *gin.Context) {
	var req reqdto.CreateDinnerRequest
	if !bind(c, &req) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err, "Invalid request")
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err, "Create dinner failed")
		return
	}
	c.Header("Location", "/api/dinners/"+id.String())
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Get dinner event
// @Tags dinners
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dinner ID"
// @Success 200 {object} queries.DinnerView
// @Failure 404 {object} httperr.Response
// @Router /dinners/{id} [get]
func (h *DinnerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Dinner not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List dinner events in a date range
// @Tags dinners
// @Produce json
// @Security BearerAuth
// @Param from query string true "From (YYYY-MM-DD)"
// @Param to query string true "To (YYYY-MM-DD)"
// @Success 200 {array} queries.DinnerView
// @Failure 400 {object} httperr.Response
// @Router /dinners [get]
func (h *DinnerHandler) List(c *gin.Context) {
	from, err := reqdto.ParseDate(c.Query("from"))
	if err != nil {
		httperr.Abort(c, err, "Invalid from")
		return
	}
	to, err := reqdto.ParseDate(c.Query("to"))
	if err != nil {
		httperr.Abort(c, err, "Invalid to")
		return
	}
	views, err := h.q.ListBetween(c.Request.Context(), from, to)
	if err != nil {
		httperr.Abort(c, err, "List dinners failed")
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Dinner chef
// @Description Explicit chef of the dinner, else the cooking team's lead chef
// @Tags dinners
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dinner ID"
// @Success 200 {object} queries.ChefView
// @Failure 404 {object} httperr.Response
// @Router /dinners/{id}/chef [get]
func (h *DinnerHandler) Chef(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Chef(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Chef not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Orders of a dinner
// @Tags dinners
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dinner ID"
// @Success 200 {array} queries.OrderView
// @Router /dinners/{id}/orders [get]
func (h *DinnerHandler) Orders(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.orders.ListByDinner(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "List orders failed")
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Announce dinner
// @Description Publish menu, total cost and allergens. Re-announcing updates the menu.
// @Tags dinners
// @Accept json
// @Security BearerAuth
// @Param id path string true "Dinner ID"
// @Param request body reqdto.AnnounceDinnerRequest true "Menu"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /dinners/{id}/announce [post]
func (h *DinnerHandler) Announce(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AnnounceDinnerRequest
	if !bind(c, &req) {
		return
	}
	if err := h.cmds.Announce(c.Request.Context(), id, req.ToCommand()); err != nil {
		httperr.Abort(c, err, "Announce failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Consume dinner
// @Tags dinners
// @Security BearerAuth
// @Param id path string true "Dinner ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /dinners/{id}/consume [post]
func (h *DinnerHandler) Consume(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Consume(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err, "Consume failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel dinner
// @Description Cancels the dinner and all its open orders in one transaction
// @Tags dinners
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dinner ID"
// @Success 200 {object} resdto.CancelDinnerResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /dinners/{id}/cancel [post]
func (h *DinnerHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	n, err := h.cmds.Cancel(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Cancel failed")
		return
	}
	c.JSON(http.StatusOK, resdto.CancelDinnerResponse{CancelledOrders: n})
}
