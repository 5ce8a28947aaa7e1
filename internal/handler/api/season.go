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

type SeasonHandler struct {
	cmds commands.SeasonCommands
	q    queries.SeasonQueries
}

func NewSeasonHandler(cmds commands.SeasonCommands, q queries.SeasonQueries) *SeasonHandler {
	return &SeasonHandler{cmds: cmds, q: q}
}

// @Summary Create season
// @Tags seasons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSeasonRequest true "Season"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Router /seasons [post]
func (h *SeasonHandler) Create(c *gin.Context) {
	var req reqdto.CreateSeasonRequest
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
		httperr.Abort(c, err, "Create season failed")
		return
	}
	c.Header("Location", "/api/seasons/"+id.String())
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Active season
// @Tags seasons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.SeasonView
// @Failure 404 {object} httperr.Response
// @Router /seasons/active [get]
func (h *SeasonHandler) Active(c *gin.Context) {
	view, err := h.q.Active(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err, "No active season")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get season
// @Tags seasons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Season ID"
// @Success 200 {object} queries.SeasonView
// @Failure 404 {object} httperr.Response
// @Router /seasons/{id} [get]
func (h *SeasonHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Season not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Activate season
// @Description Makes this the only active season
// @Tags seasons
// @Security BearerAuth
// @Param id path string true "Season ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /seasons/{id}/activate [post]
func (h *SeasonHandler) Activate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Activate(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err, "Activate failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create cooking team
// @Tags seasons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Season ID"
// @Param request body reqdto.CreateTeamRequest true "Team"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /seasons/{id}/teams [post]
func (h *SeasonHandler) CreateTeam(c *gin.Context) {
	seasonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateTeamRequest
	if !bind(c, &req) {
		return
	}
	id, err := h.cmds.CreateTeam(c.Request.Context(), commands.CreateTeamRequest{
		SeasonID: seasonID,
		Name:     req.Name,
		Affinity: reqdto.OptionalText(req.Affinity),
	})
	if err != nil {
		httperr.Abort(c, err, "Create team failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Assign team member
// @Tags seasons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path string true "Team ID"
// @Param request body reqdto.AssignMemberRequest true "Assignment"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /teams/{teamId}/assignments [post]
func (h *SeasonHandler) Assign(c *gin.Context) {
	teamID, ok := pathID(c, "teamId")
	if !ok {
		return
	}
	var req reqdto.AssignMemberRequest
	if !bind(c, &req) {
		return
	}
	id, err := h.cmds.Assign(c.Request.Context(), commands.AssignMemberRequest{
		TeamID:               teamID,
		InhabitantID:         req.InhabitantID,
		Role:                 req.Role,
		AllocationPercentage: req.AllocationPercentage,
		Affinity:             reqdto.OptionalText(req.Affinity),
	})
	if err != nil {
		httperr.Abort(c, err, "Assign failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Cooking rotation
// @Description Team on duty for each cooking date in the range
// @Tags seasons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Season ID"
// @Param from query string true "From (YYYY-MM-DD)"
// @Param to query string true "To (YYYY-MM-DD)"
// @Success 200 {array} queries.DutyView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /seasons/{id}/rotation [get]
func (h *SeasonHandler) Rotation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
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
	duties, err := h.q.Rotation(c.Request.Context(), id, from, to)
	if err != nil {
		httperr.Abort(c, err, "Rotation failed")
		return
	}
	c.JSON(http.StatusOK, duties)
}

// @Summary Team allocation report
// @Description Advisory sum of member allocation per team
// @Tags seasons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Season ID"
// @Success 200 {array} queries.TeamAllocationView
// @Failure 404 {object} httperr.Response
// @Router /seasons/{id}/allocation [get]
func (h *SeasonHandler) Allocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	report, err := h.q.AllocationReport(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Allocation report failed")
		return
	}
	c.JSON(http.StatusOK, report)
}
