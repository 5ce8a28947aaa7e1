package api

import (
	"net/http"
	"strconv"

	"commons-dinner/internal/domain/job"
	resdto "commons-dinner/internal/handler/dto/response"
	"commons-dinner/internal/handler/httperr"
	"commons-dinner/internal/handler/middleware"
	"commons-dinner/internal/usecase/commands"
	"commons-dinner/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	runner commands.JobRunner
	q      queries.JobRunQueries
}

func NewJobHandler(runner commands.JobRunner, q queries.JobRunQueries) *JobHandler {
	return &JobHandler{runner: runner, q: q}
}

// @Summary Trigger job
// @Description Starts a job run in the background
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param type path string true "Job type" Enums(DAILY_MAINTENANCE, MONTHLY_BILLING, HEYNABO_IMPORT, MAINTENANCE_IMPORT, MAINTENANCE_EXPORT)
// @Success 202 {object} resdto.JobRunResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /jobs/{type}/trigger [post]
func (h *JobHandler) Trigger(c *gin.Context) {
	t, err := job.NewType(c.Param("type"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown job type", nil)
		return
	}
	triggeredBy := job.TriggeredByManual
	if id, ok := middleware.GetUserID(c); ok {
		triggeredBy += ":" + id.String()
	}
	run, err := h.runner.Trigger(c.Request.Context(), t, triggeredBy)
	if err != nil {
		httperr.Abort(c, err, "Job not started")
		return
	}
	c.JSON(http.StatusAccepted, resdto.FromJobRun(run))
}

// @Summary List job runs
// @Description Newest first, cursor paginated
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param type query string false "Job type"
// @Param cursor query string false "Cursor from the previous page"
// @Param limit query int false "Page size (default 20, max 200)"
// @Success 200 {object} resdto.Page[queries.JobRunView]
// @Failure 400 {object} httperr.Response
// @Router /jobs/runs [get]
func (h *JobHandler) ListRuns(c *gin.Context) {
	var jobType *string
	if v := c.Query("type"); v != "" {
		jobType = &v
	}
	var after *queries.Cursor
	if v := c.Query("cursor"); v != "" {
		after = &queries.Cursor{After: v}
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = n
	}

	runs, next, err := h.q.List(c.Request.Context(), jobType, after, limit)
	if err != nil {
		httperr.Abort(c, err, "List job runs failed")
		return
	}
	page := resdto.Page[*queries.JobRunView]{Items: runs}
	if next != nil {
		page.NextCursor = &next.After
	}
	if page.Items == nil {
		page.Items = []*queries.JobRunView{}
	}
	c.JSON(http.StatusOK, page)
}
