package v1

import (
	"net/http"
	"strconv"

	"jobmatch-backend/internal/delivery/http/response"
	"jobmatch-backend/internal/domain"
	"jobmatch-backend/internal/usecase"
	"jobmatch-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers posting routes. optional resolves the caller when
// a token is present; protected requires one.
func NewJobHandler(optional, protected *gin.RouterGroup, jobUC domain.JobUsecase) *JobHandler {
	handler := &JobHandler{jobUC: jobUC}

	optional.GET("/jobs", handler.List)
	optional.GET("/jobs/:id", handler.GetDetails)

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.DELETE("/:id", handler.Delete)
	}

	employer := protected.Group("/employer")
	{
		employer.GET("/jobs", handler.Dashboard)
	}
	return handler
}

// filterFromQuery reads page, limit, search, jobType and experienceLevel.
// Malformed numbers fall back to the defaults.
func filterFromQuery(c *gin.Context) domain.JobFilter {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return domain.JobFilter{
		Search:           c.Query("search"),
		JobTypes:         domain.ParseJobTypes(c.Query("jobType")),
		ExperienceLevels: domain.ParseExperienceLevels(c.Query("experienceLevel")),
		Page:             page,
		Limit:            limit,
	}
}

// ListRaw godoc
// @Summary      Search job postings
// @Description  Newest first. Answers a bare JSON array; failures answer {"error": string}.
// @Tags         jobs
// @Produce      json
// @Param        page             query  int     false  "Page number (default 1)"
// @Param        limit            query  int     false  "Page size (default 10, max 100)"
// @Param        search           query  string  false  "Matched against title, company and description"
// @Param        jobType          query  string  false  "Comma separated job types"
// @Param        experienceLevel  query  string  false  "Comma separated experience levels"
// @Success      200  {array}   domain.JobPosting
// @Failure      500  {object}  map[string]string
// @Router       /api/jobs [get]
func (h *JobHandler) ListRaw(c *gin.Context) {
	jobs, err := h.jobUC.Search(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		logger.Log.ErrorContext(c.Request.Context(), "job search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// List godoc
// @Summary      Search job postings
// @Tags         jobs
// @Produce      json
// @Param        page             query  int     false  "Page number"
// @Param        limit            query  int     false  "Page size"
// @Param        search           query  string  false  "Search term"
// @Param        jobType          query  string  false  "Comma separated job types"
// @Param        experienceLevel  query  string  false  "Comma separated experience levels"
// @Success      200  {object}  response.Response{data=[]domain.JobPosting}
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter := filterFromQuery(c)
	jobs, err := h.jobUC.Search(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	norm := filter.Normalized()
	response.Success(c, http.StatusOK, "Lista de joburi", gin.H{
		"jobs":  jobs,
		"page":  norm.Page,
		"limit": norm.Limit,
	})
}

// GetDetails godoc
// @Summary      Job posting detail
// @Description  Includes the poster and, for signed-in callers, their own application.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobDetail}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	ctx, caller := callerContext(c)
	detail, err := h.jobUC.Detail(ctx, caller, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Detalii job", detail)
}

// Create godoc
// @Summary      Create a job posting
// @Description  Employer only. Requirements are newline separated.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobPostingInput  true  "Posting"
// @Success      201  {object}  response.Response{data=domain.JobPosting}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var in domain.JobPostingInput
	if !bindJSON(c, &in) {
		return
	}

	ctx, caller := callerContext(c)
	job, err := h.jobUC.CreatePosting(ctx, caller, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Jobul a fost publicat", job)
}

// Delete godoc
// @Summary      Delete a job posting
// @Description  Owner only. Removes the posting and all of its applications.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	ctx, caller := callerContext(c)
	if err := h.jobUC.DeletePosting(ctx, caller, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, usecase.MsgJobDeleted, nil)
}

// Dashboard godoc
// @Summary      Employer dashboard
// @Description  The employer's postings with their active applications.
// @Tags         employer
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobPosting}
// @Failure      403  {object}  response.Response
// @Router       /employer/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) Dashboard(c *gin.Context) {
	ctx, caller := callerContext(c)
	jobs, err := h.jobUC.EmployerDashboard(ctx, caller)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Joburile tale", jobs)
}
