package v1

import (
	"net/http"

	"jobmatch-backend/internal/delivery/http/response"
	"jobmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) *ApplicationHandler {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	r.POST("/jobs/:id/applications", handler.Apply)

	employer := r.Group("/employer")
	{
		employer.GET("/applications/:id", handler.GetApplicationDetail)
		employer.PATCH("/applications/:id/status", handler.UpdateApplicationStatus)
	}
	return handler
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Fails when the caller owns the posting or already applied.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Job ID"
// @Param        body  body      domain.ApplyInput  true  "Cover letter"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /jobs/{id}/applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var in domain.ApplyInput
	if !bindJSON(c, &in) {
		return
	}

	ctx, caller := callerContext(c)
	app, err := h.applicationUC.Apply(ctx, caller, c.Param("id"), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Aplicația a fost trimisă", app)
}

// GetApplicationDetail godoc
// @Summary      Applicant detail
// @Description  The applicant's CV, for the owner of the posting.
// @Tags         employer
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employer/applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplicationDetail(c *gin.Context) {
	ctx, caller := callerContext(c)
	app, err := h.applicationUC.Detail(ctx, caller, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Detalii aplicație", app)
}

// UpdateApplicationStatus godoc
// @Summary      Accept or reject an application
// @Tags         employer
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Application ID"
// @Param        body  body      domain.StatusInput  true  "ACCEPTED or REJECTED"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /employer/applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	var in domain.StatusInput
	if !bindJSON(c, &in) {
		return
	}

	ctx, caller := callerContext(c)
	change, err := h.applicationUC.UpdateStatus(ctx, caller, c.Param("id"), in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// a rejected application leaves the active list, so no data is returned
	if change.Application == nil {
		response.Success(c, http.StatusOK, change.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, change.Message, change.Application)
}
