package v1

import (
	"net/http"

	"jobmatch-backend/internal/delivery/http/response"
	"jobmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// RecordHandler serves the CRUD routes of one CV section.
type RecordHandler[In any, T domain.Owned] struct {
	uc    domain.RecordUsecase[In, T]
	label string
}

// NewRecordHandler mounts GET|POST /profile/<path> and PUT|DELETE
// /profile/<path>/:id. label names the section in response messages.
func NewRecordHandler[In any, T domain.Owned](protected *gin.RouterGroup, path, label string, uc domain.RecordUsecase[In, T]) *RecordHandler[In, T] {
	handler := &RecordHandler[In, T]{uc: uc, label: label}

	records := protected.Group("/profile/" + path)
	{
		records.GET("", handler.List)
		records.POST("", handler.Create)
		records.PUT("/:id", handler.Update)
		records.DELETE("/:id", handler.Delete)
	}
	return handler
}

func (h *RecordHandler[In, T]) List(c *gin.Context) {
	ctx, caller := callerContext(c)
	recs, err := h.uc.List(ctx, caller)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label, recs)
}

func (h *RecordHandler[In, T]) Create(c *gin.Context) {
	var in In
	if !bindJSON(c, &in) {
		return
	}

	ctx, caller := callerContext(c)
	rec, err := h.uc.Add(ctx, caller, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, h.label+": adăugat", rec)
}

func (h *RecordHandler[In, T]) Update(c *gin.Context) {
	var in In
	if !bindJSON(c, &in) {
		return
	}

	ctx, caller := callerContext(c)
	rec, err := h.uc.Update(ctx, caller, c.Param("id"), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+": actualizat", rec)
}

func (h *RecordHandler[In, T]) Delete(c *gin.Context) {
	ctx, caller := callerContext(c)
	if err := h.uc.Delete(ctx, caller, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+": șters", nil)
}
