package v1

import (
	"net/http"

	"jobmatch-backend/internal/delivery/http/response"
	"jobmatch-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(r *gin.RouterGroup, healthUC usecase.HealthUsecase) *HealthHandler {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Check)
	return handler
}

// Check godoc
// @Summary      Health check
// @Description  Pings the database and, when configured, Redis.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	checks, ok := h.healthUC.Check(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusServiceUnavailable, "degraded", checks)
		return
	}
	response.Success(c, http.StatusOK, "System operational", checks)
}
