package v1

import (
	"context"

	"jobmatch-backend/internal/delivery/http/middleware"
	"jobmatch-backend/internal/domain"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const msgBadRequest = "Cererea nu a putut fi citită"

// bindJSON decodes the body into dst, pushing a BadRequest on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperror.BadRequest(msgBadRequest))
		return false
	}
	return true
}

// callerContext returns the request context, tagged with the caller for
// logging, and the caller itself.
func callerContext(c *gin.Context) (context.Context, domain.Caller) {
	caller := middleware.GetCaller(c)
	ctx := c.Request.Context()
	if caller.Authenticated() {
		ctx = logger.WithUserID(ctx, caller.IdentityID)
	}
	return ctx, caller
}
