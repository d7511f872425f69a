package middleware

import (
	"errors"
	"net/http"

	"jobmatch-backend/internal/delivery/http/response"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const msgUnexpected = "A apărut o eroare neașteptată. Te rugăm să încerci din nou."

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.ErrorContext(c.Request.Context(), "request failed", "kind", appErr.Kind, "error", appErr.Unwrap())
			}
			response.AppError(c, appErr)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.ErrorContext(c.Request.Context(), "unhandled error", "error", err)
		response.Error(c, http.StatusInternalServerError, msgUnexpected, nil)
	}
}
