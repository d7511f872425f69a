package middleware

import (
	"strings"

	"jobmatch-backend/internal/delivery/http/response"
	"jobmatch-backend/internal/domain"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/auth"
	"jobmatch-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	callerKey       = "Caller"
	authCookieName  = "auth_token"
	msgLoginNeeded  = "Trebuie să fii autentificat pentru a continua"
	msgInvalidToken = "Sesiune invalidă sau expirată"
)

// TokenVerifier checks a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// bearerToken reads the token from the Authorization header, then from the
// auth_token cookie.
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

func setCaller(c *gin.Context, id auth.Identity) {
	caller := domain.Caller{IdentityID: id.Subject, Email: id.Email, Name: id.Name}
	c.Set(callerKey, caller)
	c.Set(string(domain.KeyUserID), caller.IdentityID)
	c.Set(string(domain.KeyUserEmail), caller.Email)
	c.Set(string(domain.KeyUserName), caller.Name)
}

func reject(c *gin.Context, audit *security.SecurityLogger, message, reason string) {
	audit.LogTokenRejected(c.Request.Context(), c.ClientIP(), c.GetString(response.RequestIDKey), reason)
	response.AppError(c, apperror.Unauthenticated(message))
	c.Abort()
}

// RequireAuth lets only requests with a valid token through.
func RequireAuth(verifier TokenVerifier, audit *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			reject(c, audit, msgLoginNeeded, "missing")
			return
		}

		id, err := verifier.Verify(token)
		if err != nil {
			reject(c, audit, msgInvalidToken, err.Error())
			return
		}

		setCaller(c, id)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is present and lets
// anonymous requests through. A present but invalid token is still rejected.
func OptionalAuth(verifier TokenVerifier, audit *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		id, err := verifier.Verify(token)
		if err != nil {
			reject(c, audit, msgInvalidToken, err.Error())
			return
		}

		setCaller(c, id)
		c.Next()
	}
}

// GetCaller returns the caller set by the auth middlewares, or the
// anonymous caller.
func GetCaller(c *gin.Context) domain.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(domain.Caller); ok {
			return caller
		}
	}
	return domain.Caller{}
}
