package v1

import (
	"net/http"
	"strings"

	"jobmatch-backend/internal/delivery/http/response"
	"jobmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) *AuthHandler {
	handler := &AuthHandler{authUC: authUC}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/sync", handler.SyncProfile)
		protectedAuth.GET("/me", handler.Me)
	}
	protected.PUT("/profile/role", handler.ChangeRole)
	return handler
}

// SyncRequest optionally overrides the display name carried by the token.
type SyncRequest struct {
	Name string `json:"name"`
}

// SyncProfile godoc
// @Summary      Sync the signed-in user
// @Description  Creates the local user on first sign-in (role JOB_SEEKER) and refreshes name and email afterwards.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SyncRequest  false  "Display name"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      401   {object}  response.Response
// @Router       /auth/sync [post]
// @Security     BearerAuth
func (h *AuthHandler) SyncProfile(c *gin.Context) {
	var req SyncRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	ctx, caller := callerContext(c)
	if name := strings.TrimSpace(req.Name); name != "" {
		caller.Name = name
	}

	user, err := h.authUC.SyncUser(ctx, caller)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil sincronizat", user)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	ctx, caller := callerContext(c)
	user, err := h.authUC.CurrentUser(ctx, caller)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Utilizator curent", user)
}

// ChangeRole godoc
// @Summary      Switch between JOB_SEEKER and EMPLOYER
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RoleInput  true  "Role"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      422   {object}  response.Response
// @Router       /profile/role [put]
// @Security     BearerAuth
func (h *AuthHandler) ChangeRole(c *gin.Context) {
	var in domain.RoleInput
	if !bindJSON(c, &in) {
		return
	}

	ctx, caller := callerContext(c)
	user, err := h.authUC.ChangeRole(ctx, caller, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rolul a fost actualizat", user)
}
