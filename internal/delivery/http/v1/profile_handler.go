package v1

import (
	"net/http"

	"jobmatch-backend/internal/delivery/http/response"
	"jobmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) *ProfileHandler {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := protected.Group("/profile")
	{
		profile.GET("", handler.Get)
		profile.PUT("", handler.Update)
		profile.GET("/cv", handler.CV)
	}
	return handler
}

// Get godoc
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	ctx, caller := callerContext(c)
	user, err := h.profileUC.GetProfile(ctx, caller)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profil", user)
}

// Update godoc
// @Summary      Update name and profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ProfileInput  true  "Profile"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      422   {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	var in domain.ProfileInput
	if !bindJSON(c, &in) {
		return
	}

	ctx, caller := callerContext(c)
	user, err := h.profileUC.UpdateProfile(ctx, caller, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profilul a fost actualizat", user)
}

// CV godoc
// @Summary      Own CV
// @Description  Profile with experience, education and projects (newest first) and skills by name.
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Router       /profile/cv [get]
// @Security     BearerAuth
func (h *ProfileHandler) CV(c *gin.Context) {
	ctx, caller := callerContext(c)
	cv, err := h.profileUC.GetCV(ctx, caller)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV", cv)
}
