package v1

import (
	"time"

	"jobmatch-backend/config"
	"jobmatch-backend/internal/delivery/http/middleware"
	"jobmatch-backend/internal/domain"
	"jobmatch-backend/internal/usecase"
	"jobmatch-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	ProfileUC     domain.ProfileUsecase
	SkillUC       domain.RecordUsecase[domain.SkillInput, domain.Skill]
	EducationUC   domain.RecordUsecase[domain.EducationInput, domain.Education]
	ExperienceUC  domain.RecordUsecase[domain.ExperienceInput, domain.Experience]
	ProjectUC     domain.RecordUsecase[domain.ProjectInput, domain.Project]
	HealthUC      usecase.HealthUsecase
	Verifier      middleware.TokenVerifier
	Audit         *security.SecurityLogger
	RateLimiter   *middleware.RateLimiter
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil, deps.Audit)
	}
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimit(limiter, cfg.RateLimitGlobalThreshold, window))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	optional := middleware.OptionalAuth(deps.Verifier, deps.Audit)
	protected := middleware.RequireAuth(deps.Verifier, deps.Audit)

	v1 := r.Group("/v1")
	v1.Use(middleware.MutationRateLimit(limiter, cfg.RateLimitMutationThreshold, window))

	NewHealthHandler(v1, deps.HealthUC)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	optionalGroup := v1.Group("", optional)
	protectedGroup := v1.Group("", protected)
	{
		jobs := NewJobHandler(optionalGroup, protectedGroup, deps.JobUC)
		r.GET("/api/jobs", jobs.ListRaw)

		NewAuthHandler(protectedGroup, deps.AuthUC)
		NewApplicationHandler(protectedGroup, deps.ApplicationUC)
		NewProfileHandler(protectedGroup, deps.ProfileUC)
		NewRecordHandler(protectedGroup, "skills", "Competențe", deps.SkillUC)
		NewRecordHandler(protectedGroup, "education", "Educație", deps.EducationUC)
		NewRecordHandler(protectedGroup, "experiences", "Experiență", deps.ExperienceUC)
		NewRecordHandler(protectedGroup, "projects", "Proiecte", deps.ProjectUC)
	}

	return r
}
