package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobmatch-backend/config"
	_ "jobmatch-backend/docs" // Important for Swagger
	"jobmatch-backend/internal/delivery/http/middleware"
	v1 "jobmatch-backend/internal/delivery/http/v1"
	"jobmatch-backend/internal/repository/postgres"
	"jobmatch-backend/internal/usecase"
	"jobmatch-backend/pkg/auth"
	"jobmatch-backend/pkg/cache"
	"jobmatch-backend/pkg/database"
	"jobmatch-backend/pkg/logger"
	"jobmatch-backend/pkg/security"
	"jobmatch-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           JobMatch API
// @version         1.0
// @description     Job postings, applications and candidate CVs.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Env)
	logger.Log.Info("Starting JobMatch backend", "port", cfg.Port, "env", cfg.Env)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	audit := security.NewSecurityLogger("jobmatch-backend", cfg.Env)
	defer func() { _ = audit.Sync() }()

	// 3. Setup Database
	db, err := database.NewPostgresConnection(cfg.DBUrl, database.PoolConfig{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()

	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Error("Migration failed", "error", err)
			os.Exit(1)
		}
	}

	// 4. Setup Redis (optional)
	redisClient, err := cache.NewClient(cache.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		// the service still works without Redis, only slower
		logger.Log.Warn("Redis unavailable, caching disabled", "error", err)
	}
	pageCache := cache.New(redisClient, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	defer func() { _ = pageCache.Close() }()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	// 6. Setup UseCases
	validate := validation.New()
	health := map[string]usecase.Pinger{
		"database": usecase.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) }),
	}
	if pageCache.Enabled() {
		health["redis"] = pageCache
	}

	// 7. Setup Auth
	var jwks *auth.Provider
	if cfg.AuthJWKSURL != "" {
		jwks = auth.NewProvider(cfg.AuthJWKSURL)
	}

	limiter := middleware.NewRateLimiter(redisClient, audit)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go limiter.Cleanup(ctx, 5*time.Minute)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        usecase.NewAuthUsecase(userRepo, audit, validate),
		JobUC:         usecase.NewJobUsecase(jobRepo, applicationRepo, userRepo, pageCache, audit, validate),
		ApplicationUC: usecase.NewApplicationUsecase(applicationRepo, jobRepo, userRepo, audit, validate),
		ProfileUC:     usecase.NewProfileUsecase(userRepo, pageCache, validate),
		SkillUC:       usecase.NewSkillUsecase(postgres.NewSkillRepository(db), userRepo, pageCache, validate),
		EducationUC:   usecase.NewEducationUsecase(postgres.NewEducationRepository(db), userRepo, pageCache, validate),
		ExperienceUC:  usecase.NewExperienceUsecase(postgres.NewExperienceRepository(db), userRepo, pageCache, validate),
		ProjectUC:     usecase.NewProjectUsecase(postgres.NewProjectRepository(db), userRepo, pageCache, validate),
		HealthUC:      usecase.NewHealthUsecase(health),
		Verifier:      auth.NewVerifier(cfg.AuthJWTSecret, jwks),
		Audit:         audit,
		RateLimiter:   limiter,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
