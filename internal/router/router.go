package router

import (
	"time"

	"leadbook/internal/config"
	"leadbook/internal/handler"
	"leadbook/internal/middleware"
	"leadbook/internal/model"
	"leadbook/internal/repository"
	"leadbook/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	leadSvc := service.NewLeadService(leadRepo)
	bulkSvc := service.NewBulkService(leadRepo)
	adminSvc := service.NewAdminService(userRepo, leadRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	leadsH := handler.NewLeadsHandler(leadSvc, bulkSvc)
	adminH := handler.NewAdminHandler(adminSvc, rdb)
	schoolsH := handler.NewSchoolsHandler(leadSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		leads := v1.Group("/leads")
		{
			leads.POST("", leadsH.Create)
			leads.GET("/mine", leadsH.ListMine)
			// Unrestricted listing is admin only; ownership checks for
			// edit/delete live in the service via the policy engine.
			leads.GET("", middleware.RequireRole(model.RoleAdmin), leadsH.ListAll)
			leads.PUT("/:id", leadsH.Update)
			leads.DELETE("/:id", leadsH.Delete)
			// Gated by the per-account capability, not a role.
			leads.POST("/bulk", leadsH.BulkIngest)
		}

		v1.GET("/schools", schoolsH.List)

		admin := v1.Group("/admin", middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/users", adminH.ListUsers)
			admin.POST("/users", adminH.CreateUser)
			admin.DELETE("/users/:id", adminH.DeleteUser)
			admin.GET("/stats", adminH.Stats)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
