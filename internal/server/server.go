// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"mirador/internal/auth"
	"mirador/internal/cache"
	"mirador/internal/config"
	"mirador/internal/database"
	"mirador/internal/middleware"
	"mirador/internal/models"
	"mirador/internal/repository"
	"mirador/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.Manager
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	reportRepo     repository.ReportRepository
	accounts       *service.AccountService
	posts          *service.PostService
	moderation     *service.ModerationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("mirador-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		tokens:         auth.NewManager(cfg.JWTSecret, cfg.TokenExpiry()),
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		reportRepo:     reportRepo,
	}
	server.accounts = service.NewAccountService(userRepo)
	server.posts = service.NewPostService(postRepo, commentRepo, reportRepo, server.isAdminByUserID)
	server.moderation = service.NewModerationService(userRepo, postRepo, commentRepo, reportRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Distributed tracing (no-op tracer unless tracing was initialized)
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID, User ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on errors.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded images
	app.Static("/uploads", s.config.UploadDir)

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	authRoutes.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	authRoutes.Get("/me", s.AuthRequired(), s.GetMe)

	// Public post routes (feed browsing works logged out)
	publicPosts := api.Group("/posts")
	publicPosts.Get("/", s.GetPosts)
	publicPosts.Get("/:id/comments", s.GetComments)
	publicPosts.Get("/:id", s.GetPost)
	api.Get("/users/:id/posts", s.GetUserPosts)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	users := protected.Group("/users")
	users.Put("/me", s.UpdateMyProfile)

	posts := protected.Group("/posts")
	posts.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_post"), s.CreatePost)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	posts.Put("/:id/like", s.ToggleLike)
	posts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	posts.Post("/:id/report", middleware.RateLimit(
		s.redis, 5, time.Minute, "report_post"), s.ReportPost)
	posts.Delete("/:id", s.DeletePost)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/stats", s.GetAdminStats)
	admin.Get("/users", s.GetAdminUsers)
	admin.Put("/users/:id/block", s.ToggleUserBlock)
	admin.Delete("/users/:id", s.DeleteUser)
	admin.Get("/posts/reported", s.GetReportedPosts)
	admin.Get("/posts/:id/reports", s.GetPostReports)
	admin.Get("/posts", s.GetAdminPosts)
	admin.Put("/posts/:id/block", s.TogglePostBlock)
	admin.Delete("/posts/:id", s.DeleteAdminPost)
}

// EnsureAdmin creates or promotes the bootstrap admin account configured via
// ADMIN_EMAIL and ADMIN_PASSWORD. Safe to call on every startup.
func (s *Server) EnsureAdmin(ctx context.Context) error {
	return s.accounts.EnsureAdmin(ctx, s.config.AdminEmail, s.config.AdminPassword, s.config.AdminName)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app degrades gracefully without Redis; readiness reports it but
		// only the database gates overall health.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns middleware that validates the bearer token and
// re-checks the account's live state, so a block takes effect on the next
// request even for tokens issued before the block.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return models.RespondError(c,
				models.NewInvalidTokenError("Authorization required"))
		}

		userID, err := s.tokens.Verify(tokenString)
		if err != nil {
			return models.RespondError(c, err)
		}

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			// A token for a deleted account is just an invalid token.
			return models.RespondError(c,
				models.NewInvalidTokenError("Invalid or expired token"))
		}
		if !user.CanAct() {
			return models.RespondError(c, models.NewBlockedError(user.BlockReason))
		}

		// Store user ID in context
		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondError(c,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it. Used by public reads to mark liked posts. A token for
// a deleted, blocked or deactivated account is treated as anonymous, so such
// accounts get no owner privileges on public reads.
func (s *Server) optionalUserID(c *fiber.Ctx) uint {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return 0
	}
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return 0
	}
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil || !user.CanAct() {
		return 0
	}
	return userID
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Mirador API",
		BodyLimit: 10 * 1024 * 1024, // 10MB upload limit
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
