package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"

	"github.com/campus-ease/presence/internal/api/docs"
	"github.com/campus-ease/presence/internal/api/handler"
	"github.com/campus-ease/presence/internal/api/middleware"
	"github.com/campus-ease/presence/internal/config"
	"github.com/campus-ease/presence/internal/gallery"
	"github.com/campus-ease/presence/internal/provider"
	"github.com/campus-ease/presence/internal/repository"
	"github.com/campus-ease/presence/internal/service"
)

type Dependencies struct {
	Config    *config.Config
	Extractor provider.Extractor
	DB        *pgxpool.Pool
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	gallery     *gallery.Cache
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Presence API",
		BodyLimit:    32 * 1024 * 1024, // class photos plus training batches
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health endpoints
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	v1 := r.app.Group("/v1")

	// Only configure the full surface when dependencies were provided
	if r.deps != nil {
		cfg := r.deps.Config

		r.rateLimiter = middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig(cfg.RateLimitPerMinute))
		v1.Use(r.rateLimiter.Handler())

		// Repositories
		personRepo := repository.NewPersonRepository(r.deps.DB)
		attendanceRepo := repository.NewAttendanceRepository(r.deps.DB)
		logRepo := repository.NewRecognitionLogRepository(r.deps.DB)
		rosterRepo := repository.NewRosterRepository(r.deps.DB)

		// Gallery cache over the person store
		r.gallery = gallery.New(personRepo, r.logger, cfg.EmbeddingDim, cfg.GalleryCacheTTL)

		// Services
		enrollmentService := service.NewEnrollmentService(personRepo, r.deps.Extractor, r.gallery, r.logger, cfg.SimilarityThreshold, cfg.EmbeddingDim)
		recognitionService := service.NewRecognitionService(r.gallery, r.deps.Extractor, rosterRepo, attendanceRepo, logRepo, r.logger, cfg.SimilarityThreshold, cfg.MaxFacesPerImage)
		personService := service.NewPersonService(personRepo, attendanceRepo, r.gallery, r.logger, cfg.SimilarityThreshold, cfg.EmbeddingDim)

		// Handlers
		enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService, r.logger)
		recognitionHandler := handler.NewRecognitionHandler(recognitionService, r.logger)
		personHandler := handler.NewPersonHandler(personService, r.logger)

		v1.Post("/enrollments", enrollmentHandler.Enroll)
		v1.Post("/recognitions", recognitionHandler.Recognize)
		v1.Post("/attendance", recognitionHandler.SaveAttendance)
		v1.Get("/persons/search", personHandler.Search)
		v1.Get("/persons/:roster_id/training-status", personHandler.TrainingStatus)
		v1.Get("/persons/:roster_id/attendance", personHandler.AttendanceHistory)
		v1.Delete("/persons/:roster_id", personHandler.Delete)
		v1.Get("/system/stats", personHandler.Stats)
	}
}

// Gallery exposes the cache for warmup at startup
func (r *Router) Gallery() *gallery.Cache {
	return r.gallery
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown(ctx context.Context) error {
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.ShutdownWithContext(ctx)
}
