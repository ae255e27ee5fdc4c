package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lungscan/scan-api/internal/api/handler"
	"github.com/lungscan/scan-api/internal/api/middleware"
	"github.com/lungscan/scan-api/internal/core/ports"
	"github.com/lungscan/scan-api/internal/core/service"
	"github.com/lungscan/scan-api/internal/infrastructure/config"
	mongodb "github.com/lungscan/scan-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lungscan/scan-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// db and rdb may be nil (degraded start / no cache configured); the affected
// endpoints then answer 503 instead of failing at startup.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, classifier ports.Classifier, files ports.FileStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("lungscan"))

	// --- Dependencies ---
	var doctorRepo ports.DoctorRepository
	var patientRepo ports.PatientRepository
	var scanRepo ports.ScanRepository
	if db != nil {
		doctorRepo = mongodb.NewDoctorRepository(db)
		patientRepo = mongodb.NewPatientRepository(db)
		scanRepo = mongodb.NewScanRepository(db)
	}

	var statsCache service.StatsCache
	if rdb != nil {
		statsCache = redisdb.NewStatsCache(rdb)
	}

	authService := service.NewAuthService(doctorRepo, cfg.JWTSecret, 24*time.Hour, log)
	recordService := service.NewRecordService(scanRepo, patientRepo, files, statsCache, log)
	predictionService := service.NewPredictionService(classifier, log)

	authHandler := handler.NewAuthHandler(authService)
	predictHandler := handler.NewPredictHandler(predictionService)
	recordHandler := handler.NewRecordHandler(recordService)
	patientHandler := handler.NewPatientHandler(recordService)

	// Bypass engages on the explicit flag, or when running without a
	// database (no doctor accounts to authenticate against).
	requireAuth := middleware.Auth(authService, cfg.DisableAuth || db == nil)

	// --- Public routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	e.POST("/predict", predictHandler.Predict, requireAuth)
	e.POST("/save-record", recordHandler.Save, requireAuth)
	e.GET("/history", recordHandler.History, requireAuth)
	e.GET("/history/:patient_id", recordHandler.PatientHistory, requireAuth)
	e.GET("/stats", recordHandler.Stats, requireAuth)
	e.GET("/patients", patientHandler.List, requireAuth)
	e.POST("/patients", patientHandler.Add, requireAuth)
	e.GET("/patients/:patient_id", patientHandler.Get, requireAuth)
	e.GET("/doctor/profile", authHandler.Profile, requireAuth)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
