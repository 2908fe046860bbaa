package main

import (
	"context"
	"net/http"
	"time"

	"velvet-backend/internal/billing"
	"velvet-backend/internal/config"
	"velvet-backend/internal/database"
	"velvet-backend/internal/handlers"
	"velvet-backend/internal/logger"
	customMiddleware "velvet-backend/internal/middleware"
	"velvet-backend/internal/notify"
	"velvet-backend/internal/repository"
	"velvet-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("production", "info")
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	logger.Init(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	// Connect to MongoDB
	if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepo()
	sessionRepo := repository.NewSessionRepo()
	girlRepo := repository.NewGirlRepo()
	entryRepo := repository.NewEntryRepo()

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("failed to create user indexes", zap.Error(err))
	}
	if err := sessionRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("failed to create session indexes", zap.Error(err))
	}
	if err := girlRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("failed to create girl indexes", zap.Error(err))
	}
	if err := entryRepo.EnsureIndexes(ctx); err != nil {
		logger.Warn("failed to create entry indexes", zap.Error(err))
	}

	// Initialize services
	notifier := notify.NewLogNotifier()
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.SessionDuration(), cfg.Environment)
	migration := service.NewMigrationService(sessionRepo, girlRepo, entryRepo, database.WithTransaction, notifier)
	dataService := service.NewOnboardingService(girlRepo, entryRepo, migration)

	// Billing provider: mock client when no API base is configured
	var billingClient billing.Client
	if cfg.BillingAPIURL != "" {
		billingClient = billing.NewHTTPClient(cfg.BillingAPIURL, cfg.BillingAPIKey)
	} else {
		logger.Warn("BILLING_API_URL not set, using mock billing client")
		billingClient = billing.NewMockClient()
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret, cfg.ResendAPIKey, cfg.FromEmail)
	onboardingHandler := handlers.NewOnboardingHandler(authService, dataService)
	billingHandler := handlers.NewBillingHandler(billingClient)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"velvet-backend"}`))
	})

	// Billing endpoints (independent of the onboarding flow)
	r.Post("/billing/portal", billingHandler.CreatePortalSession)
	r.Post("/billing/verify", billingHandler.VerifySubscription)

	// Onboarding surface, gated by the feature flag
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.FeatureGate(cfg.OnboardingEnabled, cfg.HomeURL))

		// Anonymous sign-up needs no prior auth
		r.Post("/onboarding/session", authHandler.CreateAnonymousSession)

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.JWTAuth(cfg.JWTSecret))

			r.Get("/onboarding/session", onboardingHandler.GetCurrentSession)
			r.Patch("/onboarding/step", onboardingHandler.UpdateStep)
			r.Post("/onboarding/girls", onboardingHandler.SaveGirl)
			r.Patch("/onboarding/girls/{id}", onboardingHandler.UpdateGirl)
			r.Get("/onboarding/girls", onboardingHandler.GetGirl)
			r.Post("/onboarding/entries", onboardingHandler.SaveDataEntry)
			r.Get("/onboarding/entries", onboardingHandler.GetDataEntry)
			r.Post("/onboarding/complete", onboardingHandler.CompleteOnboarding)

			r.Post("/auth/convert", authHandler.ConvertToPermanent)
			r.Get("/auth/status", authHandler.GetStatus)
		})
	})

	// Start server
	logger.Info("velvet backend starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
