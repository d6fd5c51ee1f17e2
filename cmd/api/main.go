package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"confcentral/config"
	authadapter "confcentral/internal/adapters/auth"
	"confcentral/internal/adapters/dispatch"
	"confcentral/internal/adapters/email"
	"confcentral/internal/adapters/rediscache"
	delivery "confcentral/internal/delivery/http"
	"confcentral/internal/delivery/http/controllers"
	"confcentral/internal/delivery/http/middleware"
	"confcentral/internal/domain"
	"confcentral/internal/repository/postgres"
	"confcentral/internal/services"
)

// @title Conference Central API
// @version 1.0
// @description Conference and session management with wishlists and derived announcements.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid redis url", "err", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	txManager := postgres.NewTxManager(db)

	// Adapters
	announcementCache := rediscache.NewAnnouncementCache(redisClient)
	tokenIssuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	mailer := email.NewMailer(cfg.Email, logger)
	emailService := email.NewEmailService(mailer)
	dispatcher := dispatch.NewDispatcher(logger)

	// Services
	authService := services.NewAuthService(profileRepo, hasher, tokenIssuer, cfg.TokenExpiry)
	profileService := services.NewProfileService(profileRepo)
	conferenceService := services.NewConferenceService(conferenceRepo, profileRepo, profileService, txManager, dispatcher)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo, speakerRepo, dispatcher)
	wishlistService := services.NewWishlistService(profileRepo, sessionRepo, profileService)
	speakerService := services.NewSpeakerService(speakerRepo)
	aggregateService := services.NewAggregateService(conferenceRepo, sessionRepo, speakerRepo, profileRepo, announcementCache)

	// Background jobs
	dispatcher.Register(domain.JobSendConfirmationEmail, func(ctx context.Context, payload map[string]string) error {
		return emailService.SendConferenceConfirmation(ctx, &domain.ConferenceConfirmationEmailData{
			Email:          payload["email"],
			ConferenceName: payload["conference_name"],
		})
	})
	dispatcher.Register(domain.JobSetFeaturedSpeaker, func(ctx context.Context, payload map[string]string) error {
		_, err := aggregateService.FeaturedSpeaker(ctx, payload["speaker_email"])
		return err
	})
	dispatcher.Register(domain.JobCacheAnnouncement, func(ctx context.Context, _ map[string]string) error {
		_, err := aggregateService.CacheAnnouncement(ctx)
		return err
	})

	// HTTP delivery
	router := delivery.NewRouter(delivery.Controllers{
		Auth:       controllers.NewAuthController(logger, authService),
		Profile:    controllers.NewProfileController(logger, profileService),
		Conference: controllers.NewConferenceController(logger, conferenceService),
		Session:    controllers.NewSessionController(logger, sessionService, wishlistService),
		Speaker:    controllers.NewSpeakerController(logger, speakerService),
		Aggregate:  controllers.NewAggregateController(logger, aggregateService),
	}, tokenVerifier)

	allowedOrigins := []string{"http://localhost:3000"}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = append(allowedOrigins, origins)
	}

	handler := middleware.CORS(allowedOrigins, middleware.LoggingMiddleware(logger, router))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	dispatcher.Wait()
	logger.Info("server stopped")
}
