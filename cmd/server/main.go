package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"volunteerhub/config"
	_ "volunteerhub/docs" // swagger spec registration
	"volunteerhub/internal/adapters/auth"
	"volunteerhub/internal/adapters/cache"
	"volunteerhub/internal/adapters/email"
	httpdelivery "volunteerhub/internal/delivery/http"
	"volunteerhub/internal/delivery/http/controllers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository/memory"
	"volunteerhub/internal/repository/postgres"
	"volunteerhub/internal/services"
)

const serviceTimeout = 5 * time.Second

type repositories struct {
	users          domain.UserRepository
	profiles       domain.ProfileRepository
	events         domain.EventRepository
	signups        domain.SignupRepository
	participations domain.ParticipationRepository
	notifications  domain.NotificationRepository
	publicIDs      domain.PublicIDRepository
}

func newPostgresRepositories(db *sql.DB) repositories {
	return repositories{
		users:          postgres.NewUserRepository(db),
		profiles:       postgres.NewProfileRepository(db),
		events:         postgres.NewEventRepository(db),
		signups:        postgres.NewSignupRepository(db),
		participations: postgres.NewParticipationRepository(db),
		notifications:  postgres.NewNotificationRepository(db),
		publicIDs:      postgres.NewPublicIDRepository(db),
	}
}

func newMemoryRepositories() repositories {
	return repositories{
		users:          memory.NewUserRepository(),
		profiles:       memory.NewProfileRepository(),
		events:         memory.NewEventRepository(),
		signups:        memory.NewSignupRepository(),
		participations: memory.NewParticipationRepository(),
		notifications:  memory.NewNotificationRepository(),
		publicIDs:      memory.NewPublicIDRepository(),
	}
}

// @title           VolunteerHub API
// @version         1.0
// @description     Volunteer event management: matching, signups, participation history, and reports.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := config.NewLogger()
	logger.Info("starting volunteerhub", "env", cfg.Environment, "port", cfg.Port, "storage", cfg.StorageDriver)

	var repos repositories
	switch cfg.StorageDriver {
	case "memory":
		repos = newMemoryRepositories()
	default:
		db, err := postgres.Open(cfg.DBUrl)
		if err != nil {
			logger.Error("connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		repos = newPostgresRepositories(db)
	}

	matchCache, err := cache.NewMatchCache(cfg.RedisURL, cache.DefaultMatchTTL)
	if err != nil {
		logger.Error("connect to redis", "error", err)
		os.Exit(1)
	}
	if matchCache == nil {
		logger.Warn("redis not configured, auto-match results will not be cached")
	} else {
		defer matchCache.Close()
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("configure mailer", "error", err)
		os.Exit(1)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer, verifier := auth.NewJWTTokens(cfg.JWTSecret)

	notificationService := services.NewNotificationService(
		repos.notifications, repos.users, mailer, email.NewTemplateRenderer(), logger, serviceTimeout)
	authService := services.NewAuthService(
		repos.users, hasher, issuer, cfg.JWTExpiry, logger, serviceTimeout)
	eventService := services.NewEventService(
		repos.events, repos.profiles, notificationService, logger, serviceTimeout)
	profileService := services.NewProfileService(repos.profiles, serviceTimeout)
	matchingService := services.NewMatchingService(
		repos.events, repos.profiles, repos.participations, repos.signups, matchCache, logger, serviceTimeout)
	participationService := services.NewParticipationService(
		repos.participations, repos.events, repos.users, notificationService, matchCache, logger, serviceTimeout)
	reportService := services.NewReportService(
		repos.participations, repos.events, repos.users, serviceTimeout)
	resolver := services.NewPublicIDResolver(repos.publicIDs, serviceTimeout)

	ids := controllers.NewPublicIDs(resolver)
	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:          controllers.NewAuthController(logger, authService),
		Event:         controllers.NewEventController(logger, eventService, ids),
		Profile:       controllers.NewProfileController(logger, profileService),
		Matching:      controllers.NewMatchingController(logger, matchingService, participationService, ids),
		History:       controllers.NewHistoryController(logger, participationService, ids),
		Notifications: controllers.NewNotificationController(logger, notificationService),
		Reports:       controllers.NewReportController(logger, reportService),
	}, verifier)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server exited")
}
