package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/allowlist"
	"github.com/cse-connect/connect-backend/internal/api"
	"github.com/cse-connect/connect-backend/internal/config"
	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/db"
	"github.com/cse-connect/connect-backend/internal/firebase"
	"github.com/cse-connect/connect-backend/internal/metrics"
	"github.com/cse-connect/connect-backend/internal/middleware"
	"github.com/cse-connect/connect-backend/internal/sms"
	"github.com/cse-connect/connect-backend/pkg/cache"
	"github.com/cse-connect/connect-backend/pkg/messagequeue"
)

func main() {
	// .env is a development convenience; production sets the environment.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Error loading .env file:", err)
		}
	}

	zapLogger, err := newLogger(os.Getenv("GIN_MODE"))
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}

	members, err := allowlist.LoadMembers(appConfig.MembersFile)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load member list", zap.String("path", appConfig.MembersFile), zap.Error(err))
	}
	zapLogger.Info("Member list loaded", zap.Int("members", members.Len()))

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()

	fbApp, err := firebase.InitFirebase(initCtx, appConfig)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	clients, err := db.NewClients(initCtx, fbApp)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to open Firestore and Auth clients", zap.Error(err))
	}
	defer clients.Close()
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized", zap.String("projectID", appConfig.FirebaseProjectID))

	// --- Repositories ---
	fs := clients.Firestore
	userRepo := db.NewFirestoreUserRepository(fs)
	feedRepo := db.NewFirestoreFeedRepository(fs)
	qaRepo := db.NewFirestoreQARepository(fs)
	chatRepo := db.NewFirestoreChatRepository(fs)
	alertRepo := db.NewFirestoreAlertRepository(fs)
	zenRepo := db.NewFirestoreZenRepository(fs)
	allowlistRepo := db.NewFirestoreAllowlistRepository(fs)

	gate := allowlist.NewGate(members, allowlistRepo)

	// --- Optional infrastructure ---
	var sender sms.Sender
	if appConfig.SMSConfigured() {
		sender = sms.NewTwilioSender(appConfig.TwilioAccountSID, appConfig.TwilioAuthToken, appConfig.TwilioFromNumber, zapLogger.Sugar())
		zapLogger.Info("SMS gateway configured")
	} else {
		zapLogger.Warn("SMS gateway NOT configured: broadcasts will be recorded as skipped")
	}

	var limiter cache.Limiter = cache.Unlimited{}
	if appConfig.RedisAddr != "" {
		redisLimiter, closeRedis, err := cache.NewRedisLimiter(initCtx, cache.RedisConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		}, "cseconnect:broadcast", appConfig.BroadcastRateLimit, appConfig.BroadcastRateWindow)
		if err != nil {
			zapLogger.Warn("Broadcast rate limiting disabled", zap.Error(err))
		} else {
			defer closeRedis()
			limiter = redisLimiter
			zapLogger.Info("Broadcast rate limiting enabled", zap.Int("limit", appConfig.BroadcastRateLimit), zap.Duration("window", appConfig.BroadcastRateWindow))
		}
	}

	var publisher messagequeue.Publisher = messagequeue.Discard{}
	if appConfig.RabbitMQURL != "" {
		rabbit, err := messagequeue.NewRabbitMQPublisher(messagequeue.RabbitMQConfig{URL: appConfig.RabbitMQURL})
		if err != nil {
			zapLogger.Warn("Broadcast events disabled", zap.Error(err))
		} else {
			defer rabbit.Close()
			publisher = rabbit
			zapLogger.Info("Broadcast events enabled", zap.String("queue", appConfig.RabbitMQAlertsQueue))
		}
	}

	// --- Services ---
	userService := core.NewUserService(userRepo, members, zapLogger)
	alertService := core.NewAlertService(core.AlertDeps{
		Alerts:    alertRepo,
		Users:     userRepo,
		Allowlist: gate,
		Sender:    sender,
		Publisher: publisher,
		Queue:     appConfig.RabbitMQAlertsQueue,
		Limiter:   limiter,
		Logger:    zapLogger,
	})
	services := api.Services{
		Access:   core.NewAccessService(gate, userService, clients.Auth, zapLogger),
		Users:    userService,
		Feed:     core.NewFeedService(feedRepo, zapLogger),
		Projects: core.NewProjectService(db.NewProjectStore(fs)),
		QA:       core.NewQAService(qaRepo),
		Links:    core.NewLinkService(db.NewLinkStore(fs)),
		Tubes:    core.NewTubeService(db.NewTubeStore(fs)),
		Chat:     core.NewChatService(chatRepo),
		Alerts:   alertService,
		Zen:      core.NewZenService(zenRepo, core.NewQuoteSlateClient(appConfig.ZenQuoteAPIURL), appConfig.ZenAutoInterval, zapLogger),
	}

	// --- HTTP ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig.ClientURL))
	if appConfig.MetricsEnabled {
		metrics.MustRegister(prometheus.DefaultRegisterer)
		router.Use(metrics.GinMiddleware())
	}

	authMW := middleware.NewAuthMiddleware(clients.Auth, zapLogger)
	api.SetupRoutes(router, appConfig, zapLogger, authMW, gate, services)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully.")
}

func newLogger(ginMode string) (*zap.Logger, error) {
	if strings.ToLower(ginMode) == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
