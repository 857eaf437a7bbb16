package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blkout_community_go/internal/config"
	"blkout_community_go/internal/handler"
	"blkout_community_go/internal/repository"
	"blkout_community_go/internal/service"
	"blkout_community_go/pkg/database"
	"blkout_community_go/pkg/log"
	"blkout_community_go/pkg/search"
	"blkout_community_go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Init("configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	log.Info("Server starting")

	database.InitMySQL(cfg.Database.MySQL.DSN)
	if err := database.RunMigrate(); err != nil {
		log.Fatal("Failed to run migrations", err)
		return
	}
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)

	// Search is optional; without it the resource search endpoint returns 503
	// and knowledge sync only writes the database.
	var index service.ResourceIndex
	if cfg.Search.Enabled {
		client, err := search.NewClient(cfg.Search.Addresses, cfg.Search.ResourceIndex)
		if err != nil {
			log.Fatal("Failed to connect to Elasticsearch", err)
			return
		}
		index = client
	}

	jwtManager := token.NewJWTManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpireHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshTokenExpireDays)*24*time.Hour,
	)

	eventRepo := repository.NewEventRepository(database.DB)
	articleRepo := repository.NewArticleRepository(database.DB)
	knowledgeRepo := repository.NewKnowledgeRepository(database.DB)
	ratingRepo := repository.NewRatingRepository(database.DB)
	outboxRepo := repository.NewOutboxRepository(database.DB)
	moderatorRepo := repository.NewModeratorRepository(database.DB)

	submissionService := service.NewSubmissionService(eventRepo, articleRepo)
	moderationService := service.NewModerationService(eventRepo, articleRepo)
	knowledgeService := service.NewKnowledgeService(eventRepo, articleRepo, knowledgeRepo, index)
	ratingService := service.NewRatingService(ratingRepo, database.RDB)
	chatService := service.NewChatService()
	authService := service.NewAuthService(moderatorRepo, jwtManager, database.RDB)
	notifier := service.NewWebhookNotifier(
		cfg.Webhook.BlkouthubURL,
		time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second,
	)

	if err := authService.EnsureDefaultAdmin(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("Failed to seed admin account", err)
		return
	}

	worker := service.NewOutboxWorker(
		outboxRepo,
		knowledgeService,
		notifier,
		time.Duration(cfg.Outbox.PollIntervalSeconds)*time.Second,
		cfg.Outbox.BatchSize,
		cfg.Outbox.MaxAttempts,
	)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	workerDone := make(chan struct{})
	go func() {
		worker.Start(workerCtx)
		close(workerDone)
	}()

	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(handler.RouterDeps{
		SubmissionService: submissionService,
		ModerationService: moderationService,
		KnowledgeService:  knowledgeService,
		RatingService:     ratingService,
		ChatService:       chatService,
		AuthService:       authService,
		JWTManager:        jwtManager,
		N8NSecret:         cfg.Webhook.N8NSecret,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received, stopping...")

	// Stop claiming new outbox tasks and wait for the in-flight batch, so
	// claimed tasks are marked done or failed rather than stranded in
	// processing, before the HTTP server drains.
	stopWorker()
	<-workerDone

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP server shutdown failed: %v", err)
	}

	log.Info("Server stopped cleanly")
}
