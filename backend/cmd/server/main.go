package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"eventnet/backend/internal/api"
	"eventnet/backend/internal/graph"
	"eventnet/backend/internal/model"
	"eventnet/backend/internal/publisher"
	"eventnet/backend/pkg/config"
	apperrors "eventnet/backend/pkg/errors"
	"eventnet/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...", zap.String("env", cfg.Env))

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(apperrors.NewGraphConnectionFailed(cfg.Neo4jURI, err)))
	}
	defer driver.Close(context.Background())

	// Verify Neo4j connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(apperrors.NewGraphConnectionFailed(cfg.Neo4jURI, err)))
	}

	graphRepo := graph.NewRepository(driver, graph.WithDatabase(cfg.Neo4jDatabase))
	if msg, err := graphRepo.TestConnection(ctx); err == nil {
		log.Info(msg)
	}
	if err := graphRepo.EnsureConstraints(ctx); err != nil {
		log.Fatal("Failed to ensure graph constraints", zap.Error(err))
	}

	// Publisher is optional; the API runs without it
	var pub api.UserEventPublisher
	if p := newPublisher(ctx, cfg, log); p != nil {
		defer p.Close()
		pub = p
	}

	admins := model.NewAdminHolder()
	admins.Init(model.Person{})

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.NewHandler(graphRepo, pub, admins, logger.Named("api")))

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// newPublisher connects to Redis, or returns nil when publishing is
// disabled or the server cannot be reached
func newPublisher(ctx context.Context, cfg *config.Config, log *zap.Logger) *publisher.Publisher {
	if !cfg.PublishingEnabled() {
		log.Info("Redis publishing disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn("Invalid REDIS_URL, publishing disabled", zap.Error(err))
		return nil
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, publishing disabled", zap.String("addr", opts.Addr), zap.Error(err))
		client.Close()
		return nil
	}

	log.Info("Redis publishing enabled",
		zap.String("channel", cfg.UserCreatedChannel),
		zap.String("stream", cfg.UserEventsStream),
	)
	return publisher.NewPublisher(client, cfg.UserCreatedChannel, cfg.UserEventsStream)
}
