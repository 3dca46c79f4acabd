package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/field-scheduler/internal/audit"
	"github.com/BruksfildServices01/field-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/field-scheduler/internal/db"
	"github.com/BruksfildServices01/field-scheduler/internal/events"
	"github.com/BruksfildServices01/field-scheduler/internal/images"
	"github.com/BruksfildServices01/field-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
	"github.com/BruksfildServices01/field-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	deps := routes.Deps{
		DB:     db,
		Config: cfg,
		Audit:  auditDispatcher,
		Events: events.Nop{},
	}

	// ======================================================
	// OPTIONAL INTEGRATIONS
	// ======================================================
	if cfg.CacheEnabled() {
		rdb, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable, field cache falls back to the database: %v", err)
		}
		defer closeRedis(rdb)
		deps.Redis = rdb
	}

	if cfg.EventsEnabled() {
		pub, err := events.NewAMQPPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			log.Printf("rabbitmq disabled: %v", err)
		} else {
			defer pub.Close()
			deps.Events = pub
		}
	}

	if cfg.ImagesEnabled() {
		deps.Images = images.NewS3Store(images.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	auditDispatcher.Close()
}

func closeRedis(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
}
