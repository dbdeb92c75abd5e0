package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nodebucket/nodebucket/handlers"
	"github.com/nodebucket/nodebucket/internal/config"
	"github.com/nodebucket/nodebucket/internal/database"
	"github.com/nodebucket/nodebucket/internal/employee/handler"
	"github.com/nodebucket/nodebucket/internal/employee/repository"
	"github.com/nodebucket/nodebucket/internal/employee/service"
	"github.com/nodebucket/nodebucket/internal/storage"
	"github.com/nodebucket/nodebucket/pkg/logger"
	"github.com/nodebucket/nodebucket/pkg/metrics"
	"github.com/nodebucket/nodebucket/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

// pinger is satisfied by every optional dependency the readiness probe checks.
type pinger interface {
	Ping(ctx context.Context) error
}

// app bundles what the router needs. redis and archive are nil when not
// configured.
type app struct {
	cfg     *config.Config
	svc     service.Service
	redis   *redis.Client
	archive *storage.MinIOStorage
}

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v archive=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Archive.Endpoint != "")
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	a := &app{cfg: cfg}

	if addr := cfg.Redis.Addr(); addr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis: %s", addr)
		}
		defer a.redis.Close()
	}

	if cfg.Archive.Endpoint != "" {
		st, err := storage.NewMinIOStorage(ctx, cfg.Archive)
		if err != nil {
			logger.Warnf("employee archive disabled: %v", err)
		} else {
			a.archive = st
			logger.Infof("archiving deleted employees to %s/%s", cfg.Archive.Endpoint, cfg.Archive.Bucket)
		}
	}

	opts := []service.Option{
		service.WithMaxTextLength(cfg.Tasks.MaxTextLength),
		service.WithNumericIDs(cfg.Tasks.NumericEmployeeIDs),
	}
	if a.archive != nil {
		opts = append(opts, service.WithArchiver(a.archive))
	}

	var client *mongo.Client
	if cfg.MongoDB.URI != "" {
		client, err = database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts, time.Second)
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		repo := repository.NewMongoRepo(client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Fatalf("failed to create indexes: %v", err)
		}
		a.svc = service.New(repo, opts...)
		logger.Infof("using MongoDB %s/%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
	} else {
		logger.Warnf("MONGODB_URI not set; using in-memory employee store")
		a.svc = service.NewMemoryService(opts...)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := a.router()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("nodebucket listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

func (a *app) router() *gin.Engine {
	r := gin.New()

	// Lightweight CORS for the browser client.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(middleware.SessionMiddleware(a.cfg.Session.CookieName))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", a.ready)

	handlers.RegisterSwagger(r)

	api := r.Group("/")
	if a.cfg.RateLimit.Enabled {
		if a.cfg.RateLimit.UseRedis && a.redis != nil {
			win := time.Duration(a.cfg.RateLimit.WindowSeconds) * time.Second
			api.Use(middleware.RedisRateLimitMiddleware(a.redis, a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst, win))
		} else {
			api.Use(middleware.RateLimitMiddleware(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst))
		}
	}
	handler.RegisterEmployeeRoutes(api, a.svc)
	handlers.NewSessionHandler(a.cfg.Session, a.svc).Register(api)
	return r
}

// ready reports 200 only when the employee store answers. Redis and the
// archive are reported but only fail readiness when something depends on
// them.
func (a *app) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ready := true
	deps := map[string]bool{}

	deps["store"] = check(ctx, a.svc)
	ready = ready && deps["store"]

	if a.redis != nil {
		deps["redis"] = a.redis.Ping(ctx).Err() == nil
		if a.cfg.RateLimit.Enabled && a.cfg.RateLimit.UseRedis && !deps["redis"] {
			ready = false
		}
	}
	if a.archive != nil {
		deps["archive"] = check(ctx, a.archive)
		ready = ready && deps["archive"]
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
}

func check(ctx context.Context, p pinger) bool {
	if err := p.Ping(ctx); err != nil {
		logger.Warnf("readiness: %v", err)
		return false
	}
	return true
}
