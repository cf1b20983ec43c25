package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-platform/config"
	"blog-platform/handlers"
	"blog-platform/helper"
	"blog-platform/metrics"
	"blog-platform/middleware"
	"blog-platform/models"
	"blog-platform/repositories"
	"blog-platform/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ideasDocument = "ideas"
	postsDocument = "posts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewSugar(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	metricsObj, metricsHandler, err := metrics.Setup("blog-platform")
	if err != nil {
		logger.Fatalw("Failed to setup metrics", "error", err)
	}

	ideaStore, postStore, err := openStores(cfg, logger, metricsObj)
	if err != nil {
		logger.Fatalw("Failed to open document stores", "driver", cfg.Store.Driver, "error", err)
	}

	ctx := context.Background()
	if err := ideaStore.Ensure(ctx); err != nil {
		logger.Fatalw("Failed to prepare ideas document", "error", err)
	}
	if err := postStore.Ensure(ctx); err != nil {
		logger.Fatalw("Failed to prepare posts document", "error", err)
	}

	// Initialize repositories
	ideaRepo := repositories.NewIdeaRepository(ideaStore)
	postRepo := repositories.NewPostRepository(postStore)

	// Initialize services
	ideaService := services.NewIdeaService(ideaRepo, logger)
	postService := services.NewPostService(postRepo, logger)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper(logger)
	ideaHandler := handlers.NewIdeaHandler(ideaService, httpHelper)
	postHandler := handlers.NewPostHandler(postService, httpHelper)

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	mw := middleware.NewMiddleware(logger, metricsObj)
	router := gin.New()
	router.Use(
		mw.Recoverer(),
		mw.RequestID(),
		mw.RequestLogger(),
		mw.CORS(cfg.Security.CORSAllowedOrigins),
		mw.RateLimit(cfg.Security.RateLimitRPM),
	)

	handlers.RegisterRoutes(router, ideaHandler, postHandler)
	router.GET("/metrics", gin.WrapH(metricsHandler))

	logger.Infow("CORS configured", "allowed_origins", cfg.Security.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Infow("API server starting", "addr", server.Addr, "store", cfg.Store.Driver)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatalw("Server startup failed", "error", err)
	case sig := <-shutdown:
		logger.Infow("Shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Errorw("Graceful shutdown failed", "error", err)
			server.Close()
		}

		logger.Infow("Server stopped")
	}
}

func openStores(cfg *config.Config, logger *zap.SugaredLogger, m *metrics.Metrics) (
	repositories.DocumentStore[models.IdeasDocument],
	repositories.DocumentStore[models.PostsDocument],
	error,
) {
	if cfg.Store.Driver == config.DriverFile {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, err
		}
		logger.Infow("Using file document store", "data_dir", cfg.DataDir)
		return repositories.NewFileStore(ideasDocument, cfg.IdeasPath(), models.NewIdeasDocument, logger, m),
			repositories.NewFileStore(postsDocument, cfg.PostsPath(), models.NewPostsDocument, logger, m),
			nil
	}

	db, err := config.InitDB(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, nil, err
	}
	logger.Infow("Using database document store", "driver", cfg.Store.Driver)
	return repositories.NewGormStore(db, ideasDocument, models.NewIdeasDocument, logger, m),
		repositories.NewGormStore(db, postsDocument, models.NewPostsDocument, logger, m),
		nil
}
