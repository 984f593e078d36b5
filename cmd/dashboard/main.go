package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"nflpicks/internal/auth"
	"nflpicks/internal/config"
	cronrunner "nflpicks/internal/cron"
	"nflpicks/internal/handler"
	"nflpicks/internal/logger"
	filerepo "nflpicks/internal/repository/file"
	"nflpicks/internal/service"
	"nflpicks/internal/web"

	_ "nflpicks/docs"
)

func main() {
	cfgPath := os.Getenv("NFL_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("NFL_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	creds := auth.LoadCredentials(cfg.Auth.Users, os.Getenv)
	if len(creds) == 0 {
		logger.Fatal("no users configured; add auth.users to the config or set APP_USERS (user:pass,user2:pass2)")
	}
	sessions := auth.NewSessionStore(creds)

	repo := &filerepo.Repository{
		PredictionsPath: cfg.Data.PredictionsPath,
		ResultsPath:     cfg.Data.ResultsPath,
	}
	predictionsSvc := &service.PredictionsViewService{Repo: repo, Logger: logger}
	performanceSvc := &service.PerformanceViewService{Repo: repo, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(auth.RequireSession(sessions))

	healthHandler := &handler.HealthHandler{
		PredictionsPath: cfg.Data.PredictionsPath,
		ResultsPath:     cfg.Data.ResultsPath,
	}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)
	web.Register(engine)

	authHandler := &handler.AuthHandler{Store: sessions, Logger: logger}
	authHandler.Register(engine)
	predictionsHandler := &handler.PredictionsHandler{Service: predictionsSvc, Logger: logger}
	predictionsHandler.Register(engine)
	performanceHandler := &handler.PerformanceHandler{Service: performanceSvc, Logger: logger}
	performanceHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		watch := &service.DataWatchService{
			PredictionsPath: cfg.Data.PredictionsPath,
			ResultsPath:     cfg.Data.ResultsPath,
			Logger:          logger,
		}
		if _, err := cronRunner.Add(cfg.Cron.DataWatch, watch.Check); err != nil {
			logger.Warn("cron register data watch failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
