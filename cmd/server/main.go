package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"coursehub/internal/auth"
	"coursehub/internal/cache"
	"coursehub/internal/config"
	"coursehub/internal/db"
	"coursehub/internal/handler"
	"coursehub/internal/repository"
	"coursehub/internal/router"
	"coursehub/internal/service"
	"coursehub/internal/validation"
)

const shutdownTimeout = 10 * time.Second

// @title Coursehub API
// @version 1.0
// @description Course catalog with token based authentication.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.DropAll(gormDB); err != nil {
			log.Printf("Warning: failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	if err := migrateSchema(gormDB, cfg); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CachePrefix)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Printf("Warning: redis unavailable, running without cache: %v", err)
	}
	cancelPing()

	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}
	validator, err := validation.New(cfg.Locale)
	if err != nil {
		log.Fatalf("validator: %v", err)
	}

	// Initialize repositories
	courseRepo := repository.NewCourseRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	enrollmentRepo := repository.NewEnrollmentRepository(gormDB)

	// Initialize services
	courseService := service.NewCourseService(courseRepo, enrollmentRepo, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)

	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		cfg,
		validator,
		jwtService,
		handler.NewCourseHandler(courseService),
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
	)

	if cfg.IsDevelopment() {
		log.Printf("Swagger documentation available at: %s", swaggerURL(cfg))
	}

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func migrateSchema(gormDB *gorm.DB, cfg *config.Config) error {
	switch cfg.DBMigrate {
	case config.MigrateAuto:
		return db.AutoMigrate(gormDB)
	case config.MigrateSQL:
		// The migrator is not closed: it shares the server's connection pool.
		m, err := db.NewMigrator(gormDB, cfg.DBDriver)
		if err != nil {
			return err
		}
		return db.MigrateUp(m)
	default:
		return nil
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/docs/index.html"
}
