package main

import (
	"context"
	"errors"
	"log"
	"os"

	"coursehub/internal/auth"
	"coursehub/internal/config"
	"coursehub/internal/db"
	apperrors "coursehub/internal/errors"
	"coursehub/internal/model"
	"coursehub/internal/repository"
	"coursehub/internal/service"
)

var sampleCourses = []struct {
	title       string
	description string
}{
	{"Node.js Fundamentals", "Event loop, modules and the npm ecosystem."},
	{"Go for Backend Developers", "Building HTTP services with the standard toolchain."},
	{"Relational Databases", "Modelling, indexing and querying with SQL."},
	{"React Native Basics", "Cross-platform mobile apps with React."},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if cfg.DBMigrate == config.MigrateAuto {
		err = db.AutoMigrate(gormDB)
	} else {
		m, mErr := db.NewMigrator(gormDB, cfg.DBDriver)
		if mErr != nil {
			log.Fatalf("Failed to init migrations: %v", mErr)
		}
		err = db.MigrateUp(m)
	}
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(repository.NewUserRepository(gormDB), jwtService)
	courseRepo := repository.NewCourseRepository(gormDB)

	password := getEnv("SEED_PASSWORD", "changeme123")
	users := []struct {
		name  string
		email string
		role  model.Role
	}{
		{"Course Manager", getEnv("SEED_MANAGER_EMAIL", "manager@coursehub.local"), model.RoleManager},
		{"Sample Student", getEnv("SEED_STUDENT_EMAIL", "student@coursehub.local"), model.RoleStudent},
	}
	for _, u := range users {
		_, err := authService.Register(ctx, u.name, u.email, password, u.role)
		switch {
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			log.Printf("User %s already exists, skipping", u.email)
		case err != nil:
			log.Fatalf("Failed to create user %s: %v", u.email, err)
		default:
			log.Printf("Created %s %s", u.role, u.email)
		}
	}

	_, total, err := courseRepo.List(ctx, model.CourseFilter{OrderBy: model.CourseOrderTitle, Limit: 1})
	if err != nil {
		log.Fatalf("Failed to count courses: %v", err)
	}
	if total > 0 {
		log.Printf("%d courses already present, skipping course seed", total)
		return
	}

	created := 0
	for _, c := range sampleCourses {
		description := c.description
		if err := courseRepo.Create(ctx, &model.Course{Title: c.title, Description: &description}); err != nil {
			log.Printf("Failed to create course %q: %v", c.title, err)
			continue
		}
		created++
	}
	log.Printf("Seed completed: %d courses created", created)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
