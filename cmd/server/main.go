package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"bafs/internal/adapters/cache"
	emailPkg "bafs/internal/adapters/email"
	web "bafs/internal/adapters/http"
	"bafs/internal/adapters/storage"
	auditStorePkg "bafs/internal/adapters/storage/audit"
	companyStorePkg "bafs/internal/adapters/storage/company"
	gameStorePkg "bafs/internal/adapters/storage/game"
	materialStorePkg "bafs/internal/adapters/storage/material"
	profileStorePkg "bafs/internal/adapters/storage/profile"
	workStorePkg "bafs/internal/adapters/storage/work"
	"bafs/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set variables in the environment.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("BAFS_DB", "bafs.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	profiles := profileStorePkg.NewSQLiteStore(db)
	stores := &web.Stores{
		ProfileStore:  profiles,
		CompanyStore:  companyStorePkg.NewSQLiteStore(db),
		GameStore:     gameStorePkg.NewSQLiteStore(db),
		WorkStore:     workStorePkg.NewSQLiteStore(db),
		MaterialStore: materialStorePkg.NewSQLiteStore(db),
		AuditStore:    auditStorePkg.NewSQLiteStore(db),
	}

	// Seed the first admin profile on an empty database
	adminID := envOrDefault("BAFS_ADMIN_ID", "admin")
	adminPassword := envOrDefault("BAFS_ADMIN_PASSWORD", "change-me-now")
	seedDeps := orchestrators.CreateProfileDeps{ProfileStore: profiles}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminID, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("BAFS_RESEND_KEY")
	notifyEmail := os.Getenv("BAFS_NOTIFY_EMAIL")
	if resendKey != "" {
		emailFrom := envOrDefault("BAFS_RESEND_FROM", "BAFS Platform <noreply@bafs.school>")
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), notifyEmail)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), notifyEmail)
		log.Println("Email sender configured (noop — set BAFS_RESEND_KEY for real delivery)")
	}

	// Redis is optional: without it the leaderboard reads SQLite directly
	if redisAddr := os.Getenv("BAFS_REDIS_ADDR"); redisAddr != "" {
		lb, err := cache.NewLeaderboard(redisAddr)
		if err != nil {
			log.Printf("WARNING: redis unavailable at %s, leaderboard cache disabled: %v", redisAddr, err)
		} else {
			defer lb.Close()
			web.SetLeaderboardCache(lb)
			log.Println("Leaderboard cache configured (Redis)")
		}
	}

	if wageStr := os.Getenv("BAFS_WORK_WAGE"); wageStr != "" {
		wage, err := strconv.Atoi(wageStr)
		if err != nil || wage <= 0 {
			log.Fatalf("BAFS_WORK_WAGE must be a positive integer, got %q", wageStr)
		}
		web.SetWorkWage(wage)
	}

	mux := web.NewMux("static", stores)

	addr := envOrDefault("BAFS_ADDR", ":8080")
	log.Printf("BAFS Platform %s starting on %s (env=%s)", version, addr, envOrDefault("BAFS_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
