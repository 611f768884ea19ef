package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"bafs/internal/adapters/cache"
	"bafs/internal/adapters/email"
	"bafs/internal/adapters/http/middleware"
	auditStore "bafs/internal/adapters/storage/audit"
	companyStore "bafs/internal/adapters/storage/company"
	gameStore "bafs/internal/adapters/storage/game"
	materialStore "bafs/internal/adapters/storage/material"
	profileStore "bafs/internal/adapters/storage/profile"
	workStore "bafs/internal/adapters/storage/work"
)

// Stores holds all storage dependencies.
type Stores struct {
	ProfileStore  profileStore.Store
	CompanyStore  companyStore.Store
	GameStore     gameStore.Store
	WorkStore     workStore.Store
	MaterialStore materialStore.Store
	AuditStore    auditStore.Store
}

// loadCSRFKey reads the CSRF secret from BAFS_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("BAFS_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("BAFS_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("BAFS_ENV") == "production" {
		log.Fatal("BAFS_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set BAFS_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. A whole classroom can
// sit behind one school NAT address, so the limit stays generous. Tests can
// increase this.
var RateLimitPerSecond = 30

// Global leaderboard cache (set by SetLeaderboardCache; nil means SQLite only)
var leaderboardCache *cache.Leaderboard

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// notifyEmail is the recipient for game publication notices.
var notifyEmail string

// workWage is the daily wage paid by the work action.
var workWage int

// SetEmailSender sets the global email sender and notification recipient.
func SetEmailSender(sender email.Sender, notify string) {
	emailSender = sender
	notifyEmail = notify
}

// SetLeaderboardCache sets the optional Redis ranking cache.
func SetLeaderboardCache(lb *cache.Leaderboard) {
	leaderboardCache = lb
}

// SetWorkWage overrides the daily wage. Zero keeps the domain default.
func SetWorkWage(wage int) {
	workWage = wage
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
