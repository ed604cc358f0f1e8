package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vidcheck/vidcheck/internal/backend"
	"github.com/vidcheck/vidcheck/internal/database"
	"github.com/vidcheck/vidcheck/internal/docs"
	"github.com/vidcheck/vidcheck/internal/history"
	"github.com/vidcheck/vidcheck/internal/player"
	"github.com/vidcheck/vidcheck/internal/report"
	"github.com/vidcheck/vidcheck/internal/server"
	"github.com/vidcheck/vidcheck/internal/storage"
	"github.com/vidcheck/vidcheck/internal/viewer"
	"github.com/vidcheck/vidcheck/internal/youtube"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	port := getEnv("PORT", "8080")

	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		log.Fatal("BACKEND_URL is required")
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	baseURL := getEnv("BASE_URL", "http://localhost:8080")
	backendTimeout := getEnvDuration("BACKEND_TIMEOUT", 120*time.Second)

	theme, found, err := report.ThemeByName(getEnv("THEME", report.DefaultTheme))
	if err != nil {
		log.Fatalf("theme loading failed: %v", err)
	}
	if !found {
		log.Printf("unknown THEME %q, using %s (available: %s)", os.Getenv("THEME"), theme.Name, strings.Join(report.ThemeNames(), ", "))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := viewer.Config{
		Backend:       backend.NewClient(backendURL, backendTimeout),
		Renderer:      report.NewRenderer(theme),
		SecureCookies: strings.HasPrefix(baseURL, "https://"),
	}

	var pinger server.Pinger
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := database.Connect(ctx, databaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer db.Close()

		if err := db.Migrate(databaseURL); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
		log.Println("database migrations applied, history enabled")

		cfg.History = history.NewStore(db.Pool)
		pinger = db
	} else {
		log.Println("DATABASE_URL not set, history disabled")
	}

	storageEndpoint := ""
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		store, err := storage.New(ctx, storage.Config{
			Endpoint:       getEnv("S3_ENDPOINT", "http://localhost:3900"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			Bucket:         bucket,
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Region:         getEnv("S3_REGION", "eu-central-1"),
			MaxObjectBytes: getEnvInt64("S3_MAX_OBJECT_BYTES", storage.DefaultMaxObjectBytes),
		})
		if err != nil {
			log.Fatalf("storage initialization failed: %v", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Fatalf("storage bucket check failed: %v", err)
		}
		log.Println("storage bucket ready, sharing enabled")

		cfg.Storage = store
		storageEndpoint = getEnv("S3_PUBLIC_ENDPOINT", getEnv("S3_ENDPOINT", "http://localhost:3900"))
	} else {
		log.Println("S3_BUCKET not set, sharing disabled")
	}

	if getEnvBool("OEMBED_ENABLED", true) {
		cfg.Info = youtube.NewOEmbedClient(os.Getenv("OEMBED_ENDPOINT"))
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	sessions := player.NewStore(sessionSecret, getEnvDuration("SESSION_TTL", player.DefaultTTL))
	sessions.StartJanitor(runCtx, 10*time.Minute)
	cfg.Sessions = sessions

	var apiDocs *docs.Handler
	if getEnvBool("API_DOCS_ENABLED", false) {
		apiDocs, err = docs.New(getEnv("API_DOCS_TITLE", docs.DefaultTitle))
		if err != nil {
			log.Fatalf("api docs initialization failed: %v", err)
		}
	}

	v := viewer.NewHandler(cfg)
	srv := server.New(runCtx, server.Config{
		Pinger:                pinger,
		Viewer:                v,
		BaseURL:               baseURL,
		StorageEndpoint:       storageEndpoint,
		AllowedFrameAncestors: os.Getenv("ALLOWED_FRAME_ANCESTORS"),
		Docs:                  apiDocs,
		TrustProxy:            getEnvBool("TRUST_PROXY", false),
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      backendTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("vidcheck listening on :%s (backend %s, theme %s)", port, backendURL, theme.Name)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	v.Wait()
	log.Println("shutdown complete")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
