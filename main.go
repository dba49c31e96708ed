package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/coreybb/daybrief/api"
	"github.com/coreybb/daybrief/datastore"
	"github.com/coreybb/daybrief/feeds"
	"github.com/coreybb/daybrief/identity"
	"github.com/coreybb/daybrief/ranking"
	rh "github.com/coreybb/daybrief/route-handlers"
)

const (
	defaultPort           = "8080"
	defaultDatabaseURL    = "user=postgres password=password dbname=daybrief host=localhost port=5432 sslmode=disable"
	defaultKratosAdminURL = "http://localhost:4434"
	defaultAllowedOrigin  = "http://localhost:3000"
	kratosTimeout         = 10 * time.Second
	dbPingTimeout         = 5 * time.Second
	shutdownTimeout       = 15 * time.Second
	dbMaxOpenConns        = 25
	dbMaxIdleConns        = 25
	dbConnMaxLifetime     = 5 * time.Minute
)

type config struct {
	port           string
	databaseURL    string
	kratosAdminURL string
	openAIAPIKey   string
	allowedOrigin  string
}

func main() {
	cfg := loadConfig()

	db, err := setupDatabase(cfg.databaseURL)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	defer db.Close()

	userRepo := datastore.NewUserRepository(db)
	scanRepo := datastore.NewScanRepository(db)

	kratosClient := identity.NewKratosClient(cfg.kratosAdminURL, kratosTimeout)
	feedFetcher := feeds.NewFetcher()
	articleRanker := ranking.NewRanker(cfg.openAIAPIKey)

	userHandler := rh.NewUserHandler(kratosClient, userRepo)
	feedHandler := rh.NewFeedHandler(feedFetcher)
	scanHandler := rh.NewScanHandler(scanRepo)
	articleHandler := rh.NewArticleHandler(feedFetcher, articleRanker, scanRepo)

	router := api.SetupRoutes(userHandler, feedHandler, scanHandler, articleHandler, cfg.allowedOrigin)

	startServer(cfg.port, router)
}

func loadConfig() config {
	// A local .env file is optional; real deployments set the environment
	// directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARNING: could not load .env file: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		dbURL = defaultDatabaseURL
		log.Println("WARNING: DB_CONNECTION_STRING not set, using default local connection string.")
	}

	kratosAdminURL := os.Getenv("KRATOS_ADMIN_URL")
	if kratosAdminURL == "" {
		kratosAdminURL = defaultKratosAdminURL
		log.Println("WARNING: KRATOS_ADMIN_URL not set, using default local address.")
	}

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY not set. Article ranking will fail at runtime.")
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = defaultAllowedOrigin
	}

	return config{
		port:           port,
		databaseURL:    dbURL,
		kratosAdminURL: kratosAdminURL,
		openAIAPIKey:   openAIAPIKey,
		allowedOrigin:  allowedOrigin,
	}
}

func setupDatabase(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close() // Close unusable connection pool
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection successful")
	return db, nil
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownSignal // Block until signal received
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
