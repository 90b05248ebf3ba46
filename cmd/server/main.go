package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/sadaksathi/backend/internal/assistant"
	"github.com/sadaksathi/backend/internal/catalog"
	"github.com/sadaksathi/backend/internal/delivery/http"
	"github.com/sadaksathi/backend/internal/domain"
	"github.com/sadaksathi/backend/internal/repository/postgres"
	"github.com/sadaksathi/backend/internal/repository/sqlite"
	"github.com/sadaksathi/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Static catalog
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d roads, %d places, %d incidents",
		len(cat.Roads), len(cat.Places), len(cat.Incidents))

	// History storage: PostgreSQL, then local SQLite, then mock
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var history domain.HistoryRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
		} else {
			defer pool.Close()
			history = postgres.NewPostgresRepository(pool)
			log.Println("Connected to PostgreSQL")
		}
	}
	if history == nil && cfg.SQLitePath != "" {
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			log.Printf("Warning: Could not open SQLite database: %v", err)
		} else {
			defer repo.Close()
			history = repo
			log.Printf("Using SQLite history at %s", cfg.SQLitePath)
		}
	}
	if history == nil {
		history = postgres.NewMockRepository()
		log.Println("Running without history persistence")
	}

	// Dependency Injection: core state and services
	traffic := service.NewTrafficState(cat.InitialTraffic)
	incidents := service.NewIncidentStore(cat.Incidents)
	places := service.NewPlaceStore(cat.Places)
	routes := service.NewRouteService(
		places, incidents, traffic, cat.Roads,
		cat.Routing.HighwayRoad, cat.Routing.ScenicRoad,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	feed := service.NewTrafficFeed(cfg.TrafficFeedURL)
	simulator := service.NewSimulator(
		traffic, feed, cat.RoadNames(), cfg.RefreshInterval,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	bridge := assistant.NewBridge(cfg.AssistantURL)
	dispatcher := assistant.NewDispatcher(incidents, places, routes, history)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Sadak Sathi API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	handler := http.NewHandler(routes, traffic, incidents, places, cat.Roads, bridge, dispatcher, history)
	http.SetupRoutes(app, handler)

	// Run server and traffic simulator until interrupted
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		log.Printf("Server starting on :%s", cfg.Port)
		return app.Listen(":" + cfg.Port)
	})

	g.Go(func() error {
		return simulator.Run(gCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
		dispatcher.WaitBackground()
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Printf("Server error: %v", err)
	}
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL     string
	SQLitePath      string
	CatalogPath     string
	TrafficFeedURL  string
	AssistantURL    string
	RefreshInterval time.Duration
	Port            string
	Env             string
}

func loadConfig() *Config {
	refreshSeconds, err := strconv.Atoi(getEnv("TRAFFIC_REFRESH_SECONDS", "10"))
	if err != nil || refreshSeconds < 1 {
		refreshSeconds = 10
	}

	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SQLitePath:      getEnv("SQLITE_PATH", "sadaksathi.db"),
		CatalogPath:     getEnv("CATALOG_PATH", ""),
		TrafficFeedURL:  getEnv("TRAFFIC_FEED_URL", ""),
		AssistantURL:    getEnv("ASSISTANT_URL", ""),
		RefreshInterval: time.Duration(refreshSeconds) * time.Second,
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
