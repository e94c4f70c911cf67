package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"shipping/cmd"
	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/adapters/out/rediscache"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)
	cache := openCache(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, cache)

	jobManager := jobs.NewJobManager(app.CreateGetShipmentsDueBeforeQueryHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		RedisURL:   os.Getenv("REDIS_URL"),
		CacheTTL:   cacheTTL(),
		Carriers:   strings.Split(goDotEnvVariable("CARRIERS"), ","),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// cacheTTL reads CACHE_TTL_SECONDS, defaulting to one minute.
func cacheTTL() time.Duration {
	raw := os.Getenv("CACHE_TTL_SECONDS")
	if raw == "" {
		return time.Minute
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		log.Fatalf("Invalid CACHE_TTL_SECONDS: %s", raw)
	}
	return time.Duration(seconds) * time.Second
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &shipmentrepo.HistoryEventDTO{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

// openCache connects to Redis when REDIS_URL is set. Without it the list
// queries run uncached, which is fine for small deployments.
func openCache(configs cmd.Config, logger *slog.Logger) ports.Cache {
	if configs.RedisURL == "" {
		logger.Info("REDIS_URL not set, list query caching disabled")
		return nil
	}

	cache, err := rediscache.NewRedisAdapter(configs.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	return cache
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateCreateShipmentCommandHandler(),
		app.CreateUpdateShipmentStatusCommandHandler(),
		app.CreateMarkShipmentDeliveredCommandHandler(),
		app.CreateMarkShipmentReturnedCommandHandler(),
		app.CreateGetShipmentQueryHandler(),
		app.CreateGetShipmentsByStatusQueryHandler(),
		app.CreateGetShipmentsByCarrierQueryHandler(),
		app.CreateGetShipmentsDueBeforeQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			logger.Info("HTTP server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Failed to shut down HTTP server: %v", err)
	}
}
