package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/flash"
	"github.com/JonasLeetTheWay/fyyur-go/internal/redis"
	"github.com/JonasLeetTheWay/fyyur-go/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	gin.SetMode(cfg.GinMode)

	if !cfg.Debug {
		logFile, err := server.SetupLogging(cfg.LogFile)
		if err != nil {
			log.Fatal("Failed to set up logging:", err)
		}
		defer logFile.Close()
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	// Flash messages
	var flashes flash.Store
	switch cfg.FlashStore {
	case "redis":
		redisClient := redis.NewClient(cfg)
		if err := redisClient.Ping(context.Background()); err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		flashes = flash.NewRedisStore(redisClient, cfg.FlashTTL)
	default:
		flashes = flash.NewCookieStore(cfg.SessionSecret, cfg.FlashTTL)
	}

	r, err := server.New(db, flashes)
	if err != nil {
		log.Fatal("Failed to build router:", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Printf("Fyyur starting on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}
}
