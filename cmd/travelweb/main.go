package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-diary/internal/config"
	"travel-diary/internal/repository"
	"travel-diary/internal/service"
	"travel-diary/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	accountSvc := service.NewAccountService(userRepo, cfg.SecretKey)
	followSvc := service.NewFollowService(followRepo)
	feedSvc := service.NewFeedService(postRepo, cfg.PageSize)

	cleanup := service.NewCleanupService(sessionRepo, time.Local)
	if _, err := cleanup.Schedule(time.Hour); err != nil {
		log.Fatalf("schedule session cleanup: %v", err)
	}
	cleanup.Start()
	defer cleanup.Stop()

	app := web.NewApp(cfg, accountSvc, followSvc, feedSvc, sessionRepo)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Travel diary listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
