package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"travel-diary/internal/bot"
	"travel-diary/internal/config"
	"travel-diary/internal/repository"
	"travel-diary/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
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
	accountSvc := service.NewAccountService(userRepo, cfg.SecretKey)

	dialog := bot.NewDialog(accountSvc, bot.NewMemoryStateStore())
	telegramBot, err := bot.New(cfg.TelegramToken, dialog)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	log.Println("Travel diary bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
