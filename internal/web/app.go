package web

import (
	"log"
	"os"

	"travel-diary/internal/config"
	"travel-diary/internal/repository"
	"travel-diary/internal/service"
)

// App aggregates the HTTP handlers with the services they call.
type App struct {
	infoLog  *log.Logger
	errorLog *log.Logger
	cfg      config.Config
	accounts *service.AccountService
	follows  *service.FollowService
	feed     *service.FeedService
	sessions *repository.SessionRepository
}

func NewApp(cfg config.Config, accounts *service.AccountService, follows *service.FollowService, feed *service.FeedService, sessions *repository.SessionRepository) *App {
	return &App{
		infoLog:  log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime),
		errorLog: log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile),
		cfg:      cfg,
		accounts: accounts,
		follows:  follows,
		feed:     feed,
		sessions: sessions,
	}
}
