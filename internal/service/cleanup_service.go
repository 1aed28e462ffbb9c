package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"travel-diary/internal/repository"
)

// CleanupService periodically purges expired web sessions.
type CleanupService struct {
	cron     *cron.Cron
	sessions *repository.SessionRepository
}

func NewCleanupService(sessions *repository.SessionRepository, loc *time.Location) *CleanupService {
	return &CleanupService{
		cron:     cron.New(cron.WithLocation(loc)),
		sessions: sessions,
	}
}

// Schedule registers the purge job every given interval.
func (s *CleanupService) Schedule(interval time.Duration) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	return s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.sessions.DeleteExpired(ctx, time.Now()); err != nil {
			log.Printf("purge sessions: %v", err)
		}
	})
}

func (s *CleanupService) Start() {
	s.cron.Start()
}

func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
