package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"travel-diary/internal/model"
)

// SessionRepository stores web login sessions.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindUser resolves a session token to its user. Expired sessions are
// removed on sight and reported as gorm.ErrRecordNotFound.
func (r *SessionRepository) FindUser(ctx context.Context, token string, now time.Time) (*model.User, error) {
	var session model.Session
	db := r.db.WithContext(ctx)
	if err := db.First(&session, "token = ?", token).Error; err != nil {
		return nil, err
	}

	if now.After(session.ExpiresAt) {
		if err := db.Delete(&session).Error; err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, gorm.ErrRecordNotFound
	}

	var user model.User
	if err := db.First(&user, session.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Delete(&model.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	if err := r.db.WithContext(ctx).Where("expires_at < ?", now).
		Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}
