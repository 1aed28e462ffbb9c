package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travel-diary/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	token := uuid.NewString()
	if err := sessions.Create(ctx, &model.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.Add(time.Hour),
	}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	found, err := sessions.FindUser(ctx, token, now)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("session resolves to user %d, want %d", found.ID, user.ID)
	}

	if _, err := sessions.FindUser(ctx, token, now.Add(2*time.Hour)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expired session: got %v, want ErrRecordNotFound", err)
	}

	// Expired sessions are removed on first sight, so the token stays
	// dead even for a caller with an earlier clock.
	if _, err := sessions.FindUser(ctx, token, now); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("deleted session resurfaced: got %v", err)
	}
}

func TestDeleteExpiredKeepsLiveSessions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)

	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	live := uuid.NewString()
	stale := uuid.NewString()
	for token, expires := range map[string]time.Time{
		live:  now.Add(time.Hour),
		stale: now.Add(-time.Hour),
	} {
		if err := sessions.Create(ctx, &model.Session{Token: token, UserID: user.ID, ExpiresAt: expires}); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	if err := sessions.DeleteExpired(ctx, now); err != nil {
		t.Fatalf("delete expired: %v", err)
	}

	if _, err := sessions.FindUser(ctx, live, now); err != nil {
		t.Fatalf("live session lost: %v", err)
	}
	if _, err := sessions.FindUser(ctx, stale, now); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("stale session survived: got %v", err)
	}
}
