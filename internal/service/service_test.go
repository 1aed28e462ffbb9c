package service

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"travel-diary/internal/repository"
)

const testSecret = "test-secret-key"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
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

func newAccountService(t *testing.T, db *gorm.DB) *AccountService {
	t.Helper()
	return NewAccountService(repository.NewUserRepository(db), testSecret)
}
