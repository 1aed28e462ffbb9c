package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-diary/internal/repository"
)

func TestRegisterDuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	accounts := NewAccountService(users, testSecret)

	if _, err := accounts.Register(ctx, "alice", "alice@example.com", "secret123", "alice_tg"); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name     string
		username string
		email    string
		telegram string
	}{
		{"username", "alice", "other@example.com", ""},
		{"email", "other", "alice@example.com", ""},
		{"telegram", "other", "other@example.com", "alice_tg"},
	}
	for _, tc := range cases {
		if _, err := accounts.Register(ctx, tc.username, tc.email, "secret123", tc.telegram); !errors.Is(err, ErrDuplicateIdentity) {
			t.Errorf("duplicate %s: got %v, want ErrDuplicateIdentity", tc.name, err)
		}
	}

	count, err := users.Count(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("store mutated: %d users, want 1", count)
	}
}

func TestVerifyCredentials(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := newAccountService(t, db)

	if _, err := accounts.Register(ctx, "alice", "alice@example.com", "secret123", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := accounts.VerifyCredentials(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("verified user = %q, want alice", user.Username)
	}

	if _, err := accounts.VerifyCredentials(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := accounts.VerifyCredentials(ctx, "nobody", "secret123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user: got %v, want ErrNotFound", err)
	}
}

func TestLinkTelegram(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := newAccountService(t, db)

	alice := mustRegister(t, accounts, "alice", "alice@example.com")
	bob := mustRegister(t, accounts, "bob", "bob@example.com")

	if err := accounts.LinkTelegram(ctx, alice, "@shared_handle"); err != nil {
		t.Fatalf("link: %v", err)
	}

	found, err := accounts.FindByTelegram(ctx, "shared_handle")
	if err != nil {
		t.Fatalf("find by telegram: %v", err)
	}
	if found.ID != alice.ID {
		t.Fatalf("handle resolves to user %d, want %d", found.ID, alice.ID)
	}

	if err := accounts.LinkTelegram(ctx, alice, "another"); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("relink: got %v, want ErrAlreadyLinked", err)
	}
	if err := accounts.LinkTelegram(ctx, bob, "shared_handle"); !errors.Is(err, ErrHandleTaken) {
		t.Fatalf("taken handle: got %v, want ErrHandleTaken", err)
	}
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := newAccountService(t, db)

	alice := mustRegister(t, accounts, "alice", "alice@example.com")

	if err := accounts.ResetPassword(ctx, alice, "brand-new"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := accounts.VerifyCredentials(ctx, "alice", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still works: %v", err)
	}
	if _, err := accounts.VerifyCredentials(ctx, "alice", "brand-new"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := newAccountService(t, db)

	alice := mustRegister(t, accounts, "alice", "alice@example.com")

	token, err := accounts.ResetToken(alice, 10*time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	user, err := accounts.VerifyResetToken(ctx, token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if user.ID != alice.ID {
		t.Fatalf("token resolves to user %d, want %d", user.ID, alice.ID)
	}
}

func TestResetTokenFailsClosed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := newAccountService(t, db)

	alice := mustRegister(t, accounts, "alice", "alice@example.com")

	expired, err := accounts.ResetToken(alice, -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := accounts.VerifyResetToken(ctx, expired); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired token: got %v, want ErrNotFound", err)
	}

	valid, err := accounts.ResetToken(alice, 10*time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := accounts.VerifyResetToken(ctx, valid+"x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("tampered token: got %v, want ErrNotFound", err)
	}

	other := NewAccountService(repository.NewUserRepository(db), "other-secret")
	foreign, err := other.ResetToken(alice, 10*time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := accounts.VerifyResetToken(ctx, foreign); !errors.Is(err, ErrNotFound) {
		t.Fatalf("token signed with another secret: got %v, want ErrNotFound", err)
	}
}
