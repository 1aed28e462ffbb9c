package service

import (
	"context"
	"errors"
	"testing"

	"travel-diary/internal/model"
	"travel-diary/internal/repository"
)

func TestFollowUnfollowIdempotence(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := newAccountService(t, db)
	follows := NewFollowService(repository.NewFollowRepository(db))

	alice := mustRegister(t, accounts, "alice", "alice@example.com")
	bob := mustRegister(t, accounts, "bob", "bob@example.com")

	for i := 0; i < 2; i++ {
		if err := follows.Follow(ctx, alice, bob); err != nil {
			t.Fatalf("follow attempt %d: %v", i+1, err)
		}
	}

	assertFollowing(t, follows, alice, bob, true)
	assertCount(t, "following", follows.FollowingCount, alice, 1)
	assertCount(t, "followers", follows.FollowerCount, bob, 1)

	for i := 0; i < 2; i++ {
		if err := follows.Unfollow(ctx, alice, bob); err != nil {
			t.Fatalf("unfollow attempt %d: %v", i+1, err)
		}
	}

	assertFollowing(t, follows, alice, bob, false)
	assertCount(t, "following", follows.FollowingCount, alice, 0)
	assertCount(t, "followers", follows.FollowerCount, bob, 0)
}

func TestFollowCountsAfterSequence(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := newAccountService(t, db)
	follows := NewFollowService(repository.NewFollowRepository(db))

	alice := mustRegister(t, accounts, "alice", "alice@example.com")
	bob := mustRegister(t, accounts, "bob", "bob@example.com")
	carol := mustRegister(t, accounts, "carol", "carol@example.com")

	steps := []struct {
		follow bool
		target *model.User
	}{
		{true, bob},
		{true, carol},
		{false, bob},
		{true, bob},
		{false, carol},
	}
	for i, step := range steps {
		var err error
		if step.follow {
			err = follows.Follow(ctx, alice, step.target)
		} else {
			err = follows.Unfollow(ctx, alice, step.target)
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	assertCount(t, "following", follows.FollowingCount, alice, 1)
	assertFollowing(t, follows, alice, bob, true)
	assertFollowing(t, follows, alice, carol, false)
}

func TestSelfFollowRejected(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := newAccountService(t, db)
	follows := NewFollowService(repository.NewFollowRepository(db))

	alice := mustRegister(t, accounts, "alice", "alice@example.com")

	if err := follows.Follow(ctx, alice, alice); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
	assertCount(t, "following", follows.FollowingCount, alice, 0)
	assertCount(t, "followers", follows.FollowerCount, alice, 0)
}

func mustRegister(t *testing.T, accounts *AccountService, username, email string) *model.User {
	t.Helper()
	user, err := accounts.Register(context.Background(), username, email, "secret123", "")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func assertFollowing(t *testing.T, follows *FollowService, actor, target *model.User, want bool) {
	t.Helper()
	got, err := follows.IsFollowing(context.Background(), actor, target)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if got != want {
		t.Fatalf("is_following(%s, %s) = %t, want %t", actor.Username, target.Username, got, want)
	}
}

func assertCount(t *testing.T, name string, count func(context.Context, *model.User) (int64, error), user *model.User, want int64) {
	t.Helper()
	got, err := count(context.Background(), user)
	if err != nil {
		t.Fatalf("%s count: %v", name, err)
	}
	if got != want {
		t.Fatalf("%s count for %s = %d, want %d", name, user.Username, got, want)
	}
}
