package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// ──────────────────────────────────────────────
// PROFILE READS
// ──────────────────────────────────────────────

func TestUser_ProfileServedFromCacheOnSecondRead(t *testing.T) {
	t.Parallel()
	f := newFixture()

	joined := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	f.users.AddUser(&domain.User{
		ID:            "passenger-1",
		Username:      "anna_v",
		FullName:      "Anna Visser",
		WalletBalance: 50,
		MemberSince:   joined,
	})

	// First read misses and warms the cache.
	first, err := f.userService.GetProfile(context.Background(), "passenger-1")
	if err != nil {
		t.Fatalf("first GetProfile: %v", err)
	}
	if !f.cache.HasCachedUser("passenger-1") {
		t.Fatal("expected first read to warm the cache")
	}

	// Second read is served from cache without touching the database.
	second, err := f.userService.GetProfile(context.Background(), "passenger-1")
	if err != nil {
		t.Fatalf("second GetProfile: %v", err)
	}
	if f.cache.UserHitCount != 1 {
		t.Errorf("expected 1 cache hit, got %d", f.cache.UserHitCount)
	}
	if f.users.GetByIDCallCount != 1 {
		t.Errorf("expected 1 database read, got %d", f.users.GetByIDCallCount)
	}

	if second.Username != first.Username || second.FullName != "Anna Visser" {
		t.Errorf("cached profile fields diverge: %+v vs %+v", second, first)
	}
	if !second.MemberSince.Equal(joined) {
		t.Errorf("expected member_since %v, got %v", joined, second.MemberSince)
	}
}

func TestUser_CachedProfileCarriesNoWalletBalance(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.addUser("passenger-1", 75)

	// Warm the cache, then read from it.
	if _, err := f.userService.GetProfile(context.Background(), "passenger-1"); err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	cached, err := f.userService.GetProfile(context.Background(), "passenger-1")
	if err != nil {
		t.Fatalf("cached GetProfile: %v", err)
	}
	if cached.WalletBalance != 0 {
		t.Errorf("cached profile must not carry a balance, got %.2f", cached.WalletBalance)
	}
}

func TestUser_WalletReadBypassesCache(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.addUser("passenger-1", 75)

	// Warm the cache so a stale profile is available.
	if _, err := f.userService.GetProfile(context.Background(), "passenger-1"); err != nil {
		t.Fatalf("GetProfile: %v", err)
	}

	user, err := f.userService.GetUser(context.Background(), "passenger-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.WalletBalance != 75 {
		t.Errorf("expected balance 75, got %.2f", user.WalletBalance)
	}
	if f.users.GetByIDCallCount != 2 {
		t.Errorf("expected full read to hit the database, got %d reads", f.users.GetByIDCallCount)
	}
}

func TestUser_ProfileUnknownUser(t *testing.T) {
	t.Parallel()
	f := newFixture()

	_, err := f.userService.GetProfile(context.Background(), "ghost")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.cache.HasCachedUser("ghost") {
		t.Error("missing user must not be cached")
	}
}

// ──────────────────────────────────────────────
// WALLET TOP-UP
// ──────────────────────────────────────────────

func TestUser_TopUpWallet(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.addUser("passenger-1", 10)

	actor := domain.Actor{UserID: "passenger-1"}
	user, err := f.userService.TopUpWallet(context.Background(), actor, 40)
	if err != nil {
		t.Fatalf("TopUpWallet: %v", err)
	}
	if user.WalletBalance != 50 {
		t.Errorf("expected balance 50, got %.2f", user.WalletBalance)
	}
}

func TestUser_TopUpWalletRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.addUser("passenger-1", 10)

	actor := domain.Actor{UserID: "passenger-1"}
	for _, amount := range []float64{0, -5} {
		if _, err := f.userService.TopUpWallet(context.Background(), actor, amount); !errors.Is(err, service.ErrInvalidAmount) {
			t.Errorf("amount %.2f: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if f.users.Balance("passenger-1") != 10 {
		t.Errorf("balance changed on rejected top-up: %.2f", f.users.Balance("passenger-1"))
	}
}
