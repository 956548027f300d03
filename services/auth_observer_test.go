package services

import (
	"context"
	"techmart_server/structs/tables"
	"testing"

	"techmart_server/store"

	"github.com/MonkyMars/gecho"
)

func TestAuthObserverRestoresSession(t *testing.T) {
	memory := store.NewMemory()
	client := memory.Client()
	logger := gecho.NewDefaultLogger()
	ctx := context.Background()

	memory.SeedProfile(tables.Profile{Email: "a@example.com", FullName: "A"}, "secret123")
	session, err := client.Auth.SignIn(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	observer := NewAuthObserver(ctx, client.Auth, session.Token, logger)
	defer observer.Close()

	got, ok := observer.Current()
	if !ok || got.UserID != session.UserID {
		t.Fatalf("expected restored session for %s, got %+v ok=%v", session.UserID, got, ok)
	}
}

func TestAuthObserverInvalidTokenMeansUnauthenticated(t *testing.T) {
	memory := store.NewMemory()
	client := memory.Client()
	logger := gecho.NewDefaultLogger()

	observer := NewAuthObserver(context.Background(), client.Auth, "not-a-real-token", logger)
	defer observer.Close()

	if _, ok := observer.Current(); ok {
		t.Fatalf("expected unauthenticated observer for invalid token")
	}
}

func TestAuthObserverFollowsSignOut(t *testing.T) {
	memory := store.NewMemory()
	client := memory.Client()
	logger := gecho.NewDefaultLogger()
	ctx := context.Background()

	memory.SeedProfile(tables.Profile{Email: "a@example.com", FullName: "A"}, "secret123")
	session, err := client.Auth.SignIn(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	observer := NewAuthObserverForSession(client.Auth, session, logger)
	defer observer.Close()

	var events []*store.Session
	observer.OnChange(func(s *store.Session) {
		events = append(events, s)
	})

	if err := client.Auth.SignOut(ctx, session); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	if _, ok := observer.Current(); ok {
		t.Fatalf("expected unauthenticated after sign-out")
	}
	if len(events) != 1 || events[0] != nil {
		t.Fatalf("expected one nil change event, got %+v", events)
	}
}

func TestAuthObserverIgnoresOtherIdentities(t *testing.T) {
	memory := store.NewMemory()
	client := memory.Client()
	logger := gecho.NewDefaultLogger()
	ctx := context.Background()

	memory.SeedProfile(tables.Profile{Email: "a@example.com", FullName: "A"}, "secret123")
	memory.SeedProfile(tables.Profile{Email: "b@example.com", FullName: "B"}, "secret456")

	sessionA, err := client.Auth.SignIn(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in a: %v", err)
	}

	observer := NewAuthObserverForSession(client.Auth, sessionA, logger)
	defer observer.Close()

	sessionB, err := client.Auth.SignIn(ctx, "b@example.com", "secret456")
	if err != nil {
		t.Fatalf("sign in b: %v", err)
	}
	if err := client.Auth.SignOut(ctx, sessionB); err != nil {
		t.Fatalf("sign out b: %v", err)
	}

	got, ok := observer.Current()
	if !ok || got.UserID != sessionA.UserID {
		t.Fatalf("observer should still track identity A, got %+v ok=%v", got, ok)
	}
}

func TestAuthObserverCloseStopsUpdates(t *testing.T) {
	memory := store.NewMemory()
	client := memory.Client()
	logger := gecho.NewDefaultLogger()
	ctx := context.Background()

	memory.SeedProfile(tables.Profile{Email: "a@example.com", FullName: "A"}, "secret123")
	session, err := client.Auth.SignIn(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	observer := NewAuthObserverForSession(client.Auth, session, logger)
	observer.Close()

	if err := client.Auth.SignOut(ctx, session); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	// The subscription was released before the sign-out, so the observer
	// must still hold the session it was built with.
	if _, ok := observer.Current(); !ok {
		t.Fatalf("closed observer must not receive sign-out notifications")
	}
}
