package store

import (
	"context"
	"errors"
	"techmart_server/lib"
	"techmart_server/structs/tables"
	"testing"
)

func TestSignUpThenSignIn(t *testing.T) {
	memory := NewMemory()
	client := memory.Client()
	ctx := context.Background()

	session, err := client.Auth.SignUp(ctx, "new@example.com", "secret123", "New User")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if session.Email != "new@example.com" {
		t.Fatalf("unexpected session email: %s", session.Email)
	}

	role, err := client.Profiles.RoleOf(ctx, session.UserID)
	if err != nil {
		t.Fatalf("role: %v", err)
	}
	if role != "user" {
		t.Fatalf("new accounts default to the user role, got %q", role)
	}

	if _, err := client.Auth.SignIn(ctx, "new@example.com", "secret123"); err != nil {
		t.Fatalf("sign in after sign up: %v", err)
	}
}

func TestSignUpDuplicateEmailConflicts(t *testing.T) {
	memory := NewMemory()
	client := memory.Client()
	ctx := context.Background()

	if _, err := client.Auth.SignUp(ctx, "dup@example.com", "secret123", "First"); err != nil {
		t.Fatalf("first sign up: %v", err)
	}

	_, err := client.Auth.SignUp(ctx, "dup@example.com", "other456", "Second")
	if !lib.IsUniqueViolation(err) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestSignOutRevokesSession(t *testing.T) {
	memory := NewMemory()
	client := memory.Client()
	ctx := context.Background()

	memory.SeedProfile(tables.Profile{Email: "a@example.com", FullName: "A"}, "secret123")
	session, err := client.Auth.SignIn(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if _, err := client.Auth.CurrentSession(ctx, session.Token); err != nil {
		t.Fatalf("current session before sign out: %v", err)
	}

	if err := client.Auth.SignOut(ctx, session); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	if _, err := client.Auth.CurrentSession(ctx, session.Token); err == nil {
		t.Fatalf("expected signed-out token to be rejected")
	}
}

func TestSessionNotifications(t *testing.T) {
	memory := NewMemory()
	client := memory.Client()
	ctx := context.Background()

	memory.SeedProfile(tables.Profile{Email: "a@example.com", FullName: "A"}, "secret123")

	var events []SessionEvent
	sub := client.Auth.OnSessionChange(func(ev SessionEvent) {
		events = append(events, ev)
	})

	session, err := client.Auth.SignIn(ctx, "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := client.Auth.SignOut(ctx, session); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != EventSignedIn || events[1].Type != EventSignedOut {
		t.Fatalf("unexpected event order: %+v", events)
	}

	sub.Unsubscribe()
	if _, err := client.Auth.SignIn(ctx, "a@example.com", "secret123"); err != nil {
		t.Fatalf("sign in after unsubscribe: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("unsubscribed callback must not fire, got %d events", len(events))
	}
}

func TestFailureInjectionCoversAllStores(t *testing.T) {
	memory := NewMemory()
	client := memory.Client()
	ctx := context.Background()

	profile := memory.SeedProfile(tables.Profile{Email: "a@example.com", FullName: "A"}, "secret123")
	product := memory.SeedProduct(tables.Product{Name: "X", Price: 1})

	outage := errors.New("connection reset")
	memory.FailWith(outage)

	if _, err := client.Products.SelectAll(ctx); !errors.Is(err, outage) {
		t.Fatalf("products: expected outage, got %v", err)
	}
	if _, err := client.Carts.SelectByUser(ctx, profile.Id); !errors.Is(err, outage) {
		t.Fatalf("carts: expected outage, got %v", err)
	}
	if _, err := client.Profiles.RoleOf(ctx, profile.Id); !errors.Is(err, outage) {
		t.Fatalf("profiles: expected outage, got %v", err)
	}
	if _, err := client.Auth.SignIn(ctx, "a@example.com", "secret123"); !errors.Is(err, outage) {
		t.Fatalf("auth: expected outage, got %v", err)
	}

	memory.FailWith(nil)
	if _, err := client.Products.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete after recovery: %v", err)
	}
}
