package services

import (
	"context"
	"errors"
	"techmart_server/lib"
	"techmart_server/store"
	"techmart_server/structs"
	"techmart_server/structs/tables"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
)

func newAdminFixture(t *testing.T) (*store.Memory, *store.Client, *AdminService) {
	t.Helper()

	memory := store.NewMemory()
	client := memory.Client()
	logger := gecho.NewDefaultLogger()

	cfg := &structs.Config{
		Auth: &structs.AuthConfig{RoleCacheTTL: time.Minute},
	}

	memory.SeedProfile(tables.Profile{Email: "admin@example.com", FullName: "Admin", Role: "admin"}, "secret123")
	memory.SeedProfile(tables.Profile{Email: "user@example.com", FullName: "User"}, "secret123")

	return memory, client, NewAdminService(logger, cfg, client, nil)
}

func TestAdminLoginWithAdminRole(t *testing.T) {
	_, _, admin := newAdminFixture(t)

	session, err := admin.AdminLogin(context.Background(), "admin@example.com", "secret123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if session == nil || session.Email != "admin@example.com" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestAdminLoginNonAdminLeavesNoSession(t *testing.T) {
	memory, _, admin := newAdminFixture(t)
	ctx := context.Background()

	session, err := admin.AdminLogin(ctx, "user@example.com", "secret123")
	if !errors.Is(err, lib.ErrUnauthorizedRole) {
		t.Fatalf("expected ErrUnauthorizedRole, got %v", err)
	}
	if session != nil {
		t.Fatalf("expected nil session on rejected admin login")
	}

	// The sign-in created during the attempt must have been torn down.
	if n := memory.ActiveSessions(); n != 0 {
		t.Fatalf("expected 0 live sessions after rejected admin login, got %d", n)
	}
}

func TestAdminLoginBadCredentials(t *testing.T) {
	_, _, admin := newAdminFixture(t)

	_, err := admin.AdminLogin(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, lib.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	_, client, admin := newAdminFixture(t)
	ctx := context.Background()

	adminSession, err := client.Auth.SignIn(ctx, "admin@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in admin: %v", err)
	}
	if err := admin.Authorize(ctx, adminSession); err != nil {
		t.Fatalf("authorize admin: %v", err)
	}

	userSession, err := client.Auth.SignIn(ctx, "user@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in user: %v", err)
	}
	if err := admin.Authorize(ctx, userSession); !errors.Is(err, lib.ErrUnauthorizedRole) {
		t.Fatalf("expected ErrUnauthorizedRole for user, got %v", err)
	}

	if err := admin.Authorize(ctx, nil); !errors.Is(err, lib.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for nil session, got %v", err)
	}
}

func TestCreateProductValidatesBeforeRemoteCall(t *testing.T) {
	memory, _, admin := newAdminFixture(t)
	ctx := context.Background()

	// Any remote call would fail loudly; validation must reject first.
	memory.FailWith(errors.New("remote must not be reached"))
	defer memory.FailWith(nil)

	form := &structs.ProductForm{
		Name:        "UltraBook Pro",
		Description: "Fast",
		Price:       -5,
		ImageURL:    "https://example.com/img.png",
	}

	_, err := admin.CreateProduct(ctx, form)
	if !lib.IsValidationError(err) {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}
}

func TestCreateProductReturnsRefetchedCatalog(t *testing.T) {
	_, _, admin := newAdminFixture(t)
	ctx := context.Background()

	form := &structs.ProductForm{
		Name:        "UltraBook Pro",
		Description: "Fast and light",
		Price:       1999.99,
		ImageURL:    "https://example.com/img.png",
	}

	products, err := admin.CreateProduct(ctx, form)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(products) != 1 || products[0].Name != "UltraBook Pro" {
		t.Fatalf("expected refetched catalog with new product, got %+v", products)
	}
	if products[0].ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected store-assigned id")
	}
}

func TestUpdateProduct(t *testing.T) {
	memory, _, admin := newAdminFixture(t)
	ctx := context.Background()

	seeded := memory.SeedProduct(tables.Product{Name: "Old Name", Description: "Old", Price: 10, ImageURL: "https://example.com/old.png"})

	form := &structs.ProductForm{
		Name:        "New Name",
		Description: "New",
		Price:       12.5,
		ImageURL:    "https://example.com/new.png",
	}

	products, err := admin.UpdateProduct(ctx, seeded.ID, form)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(products) != 1 || products[0].Name != "New Name" || products[0].Price != 12.5 {
		t.Fatalf("expected updated catalog, got %+v", products)
	}
}

func TestDeleteProductRequiresConfirmation(t *testing.T) {
	memory, _, admin := newAdminFixture(t)
	ctx := context.Background()

	seeded := memory.SeedProduct(tables.Product{Name: "Doomed", Price: 5})

	if _, err := admin.DeleteProduct(ctx, seeded.ID, false); !lib.IsValidationError(err) {
		t.Fatalf("expected validation error without confirmation, got %v", err)
	}

	if products, err := admin.ListProducts(ctx); err != nil || len(products) != 1 {
		t.Fatalf("unconfirmed delete must not touch the store: %v %+v", err, products)
	}

	products, err := admin.DeleteProduct(ctx, seeded.ID, true)
	if err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty catalog after delete, got %+v", products)
	}
}

func TestListProductsSurfacesErrors(t *testing.T) {
	memory, _, admin := newAdminFixture(t)

	outage := errors.New("timeout")
	memory.FailWith(outage)

	if _, err := admin.ListProducts(context.Background()); !errors.Is(err, outage) {
		t.Fatalf("expected store error surfaced, got %v", err)
	}
}
