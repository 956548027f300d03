package services

import (
	"context"
	"errors"
	"techmart_server/lib"
	"techmart_server/store"
	"techmart_server/structs/tables"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type cartFixture struct {
	memory  *store.Memory
	client  *store.Client
	session *store.Session
	service *CartService
	laptop  tables.Product
	mouse   tables.Product
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	memory := store.NewMemory()
	client := memory.Client()
	logger := gecho.NewDefaultLogger()

	memory.SeedProfile(tables.Profile{Email: "shopper@example.com", FullName: "Shopper"}, "secret123")
	laptop := memory.SeedProduct(tables.Product{Name: "UltraBook Pro", Price: 1999.99})
	mouse := memory.SeedProduct(tables.Product{Name: "Wireless Mouse", Price: 49.99})

	session, err := client.Auth.SignIn(context.Background(), "shopper@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	observer := NewAuthObserverForSession(client.Auth, session, logger)
	service := NewCartService(logger, client.Carts, observer)
	if err := service.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}

	return &cartFixture{
		memory:  memory,
		client:  client,
		session: session,
		service: service,
		laptop:  laptop,
		mouse:   mouse,
	}
}

func TestAddToCartInsertsRow(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	variants := map[string]string{"ram": "16GB", "storage": "512GB SSD"}
	if err := f.service.AddToCart(ctx, f.laptop.ID, 1, variants); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	items := f.service.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ProductID != f.laptop.ID {
		t.Fatalf("wrong product id: %s", items[0].ProductID)
	}
	if items[0].SelectedVariants["ram"] != "16GB" {
		t.Fatalf("selected variants not kept: %v", items[0].SelectedVariants)
	}
	if items[0].Product == nil || items[0].Product.Name != "UltraBook Pro" {
		t.Fatalf("product not joined onto cart row: %+v", items[0].Product)
	}

	rows := f.memory.CartRows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 stored row, got %d", len(rows))
	}
}

func TestAddToCartDefaultsAndDedupes(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.service.AddToCart(ctx, f.laptop.ID, 1, nil); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := f.service.AddToCart(ctx, f.laptop.ID, 2, nil); err != nil {
		t.Fatalf("second add: %v", err)
	}

	items := f.service.Items()
	if len(items) != 1 {
		t.Fatalf("expected dedupe into 1 row, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}

	if rows := f.memory.CartRows(); len(rows) != 1 {
		t.Fatalf("expected 1 stored row after dedupe, got %d", len(rows))
	}
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	f := newCartFixture(t)

	err := f.service.AddToCart(context.Background(), f.laptop.ID, 0, nil)
	if !lib.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.memory.CartRows()) != 0 {
		t.Fatalf("invalid add should not reach the store")
	}
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.service.AddToCart(ctx, f.laptop.ID, 2, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := f.service.Items()[0].ID

	if err := f.service.UpdateQuantity(ctx, itemID, 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}

	if len(f.service.Items()) != 0 {
		t.Fatalf("expected empty mirror after zero-quantity update")
	}
	if len(f.memory.CartRows()) != 0 {
		t.Fatalf("expected row deleted from the store")
	}
}

func TestRemoveFromCart(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.service.AddToCart(ctx, f.laptop.ID, 1, nil); err != nil {
		t.Fatalf("add laptop: %v", err)
	}
	if err := f.service.AddToCart(ctx, f.mouse.ID, 1, nil); err != nil {
		t.Fatalf("add mouse: %v", err)
	}

	var laptopItem uuid.UUID
	for _, item := range f.service.Items() {
		if item.ProductID == f.laptop.ID {
			laptopItem = item.ID
		}
	}

	if err := f.service.RemoveFromCart(ctx, laptopItem); err != nil {
		t.Fatalf("remove: %v", err)
	}

	items := f.service.Items()
	if len(items) != 1 || items[0].ProductID != f.mouse.ID {
		t.Fatalf("expected only mouse left, got %+v", items)
	}
}

func TestClearCartEmptiesStoreAndMirror(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.service.AddToCart(ctx, f.laptop.ID, 1, nil); err != nil {
		t.Fatalf("add laptop: %v", err)
	}
	if err := f.service.AddToCart(ctx, f.mouse.ID, 3, nil); err != nil {
		t.Fatalf("add mouse: %v", err)
	}

	if err := f.service.ClearCart(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if f.service.TotalItems() != 0 {
		t.Fatalf("expected empty cart after clear")
	}
	if len(f.memory.CartRows()) != 0 {
		t.Fatalf("expected all rows deleted from the store")
	}
}

func TestTotals(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.service.AddToCart(ctx, f.laptop.ID, 3, nil); err != nil {
		t.Fatalf("add laptop: %v", err)
	}
	if err := f.service.AddToCart(ctx, f.mouse.ID, 2, nil); err != nil {
		t.Fatalf("add mouse: %v", err)
	}

	if got := f.service.TotalItems(); got != 5 {
		t.Fatalf("expected 5 total items, got %d", got)
	}

	want := 3*1999.99 + 2*49.99
	if got := f.service.TotalPrice(); got != want {
		t.Fatalf("expected total price %v, got %v", want, got)
	}
}

func TestRemoteFailureLeavesMirrorUnchanged(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.service.AddToCart(ctx, f.laptop.ID, 2, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := f.service.Items()[0].ID

	outage := errors.New("connection refused")
	f.memory.FailWith(outage)

	if err := f.service.UpdateQuantity(ctx, itemID, 5); !errors.Is(err, outage) {
		t.Fatalf("expected outage error, got %v", err)
	}
	if err := f.service.RemoveFromCart(ctx, itemID); !errors.Is(err, outage) {
		t.Fatalf("expected outage error, got %v", err)
	}
	if err := f.service.ClearCart(ctx); !errors.Is(err, outage) {
		t.Fatalf("expected outage error, got %v", err)
	}

	items := f.service.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("mirror changed despite remote failure: %+v", items)
	}

	f.memory.FailWith(nil)
	if rows := f.memory.CartRows(); len(rows) != 1 || rows[0].Quantity != 2 {
		t.Fatalf("store changed despite failure injection: %+v", rows)
	}
}

func TestUnauthenticatedMutationsRejected(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.service.AddToCart(ctx, f.laptop.ID, 1, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Sign-out empties the mirror through the auth notification.
	if err := f.client.Auth.SignOut(ctx, f.session); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	if len(f.service.Items()) != 0 {
		t.Fatalf("expected mirror emptied on sign-out")
	}

	if err := f.service.AddToCart(ctx, f.laptop.ID, 1, nil); !errors.Is(err, lib.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := f.service.ClearCart(ctx); !errors.Is(err, lib.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRefreshFailureKeepsPreviousItems(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.service.AddToCart(ctx, f.laptop.ID, 1, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	outage := errors.New("timeout")
	f.memory.FailWith(outage)
	if err := f.service.Refresh(ctx); !errors.Is(err, outage) {
		t.Fatalf("expected refresh to surface the outage, got %v", err)
	}

	items := f.service.Items()
	if len(items) != 1 || items[0].ProductID != f.laptop.ID {
		t.Fatalf("failed refresh must keep the previous list, got %+v", items)
	}

	// Once the store recovers, refresh resumes mirroring it.
	f.memory.FailWith(nil)
	if err := f.service.Refresh(ctx); err != nil {
		t.Fatalf("refresh after recovery: %v", err)
	}
	if len(f.service.Items()) != 1 {
		t.Fatalf("expected 1 item after recovery")
	}
}

func TestMutationsCannotTouchAnotherUsersRows(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	if err := f.service.AddToCart(ctx, f.laptop.ID, 2, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	victimRow := f.service.Items()[0].ID

	f.memory.SeedProfile(tables.Profile{Email: "other@example.com", FullName: "Other"}, "secret456")
	otherSession, err := f.client.Auth.SignIn(ctx, "other@example.com", "secret456")
	if err != nil {
		t.Fatalf("sign in other: %v", err)
	}

	logger := gecho.NewDefaultLogger()
	otherObserver := NewAuthObserverForSession(f.client.Auth, otherSession, logger)
	otherService := NewCartService(logger, f.client.Carts, otherObserver)

	if err := otherService.RemoveFromCart(ctx, victimRow); !lib.IsNotFound(err) {
		t.Fatalf("expected not-found removing another user's row, got %v", err)
	}
	if err := otherService.UpdateQuantity(ctx, victimRow, 9); !lib.IsNotFound(err) {
		t.Fatalf("expected not-found updating another user's row, got %v", err)
	}

	rows := f.memory.CartRows()
	if len(rows) != 1 || rows[0].Quantity != 2 {
		t.Fatalf("another user's mutation reached the row: %+v", rows)
	}
}
