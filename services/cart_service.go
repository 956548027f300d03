package services

import (
	"context"
	"sync"
	"techmart_server/lib"
	"techmart_server/store"
	"techmart_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CartService keeps an in-memory mirror of one identity's cart rows and
// pushes every mutation to the store before touching the mirror. A failed
// mutation leaves the mirror exactly as it was. All mutations for the
// identity run under one mutex, so two concurrent adds of the same product
// cannot both pass the duplicate check.
type CartService struct {
	logger *gecho.Logger
	carts  store.CartStore
	auth   *AuthObserver

	mu    sync.Mutex
	items []tables.CartItem
}

func NewCartService(logger *gecho.Logger, carts store.CartStore, auth *AuthObserver) *CartService {
	cs := &CartService{
		logger: logger,
		carts:  carts,
		auth:   auth,
	}

	// Mirror follows auth state: a sign-out collapses it to empty, a
	// sign-in reloads from the store.
	auth.OnChange(func(session *store.Session) {
		if session == nil {
			cs.mu.Lock()
			cs.items = nil
			cs.mu.Unlock()
			return
		}
		if err := cs.Refresh(context.Background()); err != nil {
			logger.Warn("Cart refresh after sign-in failed", gecho.Field("error", err))
		}
	})

	return cs
}

// Refresh replaces the mirror with the store's rows for the current
// identity. On failure the previous mirror is kept and the error is
// returned, so a transient outage never loses what the user already sees.
func (cs *CartService) Refresh(ctx context.Context) error {
	session, ok := cs.auth.Current()
	if !ok {
		cs.mu.Lock()
		cs.items = nil
		cs.mu.Unlock()
		return nil
	}

	items, err := cs.carts.SelectByUser(ctx, session.UserID)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err != nil {
		cs.logger.Error("Failed to load cart", gecho.Field("error", err), gecho.Field("user_id", session.UserID.String()))
		return err
	}
	cs.items = items
	return nil
}

// AddToCart inserts a row for the product, or bumps the quantity when one
// already exists for it. Quantity must be positive.
func (cs *CartService) AddToCart(ctx context.Context, productID uuid.UUID, quantity int, selectedVariants map[string]string) error {
	if quantity < 1 {
		return &lib.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	session, ok := cs.auth.Current()
	if !ok {
		return lib.ErrNoSession
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	for i := range cs.items {
		if cs.items[i].ProductID == productID {
			return cs.setQuantityLocked(ctx, session.UserID, cs.items[i].ID, cs.items[i].Quantity+quantity)
		}
	}

	item := &tables.CartItem{
		UserID:           session.UserID,
		ProductID:        productID,
		Quantity:         quantity,
		SelectedVariants: selectedVariants,
	}
	if _, err := cs.carts.Insert(ctx, item); err != nil {
		return err
	}

	// Re-read instead of appending locally so the joined product data and
	// server-assigned ids come from the source of truth.
	items, err := cs.carts.SelectByUser(ctx, session.UserID)
	if err != nil {
		cs.logger.Warn("Cart reload after insert failed", gecho.Field("error", err))
		return err
	}
	cs.items = items
	return nil
}

// UpdateQuantity sets the quantity of one cart row. A quantity below one
// removes the row instead.
func (cs *CartService) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	session, ok := cs.auth.Current()
	if !ok {
		return lib.ErrNoSession
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if quantity < 1 {
		return cs.removeLocked(ctx, session.UserID, itemID)
	}
	return cs.setQuantityLocked(ctx, session.UserID, itemID, quantity)
}

// RemoveFromCart deletes one cart row.
func (cs *CartService) RemoveFromCart(ctx context.Context, itemID uuid.UUID) error {
	session, ok := cs.auth.Current()
	if !ok {
		return lib.ErrNoSession
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.removeLocked(ctx, session.UserID, itemID)
}

// ClearCart deletes every row owned by the identity. Checkout is a clear
// with a confirmation on top; no payment happens here.
func (cs *CartService) ClearCart(ctx context.Context) error {
	session, ok := cs.auth.Current()
	if !ok {
		return lib.ErrNoSession
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, err := cs.carts.DeleteByUser(ctx, session.UserID); err != nil {
		return err
	}
	cs.items = nil
	return nil
}

// Items returns a copy of the mirrored cart rows.
func (cs *CartService) Items() []tables.CartItem {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	items := make([]tables.CartItem, len(cs.items))
	copy(items, cs.items)
	return items
}

// TotalItems is the sum of quantities across the mirror.
func (cs *CartService) TotalItems() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	total := 0
	for i := range cs.items {
		total += cs.items[i].Quantity
	}
	return total
}

// TotalPrice is the quantity-weighted price sum. Rows whose product failed
// to join count as zero rather than failing the total.
func (cs *CartService) TotalPrice() float64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	total := 0.0
	for i := range cs.items {
		if cs.items[i].Product != nil {
			total += cs.items[i].Product.Price * float64(cs.items[i].Quantity)
		}
	}
	return total
}

// Close detaches the service from auth notifications.
func (cs *CartService) Close() {
	cs.auth.Close()
}

// setQuantityLocked pushes the new quantity remote-first, then mirrors it.
// Callers hold cs.mu.
func (cs *CartService) setQuantityLocked(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	if err := cs.carts.UpdateQuantity(ctx, userID, itemID, quantity); err != nil {
		return err
	}

	for i := range cs.items {
		if cs.items[i].ID == itemID {
			cs.items[i].Quantity = quantity
			break
		}
	}
	return nil
}

// removeLocked deletes the row remote-first, then drops it from the mirror.
// Callers hold cs.mu.
func (cs *CartService) removeLocked(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := cs.carts.DeleteByID(ctx, userID, itemID); err != nil {
		return err
	}

	filtered := cs.items[:0]
	for i := range cs.items {
		if cs.items[i].ID != itemID {
			filtered = append(filtered, cs.items[i])
		}
	}
	cs.items = filtered
	return nil
}
