package services

import (
	"context"
	"sync"
	"techmart_server/lib"
	"techmart_server/store"
	"techmart_server/structs"
	"techmart_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// AdminService owns the admin gate and the product write path. The role
// check is always a profiles lookup, never a claim read from the session
// token; a short in-process cache keeps the lookup off the hot path.
type AdminService struct {
	logger   *gecho.Logger
	auth     store.Auth
	products store.ProductStore
	profiles store.ProfileStore
	cache    *CacheService
	roleTTL  time.Duration

	mu    sync.Mutex
	roles map[uuid.UUID]roleEntry
}

type roleEntry struct {
	role    string
	expires time.Time
}

func NewAdminService(logger *gecho.Logger, cfg *structs.Config, client *store.Client, cache *CacheService) *AdminService {
	return &AdminService{
		logger:   logger,
		auth:     client.Auth,
		products: client.Products,
		profiles: client.Profiles,
		cache:    cache,
		roleTTL:  cfg.Auth.RoleCacheTTL,
		roles:    make(map[uuid.UUID]roleEntry),
	}
}

// AdminLogin authenticates and then verifies the admin role. A valid
// credential with a non-admin role is signed out again immediately, so a
// failed admin login never leaves a live session behind.
func (as *AdminService) AdminLogin(ctx context.Context, email, password string) (*store.Session, error) {
	session, err := as.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	role, err := as.roleOf(ctx, session.UserID)
	if err != nil || role != "admin" {
		if signOutErr := as.auth.SignOut(ctx, session); signOutErr != nil {
			as.logger.Error("Failed to sign out rejected admin login",
				gecho.Field("error", signOutErr),
				gecho.Field("user_id", session.UserID.String()))
		}
		if err != nil {
			return nil, err
		}
		return nil, lib.ErrUnauthorizedRole
	}

	return session, nil
}

// Authorize verifies that the session's identity currently holds the admin
// role.
func (as *AdminService) Authorize(ctx context.Context, session *store.Session) error {
	if session == nil {
		return lib.ErrNoSession
	}

	role, err := as.roleOf(ctx, session.UserID)
	if err != nil {
		return err
	}
	if role != "admin" {
		return lib.ErrUnauthorizedRole
	}
	return nil
}

// ListProducts returns the raw catalog for the dashboard. Unlike the
// storefront listing, a store failure surfaces as an error here.
func (as *AdminService) ListProducts(ctx context.Context) ([]tables.Product, error) {
	return as.products.SelectAll(ctx)
}

// CreateProduct validates the form, inserts the row and returns the
// refetched catalog. Validation failures never reach the store.
func (as *AdminService) CreateProduct(ctx context.Context, form *structs.ProductForm) ([]tables.Product, error) {
	if err := lib.ValidateStruct(form); err != nil {
		return nil, err
	}

	product := &tables.Product{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		ImageURL:    form.ImageURL,
	}
	if _, err := as.products.Insert(ctx, product); err != nil {
		return nil, err
	}

	as.invalidateCatalog()
	return as.products.SelectAll(ctx)
}

// UpdateProduct validates the form, patches the row and returns the
// refetched catalog.
func (as *AdminService) UpdateProduct(ctx context.Context, id uuid.UUID, form *structs.ProductForm) ([]tables.Product, error) {
	if err := lib.ValidateStruct(form); err != nil {
		return nil, err
	}

	patch := map[string]any{
		"name":        form.Name,
		"description": form.Description,
		"price":       form.Price,
		"image_url":   form.ImageURL,
		"updated_at":  time.Now(),
	}
	if err := as.products.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	as.invalidateCatalog()
	return as.products.SelectAll(ctx)
}

// DeleteProduct removes a row after explicit confirmation and returns the
// refetched catalog. Without confirmation nothing is issued to the store.
func (as *AdminService) DeleteProduct(ctx context.Context, id uuid.UUID, confirmed bool) ([]tables.Product, error) {
	if !confirmed {
		return nil, &lib.ValidationError{Field: "confirmed", Reason: "deletion requires confirmation"}
	}

	if _, err := as.products.Delete(ctx, id); err != nil {
		return nil, err
	}

	as.invalidateCatalog()
	return as.products.SelectAll(ctx)
}

// roleOf looks up the identity's role, serving from the in-process cache
// while the entry is fresh. Lookup failures are not cached.
func (as *AdminService) roleOf(ctx context.Context, userID uuid.UUID) (string, error) {
	as.mu.Lock()
	entry, ok := as.roles[userID]
	as.mu.Unlock()

	if ok && time.Now().Before(entry.expires) {
		return entry.role, nil
	}

	role, err := as.profiles.RoleOf(ctx, userID)
	if err != nil {
		return "", err
	}

	as.mu.Lock()
	as.roles[userID] = roleEntry{role: role, expires: time.Now().Add(as.roleTTL)}
	as.mu.Unlock()

	return role, nil
}

func (as *AdminService) invalidateCatalog() {
	if as.cache == nil {
		return
	}
	if err := as.cache.InvalidateCatalog(); err != nil {
		as.logger.Warn("Catalog cache invalidation failed", gecho.Field("error", err))
	}
}
