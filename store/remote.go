package store

import (
	"context"
	"techmart_server/database"
	"techmart_server/lib"
	"techmart_server/structs/tables"
	"time"

	"github.com/google/uuid"
)

const queryTimeout = 10 * time.Second

// NewRemoteClient wires the Postgres-backed stores and the full auth
// implementation into a single client.
func NewRemoteClient(db *database.DB, revoked RevocationList) *Client {
	return &Client{
		Auth:     NewRemoteAuth(db, revoked),
		Products: &remoteProducts{db: db},
		Carts:    &remoteCarts{db: db},
		Profiles: &remoteProfiles{db: db},
	}
}

type remoteProducts struct {
	db *database.DB
}

func (s *remoteProducts) SelectAll(ctx context.Context) ([]tables.Product, error) {
	products, err := database.Query[tables.Product](s.db).
		Timeout(queryTimeout).
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		return nil, lib.NewStoreError("select", "products", err)
	}
	return products, nil
}

func (s *remoteProducts) Insert(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	inserted, err := database.Query[tables.Product](s.db).
		Timeout(queryTimeout).
		Insert(ctx, product)
	if err != nil {
		return nil, lib.NewStoreError("insert", "products", err)
	}
	return inserted, nil
}

func (s *remoteProducts) Update(ctx context.Context, id uuid.UUID, patch map[string]any) error {
	affected, err := database.Query[tables.Product](s.db).
		Timeout(queryTimeout).
		Where("id", id).
		Update(ctx, patch)
	if err != nil {
		return lib.NewStoreError("update", "products", err)
	}
	if affected == 0 {
		return lib.NewStoreError("update", "products", lib.ErrNotFound)
	}
	return nil
}

func (s *remoteProducts) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	affected, err := database.Query[tables.Product](s.db).
		Timeout(queryTimeout).
		Where("id", id).
		Delete(ctx)
	if err != nil {
		return 0, lib.NewStoreError("delete", "products", err)
	}
	return affected, nil
}

type remoteCarts struct {
	db *database.DB
}

func (s *remoteCarts) SelectByUser(ctx context.Context, userID uuid.UUID) ([]tables.CartItem, error) {
	items, err := database.Query[tables.CartItem](s.db).
		Timeout(queryTimeout).
		Where("user_id", userID).
		Relation("Product").
		OrderBy("created_at", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.NewStoreError("select", "cart_items", err)
	}
	return items, nil
}

func (s *remoteCarts) Insert(ctx context.Context, item *tables.CartItem) (*tables.CartItem, error) {
	inserted, err := database.Query[tables.CartItem](s.db).
		Timeout(queryTimeout).
		Insert(ctx, item)
	if err != nil {
		return nil, lib.NewStoreError("insert", "cart_items", err)
	}
	return inserted, nil
}

func (s *remoteCarts) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	affected, err := database.Query[tables.CartItem](s.db).
		Timeout(queryTimeout).
		Where("id", itemID).
		Where("user_id", userID).
		Update(ctx, map[string]any{"quantity": quantity})
	if err != nil {
		return lib.NewStoreError("update", "cart_items", err)
	}
	if affected == 0 {
		return lib.NewStoreError("update", "cart_items", lib.ErrNotFound)
	}
	return nil
}

func (s *remoteCarts) DeleteByID(ctx context.Context, userID, itemID uuid.UUID) error {
	affected, err := database.Query[tables.CartItem](s.db).
		Timeout(queryTimeout).
		Where("id", itemID).
		Where("user_id", userID).
		Delete(ctx)
	if err != nil {
		return lib.NewStoreError("delete", "cart_items", err)
	}
	if affected == 0 {
		return lib.NewStoreError("delete", "cart_items", lib.ErrNotFound)
	}
	return nil
}

func (s *remoteCarts) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	affected, err := database.Query[tables.CartItem](s.db).
		Timeout(queryTimeout).
		Where("user_id", userID).
		Delete(ctx)
	if err != nil {
		return 0, lib.NewStoreError("delete", "cart_items", err)
	}
	return affected, nil
}

type remoteProfiles struct {
	db *database.DB
}

func (s *remoteProfiles) RoleOf(ctx context.Context, userID uuid.UUID) (string, error) {
	profile, err := database.Query[tables.Profile](s.db).
		Timeout(queryTimeout).
		Select("role").
		Where("id", userID).
		First(ctx)
	if err != nil {
		return "", lib.NewStoreError("select", "profiles", err)
	}
	if profile == nil {
		return "", lib.NewStoreError("select", "profiles", lib.ErrNotFound)
	}
	return profile.Role, nil
}

func (s *remoteProfiles) SelectByID(ctx context.Context, userID uuid.UUID) (*tables.Profile, error) {
	profile, err := database.Query[tables.Profile](s.db).
		Timeout(queryTimeout).
		Where("id", userID).
		First(ctx)
	if err != nil {
		return nil, lib.NewStoreError("select", "profiles", err)
	}
	if profile == nil {
		return nil, lib.NewStoreError("select", "profiles", lib.ErrNotFound)
	}
	return profile, nil
}
