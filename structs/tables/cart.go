package tables

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line in a user's cart. At most one row exists per
// (user_id, product_id) pair; adding the same product again increments the
// quantity instead.
type CartItem struct {
	tableName        struct{}          `bun:"table:cart_items,alias:ci"`
	ID               uuid.UUID         `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID         `bun:"user_id,type:uuid,notnull,unique:user_product" json:"user_id"`
	ProductID        uuid.UUID         `bun:"product_id,type:uuid,notnull,unique:user_product" json:"product_id"`
	Quantity         int               `bun:"quantity,notnull" json:"quantity"`
	SelectedVariants map[string]string `bun:"selected_variants,type:jsonb" json:"selected_variants,omitempty"`
	CreatedAt        time.Time         `bun:"created_at,notnull,default:now()" json:"created_at"`

	Product *Product `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}
