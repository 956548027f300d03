package tables

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the account row for an identity. The id doubles as the user
// id referenced by cart_items. Role is consulted through a fresh lookup for
// the admin gate rather than trusted from the session token.
type Profile struct {
	tableName    struct{}  `bun:"table:profiles,alias:pr"`
	Id           uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string    `json:"email" bun:"email,unique,notnull"`
	FullName     string    `json:"full_name" bun:"full_name,notnull"`
	PasswordHash string    `json:"-" bun:"password_hash,notnull"`
	Role         string    `json:"role" bun:"role,notnull,default:'user'"`
	LastLogin    time.Time `json:"last_login" bun:"last_login,default:now()"`
	CreatedAt    time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
}
