package tables

import (
	"techmart_server/structs"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	tableName   struct{}  `bun:"table:products,alias:p"`
	ID          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,notnull" json:"description"`
	Price       float64   `bun:"price,notnull" json:"price"` // non-negative, in euros
	ImageURL    string    `bun:"image_url" json:"image_url,omitempty"`
	ImageURL2   string    `bun:"image_url_2" json:"image_url_2,omitempty"`
	ImageURL3   string    `bun:"image_url_3" json:"image_url_3,omitempty"`
	ImageURL4   string    `bun:"image_url_4" json:"image_url_4,omitempty"`
	ImageURL5   string    `bun:"image_url_5" json:"image_url_5,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	// Attached on the read path only, never stored.
	Variants []structs.VariantGroup `bun:"-" json:"variants,omitempty"`
}

// ImageURLs returns the non-empty image references in column order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, 5)
	for _, u := range []string{p.ImageURL, p.ImageURL2, p.ImageURL3, p.ImageURL4, p.ImageURL5} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
