package structs

// VariantGroup is a named set of selectable options attached to a product at
// read time. Groups are synthesized deterministically from the product name
// and never persisted; they exist only on the read path.
type VariantGroup struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// ProductForm is the admin create/update payload. Validation runs before any
// remote call so invalid input never reaches the store.
type ProductForm struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Description string  `json:"description" validate:"required,min=1"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"image_url" validate:"required,http_url"`
}
