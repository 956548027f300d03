package products

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// FetchAllProducts handles GET /products. The storefront listing always
// answers 200; a store outage degrades to an empty catalog rather than an
// error page.
func (prm *ProductRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	products := prm.catalogService.FetchAll(r.Context())

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}
