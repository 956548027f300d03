package admin

import (
	"net/http"
	"techmart_server/handling"

	"github.com/MonkyMars/gecho"
)

// HandleListProducts returns the raw catalog for the dashboard. Unlike the
// storefront listing this surfaces store failures as errors.
func (arm *AdminRoutesManager) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := arm.adminService.ListProducts(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to fetch products", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}
