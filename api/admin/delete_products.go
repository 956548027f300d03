package admin

import (
	"net/http"
	"techmart_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HandleDeleteProduct removes a product. The caller must confirm the
// deletion explicitly with ?confirm=true; without it nothing is issued.
func (arm *AdminRoutesManager) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"

	products, err := arm.adminService.DeleteProduct(r.Context(), id, confirmed)
	if err != nil {
		handling.HandleError(err, "Failed to delete product", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted successfully"),
		gecho.WithData(map[string]any{
			"products": products,
		}),
		gecho.Send(),
	)
}
