package admin

import (
	"net/http"
	"techmart_server/handling"
	"techmart_server/lib"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HandleUpdateProduct validates the form and patches the product.
func (arm *AdminRoutesManager) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductForm](r)
	if err != nil {
		arm.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	products, err := arm.adminService.UpdateProduct(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "Failed to save product", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated successfully"),
		gecho.WithData(map[string]any{
			"products": products,
		}),
		gecho.Send(),
	)
}
