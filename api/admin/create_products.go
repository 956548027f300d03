package admin

import (
	"net/http"
	"techmart_server/handling"
	"techmart_server/lib"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleCreateProduct validates the form and inserts the product. The
// response carries the refetched catalog so the dashboard never renders a
// locally patched list.
func (arm *AdminRoutesManager) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ProductForm](r)
	if err != nil {
		arm.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	products, err := arm.adminService.CreateProduct(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "Failed to save product", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product added successfully"),
		gecho.WithData(map[string]any{
			"products": products,
		}),
		gecho.Send(),
	)
}
