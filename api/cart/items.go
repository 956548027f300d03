package cart

import (
	"net/http"
	"techmart_server/handling"
	"techmart_server/lib"
	"techmart_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type addItemRequest struct {
	ProductID        uuid.UUID         `json:"product_id"`
	Quantity         int               `json:"quantity"`
	SelectedVariants map[string]string `json:"selected_variants"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGetCart returns the mirrored cart with its totals.
func (crm *CartRoutesManager) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	service, _, ok := crm.service(r)
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	if err := service.Refresh(r.Context()); err != nil {
		handling.HandleError(err, "Failed to load cart", crm.logger, w)
		return
	}

	crm.respondWithCart(w, service)
}

// HandleAddItem adds a product to the cart. Re-adding a product bumps the
// existing row's quantity instead of creating a duplicate.
func (crm *CartRoutesManager) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	service, _, ok := crm.service(r)
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[addItemRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract cart item body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	if body.ProductID == uuid.Nil {
		gecho.BadRequest(w, gecho.WithMessage("product_id is required"), gecho.Send())
		return
	}

	quantity := body.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if err := service.AddToCart(r.Context(), body.ProductID, quantity, body.SelectedVariants); err != nil {
		handling.HandleError(err, "Failed to add item to cart", crm.logger, w)
		return
	}

	crm.respondWithCart(w, service)
}

// HandleUpdateItem sets a row's quantity; zero or less removes the row.
func (crm *CartRoutesManager) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	service, _, ok := crm.service(r)
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid cart item id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[updateItemRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract quantity body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	if err := service.UpdateQuantity(r.Context(), itemID, body.Quantity); err != nil {
		handling.HandleError(err, "Failed to update cart item", crm.logger, w)
		return
	}

	crm.respondWithCart(w, service)
}

// HandleRemoveItem deletes one row from the cart.
func (crm *CartRoutesManager) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	service, _, ok := crm.service(r)
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid cart item id"), gecho.Send())
		return
	}

	if err := service.RemoveFromCart(r.Context(), itemID); err != nil {
		handling.HandleError(err, "Failed to remove cart item", crm.logger, w)
		return
	}

	crm.respondWithCart(w, service)
}

// HandleCheckout empties the cart and confirms the order. There is no
// payment step; checkout is the cart clear plus a confirmation.
func (crm *CartRoutesManager) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	service, _, ok := crm.service(r)
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	if service.TotalItems() == 0 {
		gecho.BadRequest(w, gecho.WithMessage("Cart is empty"), gecho.Send())
		return
	}

	if err := service.ClearCart(r.Context()); err != nil {
		handling.HandleError(err, "Checkout failed", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order Placed Successfully"),
		gecho.Send(),
	)
}

func (crm *CartRoutesManager) respondWithCart(w http.ResponseWriter, service *services.CartService) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"items":       service.Items(),
			"total_items": service.TotalItems(),
			"total_price": service.TotalPrice(),
		}),
		gecho.Send(),
	)
}
