package cart

import (
	"net/http"
	"techmart_server/api/middleware"
	"techmart_server/services"
	"techmart_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger      *gecho.Logger
	cartManager *services.CartManager
	mw          *middleware.Middleware
}

func NewCartRoutesManager(
	logger *gecho.Logger,
	cartManager *services.CartManager,
	mw *middleware.Middleware,
) *CartRoutesManager {
	return &CartRoutesManager{
		logger:      logger,
		cartManager: cartManager,
		mw:          mw,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(crm.mw.RequireSession)

		r.Get("/", crm.HandleGetCart)
		r.Post("/items", crm.HandleAddItem)
		r.Put("/items/{id}", crm.HandleUpdateItem)
		r.Delete("/items/{id}", crm.HandleRemoveItem)
		r.Post("/checkout", crm.HandleCheckout)
	})
}

// service resolves the per-identity cart service for the request, loading
// the mirror on first use.
func (crm *CartRoutesManager) service(r *http.Request) (*services.CartService, *store.Session, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return nil, nil, false
	}
	return crm.cartManager.ForSession(session), session, true
}
