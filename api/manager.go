package api

import (
	"techmart_server/api/admin"
	"techmart_server/api/auth"
	"techmart_server/api/cart"
	"techmart_server/api/health"
	"techmart_server/api/middleware"
	"techmart_server/api/products"
	"techmart_server/services"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	healthRoutes  *health.HealthRoutesManager
	authRoutes    *auth.AuthRoutesManager
	cartRoutes    *cart.CartRoutesManager
	adminRoutes   *admin.AdminRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	sm *services.ServiceManager,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		productRoutes: products.NewProductRoutesManager(logger, sm.CatalogService),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.AuthService, sm.AdminService, cfg, mw),
		cartRoutes:    cart.NewCartRoutesManager(logger, sm.CartManager, mw),
		adminRoutes:   admin.NewAdminRoutesManager(logger, sm.AdminService, mw),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
}
