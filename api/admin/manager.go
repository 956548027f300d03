package admin

import (
	"net/http"
	"techmart_server/api/middleware"
	"techmart_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger       *gecho.Logger
	adminService *services.AdminService
	mw           *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	adminService *services.AdminService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:       logger,
		adminService: adminService,
		mw:           mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.RequireSession)
		r.Use(arm.requireAdmin)

		r.Get("/products", arm.HandleListProducts)
		r.Post("/products", arm.HandleCreateProduct)
		r.Put("/products/{id}", arm.HandleUpdateProduct)
		r.Delete("/products/{id}", arm.HandleDeleteProduct)
	})
}

// requireAdmin gates the dashboard routes on a fresh role lookup. The role
// claim is never read from the session token, so a demoted admin loses
// access as soon as the short role cache expires.
func (arm *AdminRoutesManager) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
			return
		}

		if err := arm.adminService.Authorize(r.Context(), session); err != nil {
			arm.logger.Warn("Admin route access denied",
				gecho.Field("user_id", session.UserID.String()),
				gecho.Field("error", err))
			gecho.Forbidden(w, gecho.WithMessage("Unauthorized: Admin access required"), gecho.Send())
			return
		}

		next.ServeHTTP(w, r)
	})
}
