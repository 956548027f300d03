package auth

import (
	"techmart_server/api/middleware"
	"techmart_server/services"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger       *gecho.Logger
	authService  *services.AuthService
	adminService *services.AdminService
	cfg          *structs.Config
	mw           *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	adminService *services.AdminService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:       logger,
		authService:  authService,
		adminService: adminService,
		cfg:          cfg,
		mw:           mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		// Public routes
		r.Post("/register", arm.HandleRegister)
		r.Post("/login", arm.HandleLogin)
		r.Post("/admin-login", arm.HandleAdminLogin)

		// Routes that need a live session
		r.Group(func(r chi.Router) {
			r.Use(arm.mw.RequireSession)
			r.Post("/logout", arm.HandleLogout)
			r.Get("/me", arm.HandleMe)
		})
	})
}
