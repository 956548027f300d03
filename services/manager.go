package services

import (
	"techmart_server/database"
	"techmart_server/store"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	Store          *store.Client
	AuthService    *AuthService
	CartManager    *CartManager
	CatalogService *CatalogService
	AdminService   *AdminService
	CacheService   *CacheService
	EmailService   *EmailService
	HealthService  *HealthService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	client := store.NewRemoteClient(db, cacheService)

	emailService := NewEmailService(logger, cfg)
	authService := NewAuthService(logger, client, emailService)
	cartManager := NewCartManager(logger, client.Auth, client.Carts)
	catalogService := NewCatalogService(logger, client.Products, cacheService)
	adminService := NewAdminService(logger, cfg, client, cacheService)
	healthService := NewHealthService(logger, db, cacheService)

	return &ServiceManager{
		Store:          client,
		AuthService:    authService,
		CartManager:    cartManager,
		CatalogService: catalogService,
		AdminService:   adminService,
		CacheService:   cacheService,
		EmailService:   emailService,
		HealthService:  healthService,
	}
}

// Close releases long-lived service resources.
func (sm *ServiceManager) Close() {
	sm.CartManager.Close()
	_ = sm.CacheService.Close()
}
