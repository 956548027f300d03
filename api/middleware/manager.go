package middleware

import (
	"techmart_server/services"
	"techmart_server/store"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	auth         store.Auth
	cacheService *services.CacheService
}

func NewMiddleware(logger *gecho.Logger, cfg *structs.Config, auth store.Auth, cacheService *services.CacheService) *Middleware {
	return &Middleware{
		logger:       logger,
		cfg:          cfg,
		auth:         auth,
		cacheService: cacheService,
	}
}
