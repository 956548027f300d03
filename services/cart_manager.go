package services

import (
	"context"
	"sync"
	"techmart_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CartManager hands out one CartService per authenticated identity. The
// service for an identity is created lazily on its first cart request and
// torn down when that identity signs out, so a signed-out user leaves no
// mirror behind.
type CartManager struct {
	logger *gecho.Logger
	auth   store.Auth
	carts  store.CartStore

	mu       sync.Mutex
	services map[uuid.UUID]*CartService
	sub      *store.Subscription
}

func NewCartManager(logger *gecho.Logger, auth store.Auth, carts store.CartStore) *CartManager {
	cm := &CartManager{
		logger:   logger,
		auth:     auth,
		carts:    carts,
		services: make(map[uuid.UUID]*CartService),
	}

	cm.sub = auth.OnSessionChange(func(event store.SessionEvent) {
		if event.Type != store.EventSignedOut || event.Session == nil {
			return
		}
		cm.drop(event.Session.UserID)
	})

	return cm
}

// ForSession returns the cart service bound to the session's identity,
// creating it on first use.
func (cm *CartManager) ForSession(session *store.Session) *CartService {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if service, ok := cm.services[session.UserID]; ok {
		return service
	}

	observer := NewAuthObserverForSession(cm.auth, session, cm.logger)
	service := NewCartService(cm.logger, cm.carts, observer)
	if err := service.Refresh(context.Background()); err != nil {
		cm.logger.Warn("Initial cart load failed", gecho.Field("error", err), gecho.Field("user_id", session.UserID.String()))
	}
	cm.services[session.UserID] = service
	return service
}

func (cm *CartManager) drop(userID uuid.UUID) {
	cm.mu.Lock()
	service, ok := cm.services[userID]
	if ok {
		delete(cm.services, userID)
	}
	cm.mu.Unlock()

	if ok {
		service.Close()
	}
}

// Close releases the sign-out subscription and every live service.
func (cm *CartManager) Close() {
	if cm.sub != nil {
		cm.sub.Unsubscribe()
	}

	cm.mu.Lock()
	services := make([]*CartService, 0, len(cm.services))
	for _, service := range cm.services {
		services = append(services, service)
	}
	cm.services = make(map[uuid.UUID]*CartService)
	cm.mu.Unlock()

	for _, service := range services {
		service.Close()
	}
}
