package services

import (
	"context"
	"sync"
	"techmart_server/store"

	"github.com/MonkyMars/gecho"
)

// AuthObserver tracks the authentication state of one identity. It performs
// a single session restore on construction and then follows sign-in and
// sign-out notifications from the auth backend; a restore failure leaves it
// unauthenticated rather than failing construction.
type AuthObserver struct {
	logger *gecho.Logger
	auth   store.Auth

	mu      sync.RWMutex
	session *store.Session

	sub       *store.Subscription
	onceClose sync.Once

	changeMu sync.Mutex
	onChange []func(*store.Session)
}

// NewAuthObserver restores the session behind token (empty token means no
// stored session) and subscribes to subsequent auth-state changes.
func NewAuthObserver(ctx context.Context, auth store.Auth, token string, logger *gecho.Logger) *AuthObserver {
	ao := &AuthObserver{
		logger: logger,
		auth:   auth,
	}

	if token != "" {
		session, err := auth.CurrentSession(ctx, token)
		if err != nil {
			logger.Debug("Session restore failed", gecho.Field("error", err))
		} else {
			ao.session = session
		}
	}

	ao.sub = auth.OnSessionChange(ao.handleEvent)
	return ao
}

// NewAuthObserverForSession builds an observer already bound to a live
// session, skipping the restore round trip.
func NewAuthObserverForSession(auth store.Auth, session *store.Session, logger *gecho.Logger) *AuthObserver {
	ao := &AuthObserver{
		logger:  logger,
		auth:    auth,
		session: session,
	}
	ao.sub = auth.OnSessionChange(ao.handleEvent)
	return ao
}

func (ao *AuthObserver) handleEvent(event store.SessionEvent) {
	if event.Session == nil {
		return
	}

	ao.mu.Lock()
	current := ao.session

	switch event.Type {
	case store.EventSignedIn:
		// Only track events for the identity this observer was built for,
		// unless it has never been bound to one.
		if current == nil || current.UserID == event.Session.UserID {
			ao.session = event.Session
		}
	case store.EventSignedOut:
		if current != nil && current.UserID == event.Session.UserID {
			ao.session = nil
		}
	}
	changed := ao.session != current
	session := ao.session
	ao.mu.Unlock()

	if changed {
		ao.notifyChange(session)
	}
}

// Current returns the tracked session and whether the identity is
// authenticated.
func (ao *AuthObserver) Current() (*store.Session, bool) {
	ao.mu.RLock()
	defer ao.mu.RUnlock()
	return ao.session, ao.session != nil
}

// OnChange registers a callback invoked whenever the tracked auth state
// flips. The callback receives the new session, nil on sign-out.
func (ao *AuthObserver) OnChange(fn func(*store.Session)) {
	ao.changeMu.Lock()
	defer ao.changeMu.Unlock()
	ao.onChange = append(ao.onChange, fn)
}

func (ao *AuthObserver) notifyChange(session *store.Session) {
	ao.changeMu.Lock()
	fns := make([]func(*store.Session), len(ao.onChange))
	copy(fns, ao.onChange)
	ao.changeMu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

// Close unsubscribes from auth notifications. After Close no callback can
// fire, so a torn-down observer never mutates dependent state.
func (ao *AuthObserver) Close() {
	ao.onceClose.Do(func() {
		if ao.sub != nil {
			ao.sub.Unsubscribe()
		}
	})
}
