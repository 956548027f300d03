// Package store is the boundary to the remote system of record. Services
// talk to these interfaces only; persistence, authentication and row
// ownership live behind them. The production implementation is backed by
// Postgres, tests use the in-memory one.
package store

import (
	"context"
	"sync"
	"techmart_server/structs/tables"
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated identity context. It is passed explicitly into
// every component that issues remote calls; there is no ambient current
// session.
type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	SessionID uuid.UUID `json:"-"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

type EventType string

const (
	EventSignedIn  EventType = "SIGNED_IN"
	EventSignedOut EventType = "SIGNED_OUT"
)

// SessionEvent describes one auth-state transition. Session is always the
// session the event concerns; for EventSignedOut it is the session that
// just ended.
type SessionEvent struct {
	Type    EventType
	Session *Session
}

// Auth is session-based authentication with a subscribable change
// notification.
type Auth interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, fullName string) (*Session, error)
	SignOut(ctx context.Context, session *Session) error
	// CurrentSession restores a session from a previously issued token.
	// An invalid, expired or revoked token returns an error.
	CurrentSession(ctx context.Context, token string) (*Session, error)
	OnSessionChange(fn func(SessionEvent)) *Subscription
}

// ProductStore is table-level CRUD over catalog rows.
type ProductStore interface {
	SelectAll(ctx context.Context) ([]tables.Product, error)
	Insert(ctx context.Context, product *tables.Product) (*tables.Product, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int, error)
}

// CartStore is table-level CRUD over cart rows, always filtered by owner.
// Row-level mutations take the owner alongside the row id; a row belonging
// to a different user is treated as absent.
type CartStore interface {
	// SelectByUser returns the user's cart rows joined with their products.
	SelectByUser(ctx context.Context, userID uuid.UUID) ([]tables.CartItem, error)
	Insert(ctx context.Context, item *tables.CartItem) (*tables.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	DeleteByID(ctx context.Context, userID, itemID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// ProfileStore reads account rows. RoleOf is the single lookup behind the
// admin gate.
type ProfileStore interface {
	RoleOf(ctx context.Context, userID uuid.UUID) (string, error)
	SelectByID(ctx context.Context, userID uuid.UUID) (*tables.Profile, error)
}

// RevocationList invalidates issued session tokens server-side.
type RevocationList interface {
	RevokeSession(sessionID uuid.UUID, exp time.Time) error
	IsSessionRevoked(sessionID uuid.UUID) (bool, error)
}

// Client bundles the remote store surface consumed by the services.
type Client struct {
	Auth     Auth
	Products ProductStore
	Carts    CartStore
	Profiles ProfileStore
}

// Subscription is a registered session-change callback. Unsubscribe removes
// it so late notifications cannot reach a torn-down observer.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// sessionNotifier is a callback registry shared by the Auth
// implementations. Callbacks run synchronously with respect to the caller.
type sessionNotifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(SessionEvent)
}

func (n *sessionNotifier) subscribe(fn func(SessionEvent)) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func(SessionEvent))
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return &Subscription{cancel: func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}}
}

func (n *sessionNotifier) notify(event SessionEvent) {
	n.mu.Lock()
	fns := make([]func(SessionEvent), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}
