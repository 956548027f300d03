package store

import (
	"context"
	"sort"
	"sync"
	"techmart_server/lib"
	"techmart_server/structs/tables"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory store backend. It implements the full Client
// surface with map-backed tables and is used by tests and local runs
// without a database.
type Memory struct {
	mu        sync.Mutex
	products  map[uuid.UUID]tables.Product
	carts     map[uuid.UUID]tables.CartItem
	profiles  map[uuid.UUID]tables.Profile
	passwords map[string]string
	sessions  map[uuid.UUID]*Session
	revoked   map[uuid.UUID]bool
	seq       int64

	notifier sessionNotifier

	// forcedErr, when set, is returned by every store operation. Tests use
	// it to simulate a remote outage.
	forcedErr error
}

func NewMemory() *Memory {
	return &Memory{
		products:  make(map[uuid.UUID]tables.Product),
		carts:     make(map[uuid.UUID]tables.CartItem),
		profiles:  make(map[uuid.UUID]tables.Profile),
		passwords: make(map[string]string),
		sessions:  make(map[uuid.UUID]*Session),
		revoked:   make(map[uuid.UUID]bool),
	}
}

// Client returns the store surface backed by this Memory.
func (m *Memory) Client() *Client {
	return &Client{
		Auth:     &memoryAuth{m},
		Products: &memoryProducts{m},
		Carts:    &memoryCarts{m},
		Profiles: &memoryProfiles{m},
	}
}

// FailWith makes every subsequent operation return err until called again
// with nil.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forcedErr = err
}

// SeedProduct inserts a catalog row directly, bypassing failure injection.
func (m *Memory) SeedProduct(product tables.Product) tables.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = m.tick()
	}
	m.products[product.ID] = product
	return product
}

// SeedProfile inserts an account row directly with the given password.
func (m *Memory) SeedProfile(profile tables.Profile, password string) tables.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	if profile.Id == uuid.Nil {
		profile.Id = uuid.New()
	}
	if profile.Role == "" {
		profile.Role = "user"
	}
	m.profiles[profile.Id] = profile
	m.passwords[profile.Email] = password
	return profile
}

// ActiveSessions reports how many sessions are currently live.
func (m *Memory) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CartRows returns a snapshot of the stored cart rows for assertions.
func (m *Memory) CartRows() []tables.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]tables.CartItem, 0, len(m.carts))
	for _, item := range m.carts {
		rows = append(rows, item)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows
}

// tick produces strictly increasing timestamps so insertion order survives
// the created_at sort even within one wall-clock nanosecond.
func (m *Memory) tick() time.Time {
	m.seq++
	return time.Unix(0, m.seq)
}

type memoryAuth struct {
	m *Memory
}

func (a *memoryAuth) SignIn(ctx context.Context, email, password string) (*Session, error) {
	a.m.mu.Lock()
	if err := a.m.forcedErr; err != nil {
		a.m.mu.Unlock()
		return nil, err
	}

	stored, ok := a.m.passwords[email]
	if !ok || stored != password {
		a.m.mu.Unlock()
		return nil, lib.ErrInvalidCredentials
	}

	var profile tables.Profile
	for _, p := range a.m.profiles {
		if p.Email == email {
			profile = p
			break
		}
	}

	session := &Session{
		UserID:    profile.Id,
		Email:     profile.Email,
		SessionID: uuid.New(),
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	a.m.sessions[session.SessionID] = session
	a.m.mu.Unlock()

	a.m.notifier.notify(SessionEvent{Type: EventSignedIn, Session: session})
	return session, nil
}

func (a *memoryAuth) SignUp(ctx context.Context, email, password, fullName string) (*Session, error) {
	a.m.mu.Lock()
	if err := a.m.forcedErr; err != nil {
		a.m.mu.Unlock()
		return nil, err
	}

	if _, exists := a.m.passwords[email]; exists {
		a.m.mu.Unlock()
		return nil, lib.NewStoreError("insert", "profiles", lib.ErrConflict)
	}

	profile := tables.Profile{
		Id:       uuid.New(),
		Email:    email,
		FullName: fullName,
		Role:     "user",
	}
	a.m.profiles[profile.Id] = profile
	a.m.passwords[email] = password

	session := &Session{
		UserID:    profile.Id,
		Email:     profile.Email,
		SessionID: uuid.New(),
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	a.m.sessions[session.SessionID] = session
	a.m.mu.Unlock()

	a.m.notifier.notify(SessionEvent{Type: EventSignedIn, Session: session})
	return session, nil
}

func (a *memoryAuth) SignOut(ctx context.Context, session *Session) error {
	if session == nil {
		return lib.ErrNoSession
	}

	a.m.mu.Lock()
	if err := a.m.forcedErr; err != nil {
		a.m.mu.Unlock()
		return err
	}
	a.m.revoked[session.SessionID] = true
	delete(a.m.sessions, session.SessionID)
	a.m.mu.Unlock()

	a.m.notifier.notify(SessionEvent{Type: EventSignedOut, Session: session})
	return nil
}

func (a *memoryAuth) CurrentSession(ctx context.Context, token string) (*Session, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()

	if err := a.m.forcedErr; err != nil {
		return nil, err
	}

	for _, session := range a.m.sessions {
		if session.Token == token {
			if a.m.revoked[session.SessionID] {
				return nil, lib.ErrRevokedToken
			}
			return session, nil
		}
	}
	return nil, lib.ErrInvalidToken
}

func (a *memoryAuth) OnSessionChange(fn func(SessionEvent)) *Subscription {
	return a.m.notifier.subscribe(fn)
}

type memoryProducts struct {
	m *Memory
}

func (s *memoryProducts) SelectAll(ctx context.Context) ([]tables.Product, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return nil, err
	}

	products := make([]tables.Product, 0, len(s.m.products))
	for _, p := range s.m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (s *memoryProducts) Insert(ctx context.Context, product *tables.Product) (*tables.Product, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return nil, err
	}

	inserted := *product
	if inserted.ID == uuid.Nil {
		inserted.ID = uuid.New()
	}
	inserted.CreatedAt = s.m.tick()
	inserted.UpdatedAt = inserted.CreatedAt
	s.m.products[inserted.ID] = inserted
	return &inserted, nil
}

func (s *memoryProducts) Update(ctx context.Context, id uuid.UUID, patch map[string]any) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return err
	}

	product, ok := s.m.products[id]
	if !ok {
		return lib.NewStoreError("update", "products", lib.ErrNotFound)
	}

	for key, value := range patch {
		switch key {
		case "name":
			product.Name = value.(string)
		case "description":
			product.Description = value.(string)
		case "price":
			product.Price = value.(float64)
		case "image_url":
			product.ImageURL = value.(string)
		case "updated_at":
			product.UpdatedAt = value.(time.Time)
		}
	}
	s.m.products[id] = product
	return nil
}

func (s *memoryProducts) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return 0, err
	}

	if _, ok := s.m.products[id]; !ok {
		return 0, nil
	}
	delete(s.m.products, id)
	return 1, nil
}

type memoryCarts struct {
	m *Memory
}

func (s *memoryCarts) SelectByUser(ctx context.Context, userID uuid.UUID) ([]tables.CartItem, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return nil, err
	}

	items := make([]tables.CartItem, 0)
	for _, item := range s.m.carts {
		if item.UserID != userID {
			continue
		}
		if product, ok := s.m.products[item.ProductID]; ok {
			p := product
			item.Product = &p
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *memoryCarts) Insert(ctx context.Context, item *tables.CartItem) (*tables.CartItem, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return nil, err
	}

	inserted := *item
	if inserted.ID == uuid.Nil {
		inserted.ID = uuid.New()
	}
	inserted.CreatedAt = s.m.tick()
	s.m.carts[inserted.ID] = inserted
	return &inserted, nil
}

func (s *memoryCarts) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return err
	}

	item, ok := s.m.carts[itemID]
	if !ok || item.UserID != userID {
		return lib.NewStoreError("update", "cart_items", lib.ErrNotFound)
	}
	item.Quantity = quantity
	s.m.carts[itemID] = item
	return nil
}

func (s *memoryCarts) DeleteByID(ctx context.Context, userID, itemID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return err
	}

	item, ok := s.m.carts[itemID]
	if !ok || item.UserID != userID {
		return lib.NewStoreError("delete", "cart_items", lib.ErrNotFound)
	}
	delete(s.m.carts, itemID)
	return nil
}

func (s *memoryCarts) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return 0, err
	}

	deleted := 0
	for id, item := range s.m.carts {
		if item.UserID == userID {
			delete(s.m.carts, id)
			deleted++
		}
	}
	return deleted, nil
}

type memoryProfiles struct {
	m *Memory
}

func (s *memoryProfiles) RoleOf(ctx context.Context, userID uuid.UUID) (string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return "", err
	}

	profile, ok := s.m.profiles[userID]
	if !ok {
		return "", lib.NewStoreError("select", "profiles", lib.ErrNotFound)
	}
	return profile.Role, nil
}

func (s *memoryProfiles) SelectByID(ctx context.Context, userID uuid.UUID) (*tables.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if err := s.m.forcedErr; err != nil {
		return nil, err
	}

	profile, ok := s.m.profiles[userID]
	if !ok {
		return nil, lib.NewStoreError("select", "profiles", lib.ErrNotFound)
	}
	return &profile, nil
}
