// Package identity manages registered users and the single active session
// of a store. The session has two states: anonymous and authenticated.
// Login and Register move it to authenticated, Logout back to anonymous, and
// RestoreSession re-installs whatever session was persisted last.
//
// Passwords are kept and compared in plaintext. This package must not back
// anything reachable beyond a local demo.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/sonar-libras/sonar/internal/database"
	"github.com/sonar-libras/sonar/internal/idgen"
	"github.com/sonar-libras/sonar/internal/logging"
	"github.com/sonar-libras/sonar/pkg/models"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCategory    = errors.New("invalid account category")
)

// Option configures a Manager
type Option func(*Manager)

// WithClock overrides the time source used for creation timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// Manager owns registration, authentication and the session lifecycle
type Manager struct {
	store *database.Store
	ids   idgen.Generator
	now   func() time.Time
	log   *slog.Logger

	mu      sync.RWMutex
	session models.Session
}

// NewManager creates an anonymous manager. Call RestoreSession to pick up a
// persisted session.
func NewManager(store *database.Store, ids idgen.Generator, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ids:   ids,
		now:   time.Now,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register creates a user and logs it in. The email must not belong to any
// existing user (exact, case-sensitive comparison); otherwise
// ErrDuplicateEmail is returned and nothing is written.
func (m *Manager) Register(ctx context.Context, name, email, password string, category models.Category) (models.Session, error) {
	if !category.Valid() {
		return models.Session{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	user := models.User{
		ID:        m.ids.NewID(),
		Name:      name,
		Email:     email,
		Password:  password,
		Category:  category,
		CreatedAt: m.now(),
	}

	err := database.UpdateCollection(ctx, m.store, database.KeyUsers, func(users []models.User) ([]models.User, error) {
		if _, found := slice.Find(users, func(u models.User) bool { return u.Email == email }); found {
			return nil, ErrDuplicateEmail
		}
		return append(users, user), nil
	})
	if err != nil {
		return models.Session{}, err
	}

	m.log.DebugContext(ctx, "user registered", "user_id", user.ID, "type", user.Category)
	return m.install(ctx, user.Session())
}

// Login authenticates by exact email and password. Any mismatch yields
// ErrInvalidCredentials and leaves the current session untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Session, error) {
	users, err := database.LoadCollection[models.User](ctx, m.store, database.KeyUsers)
	if err != nil {
		return models.Session{}, err
	}

	user, found := slice.Find(users, func(u models.User) bool {
		return u.Email == email && u.Password == password
	})
	if !found {
		return models.Session{}, ErrInvalidCredentials
	}

	return m.install(ctx, user.Session())
}

// Logout clears the session in memory and in the store. The in-memory
// session is always cleared, even if removing the persisted copy fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.session = models.Session{}
	m.mu.Unlock()

	if err := m.store.Delete(ctx, database.KeySession); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// RestoreSession installs the persisted session, if any. It is not checked
// against the user collection.
func (m *Manager) RestoreSession(ctx context.Context) error {
	var s models.Session
	ok, err := database.LoadDocument(ctx, m.store, database.KeySession, &s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ok && !s.Anonymous() {
		m.session = s
	} else {
		m.session = models.Session{}
	}
	return nil
}

// Current returns the active session and whether one exists
func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, !m.session.Anonymous()
}

// Authenticated reports whether a session is active
func (m *Manager) Authenticated() bool {
	_, ok := m.Current()
	return ok
}

// Users lists every registered user without passwords
func (m *Manager) Users(ctx context.Context) ([]models.Session, error) {
	users, err := database.LoadCollection[models.User](ctx, m.store, database.KeyUsers)
	if err != nil {
		return nil, err
	}
	return slice.Map(users, func(_ int, u models.User) models.Session {
		return u.Session()
	}), nil
}

func (m *Manager) install(ctx context.Context, s models.Session) (models.Session, error) {
	if err := database.SaveDocument(ctx, m.store, database.KeySession, s); err != nil {
		return models.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()

	m.log.DebugContext(ctx, "session started", "user_id", s.ID)
	return s, nil
}
