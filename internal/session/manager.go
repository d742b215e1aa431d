// Package session owns the signed-in principal: login, logout, restart
// survival and role gating. It is constructed explicitly and handed to
// whatever needs it; nothing here is global state.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nspraveen/tripnest/internal/client"
	"github.com/nspraveen/tripnest/internal/domain"
	"github.com/nspraveen/tripnest/internal/store"
	"github.com/nspraveen/tripnest/internal/util"
)

var ErrValidation = errors.New("session validation failed")

type AuthAPI interface {
	LoginAdmin(ctx context.Context, email, password string) (bool, error)
	LoginUser(ctx context.Context, email, password string) (*domain.Principal, string, error)
	Register(ctx context.Context, in client.RegisterInput) error
}

type Storage interface {
	Get(key string, out any) error
	Put(key string, value any) error
	Delete(key string) error
}

// persistedSession is the single durable unit under store.KeySession.
// The bearer token is optional; the admin path does not issue one.
type persistedSession struct {
	Principal domain.Principal `json:"principal"`
	Token     string           `json:"token,omitempty"`
}

type Manager struct {
	auth  AuthAPI
	store Storage

	mu      sync.Mutex
	current *domain.Principal
	token   string
	now     func() time.Time
}

func NewManager(storage Storage, auth AuthAPI) *Manager {
	return &Manager{auth: auth, store: storage, now: time.Now}
}

// Restore loads the persisted session at startup. It never fails: a
// missing, malformed or stale record simply leaves the manager signed out.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var saved persistedSession
	if err := m.store.Get(store.KeySession, &saved); err != nil {
		return
	}
	if !saved.Principal.Valid() {
		return
	}
	if saved.Token != "" && !m.tokenUsable(saved.Token) {
		return
	}

	principal := saved.Principal
	m.current = &principal
	m.token = saved.Token
}

// Login tries the admin path first, then the user path, matching the
// collaborator's split login endpoints. Session state only changes after
// the durable write succeeds.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.Principal, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	isAdmin, err := m.auth.LoginAdmin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		principal := domain.Principal{Email: email, Role: domain.RoleAdmin}
		if err := m.establish(principal, ""); err != nil {
			return nil, err
		}
		return &principal, nil
	}

	principal, token, err := m.auth.LoginUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.establish(*principal, token); err != nil {
		return nil, err
	}
	return principal, nil
}

type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	ContactNumber string
	Address       string
}

func (m *Manager) Register(ctx context.Context, in RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if err := util.ValidatePassword(in.Password); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return m.auth.Register(ctx, client.RegisterInput{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(strings.ToLower(in.Email)),
		Password:      in.Password,
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Address:       strings.TrimSpace(in.Address),
	})
}

// Logout is idempotent; calling it signed out is a no-op.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.token = ""
	return m.store.Delete(store.KeySession)
}

func (m *Manager) Current() *domain.Principal {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	principal := *m.current
	return &principal
}

func (m *Manager) SignedIn() bool {
	return m.Current() != nil
}

func (m *Manager) IsAdmin() bool {
	principal := m.Current()
	return principal != nil && principal.Role == domain.RoleAdmin
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) establish(principal domain.Principal, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Put(store.KeySession, persistedSession{Principal: principal, Token: token}); err != nil {
		return err
	}
	m.current = &principal
	m.token = token
	return nil
}

// tokenUsable checks that a stored bearer token still parses and has not
// expired. The signature is the issuer's to verify; a stale or mangled
// token just means the session is gone.
func (m *Manager) tokenUsable(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp != nil && m.now().After(exp.Time) {
		return false
	}
	return true
}
