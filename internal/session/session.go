// Package session owns the in-memory session and the role-based
// authorization predicates. It is the only writer of the token store besides
// the HTTP client's refresh path.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"rotierp/internal/api"
	"rotierp/internal/model"
	"rotierp/internal/tokenstore"

	"go.uber.org/zap"
)

// Manager holds the current user and mediates every session mutation
type Manager struct {
	auth  *api.Auth
	store *tokenstore.Store
	log   *zap.Logger

	mu   sync.RWMutex
	user *model.UserRecord
}

func NewManager(auth *api.Auth, store *tokenstore.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{auth: auth, store: store, log: log}
}

// CurrentUser returns the signed-in user, or nil
func (m *Manager) CurrentUser() *model.UserRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a user is present
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// Login authenticates and persists the full token set in one write. On
// failure neither the store nor the in-memory session changes.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.UserRecord, error) {
	result, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	userJSON, err := json.Marshal(result.User)
	if err != nil {
		return nil, err
	}
	if err := m.store.SetAll(map[string]string{
		tokenstore.KeyAccessToken:  result.AccessToken,
		tokenstore.KeyRefreshToken: result.RefreshToken,
		tokenstore.KeyUser:         string(userJSON),
	}); err != nil {
		return nil, err
	}

	m.mu.Lock()
	u := result.User
	m.user = &u
	m.mu.Unlock()

	m.log.Info("logged in", zap.String("email", result.User.Email), zap.String("role", string(result.User.Role)))
	return &u, nil
}

// Logout clears the session unconditionally. The server-side logout is best
// effort: an unreachable server must not keep credentials on disk.
func (m *Manager) Logout(ctx context.Context) {
	refreshToken, _ := m.store.Get(tokenstore.KeyRefreshToken)
	callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := m.auth.Logout(callCtx, refreshToken); err != nil {
		m.log.Debug("server-side logout failed", zap.Error(err))
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		m.log.Warn("clearing credentials failed", zap.Error(err))
	}
}

// Initialize restores a persisted session at process start. A cached user is
// restored optimistically, then re-validated against /auth/profile once; if
// the validation fails the stale session is cleared rather than trusted.
func (m *Manager) Initialize(ctx context.Context) error {
	_, hasToken := m.store.AccessToken()
	cached, hasUser := m.store.Get(tokenstore.KeyUser)
	if !hasToken || !hasUser {
		// A half-written store (token without user, or the reverse) is not a
		// restorable session; wipe it so the keys stay paired across runs.
		if hasToken != hasUser {
			if err := m.store.Clear(); err != nil {
				m.log.Warn("clearing credentials failed", zap.Error(err))
			}
		}
		return nil
	}

	var user model.UserRecord
	if err := json.Unmarshal([]byte(cached), &user); err == nil {
		m.mu.Lock()
		m.user = &user
		m.mu.Unlock()
	}

	fresh, err := m.auth.Profile(ctx)
	if err != nil {
		m.mu.Lock()
		m.user = nil
		m.mu.Unlock()
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Warn("clearing credentials failed", zap.Error(clearErr))
		}
		return err
	}

	userJSON, jsonErr := json.Marshal(fresh)
	if jsonErr == nil {
		if err := m.store.Set(tokenstore.KeyUser, string(userJSON)); err != nil {
			m.log.Warn("persisting refreshed user failed", zap.Error(err))
		}
	}
	m.mu.Lock()
	m.user = fresh
	m.mu.Unlock()
	return nil
}

// Register creates a new account; it does not sign the user in
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (*model.UserRecord, error) {
	return m.auth.Register(ctx, req)
}

// HasRole reports whether the current user's role is one of the given roles
func (m *Manager) HasRole(roles ...model.Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return false
	}
	for _, r := range roles {
		if m.user.Role == r {
			return true
		}
	}
	return false
}

// HasMinRole reports whether the current user ranks at or above min in the
// hierarchy. Unknown roles rank 0 and satisfy nothing.
func (m *Manager) HasMinRole(min model.Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return false
	}
	return m.user.Role.Rank() >= min.Rank()
}
