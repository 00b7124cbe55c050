// session.go - Server-held session store mapping opaque tokens to identities

// Package session implements the server side of cookie-based authentication:
// a concurrent-safe map from cryptographically random tokens to identity
// snapshots with a fixed absolute expiry.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"go-tree-catalog/models"
)

// CookieName is the cookie the session token travels in.
const CookieName = "tree_session"

const tokenBytes = 32

// Identity is the snapshot associated with a session token. It is taken at
// login or registration and not refreshed from the users table per request;
// avatar changes are pushed into live sessions via UpdateAvatar, and role is
// immutable after account creation.
type Identity struct {
	UserID   uint
	Username string
	Avatar   *string
	Role     models.Role
}

type entry struct {
	identity  Identity
	expiresAt time.Time
}

// Manager owns the token-to-identity map. All methods are safe for use from
// concurrent request handlers. A single user may hold any number of live
// sessions; creating or destroying one never touches the others.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewManager returns a Manager issuing sessions with the given absolute TTL
// and starts a background sweep that evicts expired entries.
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Create issues a new token for the user and stores the identity snapshot.
func (m *Manager) Create(user *models.User) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[token] = entry{
		identity: Identity{
			UserID:   user.ID,
			Username: user.Username,
			Avatar:   user.Avatar,
			Role:     user.Role,
		},
		expiresAt: time.Now().Add(m.ttl),
	}
	return token, nil
}

// Resolve returns the identity for token, or ok=false when the token is
// unknown or expired. The TTL is absolute: resolving never renews it.
func (m *Manager) Resolve(token string) (Identity, bool) {
	m.mu.RLock()
	e, ok := m.entries[token]
	m.mu.RUnlock()
	if !ok {
		return Identity{}, false
	}
	if time.Now().After(e.expiresAt) {
		m.Destroy(token)
		return Identity{}, false
	}
	return e.identity, true
}

// Destroy removes the session for token. Destroying an unknown token is a
// no-op.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	delete(m.entries, token)
	m.mu.Unlock()
}

// UpdateAvatar rewrites the avatar in every live session belonging to userID,
// keeping identity snapshots consistent after an avatar upload.
func (m *Manager) UpdateAvatar(userID uint, avatar *string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, e := range m.entries {
		if e.identity.UserID == userID {
			e.identity.Avatar = avatar
			m.entries[token] = e
		}
	}
}

// DestroyAllForUser removes every session belonging to userID. Used when an
// admin deletes an account so the deleted user is logged out everywhere.
func (m *Manager) DestroyAllForUser(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, e := range m.entries {
		if e.identity.UserID == userID {
			delete(m.entries, token)
		}
	}
}

// Stop terminates the background sweep goroutine.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for token, e := range m.entries {
				if now.After(e.expiresAt) {
					delete(m.entries, token)
				}
			}
			m.mu.Unlock()
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
