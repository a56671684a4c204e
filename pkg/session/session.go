package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrNotAuthenticated reports a guard with no active session.
	ErrNotAuthenticated = errors.New("session: not authenticated")
	// ErrAdminRequired reports a sign-in by a user without the admin role.
	ErrAdminRequired = errors.New("session: admin role required")
)

// Credentials is the authenticated identity returned by the backend.
type Credentials struct {
	Token    string
	Username string
	Role     string
}

// Authenticator exchanges an email and password for credentials.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Credentials, error)
}

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a single file with owner-only permissions.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore builds a store writing to path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load returns the stored token, or empty when none exists.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with 0600 permissions, creating parent directories.
func (s *FileTokenStore) Save(token string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session: create token dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("session: write token: %w", err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: clear token: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token in memory, for tests and ephemeral runs.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Guard owns the session lifecycle: restoring a persisted token, signing in
// with an admin check, exposing the token to API clients, and invalidating the
// session when the backend rejects it.
type Guard struct {
	store TokenStore
	auth  Authenticator

	mu    sync.RWMutex
	creds Credentials
}

// NewGuard builds a guard. A nil store falls back to an in-memory store.
func NewGuard(store TokenStore, auth Authenticator) *Guard {
	if store == nil {
		store = &MemoryTokenStore{}
	}
	return &Guard{store: store, auth: auth}
}

// Restore loads a previously saved token. It reports whether a session was
// restored; a missing token is not an error.
func (g *Guard) Restore() (bool, error) {
	token, err := g.store.Load()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}
	g.mu.Lock()
	g.creds = Credentials{Token: token}
	g.mu.Unlock()
	return true, nil
}

// Authenticate signs in and persists the token. Non-admin users are rejected
// with ErrAdminRequired and no session is established.
func (g *Guard) Authenticate(ctx context.Context, email, password string) (Credentials, error) {
	if g.auth == nil {
		return Credentials{}, errors.New("session: no authenticator configured")
	}
	creds, err := g.auth.SignIn(ctx, email, password)
	if err != nil {
		return Credentials{}, err
	}
	if !strings.EqualFold(creds.Role, "admin") {
		return Credentials{}, ErrAdminRequired
	}
	if err := g.store.Save(creds.Token); err != nil {
		return Credentials{}, err
	}
	g.mu.Lock()
	g.creds = creds
	g.mu.Unlock()
	return creds, nil
}

// Token implements the API client's token source. The second result is false
// when no session is active.
func (g *Guard) Token() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.creds.Token, g.creds.Token != ""
}

// Authenticated reports whether a session is active.
func (g *Guard) Authenticated() bool {
	_, ok := g.Token()
	return ok
}

// Logout drops the session and clears the stored token. It is idempotent.
func (g *Guard) Logout() error {
	g.mu.Lock()
	g.creds = Credentials{}
	g.mu.Unlock()
	return g.store.Clear()
}

// Invalidate drops the session after the backend rejected the token. Unlike
// Logout it never fails; a store error is ignored since the in-memory session
// is already gone.
func (g *Guard) Invalidate() {
	g.mu.Lock()
	g.creds = Credentials{}
	g.mu.Unlock()
	_ = g.store.Clear()
}
