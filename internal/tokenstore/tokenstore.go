// Package tokenstore persists the session credentials between CLI runs, the
// way the browser client kept them in localStorage across page reloads.
package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// The four keys the store recognizes. authToken is a legacy alias an older
// login flow wrote; it is read as a fallback and always cleared with the rest.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
	KeyLegacyToken  = "authToken"
)

var knownKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser, KeyLegacyToken}

// Store is a file-backed key-value store. Reads of a missing or corrupt file
// yield an empty store rather than an error; the worst case is a re-login.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// Open loads the store at path. It never fails: unreadable state starts empty.
func Open(path string) *Store {
	s := &Store{path: path, values: map[string]string{}}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return s
	}
	s.values = values
	return s
}

// Get returns the stored value for key
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok && v != ""
}

// AccessToken returns the current access token, falling back to the legacy
// authToken key when the modern one is absent
func (s *Store) AccessToken() (string, bool) {
	if v, ok := s.Get(KeyAccessToken); ok {
		return v, true
	}
	return s.Get(KeyLegacyToken)
}

// Set stores a single value and persists the file
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

// SetAll stores several values in one write, so a login either persists all
// of its keys or none of them
func (s *Store) SetAll(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	return s.flush()
}

// Remove deletes a single key and persists the file
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flush()
}

// Clear wipes all four known keys, including the legacy alias
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range knownKeys {
		delete(s.values, k)
	}
	return s.flush()
}

// flush writes the store atomically: temp file then rename, so a crash never
// leaves a partially-written credential file. Callers hold s.mu.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}
