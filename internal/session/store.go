package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"spellbudex/internal/pkg/errs"
)

// Persisted under exactly two keys, mirroring the browser-storage layout the
// backend contract assumes.
const (
	tokenFile   = "token"
	profileFile = "profile.json"
)

// Store owns the session record. Many components read it; only the login,
// logout, registration and 401-eviction paths write, and every write replaces
// the record wholesale.
type Store struct {
	mu      sync.Mutex
	dir     string
	current Session
	loaded  bool
	log     *slog.Logger
}

func NewStore(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errs.Wrap(err, "failed to create session state dir")
	}
	return &Store{dir: dir, log: log}, nil
}

// Read returns the current session. On first call it loads the persisted
// record; an unparsable profile behaves as Clear() followed by an empty read.
func (s *Store) Read() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.current = s.load()
		s.loaded = true
	}
	return s.current
}

// Token returns the stored bearer credential, empty when logged out.
func (s *Store) Token() string {
	return s.Read().Token
}

func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(sess.Profile)
	if err != nil {
		return errs.Wrap(err, "failed to encode profile")
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(sess.Token), 0o600); err != nil {
		return errs.Wrap(err, "failed to persist credential")
	}
	if err := os.WriteFile(filepath.Join(s.dir, profileFile), raw, 0o600); err != nil {
		return errs.Wrap(err, "failed to persist profile")
	}

	s.current = sess
	s.loaded = true
	return nil
}

// Clear removes both persisted keys. Used by logout and 401 eviction.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	for _, name := range []string{tokenFile, profileFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove session key", "key", name, "error", err.Error())
		}
	}
	s.current = Session{}
	s.loaded = true
}

func (s *Store) load() Session {
	rawToken, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return Session{}
	}
	token := strings.TrimSpace(string(rawToken))
	if token == "" {
		return Session{}
	}

	rawProfile, err := os.ReadFile(filepath.Join(s.dir, profileFile))
	if err != nil {
		s.clearLocked()
		return Session{}
	}

	var profile Profile
	if err := json.Unmarshal(rawProfile, &profile); err != nil {
		s.log.Warn("stored profile is unparsable, evicting session", "error", err.Error())
		s.clearLocked()
		return Session{}
	}

	return Session{Token: token, Profile: profile}
}
