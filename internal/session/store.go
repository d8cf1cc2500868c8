package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"store_admin/internal/domain"
)

type tokenFile struct {
	AccessToken string `json:"accessToken"`
}

// Store holds the bearer credential in a JSON file under the user's home.
// The file is re-read on every Token call, so a credential written or cleared
// by another process is observed immediately. There is no expiry tracking;
// expiry is discovered reactively when the backend answers 401.
type Store struct {
	path string
	log  *logrus.Logger
}

func NewStore(path string, logger *logrus.Logger) *Store {
	return &Store{path: path, log: logger}
}

// Token reads the stored credential. A missing file or an empty token yields
// domain.ErrNoSession.
func (s *Store) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrNoSession
		}
		s.log.Errorf("Session: Failed to read token file %s: %v", s.path, err)
		return "", fmt.Errorf("failed to read session token: %w", err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		s.log.Warnf("Session: Token file %s is malformed, treating as no session: %v", s.path, err)
		return "", domain.ErrNoSession
	}
	if tf.AccessToken == "" {
		return "", domain.ErrNoSession
	}
	return tf.AccessToken, nil
}

// Save writes the credential with owner-only permissions, creating the parent
// directory if needed.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.Marshal(tokenFile{AccessToken: token})
	if err != nil {
		return fmt.Errorf("failed to encode session token: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}
	s.log.Debugf("Session: Stored credential at %s", s.path)
	return nil
}

// Clear removes the stored credential. Clearing an absent credential is not
// an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		s.log.Errorf("Session: Failed to remove token file %s: %v", s.path, err)
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	s.log.Debug("Session: Credential cleared")
	return nil
}
