package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/polkiloo/invoicebox/internal/domain/model"
)

const sessionFileName = "session.yaml"

// storedSession is the on-disk shape of the terminal session. Token and user
// are written and removed together.
type storedSession struct {
	Token string      `yaml:"token"`
	User  *model.User `yaml:"user"`
}

// SessionFile keeps the terminal client's session in a YAML file.
type SessionFile struct {
	path string
}

// NewSessionFile returns a SessionFile stored at path.
func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

// DefaultSessionPath is $HOME/.invoicebox/session.yaml.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".invoicebox", sessionFileName), nil
}

// Path returns the file location.
func (f *SessionFile) Path() string {
	return f.path
}

// Load returns the stored session. A missing file is an anonymous session; a
// file holding only one half of the pair is removed and treated the same way.
func (f *SessionFile) Load() (model.Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.Session{}, nil
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("reading session file: %w", err)
	}

	var stored storedSession
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return model.Session{}, f.Clear()
	}
	s, err := model.NewSession(stored.Token, stored.User)
	if err != nil {
		return model.Session{}, f.Clear()
	}
	return s, nil
}

// Save writes s, replacing any previous session.
func (f *SessionFile) Save(s model.Session) error {
	if !s.Authenticated() {
		return f.Clear()
	}
	data, err := yaml.Marshal(storedSession{Token: s.Token, User: s.User})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session succeeds.
func (f *SessionFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

