package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"clinroots-cli/internal/model"
)

const sessionFileName = "session.json"

// Store persists the authenticated identity and its bearer token for the
// lifetime of a login. Dir defaults to ~/.clinroots when empty.
//
// The file is intentionally "best effort": a missing or corrupt session reads
// back as anonymous, never as an error the caller has to handle.
type Store struct {
	Dir string
}

type state struct {
	Version int        `json:"version"`
	User    model.User `json:"user"`
	Token   string     `json:"token"`
}

func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".clinroots"), nil
}

func (s Store) dir() (string, error) {
	if strings.TrimSpace(s.Dir) != "" {
		return s.Dir, nil
	}
	return DefaultDir()
}

func (s Store) path() (string, error) {
	d, err := s.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, sessionFileName), nil
}

// Restore reads any persisted identity and token. The third return reports
// whether an authenticated session exists; a record missing either half is
// treated as anonymous so identity is never reported without its token.
func (s Store) Restore() (model.User, string, bool) {
	p, err := s.path()
	if err != nil {
		return model.User{}, "", false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return model.User{}, "", false
	}
	var st state
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupt session data means "not logged in", not a fatal condition.
		return model.User{}, "", false
	}
	if strings.TrimSpace(st.Token) == "" || strings.TrimSpace(st.User.Email) == "" {
		return model.User{}, "", false
	}
	return st.User, st.Token, true
}

// Commit persists the identity and token, replacing any prior session.
func (s Store) Commit(user model.User, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("session: refusing to commit identity without token")
	}
	d, err := s.dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(state{Version: 1, User: user, Token: token}, "", "  ")
	if err != nil {
		return err
	}
	p := filepath.Join(d, sessionFileName)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Clear erases the session. Clearing an absent session is not an error.
func (s Store) Clear() error {
	p, err := s.path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Token returns the bearer token if a session exists, else "".
func (s Store) Token() string {
	_, tok, ok := s.Restore()
	if !ok {
		return ""
	}
	return tok
}
