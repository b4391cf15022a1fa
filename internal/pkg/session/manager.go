package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
	"github.com/polkiloo/invoicebox/internal/domain/model"
)

// CookieName is the name of the browser session cookie.
const CookieName = "invoicebox_session"

// Keys under which the session values are stored.
const (
	valueToken = "token"
	valueUser  = "user"
	valueID    = "sid"
)

// Manager persists model.Session values through a gorilla sessions.Store.
// Token and user are always written and cleared together.
type Manager struct {
	store  sessions.Store
	logger *slog.Logger
}

// NewManager creates a session manager over store.
func NewManager(store sessions.Store, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Load decodes the request session. It returns the session and the id that
// keys per-session view state. A request without a session yields the zero
// Session and no error. Half-populated or undecodable sessions return an
// error and must be cleared by the caller.
func (m *Manager) Load(r *http.Request) (model.Session, string, error) {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		return model.Session{}, "", fmt.Errorf("decode session: %w", err)
	}

	token, _ := sess.Values[valueToken].(string)
	rawUser, _ := sess.Values[valueUser].(string)
	id, _ := sess.Values[valueID].(string)

	if token == "" && rawUser == "" {
		return model.Session{}, "", nil
	}
	if token == "" || rawUser == "" {
		return model.Session{}, "", domainErrors.ErrInvalidSession
	}

	var user model.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return model.Session{}, "", fmt.Errorf("decode session user: %w", domainErrors.ErrInvalidSession)
	}
	if _, err := model.ParseRole(string(user.Role)); err != nil {
		return model.Session{}, "", domainErrors.ErrInvalidSession
	}

	s, err := model.NewSession(token, &user)
	if err != nil {
		return model.Session{}, "", err
	}
	return s, id, nil
}

// Save writes the session and returns its freshly generated view-state id.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s model.Session) (string, error) {
	if !s.Valid() || !s.Authenticated() {
		return "", domainErrors.ErrInvalidSession
	}

	rawUser, err := json.Marshal(s.User)
	if err != nil {
		return "", fmt.Errorf("encode session user: %w", err)
	}

	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		m.logger.Debug("replacing undecodable session", slog.String("error", err.Error()))
	}
	if sess == nil {
		sess = sessions.NewSession(m.store, CookieName)
	}

	id := uuid.NewString()
	sess.Values = map[interface{}]interface{}{
		valueToken: s.Token,
		valueUser:  string(rawUser),
		valueID:    id,
	}
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

// Clear removes token and user together. Clearing an absent session is not
// an error.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		m.logger.Debug("clearing undecodable session", slog.String("error", err.Error()))
	}
	if sess == nil {
		sess = sessions.NewSession(m.store, CookieName)
	}
	if sess.Options == nil {
		sess.Options = &sessions.Options{Path: "/"}
	}

	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
