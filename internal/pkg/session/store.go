package session

import (
	"encoding/base32"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
	"github.com/polkiloo/invoicebox/internal/domain/repository"
)

// DBStore is a sessions.Store that keeps values in a SessionRepository.
// The cookie carries only the encoded session id.
type DBStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options
	repo    repository.SessionRepository
}

// NewDBStore returns a DBStore. Keys are given in hash/block pairs as for
// securecookie.CodecsFromPairs.
func NewDBStore(repo repository.SessionRepository, opts sessions.Options, keyPairs ...[]byte) *DBStore {
	codecs := securecookie.CodecsFromPairs(keyPairs...)
	for _, codec := range codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(opts.MaxAge)
		}
	}
	return &DBStore{
		Codecs:  codecs,
		Options: &opts,
		repo:    repo,
	}
}

func newSessionID() string {
	return base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
}

// Get returns the session registered for the request, creating it on first use.
func (s *DBStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New always returns a non-nil session. An unknown or expired id yields a
// fresh session with a new id.
func (s *DBStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true
	session.ID = newSessionID()

	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return session, nil
	} else if err != nil {
		return session, err
	}

	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.Codecs...); err != nil {
		return session, err
	}

	encoded, err := s.repo.Get(r.Context(), id)
	switch {
	case err == nil:
		session.ID = id
		session.IsNew = false
		if err := securecookie.DecodeMulti(name, encoded, &session.Values, s.Codecs...); err != nil {
			return session, err
		}
	case errors.Is(err, domainErrors.ErrNotFound):
	default:
		return session, err
	}

	return session, nil
}

// Save persists the session values and refreshes the id cookie. A
// non-positive MaxAge deletes the session.
func (s *DBStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge <= 0 {
		if err := s.repo.Delete(r.Context(), session.ID); err != nil {
			return err
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newSessionID()
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.Values, s.Codecs...)
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(time.Duration(session.Options.MaxAge) * time.Second)
	if err := s.repo.Save(r.Context(), session.ID, encoded, expiresAt); err != nil {
		return err
	}

	encodedID, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encodedID, session.Options))
	return nil
}
