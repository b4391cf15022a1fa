package session

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	hashKeyLength  = 64
	blockKeyLength = 32
	csrfKeyLength  = 32
)

// DeriveKeys expands secret into the securecookie authentication and
// encryption keys. The same secret always yields the same pair.
func DeriveKeys(secret string) (hashKey, blockKey []byte, err error) {
	if secret == "" {
		return nil, nil, fmt.Errorf("session secret must not be empty")
	}

	hashKey = make([]byte, hashKeyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte("invoicebox session hash")), hashKey); err != nil {
		return nil, nil, fmt.Errorf("derive hash key: %w", err)
	}

	blockKey = make([]byte, blockKeyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte("invoicebox session block")), blockKey); err != nil {
		return nil, nil, fmt.Errorf("derive block key: %w", err)
	}

	return hashKey, blockKey, nil
}

// DeriveCSRFKey expands secret into the 32-byte key that authenticates CSRF
// tokens. It never equals either session key.
func DeriveCSRFKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	key := make([]byte, csrfKeyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte("invoicebox csrf")), key); err != nil {
		return nil, fmt.Errorf("derive csrf key: %w", err)
	}
	return key, nil
}
