/*Access token persistence.

The backend hands out a bearer token on login; we keep it on disk between
CLI invocations, encrypted & signed so a stray backup or sync folder doesn't
leak it in plaintext.*/
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/devshahid/moneymind/pkg/crypto"
	"github.com/devshahid/moneymind/pkg/domain"
)

// ErrNoToken is returned by Load when no token has been saved (or it was
// cleared by a logout).
var ErrNoToken = errors.New("no saved token")

type TokenFile struct {
	path   string
	encKey string
	sigKey string
}

func NewTokenFile(path, encKey, sigKey string) *TokenFile {
	return &TokenFile{path: path, encKey: encKey, sigKey: sigKey}
}

// Save encrypts and writes the token, replacing any previous one.
func (f *TokenFile) Save(tkn *domain.Token) error {
	data, err := json.Marshal(tkn)
	if err != nil {
		return err
	}

	blob, err := crypto.Encrypt(data, f.encKey, f.sigKey)
	if err != nil {
		return err
	}

	return os.WriteFile(f.path, []byte(blob), 0600)
}

// Load reads back the saved token. An expired token is treated the same as
// a missing one.
func (f *TokenFile) Load() (*domain.Token, error) {
	blob, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, err
	}

	data, err := crypto.Decrypt(string(blob), f.encKey, f.sigKey)
	if err != nil {
		return nil, fmt.Errorf("token file unreadable (wrong keys?): %w", err)
	}

	tkn := &domain.Token{}
	if err := json.Unmarshal(data, tkn); err != nil {
		return nil, err
	}
	if tkn.HasExpired() {
		return nil, ErrNoToken
	}
	return tkn, nil
}

// Clear removes the saved token. Clearing an already-clear file is not an
// error.
func (f *TokenFile) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Value returns the current token value, or "" when logged out. This is the
// shape the API client wants for its request header.
func (f *TokenFile) Value() string {
	tkn, err := f.Load()
	if err != nil {
		return ""
	}
	return tkn.Value
}
