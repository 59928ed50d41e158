/*Small wrappers around cryptopasta for sign-then-encrypt of local secrets.*/
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gtank/cryptopasta"
)

// NewRandomKey generates a random base64 encoded 32 byte key.
func NewRandomKey() (string, error) {
	key := &[32]byte{}
	_, err := io.ReadFull(rand.Reader, key[:])
	return base64.RawURLEncoding.EncodeToString(key[:]), err
}

// Encrypt AES-GCM encrypts the plaintext with `key`, HMAC signs the result
// with `sig` and base64 encodes both into "cyphertext.signature".
func Encrypt(plaintext []byte, key, sig string) (string, error) {
	rawkey, err := toKey(key)
	if err != nil {
		return "", err
	}

	rawsig, err := toKey(sig)
	if err != nil {
		return "", err
	}

	cyphertext, err := cryptopasta.Encrypt(plaintext, rawkey)
	if err != nil {
		return "", err
	}

	signature := cryptopasta.GenerateHMAC(cyphertext, rawsig)

	return fmt.Sprintf(
		"%s.%s",
		base64.RawURLEncoding.EncodeToString(cyphertext),
		base64.RawURLEncoding.EncodeToString(signature),
	), nil
}

// Decrypt is the inverse of Encrypt: it checks the HMAC signature and, only
// if that passes, decrypts the encoded data.
func Decrypt(encoded, key, sig string) ([]byte, error) {
	rawkey, err := toKey(key)
	if err != nil {
		return nil, err
	}

	rawsig, err := toKey(sig)
	if err != nil {
		return nil, err
	}

	bits := strings.SplitN(encoded, ".", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("decryption failed, encoded string invalid")
	}

	cypher, err := base64.RawURLEncoding.DecodeString(bits[0])
	if err != nil {
		return nil, err
	}

	signature, err := base64.RawURLEncoding.DecodeString(bits[1])
	if err != nil {
		return nil, err
	}

	if !cryptopasta.CheckHMAC(cypher, signature, rawsig) {
		return nil, fmt.Errorf("signature validation failed")
	}

	return cryptopasta.Decrypt(cypher, rawkey)
}

// toKey transforms a string of at least len 32 into *[32]byte, as needed by
// the cryptopasta library.
func toKey(s string) (*[32]byte, error) {
	if len(s) < 32 {
		return nil, fmt.Errorf("key too short for encryption/signing operation, want at least 32 chars")
	}
	data := &[32]byte{}
	copy(data[:], []byte(s))
	return data, nil
}
