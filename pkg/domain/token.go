package domain

import (
	"time"
)

// Token is an access token for the moneymind backend.
type Token struct {
	// token value, sent on every request
	Value string `json:"value"`

	// when the token expires in unix time (0 = no known expiry)
	Expires int64 `json:"expires"`
}

// NewToken creates a token whose expiry is set from a ttl in seconds.
// A ttl of 0 means the server reported no expiry.
func NewToken(value string, ttl int) *Token {
	t := &Token{Value: value}
	if ttl > 0 {
		t.Expires = time.Now().UTC().Add(time.Duration(ttl) * time.Second).Unix()
	}
	return t
}

// HasExpired returns if the time now is past Expires.
func (t *Token) HasExpired() bool {
	return t.Expires > 0 && time.Now().UTC().Unix() >= t.Expires
}
