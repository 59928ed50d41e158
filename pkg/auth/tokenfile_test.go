package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshahid/moneymind/pkg/domain"
)

const (
	testEncKey = "0123456789abcdef0123456789abcdef"
	testSigKey = "fedcba9876543210fedcba9876543210"
)

func newTestFile(t *testing.T) *TokenFile {
	t.Helper()
	return NewTokenFile(filepath.Join(t.TempDir(), "token"), testEncKey, testSigKey)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	f := newTestFile(t)

	require.NoError(t, f.Save(domain.NewToken("my-access-token", 3600)))

	tkn, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "my-access-token", tkn.Value)
	assert.Equal(t, "my-access-token", f.Value())
}

func TestLoadMissing(t *testing.T) {
	f := newTestFile(t)

	_, err := f.Load()
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, "", f.Value())
}

func TestClear(t *testing.T) {
	f := newTestFile(t)

	require.NoError(t, f.Save(domain.NewToken("tok", 3600)))
	require.NoError(t, f.Clear())
	require.NoError(t, f.Clear()) // idempotent

	_, err := f.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestExpiredTokenTreatedAsMissing(t *testing.T) {
	f := newTestFile(t)

	expired := &domain.Token{Value: "old", Expires: 1}
	require.NoError(t, f.Save(expired))

	_, err := f.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestWrongKeysRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	good := NewTokenFile(path, testEncKey, testSigKey)
	require.NoError(t, good.Save(domain.NewToken("tok", 3600)))

	bad := NewTokenFile(path, testSigKey, testEncKey) // keys swapped
	_, err := bad.Load()
	assert.Error(t, err)
}
