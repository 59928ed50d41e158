package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshahid/moneymind/pkg/domain"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	jf := NewJSONFile(path)

	err := jf.Write([]*domain.Transaction{
		{ID: "1", Narration: "COFFEE", Amount: 4.5},
		{ID: "2", Narration: "RENT", Amount: 1200},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := []*domain.Transaction{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Len(t, out, 2)
	assert.Equal(t, "COFFEE", out[0].Narration)
}
