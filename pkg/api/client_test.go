package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshahid/moneymind/pkg/domain"
)

type fixedToken string

func (f fixedToken) Value() string { return string(f) }

func newTestClient(t *testing.T, token string, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	c, err := NewClient(srv.URL, fixedToken(token), log)
	require.NoError(t, err)
	return c
}

func TestTokenHeaderAttached(t *testing.T) {
	var gotToken string
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction-logs/list-labels", func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(tokenHeader)
		json.NewEncoder(w).Encode(map[string]any{"output": []domain.Label{}})
	})

	c := newTestClient(t, "secret-token", mux)
	_, err := c.ListLabels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "secret-token", gotToken)
}

func TestNoTokenHeaderWhenLoggedOut(t *testing.T) {
	var present bool
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction-logs/list-labels", func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[http.CanonicalHeaderKey(tokenHeader)]
		json.NewEncoder(w).Encode(map[string]any{"output": []domain.Label{}})
	})

	c := newTestClient(t, "", mux)
	_, err := c.ListLabels(context.Background())

	require.NoError(t, err)
	assert.False(t, present)
}

func TestUnauthorizedFiresLogoutHook(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	})

	c := newTestClient(t, "stale", mux)

	fired := false
	c.OnUnauthorized(func() { fired = true })

	_, err := c.ListLabels(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, fired)
}

func TestEnvelopeParsing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction-logs/list-transactions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"output": map[string]any{
				"result": []*domain.Transaction{
					{ID: "a", Narration: "COFFEE SHOP", Amount: 4.5},
				},
				"totalCount": 37,
			},
		})
	})

	c := newTestClient(t, "tok", mux)
	page, err := c.ListTransactions(context.Background(), domain.ListFilter{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 37, page.TotalCount)
	require.Len(t, page.Result, 1)
	assert.Equal(t, "COFFEE SHOP", page.Result[0].Narration)
}

func TestNullLabelID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction-logs/list-labels", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":[{"_id":null,"labelName":"Travel","labelColor":null}]}`))
	})

	c := newTestClient(t, "tok", mux)
	labels, err := c.ListLabels(context.Background())

	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "", labels[0].ID)
	assert.Equal(t, "Travel", labels[0].Name)
}

func TestClientErrorNotRetried(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "nope", http.StatusBadRequest)
	})

	c := newTestClient(t, "tok", mux)
	_, err := c.ListLabels(context.Background())

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, 1, calls)
}

func TestServerErrorRetried(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction-logs/list-labels", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "wobble", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"output": []domain.Label{}})
	})

	c := newTestClient(t, "tok", mux)
	_, err := c.ListLabels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}
