/*REST client for the moneymind backend.

All payloads ride in / out of the {"output": ...} envelope. Requests carry
the device's access token when one is held; a 401 from any endpoint fires
the process-wide unauthorized hook (logout side effect) exactly once per
call.*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/devshahid/moneymind/pkg/domain"
)

const (
	tokenHeader = "x-access-token"

	// bounded transport-level retry for 5xx / connection errors; 4xx never
	// retries and the layers above never retry at all
	retries = 5
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUnexpectedStatus = errors.New("unexpected http status code")
)

// TokenSource yields the current access token, "" when logged out.
type TokenSource interface {
	Value() string
}

type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	log    *logrus.Logger

	// called on any 401 reply, before the error returns to the caller
	onUnauthorized func()
}

func NewClient(baseURL string, tokens TokenSource, log *logrus.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}

	return &Client{
		base:   u,
		http:   &http.Client{},
		tokens: tokens,
		log:    log,
	}, nil
}

// OnUnauthorized registers the logout side effect run whenever the server
// rejects our token.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) ListTransactions(ctx context.Context, filter domain.ListFilter) (*TransactionPage, error) {
	data, err := c.do(ctx, "POST", "/transaction-logs/list-transactions", filter)
	if err != nil {
		return nil, err
	}
	return parseTransactionPage(data)
}

func (c *Client) UpdateTransaction(ctx context.Context, patch *domain.TransactionPatch) (*domain.Transaction, error) {
	if patch == nil || patch.ID == "" {
		return nil, fmt.Errorf("update requires a transaction id")
	}

	data, err := c.do(ctx, "PUT", "/transaction-logs/update/"+url.PathEscape(patch.ID), patch)
	if err != nil {
		return nil, err
	}
	return parseTransaction(data)
}

func (c *Client) SyncTransactions(ctx context.Context, edits []*domain.TransactionPatch, page, limit int) (*TransactionPage, error) {
	body := syncRequest{Transactions: edits, Page: page, Limit: limit}

	data, err := c.do(ctx, "PUT", "/transaction-logs/sync-transactions", body)
	if err != nil {
		return nil, err
	}
	return parseTransactionPage(data)
}

func (c *Client) ListLabels(ctx context.Context) ([]domain.Label, error) {
	data, err := c.do(ctx, "GET", "/transaction-logs/list-labels", nil)
	if err != nil {
		return nil, err
	}
	return parseLabels(data)
}

func (c *Client) AddCashMemo(ctx context.Context, memo *domain.TransactionPatch) (*domain.Transaction, error) {
	data, err := c.do(ctx, "POST", "/transaction-logs/add-cashmemo", memo)
	if err != nil {
		return nil, err
	}
	return parseTransaction(data)
}

func (c *Client) DeleteAllTransactions(ctx context.Context) error {
	_, err := c.do(ctx, "DELETE", "/transaction-logs/delete-all-transactions", nil)
	return err
}

func (c *Client) UploadRows(ctx context.Context, rows []domain.RowData) error {
	_, err := c.do(ctx, "POST", "/transaction-logs/upload-data-from-file", uploadRequest{Rows: rows})
	return err
}

func (c *Client) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	data, err := c.do(ctx, "GET", "/debt/list-debts", nil)
	if err != nil {
		return nil, err
	}
	return parseDebts(data)
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	data, err := c.do(ctx, "POST", "/user/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return parseLoginReply(data)
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	_, err := c.do(ctx, "POST", "/user/register", registerRequest{Name: name, Email: email, Password: password})
	return err
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, "POST", "/user/logout", nil)
	return err
}

// do runs one request against the backend, retrying transport errors and
// 5xx a bounded number of times with exponential backoff.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	uri := c.base.JoinPath(path).String()

	var last error
	wait := backoff.NewExponentialBackOff()

	for i := retries; i > 0; i-- {
		if last != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait.NextBackOff()):
			}
		}

		var data io.Reader
		if payload != nil {
			data = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, uri, data)
		if err != nil {
			return nil, err
		}
		req.Header.Add("Content-Type", "application/json")

		if token := c.tokens.Value(); token != "" {
			req.Header.Add(tokenHeader, token)
		}

		c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("api request")

		resp, err := c.http.Do(req)
		if err != nil {
			last = err
			continue
		}

		respBody := []byte{}
		if resp.Body != nil {
			respBody, err = io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				last = err
				continue
			}
		}

		status := resp.StatusCode
		if status >= 200 && status < 300 {
			return respBody, nil
		}
		if status == http.StatusUnauthorized {
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, string(respBody))
		}
		if status >= 500 {
			// server trouble, worth another go
			last = fmt.Errorf("%w: %d (%s)", ErrUnexpectedStatus, status, string(respBody))
			continue
		}

		// remaining 4xx: our request is wrong, retrying won't fix it
		return nil, fmt.Errorf("%w: %d (%s)", ErrUnexpectedStatus, status, string(respBody))
	}

	return nil, last
}
