package api

import (
	"encoding/json"

	"github.com/devshahid/moneymind/pkg/domain"
)

// every backend reply wraps its payload in an "output" field
type envelope struct {
	Output json.RawMessage `json:"output"`
}

func unwrap(data []byte) (json.RawMessage, error) {
	env := &envelope{}
	err := json.Unmarshal(data, env)
	return env.Output, err
}

// TransactionPage is one page of the server's transaction log plus the
// total match count across all pages.
type TransactionPage struct {
	Result     []*domain.Transaction `json:"result"`
	TotalCount int                   `json:"totalCount"`
}

func parseTransactionPage(data []byte) (*TransactionPage, error) {
	out, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	page := &TransactionPage{}
	err = json.Unmarshal(out, page)
	return page, err
}

func parseTransaction(data []byte) (*domain.Transaction, error) {
	out, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	txn := &domain.Transaction{}
	err = json.Unmarshal(out, txn)
	return txn, err
}

func parseLabels(data []byte) ([]domain.Label, error) {
	out, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	labels := []domain.Label{}
	err = json.Unmarshal(out, &labels)
	return labels, err
}

type loginReply struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

func parseLoginReply(data []byte) (*domain.Token, error) {
	out, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	rep := &loginReply{}
	if err := json.Unmarshal(out, rep); err != nil {
		return nil, err
	}

	return domain.NewToken(rep.AccessToken, rep.ExpiresIn), nil
}

func parseDebts(data []byte) ([]domain.Debt, error) {
	out, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	debts := []domain.Debt{}
	err = json.Unmarshal(out, &debts)
	return debts, err
}

// syncRequest is the bulk flush body: every pending local patch plus the
// page the caller wants back once the server has reconciled.
type syncRequest struct {
	Transactions []*domain.TransactionPatch `json:"transactions"`
	Page         int                        `json:"page"`
	Limit        int                        `json:"limit"`
}

type uploadRequest struct {
	Rows []domain.RowData `json:"rows"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
