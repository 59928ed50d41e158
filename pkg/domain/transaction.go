package domain

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

type Transaction struct {
	ID string `json:"_id"`

	Date      string `json:"date"`
	Narration string `json:"narration"`
	Notes     string `json:"notes"`

	Category string   `json:"category"`
	Labels   []string `json:"label"`

	Amount   float64 `json:"amount"`
	IsCredit bool    `json:"isCredit"`

	BankName string `json:"bankName"`
	IsCash   bool   `json:"isCashTransaction"`
}

func (t *Transaction) JSON() ([]byte, error) {
	return json.Marshal(t)
}

// Time parses the transaction date; returns the zero time on malformed input.
func (t *Transaction) Time() time.Time {
	ts, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// TransactionPatch is a partial transaction keyed by ID. Nil fields mean
// "not edited"; a nil Labels slice means the labels were untouched.
type TransactionPatch struct {
	ID string `json:"_id"`

	Date      *string `json:"date,omitempty"`
	Narration *string `json:"narration,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	Category *string  `json:"category,omitempty"`
	Labels   []string `json:"label,omitempty"`

	Amount   *float64 `json:"amount,omitempty"`
	IsCredit *bool    `json:"isCredit,omitempty"`

	BankName *string `json:"bankName,omitempty"`
	IsCash   *bool   `json:"isCashTransaction,omitempty"`
}

// Apply overlays the patch onto a copy of t. Fields the patch doesn't set
// keep their server values.
func (p *TransactionPatch) Apply(t Transaction) Transaction {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Narration != nil {
		t.Narration = *p.Narration
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Labels != nil {
		t.Labels = append([]string{}, p.Labels...)
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.IsCredit != nil {
		t.IsCredit = *p.IsCredit
	}
	if p.BankName != nil {
		t.BankName = *p.BankName
	}
	if p.IsCash != nil {
		t.IsCash = *p.IsCash
	}
	return t
}
