package domain

// ListFilter is the criteria body for list-transactions. Zero values / nil
// pointers are omitted from the request.
type ListFilter struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	MinAmount *float64 `json:"minAmount,omitempty"`
	MaxAmount *float64 `json:"maxAmount,omitempty"`

	BankName string `json:"bankName,omitempty"`
	IsCash   *bool  `json:"isCashTransaction,omitempty"`

	// Type is "credit", "debit" or empty for both.
	Type string `json:"transactionType,omitempty"`

	Labels     []string `json:"label,omitempty"`
	Categories []string `json:"category,omitempty"`
	Keyword    string   `json:"keyword,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Debt is a tracked debt entry; a plain passthrough of the backend record.
type Debt struct {
	ID     string  `json:"_id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	// "lent" or "borrowed"
	Kind    string `json:"type"`
	DueDate string `json:"dueDate,omitempty"`
	Settled bool   `json:"isSettled"`
}

// RowData is one spreadsheet-derived row for the upload endpoint. Parsing
// happens upstream; rows pass through as-is.
type RowData map[string]any
