package domain

// Label is a user-defined tag attachable to any number of transactions.
// Server labels carry a canonical ID; labels registered on this device get
// a locally synthesized ID until the next sync.
type Label struct {
	ID    string `json:"_id"`
	Name  string `json:"labelName"`
	Color string `json:"labelColor,omitempty"`
}
