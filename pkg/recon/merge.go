/*Read-time reconciliation of server data with locally staged edits.

Both merges are pure: inputs are never mutated and the same inputs always
produce the same output, so callers can re-run them on every fetch.*/
package recon

import (
	"github.com/devshahid/moneymind/pkg/domain"
)

// MergeTransactions overlays pending local edits onto the server's page.
// Strictly a left join on the server rows: a row with a matching patch gets
// the patch fields overlaid, everything else passes through untouched, and
// edits whose id isn't on this page are dropped. The output always has
// exactly as many rows as the input page.
func MergeTransactions(server []*domain.Transaction, edits []*domain.TransactionPatch) []*domain.Transaction {
	byID := map[string]*domain.TransactionPatch{}
	for _, e := range edits {
		if e != nil && e.ID != "" {
			byID[e.ID] = e
		}
	}

	merged := make([]*domain.Transaction, 0, len(server))
	for _, t := range server {
		if patch, ok := byID[t.ID]; ok {
			m := patch.Apply(*t)
			merged = append(merged, &m)
			continue
		}
		cp := *t
		merged = append(merged, &cp)
	}
	return merged
}

// MergeLabels combines the server's labels with those registered on this
// device. Server labels come first in server order; device labels that
// match an existing entry (by id, else by name) fold into it, the rest are
// appended as local-only entries. On a match the canonical server id wins —
// the synthesized local id is only a placeholder until sync.
func MergeLabels(server []domain.Label, local []domain.Label) []domain.Label {
	merged := make([]domain.Label, len(server))
	copy(merged, server)

	for _, l := range local {
		if i := findLabel(merged, l); i >= 0 {
			if l.Color != "" {
				merged[i].Color = l.Color
			}
			continue
		}
		merged = append(merged, l)
	}
	return merged
}

func findLabel(labels []domain.Label, want domain.Label) int {
	for i, l := range labels {
		if want.ID != "" && l.ID == want.ID {
			return i
		}
	}
	for i, l := range labels {
		if l.Name == want.Name {
			return i
		}
	}
	return -1
}
