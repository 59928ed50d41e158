package store

import (
	"errors"

	"github.com/devshahid/moneymind/pkg/domain"
)

// ErrStoreUnavailable wraps any failure of the underlying storage engine
// (file locked, disk full, db corrupt). Callers must surface it — offline
// edits that silently fail to persist are lost edits.
var ErrStoreUnavailable = errors.New("local edit store unavailable")

// ErrMissingID means a caller tried to stage an edit patch with no
// transaction id. That's a contract violation, not a runtime condition.
var ErrMissingID = errors.New("edit patch has no transaction id")

// EditStore is durable, per-device staging for offline transaction edits
// and for labels coined on this device; contents survive restarts and are
// wiped wholesale by a successful sync.
type EditStore interface {
	// SaveTransactionEdit upserts the patch keyed by its id. The whole
	// record is replaced: a newer patch for the same id does NOT deep-merge
	// with the one it overwrites, so callers should build patches from the
	// currently merged record. Labels named in the patch are registered as
	// a side effect, in the same storage transaction.
	SaveTransactionEdit(patch *domain.TransactionPatch) error

	// AllTransactionEdits returns every pending patch, in no particular
	// order.
	AllTransactionEdits() ([]*domain.TransactionPatch, error)

	// HasTransactionEdits reports whether any patch is pending.
	HasTransactionEdits() (bool, error)

	// RegisterLabels unions the given names into the durable label set.
	// The union is atomic per call: two concurrent registrations end with
	// the union of both, never the loss of either.
	RegisterLabels(names []string) error

	// AllLabels returns the durable label set. Each entry carries the id
	// synthesized when the name was first registered — stable across calls.
	AllLabels() ([]domain.Label, error)

	ClearTransactionEdits() error
	ClearLabels() error

	Close() error
}
