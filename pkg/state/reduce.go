package state

import (
	"github.com/devshahid/moneymind/pkg/domain"
)

// Events are the only way state changes. Each async operation emits a
// started event up front and exactly one of done/failed at the end.
type event interface{}

type evStarted struct{}

// fetch results carry the sequence assigned when the fetch was dispatched;
// the reducer drops anything older than the newest it has already applied,
// so "latest request wins" holds even when responses arrive out of order.
type evListDone struct {
	seq      uint64
	txns     []*domain.Transaction
	total    int
	page     int
	hasEdits bool
}

type evListFailed struct {
	seq uint64
	err opError
}

type evLabelsDone struct {
	seq    uint64
	labels []domain.Label
}

type evLabelsFailed struct {
	seq uint64
	err opError
}

type evUpdateDone struct {
	txn *domain.Transaction
}

type evSyncDone struct {
	txns  []*domain.Transaction
	total int
	page  int
}

type evCashAdded struct {
	txn *domain.Transaction
}

type evEditStaged struct{}

// evFailed is the generic rejection for update/sync/cash/stage operations.
// It never touches SyncStatus: a failed sync leaves the previous sync
// outcome (and the local stores) exactly as they were.
type evFailed struct {
	err opError
}

type opError struct {
	kind ErrKind
	msg  string
}

// machine is the reducer's full accumulator: the public State plus the
// fencing high-water marks, which callers never see.
type machine struct {
	state    State
	listSeq  uint64
	labelSeq uint64
}

// reduce is the pure transition function: machine + event -> machine.
// It mutates nothing it was given.
func reduce(m machine, ev event) machine {
	switch ev := ev.(type) {

	case evStarted:
		m.state.Status = StatusLoading
		m.state.Err = ""
		m.state.ErrKind = ErrNone

	case evListDone:
		if ev.seq < m.listSeq {
			return m // superseded by a newer fetch
		}
		m.listSeq = ev.seq
		m.state.Status = StatusLoaded
		m.state.Transactions = ev.txns
		m.state.TotalCount = ev.total
		m.state.Page = ev.page
		m.state.HasLocalEdits = ev.hasEdits
		m.state.Err = ""
		m.state.ErrKind = ErrNone

	case evListFailed:
		if ev.seq < m.listSeq {
			return m
		}
		m.listSeq = ev.seq
		m.state.Status = StatusLoaded
		m.state.Err = ev.err.msg
		m.state.ErrKind = ev.err.kind

	case evLabelsDone:
		if ev.seq < m.labelSeq {
			return m
		}
		m.labelSeq = ev.seq
		m.state.Status = StatusLoaded
		m.state.Labels = ev.labels
		m.state.Err = ""
		m.state.ErrKind = ErrNone

	case evLabelsFailed:
		if ev.seq < m.labelSeq {
			return m
		}
		m.labelSeq = ev.seq
		m.state.Status = StatusLoaded
		m.state.Err = ev.err.msg
		m.state.ErrKind = ev.err.kind

	case evUpdateDone:
		m.state.Status = StatusLoaded
		m.state.Transactions = overlayByID(m.state.Transactions, ev.txn)
		m.state.Err = ""
		m.state.ErrKind = ErrNone

	case evSyncDone:
		m.state.Status = StatusLoaded
		m.state.Transactions = ev.txns
		m.state.TotalCount = ev.total
		m.state.Page = ev.page
		m.state.HasLocalEdits = false
		m.state.SyncStatus = SyncSuccess
		m.state.Err = ""
		m.state.ErrKind = ErrNone

	case evCashAdded:
		m.state.Status = StatusLoaded
		m.state.Transactions = insertByDate(m.state.Transactions, ev.txn)
		m.state.TotalCount++
		m.state.Err = ""
		m.state.ErrKind = ErrNone

	case evEditStaged:
		m.state.HasLocalEdits = true

	case evFailed:
		m.state.Status = StatusLoaded
		m.state.Err = ev.err.msg
		m.state.ErrKind = ev.err.kind
	}

	return m
}

// overlayByID swaps the canonical record in for its stale copy. No match,
// no change.
func overlayByID(txns []*domain.Transaction, txn *domain.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, len(txns))
	copy(out, txns)
	for i, t := range out {
		if t.ID == txn.ID {
			out[i] = txn
			break
		}
	}
	return out
}

// insertByDate places txn immediately before the first record whose date is
// not after txn's, keeping a descending-date list ordered. If every record
// is newer, txn goes at the end.
func insertByDate(txns []*domain.Transaction, txn *domain.Transaction) []*domain.Transaction {
	at := txn.Time()
	out := make([]*domain.Transaction, 0, len(txns)+1)

	for i, t := range txns {
		if !t.Time().After(at) {
			out = append(out, txns[:i]...)
			out = append(out, txn)
			return append(out, txns[i:]...)
		}
	}
	return append(append(out, txns...), txn)
}
