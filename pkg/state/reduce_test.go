package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devshahid/moneymind/pkg/domain"
)

func txn(id, date string) *domain.Transaction {
	return &domain.Transaction{ID: id, Date: date}
}

func TestReduceStaleListResponseDropped(t *testing.T) {
	m := machine{}

	// request 2 resolves first
	m = reduce(m, evListDone{seq: 2, txns: []*domain.Transaction{txn("b", "")}, total: 1})
	// request 1 straggles in afterwards
	m = reduce(m, evListDone{seq: 1, txns: []*domain.Transaction{txn("a", "")}, total: 9})

	assert.Equal(t, "b", m.state.Transactions[0].ID)
	assert.Equal(t, 1, m.state.TotalCount)
}

func TestReduceStaleListFailureDropped(t *testing.T) {
	m := machine{}

	m = reduce(m, evListDone{seq: 2, txns: []*domain.Transaction{txn("b", "")}, total: 1})
	m = reduce(m, evListFailed{seq: 1, err: opError{kind: ErrNetwork, msg: "late timeout"}})

	assert.Empty(t, m.state.Err)
	assert.Equal(t, "b", m.state.Transactions[0].ID)
}

func TestReduceFailureKeepsStaleData(t *testing.T) {
	m := machine{}
	m = reduce(m, evListDone{seq: 1, txns: []*domain.Transaction{txn("a", "")}, total: 1})

	m = reduce(m, evStarted{})
	assert.Equal(t, StatusLoading, m.state.Status)

	m = reduce(m, evListFailed{seq: 2, err: opError{kind: ErrNetwork, msg: "boom"}})

	assert.Equal(t, StatusLoaded, m.state.Status)
	assert.Equal(t, "boom", m.state.Err)
	assert.Equal(t, ErrNetwork, m.state.ErrKind)
	// the old page is still visible
	assert.Equal(t, "a", m.state.Transactions[0].ID)
}

func TestReduceSyncFailureLeavesSyncStatus(t *testing.T) {
	m := machine{}
	m = reduce(m, evSyncDone{txns: nil, total: 0})
	assert.Equal(t, SyncSuccess, m.state.SyncStatus)

	m = reduce(m, evFailed{err: opError{kind: ErrNetwork, msg: "sync blew up"}})

	assert.Equal(t, SyncSuccess, m.state.SyncStatus) // unchanged
	assert.Equal(t, "sync blew up", m.state.Err)
}

func TestReduceStorageErrorKind(t *testing.T) {
	m := machine{}
	m = reduce(m, evFailed{err: opError{kind: ErrStorage, msg: "disk gone"}})

	assert.Equal(t, ErrStorage, m.state.ErrKind)
}

func TestInsertByDateMiddle(t *testing.T) {
	// descending by date: D3, D2, D1
	list := []*domain.Transaction{
		txn("d3", "2024-03-01"),
		txn("d2", "2024-02-01"),
		txn("d1", "2024-01-01"),
	}

	out := insertByDate(list, txn("new", "2024-02-15"))

	ids := []string{}
	for _, t := range out {
		ids = append(ids, t.ID)
	}
	assert.Equal(t, []string{"d3", "new", "d2", "d1"}, ids)
}

func TestInsertByDateOldestAppends(t *testing.T) {
	list := []*domain.Transaction{
		txn("d2", "2024-02-01"),
		txn("d1", "2024-01-01"),
	}

	out := insertByDate(list, txn("ancient", "2020-01-01"))

	assert.Equal(t, "ancient", out[len(out)-1].ID)
	assert.Len(t, out, 3)
}

func TestInsertByDateEmptyList(t *testing.T) {
	out := insertByDate(nil, txn("only", "2024-01-01"))
	assert.Len(t, out, 1)
}

func TestInsertByDateEqualDateGoesBefore(t *testing.T) {
	list := []*domain.Transaction{
		txn("d2", "2024-02-01"),
		txn("d1", "2024-01-01"),
	}

	out := insertByDate(list, txn("same", "2024-02-01"))

	assert.Equal(t, []string{"same", "d2", "d1"}, []string{out[0].ID, out[1].ID, out[2].ID})
}
