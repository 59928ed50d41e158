package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devshahid/moneymind/pkg/domain"
)

func strptr(s string) *string { return &s }

func TestMergeTransactionsOverlaysPatchFields(t *testing.T) {
	server := []*domain.Transaction{
		{ID: "a", Notes: "old", Amount: 100},
	}
	edits := []*domain.TransactionPatch{
		{ID: "a", Notes: strptr("new")},
	}

	merged := MergeTransactions(server, edits)

	assert.Len(t, merged, 1)
	assert.Equal(t, "new", merged[0].Notes)
	assert.Equal(t, 100.0, merged[0].Amount) // untouched field keeps server value
}

func TestMergeTransactionsDropsOrphanEdits(t *testing.T) {
	server := []*domain.Transaction{
		{ID: "a", Notes: "server"},
	}
	edits := []*domain.TransactionPatch{
		{ID: "x", Notes: strptr("orphan")},
	}

	merged := MergeTransactions(server, edits)

	assert.Len(t, merged, 1)
	assert.Equal(t, "a", merged[0].ID)
	assert.Equal(t, "server", merged[0].Notes)
}

func TestMergeTransactionsNeverChangesRowCount(t *testing.T) {
	server := []*domain.Transaction{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}
	edits := []*domain.TransactionPatch{
		{ID: "b", Category: strptr("food")},
		{ID: "nope", Category: strptr("dropped")},
	}

	merged := MergeTransactions(server, edits)

	assert.Len(t, merged, len(server))
	assert.Equal(t, "food", merged[1].Category)
}

func TestMergeTransactionsIsPure(t *testing.T) {
	server := []*domain.Transaction{
		{ID: "a", Notes: "old", Labels: []string{"x"}},
	}
	edits := []*domain.TransactionPatch{
		{ID: "a", Notes: strptr("new"), Labels: []string{"y"}},
	}

	first := MergeTransactions(server, edits)
	second := MergeTransactions(server, edits)

	assert.Equal(t, first, second)
	// inputs untouched
	assert.Equal(t, "old", server[0].Notes)
	assert.Equal(t, []string{"x"}, server[0].Labels)

	// and the output doesn't alias the input
	first[0].Notes = "scribbled"
	assert.Equal(t, "old", server[0].Notes)
}

func TestMergeLabelsAppendsLocalOnly(t *testing.T) {
	server := []domain.Label{
		{ID: "1", Name: "Travel"},
	}
	local := []domain.Label{
		{ID: "1700000000000-ab12cd34", Name: "Food"},
	}

	merged := MergeLabels(server, local)

	assert.Len(t, merged, 2)
	assert.Equal(t, "Travel", merged[0].Name)
	assert.Equal(t, "1", merged[0].ID)
	assert.Equal(t, "Food", merged[1].Name)
	assert.NotEmpty(t, merged[1].ID)
}

func TestMergeLabelsNameMatchKeepsServerID(t *testing.T) {
	server := []domain.Label{
		{ID: "1", Name: "Travel"},
	}
	local := []domain.Label{
		{ID: "1700000000000-ab12cd34", Name: "Travel", Color: "#f00"},
	}

	merged := MergeLabels(server, local)

	assert.Len(t, merged, 1)
	assert.Equal(t, "1", merged[0].ID)
	assert.Equal(t, "#f00", merged[0].Color)
}

func TestMergeLabelsServerOrderFirst(t *testing.T) {
	server := []domain.Label{
		{ID: "1", Name: "Travel"},
		{ID: "2", Name: "Rent"},
	}
	local := []domain.Label{
		{ID: "l1", Name: "Food"},
		{ID: "2", Name: "Rent"},
	}

	merged := MergeLabels(server, local)

	assert.Equal(t, "Travel", merged[0].Name)
	assert.Equal(t, "Rent", merged[1].Name)
	assert.Equal(t, "Food", merged[2].Name)
	assert.Len(t, merged, 3)

	// inputs untouched
	assert.Len(t, server, 2)
	assert.Len(t, local, 2)
}
