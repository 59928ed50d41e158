/*Transaction state container.

Single source of truth for the transaction view. One goroutine owns the
state; operations run concurrently, do their network / storage work, and
report back as events which the owner folds in through the pure reducer.
Nothing here cancels an in-flight operation — overlapping fetches are
settled by sequence fencing, not by aborting the loser.*/
package state

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/devshahid/moneymind/pkg/api"
	"github.com/devshahid/moneymind/pkg/domain"
	"github.com/devshahid/moneymind/pkg/recon"
	"github.com/devshahid/moneymind/pkg/store"
)

type Container struct {
	api   *api.Client
	edits store.EditStore
	log   *logrus.Logger

	events chan event
	snaps  chan chan State
	quit   chan struct{}

	listSeq  atomic.Uint64
	labelSeq atomic.Uint64
}

func NewContainer(client *api.Client, edits store.EditStore, log *logrus.Logger) *Container {
	c := &Container{
		api:    client,
		edits:  edits,
		log:    log,
		events: make(chan event),
		snaps:  make(chan chan State),
		quit:   make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *Container) run() {
	m := machine{state: State{Status: StatusIdle, SyncStatus: SyncIdle}}
	for {
		select {
		case ev := <-c.events:
			m = reduce(m, ev)
		case reply := <-c.snaps:
			reply <- m.state
		case <-c.quit:
			return
		}
	}
}

// Snapshot returns a copy of the current state.
func (c *Container) Snapshot() State {
	reply := make(chan State, 1)
	select {
	case c.snaps <- reply:
		return <-reply
	case <-c.quit:
		return State{}
	}
}

func (c *Container) Close() {
	close(c.quit)
}

func (c *Container) emit(ev event) {
	select {
	case c.events <- ev:
	case <-c.quit:
	}
}

// ListTransactions fetches a page from the server and stores it with all
// pending local edits overlaid.
func (c *Container) ListTransactions(ctx context.Context, filter domain.ListFilter) error {
	seq := c.listSeq.Add(1)
	c.emit(evStarted{})

	page, err := c.api.ListTransactions(ctx, filter)
	if err != nil {
		c.emit(evListFailed{seq: seq, err: classify(err)})
		return err
	}

	pending, err := c.edits.AllTransactionEdits()
	if err != nil {
		c.emit(evListFailed{seq: seq, err: classify(err)})
		return err
	}

	c.emit(evListDone{
		seq:      seq,
		txns:     recon.MergeTransactions(page.Result, pending),
		total:    page.TotalCount,
		page:     filter.Page,
		hasEdits: len(pending) > 0,
	})
	return nil
}

// UpdateTransaction is the online edit path: the patch goes straight to the
// server and the returned canonical record replaces the in-memory copy. The
// Local Edit Store is not involved.
func (c *Container) UpdateTransaction(ctx context.Context, patch *domain.TransactionPatch) error {
	c.emit(evStarted{})

	txn, err := c.api.UpdateTransaction(ctx, patch)
	if err != nil {
		c.emit(evFailed{err: classify(err)})
		return err
	}

	c.emit(evUpdateDone{txn: txn})
	return nil
}

// StageLocalEdit is the offline edit path: the patch is persisted in the
// Local Edit Store and shows up merged on the next list. Nothing is sent to
// the server until SyncTransactions.
func (c *Container) StageLocalEdit(patch *domain.TransactionPatch) error {
	if err := c.edits.SaveTransactionEdit(patch); err != nil {
		c.emit(evFailed{err: classify(err)})
		return err
	}

	c.emit(evEditStaged{})
	return nil
}

// SyncTransactions pushes every pending local edit to the server in one
// batch. Only on server success are the local stores cleared; any failure
// leaves them intact so the identical batch can be resent.
func (c *Container) SyncTransactions(ctx context.Context, page, limit int) error {
	c.emit(evStarted{})

	pending, err := c.edits.AllTransactionEdits()
	if err != nil {
		c.emit(evFailed{err: classify(err)})
		return err
	}

	c.log.WithField("edits", len(pending)).Debug("syncing staged edits")

	result, err := c.api.SyncTransactions(ctx, pending, page, limit)
	if err != nil {
		c.emit(evFailed{err: classify(err)})
		return err
	}

	// server has the batch; local staging is now redundant
	if err := c.edits.ClearTransactionEdits(); err != nil {
		c.emit(evFailed{err: classify(err)})
		return err
	}
	if err := c.edits.ClearLabels(); err != nil {
		c.emit(evFailed{err: classify(err)})
		return err
	}

	c.emit(evSyncDone{txns: result.Result, total: result.TotalCount, page: page})
	return nil
}

// ListLabels fetches server labels and merges in the device's registry.
func (c *Container) ListLabels(ctx context.Context) error {
	seq := c.labelSeq.Add(1)
	c.emit(evStarted{})

	serverLabels, err := c.api.ListLabels(ctx)
	if err != nil {
		c.emit(evLabelsFailed{seq: seq, err: classify(err)})
		return err
	}

	local, err := c.edits.AllLabels()
	if err != nil {
		c.emit(evLabelsFailed{seq: seq, err: classify(err)})
		return err
	}

	c.emit(evLabelsDone{seq: seq, labels: recon.MergeLabels(serverLabels, local)})
	return nil
}

// AddCashTransaction records a cash-sourced entry on the server and slots
// the returned record into the list by date.
func (c *Container) AddCashTransaction(ctx context.Context, memo *domain.TransactionPatch) error {
	c.emit(evStarted{})

	txn, err := c.api.AddCashMemo(ctx, memo)
	if err != nil {
		c.emit(evFailed{err: classify(err)})
		return err
	}

	c.emit(evCashAdded{txn: txn})
	return nil
}

func classify(err error) opError {
	kind := ErrNetwork
	switch {
	case errors.Is(err, store.ErrStoreUnavailable):
		kind = ErrStorage
	case errors.Is(err, store.ErrMissingID):
		kind = ErrValidation
	}
	return opError{kind: kind, msg: err.Error()}
}
