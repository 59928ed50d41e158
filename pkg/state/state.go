package state

import (
	"github.com/devshahid/moneymind/pkg/domain"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
)

type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// ErrKind distinguishes where a recorded failure came from, so callers can
// tell "the network was down" apart from "your offline edit didn't persist".
type ErrKind string

const (
	ErrNone       ErrKind = ""
	ErrNetwork    ErrKind = "network"
	ErrStorage    ErrKind = "storage"
	ErrValidation ErrKind = "validation"
)

// State is the container's view snapshot. Failures keep the previous data
// (stale but visible) and only flip the error fields.
type State struct {
	Status Status

	Transactions []*domain.Transaction
	TotalCount   int
	Page         int

	Labels []domain.Label

	HasLocalEdits bool
	SyncStatus    SyncStatus

	Err     string
	ErrKind ErrKind
}
