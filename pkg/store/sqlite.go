package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devshahid/moneymind/pkg/domain"

	_ "modernc.org/sqlite"
)

// check it meets the interface
var _ EditStore = &SQLite{}

const schema = `
CREATE TABLE IF NOT EXISTS transaction_edits (
	id    TEXT PRIMARY KEY,
	patch TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS labels (
	name  TEXT PRIMARY KEY,
	id    TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);`

type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the edit store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// one connection: sqlite serializes writers anyway, and this way
	// concurrent calls queue instead of erroring SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) SaveTransactionEdit(patch *domain.TransactionPatch) error {
	if patch == nil || patch.ID == "" {
		return ErrMissingID
	}

	data, err := json.Marshal(patch)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO transaction_edits (id, patch) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET patch = excluded.patch`,
		patch.ID, string(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := registerLabelsTx(tx, patch.Labels); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SQLite) AllTransactionEdits() ([]*domain.TransactionPatch, error) {
	rows, err := s.db.Query(`SELECT patch FROM transaction_edits`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	edits := []*domain.TransactionPatch{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		p := &domain.TransactionPatch{}
		if err := json.Unmarshal([]byte(data), p); err != nil {
			return nil, err
		}
		edits = append(edits, p)
	}
	return edits, rows.Err()
}

func (s *SQLite) HasTransactionEdits() (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM transaction_edits`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

func (s *SQLite) RegisterLabels(names []string) error {
	if len(names) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if err := registerLabelsTx(tx, names); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// registerLabelsTx unions names into the labels table. Ids are synthesized
// here, once, and kept for the life of the entry; re-registering a name is
// a no-op that preserves the original id.
func registerLabelsTx(tx *sql.Tx, names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO labels (name, id) VALUES (?, ?)`,
			name, newLabelID(),
		)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return nil
}

// newLabelID builds a device-local label id. Unique enough locally; the
// server assigns the canonical id at sync time.
func newLabelID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func (s *SQLite) AllLabels() ([]domain.Label, error) {
	rows, err := s.db.Query(`SELECT id, name, color FROM labels`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	labels := []domain.Label{}
	for rows.Next() {
		l := domain.Label{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func (s *SQLite) ClearTransactionEdits() error {
	if _, err := s.db.Exec(`DELETE FROM transaction_edits`); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SQLite) ClearLabels() error {
	if _, err := s.db.Exec(`DELETE FROM labels`); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
