// Package storage provides a small transactional key/value store on top of a
// single SQLite file.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Table names a logical table of the store.
type Table string

// Characters holds game characters keyed by name.
const Characters Table = "characters"

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Validate reports whether t can be used as a table name.
func (t Table) Validate() error {
	if !tableNamePattern.MatchString(string(t)) {
		return fmt.Errorf("invalid table name %q", string(t))
	}
	return nil
}

func (t Table) quoted() string {
	return `"` + string(t) + `"`
}

// ErrTableNotFound is returned when reading a table that was never written.
var ErrTableNotFound = errors.New("storage: table not found")

// Error describes a failed store operation.
type Error struct {
	Op    string // e.g. "get", "put", "commit"
	Table Table  // empty for store level operations
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Store is a SQLite backed store. Each logical table is a SQLite table of
// key/value rows.
type Store struct {
	sqlDB *sql.DB
	path  string
}

// Open opens (creating if needed) the store file at path. Opening an existing
// store never modifies its contents.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &Error{Op: "open", Err: errors.New("storage path is required")}
	}

	cleanPath := filepath.Clean(strings.TrimSpace(path))
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &Error{Op: "open", Err: fmt.Errorf("open sqlite db: %w", err)}
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, &Error{Op: "open", Err: fmt.Errorf("ping sqlite db: %w", err)}
	}

	return &Store{sqlDB: sqlDB, path: cleanPath}, nil
}

// Path returns the file the store was opened on.
func (s *Store) Path() string { return s.path }

// Close releases the underlying SQLite connections.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// BeginRead starts a read transaction. It sees only committed data.
func (s *Store) BeginRead(ctx context.Context) (*ReadTxn, error) {
	tx, err := s.begin(ctx, "begin read")
	if err != nil {
		return nil, err
	}
	return &ReadTxn{txn{tx: tx}}, nil
}

// BeginWrite starts a write transaction. Its writes become visible to other
// transactions only after Commit, and all at once.
func (s *Store) BeginWrite(ctx context.Context) (*WriteTxn, error) {
	tx, err := s.begin(ctx, "begin write")
	if err != nil {
		return nil, err
	}
	return &WriteTxn{txn{tx: tx}}, nil
}

func (s *Store) begin(ctx context.Context, op string) (*sql.Tx, error) {
	if s == nil || s.sqlDB == nil {
		return nil, &Error{Op: op, Err: errors.New("storage is not configured")}
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return tx, nil
}

type txn struct {
	tx   *sql.Tx
	done bool
}

// Get returns the value stored under key. A missing key is (nil, false, nil);
// a table that was never written is ErrTableNotFound.
func (t *txn) Get(ctx context.Context, table Table, key string) ([]byte, bool, error) {
	if err := table.Validate(); err != nil {
		return nil, false, &Error{Op: "get", Table: table, Err: err}
	}
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, &Error{Op: "get", Table: table, Err: err}
	}

	row := t.tx.QueryRowContext(ctx,
		`SELECT entry_value FROM `+table.quoted()+` WHERE entry_key = ?`,
		key,
	)
	var value []byte
	if err := row.Scan(&value); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, false, nil
		case isNoSuchTable(err):
			return nil, false, ErrTableNotFound
		}
		return nil, false, &Error{Op: "get", Table: table, Err: err}
	}
	return value, true, nil
}

// Commit makes the transaction's writes durable.
func (t *txn) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return &Error{Op: "commit", Err: err}
	}
	t.done = true
	return nil
}

// Rollback discards the transaction. It is a no-op after Commit, so it can be
// deferred right after Begin.
func (t *txn) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return &Error{Op: "rollback", Err: err}
	}
	return nil
}

// ReadTxn is a read-only view of the store.
type ReadTxn struct {
	txn
}

// Len returns the number of entries in table.
func (t *ReadTxn) Len(ctx context.Context, table Table) (int, error) {
	if err := table.Validate(); err != nil {
		return 0, &Error{Op: "len", Table: table, Err: err}
	}
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table.quoted()).Scan(&n)
	if err != nil {
		if isNoSuchTable(err) {
			return 0, ErrTableNotFound
		}
		return 0, &Error{Op: "len", Table: table, Err: err}
	}
	return n, nil
}

// WriteTxn reads and writes the store.
type WriteTxn struct {
	txn
}

// Put stores value under key, replacing any previous value. The table is
// created on first use.
func (t *WriteTxn) Put(ctx context.Context, table Table, key string, value []byte) error {
	if err := table.Validate(); err != nil {
		return &Error{Op: "put", Table: table, Err: err}
	}
	key, err := normalizeKey(key)
	if err != nil {
		return &Error{Op: "put", Table: table, Err: err}
	}
	if value == nil {
		value = []byte{}
	}

	if _, err := t.tx.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS `+table.quoted()+` (
			entry_key TEXT PRIMARY KEY,
			entry_value BLOB NOT NULL
		)`,
	); err != nil {
		return &Error{Op: "create table", Table: table, Err: err}
	}

	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO `+table.quoted()+` (entry_key, entry_value) VALUES (?, ?)
		 ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value`,
		key, value,
	); err != nil {
		return &Error{Op: "put", Table: table, Err: err}
	}
	return nil
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("key is required")
	}
	return key, nil
}

func isNoSuchTable(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code() != sqlite3lib.SQLITE_ERROR {
		return false
	}
	return strings.Contains(strings.ToLower(sqliteErr.Error()), "no such table")
}
