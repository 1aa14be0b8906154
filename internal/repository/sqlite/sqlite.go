// Package sqlite implements the repository interfaces on SQLite.
//
// WHY modernc.org/sqlite?
// It is a pure-Go translation of SQLite — no CGo, no C toolchain, trivially
// cross-compiled. The driver registers itself with database/sql under the
// name "sqlite" via the blank import below.
//
// SERIALIZATION MODEL:
// The whole service runs over what is effectively a single database
// connection: the pool is capped at one open connection, so every statement
// — reads and writes alike — queues through database/sql and executes
// serially. There is no per-table locking, no statement timeout, and no
// retry anywhere: the first storage error surfaces straight to the caller.
//
// A consequence worth knowing: multi-statement sequences are NOT atomic.
// Registration, for example, is a uniqueness SELECT followed by a separate
// INSERT — two concurrent registrations with the same email can both pass
// the pre-check. Inherited, documented behavior; do not quietly close it.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB handle. The repository interfaces are implemented by
// the UserStore and TaskStore views over the same handle.
type DB struct {
	conn *sql.DB
}

// Users returns the user-rows view of the database.
func (db *DB) Users() *UserStore {
	return &UserStore{conn: db.conn}
}

// Tasks returns the task-rows view of the database.
func (db *DB) Tasks() *TaskStore {
	return &TaskStore{conn: db.conn}
}

// New opens (or creates) the SQLite database at dbPath and ensures the
// schema exists. Use ":memory:" in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path or permissions problem
	// fails here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// One connection total: every statement serializes. See the package
	// comment for why this is a contract, not an oversight.
	conn.SetMaxOpenConns(1)

	// WAL keeps the file usable by external readers while we hold the
	// single writer connection.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// foreign_keys stays at its default (OFF). The tasks.user_id REFERENCE
	// is documentation only: owner existence is checked by the service at
	// creation time, and DELETE /user must keep succeeding even when the
	// user still owns tasks — enforcement here would turn those deletes
	// into errors and change the wire contract. Orphaned tasks are the
	// accepted consequence.

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the underlying pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps startup
// idempotent.
//
// email carries NO UNIQUE constraint: uniqueness is enforced by the
// registration pre-check alone (with its known race). Adding the constraint
// here would change which requests fail and how, so it stays off.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id        TEXT PRIMARY KEY,
			firstname TEXT NOT NULL,
			lastname  TEXT NOT NULL,
			email     TEXT NOT NULL,
			password  TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id        TEXT PRIMARY KEY,
			name      TEXT NOT NULL,
			completed INTEGER NOT NULL,
			user_id   TEXT NOT NULL REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating tasks table: %w", err)
	}

	return nil
}
