package fender

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// GlobalContext is fender's freight.Engine.Context: a single sqlite
// handle backing the store_get/store_put builtins, so a fender program
// can persist key/value state across calls the way a host embedding
// freight typically wants a database or module cache reachable from
// native functions (spec.md §3's GlobalContext).
type GlobalContext struct {
	db *sql.DB
}

// NewGlobalContext opens dsn (":memory:" for an ephemeral store) and
// creates the kv table store_get/store_put read and write.
func NewGlobalContext(dsn string) (*GlobalContext, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("fender: opening store: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("fender: initializing store: %w", err)
	}
	return &GlobalContext{db: db}, nil
}

// Close releases the underlying database handle.
func (g *GlobalContext) Close() error { return g.db.Close() }

// Get returns the stored value for key, or ok=false if absent.
func (g *GlobalContext) Get(key string) (value string, ok bool, err error) {
	row := g.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Put upserts key/value.
func (g *GlobalContext) Put(key, value string) error {
	_, err := g.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}
