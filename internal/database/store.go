package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sonar-libras/sonar/internal/logging"
)

// Store is a key/value document store over the kv table. Every value is an
// independent JSON document.
type Store struct {
	db  *sql.DB
	tx  DBTX // set for the store handed to a RunOnce upgrade
	log *slog.Logger
}

// NewStore wraps an opened and migrated database
func NewStore(db *sql.DB, log *slog.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{db: db, log: log}
}

// DB returns the underlying database handle
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) q() DBTX {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Get returns the value under key, or (nil, nil) if the key is absent
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, s.q(), key)
}

// Set stores value under key, replacing any previous value
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.q(), key, value)
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.q().ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys starting with prefix in ascending order
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.q().QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, length(?)) = ? ORDER BY key`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys %s*: %w", prefix, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}
	return keys, nil
}

// Update runs a read-modify-write cycle on key inside one transaction.
// fn receives the current value (nil if absent) and returns the new one;
// a nil result leaves the stored value untouched. An error from fn aborts
// the update and is returned as is.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	return s.inTx(ctx, func(ctx context.Context, tx DBTX) error {
		current, err := get(ctx, tx, key)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		return set(ctx, tx, key, next)
	})
}

// RunOnce executes a named data upgrade the first time it is seen and
// records it, so later calls are no-ops. The ledger check, fn and the ledger
// entry share one immediate transaction: fn must do its reads and writes
// through the store it is given, and concurrent starters wait for the first
// one instead of repeating the upgrade.
func (s *Store) RunOnce(ctx context.Context, name string, fn func(ctx context.Context, tx *Store) error) error {
	return s.inTx(ctx, func(ctx context.Context, tx DBTX) error {
		var applied string
		err := tx.QueryRowContext(ctx, `SELECT name FROM data_upgrades WHERE name = ?`, name).Scan(&applied)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check upgrade %s: %w", name, err)
		}

		if err := fn(ctx, &Store{db: s.db, tx: tx, log: s.log}); err != nil {
			return fmt.Errorf("upgrade %s: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO data_upgrades (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("failed to record upgrade %s: %w", name, err)
		}
		s.log.DebugContext(ctx, "data upgrade applied", "name", name)
		return nil
	})
}

// inTx runs fn in a new transaction, or in the current one for a store
// bound to a RunOnce upgrade
func (s *Store) inTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	if s.tx != nil {
		return fn(ctx, s.tx)
	}
	return WithTx(ctx, s.db, fn)
}

func get(ctx context.Context, q DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, q DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
