package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/avezina/givehub/internal/store/migrations"
)

// recordKey is the fixed key of the single session record. The table is a
// key-value store so the schema does not need to change with the record.
const recordKey = "session"

// SQLiteStore keeps the record in a sqlite database. Save replaces the
// record inside one transaction so readers never observe a partial write.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the sqlite database at dsn and
// applies the embedded schema migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite %s: %w", dsn, err)
	}

	return &SQLiteStore{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_records WHERE key = ?`, recordKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("load session record: %w", err)
	}
	return value, nil
}

func (s *SQLiteStore) Save(ctx context.Context, data []byte) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM session_records WHERE key = ?`, recordKey); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO session_records (key, value) VALUES (?, ?)`, recordKey, data)
		return err
	})
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_records WHERE key = ?`, recordKey); err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(tx)
	if err != nil {
		err = fmt.Errorf("save session record: %w", err)
	}
	return err
}
