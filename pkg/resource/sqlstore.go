package resource

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLStore keeps resources in a SQLite database, one row per type and name.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens (creating if needed) the database at path and brings
// its schema up to date.
func OpenSQLStore(path string) (*SQLStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("resource: migrate %s: %w", path, err)
	}
	return &SQLStore{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	// m.Close would close db too; the store keeps using it.
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Load implements Store.
func (s *SQLStore) Load(ctx context.Context, typ Type, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM resources WHERE type = ? AND name = ?`, typ.String(), name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, typ, name)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put inserts or replaces a resource.
func (s *SQLStore) Put(ctx context.Context, typ Type, name string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resources (type, name, data, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(type, name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		typ.String(), name, data,
	)
	return err
}

// Delete removes a resource. Deleting a missing resource returns ErrNotFound.
func (s *SQLStore) Delete(ctx context.Context, typ Type, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE type = ? AND name = ?`, typ.String(), name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %q", ErrNotFound, typ, name)
	}
	return nil
}

// List returns the names of all resources of typ, sorted.
func (s *SQLStore) List(ctx context.Context, typ Type) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM resources WHERE type = ? ORDER BY name`, typ.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
