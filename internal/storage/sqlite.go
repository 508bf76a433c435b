package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"reactome2bel/internal/reactome"

	_ "github.com/mattn/go-sqlite3"
)

// ErrCacheMiss is returned when the cache holds nothing for a key.
var ErrCacheMiss = errors.New("storage: cache miss")

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// A single connection serialises writers; concurrent hierarchy fetches
	// would otherwise hit SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			schema_class TEXT,
			payload BLOB NOT NULL,
			fetched_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS hierarchies (
			species TEXT PRIMARY KEY,
			document BLOB NOT NULL,
			fetched_at TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entities_schema ON entities(schema_class);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// --- RecordStore Implementation ---

func (s *SQLiteStore) SaveRecord(ctx context.Context, rec *reactome.Record) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("save record: missing dbId")
	}
	payload, err := rec.Payload()
	if err != nil {
		return fmt.Errorf("save record %s: %w", rec.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entities (id, schema_class, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_class=excluded.schema_class,
			payload=excluded.payload,
			fetched_at=excluded.fetched_at
	`, rec.ID, rec.SchemaClass, payload, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (*reactome.Record, error) {
	var payload []byte
	row := s.db.QueryRowContext(ctx, "SELECT payload FROM entities WHERE id = ?", id)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	rec, err := reactome.DecodeRecord(payload)
	if err != nil {
		return nil, fmt.Errorf("decode cached record %s: %w", id, err)
	}
	return rec, nil
}

func (s *SQLiteStore) ListIndex(ctx context.Context) ([]IndexEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, schema_class FROM entities ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entries []IndexEntry
	for rows.Next() {
		var e IndexEntry
		if err := rows.Scan(&e.ID, &e.SchemaClass); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// --- HierarchyStore Implementation ---

func (s *SQLiteStore) SaveHierarchy(ctx context.Context, species string, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hierarchies (species, document, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(species) DO UPDATE SET document=excluded.document, fetched_at=excluded.fetched_at
	`, speciesKey(species), doc, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetHierarchy(ctx context.Context, species string) ([]byte, error) {
	var doc []byte
	row := s.db.QueryRowContext(ctx, "SELECT document FROM hierarchies WHERE species = ?", speciesKey(species))
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return doc, nil
}

func speciesKey(species string) string {
	return strings.ToLower(strings.TrimSpace(species))
}
