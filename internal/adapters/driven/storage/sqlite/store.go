package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/inkwell-labs/scandex-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
)

// createdAtLayout is the storage format for record creation timestamps.
const createdAtLayout = "2006-01-02 15:04:05"

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is the SQLite-backed document index. One row per source file
// path; single-writer use is assumed for the duration of a batch run.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.scandex/data/index.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".scandex", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL keeps readers (search) usable while a batch is writing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_documents.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Upsert inserts or fully replaces the record for rec.FilePath.
// Lookup-then-write is not transactional; the index assumes a single
// writer per run.
func (s *Store) Upsert(ctx context.Context, rec *domain.DocumentRecord) (domain.UpsertAction, error) {
	action := domain.UpsertInserted
	var existingID int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM documents WHERE file_path = ?", rec.FilePath,
	).Scan(&existingID)
	switch {
	case err == nil:
		action = domain.UpsertUpdated
	case errors.Is(err, sql.ErrNoRows):
		// First sighting of this path.
	default:
		return "", fmt.Errorf("looking up document: %w", err)
	}

	text := domain.TruncateText(rec.Text)

	rec.CreatedAt = time.Now()
	createdAt := rec.CreatedAt.Format(createdAtLayout)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (
			file_path, text_content, page_count, created_at,
			file_modified_at, lang
		)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			text_content = excluded.text_content,
			page_count = excluded.page_count,
			created_at = excluded.created_at,
			file_modified_at = excluded.file_modified_at,
			lang = excluded.lang
	`, rec.FilePath, text, rec.PageCount, createdAt,
		nullInt64(rec.FileModifiedAt), nullString(rec.Lang))
	if err != nil {
		return "", fmt.Errorf("saving document: %w", err)
	}

	return action, nil
}

// Get retrieves a record by file path.
func (s *Store) Get(ctx context.Context, filePath string) (*domain.DocumentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_path, text_content, page_count, created_at, file_modified_at, lang
		FROM documents WHERE file_path = ?
	`, filePath)

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return rec, nil
}

// All returns every record, newest first. The id tiebreak keeps the
// order deterministic for records created within the same second.
func (s *Store) All(ctx context.Context) ([]domain.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_path, text_content, page_count, created_at, file_modified_at, lang
		FROM documents
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var records []domain.DocumentRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return records, nil
}

// scanRecord scans one documents row via the given Scan function.
func scanRecord(scan func(dest ...any) error) (*domain.DocumentRecord, error) {
	var rec domain.DocumentRecord
	var text, createdAt sql.NullString
	var pageCount sql.NullInt64
	var modifiedAt sql.NullInt64
	var lang sql.NullString

	if err := scan(&rec.ID, &rec.FilePath, &text, &pageCount, &createdAt,
		&modifiedAt, &lang); err != nil {
		return nil, err
	}

	rec.Text = text.String
	rec.PageCount = int(pageCount.Int64)
	rec.FileModifiedAt = modifiedAt.Int64
	rec.Lang = lang.String

	if createdAt.Valid {
		// Malformed timestamps read back as zero time; rows stay usable.
		if t, err := time.ParseInLocation(createdAtLayout, createdAt.String, time.Local); err == nil {
			rec.CreatedAt = t
		}
	}

	return &rec, nil
}

// nullInt64 converts a zero value to NULL for storage.
func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

// nullString converts an empty string to NULL for storage.
func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
