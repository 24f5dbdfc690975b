package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func testRecord(path string) *domain.DocumentRecord {
	return &domain.DocumentRecord{
		FilePath:       path,
		Text:           "=== Page 1 ===\nhello world\n",
		PageCount:      1,
		FileModifiedAt: 1_700_000_000_000_000_000,
		Lang:           "chi_tra+eng",
	}
}

// ==================== Store Creation Tests ====================

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "index.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	assert.NoError(t, store.db.Ping())
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_RecordsMigrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)

	_, err = store.Upsert(context.Background(), testRecord("/docs/a.pdf"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Migrations must not re-run or clobber data on reopen.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	rec, err := store.Get(context.Background(), "/docs/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/docs/a.pdf", rec.FilePath)
}

// ==================== Upsert Tests ====================

func TestUpsert_InsertThenUpdate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	rec := testRecord("/docs/a.pdf")
	action, err := store.Upsert(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, domain.UpsertInserted, action)

	rec.Text = "=== Page 1 ===\nrevised text\n"
	rec.PageCount = 2
	action, err = store.Upsert(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, domain.UpsertUpdated, action)

	got, err := store.Get(ctx, "/docs/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "=== Page 1 ===\nrevised text\n", got.Text)
	assert.Equal(t, 2, got.PageCount)

	// One row per path, not one per upsert.
	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpsert_TruncatesLongText(t *testing.T) {
	store := setupTestStore(t)

	rec := testRecord("/docs/huge.pdf")
	rec.Text = strings.Repeat("x", domain.MaxTextContent+1000)

	_, err := store.Upsert(context.Background(), rec)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), "/docs/huge.pdf")
	require.NoError(t, err)
	assert.Len(t, got.Text, domain.MaxTextContent)
}

func TestUpsert_TruncationKeepsValidUTF8(t *testing.T) {
	store := setupTestStore(t)

	// 3-byte runes against a cap that is not a multiple of 3: the cut
	// must pull back to a rune boundary, not leave a partial sequence.
	rec := testRecord("/docs/cjk.pdf")
	rec.Text = strings.Repeat("繁", domain.MaxTextContent/3+10)

	_, err := store.Upsert(context.Background(), rec)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), "/docs/cjk.pdf")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got.Text), domain.MaxTextContent)
	assert.True(t, utf8.ValidString(got.Text))
}

func TestUpsert_SetsCreatedAt(t *testing.T) {
	store := setupTestStore(t)

	rec := testRecord("/docs/a.pdf")
	_, err := store.Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := store.Get(context.Background(), "/docs/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, rec.CreatedAt.Format(createdAtLayout), got.CreatedAt.Format(createdAtLayout))
}

func TestUpsert_EmptyOptionalFieldsStoredAsNull(t *testing.T) {
	store := setupTestStore(t)

	rec := testRecord("/docs/a.pdf")
	rec.FileModifiedAt = 0
	rec.Lang = ""
	_, err := store.Upsert(context.Background(), rec)
	require.NoError(t, err)

	var modifiedAt sql.NullInt64
	var lang sql.NullString
	err = store.db.QueryRow(
		"SELECT file_modified_at, lang FROM documents WHERE file_path = ?", "/docs/a.pdf",
	).Scan(&modifiedAt, &lang)
	require.NoError(t, err)
	assert.False(t, modifiedAt.Valid)
	assert.False(t, lang.Valid)

	got, err := store.Get(context.Background(), "/docs/a.pdf")
	require.NoError(t, err)
	assert.Zero(t, got.FileModifiedAt)
	assert.Empty(t, got.Lang)
}

// ==================== Get Tests ====================

func TestGet_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "/docs/missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_RoundTrip(t *testing.T) {
	store := setupTestStore(t)

	rec := testRecord("/docs/a.pdf")
	_, err := store.Upsert(context.Background(), rec)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), "/docs/a.pdf")
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, rec.FilePath, got.FilePath)
	assert.Equal(t, rec.Text, got.Text)
	assert.Equal(t, rec.PageCount, got.PageCount)
	assert.Equal(t, rec.FileModifiedAt, got.FileModifiedAt)
	assert.Equal(t, rec.Lang, got.Lang)
}

// ==================== All Tests ====================

func TestAll_Empty(t *testing.T) {
	store := setupTestStore(t)

	records, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAll_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Same-second inserts fall back to the id tiebreak, so insertion
	// order reverses deterministically.
	for _, path := range []string{"/docs/a.pdf", "/docs/b.pdf", "/docs/c.pdf"} {
		_, err := store.Upsert(ctx, testRecord(path))
		require.NoError(t, err)
	}

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "/docs/c.pdf", records[0].FilePath)
	assert.Equal(t, "/docs/b.pdf", records[1].FilePath)
	assert.Equal(t, "/docs/a.pdf", records[2].FilePath)
}

// ==================== Migration Tests ====================

func TestMigrate_LegacySchemaGainsColumns(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "index.db")

	// Build a version-1 database by hand: documents without the
	// staleness columns, schema_migrations recording only version 1.
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_path TEXT NOT NULL UNIQUE,
			text_content TEXT,
			page_count INTEGER,
			created_at TEXT
		);
		INSERT INTO schema_migrations (version) VALUES (1);
		INSERT INTO documents (file_path, text_content, page_count, created_at)
		VALUES ('/docs/legacy.pdf', 'old text', 3, '2024-01-01 10:00:00');
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	// The legacy row survives with zero values in the new columns.
	rec, err := store.Get(context.Background(), "/docs/legacy.pdf")
	require.NoError(t, err)
	assert.Equal(t, "old text", rec.Text)
	assert.Equal(t, 3, rec.PageCount)
	assert.Zero(t, rec.FileModifiedAt)
	assert.Empty(t, rec.Lang)

	// And the new columns are writable.
	rec.FileModifiedAt = 42
	rec.Lang = "eng"
	_, err = store.Upsert(context.Background(), rec)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), "/docs/legacy.pdf")
	require.NoError(t, err)
	assert.EqualValues(t, 42, got.FileModifiedAt)
	assert.Equal(t, "eng", got.Lang)
}
