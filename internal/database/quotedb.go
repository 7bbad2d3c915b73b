package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/quotecrawl/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "quotecrawl.db"

// ErrCategoryNotFound is returned when a category ID does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// QuoteDB provides SQLite-based storage for categories and quotes.
type QuoteDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures QuoteDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// BusyTimeout is how long SQLite waits on a locked database before
	// failing. Zero leaves the driver default.
	BusyTimeout time.Duration
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		BusyTimeout:       5 * time.Second,
	}
}

// Open opens or creates a QuoteDB in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*QuoteDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	qdb := &QuoteDB{
		db:     db,
		dbPath: dbPath,
	}

	if err := qdb.configure(opts); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := qdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return qdb, nil
}

// configure applies connection pragmas.
func (qdb *QuoteDB) configure(opts Options) error {
	ctx := context.Background()

	if opts.EnableWAL {
		if _, err := qdb.db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if opts.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout=%d", opts.BusyTimeout.Milliseconds())
		if _, err := qdb.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	return nil
}

// Path returns the database file path.
func (qdb *QuoteDB) Path() string {
	return qdb.dbPath
}

// Close closes the database connection.
func (qdb *QuoteDB) Close() error {
	return qdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (qdb *QuoteDB) createTables() error {
	schema := `
	-- Categories are the paginated listings to crawl
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		page_url TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'done')),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_categories_status ON categories(status);

	-- Quotes are extracted records; duplicates are kept
	CREATE TABLE IF NOT EXISTS quotes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category_id INTEGER,
		text TEXT NOT NULL CHECK (length(trim(text)) > 0),
		author TEXT NOT NULL CHECK (length(trim(author)) > 0),
		tags TEXT NOT NULL DEFAULT '[]',
		source_url TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_quotes_category ON quotes(category_id);
	`

	_, err := qdb.db.ExecContext(context.Background(), schema)
	return err
}

// AddCategories inserts the given listing URLs as pending categories.
// URLs already present are left untouched, whatever their status.
// Returns the number of newly added categories.
func (qdb *QuoteDB) AddCategories(ctx context.Context, urls []string) (int, error) {
	tx, err := qdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO categories (page_url, status) VALUES (?, 'pending')
	ON CONFLICT(page_url) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare category insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		result, err := stmt.ExecContext(ctx, u)
		if err != nil {
			return 0, fmt.Errorf("failed to add category %s: %w", u, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to add category %s: %w", u, err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit categories: %w", err)
	}

	return added, nil
}

// FindPending returns up to limit pending categories ordered by ID.
// A non-positive limit returns every pending category.
func (qdb *QuoteDB) FindPending(ctx context.Context, limit int) ([]model.Category, error) {
	query := `
	SELECT id, page_url, status FROM categories
	WHERE status = 'pending'
	ORDER BY id
	`
	args := make([]interface{}, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := qdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		var status string
		if err := rows.Scan(&c.ID, &c.PageURL, &status); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Status, err = model.ParseCategoryStatus(status)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetCategory retrieves a category by ID.
// Returns ErrCategoryNotFound if it does not exist.
func (qdb *QuoteDB) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	var status string
	err := qdb.db.QueryRowContext(ctx,
		`SELECT id, page_url, status FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.PageURL, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrCategoryNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	c.Status, err = model.ParseCategoryStatus(status)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MarkDone moves a category from pending to done.
// Marking an already-done category is a no-op; an unknown ID returns
// ErrCategoryNotFound.
func (qdb *QuoteDB) MarkDone(ctx context.Context, id int64) error {
	result, err := qdb.db.ExecContext(ctx, `
	UPDATE categories SET status = 'done', updated_at = CURRENT_TIMESTAMP
	WHERE id = ? AND status = 'pending'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark category %d done: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark category %d done: %w", id, err)
	}
	if n > 0 {
		return nil
	}

	// Nothing changed: either already done or missing.
	if _, err := qdb.GetCategory(ctx, id); err != nil {
		return err
	}
	return nil
}

// ResetCategories marks every category pending again so that the next run
// crawls them from the first page. Returns the number of categories reset.
func (qdb *QuoteDB) ResetCategories(ctx context.Context) (int, error) {
	result, err := qdb.db.ExecContext(ctx, `
	UPDATE categories SET status = 'pending', updated_at = CURRENT_TIMESTAMP
	WHERE status = 'done'
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset categories: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to reset categories: %w", err)
	}
	return int(n), nil
}

// CategoryCounts returns the number of pending and done categories.
func (qdb *QuoteDB) CategoryCounts(ctx context.Context) (pending, done int, err error) {
	err = qdb.db.QueryRowContext(ctx, `
	SELECT
		COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END), 0)
	FROM categories
	`).Scan(&pending, &done)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return pending, done, nil
}

// RecordError describes why one quote of a batch was not persisted.
type RecordError struct {
	// Index is the position of the quote in the batch.
	Index int

	// Err is the underlying validation or database error.
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("quote %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// InsertMany persists a batch of quotes on a best-effort basis.
// A quote that fails validation or whose insert fails is skipped and reported
// as a *RecordError; the remaining quotes are still committed. Returns the
// number of quotes persisted together with the joined per-record errors.
// Only a failure of the batch as a whole (begin, prepare, commit) persists
// nothing.
func (qdb *QuoteDB) InsertMany(ctx context.Context, quotes []model.Quote) (int, error) {
	if len(quotes) == 0 {
		return 0, nil
	}

	tx, err := qdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO quotes (category_id, text, author, tags, source_url)
	VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare quote insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	var errs []error
	for i, q := range quotes {
		if err := q.Validate(); err != nil {
			errs = append(errs, &RecordError{Index: i, Err: err})
			continue
		}

		tags := q.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			errs = append(errs, &RecordError{Index: i, Err: err})
			continue
		}

		var categoryID sql.NullInt64
		if q.CategoryID != 0 {
			categoryID = sql.NullInt64{Int64: q.CategoryID, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx, categoryID, q.Text, q.Author, string(tagsJSON), q.SourceURL); err != nil {
			errs = append(errs, &RecordError{Index: i, Err: err})
			continue
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit quotes: %w", err)
	}

	return inserted, errors.Join(errs...)
}

// Quotes returns every stored quote in insertion order.
func (qdb *QuoteDB) Quotes(ctx context.Context) ([]model.Quote, error) {
	rows, err := qdb.db.QueryContext(ctx, `
	SELECT category_id, text, author, tags, source_url
	FROM quotes
	ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]model.Quote, 0)
	for rows.Next() {
		var q model.Quote
		var categoryID sql.NullInt64
		var tagsJSON string

		if err := rows.Scan(&categoryID, &q.Text, &q.Author, &tagsJSON, &q.SourceURL); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		if categoryID.Valid {
			q.CategoryID = categoryID.Int64
		}
		if err := json.Unmarshal([]byte(tagsJSON), &q.Tags); err != nil {
			return nil, fmt.Errorf("failed to parse tags: %w", err)
		}
		quotes = append(quotes, q)
	}

	return quotes, rows.Err()
}

// QuoteCount returns the number of stored quotes.
func (qdb *QuoteDB) QuoteCount(ctx context.Context) (int, error) {
	var count int
	if err := qdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return count, nil
}
