// Package store provides SQLite persistence for catalog entries and the
// cursor-paginated query side of the application.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tirtza-weinfeld/carta/internal/catalog"
	"github.com/tirtza-weinfeld/carta/internal/filter"
	"github.com/tirtza-weinfeld/carta/internal/query"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// It implements query.Pager for the paginated list controller.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // protects all database operations
}

// Entry is a stored catalog entry: the wire-visible query.Entry plus the
// filterable attributes kept only on the query side.
type Entry struct {
	query.Entry
	Category  string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	// For in-memory databases, use shared cache mode so all connections
	// in the pool see the same database
	connStr := dbPath
	if dbPath == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory databases, limit to 1 connection to avoid issues
	// with multiple connections getting different databases
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		lemma TEXT NOT NULL,
		lemma_lower TEXT NOT NULL,
		language_code TEXT NOT NULL DEFAULT 'en',
		definition TEXT,
		example TEXT,
		category TEXT NOT NULL,
		tags TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	// Migration: databases created before the folded column existed get it
	// added and backfilled here. The backfill runs in Go because SQLite's
	// lower() folds ASCII only.
	if !s.columnExists("entries", "lemma_lower") {
		if _, err := s.db.Exec("ALTER TABLE entries ADD COLUMN lemma_lower TEXT NOT NULL DEFAULT ''"); err != nil {
			return fmt.Errorf("add lemma_lower column: %w", err)
		}
		if err := s.backfillLemmaLower(); err != nil {
			return fmt.Errorf("backfill lemma_lower: %w", err)
		}
	}

	indexes := `
	CREATE INDEX IF NOT EXISTS idx_entries_lemma_lower ON entries(lemma_lower, id);
	CREATE INDEX IF NOT EXISTS idx_entries_category ON entries(category);
	`
	if _, err := s.db.Exec(indexes); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// columnExists checks if a column exists in a table using pragma_table_info.
// This is more reliable than checking error messages from ALTER TABLE.
func (s *Store) columnExists(table, column string) bool {
	query := fmt.Sprintf("SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name = ?", table)
	var count int
	if err := s.db.QueryRow(query, column).Scan(&count); err != nil {
		return false
	}
	return count > 0
}

// backfillLemmaLower recomputes the folded lemma for every row.
func (s *Store) backfillLemmaLower() error {
	rows, err := s.db.Query("SELECT id, lemma FROM entries")
	if err != nil {
		return err
	}
	defer rows.Close()

	type pair struct{ id, lemma string }
	var pairs []pair
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.id, &p.lemma); err != nil {
			return err
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, p := range pairs {
		if _, err := s.db.Exec("UPDATE entries SET lemma_lower = ? WHERE id = ?", strings.ToLower(p.lemma), p.id); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveEntries stores entries, returning the count of new rows inserted.
// Duplicates (by id) are silently ignored via INSERT OR IGNORE.
// Thread-safe: acquires write lock.
func (s *Store) SaveEntries(entries []Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) == 0 {
		return 0, nil
	}

	// lemma_lower is folded in Go at insert time. SQLite's built-in
	// lower() is ASCII-only, so all case-insensitive ordering and
	// matching must run against this column, never lower(lemma).
	stmt, err := s.db.Prepare(`
		INSERT OR IGNORE INTO entries (
			id, lemma, lemma_lower, language_code, definition, example,
			category, tags, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	newCount := 0
	for _, e := range entries {
		lang := e.LanguageCode
		if lang == "" {
			lang = "en"
		}
		result, err := stmt.Exec(
			e.ID,
			e.Lemma,
			strings.ToLower(e.Lemma),
			lang,
			e.DefinitionPreview,
			e.ExampleText,
			e.Category,
			strings.Join(e.Tags, ","),
			e.CreatedAt,
			e.UpdatedAt,
		)
		if err != nil {
			return newCount, err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return newCount, err
		}
		if affected > 0 {
			newCount++
		}
	}

	return newCount, nil
}

// SeedFromCatalog imports catalog metadata as entries. The lemma is the
// item title; the definition preview is synthesized from the item's
// category and tags. Existing ids are left untouched.
func (s *Store) SeedFromCatalog(items []catalog.Item) (int, error) {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		preview := string(item.Category)
		if len(item.Tags) > 0 {
			preview += " · " + strings.Join(item.Tags, ", ")
		}
		entries = append(entries, Entry{
			Entry: query.Entry{
				ID:                item.ID,
				Lemma:             item.Title,
				LanguageCode:      "en",
				DefinitionPreview: preview,
			},
			Category:  string(item.Category),
			Tags:      item.Tags,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return s.SaveEntries(entries)
}

// FetchPage implements query.Pager with keyset pagination.
//
// Entries are ordered by (lemma, id), case-insensitive on lemma, so the
// order is total and a cursor identifies an exact resume point. The same
// cursor always resumes from the same point (idempotent read), which makes
// retry-after-failure safe.
// Thread-safe: acquires read lock.
func (s *Store) FetchPage(ctx context.Context, st filter.State, cursor string, pageSize int) (query.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if pageSize <= 0 {
		pageSize = 20
	}

	var (
		conds []string
		args  []any
	)

	st = filter.Normalize(st)
	if st.Category != filter.All {
		conds = append(conds, "category = ?")
		args = append(args, st.Category)
	}
	if st.Tag != filter.All {
		// tags is a comma-joined list; wrap both sides so a slug only
		// matches whole elements
		conds = append(conds, "instr(',' || tags || ',', ?) > 0")
		args = append(args, ","+st.Tag+",")
	}
	if st.Search != "" {
		q := strings.ToLower(st.Search)
		conds = append(conds, "(instr(lower(id), ?) > 0 OR instr(lemma_lower, ?) > 0)")
		args = append(args, q, q)
	}

	if cursor != "" {
		after, err := decodeCursor(cursor)
		if err != nil {
			return query.Page{}, fmt.Errorf("fetch page: %w", err)
		}
		conds = append(conds, "(lemma_lower > ? OR (lemma_lower = ? AND id > ?))")
		args = append(args, after.Lemma, after.Lemma, after.ID)
	}

	sqlQuery := `
		SELECT id, lemma, language_code, definition, example
		FROM entries
	`
	if len(conds) > 0 {
		sqlQuery += " WHERE " + strings.Join(conds, " AND ")
	}
	// Fetch one extra row to learn whether another page exists.
	sqlQuery += " ORDER BY lemma_lower, id LIMIT ?"
	args = append(args, pageSize+1)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return query.Page{}, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []query.Entry
	for rows.Next() {
		var e query.Entry
		var definition, example sql.NullString
		if err := rows.Scan(&e.ID, &e.Lemma, &e.LanguageCode, &definition, &example); err != nil {
			return query.Page{}, fmt.Errorf("scan entry: %w", err)
		}
		e.DefinitionPreview = definition.String
		e.ExampleText = example.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return query.Page{}, fmt.Errorf("iterate entries: %w", err)
	}

	page := query.Page{Entries: entries}
	if len(entries) > pageSize {
		page.Entries = entries[:pageSize]
		last := page.Entries[pageSize-1]
		page.NextCursor = encodeCursor(last.Lemma, last.ID)
		page.HasNext = true
	}
	return page, nil
}

// EntryCount returns the total entry count.
// Thread-safe: acquires read lock.
func (s *Store) EntryCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// CategoryCounts returns the entry count per category.
// Thread-safe: acquires read lock.
func (s *Store) CategoryCounts() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT category, COUNT(*) FROM entries GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}
	return counts, nil
}
