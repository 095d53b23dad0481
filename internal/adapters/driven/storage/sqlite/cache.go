// Package sqlite implements the offline archive cache on SQLite. The
// cache holds the most recent successful fetches so the CLI can show a
// snapshot without a network connection. It is display-only: lookups
// never consult it and misses are never cached.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arsipkita/arsip-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ArchiveCache = (*Cache)(nil)

// Snapshot kinds recorded in the snapshots table.
const (
	snapshotDocuments     = "documents"
	snapshotStaff         = "staff_documents"
	snapshotNotifications = "notifications"
)

// Cache is a SQLite-backed implementation of driven.ArchiveCache.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache creates a cache at the specified data directory. If dataDir
// is empty, defaults to ~/.arsip/data/cache.db.
func NewCache(dataDir string) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".arsip", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Cache{db: db, path: dbPath}
	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// SaveDocuments replaces the cached archive snapshot.
func (c *Cache) SaveDocuments(ctx context.Context, docs []domain.Document) error {
	return c.replace(ctx, snapshotDocuments, "documents", func(tx *sql.Tx) error {
		for _, doc := range docs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO documents (id, sender, subject, letter_type, file_name,
					file_url, resource_type, owner_id, owner_name, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, doc.ID, doc.Sender, doc.Subject, doc.LetterType.String(), doc.FileName,
				doc.FileURL, doc.ResourceType, doc.OwnerID, doc.OwnerName,
				doc.CreatedAt, doc.UpdatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadDocuments returns the cached archive snapshot.
func (c *Cache) LoadDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, sender, subject, letter_type, file_name, file_url,
			resource_type, owner_id, owner_name, created_at, updated_at
		FROM documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		var letterType string
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Sender, &doc.Subject, &letterType,
			&doc.FileName, &doc.FileURL, &doc.ResourceType,
			&doc.OwnerID, &doc.OwnerName, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.LetterType = domain.LetterType(letterType)
		doc.CreatedAt = createdAt.Time
		doc.UpdatedAt = updatedAt.Time
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SaveStaffDocuments replaces the cached staff snapshot.
func (c *Cache) SaveStaffDocuments(ctx context.Context, docs []domain.StaffDocument) error {
	return c.replace(ctx, snapshotStaff, "staff_documents", func(tx *sql.Tx) error {
		for _, doc := range docs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO staff_documents (id, subject, file_name, file_url,
					resource_type, owner_id, owner_name, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, doc.ID, doc.Subject, doc.FileName, doc.FileURL,
				doc.ResourceType, doc.OwnerID, doc.OwnerName, doc.CreatedAt, doc.UpdatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadStaffDocuments returns the cached staff snapshot.
func (c *Cache) LoadStaffDocuments(ctx context.Context) ([]domain.StaffDocument, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, subject, file_name, file_url, resource_type,
			owner_id, owner_name, created_at, updated_at
		FROM staff_documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying staff documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.StaffDocument
	for rows.Next() {
		var doc domain.StaffDocument
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Subject, &doc.FileName, &doc.FileURL,
			&doc.ResourceType, &doc.OwnerID, &doc.OwnerName, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning staff document: %w", err)
		}
		doc.CreatedAt = createdAt.Time
		doc.UpdatedAt = updatedAt.Time
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SaveNotifications replaces the cached notification snapshot.
func (c *Cache) SaveNotifications(ctx context.Context, set *domain.NotificationSet) error {
	return c.replace(ctx, snapshotNotifications, "notifications", func(tx *sql.Tx) error {
		for _, n := range set.Notifications {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO notifications (id, user_id, message, link, is_read, created_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, n.ID, n.UserID, n.Message, n.Link, n.IsRead, n.CreatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadNotifications returns the cached notification snapshot. The
// unread count is recomputed from the rows.
func (c *Cache) LoadNotifications(ctx context.Context) (*domain.NotificationSet, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, user_id, message, link, is_read, created_at
		FROM notifications ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	set := &domain.NotificationSet{}
	for rows.Next() {
		var n domain.Notification
		var createdAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Link, &n.IsRead, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		n.CreatedAt = createdAt.Time
		if !n.IsRead {
			set.UnreadCount++
		}
		set.Notifications = append(set.Notifications, n)
	}
	return set, rows.Err()
}

// FetchedAt returns when the given snapshot kind was last saved, or a
// zero time when it never was.
func (c *Cache) FetchedAt(ctx context.Context, kind string) (time.Time, error) {
	var fetchedAt sql.NullTime
	err := c.db.QueryRowContext(ctx,
		"SELECT fetched_at FROM snapshots WHERE kind = ?", kind).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("querying snapshot age: %w", err)
	}
	return fetchedAt.Time, nil
}

// replace runs a full table replacement in one transaction and stamps
// the snapshot.
func (c *Cache) replace(ctx context.Context, kind, table string, insert func(tx *sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("inserting into %s: %w", table, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (kind, fetched_at) VALUES (?, ?)
		ON CONFLICT(kind) DO UPDATE SET fetched_at = excluded.fetched_at
	`, kind, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("stamping snapshot: %w", err)
	}

	return tx.Commit()
}

// migrate runs all pending migrations.
func (c *Cache) migrate(fsys embed.FS) error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := c.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
