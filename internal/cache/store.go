package cache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Cache kinds. Each kind is an independent key space: a name resolved
// during annotation never leaks into retag suggestions.
const (
	KindAnnotate = "annotate"
	KindRetag    = "retag"
)

// Store owns the sqlite database holding annotation caches and run
// history. One store is opened per process and shared by reference.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := configureDatabase(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Cache loads the name→amenity mapping for one kind. A kind with no
// persisted entries yields an empty cache, never an error.
func (s *Store) Cache(kind string) (*Cache, error) {
	rows, err := s.db.Query("SELECT name, amenity FROM annotations WHERE kind = ?", kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s cache: %w", kind, err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var name, amenity string
		if err := rows.Scan(&name, &amenity); err != nil {
			return nil, fmt.Errorf("failed to scan %s cache row: %w", kind, err)
		}
		entries[name] = amenity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load %s cache: %w", kind, err)
	}
	return &Cache{store: s, kind: kind, entries: entries}, nil
}

// BeginRun records the start of one command invocation against one
// city and returns the run id.
func (s *Store) BeginRun(command, city string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, command, city) VALUES (?, ?, ?)",
		id, command, city,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run start: %w", err)
	}
	return id, nil
}

// FinishRun stamps a run finished with its resolved-feature count.
func (s *Store) FinishRun(runID string, resolved int) error {
	_, err := s.db.Exec(
		"UPDATE runs SET finished_at = ?, resolved_count = ? WHERE id = ?",
		time.Now().UTC(), resolved, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to record run finish: %w", err)
	}
	return nil
}

// Cache is one kind's persistent name→amenity mapping, held in memory
// for lookups and written through to sqlite on every Put. The key set
// only ever grows during normal operation.
type Cache struct {
	store   *Store
	kind    string
	entries map[string]string
}

// Kind returns the cache's key space name.
func (c *Cache) Kind() string { return c.kind }

// Len returns the number of cached names.
func (c *Cache) Len() int { return len(c.entries) }

// Get returns the cached amenity for name.
func (c *Cache) Get(name string) (string, bool) {
	v, ok := c.entries[name]
	return v, ok
}

// Has reports whether name has a cached resolution.
func (c *Cache) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Put records a resolution and writes it through to sqlite before
// returning. The commit is the durability point: once Put returns nil
// the resolution survives a process kill. Blank names or amenities are
// a caller bug.
func (c *Cache) Put(name, amenity string) error {
	name = strings.TrimSpace(name)
	amenity = strings.TrimSpace(amenity)
	if name == "" {
		return fmt.Errorf("cache put with blank name")
	}
	if amenity == "" {
		return fmt.Errorf("cache put with blank amenity for %q", name)
	}

	_, err := c.store.db.Exec(`
		INSERT INTO annotations (kind, name, amenity) VALUES (?, ?, ?)
		ON CONFLICT (kind, name) DO UPDATE SET
			amenity = excluded.amenity,
			updated_at = CURRENT_TIMESTAMP
	`, c.kind, name, amenity)
	if err != nil {
		return fmt.Errorf("failed to persist %s cache entry %q: %w", c.kind, name, err)
	}
	c.entries[name] = amenity
	return nil
}
